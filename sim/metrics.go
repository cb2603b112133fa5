// Derives per-process and aggregate statistics from a scheduling Result:
// turnaround, waiting, response, deadline outcome and CPU utilization.

package sim

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ProcessMetrics summarizes how one process fared in a run.
type ProcessMetrics struct {
	ID          string
	ArrivalTime int64
	BurstTime   int64
	Deadline    int64
	FirstStart  int64 // start of the first segment
	Completion  int64 // end of the last segment (overhead excluded)
	Turnaround  int64 // Completion - ArrivalTime
	Waiting     int64 // Turnaround - BurstTime
	Response    int64 // FirstStart - ArrivalTime
	Segments    int   // number of dispatches
	DeadlineMet bool  // Completion <= Deadline
}

// ScheduleMetrics aggregates statistics about a run for final reporting.
type ScheduleMetrics struct {
	Policy    Policy
	Processes []ProcessMetrics // in the order of Result.Processes

	MeanTurnaround   float64
	StdDevTurnaround float64
	MeanWaiting      float64
	StdDevWaiting    float64
	MeanResponse     float64

	DeadlineMisses int
	BusyTime       int64   // sum of segment durations
	IdleTime       int64   // ticks spent waiting for arrivals
	OverheadTime   int64   // EndTime - BusyTime - IdleTime
	EndTime        int64   // clock after the final overhead
	CPUUtilization float64 // BusyTime / EndTime
	Throughput     float64 // completed processes per tick
}

// ComputeMetrics derives ScheduleMetrics from a Result.
// Safe for nil or empty results (returns zero-value fields).
func ComputeMetrics(r *Result) *ScheduleMetrics {
	m := &ScheduleMetrics{}
	if r == nil {
		return m
	}
	m.Policy = r.Policy
	m.EndTime = r.EndTime
	m.IdleTime = r.IdleTime

	type span struct {
		first, last int64
		count       int
	}
	spans := make(map[string]*span, len(r.Processes))
	for _, seg := range r.Segments {
		m.BusyTime += seg.Duration
		s, ok := spans[seg.ProcessID]
		if !ok {
			spans[seg.ProcessID] = &span{first: seg.Start, last: seg.End(), count: 1}
			continue
		}
		s.last = seg.End()
		s.count++
	}
	m.OverheadTime = m.EndTime - m.BusyTime - m.IdleTime

	turnarounds := make([]float64, 0, len(r.Processes))
	waits := make([]float64, 0, len(r.Processes))
	responses := make([]float64, 0, len(r.Processes))
	for _, p := range r.Processes {
		s, ok := spans[p.ID]
		if !ok {
			continue
		}
		pm := ProcessMetrics{
			ID:          p.ID,
			ArrivalTime: p.ArrivalTime,
			BurstTime:   p.BurstTime,
			Deadline:    p.Deadline,
			FirstStart:  s.first,
			Completion:  s.last,
			Turnaround:  s.last - p.ArrivalTime,
			Response:    s.first - p.ArrivalTime,
			Segments:    s.count,
			DeadlineMet: s.last <= p.Deadline,
		}
		pm.Waiting = pm.Turnaround - p.BurstTime
		if !pm.DeadlineMet {
			m.DeadlineMisses++
		}
		m.Processes = append(m.Processes, pm)
		turnarounds = append(turnarounds, float64(pm.Turnaround))
		waits = append(waits, float64(pm.Waiting))
		responses = append(responses, float64(pm.Response))
	}

	m.MeanTurnaround, m.StdDevTurnaround = meanStdDev(turnarounds)
	m.MeanWaiting, m.StdDevWaiting = meanStdDev(waits)
	m.MeanResponse, _ = meanStdDev(responses)
	if m.EndTime > 0 {
		m.CPUUtilization = float64(m.BusyTime) / float64(m.EndTime)
		m.Throughput = float64(len(m.Processes)) / float64(m.EndTime)
	}
	return m
}

// meanStdDev returns the mean and population standard deviation of xs,
// or zeros when xs is empty.
func meanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return stat.Mean(xs, nil), math.Sqrt(stat.PopVariance(xs, nil))
}

// Print writes the per-process table and aggregate statistics to w.
func (m *ScheduleMetrics) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Schedule Metrics (%s) ===\n", m.Policy)
	fmt.Fprintf(w, "%-8s %8s %6s %9s %10s %10s %8s %9s %9s\n",
		"Process", "Arrival", "Burst", "Deadline", "Completion", "Turnaround", "Waiting", "Response", "Status")
	for _, p := range m.Processes {
		met := "met"
		if !p.DeadlineMet {
			met = "MISSED"
		}
		fmt.Fprintf(w, "%-8s %8d %6d %9d %10d %10d %8d %9d %9s\n",
			p.ID, p.ArrivalTime, p.BurstTime, p.Deadline, p.Completion, p.Turnaround, p.Waiting, p.Response, met)
	}
	fmt.Fprintf(w, "Mean Turnaround      : %.2f ticks (stddev %.2f)\n", m.MeanTurnaround, m.StdDevTurnaround)
	fmt.Fprintf(w, "Mean Waiting         : %.2f ticks (stddev %.2f)\n", m.MeanWaiting, m.StdDevWaiting)
	fmt.Fprintf(w, "Mean Response        : %.2f ticks\n", m.MeanResponse)
	fmt.Fprintf(w, "Deadline Misses      : %d/%d\n", m.DeadlineMisses, len(m.Processes))
	fmt.Fprintf(w, "Busy / Idle / Ovhd   : %d / %d / %d ticks\n", m.BusyTime, m.IdleTime, m.OverheadTime)
	fmt.Fprintf(w, "End Time             : %d ticks\n", m.EndTime)
	fmt.Fprintf(w, "CPU Utilization      : %.2f%%\n", m.CPUUtilization*100)
	fmt.Fprintf(w, "Throughput           : %.4f processes/tick\n", m.Throughput)
}
