package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Policy selects the dispatch order used by Run.
type Policy string

const (
	PolicyFIFO Policy = "fifo" // in input order, non-preemptive
	PolicySJF  Policy = "sjf"  // static (arrival, burst) order, non-preemptive
	PolicyRR   Policy = "rr"   // quantum-bounded, preemptive
	PolicyEDF  Policy = "edf"  // static (deadline, arrival) order, non-preemptive
)

// orderedPolicies lists every policy in canonical report order.
var orderedPolicies = []Policy{PolicyFIFO, PolicySJF, PolicyRR, PolicyEDF}

var validPolicies = map[Policy]bool{
	PolicyFIFO: true,
	PolicySJF:  true,
	PolicyRR:   true,
	PolicyEDF:  true,
}

// IsValidPolicy returns true if name is a recognized scheduling policy.
func IsValidPolicy(name string) bool {
	return validPolicies[Policy(name)]
}

// AllPolicies returns every scheduling policy in canonical order.
func AllPolicies() []Policy {
	return append([]Policy(nil), orderedPolicies...)
}

// ValidPolicyNames returns the accepted policy names in canonical order.
func ValidPolicyNames() []string {
	names := make([]string, len(orderedPolicies))
	for i, p := range orderedPolicies {
		names[i] = string(p)
	}
	return names
}

// Segment is one contiguous slice of CPU time given to a process.
// Idle gaps and overhead are never emitted as segments.
type Segment struct {
	ProcessID string
	Start     int64
	Duration  int64
}

// End returns the tick at which the segment stops executing.
func (s Segment) End() int64 {
	return s.Start + s.Duration
}

// RunOptions carries per-run parameters.
type RunOptions struct {
	// Quantum overrides each process's own Quantum for Round-Robin when positive.
	Quantum int64
}

// Result is the execution timeline produced by a single Run.
type Result struct {
	Policy    Policy
	Segments  []Segment // in dispatch order
	Processes []Process // working copies after the run; RemainingTime is 0 for all
	EndTime   int64     // clock after the final segment and its overhead
	IdleTime  int64     // ticks spent waiting for late arrivals
}

// Order returns process IDs in order of first dispatch.
func (r *Result) Order() []string {
	seen := make(map[string]bool, len(r.Processes))
	order := make([]string, 0, len(r.Processes))
	for _, seg := range r.Segments {
		if !seen[seg.ProcessID] {
			seen[seg.ProcessID] = true
			order = append(order, seg.ProcessID)
		}
	}
	return order
}

// SegmentsFor returns the segments of a single process in dispatch order.
func (r *Result) SegmentsFor(id string) []Segment {
	var segs []Segment
	for _, seg := range r.Segments {
		if seg.ProcessID == id {
			segs = append(segs, seg)
		}
	}
	return segs
}

// Run computes the execution timeline for processes under policy.
// The input slice and its processes are never modified; the run works on copies
// whose RemainingTime starts at BurstTime.
// Invalid processes, duplicate IDs, an unknown policy or a non-positive
// Round-Robin quantum are rejected with an error wrapping ErrInvalidInput.
func Run(processes []Process, policy Policy, opts RunOptions) (*Result, error) {
	if !IsValidPolicy(string(policy)) {
		return nil, fmt.Errorf("%w: unknown policy %q; valid: %v", ErrInvalidInput, policy, ValidPolicyNames())
	}
	if err := validateProcesses(processes); err != nil {
		return nil, err
	}
	if policy == PolicyRR {
		if err := validateQuantum(processes, opts.Quantum); err != nil {
			return nil, err
		}
	}

	work := make([]Process, len(processes))
	for i, p := range processes {
		work[i] = p.clone()
		work[i].RemainingTime = work[i].BurstTime
	}

	d := &dispatcher{res: &Result{Policy: policy, Segments: make([]Segment, 0, len(work))}}
	switch policy {
	case PolicyFIFO:
		d.runInOrder(work)
	case PolicySJF:
		sort.SliceStable(work, func(i, j int) bool {
			if work[i].ArrivalTime != work[j].ArrivalTime {
				return work[i].ArrivalTime < work[j].ArrivalTime
			}
			return work[i].BurstTime < work[j].BurstTime
		})
		d.runInOrder(work)
	case PolicyEDF:
		sort.SliceStable(work, func(i, j int) bool {
			if work[i].Deadline != work[j].Deadline {
				return work[i].Deadline < work[j].Deadline
			}
			return work[i].ArrivalTime < work[j].ArrivalTime
		})
		d.runInOrder(work)
	case PolicyRR:
		d.runRoundRobin(work, opts.Quantum)
	default:
		panic(fmt.Sprintf("unhandled policy %q", policy))
	}

	d.res.Processes = work
	d.res.EndTime = d.clock
	return d.res, nil
}

// FIFO dispatches processes in input order.
func FIFO(processes []Process) (*Result, error) {
	return Run(processes, PolicyFIFO, RunOptions{})
}

// SJF dispatches processes in (arrival, burst) order computed once up front.
func SJF(processes []Process) (*Result, error) {
	return Run(processes, PolicySJF, RunOptions{})
}

// RoundRobin time-slices processes with the given quantum.
func RoundRobin(processes []Process, quantum int64) (*Result, error) {
	return Run(processes, PolicyRR, RunOptions{Quantum: quantum})
}

// EDF dispatches processes in (deadline, arrival) order computed once up front.
func EDF(processes []Process) (*Result, error) {
	return Run(processes, PolicyEDF, RunOptions{})
}

func validateProcesses(processes []Process) error {
	seen := make(map[string]bool, len(processes))
	for i := range processes {
		if err := processes[i].Validate(); err != nil {
			return err
		}
		if seen[processes[i].ID] {
			return fmt.Errorf("%w: duplicate process id %q", ErrInvalidInput, processes[i].ID)
		}
		seen[processes[i].ID] = true
	}
	return nil
}

func validateQuantum(processes []Process, quantum int64) error {
	if quantum < 0 {
		return fmt.Errorf("%w: quantum must be positive, got %d", ErrInvalidInput, quantum)
	}
	if quantum > 0 {
		return nil
	}
	for _, p := range processes {
		if p.Quantum <= 0 {
			return fmt.Errorf("%w: process %q quantum must be positive, got %d", ErrInvalidInput, p.ID, p.Quantum)
		}
	}
	return nil
}

// dispatcher owns the logical clock of one run.
type dispatcher struct {
	clock int64
	res   *Result
}

// waitFor idles the CPU until p has arrived.
func (d *dispatcher) waitFor(p *Process) {
	if d.clock < p.ArrivalTime {
		d.res.IdleTime += p.ArrivalTime - d.clock
		d.clock = p.ArrivalTime
	}
}

// execute gives p the CPU for ticks, then charges its overhead.
func (d *dispatcher) execute(p *Process, ticks int64) {
	logrus.Debugf("[tick %07d] %s: dispatch %s for %d ticks", d.clock, d.res.Policy, p.ID, ticks)
	d.res.Segments = append(d.res.Segments, Segment{ProcessID: p.ID, Start: d.clock, Duration: ticks})
	p.RemainingTime -= ticks
	d.clock += ticks + p.Overhead
}

// runInOrder is the non-preemptive loop shared by FIFO, SJF and EDF.
func (d *dispatcher) runInOrder(work []Process) {
	for i := range work {
		p := &work[i]
		d.waitFor(p)
		d.execute(p, p.BurstTime)
	}
}

func (d *dispatcher) runRoundRobin(work []Process, quantum int64) {
	rq := &ReadyQueue{}
	for i := range work {
		rq.Enqueue(&work[i])
	}
	for rq.Len() > 0 {
		p := rq.Dequeue()
		d.waitFor(p)
		q := quantum
		if q <= 0 {
			q = p.Quantum
		}
		d.execute(p, min(p.RemainingTime, q))
		if !p.IsComplete() {
			logrus.Debugf("[tick %07d] rr: preempt %s (remaining=%d), queue=%s", d.clock, p.ID, p.RemainingTime, rq)
			rq.Enqueue(p)
		}
	}
}
