// Drives the engines from a Scenario: one scheduling run per policy on fresh
// process copies, and one paging replay that preloads each process's pages.

package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ossim/ossim/sim"
	"github.com/ossim/ossim/sim/paging"
	"github.com/ossim/ossim/sim/trace"
)

// PagingRun is the outcome of replaying a scenario's access sequence.
type PagingRun struct {
	Memory   *paging.Memory
	Preload  []paging.PageKey      // pages evicted while loading process pages
	Results  []paging.AccessResult // one per access, in order
	NotFound []error               // informational ErrPageNotFound errors
}

// RunSchedule runs one policy over fresh copies of the scenario's processes
// and records every segment into st (which may be nil).
func RunSchedule(s *Scenario, policy sim.Policy, st *trace.SimulationTrace) (*sim.Result, error) {
	res, err := sim.Run(s.Processes(), policy, sim.RunOptions{Quantum: s.Quantum})
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", policy, err)
	}
	if st != nil {
		for _, seg := range res.Segments {
			st.RecordSegment(trace.SegmentRecord{
				Policy:    string(res.Policy),
				ProcessID: seg.ProcessID,
				Start:     seg.Start,
				Duration:  seg.Duration,
			})
		}
	}
	logrus.Infof("%s: %d segments, end time %d", policy, len(res.Segments), res.EndTime)
	return res, nil
}

// RunAllSchedules runs every policy, each on its own copy of the processes.
func RunAllSchedules(s *Scenario, st *trace.SimulationTrace) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(sim.AllPolicies()))
	for _, p := range sim.AllPolicies() {
		res, err := RunSchedule(s, p, st)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunPaging builds the scenario's memory, loads every process's pages with
// the fault policy, then replays the access sequence. Not-found accesses are
// collected, never fatal.
func RunPaging(s *Scenario, st *trace.SimulationTrace) (*PagingRun, error) {
	mem, err := s.Memory.NewMemory()
	if err != nil {
		return nil, err
	}
	run := &PagingRun{Memory: mem}

	for _, p := range s.Processes {
		for _, page := range p.Pages {
			evicted, ok := mem.Insert(p.ID, page, mem.FaultPolicy())
			rec := trace.PageRecord{ProcessID: p.ID, Page: page, Clock: mem.Clock(), Outcome: "insert"}
			if ok {
				run.Preload = append(run.Preload, evicted)
				rec.Evicted = evicted.String()
			}
			if st != nil {
				st.RecordPage(rec)
			}
		}
	}

	run.Results = make([]paging.AccessResult, 0, len(s.Accesses))
	for _, a := range s.Accesses {
		res := mem.Access(a.Process, a.Page)
		run.Results = append(run.Results, res)
		if err := res.Err(); err != nil {
			run.NotFound = append(run.NotFound, err)
		}
		if st != nil {
			rec := trace.PageRecord{
				ProcessID: a.Process,
				Page:      a.Page,
				Clock:     res.Clock,
				Outcome:   string(res.Outcome),
				Latency:   res.Latency,
			}
			if res.DidEvict {
				rec.Evicted = res.Evicted.String()
			}
			st.RecordPage(rec)
		}
	}
	stats := mem.Stats()
	logrus.Infof("paging: %d accesses, %d hits, %d disk misses, %d not found, %d evictions",
		stats.Accesses, stats.Hits, stats.DiskMisses, stats.NotFound, stats.Evictions)
	return run, nil
}
