package trace

import "sort"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	RunID          string
	TotalSegments  int
	CPUTime        map[string]int64 // process ID → ticks executed
	Dispatches     map[string]int   // process ID → number of segments
	UniqueProcs    int
	PageEvents     int
	OutcomeCounts  map[string]int // outcome → count
	Evictions      int
	TotalLatency   int64
	HitRatio       float64 // hits / accesses (inserts excluded)
	MostDispatched string  // ties broken by smallest ID
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		CPUTime:       make(map[string]int64),
		Dispatches:    make(map[string]int),
		OutcomeCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}
	summary.RunID = st.RunID

	summary.TotalSegments = len(st.Segments)
	for _, s := range st.Segments {
		summary.CPUTime[s.ProcessID] += s.Duration
		summary.Dispatches[s.ProcessID]++
	}
	summary.UniqueProcs = len(summary.Dispatches)

	ids := make([]string, 0, len(summary.Dispatches))
	for id := range summary.Dispatches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	best := 0
	for _, id := range ids {
		if n := summary.Dispatches[id]; n > best {
			best = n
			summary.MostDispatched = id
		}
	}

	accesses := 0
	summary.PageEvents = len(st.Pages)
	for _, p := range st.Pages {
		summary.OutcomeCounts[p.Outcome]++
		summary.TotalLatency += p.Latency
		if p.Evicted != "" {
			summary.Evictions++
		}
		if p.Outcome != "insert" {
			accesses++
		}
	}
	if accesses > 0 {
		summary.HitRatio = float64(summary.OutcomeCounts["hit"]) / float64(accesses)
	}

	return summary
}
