// Package trace provides run-trace recording for scheduling and paging analysis.
// This package has no dependencies on sim/ or sim/paging/ — it stores pure data types.
package trace

// SegmentRecord captures one CPU dispatch.
type SegmentRecord struct {
	Policy    string
	ProcessID string
	Start     int64
	Duration  int64
}

// PageRecord captures one page access or direct insertion.
type PageRecord struct {
	ProcessID string
	Page      int
	Clock     int64
	Outcome   string // hit, disk-miss, cold-miss, not-found, insert
	Evicted   string // evicted page label; empty when nothing was evicted
	Latency   int64
}
