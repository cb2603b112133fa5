// Package sim provides the CPU scheduling engine for ossim.
//
// # Reading Guide
//
// Start with these files to understand the scheduling kernel:
//   - process.go: Process model (arrival, burst, deadline, remaining time)
//   - queue.go: FIFO ready queue used by Round-Robin
//   - scheduler.go: Policy selection and the dispatch loops that build a timeline
//   - metrics.go: Turnaround, waiting and deadline statistics derived from a timeline
//
// # Architecture
//
// The sim package owns the scheduler; the other engine and its supporting
// types live in sub-packages:
//   - sim/paging/: two-tier RAM/disk memory with FIFO and LRU replacement
//   - sim/trace/: run trace recording (pure data, no dependency on sim/)
//   - sim/workload/: YAML scenario loading and validation
//
// Neither engine depends on the other. Time is logical: every value is a
// tick count, never wall-clock time.
package sim
