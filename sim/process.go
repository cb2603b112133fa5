// Defines the Process struct that models one unit of schedulable work.
// Tracks arrival, burst and deadline plus the remaining-time counter consumed by Round-Robin.

package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every validation failure that rejects a
// process set before a simulation run starts.
var ErrInvalidInput = errors.New("invalid input")

// Process models a single schedulable job.
// Quantum and Overhead are system-wide values carried on each process.
type Process struct {
	ID string // Unique identifier, stable for the process's lifetime

	ArrivalTime   int64 // Tick at which the process becomes eligible to run
	BurstTime     int64 // Total execution ticks required
	Deadline      int64 // Target completion tick, read only by EDF ordering
	RemainingTime int64 // Ticks still owed; 0 exactly when the process is complete
	Quantum       int64 // Round-Robin time slice
	Overhead      int64 // Fixed cost charged after every dispatch

	Pages []int // Page identifiers owned by this process (used by sim/paging)
}

// NewProcess constructs a Process with RemainingTime initialized to burst.
func NewProcess(id string, arrival, burst, deadline, quantum, overhead int64, pages []int) Process {
	return Process{
		ID:            id,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		Deadline:      deadline,
		RemainingTime: burst,
		Quantum:       quantum,
		Overhead:      overhead,
		Pages:         append([]int(nil), pages...),
	}
}

// IsComplete reports whether the process has received all of its burst.
func (p *Process) IsComplete() bool {
	return p.RemainingTime == 0
}

// Validate checks the per-process invariants. The returned error wraps ErrInvalidInput.
func (p *Process) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: process id must not be empty", ErrInvalidInput)
	}
	if p.ArrivalTime < 0 {
		return fmt.Errorf("%w: process %q arrival_time must be non-negative, got %d", ErrInvalidInput, p.ID, p.ArrivalTime)
	}
	if p.BurstTime <= 0 {
		return fmt.Errorf("%w: process %q burst_time must be positive, got %d", ErrInvalidInput, p.ID, p.BurstTime)
	}
	if p.Overhead < 0 {
		return fmt.Errorf("%w: process %q overhead must be non-negative, got %d", ErrInvalidInput, p.ID, p.Overhead)
	}
	if p.RemainingTime < 0 || p.RemainingTime > p.BurstTime {
		return fmt.Errorf("%w: process %q remaining_time %d outside [0, %d]", ErrInvalidInput, p.ID, p.RemainingTime, p.BurstTime)
	}
	return nil
}

// clone returns a deep copy so a run can mutate RemainingTime freely.
func (p Process) clone() Process {
	p.Pages = append([]int(nil), p.Pages...)
	return p
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %s, Arrival: %d, Burst: %d, Deadline: %d, Remaining: %d, Pages: %v)",
		p.ID, p.ArrivalTime, p.BurstTime, p.Deadline, p.RemainingTime, p.Pages)
}
