// Implements the ReadyQueue, which holds processes waiting for the CPU.
// Round-Robin re-enqueues preempted processes at the tail.

package sim

import (
	"strings"
)

// ReadyQueue represents a FIFO queue of processes waiting to be dispatched.
type ReadyQueue struct {
	queue []*Process // FIFO queue of processes
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	rq.queue = append(rq.queue, p)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(p.ID)
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	head := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return head
}

// IDs returns the queued process IDs in dispatch order.
func (rq *ReadyQueue) IDs() []string {
	ids := make([]string, len(rq.queue))
	for i, p := range rq.queue {
		ids[i] = p.ID
	}
	return ids
}
