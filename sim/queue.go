// Implements StateQueue, the ordered container behind each of the five
// lifecycle states. Membership transfer is always head-of-source to
// tail-of-destination; only an explicit Reorder changes relative order.

package sim

import (
	"fmt"
	"strings"
)

// StateQueue is a FIFO queue of processes in one lifecycle state.
// The Running queue holds at most one process (a single CPU); the engine
// enforces that by never dispatching while Running is non-empty.
type StateQueue struct {
	procs []*Process
}

// Enqueue adds a process to the back of the queue.
func (q *StateQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: p must not be nil")
	}
	q.procs = append(q.procs, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (q *StateQueue) Dequeue() *Process {
	if len(q.procs) == 0 {
		return nil
	}
	head := q.procs[0]
	q.procs = q.procs[1:]
	return head
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *StateQueue) Peek() *Process {
	if len(q.procs) == 0 {
		return nil
	}
	return q.procs[0]
}

// Tail returns the process at the back of the queue without removing it.
// Returns nil if the queue is empty.
func (q *StateQueue) Tail() *Process {
	if len(q.procs) == 0 {
		return nil
	}
	return q.procs[len(q.procs)-1]
}

// Len returns the number of processes in the queue.
func (q *StateQueue) Len() int {
	return len(q.procs)
}

// Empty reports whether the queue holds no processes.
func (q *StateQueue) Empty() bool {
	return len(q.procs) == 0
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers may iterate
// over it but MUST NOT append to or reslice it. For reordering, use
// Reorder() instead.
func (q *StateQueue) Items() []*Process {
	return q.procs
}

// Reorder applies fn to the queue contents, allowing in-place reordering.
// The policy re-sort is the primary consumer:
//
//	q.Reorder(func(procs []*Process) {
//	    sort.SliceStable(procs, ...)
//	})
//
// fn receives the underlying slice and may sort it in-place.
// fn MUST NOT change the slice length (no append/delete).
func (q *StateQueue) Reorder(fn func([]*Process)) {
	if fn == nil {
		panic("Reorder: fn must not be nil")
	}
	n := len(q.procs)
	fn(q.procs)
	if len(q.procs) != n {
		panic(fmt.Sprintf("Reorder: fn changed queue length from %d to %d", n, len(q.procs)))
	}
}

func (q *StateQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range q.procs {
		sb.WriteString(fmt.Sprint(p))
		if i < len(q.procs)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
