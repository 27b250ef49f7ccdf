// The six legal state transitions and the deterministic order used to break
// ties when several fall due at the same tick.

package sim

import "fmt"

// Transition identifies one edge of the process state machine. No edge
// re-enters New or leaves Terminated.
type Transition int

const (
	NewToReady Transition = iota
	ReadyToRunning
	RunningToWaiting
	RunningToTerminated
	WaitingToReady
	RunningToReady // preemption (quantum expiry)

	numTransitions = 6
)

// Source returns the queue a transition pops from.
func (tr Transition) Source() State {
	switch tr {
	case NewToReady:
		return StateNew
	case ReadyToRunning:
		return StateReady
	case RunningToWaiting, RunningToTerminated, RunningToReady:
		return StateRunning
	case WaitingToReady:
		return StateWaiting
	default:
		panic(fmt.Sprintf("invalid transition %d", int(tr)))
	}
}

// Dest returns the queue a transition pushes to.
func (tr Transition) Dest() State {
	switch tr {
	case NewToReady, WaitingToReady, RunningToReady:
		return StateReady
	case ReadyToRunning:
		return StateRunning
	case RunningToWaiting:
		return StateWaiting
	case RunningToTerminated:
		return StateTerminated
	default:
		panic(fmt.Sprintf("invalid transition %d", int(tr)))
	}
}

func (tr Transition) String() string {
	return fmt.Sprintf("%v->%v", tr.Source(), tr.Dest())
}

// TieBreakOrder fixes which transition wins when more than one candidate
// shares the minimum event time. It must list each of the six transitions
// exactly once.
type TieBreakOrder []Transition

// DefaultTieBreak is the order the original simulation applied, preserved so
// traces reproduce byte for byte. Note it prefers waiting->ready over
// ready->running; callers wanting different semantics pass their own order
// to the Simulator rather than editing this one.
var DefaultTieBreak = TieBreakOrder{
	WaitingToReady,
	NewToReady,
	RunningToReady,
	RunningToWaiting,
	RunningToTerminated,
	ReadyToRunning,
}

// Validate checks the order covers all six transitions exactly once.
func (o TieBreakOrder) Validate() error {
	if len(o) != numTransitions {
		return fmt.Errorf("tie-break order has %d entries, want %d", len(o), numTransitions)
	}
	var seen [numTransitions]bool
	for _, tr := range o {
		if tr < 0 || tr >= numTransitions {
			return fmt.Errorf("tie-break order contains invalid transition %d", int(tr))
		}
		if seen[tr] {
			return fmt.Errorf("tie-break order lists %v twice", tr)
		}
		seen[tr] = true
	}
	return nil
}

// Step describes one applied transition: what moved, where, and when. At is
// the simulation clock after the step.
type Step struct {
	At   int64
	PID  int
	Move Transition
}

func (s Step) String() string {
	return fmt.Sprintf("[tick %07d] pid=%d %v", s.At, s.PID, s.Move)
}
