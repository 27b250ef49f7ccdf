// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"
)

// TraceSink receives one record per applied transition. The write is a side
// effect only; nothing the sink does feeds back into scheduling decisions.
type TraceSink interface {
	Record(at int64, pid int, from, to State)
}

// Simulator is the core object that holds simulation time, the five state
// queues, and the event-selection engine. One Simulator owns one run: queues
// are never shared across runs, and a fresh Simulator must be built per run.
type Simulator struct {
	Clock  int64
	Policy Policy
	// TieBreak resolves simultaneous candidates. Defaults to DefaultTieBreak.
	TieBreak TieBreakOrder

	New        *StateQueue
	Ready      *StateQueue
	Running    *StateQueue
	Waiting    *StateQueue
	Terminated *StateQueue

	// Trace receives a record per transition; nil disables tracing.
	Trace TraceSink

	steps int
}

// NewSimulator builds a run over the given processes. The processes are
// enqueued into New in input order and then sorted by arrival, so the head
// of New is always the next arrival.
func NewSimulator(policy Policy, procs []*Process, sink TraceSink) *Simulator {
	s := &Simulator{
		Clock:      0,
		Policy:     policy,
		TieBreak:   DefaultTieBreak,
		New:        &StateQueue{},
		Ready:      &StateQueue{},
		Running:    &StateQueue{},
		Waiting:    &StateQueue{},
		Terminated: &StateQueue{},
		Trace:      sink,
	}
	for _, p := range procs {
		s.New.Enqueue(p)
	}
	SortByArrival(s.New)
	return s
}

// Queue returns the queue holding processes in the given state.
func (s *Simulator) Queue(state State) *StateQueue {
	switch state {
	case StateNew:
		return s.New
	case StateReady:
		return s.Ready
	case StateRunning:
		return s.Running
	case StateWaiting:
		return s.Waiting
	case StateTerminated:
		return s.Terminated
	default:
		panic("no queue for state " + state.String())
	}
}

// candidate computes the event time at which a transition would fire given
// the current queue contents and clock. ok is false when the transition is
// not applicable right now (empty source, absent span, or an event time past
// the representable horizon).
func (s *Simulator) candidate(tr Transition) (at int64, ok bool) {
	switch tr {
	case NewToReady:
		// New is kept arrival-sorted, so its head is the next arrival.
		if s.New.Empty() {
			return 0, false
		}
		return s.New.Peek().Arrival, true

	case ReadyToRunning:
		// Dispatch only onto an idle CPU. A process cannot start before it
		// arrives, but also cannot start before now.
		if s.Ready.Empty() || !s.Running.Empty() {
			return 0, false
		}
		return max(s.Clock, s.Ready.Peek().Arrival), true

	case RunningToWaiting:
		if s.Running.Empty() {
			return 0, false
		}
		run := s.Running.Peek()
		return run.IOInterval.after(run.LastScheduledAt)

	case RunningToTerminated:
		// When the running process would finish if left uninterrupted.
		if s.Running.Empty() {
			return 0, false
		}
		run := s.Running.Peek()
		return SpanOf(run.Remaining).after(run.LastScheduledAt)

	case WaitingToReady:
		if s.Waiting.Empty() {
			return 0, false
		}
		w := s.Waiting.Peek()
		return w.IODuration.after(w.LastIOStartedAt)

	case RunningToReady:
		if s.Running.Empty() {
			return 0, false
		}
		run := s.Running.Peek()
		return run.Quantum.after(run.LastScheduledAt)

	default:
		panic("invalid transition")
	}
}

// Advance selects and applies the single next transition. It returns the
// applied step and true, or a zero Step and false when no candidate remains
// (the run is complete). Successive event times are non-decreasing.
func (s *Simulator) Advance() (Step, bool) {
	move, at, ok := s.selectNext()
	if !ok {
		return Step{}, false
	}
	s.Clock = at
	pid := s.apply(move, at)
	s.steps++

	step := Step{At: at, PID: pid, Move: move}
	logrus.Debugf("%v", step)
	return step, true
}

// selectNext picks the candidate with the minimum event time, applying the
// tie-break order to simultaneous candidates.
func (s *Simulator) selectNext() (Transition, int64, bool) {
	var (
		best   int64
		found  bool
		winner Transition
	)
	// Scan in tie-break order with a strict < so the first transition at the
	// minimum time wins.
	order := s.TieBreak
	if order == nil {
		order = DefaultTieBreak
	}
	if err := order.Validate(); err != nil {
		panic(err)
	}
	for _, tr := range order {
		at, ok := s.candidate(tr)
		if !ok {
			continue
		}
		if !found || at < best {
			best, winner, found = at, tr, true
		}
	}
	return winner, best, found
}

// apply moves the head of the transition's source queue to the tail of its
// destination queue, performs the transition's bookkeeping, and records the
// trace entry. Returns the moved process's PID.
func (s *Simulator) apply(move Transition, at int64) int {
	from := s.Queue(move.Source())
	to := s.Queue(move.Dest())

	p := from.Dequeue()
	if p == nil {
		panic("apply: source queue empty for " + move.String())
	}
	to.Enqueue(p)

	resort := false
	switch move {
	case NewToReady:
		resort = true
	case ReadyToRunning:
		p.LastScheduledAt = at
	case RunningToTerminated:
		p.Remaining = 0
	case RunningToWaiting:
		p.Remaining -= p.IOInterval.Ticks()
		p.LastIOStartedAt = at
	case WaitingToReady:
		resort = true
	case RunningToReady:
		p.Remaining -= p.Quantum.Ticks()
		resort = true
	}
	if resort {
		s.Policy.SortReady(s.Ready)
	}

	if s.Trace != nil {
		s.Trace.Record(at, p.PID, move.Source(), move.Dest())
	}
	return p.PID
}

// Run drives Advance until no event remains and returns the final clock.
func (s *Simulator) Run() int64 {
	for {
		if _, ok := s.Advance(); !ok {
			break
		}
	}
	logrus.Infof("[tick %07d] simulation ended after %d transitions (%s)", s.Clock, s.steps, s.Policy)
	return s.Clock
}

// Steps returns the number of transitions applied so far.
func (s *Simulator) Steps() int {
	return s.steps
}
