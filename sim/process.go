// Defines the Process record that models a single unit of simulated work,
// and the lifecycle states it moves through.

package sim

import "fmt"

// State is the lifecycle state of a Process. Each state corresponds to one
// of the simulator's five queues.
type State int

const (
	StateNew State = iota
	StateReady
	StateRunning
	StateWaiting
	StateTerminated
)

// String returns the trace name of the state. Invalid values map to UNKNOWN.
func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateWaiting:
		return "WAITING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Process models a single process's lifecycle in the simulation.
// Each process has:
// - an arrival time and a total CPU burst
// - an optional I/O cadence (run IOInterval ticks, then wait IODuration ticks)
// - an optional preemption quantum (round-robin time slice)
// - remaining-burst accounting and scheduling timestamps
type Process struct {
	PID     int   // Unique identifier
	Arrival int64 // Tick at which the process becomes eligible to run

	TotalBurst int64 // Total CPU ticks required to finish
	Remaining  int64 // CPU ticks left; TotalBurst at creation, 0 at termination

	IOInterval Span // CPU ticks the process runs before it needs I/O; Never disables I/O
	IODuration Span // Ticks one I/O operation takes; Never disables I/O
	Quantum    Span // Preemption time slice; Never disables preemption

	LastScheduledAt int64 // Tick the process last entered Running; meaningful only after first dispatch
	LastIOStartedAt int64 // Tick the process last entered Waiting; meaningful only after first I/O
}

// NewProcess builds a Process with remaining burst initialized to the total.
// Inputs are taken as already clamped (see sim/workload for the clamping
// rules applied to raw descriptors).
func NewProcess(pid int, arrival, totalBurst int64, ioInterval, ioDuration, quantum Span) *Process {
	return &Process{
		PID:        pid,
		Arrival:    arrival,
		TotalBurst: totalBurst,
		Remaining:  totalBurst,
		IOInterval: ioInterval,
		IODuration: ioDuration,
		Quantum:    quantum,
	}
}

// String returns a human-readable representation of the Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, Arrival: %d, Remaining: %d/%d)", p.PID, p.Arrival, p.Remaining, p.TotalBurst)
}
