// Package trace records the transitions of a simulation run and derives
// per-run statistics from them. A run's trace is its complete, ordered log
// of state changes; everything here is computed from that log alone.
package trace

// TransitionRecord captures a single applied transition.
type TransitionRecord struct {
	At       int64  `json:"time"`
	PID      int    `json:"pid"`
	OldState string `json:"old_state"`
	NewState string `json:"new_state"`
}
