package trace

import (
	"fmt"
	"io"

	"github.com/procsim/procsim/sim"
)

// Writer renders transition records as human-readable text, one line per
// transition, preceded by a two-line header written once per run:
//
//	--- FIRST COME FIRST SERVE SCHEDULING SIMULATION ---
//	time	pid	old state	new state
//	0	1	NEW		READY
//
// It implements sim.TraceSink. Write errors are sticky: the first one is
// kept and later records become no-ops, so the engine never sees I/O
// failures mid-run.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps an output sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the run header for the named policy.
func (tw *Writer) WriteHeader(policy sim.Policy) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, "--- %s SCHEDULING SIMULATION ---\ntime\tpid\told state\tnew state\n", policy.Title())
}

// Record writes one transition line.
func (tw *Writer) Record(at int64, pid int, from, to sim.State) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, "%d\t%d\t%s\t\t%s\n", at, pid, from, to)
}

// Err returns the first write error encountered, if any.
func (tw *Writer) Err() error {
	return tw.err
}
