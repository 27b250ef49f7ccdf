package trace

import "github.com/procsim/procsim/sim"

// Log collects transition records in memory, in event order. It implements
// sim.TraceSink.
type Log struct {
	Records []TransitionRecord
}

// NewLog creates a Log ready for recording.
func NewLog() *Log {
	return &Log{Records: make([]TransitionRecord, 0)}
}

// Record appends one transition record.
func (l *Log) Record(at int64, pid int, from, to sim.State) {
	l.Records = append(l.Records, TransitionRecord{
		At:       at,
		PID:      pid,
		OldState: from.String(),
		NewState: to.String(),
	})
}

// Multi fans one transition out to several sinks, e.g. a file writer plus an
// in-memory Log feeding Summarize.
func Multi(sinks ...sim.TraceSink) sim.TraceSink {
	return multiSink(sinks)
}

type multiSink []sim.TraceSink

func (m multiSink) Record(at int64, pid int, from, to sim.State) {
	for _, s := range m {
		s.Record(at, pid, from, to)
	}
}
