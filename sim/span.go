package sim

import "math"

// Span is an optional duration in ticks. The zero value is Never, meaning
// "no such duration": a process with IOInterval == Never() does no I/O, one
// with Quantum == Never() is not preempted. Spans replace the magic
// maximum-integer sentinel of classic implementations; the selection
// semantics are identical but absent values cannot leak into arithmetic.
type Span struct {
	ticks int64
	set   bool
}

// Never returns the absent Span.
func Never() Span { return Span{} }

// SpanOf returns a present Span of t ticks. t must be non-negative.
func SpanOf(t int64) Span {
	if t < 0 {
		panic("SpanOf: negative tick count")
	}
	return Span{ticks: t, set: true}
}

// IsNever reports whether the Span is absent.
func (s Span) IsNever() bool { return !s.set }

// Ticks returns the duration. It panics when the Span is absent; callers
// check IsNever first, or arrive here through a transition that is only
// applicable when the Span is present.
func (s Span) Ticks() int64 {
	if !s.set {
		panic("Ticks called on absent Span")
	}
	return s.ticks
}

// after returns base + s as a candidate event time. The result is absent
// when s is absent or when the sum would overflow: an event time past the
// representable horizon means the event never fires, exactly like an absent
// input.
func (s Span) after(base int64) (int64, bool) {
	if !s.set {
		return 0, false
	}
	if s.ticks > math.MaxInt64-base {
		return 0, false
	}
	return base + s.ticks, true
}
