// Package sim provides the discrete-event simulation engine for procsim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: the Process record and its lifecycle states (New → Ready →
//     Running → Waiting → Terminated)
//   - event.go: the six transitions between states and the deterministic
//     tie-break order applied when several fall due at the same tick
//   - simulator.go: candidate event-time computation, selection of the next
//     transition, and the bookkeeping applied when it fires
//
// # Architecture
//
// The engine advances simulated time in jumps: each call to Advance computes
// the event time of every transition that could fire given the current queue
// contents, picks the earliest, applies it, and moves the clock there. There
// is no tick-by-tick stepping and no concurrency; the simulator is a pure
// state machine over five queues plus an integer clock.
//
// Sub-packages:
//   - sim/trace: transition records, text trace output, run summaries
//   - sim/workload: process descriptor parsing and synthetic generation
//
// Times that may be absent (a process that never does I/O, a transition that
// cannot currently fire) are represented by Span rather than a sentinel
// integer; arithmetic on Spans refuses to wrap, so an overflowing event time
// degrades to "no such event" instead of a bogus early one.
package sim
