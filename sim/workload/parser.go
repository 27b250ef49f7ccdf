// Package workload loads and generates the process sets a simulation runs
// over. The input format is one process per line, six comma-separated
// integers:
//
//	pid,arrival,total burst,io interval,io duration,quantum
//
// Non-positive io interval, io duration or quantum mean "never"; negative
// arrival or total burst are clamped to zero.
package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/procsim/procsim/sim"
)

// fieldsPerRecord is the number of values in one process descriptor.
const fieldsPerRecord = 6

// FromValues builds a Process from one raw descriptor, applying the
// clamping rules above. This is the single place raw integers become Span
// fields; the file parser, the generator and the HTTP API all funnel
// through it.
func FromValues(pid int, arrival, totalBurst, ioInterval, ioDuration, quantum int64) *sim.Process {
	return sim.NewProcess(pid,
		clampTime(arrival),
		clampTime(totalBurst),
		clampSpan(ioInterval),
		clampSpan(ioDuration),
		clampSpan(quantum))
}

func clampTime(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampSpan(v int64) sim.Span {
	if v <= 0 {
		return sim.Never()
	}
	return sim.SpanOf(v)
}

// Parse reads process descriptors from r. Blank lines are skipped; any
// malformed line aborts the parse, since a partial process set has no
// well-defined simulation.
func Parse(r io.Reader) ([]*sim.Process, error) {
	var procs []*sim.Process

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != fieldsPerRecord {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineno, fieldsPerRecord, len(fields))
		}
		vals := make([]int64, fieldsPerRecord)
		for i, f := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineno, i+1, err)
			}
			vals[i] = v
		}
		procs = append(procs, FromValues(int(vals[0]), vals[1], vals[2], vals[3], vals[4], vals[5]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}
	return procs, nil
}

// ParseFile reads process descriptors from the named file.
func ParseFile(path string) ([]*sim.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	procs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return procs, nil
}

// WriteInput renders processes in the input format, so generated workloads
// round-trip through Parse. Absent spans are written as 0.
func WriteInput(w io.Writer, procs []*sim.Process) error {
	for _, p := range procs {
		_, err := fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d\n",
			p.PID, p.Arrival, p.TotalBurst,
			spanOrZero(p.IOInterval), spanOrZero(p.IODuration), spanOrZero(p.Quantum))
		if err != nil {
			return err
		}
	}
	return nil
}

func spanOrZero(s sim.Span) int64 {
	if s.IsNever() {
		return 0
	}
	return s.Ticks()
}
