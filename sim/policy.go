// Ready-queue ordering policies. The set is closed: three total orders over
// processes, dispatched by name. Round-robin is not a policy here -- it is
// the per-process Quantum field, and applies under any policy.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Policy selects the comparator that keeps the Ready queue ordered.
type Policy string

const (
	// PolicyFCFS is First Come First Serve: Ready stays in insertion order.
	PolicyFCFS Policy = "fcfs"
	// PolicySJF is Shortest Job First: Ready is kept sorted by total burst.
	PolicySJF Policy = "sjf"
	// PolicySRTF is Shortest Remaining Time First: Ready is kept sorted by
	// remaining burst.
	PolicySRTF Policy = "srtf"
)

// ParsePolicy maps a user-supplied name to a Policy, case-insensitively.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(name)) {
	case PolicyFCFS:
		return PolicyFCFS, nil
	case PolicySJF:
		return PolicySJF, nil
	case PolicySRTF:
		return PolicySRTF, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want fcfs, sjf or srtf)", name)
	}
}

// Title returns the policy's display name for trace headers.
func (p Policy) Title() string {
	switch p {
	case PolicyFCFS:
		return "FIRST COME FIRST SERVE"
	case PolicySJF:
		return "SHORTEST JOB FIRST"
	case PolicySRTF:
		return "SHORTEST REMAINING TIME FIRST"
	default:
		panic(fmt.Sprintf("unknown policy %q", string(p)))
	}
}

// Resorts reports whether insertions into Ready trigger a re-sort under this
// policy. FCFS leaves Ready as FIFO-by-insertion, which is what turns a
// finite quantum into round-robin behavior.
func (p Policy) Resorts() bool {
	return p == PolicySJF || p == PolicySRTF
}

// less is the policy's total order over processes. Ties are broken by the
// existing relative order (stable sort), never here, so traces are
// reproducible.
func (p Policy) less(a, b *Process) bool {
	switch p {
	case PolicySJF:
		return a.TotalBurst < b.TotalBurst
	case PolicySRTF:
		return a.Remaining < b.Remaining
	default:
		return a.Arrival < b.Arrival
	}
}

// SortReady re-sorts the Ready queue under this policy. No-op for FCFS.
func (p Policy) SortReady(q *StateQueue) {
	if !p.Resorts() {
		return
	}
	q.Reorder(func(procs []*Process) {
		sort.SliceStable(procs, func(i, j int) bool {
			return p.less(procs[i], procs[j])
		})
	})
}

// SortByArrival sorts a queue by arrival time, earliest first, keeping the
// input order of simultaneous arrivals. Used once per run to put the New
// queue in arrival order before the first Advance.
func SortByArrival(q *StateQueue) {
	q.Reorder(func(procs []*Process) {
		sort.SliceStable(procs, func(i, j int) bool {
			return procs[i].Arrival < procs[j].Arrival
		})
	})
}
