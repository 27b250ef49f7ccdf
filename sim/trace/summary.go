package trace

import "sort"

// ProcessStats aggregates one terminated process's timings, all in ticks.
type ProcessStats struct {
	PID            int   `json:"pid"`
	ResponseTime   int64 `json:"response_time"`    // arrival to first dispatch
	TurnaroundTime int64 `json:"turn_around_time"` // arrival to termination
	WaitingTime    int64 `json:"waiting_time"`     // total ticks spent in READY
}

// Summary aggregates statistics for one simulation run.
type Summary struct {
	TotalTime      int64   `json:"total_time"` // clock at the last transition
	BusyTime       int64   `json:"busy_time"`  // ticks the CPU held a process
	CPUUtilization float64 `json:"cpu_utilization"`
	Throughput     float64 `json:"cpu_throughput"` // completions per tick

	Completed             int     `json:"completed"`
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageResponseTime   float64 `json:"average_response_time"`
	AverageTurnAroundTime float64 `json:"average_turn_around_time"`

	PerProcess []ProcessStats `json:"details"` // terminated processes, ascending PID
}

// lifetime tracks one process while replaying the record log.
type lifetime struct {
	arrival      int64
	firstRunSet  bool
	firstRunAt   int64
	enteredAt    int64 // when the process entered its current state
	waitingTicks int64 // accumulated READY time
	terminated   bool
	terminatedAt int64
}

// Summarize computes aggregate statistics from a run's record log.
// Safe for nil or empty logs (returns zero-value fields). Processes that
// never terminate (stuck quantum/interval combinations) are excluded from
// the per-process stats and averages but still contribute busy time.
func Summarize(l *Log) *Summary {
	summary := &Summary{PerProcess: make([]ProcessStats, 0)}
	if l == nil || len(l.Records) == 0 {
		return summary
	}

	procs := make(map[int]*lifetime)
	for _, rec := range l.Records {
		lt, seen := procs[rec.PID]
		if !seen {
			// The first record for a PID is its NEW->READY move, which
			// fires exactly at its arrival time.
			lt = &lifetime{arrival: rec.At}
			procs[rec.PID] = lt
		}

		switch rec.OldState {
		case "READY":
			lt.waitingTicks += rec.At - lt.enteredAt
		case "RUNNING":
			summary.BusyTime += rec.At - lt.enteredAt
		}

		switch rec.NewState {
		case "RUNNING":
			if !lt.firstRunSet {
				lt.firstRunSet = true
				lt.firstRunAt = rec.At
			}
		case "TERMINATED":
			lt.terminated = true
			lt.terminatedAt = rec.At
		}
		lt.enteredAt = rec.At
	}
	summary.TotalTime = l.Records[len(l.Records)-1].At

	var waitingSum, responseSum, turnaroundSum int64
	for pid, lt := range procs {
		if !lt.terminated {
			continue
		}
		stats := ProcessStats{
			PID:            pid,
			ResponseTime:   lt.firstRunAt - lt.arrival,
			TurnaroundTime: lt.terminatedAt - lt.arrival,
			WaitingTime:    lt.waitingTicks,
		}
		summary.PerProcess = append(summary.PerProcess, stats)
		waitingSum += stats.WaitingTime
		responseSum += stats.ResponseTime
		turnaroundSum += stats.TurnaroundTime
	}
	sort.Slice(summary.PerProcess, func(i, j int) bool {
		return summary.PerProcess[i].PID < summary.PerProcess[j].PID
	})

	summary.Completed = len(summary.PerProcess)
	if summary.Completed > 0 {
		n := float64(summary.Completed)
		summary.AverageWaitingTime = float64(waitingSum) / n
		summary.AverageResponseTime = float64(responseSum) / n
		summary.AverageTurnAroundTime = float64(turnaroundSum) / n
	}
	if summary.TotalTime > 0 {
		summary.CPUUtilization = float64(summary.BusyTime) / float64(summary.TotalTime)
		summary.Throughput = float64(summary.Completed) / float64(summary.TotalTime)
	}
	return summary
}
