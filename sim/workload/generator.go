package workload

import (
	"math/rand"

	"github.com/procsim/procsim/sim"
)

// GeneratorConfig controls synthetic process-set generation. Two runs with
// the same config produce identical process sets.
type GeneratorConfig struct {
	Count int   // number of processes
	Seed  int64 // RNG seed

	MaxArrival int64 // arrivals drawn uniformly from [0, MaxArrival]
	MinBurst   int64 // total burst drawn uniformly from [MinBurst, MaxBurst]
	MaxBurst   int64

	IOFraction    float64 // fraction of processes given an I/O cadence
	MaxIOInterval int64   // io interval drawn from [1, MaxIOInterval]
	MaxIODuration int64   // io duration drawn from [1, MaxIODuration]

	PreemptFraction float64 // fraction of processes given a finite quantum
	MaxQuantum      int64   // quantum drawn from [1, MaxQuantum]
}

// DefaultGeneratorConfig returns a small mixed workload: some pure-CPU
// processes, some with I/O, some preemptible.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Count:           10,
		Seed:            42,
		MaxArrival:      20,
		MinBurst:        1,
		MaxBurst:        25,
		IOFraction:      0.5,
		MaxIOInterval:   5,
		MaxIODuration:   4,
		PreemptFraction: 0.5,
		MaxQuantum:      3,
	}
}

// Generate produces a deterministic pseudo-random process set. PIDs are
// assigned 1..Count in order.
func Generate(cfg GeneratorConfig) []*sim.Process {
	rng := rand.New(rand.NewSource(cfg.Seed))

	procs := make([]*sim.Process, 0, cfg.Count)
	for pid := 1; pid <= cfg.Count; pid++ {
		arrival := rng.Int63n(cfg.MaxArrival + 1)
		burst := cfg.MinBurst + rng.Int63n(cfg.MaxBurst-cfg.MinBurst+1)

		// Draw every value regardless of the fraction gates so that
		// toggling a fraction does not shift the rest of the stream.
		ioInterval := 1 + rng.Int63n(cfg.MaxIOInterval)
		ioDuration := 1 + rng.Int63n(cfg.MaxIODuration)
		doesIO := rng.Float64() < cfg.IOFraction
		quantum := 1 + rng.Int63n(cfg.MaxQuantum)
		preempts := rng.Float64() < cfg.PreemptFraction

		if !doesIO {
			ioInterval, ioDuration = 0, 0
		}
		if !preempts {
			quantum = 0
		}
		procs = append(procs, FromValues(pid, arrival, burst, ioInterval, ioDuration, quantum))
	}
	return procs
}
