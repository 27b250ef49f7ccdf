package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsim/procsim/api"
	"github.com/procsim/procsim/config"
	sim "github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/trace"
	"github.com/procsim/procsim/sim/workload"
)

var (
	// CLI flags shared across subcommands
	logLevel string // Log verbosity level

	// `run` flags
	inputPath   string // Process descriptor file
	outputPath  string // Trace output file ("" = stdout)
	policyName  string // Scheduling policy (fcfs, sjf, srtf)
	showSummary bool   // Print run statistics after the trace

	// `batch` flags
	batchConfigPath string // YAML batch-run config ("" = built-in defaults)

	// `generate` flags
	genCount       int     // Number of processes
	genSeed        int64   // RNG seed
	genOutputPath  string  // Output file ("" = stdout)
	genMaxArrival  int64   // Latest possible arrival tick
	genMaxBurst    int64   // Largest total burst
	genIOFraction  float64 // Fraction of processes doing I/O
	genPreemptFrac float64 // Fraction of processes with a finite quantum
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Discrete-event simulator for single-CPU process scheduling",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes one simulation from an input file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		if inputPath == "" {
			logrus.Fatalf("No input file provided. Exiting simulation.")
		}
		policy, err := sim.ParsePolicy(policyName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		procs, err := workload.ParseFile(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load workload: %v", err)
		}
		logrus.Infof("Loaded %d processes from %s", len(procs), inputPath)

		out := io.Writer(os.Stdout)
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Failed to create trace file: %v", err)
			}
			defer f.Close()
			out = f
		}

		log := simulate(policy, procs, out)
		if showSummary {
			printSummary(trace.Summarize(log))
		}
	},
}

// batchCmd mirrors the classic driver: one simulation per configured
// input/policy/output triple, with a fresh queue set per run.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of simulations from a YAML config",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := defaultBatchConfig()
		if batchConfigPath != "" {
			loaded, err := loadBatchConfig(batchConfigPath)
			if err != nil {
				logrus.Fatalf("Failed to load batch config: %v", err)
			}
			cfg = loaded
		}

		for _, run := range cfg.Runs {
			policy, err := sim.ParsePolicy(run.Policy)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			procs, err := workload.ParseFile(run.Input)
			if err != nil {
				logrus.Fatalf("Failed to load workload: %v", err)
			}

			f, err := os.Create(run.Output)
			if err != nil {
				logrus.Fatalf("Failed to create trace file: %v", err)
			}
			simulate(policy, procs, f)
			if err := f.Close(); err != nil {
				logrus.Fatalf("Failed to write trace file: %v", err)
			}
			logrus.Infof("%s simulation trace written to: %s", policy.Title(), run.Output)
		}
	},
}

// generateCmd emits a synthetic workload in the input format
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic process workload",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := workload.DefaultGeneratorConfig()
		cfg.Count = genCount
		cfg.Seed = genSeed
		cfg.MaxArrival = genMaxArrival
		cfg.MaxBurst = genMaxBurst
		cfg.IOFraction = genIOFraction
		cfg.PreemptFraction = genPreemptFrac

		procs := workload.Generate(cfg)

		out := io.Writer(os.Stdout)
		if genOutputPath != "" {
			f, err := os.Create(genOutputPath)
			if err != nil {
				logrus.Fatalf("Failed to create workload file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := workload.WriteInput(out, procs); err != nil {
			logrus.Fatalf("Failed to write workload: %v", err)
		}
	},
}

// serveCmd exposes the simulator over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.GetServerConfig()
		app := api.NewApp(cfg)
		logrus.Infof("Listening on :%d", cfg.Port)
		logrus.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
	},
}

// simulate runs one full simulation, writing the text trace to out, and
// returns the in-memory record log for summarizing.
func simulate(policy sim.Policy, procs []*sim.Process, out io.Writer) *trace.Log {
	w := trace.NewWriter(out)
	w.WriteHeader(policy)

	log := trace.NewLog()
	s := sim.NewSimulator(policy, procs, trace.Multi(w, log))
	s.Run()

	if err := w.Err(); err != nil {
		logrus.Fatalf("Failed to write trace: %v", err)
	}
	return log
}

func printSummary(s *trace.Summary) {
	fmt.Printf("\ncompleted: %d  total time: %d  busy: %d  utilization: %.3f  throughput: %.4f\n",
		s.Completed, s.TotalTime, s.BusyTime, s.CPUUtilization, s.Throughput)
	fmt.Printf("averages: waiting=%.2f response=%.2f turnaround=%.2f\n",
		s.AverageWaitingTime, s.AverageResponseTime, s.AverageTurnAroundTime)
	for _, p := range s.PerProcess {
		fmt.Printf("pid %d: response=%d turnaround=%d waiting=%d\n",
			p.PID, p.ResponseTime, p.TurnaroundTime, p.WaitingTime)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&inputPath, "input", "", "Process descriptor file (pid,arrival,burst,io-interval,io-duration,quantum per line)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Trace output file (default stdout)")
	runCmd.Flags().StringVar(&policyName, "policy", "fcfs", "Scheduling policy (fcfs, sjf, srtf)")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Print run statistics after the trace")

	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Batch run config YAML (default: fcfs/sjf/srtf sample runs)")

	generateCmd.Flags().IntVar(&genCount, "count", 10, "Number of processes")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for random workload generation")
	generateCmd.Flags().StringVar(&genOutputPath, "output", "", "Workload output file (default stdout)")
	generateCmd.Flags().Int64Var(&genMaxArrival, "max-arrival", 20, "Latest possible arrival tick")
	generateCmd.Flags().Int64Var(&genMaxBurst, "max-burst", 25, "Largest total CPU burst")
	generateCmd.Flags().Float64Var(&genIOFraction, "io-fraction", 0.5, "Fraction of processes doing I/O")
	generateCmd.Flags().Float64Var(&genPreemptFrac, "preempt-fraction", 0.5, "Fraction of processes with a finite quantum")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}
