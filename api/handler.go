// Package api serves simulations over HTTP. One POST runs one simulation:
// the request carries the process set and policy, the response carries the
// full transition trace and the run summary.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/config"
	"github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/trace"
	"github.com/procsim/procsim/sim/workload"
)

// ProcessSpec is one process descriptor in a simulate request. The clamping
// rules of the file format apply: io/quantum values <= 0 mean "never",
// negative arrival or burst become 0.
type ProcessSpec struct {
	PID        int   `json:"pid"`
	Arrival    int64 `json:"arrival_time"`
	TotalBurst int64 `json:"total_burst"`
	IOInterval int64 `json:"io_interval"`
	IODuration int64 `json:"io_duration"`
	Quantum    int64 `json:"quantum"`
}

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Policy    string        `json:"policy"`
	Processes []ProcessSpec `json:"processes"`
}

// SimulateResponse carries one run's trace and summary.
type SimulateResponse struct {
	Policy  string                   `json:"policy"`
	Trace   []trace.TransitionRecord `json:"trace"`
	Summary *trace.Summary           `json:"summary"`
}

// SimulationHandler exposes the simulation engine over HTTP.
type SimulationHandler struct {
	config *config.ServerConfig
}

// NewSimulationHandler builds a handler with the given server config.
func NewSimulationHandler(cfg *config.ServerConfig) *SimulationHandler {
	return &SimulationHandler{config: cfg}
}

// Simulate runs one simulation and returns its trace and summary.
func (h *SimulationHandler) Simulate(ctx *fiber.Ctx) error {
	var req SimulateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request format",
		})
	}

	policy, err := sim.ParsePolicy(req.Policy)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(req.Processes) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no processes given",
		})
	}
	if len(req.Processes) > h.config.MaxProcs {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "too many processes",
		})
	}

	procs := make([]*sim.Process, 0, len(req.Processes))
	for _, spec := range req.Processes {
		procs = append(procs, workload.FromValues(spec.PID, spec.Arrival, spec.TotalBurst,
			spec.IOInterval, spec.IODuration, spec.Quantum))
	}

	log := trace.NewLog()
	s := sim.NewSimulator(policy, procs, log)
	final := s.Run()

	if h.config.LogRequests {
		logrus.Infof("simulate: policy=%s processes=%d transitions=%d final-tick=%d",
			policy, len(procs), len(log.Records), final)
	}

	return ctx.JSON(SimulateResponse{
		Policy:  string(policy),
		Trace:   log.Records,
		Summary: trace.Summarize(log),
	})
}

// Policies lists the supported scheduling policies.
func (h *SimulationHandler) Policies(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"policies": []string{string(sim.PolicyFCFS), string(sim.PolicySJF), string(sim.PolicySRTF)},
	})
}
