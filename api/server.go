package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/procsim/procsim/config"
)

// NewApp builds the fiber application with all routes registered.
func NewApp(cfg *config.ServerConfig) *fiber.App {
	app := fiber.New()
	handler := NewSimulationHandler(cfg)

	v1 := app.Group("/api").Group("/v1")
	v1.Post("/simulate", handler.Simulate)
	v1.Get("/policies", handler.Policies)

	return app
}
