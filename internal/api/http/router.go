package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-monitor/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	SLA    *handlers.SLAHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	slaGroup := app.Group("/sla")
	slaGroup.Get("/status", cfg.SLA.Status)
	slaGroup.Post("/check", cfg.SLA.TriggerCheck)
	slaGroup.Get("/target", cfg.SLA.Target)
}
