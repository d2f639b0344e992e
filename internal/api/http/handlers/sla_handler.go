package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/domain"
	"github.com/spec-kit/sla-monitor/internal/observability"
	"github.com/spec-kit/sla-monitor/internal/sla"
	"github.com/spec-kit/sla-monitor/pkg/util"
)

// SLAHandler exposes the monitor's operational surface: status, manual pass
// trigger, and deadline preview.
type SLAHandler struct {
	monitor    *sla.Monitor
	calculator *sla.DeadlineCalculator
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSLAHandler returns a new handler instance.
func NewSLAHandler(monitor *sla.Monitor, calculator *sla.DeadlineCalculator, metrics *observability.Metrics, logger *zap.Logger) *SLAHandler {
	return &SLAHandler{monitor: monitor, calculator: calculator, metrics: metrics, logger: logger}
}

// Status reports the monitor's running state, effective thresholds and
// counters.
func (h *SLAHandler) Status(c *fiber.Ctx) error {
	thresholds := h.monitor.Thresholds()
	return c.JSON(fiber.Map{
		"running":          h.monitor.Running(),
		"poll_interval_ms": h.monitor.Interval().Milliseconds(),
		"thresholds": fiber.Map{
			"warning_ratio":  thresholds.WarningRatio,
			"critical_ratio": thresholds.CriticalRatio,
		},
		"metrics": h.metrics.Snapshot(),
	})
}

// TriggerCheck runs one breach-check pass outside the timer cadence. The
// pass runs in the background; the request does not wait for it.
func (h *SLAHandler) TriggerCheck(c *fiber.Ctx) error {
	go func() {
		if err := h.monitor.RunPass(context.Background()); err != nil {
			h.logger.Error("manually triggered pass failed", zap.Error(err))
		}
	}()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "check scheduled",
	})
}

// Target previews the SLA deadline a ticket of the given priority would get
// if created now. Query params: priority (required), business_hours (bool).
func (h *SLAHandler) Target(c *fiber.Ctx) error {
	priority, err := parsePriority(c.Query("priority"))
	if err != nil {
		return err
	}
	businessHours := c.QueryBool("business_hours", false)

	target := h.calculator.Target(priority, businessHours)
	return c.JSON(fiber.Map{
		"priority":       priority,
		"business_hours": businessHours,
		"sla_target":     target,
	})
}

func parsePriority(raw string) (domain.TicketPriority, error) {
	switch domain.TicketPriority(strings.ToUpper(strings.TrimSpace(raw))) {
	case domain.TicketPriorityLow:
		return domain.TicketPriorityLow, nil
	case domain.TicketPriorityMedium:
		return domain.TicketPriorityMedium, nil
	case domain.TicketPriorityHigh:
		return domain.TicketPriorityHigh, nil
	case domain.TicketPriorityCritical:
		return domain.TicketPriorityCritical, nil
	}
	return "", util.NewValidationError("unknown priority", map[string]any{"priority": raw})
}
