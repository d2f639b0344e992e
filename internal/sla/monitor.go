package sla

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/domain"
	"github.com/spec-kit/sla-monitor/internal/notify"
	"github.com/spec-kit/sla-monitor/internal/observability"
	"github.com/spec-kit/sla-monitor/internal/repository"
)

// Monitor runs the periodic breach-check pass over active tickets.
//
// Ticks are wall-clock periodic and not back-pressured: a pass that outlives
// the interval may run concurrently with the next tick's pass. Duplicate
// suppression is keyed by (ticket, kind) content through the alert log, not
// by pass, so overlapping passes are tolerated. Two overlapping passes can
// still race the existence check and raise a duplicate alert; see the alert
// repository contract.
type Monitor struct {
	tickets  repository.TicketRepository
	alerts   repository.AlertRepository
	slaCfg   repository.SLAConfigRepository
	notifier notify.Notifier
	logger   *zap.Logger
	metrics  *observability.Metrics

	interval time.Duration
	defaults domain.SLAThresholds
	now      func() time.Time

	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	thresholds domain.SLAThresholds
}

// MonitorDependencies bundles collaborators for the monitor.
type MonitorDependencies struct {
	TicketRepo    repository.TicketRepository
	AlertRepo     repository.AlertRepository
	SLAConfigRepo repository.SLAConfigRepository
	Notifier      notify.Notifier
	Logger        *zap.Logger
	Metrics       *observability.Metrics
}

// NewMonitor constructs the monitor. The defaults are the environment-level
// thresholds; persisted overrides are loaded on Start.
func NewMonitor(deps MonitorDependencies, interval time.Duration, defaults domain.SLAThresholds) *Monitor {
	return &Monitor{
		tickets:    deps.TicketRepo,
		alerts:     deps.AlertRepo,
		slaCfg:     deps.SLAConfigRepo,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		interval:   interval,
		defaults:   defaults,
		now:        time.Now,
		thresholds: defaults,
	}
}

// Start begins periodic monitoring. Calling Start on a running monitor is a
// no-op. Threshold configuration is loaded once here; a failed load falls
// back to the defaults and is not an error. The only hard failure is an
// unusable interval, since then no monitoring can occur at all.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	if m.interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", m.interval)
	}

	thresholds, err := m.slaCfg.LoadThresholds(ctx, m.defaults)
	if err != nil {
		m.logger.Warn("failed to load SLA thresholds; using defaults", zap.Error(err))
		thresholds = m.defaults
	}
	m.thresholds = thresholds

	m.stopCh = make(chan struct{})
	m.running = true
	go m.loop(m.stopCh)

	m.logger.Info("sla monitoring started",
		zap.Duration("interval", m.interval),
		zap.Float64("warning_ratio", thresholds.WarningRatio),
		zap.Float64("critical_ratio", thresholds.CriticalRatio))
	return nil
}

// Stop cancels future ticks. An in-flight pass runs to completion. Calling
// Stop on a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	close(m.stopCh)
	m.running = false
	m.logger.Info("sla monitoring stopped")
}

// Running reports whether the periodic timer is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Thresholds returns the thresholds in effect.
func (m *Monitor) Thresholds() domain.SLAThresholds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.thresholds
}

// Interval returns the tick interval.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

func (m *Monitor) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go m.runGuarded(context.Background())
		case <-stopCh:
			return
		}
	}
}

// runGuarded shields the scheduler from pass failures: errors and panics
// are logged and must never reach the timer goroutine.
func (m *Monitor) runGuarded(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.metrics.RecordPassFailure()
			m.logger.Error("breach-check pass panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()

	if err := m.RunPass(ctx); err != nil {
		m.metrics.RecordPassFailure()
		m.logger.Error("breach-check pass failed", zap.Error(err))
	}
}

// RunPass executes one full breach-check sweep. Tickets are evaluated
// sequentially, earliest deadline first, all against the same instant. A
// single ticket's failure is logged and skipped; only a failure to list
// tickets aborts the pass.
func (m *Monitor) RunPass(ctx context.Context) error {
	now := m.now()

	tickets, err := m.tickets.ListActiveWithDeadline(ctx)
	if err != nil {
		return fmt.Errorf("list active tickets: %w", err)
	}

	thresholds := m.Thresholds()
	for _, ticket := range tickets {
		if err := m.evaluateTicket(ctx, ticket, now, thresholds); err != nil {
			m.metrics.RecordEvaluationError()
			m.logger.Error("ticket evaluation failed",
				zap.String("ticket_id", ticket.ID),
				zap.Error(err))
		}
	}

	m.metrics.RecordPass(now)
	m.logger.Debug("breach-check pass complete",
		zap.Int("tickets", len(tickets)),
		zap.Time("at", now))
	return nil
}

func (m *Monitor) evaluateTicket(ctx context.Context, ticket domain.Ticket, now time.Time, thresholds domain.SLAThresholds) error {
	eval, matched := Classify(ticket, now, thresholds)
	if !matched {
		return nil
	}

	exists, err := m.alerts.Exists(ctx, ticket.ID, eval.Kind)
	if err != nil {
		return fmt.Errorf("check existing alert: %w", err)
	}
	if exists {
		m.metrics.RecordSuppressed()
		return nil
	}

	record := buildAlertRecord(ticket, eval)
	if err := m.alerts.Record(ctx, record); err != nil {
		// Best-effort split: the notification is still dispatched so a
		// storage hiccup does not silence an SLA alert. The next pass may
		// re-raise it until the record lands.
		m.logger.Error("failed to persist alert record; dispatching anyway",
			zap.String("ticket_id", ticket.ID),
			zap.String("kind", string(eval.Kind)),
			zap.Error(err))
	}
	m.metrics.RecordAlert(eval.Kind)

	m.dispatch(ctx, ticket, eval)
	return nil
}

func buildAlertRecord(ticket domain.Ticket, eval Evaluation) *domain.AlertRecord {
	deadline := eval.Deadline
	details := domain.AlertDetails{
		TicketTitle: ticket.Title,
		Deadline:    &deadline,
	}
	if eval.Kind == domain.AlertKindBreach {
		overdue := eval.HoursOverdue
		details.HoursOverdue = &overdue
	} else {
		remaining := eval.HoursRemaining
		details.HoursRemaining = &remaining
	}
	return &domain.AlertRecord{
		TicketID: ticket.ID,
		Kind:     eval.Kind,
		Details:  details,
	}
}

// dispatch fans the classified alert out to its recipients. A breach goes to
// the assignee and, when distinct, the reporter; warning and critical go to
// the assignee only. Recipients are independent: one delivery failure never
// blocks another, and none surface to the pass.
func (m *Monitor) dispatch(ctx context.Context, ticket domain.Ticket, eval Evaluation) {
	switch eval.Kind {
	case domain.AlertKindBreach:
		if ticket.AssigneeID != nil {
			m.send(ctx, *ticket.AssigneeID, ticket, eval.Kind,
				fmt.Sprintf("SLA breached: %s", ticket.Title),
				fmt.Sprintf("Ticket %q has breached its SLA by %.1f hours. Immediate attention required.",
					ticket.Title, eval.HoursOverdue))
		}
		if ticket.ReporterID != "" && (ticket.AssigneeID == nil || *ticket.AssigneeID != ticket.ReporterID) {
			m.send(ctx, ticket.ReporterID, ticket, eval.Kind,
				fmt.Sprintf("Update on your ticket: %s", ticket.Title),
				fmt.Sprintf("Your ticket %q is taking longer than expected. It has been escalated and remains our priority.",
					ticket.Title))
		}
	case domain.AlertKindCritical:
		if ticket.AssigneeID != nil {
			m.send(ctx, *ticket.AssigneeID, ticket, eval.Kind,
				fmt.Sprintf("SLA critical: %s", ticket.Title),
				fmt.Sprintf("Ticket %q is about to breach its SLA: %.1f hours remaining.",
					ticket.Title, eval.HoursRemaining))
		}
	case domain.AlertKindWarning:
		if ticket.AssigneeID != nil {
			m.send(ctx, *ticket.AssigneeID, ticket, eval.Kind,
				fmt.Sprintf("SLA warning: %s", ticket.Title),
				fmt.Sprintf("Ticket %q is approaching its SLA deadline: %.1f hours remaining.",
					ticket.Title, eval.HoursRemaining))
		}
	}
}

func (m *Monitor) send(ctx context.Context, userID string, ticket domain.Ticket, kind domain.AlertKind, title, message string) {
	if err := m.notifier.Notify(ctx, userID, ticket.ID, kind, title, message); err != nil {
		m.metrics.RecordNotificationFailure()
		m.logger.Warn("alert notification failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}
