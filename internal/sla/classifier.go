package sla

import (
	"time"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// Evaluation is the outcome of classifying one ticket at one instant.
// Exactly one kind applies per evaluation; HoursRemaining is set for warning
// and critical, HoursOverdue for breach.
type Evaluation struct {
	Kind           domain.AlertKind
	HoursRemaining float64
	HoursOverdue   float64
	Deadline       time.Time
}

// Classify evaluates a ticket's SLA position at the given instant. It
// returns false when the ticket needs no alert: not monitorable, or still
// below the warning threshold.
//
// Precedence is breach > critical > warning; the first match wins, so a
// ticket is never classified under two kinds at once. A deadline at or
// before the creation time leaves no allotted interval to measure against
// and is treated as an immediate breach.
func Classify(ticket domain.Ticket, now time.Time, thresholds domain.SLAThresholds) (Evaluation, bool) {
	if !ticket.Monitorable() {
		return Evaluation{}, false
	}

	deadline := *ticket.SLATarget
	totalAllotted := deadline.Sub(ticket.CreatedAt)
	remaining := deadline.Sub(now)

	if totalAllotted <= 0 {
		overdue := now.Sub(deadline).Hours()
		if overdue < 0 {
			overdue = 0
		}
		return Evaluation{
			Kind:         domain.AlertKindBreach,
			HoursOverdue: overdue,
			Deadline:     deadline,
		}, true
	}

	if remaining < 0 {
		return Evaluation{
			Kind:         domain.AlertKindBreach,
			HoursOverdue: -remaining.Hours(),
			Deadline:     deadline,
		}, true
	}

	ratio := float64(now.Sub(ticket.CreatedAt)) / float64(totalAllotted)
	switch {
	case ratio >= thresholds.CriticalRatio:
		return Evaluation{
			Kind:           domain.AlertKindCritical,
			HoursRemaining: remaining.Hours(),
			Deadline:       deadline,
		}, true
	case ratio >= thresholds.WarningRatio:
		return Evaluation{
			Kind:           domain.AlertKindWarning,
			HoursRemaining: remaining.Hours(),
			Deadline:       deadline,
		}, true
	}
	return Evaluation{}, false
}
