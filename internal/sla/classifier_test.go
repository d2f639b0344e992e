package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

func monitoredTicket(createdAt time.Time, target time.Time) domain.Ticket {
	return domain.Ticket{
		ID:         "t-1",
		Title:      "printer on fire",
		ReporterID: "u-reporter",
		Status:     domain.TicketStatusOpen,
		Priority:   domain.TicketPriorityHigh,
		CreatedAt:  createdAt,
		SLATarget:  &target,
	}
}

func TestClassifyHighPriorityScenario(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	target := createdAt.Add(24 * time.Hour)
	ticket := monitoredTicket(createdAt, target)
	thresholds := domain.DefaultSLAThresholds()

	// 20h elapsed: ratio 0.833 is past warning but below critical.
	eval, matched := Classify(ticket, createdAt.Add(20*time.Hour), thresholds)
	require.True(t, matched)
	assert.Equal(t, domain.AlertKindWarning, eval.Kind)
	assert.InDelta(t, 4.0, eval.HoursRemaining, 0.01)

	// 23h elapsed: ratio 0.958 crosses critical.
	eval, matched = Classify(ticket, createdAt.Add(23*time.Hour), thresholds)
	require.True(t, matched)
	assert.Equal(t, domain.AlertKindCritical, eval.Kind)
	assert.InDelta(t, 1.0, eval.HoursRemaining, 0.01)

	// 25h elapsed: deadline passed.
	eval, matched = Classify(ticket, createdAt.Add(25*time.Hour), thresholds)
	require.True(t, matched)
	assert.Equal(t, domain.AlertKindBreach, eval.Kind)
	assert.InDelta(t, 1.0, eval.HoursOverdue, 0.01)
	assert.Equal(t, target, eval.Deadline)
}

func TestClassifyBelowWarningNoMatch(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ticket := monitoredTicket(createdAt, createdAt.Add(24*time.Hour))

	_, matched := Classify(ticket, createdAt.Add(12*time.Hour), domain.DefaultSLAThresholds())
	assert.False(t, matched)
}

func TestClassifyWarningBoundaryInclusive(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ticket := monitoredTicket(createdAt, createdAt.Add(10*time.Hour))

	// Exactly 80% elapsed.
	eval, matched := Classify(ticket, createdAt.Add(8*time.Hour), domain.DefaultSLAThresholds())
	require.True(t, matched)
	assert.Equal(t, domain.AlertKindWarning, eval.Kind)
}

func TestClassifySkipsUnmonitorableTickets(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	target := createdAt.Add(time.Hour)
	now := createdAt.Add(2 * time.Hour)
	thresholds := domain.DefaultSLAThresholds()

	resolved := monitoredTicket(createdAt, target)
	resolved.Status = domain.TicketStatusResolved
	_, matched := Classify(resolved, now, thresholds)
	assert.False(t, matched)

	closed := monitoredTicket(createdAt, target)
	closed.Status = domain.TicketStatusClosed
	_, matched = Classify(closed, now, thresholds)
	assert.False(t, matched)

	noDeadline := monitoredTicket(createdAt, target)
	noDeadline.SLATarget = nil
	_, matched = Classify(noDeadline, now, thresholds)
	assert.False(t, matched)
}

func TestClassifyNonPositiveAllottedIsImmediateBreach(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	thresholds := domain.DefaultSLAThresholds()

	atCreation := monitoredTicket(createdAt, createdAt)
	eval, matched := Classify(atCreation, createdAt.Add(3*time.Hour), thresholds)
	require.True(t, matched)
	assert.Equal(t, domain.AlertKindBreach, eval.Kind)
	assert.InDelta(t, 3.0, eval.HoursOverdue, 0.01)

	beforeCreation := monitoredTicket(createdAt, createdAt.Add(-time.Hour))
	eval, matched = Classify(beforeCreation, createdAt, thresholds)
	require.True(t, matched)
	assert.Equal(t, domain.AlertKindBreach, eval.Kind)
}

// Classification only moves forward through warning, critical and breach as
// time advances over a fixed deadline.
func TestClassificationMonotonicOverTime(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ticket := monitoredTicket(createdAt, createdAt.Add(24*time.Hour))
	thresholds := domain.DefaultSLAThresholds()

	rank := func(eval Evaluation, matched bool) int {
		if !matched {
			return 0
		}
		switch eval.Kind {
		case domain.AlertKindWarning:
			return 1
		case domain.AlertKindCritical:
			return 2
		case domain.AlertKindBreach:
			return 3
		}
		return 0
	}

	prev := -1
	for elapsed := time.Duration(0); elapsed <= 30*time.Hour; elapsed += 15 * time.Minute {
		eval, matched := Classify(ticket, createdAt.Add(elapsed), thresholds)
		cur := rank(eval, matched)
		require.GreaterOrEqual(t, cur, prev, "classification regressed at %s", elapsed)
		prev = cur
	}
	assert.Equal(t, 3, prev)
}
