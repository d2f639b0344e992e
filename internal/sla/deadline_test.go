package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

func newTestCalculator() *DeadlineCalculator {
	return NewDeadlineCalculator(domain.DefaultResolutionHours(), 9, 17, zap.NewNop())
}

func TestTargetWallClockHours(t *testing.T) {
	calc := newTestCalculator()
	start := time.Date(2026, 3, 7, 3, 30, 0, 0, time.UTC) // Saturday, irrelevant for wall clock

	assert.Equal(t, start.Add(4*time.Hour), calc.TargetFrom(start, domain.TicketPriorityCritical, false))
	assert.Equal(t, start.Add(24*time.Hour), calc.TargetFrom(start, domain.TicketPriorityHigh, false))
	assert.Equal(t, start.Add(72*time.Hour), calc.TargetFrom(start, domain.TicketPriorityMedium, false))
	assert.Equal(t, start.Add(120*time.Hour), calc.TargetFrom(start, domain.TicketPriorityLow, false))
}

func TestTargetBusinessHoursWeekendSkip(t *testing.T) {
	calc := newTestCalculator()

	// Friday 16:00, 4 business hours: one hour today, three on Monday.
	start := time.Date(2026, 3, 6, 16, 0, 0, 0, time.UTC)
	want := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, want, calc.TargetFrom(start, domain.TicketPriorityCritical, true))
}

func TestTargetBusinessHoursStartsOutsideWindow(t *testing.T) {
	calc := newTestCalculator()

	// Saturday morning jumps to Monday 09:00 and consumes a full day.
	saturday := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t,
		time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC),
		calc.TargetFrom(saturday, domain.TicketPriorityCritical, true))

	// Monday 07:00 snaps to opening before counting.
	earlyMonday := time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)
	assert.Equal(t,
		time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC),
		calc.TargetFrom(earlyMonday, domain.TicketPriorityCritical, true))

	// Monday 18:00 rolls to Tuesday opening.
	lateMonday := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	assert.Equal(t,
		time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
		calc.TargetFrom(lateMonday, domain.TicketPriorityCritical, true))
}

func TestTargetBusinessHoursSpansMultipleDays(t *testing.T) {
	hours := map[domain.TicketPriority]int{domain.TicketPriorityHigh: 20}
	calc := NewDeadlineCalculator(hours, 9, 17, zap.NewNop())

	// Monday 09:00 + 20 business hours: Mon 8h, Tue 8h, Wed 4h.
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	want := time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, want, calc.TargetFrom(start, domain.TicketPriorityHigh, true))
}

func TestTargetBusinessHoursCrossWeekendSpill(t *testing.T) {
	hours := map[domain.TicketPriority]int{domain.TicketPriorityMedium: 10}
	calc := NewDeadlineCalculator(hours, 9, 17, zap.NewNop())

	// Friday 13:00: 4h today, weekend skipped, 6h Monday.
	start := time.Date(2026, 3, 6, 13, 0, 0, 0, time.UTC)
	want := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, want, calc.TargetFrom(start, domain.TicketPriorityMedium, true))
}

func TestTargetUnknownPriorityFallsBack(t *testing.T) {
	calc := newTestCalculator()
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(24*time.Hour), calc.TargetFrom(start, domain.TicketPriority("BOGUS"), false))
	assert.Equal(t, start.Add(24*time.Hour), calc.TargetFrom(start, domain.TicketPriority("BOGUS"), true))
}
