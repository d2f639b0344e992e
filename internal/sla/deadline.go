package sla

import (
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// fallbackResolution is returned when no resolution time is configured for
// a priority. Deadline computation never fails its caller.
const fallbackResolution = 24 * time.Hour

// DeadlineCalculator turns a ticket priority into an absolute SLA deadline,
// optionally counting only business hours.
type DeadlineCalculator struct {
	hours    map[domain.TicketPriority]int
	dayStart int
	dayEnd   int
	logger   *zap.Logger
	now      func() time.Time
}

// NewDeadlineCalculator builds a calculator over the effective per-priority
// resolution hours (env defaults overlaid with any persisted values).
func NewDeadlineCalculator(hours map[domain.TicketPriority]int, dayStart, dayEnd int, logger *zap.Logger) *DeadlineCalculator {
	return &DeadlineCalculator{
		hours:    hours,
		dayStart: dayStart,
		dayEnd:   dayEnd,
		logger:   logger,
		now:      time.Now,
	}
}

// Target computes the SLA deadline for a ticket of the given priority
// created now.
func (c *DeadlineCalculator) Target(priority domain.TicketPriority, businessHoursOnly bool) time.Time {
	return c.TargetFrom(c.now(), priority, businessHoursOnly)
}

// TargetFrom computes the SLA deadline for a ticket created at start. An
// unknown priority falls back to 24 wall-clock hours.
func (c *DeadlineCalculator) TargetFrom(start time.Time, priority domain.TicketPriority, businessHoursOnly bool) time.Time {
	hours, ok := c.hours[priority]
	if !ok || hours <= 0 {
		c.logger.Warn("no resolution time configured; applying fallback",
			zap.String("priority", string(priority)))
		return start.Add(fallbackResolution)
	}

	allotted := time.Duration(hours) * time.Hour
	if !businessHoursOnly {
		return start.Add(allotted)
	}
	return c.addBusinessTime(start, allotted)
}

// addBusinessTime walks forward from start consuming only time inside the
// business window (weekdays, dayStart–dayEnd o'clock). Each iteration either
// finishes inside today's window or consumes the whole remainder of it and
// advances to the next day's opening, so the loop terminates.
func (c *DeadlineCalculator) addBusinessTime(start time.Time, remaining time.Duration) time.Time {
	cur := start
	for {
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			cur = c.nextOpening(cur)
			continue
		}

		opensAt := time.Date(cur.Year(), cur.Month(), cur.Day(), c.dayStart, 0, 0, 0, cur.Location())
		closesAt := time.Date(cur.Year(), cur.Month(), cur.Day(), c.dayEnd, 0, 0, 0, cur.Location())

		if cur.Before(opensAt) {
			cur = opensAt
			continue
		}
		if !cur.Before(closesAt) {
			cur = c.nextOpening(cur)
			continue
		}

		window := closesAt.Sub(cur)
		if remaining <= window {
			return cur.Add(remaining)
		}
		remaining -= window
		cur = c.nextOpening(cur)
	}
}

// nextOpening returns dayStart o'clock on the day after cur.
func (c *DeadlineCalculator) nextOpening(cur time.Time) time.Time {
	next := cur.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), c.dayStart, 0, 0, 0, next.Location())
}
