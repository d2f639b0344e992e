package domain

// SLAThresholds defines the elapsed-time fractions that trigger warning and
// critical classifications.
type SLAThresholds struct {
	WarningRatio  float64
	CriticalRatio float64
}

// DefaultSLAThresholds returns the compiled-in threshold configuration used
// when no persisted or environment overrides are available.
func DefaultSLAThresholds() SLAThresholds {
	return SLAThresholds{
		WarningRatio:  0.8,
		CriticalRatio: 0.95,
	}
}

// DefaultResolutionHours returns the compiled-in per-priority resolution
// times, in hours, used when no persisted overrides are available.
func DefaultResolutionHours() map[TicketPriority]int {
	return map[TicketPriority]int{
		TicketPriorityCritical: 4,
		TicketPriorityHigh:     24,
		TicketPriorityMedium:   72,
		TicketPriorityLow:      120,
	}
}
