package domain

import "time"

// AlertKind enumerates SLA alert classifications.
type AlertKind string

const (
	AlertKindWarning  AlertKind = "warning"
	AlertKindCritical AlertKind = "critical"
	AlertKindBreach   AlertKind = "breach"
)

// AlertDetails captures the evaluation snapshot stored alongside an alert.
type AlertDetails struct {
	TicketTitle    string     `json:"ticket_title,omitempty"`
	HoursRemaining *float64   `json:"hours_remaining,omitempty"`
	HoursOverdue   *float64   `json:"hours_overdue,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// AlertRecord is an immutable log entry recording that a ticket crossed an
// SLA threshold. Records are written once per (ticket, kind) per dedup
// window and are never updated or deleted by this service.
type AlertRecord struct {
	ID        string
	TicketID  string
	Kind      AlertKind
	Details   AlertDetails
	CreatedAt time.Time
}
