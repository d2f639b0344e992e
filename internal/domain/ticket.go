package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// Ticket carries the slice of the ticket aggregate the SLA monitor reads.
// Tickets are owned by the ticket service; this service never writes them.
type Ticket struct {
	ID         string
	Title      string
	ReporterID string
	AssigneeID *string
	Status     TicketStatus
	Priority   TicketPriority
	CreatedAt  time.Time
	SLATarget  *time.Time
}

// Monitorable reports whether the ticket is eligible for SLA evaluation.
func (t Ticket) Monitorable() bool {
	if t.Status == TicketStatusResolved || t.Status == TicketStatusClosed {
		return false
	}
	return t.SLATarget != nil
}
