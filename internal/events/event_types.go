package events

import (
	"time"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSLAAlertRaised EventType = "sla_alert_raised"
)

// Event represents a domain event emitted by the monitor.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SLAAlertRaisedPayload carries one recipient-specific alert message.
type SLAAlertRaisedPayload struct {
	UserID  string           `json:"user_id"`
	Kind    domain.AlertKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}
