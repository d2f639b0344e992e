package notify

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/config"
	"github.com/spec-kit/sla-monitor/internal/domain"
	"github.com/spec-kit/sla-monitor/internal/events"
)

// Notifier delivers one alert message to one user. Delivery is best-effort;
// the monitor treats any returned error as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, userID, ticketID string, kind domain.AlertKind, title, message string) error
}

// Service implements Notifier by publishing SLA alert events to the channel
// handlers registered on the dispatcher.
type Service struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewService creates the service.
func NewService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *Service {
	return &Service{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes the delivery channels to alert events.
func (s *Service) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventSLAAlertRaised, s.handleAlertRaised)
}

// Notify publishes one recipient-specific alert event.
func (s *Service) Notify(ctx context.Context, userID, ticketID string, kind domain.AlertKind, title, message string) error {
	if s.dispatcher == nil {
		return nil
	}
	return s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSLAAlertRaised,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload: events.SLAAlertRaisedPayload{
			UserID:  userID,
			Kind:    kind,
			Title:   title,
			Message: message,
		},
	})
}

func (s *Service) handleAlertRaised(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SLAAlertRaisedPayload)
	if !ok {
		s.logger.Warn("unexpected alert payload", zap.String("event_id", event.ID))
		return nil
	}
	s.logger.Info("SLAAlertRaised",
		zap.String("ticket_id", event.TicketID),
		zap.String("user_id", payload.UserID),
		zap.String("kind", string(payload.Kind)))
	s.sendEmailNotificationStub(ctx, event, payload)
	s.sendWebhookNotificationStub(ctx, event, payload)
	return nil
}

func (s *Service) sendEmailNotificationStub(ctx context.Context, event events.Event, payload events.SLAAlertRaisedPayload) {
	if strings.TrimSpace(s.cfg.EmailFrom) == "" {
		return
	}
	s.logger.Debug("sendEmailNotificationStub",
		zap.String("from", s.cfg.EmailFrom),
		zap.String("to_user", payload.UserID),
		zap.String("ticket_id", event.TicketID),
		zap.String("subject", payload.Title))
}

func (s *Service) sendWebhookNotificationStub(ctx context.Context, event events.Event, payload events.SLAAlertRaisedPayload) {
	if strings.TrimSpace(s.cfg.WebhookURL) == "" {
		return
	}
	s.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", s.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("kind", string(payload.Kind)))
}
