package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/config"
	"github.com/spec-kit/sla-monitor/internal/domain"
	"github.com/spec-kit/sla-monitor/internal/events"
)

func TestNotifyPublishesAlertEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	service := NewService(dispatcher, zap.NewNop(), config.NotificationConfig{EmailFrom: "noreply@example.com"})
	service.RegisterHandlers()

	var received []events.Event
	dispatcher.Subscribe(events.EventSLAAlertRaised, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	err := service.Notify(context.Background(), "u-1", "t-1", domain.AlertKindBreach,
		"SLA breached: vpn is down", "Ticket has breached its SLA by 1.0 hours.")
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "t-1", received[0].TicketID)
	payload, ok := received[0].Payload.(events.SLAAlertRaisedPayload)
	require.True(t, ok)
	assert.Equal(t, "u-1", payload.UserID)
	assert.Equal(t, domain.AlertKindBreach, payload.Kind)
}

func TestNotifyWithoutDispatcherIsNoOp(t *testing.T) {
	service := NewService(nil, zap.NewNop(), config.NotificationConfig{})
	service.RegisterHandlers()

	err := service.Notify(context.Background(), "u-1", "t-1", domain.AlertKindWarning, "title", "message")
	assert.NoError(t, err)
}
