package streaming

import (
	"context"

	"scamtrace/internal/domain/models"
)

// EventBusPublisher implements services.AlertPublisher on top of the
// event bus and the WebSocket hub.
type EventBusPublisher struct {
	eventBus *EventBus
	wsHub    *WebSocketHub
}

// NewEventBusPublisher creates a new publisher adapter
func NewEventBusPublisher(eventBus *EventBus, wsHub *WebSocketHub) *EventBusPublisher {
	return &EventBusPublisher{
		eventBus: eventBus,
		wsHub:    wsHub,
	}
}

// PublishAlert fans a generated alert out to the live feed. Best-effort,
// delivery failures are logged by the bus and never surface here.
func (p *EventBusPublisher) PublishAlert(ctx context.Context, alert *models.Alert) {
	event := NewAlertEvent(alert)

	if p.eventBus != nil {
		_ = p.eventBus.Publish(ctx, event)
	}

	if p.wsHub != nil {
		p.wsHub.BroadcastEvent(event)
	}
}
