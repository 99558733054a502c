// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"time"

	"ad-marketplace-be/internal/pkg/logger"
	internalWS "ad-marketplace-be/internal/websocket"
	"ad-marketplace-be/pkg/events"
	pktNats "ad-marketplace-be/pkg/nats"

	"github.com/google/uuid"
)

// EventDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type EventDelivery interface {
	Send(userID uuid.UUID, event internalWS.EventMessage)
	Broadcast(event internalWS.EventMessage)
}

// NotificationService bridges the NATS lifecycle stream onto the websocket
// feed. Events are push-only: nothing is persisted, a client that was offline
// simply missed the event.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   EventDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery EventDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "lifecycle-feed-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start event subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Lifecycle feed started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if s.delivery == nil {
		return nil
	}

	msg := internalWS.EventMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp().Format(time.RFC3339),
	}

	// Every lifecycle event feeds the back-office dashboard.
	s.delivery.Broadcast(msg)

	// The owning user additionally gets a targeted push.
	if userIdStr, ok := event.Payload()["user_id"].(string); ok {
		if userId, err := uuid.Parse(userIdStr); err == nil {
			s.delivery.Send(userId, msg)
		}
	}

	return nil
}
