// Package lifecycle publishes subscription/addon lifecycle events to the
// event bus. Publishing is fire-and-forget: the actor never awaits an
// acknowledgement and a publish failure is only logged.
package lifecycle

import (
	"context"
	"time"

	"ad-marketplace-be/internal/pkg/logger"
	pkgEvents "ad-marketplace-be/pkg/events"
	pktNats "ad-marketplace-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts lifecycle event publishing for the actors.
type Publisher interface {
	PublishSubscriptionCreated(ctx context.Context, subscriptionId, userId uuid.UUID, productCode string, endDate time.Time)
	PublishSubscriptionCancelled(ctx context.Context, subscriptionId, userId uuid.UUID, byAdmin bool)
	PublishSubscriptionExpired(ctx context.Context, subscriptionId, userId uuid.UUID)
	PublishAddonCreated(ctx context.Context, addonId, userId uuid.UUID, productCode string, parentSubscriptionId *uuid.UUID)
	PublishAddonCancelled(ctx context.Context, addonId, userId uuid.UUID, byAdmin bool)
	PublishAddonExpired(ctx context.Context, addonId, userId uuid.UUID)
}

// NatsPublisher implements Publisher using NATS JetStream.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("LIFECYCLE", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishSubscriptionCreated(ctx context.Context, subscriptionId, userId uuid.UUID, productCode string, endDate time.Time) {
	p.publish(ctx, "SUBSCRIPTION_CREATED", map[string]interface{}{
		"subscription_id": subscriptionId.String(),
		"user_id":         userId.String(),
		"product_code":    productCode,
		"end_date":        endDate,
		"entity_type":     "subscription",
		"entity_id":       subscriptionId.String(),
	})
}

func (p *NatsPublisher) PublishSubscriptionCancelled(ctx context.Context, subscriptionId, userId uuid.UUID, byAdmin bool) {
	p.publish(ctx, "SUBSCRIPTION_CANCELLED", map[string]interface{}{
		"subscription_id": subscriptionId.String(),
		"user_id":         userId.String(),
		"by_admin":        byAdmin,
		"entity_type":     "subscription",
		"entity_id":       subscriptionId.String(),
	})
}

func (p *NatsPublisher) PublishSubscriptionExpired(ctx context.Context, subscriptionId, userId uuid.UUID) {
	p.publish(ctx, "SUBSCRIPTION_EXPIRED", map[string]interface{}{
		"subscription_id": subscriptionId.String(),
		"user_id":         userId.String(),
		"entity_type":     "subscription",
		"entity_id":       subscriptionId.String(),
	})
}

func (p *NatsPublisher) PublishAddonCreated(ctx context.Context, addonId, userId uuid.UUID, productCode string, parentSubscriptionId *uuid.UUID) {
	data := map[string]interface{}{
		"addon_id":     addonId.String(),
		"user_id":      userId.String(),
		"product_code": productCode,
		"entity_type":  "addon",
		"entity_id":    addonId.String(),
	}
	if parentSubscriptionId != nil {
		data["parent_subscription_id"] = parentSubscriptionId.String()
	}
	p.publish(ctx, "ADDON_CREATED", data)
}

func (p *NatsPublisher) PublishAddonCancelled(ctx context.Context, addonId, userId uuid.UUID, byAdmin bool) {
	p.publish(ctx, "ADDON_CANCELLED", map[string]interface{}{
		"addon_id":    addonId.String(),
		"user_id":     userId.String(),
		"by_admin":    byAdmin,
		"entity_type": "addon",
		"entity_id":   addonId.String(),
	})
}

func (p *NatsPublisher) PublishAddonExpired(ctx context.Context, addonId, userId uuid.UUID) {
	p.publish(ctx, "ADDON_EXPIRED", map[string]interface{}{
		"addon_id":    addonId.String(),
		"user_id":     userId.String(),
		"entity_type": "addon",
		"entity_id":   addonId.String(),
	})
}
