// FILE: internal/service/expiry_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/pkg/logger"
	"ad-marketplace-be/internal/pkg/mailer"
	"ad-marketplace-be/internal/repository/specification"
	"ad-marketplace-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IExpiryService runs the periodic expiry sweep. The sweep only discovers
// candidates from the mirror and publishes their ids; the actual state
// transition happens in the owning actor when the consumer dispatches
// MarkAsExpired, so a stale mirror row can never force an expiry.
type IExpiryService interface {
	Run(ctx context.Context)
	Consume(ctx context.Context) error
	SweepOnce(ctx context.Context) (int, error)
}

type expiryService struct {
	pubSub              *gochannel.GoChannel
	topicName           string
	uowFactory          unitofwork.RepositoryFactory
	subscriptionService ISubscriptionService
	mailer              mailer.IEmailService
	opsEmail            string
	interval            time.Duration
	logger              logger.ILogger
}

func NewExpiryService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	subscriptionService ISubscriptionService,
	mailer mailer.IEmailService,
	opsEmail string,
	interval time.Duration,
	logger logger.ILogger,
) IExpiryService {
	return &expiryService{
		pubSub:              pubSub,
		topicName:           topicName,
		uowFactory:          uowFactory,
		subscriptionService: subscriptionService,
		mailer:              mailer,
		opsEmail:            opsEmail,
		interval:            interval,
		logger:              logger,
	}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *expiryService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("EXPIRY", "Sweep failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

// SweepOnce finds active rows whose end date has passed and publishes one
// expiry candidate message per entity. Returns the number published.
func (s *expiryService) SweepOnce(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	published := 0

	subs, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.ByStatus{Status: "active"},
		specification.EndDateBefore{At: now},
	)
	if err != nil {
		return 0, err
	}
	for _, sub := range subs {
		if err := s.publishCandidate(dto.ExpiryCandidateMessage{
			EntityType:  "subscription",
			EntityId:    sub.Id,
			UserId:      sub.UserId,
			ProductCode: sub.ProductCode,
			EndDate:     sub.EndDate,
		}); err != nil {
			s.logger.Error("EXPIRY", "Failed to publish expiry candidate", map[string]interface{}{
				"subscription_id": sub.Id,
				"error":           err.Error(),
			})
			continue
		}
		published++
	}

	addons, err := uow.SubscriptionRepository().FindAllAddons(ctx,
		specification.ByStatus{Status: "active"},
		specification.EndDateBefore{At: now},
	)
	if err != nil {
		return published, err
	}
	for _, addon := range addons {
		if err := s.publishCandidate(dto.ExpiryCandidateMessage{
			EntityType:  "addon",
			EntityId:    addon.Id,
			UserId:      addon.UserId,
			ProductCode: addon.ProductCode,
			EndDate:     addon.EndDate,
		}); err != nil {
			s.logger.Error("EXPIRY", "Failed to publish expiry candidate", map[string]interface{}{
				"addon_id": addon.Id,
				"error":    err.Error(),
			})
			continue
		}
		published++
	}

	if published > 0 {
		s.logger.Info("EXPIRY", "Sweep published expiry candidates", map[string]interface{}{"count": published})
	}
	return published, nil
}

func (s *expiryService) publishCandidate(payload dto.ExpiryCandidateMessage) error {
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), msgJson))
}

// Consume subscribes to the expiry topic and dispatches MarkAsExpired through
// the coordination service, so the owning actor re-checks before flipping.
func (s *expiryService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *expiryService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ExpiryCandidateMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("EXPIRY", "Failed to unmarshal expiry message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads never become valid, do not retry
		return
	}

	var ok bool
	var err error
	if payload.EntityType == "addon" {
		ok, err = s.subscriptionService.MarkAddonExpired(ctx, payload.EntityId)
	} else {
		ok, err = s.subscriptionService.MarkSubscriptionExpired(ctx, payload.EntityId)
	}
	if err != nil {
		s.logger.Error("EXPIRY", "Failed to mark entity expired", map[string]interface{}{
			"entity_type": payload.EntityType,
			"entity_id":   payload.EntityId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	// The actor re-checks its own state; ok=false means the entity was
	// already expired or cancelled between sweep and dispatch.
	if ok {
		s.notifyOps(payload)
	}

	msg.Ack()
}

// notifyOps sends a best-effort expiry notice to the operations inbox.
func (s *expiryService) notifyOps(payload dto.ExpiryCandidateMessage) {
	if s.mailer == nil || s.opsEmail == "" {
		return
	}
	subject := fmt.Sprintf("Subscription expired: %s", payload.EntityId)
	body := fmt.Sprintf(
		"Entity type: %s\nEntity id: %s\nUser id: %s\nProduct: %s\nEnd date: %s\n",
		payload.EntityType, payload.EntityId, payload.UserId, payload.ProductCode,
		payload.EndDate.Format(time.RFC3339),
	)
	if err := s.mailer.Send(s.opsEmail, subject, body); err != nil {
		s.logger.Warn("EXPIRY", "Failed to send expiry notice", map[string]interface{}{
			"entity_id": payload.EntityId,
			"error":     err.Error(),
		})
	}
}
