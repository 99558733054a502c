// FILE: internal/actor/subscription_actor.go
// Single-writer actor owning one subscription's mutable state. All mutation
// requests for a given id are serialized through the actor's mailbox; the
// relational mirror row is written here and nowhere else.
package actor

import (
	"context"
	"time"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/pkg/logger"
	"ad-marketplace-be/internal/repository/specification"
	"ad-marketplace-be/internal/repository/unitofwork"
	"ad-marketplace-be/pkg/lifecycle"

	"github.com/google/uuid"
)

// ProductCatalog supplies the constraint template at purchase time.
type ProductCatalog interface {
	GetProductByCode(ctx context.Context, code string) (*entity.Product, error)
}

type CreateSubscriptionRequest struct {
	Id          uuid.UUID
	ProductCode string
	UserId      uuid.UUID
	CompanyId   *uuid.UUID
}

type AdminUsageOverride struct {
	AdsUsed              *int
	PromotionsUsed       *int
	FeaturesUsed         *int
	DailyRefreshesUsed   *int
	SocialMediaPostsUsed *int
}

type SubscriptionActor struct {
	id         uuid.UUID
	uowFactory unitofwork.RepositoryFactory
	catalog    ProductCatalog
	publisher  lifecycle.Publisher
	logger     logger.ILogger

	mailbox *mailbox

	// Authoritative in-memory copy; only touched from mailbox tasks.
	state  *entity.Subscription
	loaded bool
}

func NewSubscriptionActor(
	id uuid.UUID,
	uowFactory unitofwork.RepositoryFactory,
	catalog ProductCatalog,
	publisher lifecycle.Publisher,
	logger logger.ILogger,
) *SubscriptionActor {
	return &SubscriptionActor{
		id:         id,
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
		logger:     logger,
		mailbox:    newMailbox(),
	}
}

// ensureLoaded lazily activates the actor from the mirror. Must be called
// from inside a mailbox task.
func (a *SubscriptionActor) ensureLoaded(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	uow := a.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: a.id})
	if err != nil {
		return err
	}
	a.state = sub
	a.loaded = true
	return nil
}

// persist writes the authoritative state to the mirror. On failure the
// in-memory copy is dropped so the next operation reloads from the store
// instead of diverging.
func (a *SubscriptionActor) persist(ctx context.Context) error {
	a.state.UpdatedAt = time.Now().UTC()
	uow := a.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Update(ctx, a.state); err != nil {
		a.loaded = false
		a.state = nil
		return err
	}
	return nil
}

// Create validates the product, initializes quota from its constraint
// template and persists the new subscription. Returns false when the product
// is missing/inactive or the id already exists; nothing is partially applied.
func (a *SubscriptionActor) Create(ctx context.Context, req CreateSubscriptionRequest) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state != nil {
			return nil // already exists
		}

		product, err := a.catalog.GetProductByCode(ctx, req.ProductCode)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive || product.IsAddon {
			a.logger.Warn("ACTOR", "Subscription create rejected: unknown or inactive product", map[string]interface{}{
				"subscription_id": a.id,
				"product_code":    req.ProductCode,
			})
			return nil
		}

		now := time.Now().UTC()
		sub := &entity.Subscription{
			Id:           a.id,
			ProductCode:  product.Code,
			UserId:       req.UserId,
			CompanyId:    req.CompanyId,
			Vertical:     product.Vertical,
			SubVertical:  product.SubVertical,
			Price:        product.Price,
			Currency:     product.Currency,
			StartDate:    now,
			EndDate:      now.AddDate(0, 0, product.DurationDays),
			Status:       entity.SubscriptionStatusActive,
			Quota:        product.Constraints.NewQuota(),
			FreeAdsQuota: product.Constraints.NewFreeAdsQuota(),
		}

		uow := a.uowFactory.NewUnitOfWork(ctx)
		if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
			return err
		}

		a.state = sub
		a.publisher.PublishSubscriptionCreated(ctx, sub.Id, sub.UserId, sub.ProductCode, sub.EndDate)
		ok = true
		return nil
	})
	return ok, err
}

// Cancel transitions to cancelled after verifying the caller owns the
// entity. Cancelling an already-cancelled subscription returns false.
func (a *SubscriptionActor) Cancel(ctx context.Context, userId uuid.UUID) (bool, error) {
	return a.cancel(ctx, &userId)
}

// AdminCancel skips the ownership check.
func (a *SubscriptionActor) AdminCancel(ctx context.Context) (bool, error) {
	return a.cancel(ctx, nil)
}

func (a *SubscriptionActor) cancel(ctx context.Context, requester *uuid.UUID) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		if requester != nil && a.state.UserId != *requester {
			a.logger.Warn("ACTOR", "Cancel rejected: requester does not own subscription", map[string]interface{}{
				"subscription_id": a.id,
				"requester":       requester.String(),
			})
			return nil
		}
		if a.state.Status == entity.SubscriptionStatusCancelled {
			return nil
		}

		a.state.Status = entity.SubscriptionStatusCancelled
		if err := a.persist(ctx); err != nil {
			return err
		}

		a.publisher.PublishSubscriptionCancelled(ctx, a.state.Id, a.state.UserId, requester == nil)
		ok = true
		return nil
	})
	return ok, err
}

// MarkAsExpired is called by the expiry sweep, never by the actor itself.
func (a *SubscriptionActor) MarkAsExpired(ctx context.Context) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil || a.state.Status == entity.SubscriptionStatusExpired {
			return nil
		}

		a.state.Status = entity.SubscriptionStatusExpired
		if err := a.persist(ctx); err != nil {
			return err
		}

		a.publisher.PublishSubscriptionExpired(ctx, a.state.Id, a.state.UserId)
		ok = true
		return nil
	})
	return ok, err
}

// ValidateUsage is a read-mostly pass-through to the quota engine (the daily
// reset bookkeeping may mutate, so it still goes through the mailbox).
func (a *SubscriptionActor) ValidateUsage(ctx context.Context, action entity.ActionType, quantity int) (entity.ValidationResult, error) {
	var result entity.ValidationResult
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			result = entity.ValidationResult{Action: action, Quantity: quantity, Reason: "Subscription not found"}
			return nil
		}
		result = a.state.Quota.ValidateAction(action, quantity)
		return nil
	})
	return result, err
}

// RecordUsage validates and records in one serialized step, then persists.
func (a *SubscriptionActor) RecordUsage(ctx context.Context, action entity.ActionType, quantity int) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		if !a.state.Quota.RecordUsage(action, quantity) {
			return nil
		}
		if err := a.persist(ctx); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// Extend pushes EndDate forward without touching the quota.
func (a *SubscriptionActor) Extend(ctx context.Context, duration time.Duration) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		a.state.EndDate = a.state.EndDate.Add(duration)
		if err := a.persist(ctx); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// RefillQuota tops up one budget dimension; usage counters stay untouched.
func (a *SubscriptionActor) RefillQuota(ctx context.Context, budget entity.BudgetType, amount int) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		if err := a.state.Quota.Refill(budget, amount); err != nil {
			a.logger.Warn("ACTOR", "Refill rejected", map[string]interface{}{
				"subscription_id": a.id,
				"error":           err.Error(),
			})
			return nil
		}
		if err := a.persist(ctx); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// ValidateFreeAdsUsage checks the category-scoped free-ads allowance.
func (a *SubscriptionActor) ValidateFreeAdsUsage(ctx context.Context, quantity int, category, l1, l2 string) (entity.FreeAdsValidationResult, error) {
	var result entity.FreeAdsValidationResult
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			result = entity.FreeAdsValidationResult{Reason: "Subscription not found", Quantity: quantity}
			return nil
		}
		result = a.state.FreeAdsQuota.ValidateFreeAdsUsage(quantity, category, l1, l2)
		return nil
	})
	return result, err
}

func (a *SubscriptionActor) RecordFreeAdsUsage(ctx context.Context, quantity int, category, l1, l2 string) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		if !a.state.FreeAdsQuota.RecordFreeAdsUsage(quantity, category, l1, l2) {
			return nil
		}
		if err := a.persist(ctx); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// ProvisionFreeAdsQuota sets a category allowance (admin operation).
func (a *SubscriptionActor) ProvisionFreeAdsQuota(ctx context.Context, category, l1, l2 string, allowed int) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		a.state.FreeAdsQuota.Provision(category, l1, l2, allowed)
		if err := a.persist(ctx); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (a *SubscriptionActor) GetFreeAdsSummary(ctx context.Context) ([]entity.FreeAdsCategorySummary, error) {
	var summary []entity.FreeAdsCategorySummary
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		summary = a.state.FreeAdsQuota.GetCategoryUsageSummary()
		return nil
	})
	return summary, err
}

// AdminUpdateUsage overwrites used counters (back-office override).
func (a *SubscriptionActor) AdminUpdateUsage(ctx context.Context, override AdminUsageOverride) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}

		q := &a.state.Quota
		if override.AdsUsed != nil {
			q.AdsUsed = *override.AdsUsed
		}
		if override.PromotionsUsed != nil {
			q.PromotionsUsed = *override.PromotionsUsed
		}
		if override.FeaturesUsed != nil {
			q.FeaturesUsed = *override.FeaturesUsed
		}
		if override.DailyRefreshesUsed != nil {
			q.DailyRefreshesUsed = *override.DailyRefreshesUsed
		}
		if override.SocialMediaPostsUsed != nil {
			q.SocialMediaPostsUsed = *override.SocialMediaPostsUsed
		}
		q.LastUsageUpdate = time.Now().UTC()

		if err := a.persist(ctx); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// GetData returns a copy of the authoritative state, or nil when the entity
// has no backing row. The free-ads slice is copied too; handing out a shared
// backing array would let callers mutate actor state outside the mailbox.
func (a *SubscriptionActor) GetData(ctx context.Context) (*entity.Subscription, error) {
	var snapshot *entity.Subscription
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		cp := *a.state
		cp.FreeAdsQuota.CategoryUsages = append([]entity.FreeAdsCategoryUsage(nil), a.state.FreeAdsQuota.CategoryUsages...)
		snapshot = &cp
		return nil
	})
	return snapshot, err
}

func (a *SubscriptionActor) IsActive(ctx context.Context) (bool, error) {
	active := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state != nil {
			active = a.state.IsActive()
		}
		return nil
	})
	return active, err
}
