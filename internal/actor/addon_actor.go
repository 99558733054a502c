// FILE: internal/actor/addon_actor.go
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

type CreateAddonRequest struct {
	Id                   uuid.UUID
	ProductCode          string
	UserId               uuid.UUID
	ParentSubscriptionId *uuid.UUID
}

// AddonActor is the addon counterpart of SubscriptionActor: same
// single-writer discipline, same quota engine, its own mirror table.
type AddonActor struct {
	id         uuid.UUID
	uowFactory unitofwork.RepositoryFactory
	catalog    ProductCatalog
	publisher  lifecycle.Publisher
	logger     logger.ILogger

	mailbox *mailbox

	state  *entity.Addon
	loaded bool
}

func NewAddonActor(
	id uuid.UUID,
	uowFactory unitofwork.RepositoryFactory,
	catalog ProductCatalog,
	publisher lifecycle.Publisher,
	logger logger.ILogger,
) *AddonActor {
	return &AddonActor{
		id:         id,
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
		logger:     logger,
		mailbox:    newMailbox(),
	}
}

func (a *AddonActor) ensureLoaded(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	uow := a.uowFactory.NewUnitOfWork(ctx)
	addon, err := uow.SubscriptionRepository().FindOneAddon(ctx, specification.ByID{ID: a.id})
	if err != nil {
		return err
	}
	a.state = addon
	a.loaded = true
	return nil
}

func (a *AddonActor) persist(ctx context.Context) error {
	a.state.UpdatedAt = time.Now().UTC()
	uow := a.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().UpdateAddon(ctx, a.state); err != nil {
		a.loaded = false
		a.state = nil
		return err
	}
	return nil
}

// Create initializes the addon from an addon product's constraint template.
// The parent subscription, when referenced, must exist.
func (a *AddonActor) Create(ctx context.Context, req CreateAddonRequest) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state != nil {
			return nil
		}

		product, err := a.catalog.GetProductByCode(ctx, req.ProductCode)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive || !product.IsAddon {
			a.logger.Warn("ACTOR", "Addon create rejected: unknown or non-addon product", map[string]interface{}{
				"addon_id":     a.id,
				"product_code": req.ProductCode,
			})
			return nil
		}

		uow := a.uowFactory.NewUnitOfWork(ctx)
		if req.ParentSubscriptionId != nil {
			parent, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: *req.ParentSubscriptionId})
			if err != nil {
				return err
			}
			if parent == nil {
				a.logger.Warn("ACTOR", "Addon create rejected: parent subscription not found", map[string]interface{}{
					"addon_id":  a.id,
					"parent_id": req.ParentSubscriptionId.String(),
				})
				return nil
			}
		}

		now := time.Now().UTC()
		addon := &entity.Addon{
			Id:                   a.id,
			ProductCode:          product.Code,
			UserId:               req.UserId,
			ParentSubscriptionId: req.ParentSubscriptionId,
			Vertical:             product.Vertical,
			Price:                product.Price,
			Currency:             product.Currency,
			StartDate:            now,
			EndDate:              now.AddDate(0, 0, product.DurationDays),
			Status:               entity.SubscriptionStatusActive,
			Quota:                product.Constraints.NewQuota(),
		}

		if err := uow.SubscriptionRepository().CreateAddon(ctx, addon); err != nil {
			return err
		}

		a.state = addon
		a.publisher.PublishAddonCreated(ctx, addon.Id, addon.UserId, addon.ProductCode, addon.ParentSubscriptionId)
		ok = true
		return nil
	})
	return ok, err
}

func (a *AddonActor) Cancel(ctx context.Context, userId uuid.UUID) (bool, error) {
	return a.cancel(ctx, &userId)
}

func (a *AddonActor) AdminCancel(ctx context.Context) (bool, error) {
	return a.cancel(ctx, nil)
}

func (a *AddonActor) cancel(ctx context.Context, requester *uuid.UUID) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		if requester != nil && a.state.UserId != *requester {
			return nil
		}
		if a.state.Status == entity.SubscriptionStatusCancelled {
			return nil
		}

		a.state.Status = entity.SubscriptionStatusCancelled
		if err := a.persist(ctx); err != nil {
			return err
		}

		a.publisher.PublishAddonCancelled(ctx, a.state.Id, a.state.UserId, requester == nil)
		ok = true
		return nil
	})
	return ok, err
}

func (a *AddonActor) MarkAsExpired(ctx context.Context) (bool, error) {
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

		a.publisher.PublishAddonExpired(ctx, a.state.Id, a.state.UserId)
		ok = true
		return nil
	})
	return ok, err
}

func (a *AddonActor) ValidateUsage(ctx context.Context, action entity.ActionType, quantity int) (entity.ValidationResult, error) {
	var result entity.ValidationResult
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			result = entity.ValidationResult{Action: action, Quantity: quantity, Reason: "Addon not found"}
			return nil
		}
		result = a.state.Quota.ValidateAction(action, quantity)
		return nil
	})
	return result, err
}

func (a *AddonActor) RecordUsage(ctx context.Context, action entity.ActionType, quantity int) (bool, error) {
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

func (a *AddonActor) Extend(ctx context.Context, duration time.Duration) (bool, error) {
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

func (a *AddonActor) RefillQuota(ctx context.Context, budget entity.BudgetType, amount int) (bool, error) {
	ok := false
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		if err := a.state.Quota.Refill(budget, amount); err != nil {
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

func (a *AddonActor) GetData(ctx context.Context) (*entity.Addon, error) {
	var snapshot *entity.Addon
	err := a.mailbox.do(ctx, func() error {
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		if a.state == nil {
			return nil
		}
		cp := *a.state
		snapshot = &cp
		return nil
	})
	return snapshot, err
}

func (a *AddonActor) IsActive(ctx context.Context) (bool, error) {
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
