package contract

import (
	"context"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// Subscriptions (mirror rows; written only by the owning actor)
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Addons
	CreateAddon(ctx context.Context, addon *entity.Addon) error
	UpdateAddon(ctx context.Context, addon *entity.Addon) error
	FindOneAddon(ctx context.Context, specs ...specification.Specification) (*entity.Addon, error)
	FindAllAddons(ctx context.Context, specs ...specification.Specification) ([]*entity.Addon, error)

	// Admin stats
	CountActiveSubscriptions(ctx context.Context) (int, error)
}
