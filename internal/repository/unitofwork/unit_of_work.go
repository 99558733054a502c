package unitofwork

import (
	"context"

	"ad-marketplace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubscriptionRepository() contract.SubscriptionRepository
	ProductRepository() contract.ProductRepository
	AdRepository() contract.AdRepository
}
