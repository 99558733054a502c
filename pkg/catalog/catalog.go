// Package catalog resolves product constraint templates with a small TTL
// cache in front of the products table. Templates change rarely but are read
// on every purchase.
package catalog

import (
	"context"
	"time"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

type Service struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewService(uowFactory unitofwork.RepositoryFactory) *Service {
	// 5 minute TTL keeps admin catalog edits visible without a restart.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &Service{
		uowFactory: uowFactory,
		cache:      c,
	}
}

func (s *Service) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	if x, found := s.cache.Get(code); found {
		return x.(*entity.Product), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product != nil {
		s.cache.Set(code, product, cache.DefaultExpiration)
	}
	return product, nil
}

// Invalidate drops a cached template after an admin catalog edit.
func (s *Service) Invalidate(code string) {
	s.cache.Delete(code)
}
