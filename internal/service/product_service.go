// FILE: internal/service/product_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/repository/unitofwork"
	"ad-marketplace-be/pkg/catalog"

	"github.com/google/uuid"
)

type IProductService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProducts(ctx context.Context) ([]*dto.ProductResponse, error)
	GetProductByCode(ctx context.Context, code string) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, code string) error
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	catalog    *catalog.Service
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, catalog *catalog.Service) IProductService {
	return &productService{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProductRepository().FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("product code already exists: %s", req.Code)
	}

	product := &entity.Product{
		Id:           uuid.New(),
		Code:         req.Code,
		Name:         req.Name,
		Vertical:     req.Vertical,
		SubVertical:  req.SubVertical,
		Price:        req.Price,
		Currency:     req.Currency,
		DurationDays: req.DurationDays,
		IsAddon:      req.IsAddon,
		IsActive:     true,
		Constraints:  req.Constraints,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	s.catalog.Invalidate(product.Code)
	return dto.NewProductResponse(product), nil
}

func (s *productService) GetProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, dto.NewProductResponse(p))
	}
	return res, nil
}

func (s *productService) GetProductByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := s.catalog.GetProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

func (s *productService) DeactivateProduct(ctx context.Context, code string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product not found: %s", code)
	}

	product.IsActive = false
	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return err
	}

	s.catalog.Invalidate(code)
	return nil
}
