package dto

import (
	"time"

	"ad-marketplace-be/internal/entity"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Code         string                    `json:"code" validate:"required"`
	Name         string                    `json:"name" validate:"required"`
	Vertical     string                    `json:"vertical,omitempty"`
	SubVertical  string                    `json:"sub_vertical,omitempty"`
	Price        float64                   `json:"price" validate:"gte=0"`
	Currency     string                    `json:"currency" validate:"required"`
	DurationDays int                       `json:"duration_days" validate:"gt=0"`
	IsAddon      bool                      `json:"is_addon"`
	Constraints  entity.ProductConstraints `json:"constraints"`
}

type ProductResponse struct {
	Id           uuid.UUID                 `json:"id"`
	Code         string                    `json:"code"`
	Name         string                    `json:"name"`
	Vertical     string                    `json:"vertical,omitempty"`
	SubVertical  string                    `json:"sub_vertical,omitempty"`
	Price        float64                   `json:"price"`
	Currency     string                    `json:"currency"`
	DurationDays int                       `json:"duration_days"`
	IsAddon      bool                      `json:"is_addon"`
	IsActive     bool                      `json:"is_active"`
	Constraints  entity.ProductConstraints `json:"constraints"`
	CreatedAt    time.Time                 `json:"created_at"`
}

func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		Id:           p.Id,
		Code:         p.Code,
		Name:         p.Name,
		Vertical:     p.Vertical,
		SubVertical:  p.SubVertical,
		Price:        p.Price,
		Currency:     p.Currency,
		DurationDays: p.DurationDays,
		IsAddon:      p.IsAddon,
		IsActive:     p.IsActive,
		Constraints:  p.Constraints,
		CreatedAt:    p.CreatedAt,
	}
}
