package mapper

import (
	"encoding/json"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	e := &entity.Product{
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
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if len(p.Constraints) > 0 {
		_ = json.Unmarshal(p.Constraints, &e.Constraints)
	}
	return e
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	constraints, _ := json.Marshal(p.Constraints)
	return &model.Product{
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
		Constraints:  constraints,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
