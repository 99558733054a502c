package mapper

import (
	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/model"
)

type AdMapper struct{}

func NewAdMapper() *AdMapper {
	return &AdMapper{}
}

func (m *AdMapper) ToEntity(a *model.Ad) *entity.Ad {
	if a == nil {
		return nil
	}
	return &entity.Ad{
		Id:             a.Id,
		SubscriptionId: a.SubscriptionId,
		UserId:         a.UserId,
		Title:          a.Title,
		Category:       a.Category,
		L1Category:     a.L1Category,
		L2Category:     a.L2Category,
		Status:         entity.AdStatus(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *AdMapper) ToModel(a *entity.Ad) *model.Ad {
	if a == nil {
		return nil
	}
	return &model.Ad{
		Id:             a.Id,
		SubscriptionId: a.SubscriptionId,
		UserId:         a.UserId,
		Title:          a.Title,
		Category:       a.Category,
		L1Category:     a.L1Category,
		L2Category:     a.L2Category,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
