package mapper

import (
	"encoding/json"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	e := &entity.Subscription{
		Id:          s.Id,
		ProductCode: s.ProductCode,
		UserId:      s.UserId,
		CompanyId:   s.CompanyId,
		Vertical:    s.Vertical,
		SubVertical: s.SubVertical,
		Price:       s.Price,
		Currency:    s.Currency,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Status:      entity.SubscriptionStatus(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if len(s.Quota) > 0 {
		_ = json.Unmarshal(s.Quota, &e.Quota)
	}
	if len(s.FreeAdsQuota) > 0 {
		_ = json.Unmarshal(s.FreeAdsQuota, &e.FreeAdsQuota)
	}
	return e
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	quota, _ := json.Marshal(s.Quota)
	freeAds, _ := json.Marshal(s.FreeAdsQuota)
	return &model.Subscription{
		Id:           s.Id,
		ProductCode:  s.ProductCode,
		UserId:       s.UserId,
		CompanyId:    s.CompanyId,
		Vertical:     s.Vertical,
		SubVertical:  s.SubVertical,
		Price:        s.Price,
		Currency:     s.Currency,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Status:       string(s.Status),
		Quota:        quota,
		FreeAdsQuota: freeAds,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) AddonToEntity(a *model.Addon) *entity.Addon {
	if a == nil {
		return nil
	}
	e := &entity.Addon{
		Id:                   a.Id,
		ProductCode:          a.ProductCode,
		UserId:               a.UserId,
		ParentSubscriptionId: a.ParentSubscriptionId,
		Vertical:             a.Vertical,
		Price:                a.Price,
		Currency:             a.Currency,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Status:               entity.SubscriptionStatus(a.Status),
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if len(a.Quota) > 0 {
		_ = json.Unmarshal(a.Quota, &e.Quota)
	}
	return e
}

func (m *SubscriptionMapper) AddonToModel(a *entity.Addon) *model.Addon {
	if a == nil {
		return nil
	}
	quota, _ := json.Marshal(a.Quota)
	return &model.Addon{
		Id:                   a.Id,
		ProductCode:          a.ProductCode,
		UserId:               a.UserId,
		ParentSubscriptionId: a.ParentSubscriptionId,
		Vertical:             a.Vertical,
		Price:                a.Price,
		Currency:             a.Currency,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Status:               string(a.Status),
		Quota:                quota,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
