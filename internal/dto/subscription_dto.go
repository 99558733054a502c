// FILE: internal/dto/subscription_dto.go
package dto

import (
	"time"

	"ad-marketplace-be/internal/entity"

	"github.com/google/uuid"
)

type CreateSubscriptionRequest struct {
	ProductCode string     `json:"product_code" validate:"required"`
	UserId      uuid.UUID  `json:"user_id" validate:"required"`
	CompanyId   *uuid.UUID `json:"company_id,omitempty"`
}

type CreateAddonRequest struct {
	ProductCode          string     `json:"product_code" validate:"required"`
	UserId               uuid.UUID  `json:"user_id" validate:"required"`
	ParentSubscriptionId *uuid.UUID `json:"parent_subscription_id,omitempty"`
}

type ExtendSubscriptionRequest struct {
	DurationDays int `json:"duration_days" validate:"required,gt=0"`
}

type RefillQuotaRequest struct {
	BudgetType string `json:"budget_type" validate:"required"`
	Amount     int    `json:"amount" validate:"required,gt=0"`
}

type UsageRequest struct {
	Action   string `json:"action" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type FreeAdsUsageRequest struct {
	Quantity   int    `json:"quantity" validate:"gte=0"`
	Category   string `json:"category" validate:"required"`
	L1Category string `json:"l1_category,omitempty"`
	L2Category string `json:"l2_category,omitempty"`
}

type ProvisionFreeAdsRequest struct {
	Category   string `json:"category" validate:"required"`
	L1Category string `json:"l1_category,omitempty"`
	L2Category string `json:"l2_category,omitempty"`
	Allowed    int    `json:"allowed" validate:"gte=0"`
}

type AdminUsageOverrideRequest struct {
	AdsUsed              *int `json:"ads_used,omitempty"`
	PromotionsUsed       *int `json:"promotions_used,omitempty"`
	FeaturesUsed         *int `json:"features_used,omitempty"`
	DailyRefreshesUsed   *int `json:"daily_refreshes_used,omitempty"`
	SocialMediaPostsUsed *int `json:"social_media_posts_used,omitempty"`
}

// SubscriptionFilter drives the paginated mirror query. Skip/take are applied
// server-side before the actor fan-out, so page size bounds actor calls.
type SubscriptionFilter struct {
	UserId    *uuid.UUID `json:"user_id,omitempty"`
	CompanyId *uuid.UUID `json:"company_id,omitempty"`
	Status    string     `json:"status,omitempty"`
	Vertical  string     `json:"vertical,omitempty"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

type QuotaResponse struct {
	TotalAdsAllowed         int `json:"total_ads_allowed"`
	AdsUsed                 int `json:"ads_used"`
	RemainingAds            int `json:"remaining_ads"`
	TotalPromotionsAllowed  int `json:"total_promotions_allowed"`
	PromotionsUsed          int `json:"promotions_used"`
	RemainingPromotions     int `json:"remaining_promotions"`
	TotalFeaturesAllowed    int `json:"total_features_allowed"`
	FeaturesUsed            int `json:"features_used"`
	RemainingFeatures       int `json:"remaining_features"`
	DailyRefreshesAllowed   int `json:"daily_refreshes_allowed"`
	DailyRefreshesUsed      int `json:"daily_refreshes_used"`
	RemainingDailyRefreshes int `json:"remaining_daily_refreshes"`
	SocialMediaPostsAllowed int `json:"social_media_posts_allowed"`
	SocialMediaPostsUsed    int `json:"social_media_posts_used"`

	CanPublishAds      bool `json:"can_publish_ads"`
	CanPromoteAds      bool `json:"can_promote_ads"`
	CanFeatureAds      bool `json:"can_feature_ads"`
	CanRefreshAds      bool `json:"can_refresh_ads"`
	CanPostSocialMedia bool `json:"can_post_social_media"`

	LastDailyReset  time.Time `json:"last_daily_reset"`
	LastRefreshUsed time.Time `json:"last_refresh_used"`
	LastUsageUpdate time.Time `json:"last_usage_update"`
}

type SubscriptionResponse struct {
	Id          uuid.UUID     `json:"id"`
	ProductCode string        `json:"product_code"`
	UserId      uuid.UUID     `json:"user_id"`
	CompanyId   *uuid.UUID    `json:"company_id,omitempty"`
	Vertical    string        `json:"vertical,omitempty"`
	SubVertical string        `json:"sub_vertical,omitempty"`
	Price       float64       `json:"price"`
	Currency    string        `json:"currency"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Status      string        `json:"status"`
	IsActive    bool          `json:"is_active"`
	Quota       QuotaResponse `json:"quota"`
}

type AddonResponse struct {
	Id                   uuid.UUID     `json:"id"`
	ProductCode          string        `json:"product_code"`
	UserId               uuid.UUID     `json:"user_id"`
	ParentSubscriptionId *uuid.UUID    `json:"parent_subscription_id,omitempty"`
	Price                float64       `json:"price"`
	Currency             string        `json:"currency"`
	StartDate            time.Time     `json:"start_date"`
	EndDate              time.Time     `json:"end_date"`
	Status               string        `json:"status"`
	IsActive             bool          `json:"is_active"`
	Quota                QuotaResponse `json:"quota"`
}

// FetchFailure records one entity whose actor call failed during a
// best-effort fan-out. The rest of the page is still served.
type FetchFailure struct {
	Id    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

type PagedSubscriptionsResponse struct {
	Items      []*SubscriptionResponse `json:"items"`
	Failed     []FetchFailure          `json:"failed,omitempty"`
	TotalCount int64                   `json:"total_count"`
	TotalPages int                     `json:"total_pages"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
}

func NewQuotaResponse(q *entity.SubscriptionQuota) QuotaResponse {
	return QuotaResponse{
		TotalAdsAllowed:         q.TotalAdsAllowed,
		AdsUsed:                 q.AdsUsed,
		RemainingAds:            q.RemainingAds(),
		TotalPromotionsAllowed:  q.TotalPromotionsAllowed,
		PromotionsUsed:          q.PromotionsUsed,
		RemainingPromotions:     q.RemainingPromotions(),
		TotalFeaturesAllowed:    q.TotalFeaturesAllowed,
		FeaturesUsed:            q.FeaturesUsed,
		RemainingFeatures:       q.RemainingFeatures(),
		DailyRefreshesAllowed:   q.DailyRefreshesAllowed,
		DailyRefreshesUsed:      q.DailyRefreshesUsed,
		RemainingDailyRefreshes: q.RemainingDailyRefreshes(),
		SocialMediaPostsAllowed: q.SocialMediaPostsAllowed,
		SocialMediaPostsUsed:    q.SocialMediaPostsUsed,
		CanPublishAds:           q.CanPublishAds,
		CanPromoteAds:           q.CanPromoteAds,
		CanFeatureAds:           q.CanFeatureAds,
		CanRefreshAds:           q.CanRefreshAds,
		CanPostSocialMedia:      q.CanPostSocialMedia,
		LastDailyReset:          q.LastDailyReset,
		LastRefreshUsed:         q.LastRefreshUsed,
		LastUsageUpdate:         q.LastUsageUpdate,
	}
}

func NewSubscriptionResponse(s *entity.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
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
		Status:      string(s.Status),
		IsActive:    s.IsActive(),
		Quota:       NewQuotaResponse(&s.Quota),
	}
}

func NewAddonResponse(a *entity.Addon) *AddonResponse {
	if a == nil {
		return nil
	}
	return &AddonResponse{
		Id:                   a.Id,
		ProductCode:          a.ProductCode,
		UserId:               a.UserId,
		ParentSubscriptionId: a.ParentSubscriptionId,
		Price:                a.Price,
		Currency:             a.Currency,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Status:               string(a.Status),
		IsActive:             a.IsActive(),
		Quota:                NewQuotaResponse(&a.Quota),
	}
}
