package entity

import (
	"time"

	"github.com/google/uuid"
)

// FreeAdsAllowance is one category-scoped free-ad grant in a product's
// constraint template.
type FreeAdsAllowance struct {
	Category       string `json:"category"`
	L1Category     string `json:"l1_category,omitempty"`
	L2Category     string `json:"l2_category,omitempty"`
	FreeAdsAllowed int    `json:"free_ads_allowed"`
}

// ProductConstraints is the quota template applied at purchase time.
type ProductConstraints struct {
	TotalAdsAllowed         int `json:"total_ads_allowed"`
	TotalPromotionsAllowed  int `json:"total_promotions_allowed"`
	TotalFeaturesAllowed    int `json:"total_features_allowed"`
	DailyRefreshesAllowed   int `json:"daily_refreshes_allowed"`
	RefreshesPerAdAllowed   int `json:"refreshes_per_ad_allowed"`
	SocialMediaPostsAllowed int `json:"social_media_posts_allowed"`

	CanPublishAds      bool `json:"can_publish_ads"`
	CanPromoteAds      bool `json:"can_promote_ads"`
	CanFeatureAds      bool `json:"can_feature_ads"`
	CanRefreshAds      bool `json:"can_refresh_ads"`
	CanPostSocialMedia bool `json:"can_post_social_media"`

	RefreshIntervalHours int                `json:"refresh_interval_hours"`
	FreeAdsAllowances    []FreeAdsAllowance `json:"free_ads_allowances,omitempty"`
}

// NewQuota builds a fresh SubscriptionQuota from the template.
func (c *ProductConstraints) NewQuota() SubscriptionQuota {
	now := time.Now().UTC()
	interval := c.RefreshIntervalHours
	if interval <= 0 {
		interval = DefaultRefreshIntervalHours
	}
	return SubscriptionQuota{
		TotalAdsAllowed:         c.TotalAdsAllowed,
		TotalPromotionsAllowed:  c.TotalPromotionsAllowed,
		TotalFeaturesAllowed:    c.TotalFeaturesAllowed,
		DailyRefreshesAllowed:   c.DailyRefreshesAllowed,
		RefreshesPerAdAllowed:   c.RefreshesPerAdAllowed,
		SocialMediaPostsAllowed: c.SocialMediaPostsAllowed,
		CanPublishAds:           c.CanPublishAds,
		CanPromoteAds:           c.CanPromoteAds,
		CanFeatureAds:           c.CanFeatureAds,
		CanRefreshAds:           c.CanRefreshAds,
		CanPostSocialMedia:      c.CanPostSocialMedia,
		LastDailyReset:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		RefreshIntervalHours:    interval,
	}
}

// NewFreeAdsQuota builds the category-scoped free-ads quota from the template.
func (c *ProductConstraints) NewFreeAdsQuota() FreeAdsSubscriptionQuota {
	var q FreeAdsSubscriptionQuota
	for _, a := range c.FreeAdsAllowances {
		q.Provision(a.Category, a.L1Category, a.L2Category, a.FreeAdsAllowed)
	}
	return q
}

// Product is a catalog item; its constraints seed new subscription/addon
// quotas.
type Product struct {
	Id           uuid.UUID
	Code         string
	Name         string
	Vertical     string
	SubVertical  string
	Price        float64
	Currency     string
	DurationDays int
	IsAddon      bool
	IsActive     bool
	Constraints  ProductConstraints
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
