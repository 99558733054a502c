// FILE: internal/entity/quota_entity.go
// SubscriptionQuota is the pure in-memory budget/usage engine for a
// subscription or addon. It never touches I/O; the owning actor serializes
// all calls, so validate-then-record pairs are atomic for callers.
package entity

import (
	"fmt"
	"time"
)

type ActionType string
type BudgetType string

const (
	ActionPublish         ActionType = "publish"
	ActionPromote         ActionType = "promote"
	ActionFeature         ActionType = "feature"
	ActionRefresh         ActionType = "refresh"
	ActionSocialMediaPost ActionType = "social_media_post"

	BudgetAds              BudgetType = "ads_budget"
	BudgetPromotions       BudgetType = "promotions_budget"
	BudgetFeatures         BudgetType = "features_budget"
	BudgetDailyRefreshes   BudgetType = "daily_refreshes_budget"
	BudgetRefreshesPerAd   BudgetType = "refreshes_per_ad_budget"
	BudgetSocialMediaPosts BudgetType = "social_media_posts_budget"

	DefaultRefreshIntervalHours = 72
)

// ValidationResult reports the outcome of a quota check.
// RemainingQuota is the remaining budget for the dimension BEFORE any
// mutation is applied.
type ValidationResult struct {
	Action         ActionType `json:"action"`
	Quantity       int        `json:"quantity"`
	IsValid        bool       `json:"is_valid"`
	Reason         string     `json:"reason"`
	RemainingQuota int        `json:"remaining_quota"`
}

type SubscriptionQuota struct {
	// Budgets
	TotalAdsAllowed         int `json:"total_ads_allowed"`
	TotalPromotionsAllowed  int `json:"total_promotions_allowed"`
	TotalFeaturesAllowed    int `json:"total_features_allowed"`
	DailyRefreshesAllowed   int `json:"daily_refreshes_allowed"`
	RefreshesPerAdAllowed   int `json:"refreshes_per_ad_allowed"`
	SocialMediaPostsAllowed int `json:"social_media_posts_allowed"`

	// Usage
	AdsUsed              int `json:"ads_used"`
	PromotionsUsed       int `json:"promotions_used"`
	FeaturesUsed         int `json:"features_used"`
	DailyRefreshesUsed   int `json:"daily_refreshes_used"`
	RefreshesPerAdUsed   int `json:"refreshes_per_ad_used"`
	SocialMediaPostsUsed int `json:"social_media_posts_used"`

	// Capability flags, independent of the numeric budgets. Both must pass.
	CanPublishAds      bool `json:"can_publish_ads"`
	CanPromoteAds      bool `json:"can_promote_ads"`
	CanFeatureAds      bool `json:"can_feature_ads"`
	CanRefreshAds      bool `json:"can_refresh_ads"`
	CanPostSocialMedia bool `json:"can_post_social_media"`

	// Temporal bookkeeping
	LastDailyReset       time.Time `json:"last_daily_reset"`
	LastRefreshUsed      time.Time `json:"last_refresh_used"`
	LastUsageUpdate      time.Time `json:"last_usage_update"`
	RefreshIntervalHours int       `json:"refresh_interval_hours"`
}

func remaining(allowed, used int) int {
	if used >= allowed {
		return 0
	}
	return allowed - used
}

func (q *SubscriptionQuota) RemainingAds() int        { return remaining(q.TotalAdsAllowed, q.AdsUsed) }
func (q *SubscriptionQuota) RemainingPromotions() int { return remaining(q.TotalPromotionsAllowed, q.PromotionsUsed) }
func (q *SubscriptionQuota) RemainingFeatures() int   { return remaining(q.TotalFeaturesAllowed, q.FeaturesUsed) }
func (q *SubscriptionQuota) RemainingDailyRefreshes() int {
	return remaining(q.DailyRefreshesAllowed, q.DailyRefreshesUsed)
}
func (q *SubscriptionQuota) RemainingSocialMediaPosts() int {
	return remaining(q.SocialMediaPostsAllowed, q.SocialMediaPostsUsed)
}

func (q *SubscriptionQuota) refreshInterval() time.Duration {
	hours := q.RefreshIntervalHours
	if hours <= 0 {
		hours = DefaultRefreshIntervalHours
	}
	return time.Duration(hours) * time.Hour
}

// CheckAndResetDailyQuotas zeroes daily-scoped counters once per UTC day.
// Calling it again on the same day is a no-op.
func (q *SubscriptionQuota) CheckAndResetDailyQuotas() {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	lastReset := q.LastDailyReset.UTC()
	lastResetDay := time.Date(lastReset.Year(), lastReset.Month(), lastReset.Day(), 0, 0, 0, 0, time.UTC)

	if today.After(lastResetDay) {
		q.DailyRefreshesUsed = 0
		q.LastDailyReset = today
		q.LastUsageUpdate = now
	}
}

// ValidateAction checks whether an action of the given quantity is allowed.
// Side-effect free except for the idempotent daily-reset bookkeeping.
func (q *SubscriptionQuota) ValidateAction(action ActionType, quantity int) ValidationResult {
	q.CheckAndResetDailyQuotas()

	switch action {
	case ActionPublish:
		return q.validateCounted(action, quantity, q.CanPublishAds, q.RemainingAds(), "publish ads")
	case ActionPromote:
		return q.validateCounted(action, quantity, q.CanPromoteAds, q.RemainingPromotions(), "promote ads")
	case ActionFeature:
		return q.validateCounted(action, quantity, q.CanFeatureAds, q.RemainingFeatures(), "feature ads")
	case ActionSocialMediaPost:
		return q.validateCounted(action, quantity, q.CanPostSocialMedia, q.RemainingSocialMediaPosts(), "post to social media")
	case ActionRefresh:
		return q.validateRefresh(quantity)
	default:
		return ValidationResult{
			Action:   action,
			Quantity: quantity,
			IsValid:  false,
			Reason:   "Unknown action type",
		}
	}
}

func (q *SubscriptionQuota) validateCounted(action ActionType, quantity int, enabled bool, rem int, verb string) ValidationResult {
	result := ValidationResult{Action: action, Quantity: quantity, RemainingQuota: rem}

	if !enabled {
		result.Reason = fmt.Sprintf("Subscription is not allowed to %s", verb)
		return result
	}
	if rem < quantity {
		result.Reason = fmt.Sprintf("Insufficient quota: %d remaining, %d requested", rem, quantity)
		return result
	}

	result.IsValid = true
	result.Reason = "OK"
	return result
}

// validateRefresh applies the interval gate before the capacity check; a
// refresh can be capacity-available but still blocked by the interval, and
// the returned reason must reflect the interval failure in that case.
func (q *SubscriptionQuota) validateRefresh(quantity int) ValidationResult {
	result := ValidationResult{
		Action:         ActionRefresh,
		Quantity:       quantity,
		RemainingQuota: q.RemainingDailyRefreshes(),
	}

	if !q.CanRefreshAds {
		result.Reason = "Subscription is not allowed to refresh ads"
		return result
	}

	if !q.LastRefreshUsed.IsZero() {
		elapsed := time.Since(q.LastRefreshUsed)
		if elapsed < q.refreshInterval() {
			nextAt := q.LastRefreshUsed.Add(q.refreshInterval())
			result.Reason = fmt.Sprintf("Refresh interval not elapsed: next refresh available at %s", nextAt.UTC().Format(time.RFC3339))
			return result
		}
	}

	if result.RemainingQuota < quantity {
		result.Reason = fmt.Sprintf("Insufficient quota: %d remaining, %d requested", result.RemainingQuota, quantity)
		return result
	}

	result.IsValid = true
	result.Reason = "OK"
	return result
}

// RecordUsage re-validates and then increments the matching counter.
// Returns false with no mutation when validation fails.
func (q *SubscriptionQuota) RecordUsage(action ActionType, quantity int) bool {
	result := q.ValidateAction(action, quantity)
	if !result.IsValid {
		return false
	}

	now := time.Now().UTC()
	switch action {
	case ActionPublish:
		q.AdsUsed += quantity
	case ActionPromote:
		q.PromotionsUsed += quantity
	case ActionFeature:
		q.FeaturesUsed += quantity
	case ActionSocialMediaPost:
		q.SocialMediaPostsUsed += quantity
	case ActionRefresh:
		q.DailyRefreshesUsed += quantity
		q.RefreshesPerAdUsed += quantity
		q.LastRefreshUsed = now
	}
	q.LastUsageUpdate = now
	return true
}

// Refill adds amount to the named budget dimension. Usage counters are never
// touched here.
func (q *SubscriptionQuota) Refill(budget BudgetType, amount int) error {
	switch budget {
	case BudgetAds:
		q.TotalAdsAllowed += amount
	case BudgetPromotions:
		q.TotalPromotionsAllowed += amount
	case BudgetFeatures:
		q.TotalFeaturesAllowed += amount
	case BudgetDailyRefreshes:
		q.DailyRefreshesAllowed += amount
	case BudgetRefreshesPerAd:
		q.RefreshesPerAdAllowed += amount
	case BudgetSocialMediaPosts:
		q.SocialMediaPostsAllowed += amount
	default:
		return fmt.Errorf("unknown budget type: %s", budget)
	}
	q.LastUsageUpdate = time.Now().UTC()
	return nil
}

// ActionForBudget maps a budget dimension back to the action that consumes it.
func ActionForBudget(budget BudgetType) (ActionType, bool) {
	switch budget {
	case BudgetAds:
		return ActionPublish, true
	case BudgetPromotions:
		return ActionPromote, true
	case BudgetFeatures:
		return ActionFeature, true
	case BudgetDailyRefreshes, BudgetRefreshesPerAd:
		return ActionRefresh, true
	case BudgetSocialMediaPosts:
		return ActionSocialMediaPost, true
	}
	return "", false
}
