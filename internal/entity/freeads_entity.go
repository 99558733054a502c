// FILE: internal/entity/freeads_entity.go
// Category-hierarchy-scoped free-ad quota, independent of the generic
// SubscriptionQuota engine.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// FreeAdsCategoryUsage tracks free-ad consumption for one exact
// (category, l1, l2) triple. Entries are created lazily on first use with
// FreeAdsAllowed=0, so an unprovisioned category rejects any quantity > 0.
type FreeAdsCategoryUsage struct {
	Category       string `json:"category"`
	L1Category     string `json:"l1_category,omitempty"`
	L2Category     string `json:"l2_category,omitempty"`
	FreeAdsAllowed int    `json:"free_ads_allowed"`
	FreeAdsUsed    int    `json:"free_ads_used"`
}

// Path returns the "/"-joined category hierarchy for reporting.
func (u *FreeAdsCategoryUsage) Path() string {
	parts := []string{u.Category}
	if u.L1Category != "" {
		parts = append(parts, u.L1Category)
	}
	if u.L2Category != "" {
		parts = append(parts, u.L2Category)
	}
	return strings.Join(parts, "/")
}

type FreeAdsValidationResult struct {
	IsValid        bool   `json:"is_valid"`
	Reason         string `json:"reason"`
	CategoryPath   string `json:"category_path"`
	Quantity       int    `json:"quantity"`
	RemainingQuota int    `json:"remaining_quota"`
}

type FreeAdsCategorySummary struct {
	CategoryPath    string  `json:"category_path"`
	FreeAdsAllowed  int     `json:"free_ads_allowed"`
	FreeAdsUsed     int     `json:"free_ads_used"`
	RemainingQuota  int     `json:"remaining_quota"`
	UsagePercentage float64 `json:"usage_percentage"`
}

type FreeAdsSubscriptionQuota struct {
	CategoryUsages  []FreeAdsCategoryUsage `json:"category_usages"`
	LastUsageUpdate time.Time              `json:"last_usage_update"`
}

// resolveUsage finds or lazily creates the entry for the exact triple.
// There is no fallback to a parent category.
func (q *FreeAdsSubscriptionQuota) resolveUsage(category, l1, l2 string) *FreeAdsCategoryUsage {
	for i := range q.CategoryUsages {
		u := &q.CategoryUsages[i]
		if u.Category == category && u.L1Category == l1 && u.L2Category == l2 {
			return u
		}
	}
	q.CategoryUsages = append(q.CategoryUsages, FreeAdsCategoryUsage{
		Category:   category,
		L1Category: l1,
		L2Category: l2,
	})
	return &q.CategoryUsages[len(q.CategoryUsages)-1]
}

// ValidateFreeAdsUsage checks whether quantity free ads fit in the category's
// allowance. Unlike SubscriptionQuota, the remaining quota reported here is
// the POST-record value (allowed - used - quantity) when valid.
func (q *FreeAdsSubscriptionQuota) ValidateFreeAdsUsage(quantity int, category, l1, l2 string) FreeAdsValidationResult {
	usage := q.resolveUsage(category, l1, l2)
	result := FreeAdsValidationResult{
		CategoryPath: usage.Path(),
		Quantity:     quantity,
	}

	if usage.FreeAdsUsed+quantity > usage.FreeAdsAllowed {
		result.Reason = fmt.Sprintf("Insufficient free ads quota for category %s: %d allowed, %d used, %d requested",
			usage.Path(), usage.FreeAdsAllowed, usage.FreeAdsUsed, quantity)
		result.RemainingQuota = usage.FreeAdsAllowed - usage.FreeAdsUsed
		if result.RemainingQuota < 0 {
			result.RemainingQuota = 0
		}
		return result
	}

	result.IsValid = true
	result.Reason = "OK"
	result.RemainingQuota = usage.FreeAdsAllowed - usage.FreeAdsUsed - quantity
	return result
}

// RecordFreeAdsUsage re-validates and increments FreeAdsUsed on success only.
func (q *FreeAdsSubscriptionQuota) RecordFreeAdsUsage(quantity int, category, l1, l2 string) bool {
	result := q.ValidateFreeAdsUsage(quantity, category, l1, l2)
	if !result.IsValid {
		return false
	}

	usage := q.resolveUsage(category, l1, l2)
	usage.FreeAdsUsed += quantity
	q.LastUsageUpdate = time.Now().UTC()
	return true
}

// Provision sets the allowance for the exact category triple. Used at
// purchase time (from the product template) and by admin overrides.
func (q *FreeAdsSubscriptionQuota) Provision(category, l1, l2 string, allowed int) {
	usage := q.resolveUsage(category, l1, l2)
	usage.FreeAdsAllowed = allowed
	q.LastUsageUpdate = time.Now().UTC()
}

// GetCategoryUsageSummary returns per-category stats for reporting.
func (q *FreeAdsSubscriptionQuota) GetCategoryUsageSummary() []FreeAdsCategorySummary {
	summaries := make([]FreeAdsCategorySummary, 0, len(q.CategoryUsages))
	for i := range q.CategoryUsages {
		u := &q.CategoryUsages[i]

		rem := u.FreeAdsAllowed - u.FreeAdsUsed
		if rem < 0 {
			rem = 0
		}

		pct := 0.0
		if u.FreeAdsAllowed > 0 {
			pct = float64(u.FreeAdsUsed) / float64(u.FreeAdsAllowed) * 100
		}

		summaries = append(summaries, FreeAdsCategorySummary{
			CategoryPath:    u.Path(),
			FreeAdsAllowed:  u.FreeAdsAllowed,
			FreeAdsUsed:     u.FreeAdsUsed,
			RemainingQuota:  rem,
			UsagePercentage: pct,
		})
	}
	return summaries
}
