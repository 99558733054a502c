package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestQuota() SubscriptionQuota {
	return SubscriptionQuota{
		TotalAdsAllowed:         10,
		TotalPromotionsAllowed:  5,
		TotalFeaturesAllowed:    3,
		DailyRefreshesAllowed:   2,
		RefreshesPerAdAllowed:   5,
		SocialMediaPostsAllowed: 4,
		CanPublishAds:           true,
		CanPromoteAds:           true,
		CanFeatureAds:           true,
		CanRefreshAds:           true,
		CanPostSocialMedia:      true,
		LastDailyReset:          todayUTC(),
		RefreshIntervalHours:    DefaultRefreshIntervalHours,
	}
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestValidateAction(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(q *SubscriptionQuota)
		action    ActionType
		quantity  int
		wantValid bool
		wantRem   int
	}{
		{
			name:      "publish within budget",
			action:    ActionPublish,
			quantity:  3,
			wantValid: true,
			wantRem:   10,
		},
		{
			name:      "publish exceeding budget",
			action:    ActionPublish,
			quantity:  11,
			wantValid: false,
			wantRem:   10,
		},
		{
			name: "publish with capability disabled",
			setup: func(q *SubscriptionQuota) {
				q.CanPublishAds = false
			},
			action:    ActionPublish,
			quantity:  1,
			wantValid: false,
			wantRem:   10,
		},
		{
			name: "promote with partial usage",
			setup: func(q *SubscriptionQuota) {
				q.PromotionsUsed = 3
			},
			action:    ActionPromote,
			quantity:  2,
			wantValid: true,
			wantRem:   2,
		},
		{
			name:      "quantity zero is a no-op success",
			action:    ActionFeature,
			quantity:  0,
			wantValid: true,
			wantRem:   3,
		},
		{
			name: "quantity zero still needs the capability",
			setup: func(q *SubscriptionQuota) {
				q.CanFeatureAds = false
			},
			action:    ActionFeature,
			quantity:  0,
			wantValid: false,
			wantRem:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestQuota()
			if tt.setup != nil {
				tt.setup(&q)
			}

			result := q.ValidateAction(tt.action, tt.quantity)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.action, result.Action)
			assert.Equal(t, tt.quantity, result.Quantity)
			assert.Equal(t, tt.wantRem, result.RemainingQuota)
		})
	}
}

func TestValidateActionUnknownType(t *testing.T) {
	q := newTestQuota()
	result := q.ValidateAction("teleport", 1)

	assert.False(t, result.IsValid)
	assert.Equal(t, "Unknown action type", result.Reason)
}

// RemainingQuota in a validation result must be the pre-mutation value even
// when the request is valid and about to be recorded.
func TestValidateActionReportsPreMutationRemaining(t *testing.T) {
	q := newTestQuota()
	q.AdsUsed = 4

	result := q.ValidateAction(ActionPublish, 3)

	assert.True(t, result.IsValid)
	assert.Equal(t, 6, result.RemainingQuota)

	assert.True(t, q.RecordUsage(ActionPublish, 3))
	assert.Equal(t, 7, q.AdsUsed)
	assert.Equal(t, 3, q.RemainingAds())
}

func TestRecordUsage(t *testing.T) {
	q := newTestQuota()

	assert.True(t, q.RecordUsage(ActionPublish, 5))
	assert.Equal(t, 5, q.AdsUsed)

	// Over budget: no mutation.
	assert.False(t, q.RecordUsage(ActionPublish, 6))
	assert.Equal(t, 5, q.AdsUsed)

	assert.True(t, q.RecordUsage(ActionPublish, 5))
	assert.Equal(t, 10, q.AdsUsed)
	assert.Equal(t, 0, q.RemainingAds())

	assert.False(t, q.RecordUsage(ActionPublish, 1))
	assert.Equal(t, 10, q.AdsUsed)
}

func TestRecordRefreshSetsTimestamps(t *testing.T) {
	q := newTestQuota()

	assert.True(t, q.RecordUsage(ActionRefresh, 1))
	assert.Equal(t, 1, q.DailyRefreshesUsed)
	assert.Equal(t, 1, q.RefreshesPerAdUsed)
	assert.False(t, q.LastRefreshUsed.IsZero())
	assert.False(t, q.LastUsageUpdate.IsZero())
}

func TestRefreshIntervalGate(t *testing.T) {
	t.Run("blocked before interval elapses", func(t *testing.T) {
		q := newTestQuota()
		q.LastRefreshUsed = time.Now().UTC().Add(-71 * time.Hour)

		result := q.ValidateAction(ActionRefresh, 1)

		assert.False(t, result.IsValid)
		assert.Contains(t, result.Reason, "Refresh interval not elapsed")
	})

	t.Run("allowed at exactly the interval boundary", func(t *testing.T) {
		q := newTestQuota()
		q.LastRefreshUsed = time.Now().UTC().Add(-72 * time.Hour)

		result := q.ValidateAction(ActionRefresh, 1)

		assert.True(t, result.IsValid)
	})

	t.Run("never used refresh before", func(t *testing.T) {
		q := newTestQuota()

		result := q.ValidateAction(ActionRefresh, 1)

		assert.True(t, result.IsValid)
	})

	t.Run("interval failure reported before capacity failure", func(t *testing.T) {
		q := newTestQuota()
		q.LastRefreshUsed = time.Now().UTC().Add(-1 * time.Hour)
		q.DailyRefreshesUsed = q.DailyRefreshesAllowed // capacity also exhausted

		result := q.ValidateAction(ActionRefresh, 1)

		assert.False(t, result.IsValid)
		assert.Contains(t, result.Reason, "Refresh interval not elapsed")
	})

	t.Run("custom interval from product template", func(t *testing.T) {
		q := newTestQuota()
		q.RefreshIntervalHours = 24
		q.LastRefreshUsed = time.Now().UTC().Add(-25 * time.Hour)

		result := q.ValidateAction(ActionRefresh, 1)

		assert.True(t, result.IsValid)
	})
}

func TestCheckAndResetDailyQuotas(t *testing.T) {
	t.Run("resets once for a new day", func(t *testing.T) {
		q := newTestQuota()
		q.DailyRefreshesUsed = 2
		q.LastDailyReset = todayUTC().AddDate(0, 0, -1)

		q.CheckAndResetDailyQuotas()

		assert.Equal(t, 0, q.DailyRefreshesUsed)
		assert.Equal(t, todayUTC(), q.LastDailyReset)
	})

	t.Run("second call on same day is a no-op", func(t *testing.T) {
		q := newTestQuota()
		q.LastDailyReset = todayUTC().AddDate(0, 0, -1)
		q.CheckAndResetDailyQuotas()

		assert.True(t, q.RecordUsage(ActionRefresh, 1))
		updateBefore := q.LastUsageUpdate

		q.CheckAndResetDailyQuotas()

		assert.Equal(t, 1, q.DailyRefreshesUsed)
		assert.Equal(t, updateBefore, q.LastUsageUpdate)
	})

	t.Run("daily reset does not touch lifetime counters", func(t *testing.T) {
		q := newTestQuota()
		q.AdsUsed = 7
		q.RefreshesPerAdUsed = 3
		q.LastDailyReset = todayUTC().AddDate(0, 0, -1)

		q.CheckAndResetDailyQuotas()

		assert.Equal(t, 7, q.AdsUsed)
		assert.Equal(t, 3, q.RefreshesPerAdUsed)
	})
}

func TestRefill(t *testing.T) {
	q := newTestQuota()
	q.AdsUsed = 10

	assert.NoError(t, q.Refill(BudgetAds, 5))
	assert.Equal(t, 15, q.TotalAdsAllowed)
	assert.Equal(t, 10, q.AdsUsed) // usage untouched
	assert.Equal(t, 5, q.RemainingAds())

	assert.Error(t, q.Refill("karma_budget", 5))
}

func TestRemainingNeverNegative(t *testing.T) {
	q := newTestQuota()
	q.AdsUsed = 99

	assert.Equal(t, 0, q.RemainingAds())
}

func TestActionForBudget(t *testing.T) {
	action, ok := ActionForBudget(BudgetPromotions)
	assert.True(t, ok)
	assert.Equal(t, ActionPromote, action)

	_, ok = ActionForBudget("karma_budget")
	assert.False(t, ok)
}
