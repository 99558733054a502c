package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeAdsUnprovisionedCategoryRejects(t *testing.T) {
	var q FreeAdsSubscriptionQuota

	result := q.ValidateFreeAdsUsage(1, "vehicles", "cars", "")

	assert.False(t, result.IsValid)
	assert.Equal(t, 0, result.RemainingQuota)
	assert.Equal(t, "vehicles/cars", result.CategoryPath)

	// The entry was lazily created with allowed=0.
	assert.Len(t, q.CategoryUsages, 1)
	assert.Equal(t, 0, q.CategoryUsages[0].FreeAdsAllowed)
}

// The free-ads validation reports the POST-record remaining when valid, not
// the current remaining. Callers depend on that convention.
func TestFreeAdsValidationReportsPostRecordRemaining(t *testing.T) {
	var q FreeAdsSubscriptionQuota
	q.Provision("vehicles", "cars", "", 5)

	result := q.ValidateFreeAdsUsage(2, "vehicles", "cars", "")

	assert.True(t, result.IsValid)
	assert.Equal(t, 3, result.RemainingQuota) // 5 - 0 - 2

	assert.True(t, q.RecordFreeAdsUsage(2, "vehicles", "cars", ""))

	result = q.ValidateFreeAdsUsage(1, "vehicles", "cars", "")
	assert.True(t, result.IsValid)
	assert.Equal(t, 2, result.RemainingQuota) // 5 - 2 - 1
}

func TestFreeAdsInvalidReportsClampedCurrentRemaining(t *testing.T) {
	var q FreeAdsSubscriptionQuota
	q.Provision("vehicles", "cars", "", 3)
	assert.True(t, q.RecordFreeAdsUsage(2, "vehicles", "cars", ""))

	result := q.ValidateFreeAdsUsage(5, "vehicles", "cars", "")

	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.RemainingQuota)
	assert.Contains(t, result.Reason, "Insufficient free ads quota")
}

func TestFreeAdsExactTripleNoParentFallback(t *testing.T) {
	var q FreeAdsSubscriptionQuota
	q.Provision("vehicles", "", "", 10)

	// The child triple is distinct from the provisioned parent.
	result := q.ValidateFreeAdsUsage(1, "vehicles", "cars", "")
	assert.False(t, result.IsValid)

	result = q.ValidateFreeAdsUsage(1, "vehicles", "", "")
	assert.True(t, result.IsValid)
}

func TestFreeAdsCategoryIsolation(t *testing.T) {
	var q FreeAdsSubscriptionQuota
	q.Provision("vehicles", "cars", "", 2)
	q.Provision("vehicles", "motorcycles", "", 2)

	assert.True(t, q.RecordFreeAdsUsage(2, "vehicles", "cars", ""))
	assert.False(t, q.RecordFreeAdsUsage(1, "vehicles", "cars", ""))

	// The sibling category still has its full allowance.
	assert.True(t, q.RecordFreeAdsUsage(2, "vehicles", "motorcycles", ""))
}

func TestFreeAdsRecordFailureDoesNotMutate(t *testing.T) {
	var q FreeAdsSubscriptionQuota
	q.Provision("vehicles", "cars", "", 1)

	assert.False(t, q.RecordFreeAdsUsage(2, "vehicles", "cars", ""))
	assert.Equal(t, 0, q.CategoryUsages[0].FreeAdsUsed)
}

func TestGetCategoryUsageSummary(t *testing.T) {
	var q FreeAdsSubscriptionQuota
	q.Provision("vehicles", "cars", "", 4)
	q.Provision("real_estate", "", "", 0)
	assert.True(t, q.RecordFreeAdsUsage(1, "vehicles", "cars", ""))

	summaries := q.GetCategoryUsageSummary()

	assert.Len(t, summaries, 2)

	byPath := make(map[string]FreeAdsCategorySummary)
	for _, s := range summaries {
		byPath[s.CategoryPath] = s
	}

	cars := byPath["vehicles/cars"]
	assert.Equal(t, 4, cars.FreeAdsAllowed)
	assert.Equal(t, 1, cars.FreeAdsUsed)
	assert.Equal(t, 3, cars.RemainingQuota)
	assert.InDelta(t, 25.0, cars.UsagePercentage, 0.001)

	// Zero allowance reports 0% instead of dividing by zero.
	realEstate := byPath["real_estate"]
	assert.Equal(t, 0.0, realEstate.UsagePercentage)
}

func TestCategoryUsagePath(t *testing.T) {
	u := FreeAdsCategoryUsage{Category: "vehicles", L1Category: "cars", L2Category: "suv"}
	assert.Equal(t, "vehicles/cars/suv", u.Path())

	u = FreeAdsCategoryUsage{Category: "vehicles"}
	assert.Equal(t, "vehicles", u.Path())
}
