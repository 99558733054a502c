package actor

import (
	"context"
	"testing"
	"time"

	"ad-marketplace-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refreshPackProduct() *entity.Product {
	return &entity.Product{
		Id:           uuid.New(),
		Code:         "refresh-pack-10",
		Name:         "Refresh Pack",
		Price:        9.90,
		Currency:     "EUR",
		DurationDays: 90,
		IsAddon:      true,
		IsActive:     true,
		Constraints: entity.ProductConstraints{
			DailyRefreshesAllowed: 10,
			RefreshesPerAdAllowed: 10,
			CanRefreshAds:         true,
		},
	}
}

func (f *actorFixture) createAddon(t *testing.T, userId uuid.UUID, parent *uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	ok, err := f.registry.Addon(id).Create(context.Background(), CreateAddonRequest{
		Id:                   id,
		ProductCode:          "refresh-pack-10",
		UserId:               userId,
		ParentSubscriptionId: parent,
	})
	require.NoError(t, err)
	require.True(t, ok)
	return id
}

func TestCreateAddon(t *testing.T) {
	f := newFixture()
	f.catalog.products["refresh-pack-10"] = refreshPackProduct()
	userId := uuid.New()
	parentId := f.createSubscription(t, userId)

	id := f.createAddon(t, userId, &parentId)

	a := f.registry.Addon(id)
	data, err := a.GetData(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, entity.SubscriptionStatusActive, data.Status)
	assert.Equal(t, &parentId, data.ParentSubscriptionId)
	assert.Equal(t, 10, data.Quota.DailyRefreshesAllowed)
	assert.Contains(t, f.publisher.types(), "ADDON_CREATED")
}

func TestCreateAddonRejectsNonAddonProduct(t *testing.T) {
	f := newFixture() // catalog only has the non-addon cars plan

	id := uuid.New()
	ok, err := f.registry.Addon(id).Create(context.Background(), CreateAddonRequest{
		Id:          id,
		ProductCode: "basic-cars-monthly",
		UserId:      uuid.New(),
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateAddonRejectsMissingParent(t *testing.T) {
	f := newFixture()
	f.catalog.products["refresh-pack-10"] = refreshPackProduct()

	id := uuid.New()
	missingParent := uuid.New()
	ok, err := f.registry.Addon(id).Create(context.Background(), CreateAddonRequest{
		Id:                   id,
		ProductCode:          "refresh-pack-10",
		UserId:               uuid.New(),
		ParentSubscriptionId: &missingParent,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddonStandaloneWithoutParent(t *testing.T) {
	f := newFixture()
	f.catalog.products["refresh-pack-10"] = refreshPackProduct()

	id := f.createAddon(t, uuid.New(), nil)

	data, err := f.registry.Addon(id).GetData(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Nil(t, data.ParentSubscriptionId)
}

func TestAddonUsageAndExpiry(t *testing.T) {
	f := newFixture()
	f.catalog.products["refresh-pack-10"] = refreshPackProduct()
	ctx := context.Background()
	id := f.createAddon(t, uuid.New(), nil)
	a := f.registry.Addon(id)

	result, err := a.ValidateUsage(ctx, entity.ActionRefresh, 1)
	require.NoError(t, err)
	assert.True(t, result.IsValid)

	ok, err := a.RecordUsage(ctx, entity.ActionRefresh, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.MarkAsExpired(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.MarkAsExpired(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	active, err := a.IsActive(ctx)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestAddonCancelOwnership(t *testing.T) {
	f := newFixture()
	f.catalog.products["refresh-pack-10"] = refreshPackProduct()
	ctx := context.Background()
	owner := uuid.New()
	id := f.createAddon(t, owner, nil)
	a := f.registry.Addon(id)

	ok, err := a.Cancel(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.Cancel(ctx, owner)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddonExtend(t *testing.T) {
	f := newFixture()
	f.catalog.products["refresh-pack-10"] = refreshPackProduct()
	ctx := context.Background()
	id := f.createAddon(t, uuid.New(), nil)
	a := f.registry.Addon(id)

	before, err := a.GetData(ctx)
	require.NoError(t, err)

	ok, err := a.Extend(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := a.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.EndDate.Add(30*24*time.Hour), after.EndDate)
}
