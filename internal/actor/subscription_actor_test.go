package actor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/repository/contract"
	"ad-marketplace-be/internal/repository/specification"
	"ad-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes -------------------------------------------------------

type fakeStore struct {
	mu          sync.Mutex
	subs        map[uuid.UUID]*entity.Subscription
	addons      map[uuid.UUID]*entity.Addon
	failUpdates bool
	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subs:   make(map[uuid.UUID]*entity.Subscription),
		addons: make(map[uuid.UUID]*entity.Addon),
	}
}

func (s *fakeStore) put(sub *entity.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sub
	s.subs[sub.Id] = &cp
}

func (s *fakeStore) get(id uuid.UUID) *entity.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[id]; ok {
		cp := *sub
		return &cp
	}
	return nil
}

type fakeSubscriptionRepo struct {
	store *fakeStore
}

func idFromSpecs(specs []specification.Specification) (uuid.UUID, bool) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	r.store.put(sub)
	return nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *entity.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.updateCalls++
	if r.store.failUpdates {
		return errors.New("store unavailable")
	}
	cp := *sub
	r.store.subs[sub.Id] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	id, ok := idFromSpecs(specs)
	if !ok {
		return nil, errors.New("unsupported specification")
	}
	return r.store.get(id), nil
}

func (r *fakeSubscriptionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Subscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeSubscriptionRepo) CreateAddon(_ context.Context, addon *entity.Addon) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *addon
	r.store.addons[addon.Id] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) UpdateAddon(_ context.Context, addon *entity.Addon) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failUpdates {
		return errors.New("store unavailable")
	}
	cp := *addon
	r.store.addons[addon.Id] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) FindOneAddon(_ context.Context, specs ...specification.Specification) (*entity.Addon, error) {
	id, ok := idFromSpecs(specs)
	if !ok {
		return nil, errors.New("unsupported specification")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if addon, ok := r.store.addons[id]; ok {
		cp := *addon
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllAddons(context.Context, ...specification.Specification) ([]*entity.Addon, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) CountActiveSubscriptions(context.Context) (int, error) {
	return len(r.store.subs), nil
}

type fakeUnitOfWork struct {
	repo *fakeSubscriptionRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository { return u.repo }
func (u *fakeUnitOfWork) ProductRepository() contract.ProductRepository           { return nil }
func (u *fakeUnitOfWork) AdRepository() contract.AdRepository                     { return nil }

type fakeUowFactory struct {
	store *fakeStore
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: &fakeSubscriptionRepo{store: f.store}}
}

type fakeCatalog struct {
	products map[string]*entity.Product
}

func (c *fakeCatalog) GetProductByCode(_ context.Context, code string) (*entity.Product, error) {
	return c.products[code], nil
}

type publishedEvent struct {
	eventType string
	entityId  uuid.UUID
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) record(eventType string, id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, entityId: id})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.eventType
	}
	return out
}

func (p *fakePublisher) PublishSubscriptionCreated(_ context.Context, id, _ uuid.UUID, _ string, _ time.Time) {
	p.record("SUBSCRIPTION_CREATED", id)
}
func (p *fakePublisher) PublishSubscriptionCancelled(_ context.Context, id, _ uuid.UUID, _ bool) {
	p.record("SUBSCRIPTION_CANCELLED", id)
}
func (p *fakePublisher) PublishSubscriptionExpired(_ context.Context, id, _ uuid.UUID) {
	p.record("SUBSCRIPTION_EXPIRED", id)
}
func (p *fakePublisher) PublishAddonCreated(_ context.Context, id, _ uuid.UUID, _ string, _ *uuid.UUID) {
	p.record("ADDON_CREATED", id)
}
func (p *fakePublisher) PublishAddonCancelled(_ context.Context, id, _ uuid.UUID, _ bool) {
	p.record("ADDON_CANCELLED", id)
}
func (p *fakePublisher) PublishAddonExpired(_ context.Context, id, _ uuid.UUID) {
	p.record("ADDON_EXPIRED", id)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// --- helpers ---------------------------------------------------------------

func carsProduct() *entity.Product {
	return &entity.Product{
		Id:           uuid.New(),
		Code:         "basic-cars-monthly",
		Name:         "Basic Cars",
		Vertical:     "vehicles",
		SubVertical:  "cars",
		Price:        29.90,
		Currency:     "EUR",
		DurationDays: 30,
		IsActive:     true,
		Constraints: entity.ProductConstraints{
			TotalAdsAllowed:       50,
			DailyRefreshesAllowed: 2,
			RefreshesPerAdAllowed: 5,
			CanPublishAds:         true,
			CanRefreshAds:         true,
		},
	}
}

type actorFixture struct {
	store     *fakeStore
	catalog   *fakeCatalog
	publisher *fakePublisher
	registry  *Registry
}

func newFixture() *actorFixture {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*entity.Product{}}
	publisher := &fakePublisher{}
	p := carsProduct()
	catalog.products[p.Code] = p
	return &actorFixture{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		registry:  NewRegistry(&fakeUowFactory{store: store}, catalog, publisher, nopLogger{}),
	}
}

func (f *actorFixture) createSubscription(t *testing.T, userId uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	ok, err := f.registry.Subscription(id).Create(context.Background(), CreateSubscriptionRequest{
		Id:          id,
		ProductCode: "basic-cars-monthly",
		UserId:      userId,
	})
	require.NoError(t, err)
	require.True(t, ok)
	return id
}

// --- tests -----------------------------------------------------------------

func TestCreateSubscription(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := uuid.New()

	id := f.createSubscription(t, userId)

	stored := f.store.get(id)
	require.NotNil(t, stored)
	assert.Equal(t, entity.SubscriptionStatusActive, stored.Status)
	assert.Equal(t, userId, stored.UserId)
	assert.Equal(t, 50, stored.Quota.TotalAdsAllowed)
	assert.Equal(t, "vehicles", stored.Vertical)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), stored.EndDate, time.Minute)
	assert.Equal(t, []string{"SUBSCRIPTION_CREATED"}, f.publisher.types())

	// Creating again with the same id is rejected, nothing re-published.
	ok, err := f.registry.Subscription(id).Create(ctx, CreateSubscriptionRequest{
		Id:          id,
		ProductCode: "basic-cars-monthly",
		UserId:      userId,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, f.publisher.types(), 1)
}

func TestCreateSubscriptionRejectsBadProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inactive := carsProduct()
	inactive.Code = "retired-plan"
	inactive.IsActive = false
	f.catalog.products[inactive.Code] = inactive

	addonProduct := carsProduct()
	addonProduct.Code = "refresh-pack-10"
	addonProduct.IsAddon = true
	f.catalog.products[addonProduct.Code] = addonProduct

	for _, code := range []string{"no-such-plan", "retired-plan", "refresh-pack-10"} {
		id := uuid.New()
		ok, err := f.registry.Subscription(id).Create(ctx, CreateSubscriptionRequest{
			Id:          id,
			ProductCode: code,
			UserId:      uuid.New(),
		})
		require.NoError(t, err)
		assert.False(t, ok, "product %s should be rejected", code)
		assert.Nil(t, f.store.get(id))
	}
	assert.Empty(t, f.publisher.types())
}

// The whole point of the mailbox: concurrent writers against one budget can
// never overshoot it.
func TestConcurrentRecordUsageNeverExceedsBudget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	const attempts = 100 // budget is 50

	var wg sync.WaitGroup
	results := make([]bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := a.RecordUsage(ctx, entity.ActionPublish, 1)
			assert.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, ok := range results {
		if ok {
			granted++
		}
	}
	assert.Equal(t, 50, granted)

	stored := f.store.get(id)
	require.NotNil(t, stored)
	assert.Equal(t, 50, stored.Quota.AdsUsed)
}

func TestCancelOwnershipAndIdempotence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	id := f.createSubscription(t, owner)
	a := f.registry.Subscription(id)

	// A stranger cannot cancel.
	ok, err := a.Cancel(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, entity.SubscriptionStatusActive, f.store.get(id).Status)

	ok, err = a.Cancel(ctx, owner)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.SubscriptionStatusCancelled, f.store.get(id).Status)

	// Second cancel is a no-op.
	ok, err = a.Cancel(ctx, owner)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"SUBSCRIPTION_CREATED", "SUBSCRIPTION_CANCELLED"}, f.publisher.types())
}

func TestAdminCancelSkipsOwnership(t *testing.T) {
	f := newFixture()
	id := f.createSubscription(t, uuid.New())

	ok, err := f.registry.Subscription(id).AdminCancel(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.SubscriptionStatusCancelled, f.store.get(id).Status)
}

func TestMarkAsExpiredIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	ok, err := a.MarkAsExpired(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.MarkAsExpired(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"SUBSCRIPTION_CREATED", "SUBSCRIPTION_EXPIRED"}, f.publisher.types())
}

func TestExtendMovesEndDateOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	require.NoError(t, errFromPair(a.RecordUsage(ctx, entity.ActionPublish, 3)))
	before := f.store.get(id)

	ok, err := a.Extend(ctx, 15*24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	after := f.store.get(id)
	assert.Equal(t, before.EndDate.Add(15*24*time.Hour), after.EndDate)
	assert.Equal(t, 3, after.Quota.AdsUsed)
}

func TestRefillQuota(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	ok, err := a.RefillQuota(ctx, entity.BudgetAds, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 60, f.store.get(id).Quota.TotalAdsAllowed)

	// Unknown budget type is rejected without mutation.
	ok, err = a.RefillQuota(ctx, "karma_budget", 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 60, f.store.get(id).Quota.TotalAdsAllowed)
}

func TestValidateUsageMissingSubscription(t *testing.T) {
	f := newFixture()

	result, err := f.registry.Subscription(uuid.New()).ValidateUsage(context.Background(), entity.ActionPublish, 1)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Subscription not found", result.Reason)
}

// A failed persist must drop the in-memory state so the next operation
// reloads from the store instead of acting on counters the store never saw.
func TestPersistFailureForcesReload(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	require.NoError(t, errFromPair(a.RecordUsage(ctx, entity.ActionPublish, 10)))

	f.store.mu.Lock()
	f.store.failUpdates = true
	f.store.mu.Unlock()

	_, err := a.RecordUsage(ctx, entity.ActionPublish, 5)
	require.Error(t, err)

	f.store.mu.Lock()
	f.store.failUpdates = false
	f.store.mu.Unlock()

	// The failed increment never reached the store and was not retained in
	// memory either: usage continues from the last durable value.
	ok, err := a.RecordUsage(ctx, entity.ActionPublish, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 15, f.store.get(id).Quota.AdsUsed)
}

func TestFreeAdsLifecycleThroughActor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	ok, err := a.ProvisionFreeAdsQuota(ctx, "vehicles", "cars", "", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	result, err := a.ValidateFreeAdsUsage(ctx, 2, "vehicles", "cars", "")
	require.NoError(t, err)
	assert.True(t, result.IsValid)

	ok, err = a.RecordFreeAdsUsage(ctx, 2, "vehicles", "cars", "")
	require.NoError(t, err)
	assert.True(t, ok)

	summary, err := a.GetFreeAdsSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].RemainingQuota)

	// Survives an actor restart via the mirror.
	f.registry.Shutdown()
	fresh := f.registry.Subscription(id)
	summary, err = fresh.GetFreeAdsSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 2, summary[0].FreeAdsUsed)
}

func TestAdminUpdateUsage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	adsUsed := 42
	ok, err := a.AdminUpdateUsage(ctx, AdminUsageOverride{AdsUsed: &adsUsed})
	require.NoError(t, err)
	assert.True(t, ok)

	stored := f.store.get(id)
	assert.Equal(t, 42, stored.Quota.AdsUsed)
	assert.Equal(t, 0, stored.Quota.DailyRefreshesUsed) // untouched fields stay
}

func TestGetDataReturnsCopy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createSubscription(t, uuid.New())
	a := f.registry.Subscription(id)

	ok, err := a.ProvisionFreeAdsQuota(ctx, "vehicles", "cars", "", 5)
	require.NoError(t, err)
	require.True(t, ok)

	snapshot, err := a.GetData(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	snapshot.Quota.AdsUsed = 999
	// Writing through the snapshot's slice must not reach the actor's state.
	require.Len(t, snapshot.FreeAdsQuota.CategoryUsages, 1)
	snapshot.FreeAdsQuota.CategoryUsages[0].FreeAdsUsed = 999

	fresh, err := a.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Quota.AdsUsed)
	assert.Equal(t, 0, fresh.FreeAdsQuota.CategoryUsages[0].FreeAdsUsed)

	result, err := a.ValidateFreeAdsUsage(ctx, 1, "vehicles", "cars", "")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func errFromPair(_ bool, err error) error { return err }
