package service

import (
	"context"
	"errors"
	"testing"

	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/repository/contract"
	"ad-marketplace-be/internal/repository/specification"
	"ad-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSubscriptionService only implements the two methods the moderation
// service touches; anything else panics via the embedded nil interface.
type stubSubscriptionService struct {
	ISubscriptionService
	validate func(id uuid.UUID, action string, quantity int) (entity.ValidationResult, error)
	record   func(id uuid.UUID, action string, quantity int) (bool, error)
}

func (s *stubSubscriptionService) ValidateUsage(_ context.Context, id uuid.UUID, action string, quantity int) (entity.ValidationResult, error) {
	return s.validate(id, action, quantity)
}

func (s *stubSubscriptionService) RecordUsage(_ context.Context, id uuid.UUID, action string, quantity int) (bool, error) {
	return s.record(id, action, quantity)
}

type fakeAdRepo struct {
	ads        map[uuid.UUID]*entity.Ad
	updateFail map[uuid.UUID]bool // ads the bulk update silently skips
}

func (r *fakeAdRepo) Create(_ context.Context, ad *entity.Ad) error {
	r.ads[ad.Id] = ad
	return nil
}

func (r *fakeAdRepo) FindOne(context.Context, ...specification.Specification) (*entity.Ad, error) {
	return nil, nil
}

func (r *fakeAdRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Ad, error) {
	var out []*entity.Ad
	for _, spec := range specs {
		if byIDs, ok := spec.(specification.ByIDs); ok {
			for _, id := range byIDs.IDs {
				if ad, ok := r.ads[id]; ok {
					out = append(out, ad)
				}
			}
		}
	}
	return out, nil
}

func (r *fakeAdRepo) BulkUpdateStatus(_ context.Context, adIds []uuid.UUID, status entity.AdStatus) ([]uuid.UUID, error) {
	var updated []uuid.UUID
	for _, id := range adIds {
		ad, ok := r.ads[id]
		if !ok || r.updateFail[id] {
			continue
		}
		ad.Status = status
		updated = append(updated, id)
	}
	return updated, nil
}

type adOnlyUnitOfWork struct {
	adRepo *fakeAdRepo
}

func (u *adOnlyUnitOfWork) Begin(context.Context) error { return nil }
func (u *adOnlyUnitOfWork) Commit() error               { return nil }
func (u *adOnlyUnitOfWork) Rollback() error             { return nil }

func (u *adOnlyUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository { return nil }
func (u *adOnlyUnitOfWork) ProductRepository() contract.ProductRepository           { return nil }
func (u *adOnlyUnitOfWork) AdRepository() contract.AdRepository                     { return u.adRepo }

type adOnlyUowFactory struct {
	adRepo *fakeAdRepo
}

func (f *adOnlyUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &adOnlyUnitOfWork{adRepo: f.adRepo}
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func seedAds(repo *fakeAdRepo, subId uuid.UUID, n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		repo.ads[id] = &entity.Ad{Id: id, SubscriptionId: subId, Status: entity.AdStatusPending}
		ids[i] = id
	}
	return ids
}

// Two subscriptions, five ads. The second group exceeds its quota and is
// rejected whole, so only the first group's ads count as succeeded.
func TestBulkEditAdsGroupAdmission(t *testing.T) {
	repo := &fakeAdRepo{ads: map[uuid.UUID]*entity.Ad{}, updateFail: map[uuid.UUID]bool{}}
	subA := uuid.New()
	subB := uuid.New()
	adsA := seedAds(repo, subA, 2)
	adsB := seedAds(repo, subB, 3)

	stub := &stubSubscriptionService{
		validate: func(id uuid.UUID, _ string, quantity int) (entity.ValidationResult, error) {
			if id == subB {
				return entity.ValidationResult{IsValid: false, Reason: "Insufficient promote_budget"}, nil
			}
			return entity.ValidationResult{IsValid: true, Quantity: quantity}, nil
		},
		record: func(uuid.UUID, string, int) (bool, error) { return true, nil },
	}

	svc := NewModerationService(stub, &adOnlyUowFactory{adRepo: repo}, nopLogger{})

	resp, err := svc.BulkEditAds(context.Background(), &dto.BulkEditAdsRequest{
		AdIds:  append(append([]uuid.UUID{}, adsA...), adsB...),
		Action: "promote",
	})
	require.NoError(t, err)

	assert.Equal(t, "2 of 5 succeeded", resp.Summary)
	assert.Equal(t, 5, resp.TotalRequested)
	assert.Equal(t, 2, resp.TotalSucceeded)
	assert.ElementsMatch(t, adsA, resp.UpdatedAdIds)
	require.Len(t, resp.RejectedGroups, 1)
	assert.Equal(t, subB, resp.RejectedGroups[0].SubscriptionId)
	assert.ElementsMatch(t, adsB, resp.RejectedGroups[0].AdIds)
	assert.Equal(t, "Insufficient promote_budget", resp.RejectedGroups[0].Reason)
	assert.Empty(t, resp.UnresolvedAdIds)

	// The rejected group's ads were never touched.
	for _, id := range adsB {
		assert.Equal(t, entity.AdStatusPending, repo.ads[id].Status)
	}
	for _, id := range adsA {
		assert.Equal(t, entity.AdStatusPublished, repo.ads[id].Status)
	}
}

func TestBulkEditAdsUnresolvedIds(t *testing.T) {
	repo := &fakeAdRepo{ads: map[uuid.UUID]*entity.Ad{}, updateFail: map[uuid.UUID]bool{}}
	subA := uuid.New()
	adsA := seedAds(repo, subA, 1)
	ghost := uuid.New()

	stub := &stubSubscriptionService{
		validate: func(_ uuid.UUID, _ string, quantity int) (entity.ValidationResult, error) {
			return entity.ValidationResult{IsValid: true, Quantity: quantity}, nil
		},
		record: func(uuid.UUID, string, int) (bool, error) { return true, nil },
	}

	svc := NewModerationService(stub, &adOnlyUowFactory{adRepo: repo}, nopLogger{})

	resp, err := svc.BulkEditAds(context.Background(), &dto.BulkEditAdsRequest{
		AdIds:  []uuid.UUID{adsA[0], ghost},
		Action: "publish",
	})
	require.NoError(t, err)

	assert.Equal(t, "1 of 2 succeeded", resp.Summary)
	assert.Equal(t, []uuid.UUID{ghost}, resp.UnresolvedAdIds)
}

// A validation transport error rejects only that group; the other group
// still goes through.
func TestBulkEditAdsValidationErrorIsolatedToGroup(t *testing.T) {
	repo := &fakeAdRepo{ads: map[uuid.UUID]*entity.Ad{}, updateFail: map[uuid.UUID]bool{}}
	subA := uuid.New()
	subB := uuid.New()
	adsA := seedAds(repo, subA, 2)
	adsB := seedAds(repo, subB, 2)

	stub := &stubSubscriptionService{
		validate: func(id uuid.UUID, _ string, quantity int) (entity.ValidationResult, error) {
			if id == subA {
				return entity.ValidationResult{}, errors.New("actor load failed")
			}
			return entity.ValidationResult{IsValid: true, Quantity: quantity}, nil
		},
		record: func(uuid.UUID, string, int) (bool, error) { return true, nil },
	}

	svc := NewModerationService(stub, &adOnlyUowFactory{adRepo: repo}, nopLogger{})

	resp, err := svc.BulkEditAds(context.Background(), &dto.BulkEditAdsRequest{
		AdIds:  append(append([]uuid.UUID{}, adsA...), adsB...),
		Action: "publish",
	})
	require.NoError(t, err)

	assert.Equal(t, "2 of 4 succeeded", resp.Summary)
	require.Len(t, resp.RejectedGroups, 1)
	assert.Equal(t, subA, resp.RejectedGroups[0].SubscriptionId)
	assert.Equal(t, "actor load failed", resp.RejectedGroups[0].Reason)
	assert.ElementsMatch(t, adsB, resp.UpdatedAdIds)
}

// Usage recording failures never roll back the applied update; they only
// show up in the counts.
func TestBulkEditAdsRecordFailureKeepsUpdate(t *testing.T) {
	repo := &fakeAdRepo{ads: map[uuid.UUID]*entity.Ad{}, updateFail: map[uuid.UUID]bool{}}
	subA := uuid.New()
	adsA := seedAds(repo, subA, 3)

	stub := &stubSubscriptionService{
		validate: func(_ uuid.UUID, _ string, quantity int) (entity.ValidationResult, error) {
			return entity.ValidationResult{IsValid: true, Quantity: quantity}, nil
		},
		record: func(uuid.UUID, string, int) (bool, error) { return false, errors.New("persist failed") },
	}

	svc := NewModerationService(stub, &adOnlyUowFactory{adRepo: repo}, nopLogger{})

	resp, err := svc.BulkEditAds(context.Background(), &dto.BulkEditAdsRequest{
		AdIds:  adsA,
		Action: "publish",
	})
	require.NoError(t, err)

	assert.Equal(t, "0 of 3 succeeded", resp.Summary)
	assert.Equal(t, 1, resp.RecordFailures)
	assert.ElementsMatch(t, adsA, resp.UpdatedAdIds)
	for _, id := range adsA {
		assert.Equal(t, entity.AdStatusPublished, repo.ads[id].Status)
	}
}
