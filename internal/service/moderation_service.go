// FILE: internal/service/moderation_service.go
// Bulk moderation: reconciles ad-level edits with subscription-level quota.
// Admission is all-or-nothing per subscription group; usage recording after
// the update is fire-and-forget and never rolls an applied edit back.
package service

import (
	"context"
	"fmt"

	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/pkg/logger"
	"ad-marketplace-be/internal/repository/specification"
	"ad-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IModerationService interface {
	BulkEditAds(ctx context.Context, req *dto.BulkEditAdsRequest) (*dto.BulkEditAdsResponse, error)
}

type moderationService struct {
	subscriptionService ISubscriptionService
	uowFactory          unitofwork.RepositoryFactory
	logger              logger.ILogger
}

func NewModerationService(
	subscriptionService ISubscriptionService,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IModerationService {
	return &moderationService{
		subscriptionService: subscriptionService,
		uowFactory:          uowFactory,
		logger:              logger,
	}
}

// statusForAction maps the moderation action onto the ad status the bulk
// update applies. Every quota-charged action leaves the ad published;
// rejection and removal do not pass through the quota path.
func statusForAction(entity.ActionType) entity.AdStatus {
	return entity.AdStatusPublished
}

// BulkEditAds runs the two-phase reconciliation:
//
//  1. Resolve the requested ads and group them by owning subscription.
//  2. Admission: validate each group against its subscription quota with the
//     group size as quantity. A group that does not fit is rejected whole;
//     one oversized ad never blocks another subscription's ads.
//  3. Apply the status update for all admitted ads in one bulk write.
//  4. Record usage per subscription for the ads actually updated. A recording
//     failure only adjusts the reported counts.
func (s *moderationService) BulkEditAds(ctx context.Context, req *dto.BulkEditAdsRequest) (*dto.BulkEditAdsResponse, error) {
	action := entity.ActionType(req.Action)
	totalRequested := len(req.AdIds)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ads, err := uow.AdRepository().FindAll(ctx, specification.ByIDs{IDs: req.AdIds})
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(ads))
	groups := make(map[uuid.UUID][]uuid.UUID)
	for _, ad := range ads {
		found[ad.Id] = true
		groups[ad.SubscriptionId] = append(groups[ad.SubscriptionId], ad.Id)
	}

	var unresolved []uuid.UUID
	for _, id := range req.AdIds {
		if !found[id] {
			unresolved = append(unresolved, id)
		}
	}

	var admitted []uuid.UUID
	var rejected []dto.RejectedGroup
	admittedBySub := make(map[uuid.UUID][]uuid.UUID)

	for subId, adIds := range groups {
		result, err := s.subscriptionService.ValidateUsage(ctx, subId, req.Action, len(adIds))
		if err != nil {
			s.logger.Warn("MODERATION", "Group validation errored, rejecting group", map[string]interface{}{
				"subscription_id": subId,
				"ads":             len(adIds),
				"error":           err.Error(),
			})
			rejected = append(rejected, dto.RejectedGroup{
				SubscriptionId: subId,
				AdIds:          adIds,
				Reason:         err.Error(),
			})
			continue
		}
		if !result.IsValid {
			rejected = append(rejected, dto.RejectedGroup{
				SubscriptionId: subId,
				AdIds:          adIds,
				Reason:         result.Reason,
			})
			continue
		}
		admitted = append(admitted, adIds...)
		admittedBySub[subId] = adIds
	}

	var updated []uuid.UUID
	if len(admitted) > 0 {
		updated, err = uow.AdRepository().BulkUpdateStatus(ctx, admitted, statusForAction(action))
		if err != nil {
			return nil, err
		}
	}

	updatedSet := make(map[uuid.UUID]bool, len(updated))
	for _, id := range updated {
		updatedSet[id] = true
	}

	// Fire-and-forget usage recording for the ads that were actually updated.
	succeeded := 0
	recordFailures := 0
	for subId, adIds := range admittedBySub {
		count := 0
		for _, id := range adIds {
			if updatedSet[id] {
				count++
			}
		}
		if count == 0 {
			continue
		}
		ok, err := s.subscriptionService.RecordUsage(ctx, subId, req.Action, count)
		if err != nil || !ok {
			recordFailures++
			s.logger.Warn("MODERATION", "Usage recording failed after bulk update", map[string]interface{}{
				"subscription_id": subId,
				"ads":             count,
			})
			continue
		}
		succeeded += count
	}

	return &dto.BulkEditAdsResponse{
		Summary:         fmt.Sprintf("%d of %d succeeded", succeeded, totalRequested),
		TotalRequested:  totalRequested,
		TotalSucceeded:  succeeded,
		UpdatedAdIds:    updated,
		RejectedGroups:  rejected,
		RecordFailures:  recordFailures,
		UnresolvedAdIds: unresolved,
	}, nil
}
