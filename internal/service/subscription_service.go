// FILE: internal/service/subscription_service.go
// Coordination layer in front of the actor registry. Reads resolve ids from
// the relational mirror, then fan out to the owning actors for authoritative
// state; writes are straight pass-throughs to the one actor for the id.
package service

import (
	"context"
	"math"
	"time"

	"ad-marketplace-be/internal/actor"
	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/pkg/logger"
	"ad-marketplace-be/internal/repository/specification"
	"ad-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	// Lifecycle
	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (uuid.UUID, bool, error)
	CancelSubscription(ctx context.Context, id, userId uuid.UUID) (bool, error)
	AdminCancelSubscription(ctx context.Context, id uuid.UUID) (bool, error)
	ExtendSubscription(ctx context.Context, id uuid.UUID, durationDays int) (bool, error)
	MarkSubscriptionExpired(ctx context.Context, id uuid.UUID) (bool, error)

	// Quota
	ValidateUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (entity.ValidationResult, error)
	RecordUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (bool, error)
	RefillQuota(ctx context.Context, id uuid.UUID, budget string, amount int) (bool, error)
	AdminUpdateUsage(ctx context.Context, id uuid.UUID, req *dto.AdminUsageOverrideRequest) (bool, error)

	// Free ads
	ValidateFreeAdsUsage(ctx context.Context, id uuid.UUID, req *dto.FreeAdsUsageRequest) (entity.FreeAdsValidationResult, error)
	RecordFreeAdsUsage(ctx context.Context, id uuid.UUID, req *dto.FreeAdsUsageRequest) (bool, error)
	ProvisionFreeAdsQuota(ctx context.Context, id uuid.UUID, req *dto.ProvisionFreeAdsRequest) (bool, error)
	GetFreeAdsSummary(ctx context.Context, id uuid.UUID) ([]entity.FreeAdsCategorySummary, error)

	// Reads
	GetSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error)
	GetUserSubscriptions(ctx context.Context, userId uuid.UUID) ([]*dto.SubscriptionResponse, []dto.FetchFailure, error)
	GetSubscriptions(ctx context.Context, filter *dto.SubscriptionFilter) (*dto.PagedSubscriptionsResponse, error)
	GetAllActiveSubscriptions(ctx context.Context) ([]*dto.SubscriptionResponse, []dto.FetchFailure, error)

	// Addons
	CreateAddon(ctx context.Context, req *dto.CreateAddonRequest) (uuid.UUID, bool, error)
	CancelAddon(ctx context.Context, id, userId uuid.UUID) (bool, error)
	AdminCancelAddon(ctx context.Context, id uuid.UUID) (bool, error)
	ExtendAddon(ctx context.Context, id uuid.UUID, durationDays int) (bool, error)
	MarkAddonExpired(ctx context.Context, id uuid.UUID) (bool, error)
	ValidateAddonUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (entity.ValidationResult, error)
	RecordAddonUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (bool, error)
	GetAddon(ctx context.Context, id uuid.UUID) (*dto.AddonResponse, error)
	GetUserAddons(ctx context.Context, userId uuid.UUID) ([]*dto.AddonResponse, []dto.FetchFailure, error)
}

type subscriptionService struct {
	registry   *actor.Registry
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSubscriptionService(
	registry *actor.Registry,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		registry:   registry,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

const defaultPageSize = 20

// --- Lifecycle ---

func (s *subscriptionService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (uuid.UUID, bool, error) {
	id := uuid.New()
	ok, err := s.registry.Subscription(id).Create(ctx, actor.CreateSubscriptionRequest{
		Id:          id,
		ProductCode: req.ProductCode,
		UserId:      req.UserId,
		CompanyId:   req.CompanyId,
	})
	return id, ok, err
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, id, userId uuid.UUID) (bool, error) {
	return s.registry.Subscription(id).Cancel(ctx, userId)
}

func (s *subscriptionService) AdminCancelSubscription(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.registry.Subscription(id).AdminCancel(ctx)
}

func (s *subscriptionService) ExtendSubscription(ctx context.Context, id uuid.UUID, durationDays int) (bool, error) {
	return s.registry.Subscription(id).Extend(ctx, daysToDuration(durationDays))
}

func (s *subscriptionService) MarkSubscriptionExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.registry.Subscription(id).MarkAsExpired(ctx)
}

// --- Quota ---

func (s *subscriptionService) ValidateUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (entity.ValidationResult, error) {
	return s.registry.Subscription(id).ValidateUsage(ctx, entity.ActionType(action), quantity)
}

func (s *subscriptionService) RecordUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (bool, error) {
	return s.registry.Subscription(id).RecordUsage(ctx, entity.ActionType(action), quantity)
}

func (s *subscriptionService) RefillQuota(ctx context.Context, id uuid.UUID, budget string, amount int) (bool, error) {
	return s.registry.Subscription(id).RefillQuota(ctx, entity.BudgetType(budget), amount)
}

func (s *subscriptionService) AdminUpdateUsage(ctx context.Context, id uuid.UUID, req *dto.AdminUsageOverrideRequest) (bool, error) {
	return s.registry.Subscription(id).AdminUpdateUsage(ctx, actor.AdminUsageOverride{
		AdsUsed:              req.AdsUsed,
		PromotionsUsed:       req.PromotionsUsed,
		FeaturesUsed:         req.FeaturesUsed,
		DailyRefreshesUsed:   req.DailyRefreshesUsed,
		SocialMediaPostsUsed: req.SocialMediaPostsUsed,
	})
}

// --- Free ads ---

func (s *subscriptionService) ValidateFreeAdsUsage(ctx context.Context, id uuid.UUID, req *dto.FreeAdsUsageRequest) (entity.FreeAdsValidationResult, error) {
	return s.registry.Subscription(id).ValidateFreeAdsUsage(ctx, req.Quantity, req.Category, req.L1Category, req.L2Category)
}

func (s *subscriptionService) RecordFreeAdsUsage(ctx context.Context, id uuid.UUID, req *dto.FreeAdsUsageRequest) (bool, error) {
	return s.registry.Subscription(id).RecordFreeAdsUsage(ctx, req.Quantity, req.Category, req.L1Category, req.L2Category)
}

func (s *subscriptionService) ProvisionFreeAdsQuota(ctx context.Context, id uuid.UUID, req *dto.ProvisionFreeAdsRequest) (bool, error) {
	return s.registry.Subscription(id).ProvisionFreeAdsQuota(ctx, req.Category, req.L1Category, req.L2Category, req.Allowed)
}

func (s *subscriptionService) GetFreeAdsSummary(ctx context.Context, id uuid.UUID) ([]entity.FreeAdsCategorySummary, error) {
	return s.registry.Subscription(id).GetFreeAdsSummary(ctx)
}

// --- Reads ---

func (s *subscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	sub, err := s.registry.Subscription(id).GetData(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetUserSubscriptions(ctx context.Context, userId uuid.UUID) ([]*dto.SubscriptionResponse, []dto.FetchFailure, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, nil, err
	}
	items, failed := s.fanOut(ctx, subscriptionIds(rows))
	return items, failed, nil
}

// GetSubscriptions serves the paginated admin listing. Skip/take happen in
// the mirror query, so the actor fan-out is bounded by the page size.
func (s *subscriptionService) GetSubscriptions(ctx context.Context, filter *dto.SubscriptionFilter) (*dto.PagedSubscriptionsResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	specs := []specification.Specification{}
	if filter.UserId != nil {
		specs = append(specs, specification.UserOwnedBy{UserID: *filter.UserId})
	}
	if filter.CompanyId != nil {
		specs = append(specs, specification.ByCompany{CompanyID: *filter.CompanyId})
	}
	if filter.Status != "" {
		specs = append(specs, specification.ByStatus{Status: filter.Status})
	}
	if filter.Vertical != "" {
		specs = append(specs, specification.ByVertical{Vertical: filter.Vertical})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.SubscriptionRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	rows, err := uow.SubscriptionRepository().FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	items, failed := s.fanOut(ctx, subscriptionIds(rows))
	return &dto.PagedSubscriptionsResponse{
		Items:      items,
		Failed:     failed,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *subscriptionService) GetAllActiveSubscriptions(ctx context.Context) ([]*dto.SubscriptionResponse, []dto.FetchFailure, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.SubscriptionRepository().FindAll(ctx, specification.ActiveAt{At: time.Now().UTC()})
	if err != nil {
		return nil, nil, err
	}
	items, failed := s.fanOut(ctx, subscriptionIds(rows))
	return items, failed, nil
}

// fanOut resolves each id through its actor. Best effort: a failing actor is
// recorded against its id and the remaining ids are still served.
func (s *subscriptionService) fanOut(ctx context.Context, ids []uuid.UUID) ([]*dto.SubscriptionResponse, []dto.FetchFailure) {
	items := make([]*dto.SubscriptionResponse, 0, len(ids))
	var failed []dto.FetchFailure
	for _, id := range ids {
		sub, err := s.registry.Subscription(id).GetData(ctx)
		if err != nil {
			s.logger.Warn("SUBSCRIPTION_SERVICE", "Fan-out fetch failed", map[string]interface{}{
				"subscription_id": id,
				"error":           err.Error(),
			})
			failed = append(failed, dto.FetchFailure{Id: id, Error: err.Error()})
			continue
		}
		if sub == nil {
			continue
		}
		items = append(items, dto.NewSubscriptionResponse(sub))
	}
	return items, failed
}

// --- Addons ---

func (s *subscriptionService) CreateAddon(ctx context.Context, req *dto.CreateAddonRequest) (uuid.UUID, bool, error) {
	id := uuid.New()
	ok, err := s.registry.Addon(id).Create(ctx, actor.CreateAddonRequest{
		Id:                   id,
		ProductCode:          req.ProductCode,
		UserId:               req.UserId,
		ParentSubscriptionId: req.ParentSubscriptionId,
	})
	return id, ok, err
}

func (s *subscriptionService) CancelAddon(ctx context.Context, id, userId uuid.UUID) (bool, error) {
	return s.registry.Addon(id).Cancel(ctx, userId)
}

func (s *subscriptionService) AdminCancelAddon(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.registry.Addon(id).AdminCancel(ctx)
}

func (s *subscriptionService) ExtendAddon(ctx context.Context, id uuid.UUID, durationDays int) (bool, error) {
	return s.registry.Addon(id).Extend(ctx, daysToDuration(durationDays))
}

func (s *subscriptionService) MarkAddonExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.registry.Addon(id).MarkAsExpired(ctx)
}

func (s *subscriptionService) ValidateAddonUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (entity.ValidationResult, error) {
	return s.registry.Addon(id).ValidateUsage(ctx, entity.ActionType(action), quantity)
}

func (s *subscriptionService) RecordAddonUsage(ctx context.Context, id uuid.UUID, action string, quantity int) (bool, error) {
	return s.registry.Addon(id).RecordUsage(ctx, entity.ActionType(action), quantity)
}

func (s *subscriptionService) GetAddon(ctx context.Context, id uuid.UUID) (*dto.AddonResponse, error) {
	addon, err := s.registry.Addon(id).GetData(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAddonResponse(addon), nil
}

func (s *subscriptionService) GetUserAddons(ctx context.Context, userId uuid.UUID) ([]*dto.AddonResponse, []dto.FetchFailure, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.SubscriptionRepository().FindAllAddons(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, nil, err
	}

	items := make([]*dto.AddonResponse, 0, len(rows))
	var failed []dto.FetchFailure
	for _, row := range rows {
		addon, err := s.registry.Addon(row.Id).GetData(ctx)
		if err != nil {
			s.logger.Warn("SUBSCRIPTION_SERVICE", "Addon fan-out fetch failed", map[string]interface{}{
				"addon_id": row.Id,
				"error":    err.Error(),
			})
			failed = append(failed, dto.FetchFailure{Id: row.Id, Error: err.Error()})
			continue
		}
		if addon == nil {
			continue
		}
		items = append(items, dto.NewAddonResponse(addon))
	}
	return items, failed, nil
}

func subscriptionIds(rows []*entity.Subscription) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Id)
	}
	return ids
}

func daysToDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
