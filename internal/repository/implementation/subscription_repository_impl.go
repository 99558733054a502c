package implementation

import (
	"context"
	"errors"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/mapper"
	"ad-marketplace-be/internal/model"
	"ad-marketplace-be/internal/repository/contract"
	"ad-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Subscription Implementation

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Subscription{}, id).Error
}

func (r *SubscriptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var m model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var models []*model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Subscription, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SubscriptionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Subscription{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// Addon Implementation

func (r *SubscriptionRepositoryImpl) CreateAddon(ctx context.Context, addon *entity.Addon) error {
	m := r.mapper.AddonToModel(addon)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*addon = *r.mapper.AddonToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateAddon(ctx context.Context, addon *entity.Addon) error {
	m := r.mapper.AddonToModel(addon)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*addon = *r.mapper.AddonToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOneAddon(ctx context.Context, specs ...specification.Specification) (*entity.Addon, error) {
	var m model.Addon
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AddonToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAllAddons(ctx context.Context, specs ...specification.Specification) ([]*entity.Addon, error) {
	var models []*model.Addon
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Addon, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AddonToEntity(m)
	}
	return entities, nil
}

// Admin stats

func (r *SubscriptionRepositoryImpl) CountActiveSubscriptions(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("status = ?", "active").
		Count(&count).Error
	return int(count), err
}
