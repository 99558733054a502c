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

type AdRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AdMapper
}

func NewAdRepository(db *gorm.DB) contract.AdRepository {
	return &AdRepositoryImpl{
		db:     db,
		mapper: mapper.NewAdMapper(),
	}
}

func (r *AdRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AdRepositoryImpl) Create(ctx context.Context, ad *entity.Ad) error {
	m := r.mapper.ToModel(ad)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ad = *r.mapper.ToEntity(m)
	return nil
}

func (r *AdRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ad, error) {
	var m model.Ad
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AdRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ad, error) {
	var models []*model.Ad
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Ad, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *AdRepositoryImpl) BulkUpdateStatus(ctx context.Context, adIds []uuid.UUID, status entity.AdStatus) ([]uuid.UUID, error) {
	if len(adIds) == 0 {
		return nil, nil
	}

	res := r.db.WithContext(ctx).Model(&model.Ad{}).
		Where("id IN ?", adIds).
		Update("status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}

	// Re-read to report which ids actually carry the new status.
	var models []*model.Ad
	if err := r.db.WithContext(ctx).
		Where("id IN ?", adIds).
		Where("status = ?", string(status)).
		Find(&models).Error; err != nil {
		return nil, err
	}

	updated := make([]uuid.UUID, len(models))
	for i, m := range models {
		updated[i] = m.Id
	}
	return updated, nil
}
