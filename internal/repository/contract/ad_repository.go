package contract

import (
	"context"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AdRepository interface {
	Create(ctx context.Context, ad *entity.Ad) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ad, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ad, error)

	// BulkUpdateStatus applies one status to many ads and returns the ids that
	// were actually updated.
	BulkUpdateStatus(ctx context.Context, adIds []uuid.UUID, status entity.AdStatus) ([]uuid.UUID, error)
}
