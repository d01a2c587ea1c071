package tags

import (
	"context"

	"github.com/screenlab/screener-api/internal/models"
)

// Repository defines the interface for tag data access
type Repository interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagByUUID(ctx context.Context, uuid string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error)
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, uuid string) error
}

// TagUpdate carries a partial patch for an existing tag. Nil fields keep the
// stored values.
type TagUpdate struct {
	Name              *string
	Color             *string
	Description       *string
	TimeIntervalStart *string
	TimeIntervalEnd   *string
}

// Service defines the interface for tag business logic
type Service interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagByUUID(ctx context.Context, uuid string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error)
	UpdateTag(ctx context.Context, uuid string, patch TagUpdate) (*models.Tag, error)
	DeleteTag(ctx context.Context, uuid string) error
}
