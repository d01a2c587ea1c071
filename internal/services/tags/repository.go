package tags

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/screenlab/screener-api/internal/models"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new tag repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateTag creates a new tag in the database
func (r *RepositoryImpl) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("creating tag: %w", err)
	}
	return nil
}

// GetTagByUUID retrieves a tag by its UUID
func (r *RepositoryImpl) GetTagByUUID(ctx context.Context, uuid string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag", uuid)
		}
		return nil, fmt.Errorf("getting tag: %w", err)
	}
	return &tag, nil
}

// ListTags retrieves all tags in insertion order
func (r *RepositoryImpl) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// GetTagsByVideoUUID retrieves all tags for a video in insertion order
func (r *RepositoryImpl) GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Where("video_uuid = ?", videoUUID).
		Order("id ASC").
		Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("listing tags for video: %w", err)
	}
	return tags, nil
}

// UpdateTag updates an existing tag
func (r *RepositoryImpl) UpdateTag(ctx context.Context, tag *models.Tag) error {
	result := r.db.WithContext(ctx).Save(tag)
	if result.Error != nil {
		return fmt.Errorf("updating tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("tag", tag.UUID)
	}
	return nil
}

// DeleteTag deletes a tag by its UUID
func (r *RepositoryImpl) DeleteTag(ctx context.Context, uuid string) error {
	result := r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&models.Tag{})
	if result.Error != nil {
		return fmt.Errorf("deleting tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("tag", uuid)
	}
	return nil
}
