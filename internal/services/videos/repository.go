package videos

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

// NewRepository creates a new video repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateVideo creates a new video in the database
func (r *RepositoryImpl) CreateVideo(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("creating video: %w", err)
	}
	return nil
}

// GetVideoByUUID retrieves a video by its UUID
func (r *RepositoryImpl) GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("video", uuid)
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// ListVideos retrieves all videos in insertion order
func (r *RepositoryImpl) ListVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

// UpdateVideo updates an existing video
func (r *RepositoryImpl) UpdateVideo(ctx context.Context, video *models.Video) error {
	result := r.db.WithContext(ctx).Save(video)
	if result.Error != nil {
		return fmt.Errorf("updating video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("video", video.UUID)
	}
	return nil
}

// DeleteVideo deletes a video by its UUID
func (r *RepositoryImpl) DeleteVideo(ctx context.Context, uuid string) error {
	result := r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("deleting video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("video", uuid)
	}
	return nil
}

// DeleteTagsByVideoUUID deletes every tag bound to the given video
func (r *RepositoryImpl) DeleteTagsByVideoUUID(ctx context.Context, videoUUID string) error {
	if err := r.db.WithContext(ctx).Where("video_uuid = ?", videoUUID).Delete(&models.Tag{}).Error; err != nil {
		return fmt.Errorf("deleting tags for video: %w", err)
	}
	return nil
}
