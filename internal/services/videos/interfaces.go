package videos

import (
	"context"

	"github.com/screenlab/screener-api/internal/models"
)

// Repository defines the interface for video data access
type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	UpdateVideo(ctx context.Context, video *models.Video) error
	DeleteVideo(ctx context.Context, uuid string) error
	DeleteTagsByVideoUUID(ctx context.Context, videoUUID string) error
}

// MediaStore is the slice of media storage the video service needs for the
// delete cascade.
type MediaStore interface {
	Remove(ctx context.Context, publicPath string) error
}

// Service defines the interface for video business logic
type Service interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	// UpdateVideo applies a partial patch; empty fields keep prior values.
	UpdateVideo(ctx context.Context, uuid string, name, path string) (*models.Video, error)
	// DeleteVideo removes the video, its tags, and its media file.
	DeleteVideo(ctx context.Context, uuid string) error
}
