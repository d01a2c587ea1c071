package videos

import (
	"context"

	"github.com/screenlab/screener-api/internal/models"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	media      MediaStore
}

// NewService creates a new video service
func NewService(repository Repository, media MediaStore) Service {
	return &ServiceImpl{
		repository: repository,
		media:      media,
	}
}

// CreateVideo creates a new video with validation
func (s *ServiceImpl) CreateVideo(ctx context.Context, video *models.Video) error {
	if video.Name == "" {
		return apperrors.MissingField("name")
	}
	if video.Path == "" {
		return apperrors.MissingField("path")
	}
	if video.SourceType == "" {
		video.SourceType = models.SourceDirect
	}
	return s.repository.CreateVideo(ctx, video)
}

// GetVideoByUUID retrieves a video by its UUID
func (s *ServiceImpl) GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error) {
	return s.repository.GetVideoByUUID(ctx, uuid)
}

// ListVideos retrieves all videos
func (s *ServiceImpl) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.repository.ListVideos(ctx)
}

// UpdateVideo applies a partial patch to an existing video. Empty name/path
// keep the stored values, matching the original gateway's PUT semantics.
func (s *ServiceImpl) UpdateVideo(ctx context.Context, uuid string, name, path string) (*models.Video, error) {
	video, err := s.repository.GetVideoByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if name != "" {
		video.Name = name
	}
	if path != "" {
		video.Path = path
	}

	if err := s.repository.UpdateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo removes the video row, cascades to its tags, and removes the
// backing media file when one exists. The row goes last so a storage failure
// never leaves a video pointing at deleted media.
func (s *ServiceImpl) DeleteVideo(ctx context.Context, uuid string) error {
	video, err := s.repository.GetVideoByUUID(ctx, uuid)
	if err != nil {
		return err
	}

	if video.HasLocalMedia() {
		if err := s.media.Remove(ctx, video.Path); err != nil {
			return err
		}
	}

	if err := s.repository.DeleteTagsByVideoUUID(ctx, uuid); err != nil {
		return err
	}

	return s.repository.DeleteVideo(ctx, uuid)
}
