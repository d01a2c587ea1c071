package tags

import (
	"context"

	"github.com/screenlab/screener-api/internal/models"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
	"github.com/screenlab/screener-api/pkg/timecode"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new tag service
func NewService(repository Repository) Service {
	return &ServiceImpl{repository: repository}
}

// CreateTag validates and persists a new tag. Interval endpoints must be
// parseable timecodes; an inverted interval is normalized, never rejected.
func (s *ServiceImpl) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag.Name == "" {
		return apperrors.MissingField("name")
	}
	if tag.Color == "" {
		return apperrors.MissingField("color")
	}
	if tag.VideoUUID == "" {
		return apperrors.MissingField("videoId")
	}
	if tag.TimeIntervalStart == "" {
		return apperrors.MissingField("timeIntervalstart")
	}
	if tag.TimeIntervalEnd == "" {
		return apperrors.MissingField("timeIntervalend")
	}
	if !timecode.Valid(tag.TimeIntervalStart) {
		return apperrors.Validation("timeIntervalstart", "not a valid HH:MM:SS,mmm timecode")
	}
	if !timecode.Valid(tag.TimeIntervalEnd) {
		return apperrors.Validation("timeIntervalend", "not a valid HH:MM:SS,mmm timecode")
	}

	tag.Normalize()
	return s.repository.CreateTag(ctx, tag)
}

// GetTagByUUID retrieves a tag by its UUID
func (s *ServiceImpl) GetTagByUUID(ctx context.Context, uuid string) (*models.Tag, error) {
	return s.repository.GetTagByUUID(ctx, uuid)
}

// ListTags retrieves all tags
func (s *ServiceImpl) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.repository.ListTags(ctx)
}

// GetTagsByVideoUUID retrieves all tags for a video in insertion order
func (s *ServiceImpl) GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error) {
	return s.repository.GetTagsByVideoUUID(ctx, videoUUID)
}

// UpdateTag applies a partial patch to an existing tag. Patched endpoints are
// validated and the interval is re-normalized before writing, so an update
// can never leave an inverted interval behind.
func (s *ServiceImpl) UpdateTag(ctx context.Context, uuid string, patch TagUpdate) (*models.Tag, error) {
	tag, err := s.repository.GetTagByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		tag.Name = *patch.Name
	}
	if patch.Color != nil {
		tag.Color = *patch.Color
	}
	if patch.Description != nil {
		tag.Description = *patch.Description
	}
	if patch.TimeIntervalStart != nil {
		if !timecode.Valid(*patch.TimeIntervalStart) {
			return nil, apperrors.Validation("timeIntervalstart", "not a valid HH:MM:SS,mmm timecode")
		}
		tag.TimeIntervalStart = *patch.TimeIntervalStart
	}
	if patch.TimeIntervalEnd != nil {
		if !timecode.Valid(*patch.TimeIntervalEnd) {
			return nil, apperrors.Validation("timeIntervalend", "not a valid HH:MM:SS,mmm timecode")
		}
		tag.TimeIntervalEnd = *patch.TimeIntervalEnd
	}

	tag.Normalize()

	if err := s.repository.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag deletes a tag by its UUID
func (s *ServiceImpl) DeleteTag(ctx context.Context, uuid string) error {
	return s.repository.DeleteTag(ctx, uuid)
}
