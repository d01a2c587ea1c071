package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SourceType describes where a video's media comes from
type SourceType string

const (
	SourceDirect  SourceType = "direct"  // uploaded file or direct URL
	SourceYouTube SourceType = "youtube" // YouTube video id, no local media
)

// Video represents a video in the library. Path is the public locator of the
// media ("/uploads/<file>" for uploaded videos, a video id for YouTube).
type Video struct {
	gorm.Model `json:"-"`
	UUID       string     `json:"id" gorm:"uniqueIndex;not null"`
	Name       string     `json:"name" gorm:"not null"`
	Path       string     `json:"path" gorm:"not null"`
	SourceType SourceType `json:"type" gorm:"default:direct"`
}

// BeforeCreate assigns a UUID when none was provided
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.UUID == "" {
		v.UUID = uuid.New().String()
	}
	return nil
}

// HasLocalMedia reports whether deleting this video must also remove a file
// from media storage.
func (v *Video) HasLocalMedia() bool {
	return v.SourceType == SourceDirect && v.Path != ""
}

// TableName returns the table name for the Video model
func (Video) TableName() string {
	return "videos"
}
