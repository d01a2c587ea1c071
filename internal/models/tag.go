package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenlab/screener-api/pkg/timecode"
)

// Tag is a named, colored annotation bound to a time interval of one video.
// Interval endpoints are stored in the canonical wire form "HH:MM:SS,mmm";
// the JSON keys match the player frontend's wire format so existing clients
// keep working unchanged.
type Tag struct {
	gorm.Model        `json:"-"`
	UUID              string `json:"id" gorm:"uniqueIndex;not null"`
	Name              string `json:"name" gorm:"not null"`
	Color             string `json:"color" gorm:"not null"`
	Description       string `json:"description" gorm:"default:''"`
	TimeIntervalStart string `json:"timeIntervalstart" gorm:"not null"`
	TimeIntervalEnd   string `json:"timeIntervalend" gorm:"not null"`
	VideoUUID         string `json:"videoId" gorm:"index;not null"`
}

// BeforeCreate assigns a UUID when none was provided
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return nil
}

// StartSeconds returns the decoded start offset (NaN when malformed)
func (t *Tag) StartSeconds() float64 {
	return timecode.Parse(t.TimeIntervalStart)
}

// EndSeconds returns the decoded end offset (NaN when malformed)
func (t *Tag) EndSeconds() float64 {
	return timecode.Parse(t.TimeIntervalEnd)
}

// Normalize swaps the interval endpoints when start sorts after end. The
// swap applies on every write path so stored tags always satisfy start < end.
func (t *Tag) Normalize() {
	start, end := t.StartSeconds(), t.EndSeconds()
	if start > end {
		t.TimeIntervalStart, t.TimeIntervalEnd = t.TimeIntervalEnd, t.TimeIntervalStart
	}
}

// TableName returns the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}
