package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagJSONWireFormat(t *testing.T) {
	tag := Tag{
		UUID:              "abc-123",
		Name:              "intro",
		Color:             "#1890ff",
		TimeIntervalStart: "00:00:02,000",
		TimeIntervalEnd:   "00:00:07,500",
		VideoUUID:         "vid-1",
	}

	data, err := json.Marshal(tag)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Wire keys must match the original gateway schema exactly.
	assert.Equal(t, "abc-123", decoded["id"])
	assert.Equal(t, "00:00:02,000", decoded["timeIntervalstart"])
	assert.Equal(t, "00:00:07,500", decoded["timeIntervalend"])
	assert.Equal(t, "vid-1", decoded["videoId"])
	assert.NotContains(t, decoded, "CreatedAt")
}

func TestTagSecondsDecoding(t *testing.T) {
	tag := Tag{TimeIntervalStart: "00:00:02,000", TimeIntervalEnd: "00:00:07,500"}
	assert.InDelta(t, 2.0, tag.StartSeconds(), 0.0005)
	assert.InDelta(t, 7.5, tag.EndSeconds(), 0.0005)
}

func TestTagNormalize(t *testing.T) {
	t.Run("swaps inverted endpoints", func(t *testing.T) {
		tag := Tag{TimeIntervalStart: "00:00:10,000", TimeIntervalEnd: "00:00:05,000"}
		tag.Normalize()
		assert.Equal(t, "00:00:05,000", tag.TimeIntervalStart)
		assert.Equal(t, "00:00:10,000", tag.TimeIntervalEnd)
	})

	t.Run("keeps ordered endpoints", func(t *testing.T) {
		tag := Tag{TimeIntervalStart: "00:00:05,000", TimeIntervalEnd: "00:00:10,000"}
		tag.Normalize()
		assert.Equal(t, "00:00:05,000", tag.TimeIntervalStart)
	})
}

func TestVideoJSONWireFormat(t *testing.T) {
	video := Video{UUID: "vid-1", Name: "clip.mp4", Path: "/uploads/abc.mp4", SourceType: SourceDirect}

	data, err := json.Marshal(video)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "vid-1", decoded["id"])
	assert.Equal(t, "/uploads/abc.mp4", decoded["path"])
	assert.Equal(t, "direct", decoded["type"])
}

func TestVideoHasLocalMedia(t *testing.T) {
	assert.True(t, (&Video{SourceType: SourceDirect, Path: "/uploads/a.mp4"}).HasLocalMedia())
	assert.False(t, (&Video{SourceType: SourceYouTube, Path: "dQw4w9WgXcQ"}).HasLocalMedia())
	assert.False(t, (&Video{SourceType: SourceDirect}).HasLocalMedia())
}
