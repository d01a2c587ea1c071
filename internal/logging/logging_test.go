package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevelParsing(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			logger := New(tt.level, false)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(zerolog.New(&buf), "generation")

	logger.Info().Msg("analyzer started")

	assert.Contains(t, buf.String(), `"component":"generation"`)
}

func TestWithVideo(t *testing.T) {
	var buf bytes.Buffer
	logger := WithVideo(zerolog.New(&buf), "vid-1")

	logger.Info().Msg("run finished")

	assert.Contains(t, buf.String(), `"video_id":"vid-1"`)
}
