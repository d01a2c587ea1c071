// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates the root logger. Level is one of debug/info/warn/error; pretty
// switches from JSON to human-readable console output for local development.
func New(level string, pretty bool) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn", "warning":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	return out.Level(lvl).With().Timestamp().Logger()
}

// WithComponent returns a logger tagged with a component attribute
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithVideo returns a logger tagged with a video id attribute
func WithVideo(logger zerolog.Logger, videoID string) zerolog.Logger {
	return logger.With().Str("video_id", videoID).Logger()
}
