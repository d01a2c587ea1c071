// Package generation orchestrates the external analyzer that proposes tags
// for a video, and persists the accepted candidates.
package generation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/screenlab/screener-api/internal/logging"
	"github.com/screenlab/screener-api/internal/models"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
	"github.com/screenlab/screener-api/pkg/timecode"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	runner AnalyzerRunner
	videos VideoResolver
	media  MediaResolver
	tags   TagWriter
	outDir string
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new generation service. Analyzer output files land in
// outDir, one per video.
func NewService(runner AnalyzerRunner, videos VideoResolver, media MediaResolver, tags TagWriter, outDir string, logger zerolog.Logger) (*ServiceImpl, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create generation output directory: %w", err)
	}
	return &ServiceImpl{
		runner: runner,
		videos: videos,
		media:  media,
		tags:   tags,
		outDir: outDir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// videoLock returns the mutex serializing generation runs for one video
func (s *ServiceImpl) videoLock(videoUUID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[videoUUID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[videoUUID] = lock
	}
	return lock
}

// GenerateTags runs the analyzer for a video and persists one tag per
// detected name. Candidates commit sequentially, so a failure mid-batch
// leaves the already created prefix in place.
func (s *ServiceImpl) GenerateTags(ctx context.Context, videoUUID string) (*Result, error) {
	lock := s.videoLock(videoUUID)
	lock.Lock()
	defer lock.Unlock()

	logger := logging.WithVideo(s.logger, videoUUID)

	video, err := s.videos.GetVideoByUUID(ctx, videoUUID)
	if err != nil {
		return nil, err
	}
	if !video.HasLocalMedia() {
		return nil, apperrors.Validation("videoId", "video has no local media to analyze")
	}

	videoPath, err := s.media.LocalPath(video.Path)
	if err != nil {
		return nil, err
	}

	outFile := filepath.Join(s.outDir, videoUUID+".json")
	if err := s.runner.Analyze(ctx, videoPath, outFile); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(outFile)
	if err != nil {
		return nil, apperrors.Generation("analyzer produced no output file", "", err)
	}

	candidates, err := ParseCandidates(raw)
	if err != nil {
		return nil, apperrors.Generation("analyzer output malformed", string(raw), err)
	}

	created := make([]models.Tag, 0, len(candidates))
	for _, candidate := range candidates {
		tag := models.Tag{
			Name:              candidate.Name,
			Color:             randomColor(),
			Description:       "",
			TimeIntervalStart: timecode.Format(candidate.Start),
			TimeIntervalEnd:   timecode.Format(candidate.End),
			VideoUUID:         videoUUID,
		}
		if err := s.tags.CreateTag(ctx, &tag); err != nil {
			logger.Error().
				Err(err).
				Int("committed", len(created)).
				Int("total", len(candidates)).
				Msg("Generation batch stopped mid-way")
			return nil, err
		}
		created = append(created, tag)
	}

	logger.Info().
		Int("tags_created", len(created)).
		Msg("Tag generation finished")

	return &Result{Raw: raw, Created: created}, nil
}

// randomColor returns a random #rrggbb color for a generated tag
func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
