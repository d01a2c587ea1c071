package generation

import (
	"context"
	"encoding/json"

	"github.com/screenlab/screener-api/internal/models"
)

// AnalyzerRunner invokes the external analyzer over a local video file and
// writes its findings to outFile.
type AnalyzerRunner interface {
	Analyze(ctx context.Context, videoPath, outFile string) error
}

// VideoResolver is the slice of the video service the generator needs
type VideoResolver interface {
	GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error)
}

// MediaResolver maps public media paths to local filesystem paths
type MediaResolver interface {
	LocalPath(publicPath string) (string, error)
}

// TagWriter is the slice of the tag service the generator needs
type TagWriter interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error)
}

// Result carries the outcome of one generation run. Raw is the analyzer's
// output verbatim, so responses preserve the analyzer's own key order.
type Result struct {
	Raw     json.RawMessage
	Created []models.Tag
}

// Service defines the interface for tag generation
type Service interface {
	// GenerateTags runs the analyzer for a video and persists one tag per
	// detected name. Runs for the same video are serialized.
	GenerateTags(ctx context.Context, videoUUID string) (*Result, error)
}
