package types

import (
	"github.com/rs/zerolog"

	"github.com/screenlab/screener-api/internal/database"
	"github.com/screenlab/screener-api/internal/player"
	"github.com/screenlab/screener-api/internal/services/generation"
	"github.com/screenlab/screener-api/internal/services/media"
	"github.com/screenlab/screener-api/internal/services/tags"
	"github.com/screenlab/screener-api/internal/services/videos"
	"github.com/screenlab/screener-api/pkg/ffmpeg"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                 *database.DB
	Logger             zerolog.Logger
	VideoService       videos.Service
	TagService         tags.Service
	GenerationService  generation.Service
	MediaStore         *media.LocalStore
	Waveforms          *ffmpeg.FFmpeg
	WaveformResolution int

	// Sessions broadcasts tag mutations to connected players so REST writes
	// reach live overlays. A nil registry broadcasts to nobody.
	Sessions *player.Registry
}
