package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/screenlab/screener-api/internal/models"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
	"github.com/screenlab/screener-api/pkg/ffmpeg"
)

// VideoResolver is the slice of the video service a session needs
type VideoResolver interface {
	GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error)
}

// TagLister is the slice of the tag service a session needs
type TagLister interface {
	GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error)
}

// MediaResolver maps public media paths to local filesystem paths
type MediaResolver interface {
	LocalPath(publicPath string) (string, error)
}

// WaveformLoader decodes a local media file into waveform peaks
type WaveformLoader interface {
	GenerateWaveform(ctx context.Context, inputFile string, resolution int) (*ffmpeg.WaveformData, error)
}

// Event is one message pushed to the session's client
type Event struct {
	Type     string               `json:"type"` // "state", "waveform" or "error"
	State    *Snapshot            `json:"state,omitempty"`
	Waveform *ffmpeg.WaveformData `json:"waveform,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// Snapshot is the client-visible view of the session
type Snapshot struct {
	VideoID  string   `json:"videoId"`
	State    string   `json:"state"`
	Position float64  `json:"position"`
	Duration float64  `json:"duration"`
	Playing  bool     `json:"playing"`
	Regions  []Region `json:"regions"`
}

// Session owns the bridge for one connected client. Selecting a video tears
// down the prior bridge, builds a new one, and decodes the waveform
// asynchronously; a decode finishing after the next selection is dropped by
// comparing load generations.
type Session struct {
	videos     VideoResolver
	tags       TagLister
	media      MediaResolver
	waveforms  WaveformLoader
	resolution int
	logger     zerolog.Logger
	emit       func(Event)

	mu       sync.Mutex
	bridge   *Bridge
	primary  *MemoryClock
	waveform *MemoryClock
	loadGen  uint64

	// Tag mutations arriving while the bridge is still Loading; the fetched
	// tag list may predate them, so they replay right after the seed.
	pending []func(*Bridge)
}

// NewSession creates a session with no video selected. Events for the client
// are delivered through emit, which must be safe to call from any goroutine.
func NewSession(videos VideoResolver, tags TagLister, media MediaResolver, waveforms WaveformLoader, resolution int, logger zerolog.Logger, emit func(Event)) *Session {
	return &Session{
		videos:     videos,
		tags:       tags,
		media:      media,
		waveforms:  waveforms,
		resolution: resolution,
		logger:     logger,
		emit:       emit,
	}
}

// Select switches the session to a video. The prior bridge, if any, is
// destroyed before the new one starts loading.
func (s *Session) Select(ctx context.Context, videoUUID string) error {
	video, err := s.videos.GetVideoByUUID(ctx, videoUUID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.bridge != nil {
		s.bridge.Destroy()
	}
	s.primary = NewMemoryClock(0)
	s.waveform = NewMemoryClock(0)
	s.pending = nil
	s.bridge = NewBridge(video.UUID, s.primary, s.waveform, s.logger)
	if err := s.bridge.BeginLoad(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	go s.load(ctx, gen, video)
	return nil
}

// load decodes the waveform and finishes the bridge's Loading state. Results
// arriving after another Select are stale and dropped.
func (s *Session) load(ctx context.Context, gen uint64, video *models.Video) {
	var waveform *ffmpeg.WaveformData
	if video.HasLocalMedia() {
		localPath, err := s.media.LocalPath(video.Path)
		if err == nil {
			waveform, err = s.waveforms.GenerateWaveform(ctx, localPath, s.resolution)
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("video_id", video.UUID).Msg("Waveform decode failed")
			s.emit(Event{Type: "error", Error: fmt.Sprintf("waveform decode failed: %v", err)})
		}
	}

	tags, err := s.tags.GetTagsByVideoUUID(ctx, video.UUID)
	if err != nil {
		s.logger.Error().Err(err).Str("video_id", video.UUID).Msg("Loading tags failed")
		s.emit(Event{Type: "error", Error: err.Error()})
		return
	}

	s.mu.Lock()
	if gen != s.loadGen {
		s.mu.Unlock()
		s.logger.Debug().Str("video_id", video.UUID).Msg("Dropping stale waveform load")
		return
	}
	if waveform != nil {
		s.primary.SetDuration(waveform.Duration)
		s.waveform.SetDuration(waveform.Duration)
	}
	err = s.bridge.CompleteLoad(tags)
	if err == nil {
		for _, fn := range s.pending {
			fn(s.bridge)
		}
	}
	s.pending = nil
	s.mu.Unlock()

	if err != nil {
		s.emit(Event{Type: "error", Error: err.Error()})
		return
	}
	if waveform != nil {
		s.emit(Event{Type: "waveform", Waveform: waveform})
	}
	s.emitState()
}

// Apply dispatches one playback command to the bridge
func (s *Session) Apply(cmd Command) error {
	s.mu.Lock()
	if s.bridge == nil {
		s.mu.Unlock()
		return apperrors.Sync("no video selected")
	}

	var err error
	switch c := cmd.(type) {
	case PlayCommand:
		if c.Origin == OriginWaveform {
			err = s.bridge.WaveformPlay()
		} else {
			err = s.bridge.PrimaryPlay()
		}
	case PauseCommand:
		if c.Origin == OriginWaveform {
			err = s.bridge.WaveformPause()
		} else {
			err = s.bridge.PrimaryPause()
		}
	case SeekCommand:
		if c.Origin == OriginWaveform {
			err = s.bridge.WaveformSeek(c.Seconds)
		} else {
			err = s.bridge.PrimarySeek(c.Seconds)
		}
	default:
		err = apperrors.Sync(fmt.Sprintf("unknown command %T", cmd))
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.emitState()
	return nil
}

// TagCreated projects a new tag onto the active overlay
func (s *Session) TagCreated(tag *models.Tag) {
	s.withBridgeForVideo(tag.VideoUUID, func(b *Bridge) { b.TagCreated(tag) })
}

// TagUpdated rebuilds the tag's region on the active overlay
func (s *Session) TagUpdated(tag *models.Tag) {
	s.withBridgeForVideo(tag.VideoUUID, func(b *Bridge) { b.TagUpdated(tag) })
}

// TagDeleted drops the tag's region from the active overlay
func (s *Session) TagDeleted(videoUUID, tagUUID string) {
	s.withBridgeForVideo(videoUUID, func(b *Bridge) { b.TagDeleted(tagUUID) })
}

// MergeGenerated folds a finished generation batch into the overlay. Batches
// for a video that is no longer selected are ignored.
func (s *Session) MergeGenerated(videoUUID string, tags []models.Tag) {
	s.mu.Lock()
	if s.bridge == nil {
		s.mu.Unlock()
		return
	}
	s.bridge.MergeGenerated(videoUUID, tags)
	s.mu.Unlock()
	s.emitState()
}

func (s *Session) withBridgeForVideo(videoUUID string, fn func(*Bridge)) {
	s.mu.Lock()
	if s.bridge == nil || s.bridge.VideoUUID() != videoUUID {
		s.mu.Unlock()
		return
	}
	if s.bridge.State() == StateLoading {
		s.pending = append(s.pending, fn)
		s.mu.Unlock()
		return
	}
	fn(s.bridge)
	s.mu.Unlock()
	s.emitState()
}

// Snapshot returns the client-visible state of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	if s.bridge == nil {
		return Snapshot{State: StateIdle.String(), Regions: []Region{}}
	}
	return Snapshot{
		VideoID:  s.bridge.VideoUUID(),
		State:    s.bridge.State().String(),
		Position: s.primary.Position(),
		Duration: s.primary.Duration(),
		Playing:  s.primary.IsPlaying(),
		Regions:  s.bridge.Overlay().Regions(),
	}
}

func (s *Session) emitState() {
	if s.emit == nil {
		return
	}
	snapshot := s.Snapshot()
	s.emit(Event{Type: "state", State: &snapshot})
}

// Close tears the session down. Any in-flight load becomes stale.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadGen++
	s.pending = nil
	if s.bridge != nil {
		s.bridge.Destroy()
		s.bridge = nil
	}
}
