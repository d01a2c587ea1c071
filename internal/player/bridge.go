package player

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/screenlab/screener-api/internal/models"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// State is the bridge lifecycle state for one video selection
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateDestroyed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// SeekEpsilon is the position delta below which a forwarded seek is dropped.
// Re-applying an already-synchronized position must not bounce back to the
// originating clock.
const SeekEpsilon = 0.05

// Bridge keeps the primary media clock and the waveform clock showing the
// same position and play-state. Every command checks the opposite side's
// actual state before forwarding, so repeated events cannot amplify into a
// play/play/play loop. One bridge serves exactly one video selection; a new
// selection requires Destroy first.
type Bridge struct {
	videoUUID string
	primary   Clock
	waveform  Clock
	overlay   *Overlay
	logger    zerolog.Logger

	// All methods run under the session's lock; the bridge itself holds no
	// mutex so state transitions and clock commands stay one atomic step.
	state State
}

// NewBridge creates an idle bridge for one video
func NewBridge(videoUUID string, primary, waveform Clock, logger zerolog.Logger) *Bridge {
	return &Bridge{
		videoUUID: videoUUID,
		primary:   primary,
		waveform:  waveform,
		overlay:   NewOverlay(),
		logger:    logger,
		state:     StateIdle,
	}
}

// VideoUUID returns the video this bridge serves
func (b *Bridge) VideoUUID() string { return b.videoUUID }

// State returns the current lifecycle state
func (b *Bridge) State() State { return b.state }

// Overlay returns the bridge's region overlay
func (b *Bridge) Overlay() *Overlay { return b.overlay }

// BeginLoad moves the bridge from Idle to Loading
func (b *Bridge) BeginLoad() error {
	if b.state != StateIdle {
		return apperrors.Sync("bridge load started in state " + b.state.String())
	}
	b.state = StateLoading
	return nil
}

// CompleteLoad moves the bridge to Ready once the waveform asset is decoded.
// The overlay is seeded from the stored tags and the waveform clock aligns to
// the primary clock's current position, not to zero. A decode result landing
// after Destroy is a stale result and reports a sync error.
func (b *Bridge) CompleteLoad(tags []models.Tag) error {
	if b.state != StateLoading {
		return apperrors.Sync("waveform decoded in state " + b.state.String())
	}

	b.overlay.Seed(tags)
	b.waveform.Seek(b.primary.Position())
	b.state = StateReady

	b.logger.Debug().
		Str("video_id", b.videoUUID).
		Int("regions", b.overlay.Count()).
		Msg("Bridge ready")
	return nil
}

func (b *Bridge) interactive() bool {
	switch b.state {
	case StateReady, StatePlaying, StatePaused:
		return true
	}
	return false
}

// PrimaryPlay handles a play event from the primary clock. The waveform is
// started only if it is not already playing.
func (b *Bridge) PrimaryPlay() error {
	if !b.interactive() {
		return apperrors.Sync("play event in state " + b.state.String())
	}
	if !b.waveform.IsPlaying() {
		b.waveform.Play()
	}
	b.primary.Play()
	b.state = StatePlaying
	return nil
}

// PrimaryPause handles a pause event from the primary clock
func (b *Bridge) PrimaryPause() error {
	if !b.interactive() {
		return apperrors.Sync("pause event in state " + b.state.String())
	}
	if b.waveform.IsPlaying() {
		b.waveform.Pause()
	}
	b.primary.Pause()
	b.state = StatePaused
	return nil
}

// WaveformPlay handles a play interaction originating on the waveform
func (b *Bridge) WaveformPlay() error {
	if !b.interactive() {
		return apperrors.Sync("play event in state " + b.state.String())
	}
	if !b.primary.IsPlaying() {
		b.primary.Play()
	}
	b.waveform.Play()
	b.state = StatePlaying
	return nil
}

// WaveformPause handles a pause interaction originating on the waveform
func (b *Bridge) WaveformPause() error {
	if !b.interactive() {
		return apperrors.Sync("pause event in state " + b.state.String())
	}
	if b.primary.IsPlaying() {
		b.primary.Pause()
	}
	b.waveform.Pause()
	b.state = StatePaused
	return nil
}

// PrimarySeek moves the primary clock and forwards the position to the
// waveform as fractional progress. The forward is dropped when the waveform
// already sits within SeekEpsilon of the target.
func (b *Bridge) PrimarySeek(seconds float64) error {
	if !b.interactive() {
		return apperrors.Sync("seek event in state " + b.state.String())
	}

	b.primary.Seek(seconds)

	duration := b.primary.Duration()
	if duration <= 0 {
		return nil
	}
	progress := b.primary.Position() / duration
	target := progress * b.waveform.Duration()
	if math.Abs(b.waveform.Position()-target) > SeekEpsilon {
		b.waveform.Seek(target)
	}
	return nil
}

// WaveformSeek applies a waveform interaction's absolute time back to the
// primary clock, with the same epsilon guard in the opposite direction.
func (b *Bridge) WaveformSeek(seconds float64) error {
	if !b.interactive() {
		return apperrors.Sync("seek event in state " + b.state.String())
	}

	b.waveform.Seek(seconds)

	if math.Abs(b.primary.Position()-b.waveform.Position()) > SeekEpsilon {
		b.primary.Seek(b.waveform.Position())
	}
	return nil
}

// TagCreated projects a newly stored tag onto the overlay
func (b *Bridge) TagCreated(tag *models.Tag) {
	if !b.interactive() {
		return
	}
	b.overlay.Upsert(tag)
}

// TagUpdated rebuilds the tag's region from its current values
func (b *Bridge) TagUpdated(tag *models.Tag) {
	if !b.interactive() {
		return
	}
	b.overlay.Upsert(tag)
}

// TagDeleted drops the tag's region
func (b *Bridge) TagDeleted(tagUUID string) {
	if !b.interactive() {
		return
	}
	b.overlay.Remove(tagUUID)
}

// MergeGenerated folds a finished generation batch into the overlay. The
// batch is ignored when it belongs to a different video than this bridge
// serves, which is how results for a deselected video are dropped.
func (b *Bridge) MergeGenerated(videoUUID string, tags []models.Tag) {
	if videoUUID != b.videoUUID {
		b.logger.Debug().
			Str("video_id", videoUUID).
			Str("selected", b.videoUUID).
			Msg("Dropping stale generation batch")
		return
	}
	if !b.interactive() {
		return
	}
	b.overlay.Seed(tags)
}

// Destroy releases both clocks and the overlay. Safe to call more than once;
// every exit path of a session must end here before a new bridge is built.
func (b *Bridge) Destroy() {
	if b.state == StateDestroyed {
		return
	}
	if b.waveform.IsPlaying() {
		b.waveform.Pause()
	}
	if b.primary.IsPlaying() {
		b.primary.Pause()
	}
	b.overlay.Clear()
	b.state = StateDestroyed

	b.logger.Debug().Str("video_id", b.videoUUID).Msg("Bridge destroyed")
}
