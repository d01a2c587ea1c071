package player

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/screenlab/screener-api/internal/models"
)

// RegionAlpha is the display opacity applied to a tag's color on the overlay
const RegionAlpha = 0.3

// Region is the waveform-layer counterpart of one stored tag. Regions are
// never persisted; the overlay rebuilds them from the tag store.
type Region struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Color string  `json:"color"`
	TagID string  `json:"tagId"`
	Label string  `json:"label"`
}

// RegionID returns the overlay key for a tag
func RegionID(tagUUID string) string {
	return "region-" + tagUUID
}

// HexToRGBA renders a #rrggbb color with the given alpha. Unparseable input
// falls back to a neutral gray so a bad stored color never breaks rendering.
func HexToRGBA(hex string, alpha float64) string {
	r, g, b := 128, 128, 128
	if len(hex) == 7 && hex[0] == '#' {
		if rv, err := strconv.ParseUint(hex[1:3], 16, 8); err == nil {
			if gv, err := strconv.ParseUint(hex[3:5], 16, 8); err == nil {
				if bv, err := strconv.ParseUint(hex[5:7], 16, 8); err == nil {
					r, g, b = int(rv), int(gv), int(bv)
				}
			}
		}
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, alpha)
}

// Overlay holds the live region set for one playback session. Regions keep
// the order they were added in; an upsert re-enters at the tail, the same way
// a remove-then-add rebuild behaves on the renderer.
type Overlay struct {
	mu      sync.Mutex
	regions []Region
}

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{}
}

func regionFromTag(tag *models.Tag) (Region, bool) {
	start, end := tag.StartSeconds(), tag.EndSeconds()
	if math.IsNaN(start) || math.IsNaN(end) {
		return Region{}, false
	}
	return Region{
		ID:    RegionID(tag.UUID),
		Start: start,
		End:   end,
		Color: HexToRGBA(tag.Color, RegionAlpha),
		TagID: tag.UUID,
		Label: tag.Name,
	}, true
}

// Seed replaces the whole region set with one region per given tag, in the
// given order. Tags with unparseable timecodes are skipped.
func (o *Overlay) Seed(tags []models.Tag) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.regions = o.regions[:0]
	for i := range tags {
		if region, ok := regionFromTag(&tags[i]); ok {
			o.regions = append(o.regions, region)
		}
	}
}

// Upsert removes any existing region for the tag and adds a fresh one built
// from the tag's current values. Rebuilding instead of patching keeps the
// region from ever mixing old and new field values.
func (o *Overlay) Upsert(tag *models.Tag) {
	region, ok := regionFromTag(tag)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.removeLocked(tag.UUID)
	if ok {
		o.regions = append(o.regions, region)
	}
}

// Remove drops the region for a tag. Removing an absent tag is a no-op; any
// in-flight edit on that region is discarded with it.
func (o *Overlay) Remove(tagUUID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.removeLocked(tagUUID)
}

func (o *Overlay) removeLocked(tagUUID string) {
	id := RegionID(tagUUID)
	for i, region := range o.regions {
		if region.ID == id {
			o.regions = append(o.regions[:i], o.regions[i+1:]...)
			return
		}
	}
}

// Clear drops every region
func (o *Overlay) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.regions = o.regions[:0]
}

// Regions returns a snapshot of the region set in render order
func (o *Overlay) Regions() []Region {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Region, len(o.regions))
	copy(out, o.regions)
	return out
}

// Count returns the number of live regions
func (o *Overlay) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.regions)
}
