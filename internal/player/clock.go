// Package player implements the timeline engine behind a playback session:
// two independently driven clocks, the region overlay projected from stored
// tags, and the bridge keeping all of it in agreement.
package player

import (
	"sync"
	"time"
)

// Clock is one side's playback transport: the primary media element or the
// waveform renderer. Implementations must be safe for concurrent use.
type Clock interface {
	Play()
	Pause()
	IsPlaying() bool
	Seek(seconds float64)
	Position() float64
	Duration() float64
}

// MemoryClock is a wall-clock driven Clock. While playing, Position advances
// with real time and clamps at the duration.
type MemoryClock struct {
	mu        sync.Mutex
	duration  float64
	playing   bool
	position  float64
	updatedAt time.Time
	now       func() time.Time
}

// NewMemoryClock creates a stopped clock at position zero
func NewMemoryClock(duration float64) *MemoryClock {
	c := &MemoryClock{duration: duration, now: time.Now}
	c.updatedAt = c.now()
	return c
}

// SetDuration updates the clock's duration, clamping the position if needed
func (c *MemoryClock) SetDuration(duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	c.duration = duration
	if c.position > duration {
		c.position = duration
	}
}

// settle folds elapsed play time into position. Callers hold c.mu.
func (c *MemoryClock) settle() {
	now := c.now()
	if c.playing {
		c.position += now.Sub(c.updatedAt).Seconds()
		if c.duration > 0 && c.position >= c.duration {
			c.position = c.duration
			c.playing = false
		}
	}
	c.updatedAt = now
}

// Play starts the clock
func (c *MemoryClock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	c.playing = true
}

// Pause stops the clock
func (c *MemoryClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	c.playing = false
}

// IsPlaying reports whether the clock is advancing
func (c *MemoryClock) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	return c.playing
}

// Seek moves the clock to an absolute position, clamped to [0, duration]
func (c *MemoryClock) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	if seconds < 0 {
		seconds = 0
	}
	if c.duration > 0 && seconds > c.duration {
		seconds = c.duration
	}
	c.position = seconds
}

// Position returns the current playback offset in seconds
func (c *MemoryClock) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	return c.position
}

// Duration returns the clock's total duration in seconds
func (c *MemoryClock) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}
