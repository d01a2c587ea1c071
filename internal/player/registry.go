package player

import (
	"sync"

	"github.com/screenlab/screener-api/internal/models"
)

// Registry tracks the live sessions of connected players so tag mutations
// arriving over REST reach every active overlay, not just the connection that
// caused them. Each session filters broadcasts by its own selected video.
//
// A nil *Registry is valid and broadcasts to nobody, which keeps handler
// tests free of wiring they do not exercise.
type Registry struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[*Session]struct{})}
}

// Add registers a session for broadcasts
func (r *Registry) Add(s *Session) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	r.mu.Unlock()
}

// Remove deregisters a session. Safe to call for a session never added.
func (r *Registry) Remove(s *Session) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.sessions, s)
	r.mu.Unlock()
}

// Count returns the number of registered sessions
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// TagCreated projects a newly stored tag onto every session watching its video
func (r *Registry) TagCreated(tag *models.Tag) {
	r.broadcast(func(s *Session) { s.TagCreated(tag) })
}

// TagUpdated rebuilds the tag's region on every session watching its video
func (r *Registry) TagUpdated(tag *models.Tag) {
	r.broadcast(func(s *Session) { s.TagUpdated(tag) })
}

// TagDeleted drops the tag's region from every session watching its video
func (r *Registry) TagDeleted(videoUUID, tagUUID string) {
	r.broadcast(func(s *Session) { s.TagDeleted(videoUUID, tagUUID) })
}

// MergeGenerated folds a finished generation batch into every session
// watching its video
func (r *Registry) MergeGenerated(videoUUID string, tags []models.Tag) {
	r.broadcast(func(s *Session) { s.MergeGenerated(videoUUID, tags) })
}

func (r *Registry) broadcast(fn func(*Session)) {
	if r == nil {
		return
	}
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		fn(s)
	}
}
