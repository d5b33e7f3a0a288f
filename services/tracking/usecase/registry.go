package usecase

import (
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/caretrip/caretrip/internal/pkg/models"
)

// session pairs one ride's mutable tracking state with its own lock and its
// inactivity timer handle. Operations on different rides proceed
// independently; operations on the same ride serialize on mu.
type session struct {
	mu    sync.Mutex
	data  *models.TrackingSession
	timer *clock.Timer
}

// snapshot returns a deep copy of the session state, safe to hand out.
func (s *session) snapshot() *models.TrackingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// sessionRegistry owns the collection of live sessions keyed by ride id.
// It is the only shared mutable state in the subsystem and belongs
// exclusively to the tracking use case.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
	}
}

// add registers a session; false when the ride already has one.
func (r *sessionRegistry) add(rideID string, s *session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[rideID]; exists {
		return false
	}
	r.sessions[rideID] = s
	return true
}

func (r *sessionRegistry) get(rideID string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[rideID]
	return s, ok
}

// remove unregisters and returns the session; false when nothing was there.
func (r *sessionRegistry) remove(rideID string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[rideID]
	if ok {
		delete(r.sessions, rideID)
	}
	return s, ok
}

func (r *sessionRegistry) list() []*session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}
