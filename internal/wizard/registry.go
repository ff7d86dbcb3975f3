package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session binds one user's draft and navigation state. It is created when the
// user enters the order flow and discarded on exit, submission, or idle expiry.
// The session ID becomes the order ID on submission, so storage paths written
// during the upload step stay valid for the persisted order.
type Session struct {
	ID    uuid.UUID
	Draft *Draft
	Meta  *Meta
}

type entry struct {
	session   *Session
	lastTouch time.Time
}

// Registry holds the per-user wizard sessions with an idle TTL. Expired
// sessions feed the abandoned-order cleanup.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the user's session, creating one on first access, and refreshes
// its idle timer.
func (r *Registry) Get(userID uuid.UUID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[userID]
	if !ok {
		e = &entry{session: &Session{ID: uuid.New(), Draft: NewDraft(), Meta: NewMeta()}}
		r.sessions[userID] = e
	}
	e.lastTouch = r.now()
	return e.session
}

// Reset discards the user's session entirely.
func (r *Registry) Reset(userID uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}

// Expire removes sessions idle longer than the TTL and returns how many were
// dropped.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	dropped := 0
	for id, e := range r.sessions {
		if e.lastTouch.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
