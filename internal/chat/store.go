package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"renovirt-backend/internal/models"
)

// Store is a scoped, time-boxed cache for chat assistant sessions. A session
// expires after the configured idle period; the original client kept this
// history in browser storage with the same one-hour expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	messages   []models.ChatMessage
	lastActive time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Append adds a message to the session, creating the session when sessionID is
// empty or expired, and returns the effective session id.
func (s *Store) Append(sessionID string, msg models.ChatMessage) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if sessionID == "" || !ok || s.expiredLocked(sess) {
		sessionID = uuid.New().String()
		sess = &session{}
		s.sessions[sessionID] = sess
	}

	sess.messages = append(sess.messages, msg)
	sess.lastActive = s.now()
	return sessionID
}

// History returns the session's messages, or ok=false when the session is
// unknown or has expired.
func (s *Store) History(sessionID string) ([]models.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || s.expiredLocked(sess) {
		delete(s.sessions, sessionID)
		return nil, false
	}

	out := make([]models.ChatMessage, len(sess.messages))
	copy(out, sess.messages)
	return out, true
}

func (s *Store) expiredLocked(sess *session) bool {
	return !sess.lastActive.IsZero() && s.now().Sub(sess.lastActive) >= s.ttl
}

// Expire drops all idle sessions and returns how many were removed.
func (s *Store) Expire() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if s.expiredLocked(sess) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}
