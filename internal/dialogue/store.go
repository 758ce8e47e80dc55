package dialogue

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrSessionNotFound is returned for unknown, expired and foreign sessions alike.
var ErrSessionNotFound = errors.New("dialogue: session not found")

const (
	defaultMaxSessions = 10000
	defaultSessionTTL  = 30 * time.Minute
)

// Store keeps live sessions in memory. Idle sessions expire after the TTL and the least
// recently used ones are evicted past the size cap.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
}

// NewStore returns a store holding at most maxSessions sessions, each idle for at most ttl.
// Non-positive values fall back to the defaults.
func NewStore(maxSessions int, ttl time.Duration) *Store {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{cache: expirable.NewLRU[string, *Session](maxSessions, nil, ttl)}
}

// Create starts a new session with a random id.
func (s *Store) Create(ownerID string, now time.Time) *Session {
	sess := NewSession(uuid.NewString(), ownerID, now)
	s.cache.Add(sess.ID, sess)
	return sess
}

// Get returns the session owned by ownerID. A session owned by someone else is reported
// as not found.
func (s *Store) Get(id, ownerID string) (*Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok || sess.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// GetOrCreate returns the session stored under id, creating it when absent. It is used by
// transports whose conversation key is external, such as a chat id.
func (s *Store) GetOrCreate(id, ownerID string, now time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(id); ok {
		return sess
	}
	sess := NewSession(id, ownerID, now)
	s.cache.Add(id, sess)
	return sess
}

// Touch refreshes the TTL of a session that is still stored.
func (s *Store) Touch(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.cache.Peek(sess.ID); ok && cur == sess {
		s.cache.Add(sess.ID, sess)
	}
}

// Delete removes a session owned by ownerID.
func (s *Store) Delete(id, ownerID string) error {
	if _, err := s.Get(id, ownerID); err != nil {
		return err
	}
	s.cache.Remove(id)
	return nil
}

// Remove drops the session stored under an external key whoever started it. Keyed sessions
// belong to the conversation (a group chat, a terminal) rather than to one member, matching
// GetOrCreate. It reports whether a session was stored.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Remove(id)
}

// Len counts live sessions, expired ones excluded.
func (s *Store) Len() int {
	return s.cache.Len()
}
