package session

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the data of one client session. Values are strings so that every
// store can persist them without type registration. Safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	id          string
	createdAt   time.Time
	values      map[string]string
	isNew       bool
	isModified  bool
	isDestroyed bool
}

func newSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		values:    make(map[string]string),
		isNew:     true,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns the time the session was started.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Get returns the value under key and whether it was present.
func (s *Session) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and marks the session as modified.
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.isModified = true
}

// Delete removes key and marks the session as modified.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.isModified = true
}

// Destroy clears all values. The session is deleted from the store and its
// cookie expired when the response is written.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.isModified = true
	s.isDestroyed = true
}

// snapshot copies the state needed by save under the lock.
func (s *Session) snapshot() (values map[string]string, isNew, modified, destroyed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values), s.isNew, s.isModified, s.isDestroyed
}

func (s *Session) markSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isNew = false
	s.isModified = false
}
