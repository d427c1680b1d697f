package session

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are hidden
// from Get right away and removed by PeriodicCleanup.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem)}
}

func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, bool, error) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()

	if !ok || !time.Now().Before(item.expiresAt) {
		return nil, false, nil
	}
	return append([]byte(nil), item.data...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, data []byte, expiresAt time.Time) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	s.items[id] = memItem{data: append([]byte(nil), data...), expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Count returns the number of stored entries, expired ones included.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// PeriodicCleanup removes expired entries every interval until ctx is done.
func (s *MemoryStore) PeriodicCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if !now.Before(item.expiresAt) {
			delete(s.items, id)
		}
	}
}
