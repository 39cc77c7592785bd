package lucky

import (
	"context"
	"sync"
)

// Store keeps at most one Assignment per (user, day).
type Store interface {
	Get(ctx context.Context, userID string, day Day) (Assignment, bool, error)
	// Put inserts or overwrites the entry for a.UserID and a.Day.
	Put(ctx context.Context, a Assignment) error
	// PutIfAbsent stores a unless an entry for the same key exists, and
	// returns whichever assignment is stored once it finishes.
	PutIfAbsent(ctx context.Context, a Assignment) (Assignment, error)
}

// MemoryStore is a process-local Store. Entries from past days are never
// evicted.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[key]Assignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[key]Assignment)}
}

func (s *MemoryStore) Get(_ context.Context, userID string, day Day) (Assignment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.entries[key{userID: userID, day: day}]
	return a, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, a Assignment) error {
	s.mu.Lock()
	s.entries[a.key()] = a
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, a Assignment) (Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[a.key()]; ok {
		return existing, nil
	}
	s.entries[a.key()] = a
	return a, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
