package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps maps in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string]*record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string]*record)}
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, m *Map) error {
	stamp(m)
	r, err := toRecord(m)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[r.ID] = r
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Map, error) {
	s.mu.RLock()
	r, ok := s.maps[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return r.toMap()
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, m *Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.maps[m.ID]
	if !ok {
		return notFound(m.ID)
	}
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	r, err := toRecord(m)
	if err != nil {
		return err
	}
	s.maps[m.ID] = r
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maps[id]; !ok {
		return notFound(id)
	}
	delete(s.maps, id)
	return nil
}

// Len returns the number of stored maps.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.maps)
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
