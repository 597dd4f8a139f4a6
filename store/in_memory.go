package store

import (
	"context"
	"sync"
)

// InMemoryStore is a thread-safe, map-backed EntityStore suitable for
// development and testing. Entities are copied on the way in and out so
// callers cannot mutate stored state.
type InMemoryStore struct {
	mu       sync.RWMutex
	entities map[string]Entity
}

// NewInMemoryStore creates an empty in-memory entity store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entities: make(map[string]Entity)}
}

// Load implements EntityStore.
func (s *InMemoryStore) Load(_ context.Context, id string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	if !ok {
		return Entity{}, ErrNotFound
	}
	return e.Clone(), nil
}

// Save implements EntityStore.
func (s *InMemoryStore) Save(_ context.Context, e Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[e.ID] = e.Clone()
	return nil
}
