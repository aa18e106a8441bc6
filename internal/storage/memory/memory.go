package memory

import (
	"context"
	"sync"
)

// Store is an in-process key/value store scoped to the agent's lifetime. It
// backs the transient session scope: contents are gone when the agent stops,
// the same way session storage is gone when the tab closes.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Get returns the value for key and whether the key was present
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key
func (s *Store) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes key
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
