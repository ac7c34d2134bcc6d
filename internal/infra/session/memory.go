// Package session provides the SessionStore backends: an in-memory map for
// tests and ephemeral sessions, a Redis-backed store, and a gocloud blob
// store persisting each key as its own object.
package session

import (
	"context"
	"sync"

	"bijou/internal/domain/repository"
)

// MemoryStore is the map-backed SessionStore. It doubles as the injectable
// fake for unit tests, which is why it lives here rather than in a test
// helper.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string]string{},
	}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return value, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value

	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Len reports how many keys are stored, for test assertions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
