// Package memory provides in-process adapters: a SessionStore backed by a
// map and a canned-data Fetcher for demos and tests.
package memory

import (
	"context"
	"sync"

	"menuflow/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use across distinct user ids. There is no automatic
// eviction; the caller owns the memory bound.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// Save persists a deep copy of the session.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	copied := session.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.UserID] = copied
	return nil
}

// Load retrieves a deep copy of the session, so the caller cannot mutate
// stored state through the returned pointer.
func (s *Store) Load(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// List returns the user ids with an active session.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
