package memstore

// Package memstore provides an in-memory single-slot session store for
// development and tests. Sessions held here do not survive a restart.

import (
	"context"
	"sync"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// Store implements ports.SessionStore over process memory. Each device slot
// gets its own instance.
type Store struct {
	mu   sync.Mutex
	user *auth.Identity
}

// New creates an empty in-memory session store.
func New() *Store { return &Store{} }

// Read returns the held identity or ports.ErrNoSession.
func (s *Store) Read(_ context.Context) (auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return auth.Identity{}, ports.ErrNoSession
	}
	return *s.user, nil
}

// Write overwrites the slot with the given identity.
func (s *Store) Write(_ context.Context, user auth.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	return nil
}

// Clear empties the slot. Clearing an empty slot is a no-op.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}
