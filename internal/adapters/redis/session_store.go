package redis

// Package redis provides Redis-based adapters for the rotorops system.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

const defaultPrefix = "session:"

// SessionStore is a Redis-backed single-slot session store. Each device slot
// owns one store instance and one key; writing overwrites the record
// atomically and the TTL bounds the session lifetime.
type SessionStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// Options configures a SessionStore.
type Options struct {
	// SlotID scopes the store to one device; required.
	SlotID string
	// Prefix defaults to "session:".
	Prefix string
	// TTL bounds the record lifetime; required.
	TTL time.Duration
}

// NewSessionStore creates a Redis session store for one device slot.
func NewSessionStore(client redis.UniversalClient, opts Options) (*SessionStore, error) {
	if opts.SlotID == "" {
		return nil, errors.New("slot ID cannot be empty")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{
		client: client,
		key:    prefix + opts.SlotID,
		ttl:    opts.TTL,
	}, nil
}

// Read returns the persisted identity for this slot. A missing or malformed
// record reads as ports.ErrNoSession; corruption is treated as logout, so
// the stale record is removed rather than surfaced.
func (s *SessionStore) Read(ctx context.Context) (auth.Identity, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Identity{}, ports.ErrNoSession
		}
		return auth.Identity{}, fmt.Errorf("redis get: %w", err)
	}

	var user auth.Identity
	if unmarshalErr := json.Unmarshal([]byte(data), &user); unmarshalErr != nil {
		// Corrupt record: clear the slot and report absence.
		if delErr := s.client.Del(ctx, s.key).Err(); delErr != nil {
			return auth.Identity{}, fmt.Errorf("clear corrupt session: %w", delErr)
		}
		return auth.Identity{}, ports.ErrNoSession
	}

	if user.ID == "" {
		return auth.Identity{}, ports.ErrNoSession
	}

	return user, nil
}

// Write serializes the full identity into the slot, overwriting any
// previous record.
func (s *SessionStore) Write(ctx context.Context, user auth.Identity) error {
	if user.ID == "" {
		return errors.New("identity ID cannot be empty")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// Clear removes the slot's record entirely. Clearing an empty slot is a
// no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
