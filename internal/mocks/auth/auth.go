package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"

	domainauth "github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore  = (*ScriptedStore)(nil)
	_ ports.Directory     = (*ScriptedDirectory)(nil)
	_ ports.Authenticator = (*ScriptedAuthenticator)(nil)
)

// ScriptedStore lets a test script each session store operation and records
// the calls it receives.
type ScriptedStore struct {
	ReadFunc  func(ctx context.Context) (domainauth.Identity, error)
	WriteFunc func(ctx context.Context, user domainauth.Identity) error
	ClearFunc func(ctx context.Context) error

	Reads  int
	Writes []domainauth.Identity
	Clears int
}

func (s *ScriptedStore) Read(ctx context.Context) (domainauth.Identity, error) {
	s.Reads++
	if s.ReadFunc != nil {
		return s.ReadFunc(ctx)
	}
	return domainauth.Identity{}, ports.ErrNoSession
}

func (s *ScriptedStore) Write(ctx context.Context, user domainauth.Identity) error {
	s.Writes = append(s.Writes, user)
	if s.WriteFunc != nil {
		return s.WriteFunc(ctx, user)
	}
	return nil
}

func (s *ScriptedStore) Clear(ctx context.Context) error {
	s.Clears++
	if s.ClearFunc != nil {
		return s.ClearFunc(ctx)
	}
	return nil
}

// ScriptedDirectory scripts directory lookups and counts them.
type ScriptedDirectory struct {
	FindFunc func(ctx context.Context, email string) (ports.DirectoryEntry, error)
	Lookups  int
}

func (d *ScriptedDirectory) FindByEmail(ctx context.Context, email string) (ports.DirectoryEntry, error) {
	d.Lookups++
	if d.FindFunc != nil {
		return d.FindFunc(ctx, email)
	}
	return ports.DirectoryEntry{}, ports.ErrEntryNotFound
}

// ScriptedAuthenticator scripts authenticate calls and counts them.
type ScriptedAuthenticator struct {
	AuthenticateFunc func(ctx context.Context, email, secret string) (domainauth.Identity, error)
	Calls            int
}

func (a *ScriptedAuthenticator) Authenticate(ctx context.Context, email, secret string) (domainauth.Identity, error) {
	a.Calls++
	if a.AuthenticateFunc != nil {
		return a.AuthenticateFunc(ctx, email, secret)
	}
	return domainauth.Identity{}, nil
}
