package directory

// Package directory provides a config-driven, in-memory Directory for local
// development and tests. Production deployments use the postgres-backed
// repository in internal/data.

import (
	"context"
	"fmt"
	"sort"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// Static implements ports.Directory over a fixed set of entries keyed by
// normalized email. It is read-only after construction.
type Static struct {
	byEmail map[string]ports.DirectoryEntry
}

// NewStatic builds a Static directory from entries. Role tokens are
// normalized on the way in; emails must be unique after case-folding.
func NewStatic(entries []ports.DirectoryEntry) (*Static, error) {
	byEmail := make(map[string]ports.DirectoryEntry, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("directory entry %q: ID is required", e.Email)
		}
		role, ok := auth.ParseRole(string(e.Role))
		if !ok {
			return nil, fmt.Errorf("directory entry %q: unknown role %q", e.Email, e.Role)
		}
		e.Role = role

		key := auth.NormalizeEmail(e.Email)
		if key == "" {
			return nil, fmt.Errorf("directory entry %q: email is required", e.ID)
		}
		if _, dup := byEmail[key]; dup {
			return nil, fmt.Errorf("directory entry %q: duplicate email", key)
		}
		e.Email = key
		byEmail[key] = e
	}
	return &Static{byEmail: byEmail}, nil
}

// FindByEmail looks up an entry by normalized email.
func (d *Static) FindByEmail(_ context.Context, email string) (ports.DirectoryEntry, error) {
	entry, ok := d.byEmail[auth.NormalizeEmail(email)]
	if !ok {
		return ports.DirectoryEntry{}, ports.ErrEntryNotFound
	}
	return entry, nil
}

// Len reports the number of known identities.
func (d *Static) Len() int { return len(d.byEmail) }

// List returns entries ordered by display name with secret hashes stripped,
// matching the postgres repository's listing contract.
func (d *Static) List(_ context.Context, limit, offset int) ([]ports.DirectoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]ports.DirectoryEntry, 0, len(d.byEmail))
	for _, e := range d.byEmail {
		e.SecretHash = nil
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DisplayName != all[j].DisplayName {
			return all[i].DisplayName < all[j].DisplayName
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return []ports.DirectoryEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count returns the number of directory entries.
func (d *Static) Count(context.Context) (int, error) { return len(d.byEmail), nil }
