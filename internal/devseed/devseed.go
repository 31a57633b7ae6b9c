// Package devseed provisions a small set of known identities for local
// development, one per role, all sharing one configurable secret.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rotorops/rotorops/internal/adapters/directory"
	"github.com/rotorops/rotorops/internal/data"
	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
	"github.com/rotorops/rotorops/internal/service"
)

// Entries returns the seeded directory entries with secret set to the given
// shared secret.
func Entries(secret string) ([]ports.DirectoryEntry, error) {
	hash, err := service.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("hash seed secret: %w", err)
	}

	return []ports.DirectoryEntry{
		{ID: "6f1a2c34-9b1e-4a4f-8f6e-0a7d35f1c001", DisplayName: "Avery Castillo", Email: "pilot@rotorops.dev", SecretHash: hash, Role: auth.RolePilot},
		{ID: "6f1a2c34-9b1e-4a4f-8f6e-0a7d35f1c002", DisplayName: "Dana Whitfield", Email: "operator@rotorops.dev", SecretHash: hash, Role: auth.RoleOperator},
		{ID: "6f1a2c34-9b1e-4a4f-8f6e-0a7d35f1c003", DisplayName: "Morgan Zhu", Email: "admin@rotorops.dev", SecretHash: hash, Role: auth.RoleAdmin},
		{ID: "6f1a2c34-9b1e-4a4f-8f6e-0a7d35f1c004", DisplayName: "Riley Okafor", Email: "technician@rotorops.dev", SecretHash: hash, Role: auth.RoleTechnician},
		{ID: "6f1a2c34-9b1e-4a4f-8f6e-0a7d35f1c005", DisplayName: "Sam Ibarra", Email: "ground@rotorops.dev", SecretHash: hash, Role: auth.RoleGroundSupport},
	}, nil
}

// Directory builds an in-memory directory over the seeded entries.
func Directory(secret string) (*directory.Static, error) {
	entries, err := Entries(secret)
	if err != nil {
		return nil, err
	}
	return directory.NewStatic(entries)
}

// SeedDatabase inserts the seeded entries into the postgres directory,
// skipping ones whose email already exists. It is safe to run on every
// startup of a development instance.
func SeedDatabase(ctx context.Context, db *sql.DB, secret string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := Entries(secret)
	if err != nil {
		return err
	}

	repo := data.NewDirectoryRepo(db)
	seeded := 0
	for _, entry := range entries {
		if _, createErr := repo.Create(ctx, entry); createErr != nil {
			if errors.Is(createErr, data.ErrDirectoryEmailExists) {
				continue
			}
			return fmt.Errorf("seed directory entry %q: %w", entry.Email, createErr)
		}
		seeded++
	}

	logger.InfoContext(ctx, "development directory seeded", "created", seeded, "total", len(entries))
	return nil
}
