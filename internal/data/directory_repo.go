package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rotorops/rotorops/internal/data/pgxutil"
	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// DirectoryRepo provides database operations for the user directory. It
// implements ports.Directory for the authenticator and carries the write
// operations used by seeding and personnel administration.
type DirectoryRepo struct {
	DB *sql.DB
}

// NewDirectoryRepo creates a new DirectoryRepo.
func NewDirectoryRepo(db *sql.DB) *DirectoryRepo {
	return &DirectoryRepo{DB: db}
}

// directoryRow is the database shape of a directory entry. Role tokens are
// normalized on the way out so legacy records with uppercase or localized
// tokens resolve to canonical roles.
type directoryRow struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	Email       string    `db:"email"`
	SecretHash  []byte    `db:"secret_hash"`
	Role        string    `db:"role"`
	AvatarRef   *string   `db:"avatar_ref"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row directoryRow) toEntry() ports.DirectoryEntry {
	entry := ports.DirectoryEntry{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Email:       auth.NormalizeEmail(row.Email),
		SecretHash:  row.SecretHash,
	}
	if row.AvatarRef != nil {
		entry.AvatarRef = *row.AvatarRef
	}
	if role, ok := auth.ParseRole(row.Role); ok {
		entry.Role = role
	} else {
		// Keep the raw token; the route guard resolves unknown roles to the
		// login fallback rather than rendering protected content.
		entry.Role = auth.Role(row.Role)
	}
	return entry
}

const directorySelectColumns = `id, display_name, email, secret_hash, role, avatar_ref, created_at`

// FindByEmail retrieves the entry whose email matches case-insensitively.
func (r *DirectoryRepo) FindByEmail(ctx context.Context, email string) (ports.DirectoryEntry, error) {
	normalized := auth.NormalizeEmail(email)
	if normalized == "" {
		return ports.DirectoryEntry{}, ports.ErrEntryNotFound
	}

	var row directoryRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT `+directorySelectColumns+`
			FROM directory_entries
			WHERE lower(email) = $1
		`, normalized)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		row, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[directoryRow])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ports.DirectoryEntry{}, ports.ErrEntryNotFound
		}
		return ports.DirectoryEntry{}, fmt.Errorf("find directory entry: %w", err)
	}

	return row.toEntry(), nil
}

// Create inserts a new directory entry. The entry's email must be unique
// after case-folding; a duplicate maps to ErrDirectoryEmailExists.
func (r *DirectoryRepo) Create(ctx context.Context, entry ports.DirectoryEntry) (ports.DirectoryEntry, error) {
	if strings.TrimSpace(entry.DisplayName) == "" {
		return ports.DirectoryEntry{}, errors.New("display name is required")
	}
	email := auth.NormalizeEmail(entry.Email)
	if email == "" {
		return ports.DirectoryEntry{}, errors.New("email is required")
	}
	if len(entry.SecretHash) == 0 {
		return ports.DirectoryEntry{}, errors.New("secret hash is required")
	}
	role, ok := auth.ParseRole(string(entry.Role))
	if !ok {
		return ports.DirectoryEntry{}, fmt.Errorf("unknown role %q", entry.Role)
	}

	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}
	var avatarRef *string
	if entry.AvatarRef != "" {
		avatarRef = &entry.AvatarRef
	}

	var row directoryRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			INSERT INTO directory_entries (id, display_name, email, secret_hash, role, avatar_ref)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+directorySelectColumns+`
		`, id, strings.TrimSpace(entry.DisplayName), email, entry.SecretHash, string(role), avatarRef)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		row, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[directoryRow])
		return collectErr
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ports.DirectoryEntry{}, ErrDirectoryEmailExists
		}
		return ports.DirectoryEntry{}, fmt.Errorf("create directory entry: %w", err)
	}

	return row.toEntry(), nil
}

// List retrieves directory entries ordered by display name, for the
// personnel view on the admin dashboard. Secret hashes are not included.
func (r *DirectoryRepo) List(ctx context.Context, limit, offset int) ([]ports.DirectoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []directoryRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT `+directorySelectColumns+`
			FROM directory_entries
			ORDER BY display_name, id
			LIMIT $1 OFFSET $2
		`, limit, offset)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		rowsOut, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[directoryRow])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("list directory entries: %w", err)
	}

	entries := make([]ports.DirectoryEntry, 0, len(rowsOut))
	for _, row := range rowsOut {
		entry := row.toEntry()
		entry.SecretHash = nil
		entries = append(entries, entry)
	}
	return entries, nil
}

// Count returns the number of directory entries.
func (r *DirectoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM directory_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count directory entries: %w", err)
	}
	return count, nil
}
