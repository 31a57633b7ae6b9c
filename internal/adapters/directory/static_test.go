package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

func TestStatic_FindByEmail_Normalizes(t *testing.T) {
	d, err := NewStatic([]ports.DirectoryEntry{
		{ID: "u-1", DisplayName: "Avery", Email: "Pilot@Org.com", Role: auth.RolePilot},
	})
	require.NoError(t, err)

	entry, err := d.FindByEmail(context.Background(), "  PILOT@org.com ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", entry.ID)
	assert.Equal(t, "pilot@org.com", entry.Email)
}

func TestStatic_FindByEmail_NotFound(t *testing.T) {
	d, err := NewStatic(nil)
	require.NoError(t, err)

	_, err = d.FindByEmail(context.Background(), "nobody@org.com")
	assert.ErrorIs(t, err, ports.ErrEntryNotFound)
}

func TestNewStatic_NormalizesLegacyRoleTokens(t *testing.T) {
	d, err := NewStatic([]ports.DirectoryEntry{
		{ID: "u-2", Email: "tech@org.com", Role: auth.Role("TECNICO")},
	})
	require.NoError(t, err)

	entry, err := d.FindByEmail(context.Background(), "tech@org.com")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTechnician, entry.Role)
}

func TestNewStatic_RejectsUnknownRole(t *testing.T) {
	_, err := NewStatic([]ports.DirectoryEntry{
		{ID: "u-3", Email: "x@org.com", Role: auth.Role("warlock")},
	})
	require.Error(t, err)
}

func TestNewStatic_RejectsDuplicateEmail(t *testing.T) {
	_, err := NewStatic([]ports.DirectoryEntry{
		{ID: "u-4", Email: "dup@org.com", Role: auth.RolePilot},
		{ID: "u-5", Email: "DUP@org.com", Role: auth.RoleAdmin},
	})
	require.Error(t, err)
}
