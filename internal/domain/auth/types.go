package auth

// Package auth contains domain-level types for sessions and role-based
// authorization. It is pure and free of framework/adapter concerns.

import "strings"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RolePilot         Role = "pilot"
	RoleOperator      Role = "operator"
	RoleAdmin         Role = "admin"
	RoleTechnician    Role = "technician"
	RoleGroundSupport Role = "ground_support"
)

// AllRoles lists every valid role. Exhaustiveness checks in tests iterate
// over this slice so a new role cannot land without a home-path decision.
var AllRoles = []Role{RolePilot, RoleOperator, RoleAdmin, RoleTechnician, RoleGroundSupport}

// Valid reports whether r is a member of the closed role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RolePilot, RoleOperator, RoleAdmin, RoleTechnician, RoleGroundSupport:
		return true
	default:
		return false
	}
}

// legacyRoleAliases maps role tokens found in older persisted records to
// their canonical value. Legacy flows stored uppercase and localized tokens.
var legacyRoleAliases = map[string]Role{
	"tecnico":        RoleTechnician,
	"piloto":         RolePilot,
	"ground-support": RoleGroundSupport,
	"groundsupport":  RoleGroundSupport,
}

// ParseRole normalizes a raw role token to its canonical lowercase Role.
// It returns false for tokens outside the closed enumeration; callers must
// treat that as the unmapped-role fallback, never as a crash.
func ParseRole(raw string) (Role, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := legacyRoleAliases[v]; ok {
		return alias, true
	}
	r := Role(v)
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Identity is the authenticated user's profile record as issued by the
// directory. It is immutable for the lifetime of a session.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	AvatarRef   string `json:"avatar_ref,omitempty"`
}

// Snapshot is a read-only view of a session context's state.
// Invariant: IsAuthenticated == (User != nil).
type Snapshot struct {
	User            *Identity `json:"user,omitempty"`
	IsAuthenticated bool      `json:"is_authenticated"`
	IsLoading       bool      `json:"is_loading"`
}

// NormalizeEmail trims and case-folds an email for directory lookup.
// Emails are case-insensitively unique in the directory.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
