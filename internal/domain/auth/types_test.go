package auth

import "testing"

func TestParseRole_Canonical(t *testing.T) {
	for _, r := range AllRoles {
		got, ok := ParseRole(string(r))
		if !ok || got != r {
			t.Fatalf("ParseRole(%q) = %q, %v", r, got, ok)
		}
	}
}

func TestParseRole_LegacyTokens(t *testing.T) {
	cases := map[string]Role{
		"PILOT":   RolePilot,
		"PILOTO":  RolePilot,
		"TECNICO": RoleTechnician,
		" Admin ": RoleAdmin,
	}
	for raw, want := range cases {
		got, ok := ParseRole(raw)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, raw := range []string{"", "superuser", "PILOTS"} {
		if got, ok := ParseRole(raw); ok {
			t.Fatalf("ParseRole(%q) unexpectedly valid: %q", raw, got)
		}
	}
}

func TestHomePath_TotalOverRoles(t *testing.T) {
	for _, r := range AllRoles {
		if HomePath(r) == "" {
			t.Fatalf("no home path for role %q", r)
		}
	}
	if HomePath(Role("unknown")) != LoginPath {
		t.Fatalf("unmapped role must fall back to login")
	}
}

func TestHomePath_FixedTable(t *testing.T) {
	if HomePath(RolePilot) != "/pilot" {
		t.Fatalf("pilot home = %q", HomePath(RolePilot))
	}
	if HomePath(RoleAdmin) != "/admin" || HomePath(RoleTechnician) != "/admin" {
		t.Fatalf("admin/technician must land on /admin")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  PILOT@Org.Com "); got != "pilot@org.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}
