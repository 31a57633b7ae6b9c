package auth

// LoginPath is the public login route. Unauthenticated navigations and
// unmapped roles are always redirected here.
const LoginPath = "/login"

// HomePath returns the landing route for a role. This is the single table
// consumed by both the post-login redirect and the route guard's forbidden
// branch, so the two can never disagree.
//
// The mapping is total over Role: roles without a dedicated area fall back
// to the login route rather than rendering protected content.
func HomePath(r Role) string {
	switch r {
	case RolePilot:
		return "/pilot"
	case RoleAdmin, RoleTechnician:
		return "/admin"
	case RoleOperator, RoleGroundSupport:
		return LoginPath
	default:
		return LoginPath
	}
}
