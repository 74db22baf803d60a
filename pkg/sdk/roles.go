package sdk

import "strings"

// Role identifies one of the four subject categories the platform knows
// about. Each role owns its own credential slot; roles never share state.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleUser       Role = "user"
)

// rolePriority is the fixed fallback order used when nothing else
// identifies a role: first non-empty slot wins.
var rolePriority = []Role{RoleSuperAdmin, RoleAdmin, RoleClient, RoleUser}

// rolePaths maps URL path prefixes to roles. The prefixes mirror the web
// app's route tree, so a token minted in a browser session resolves the
// same way here.
var rolePaths = map[string]Role{
	"/super-admin/": RoleSuperAdmin,
	"/admin/":       RoleAdmin,
	"/client/":      RoleClient,
	"/user/":        RoleUser,
}

// Roles returns the known roles in fallback priority order.
func Roles() []Role {
	out := make([]Role, len(rolePriority))
	copy(out, rolePriority)
	return out
}

// ParseRole converts a string to a Role. The empty string and unknown
// values return false.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleClient, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }

// RoleFromPath maps a navigation path to the role that owns it, or ""
// when the path belongs to no role area (e.g. the landing page).
func RoleFromPath(path string) Role {
	for prefix, role := range rolePaths {
		if strings.HasPrefix(path, prefix) {
			return role
		}
	}
	return ""
}

// ResolveRole picks a single role from the available signals, in strict
// precedence order: an explicit per-call override, then the session's
// active role, then the role derived from the resolved identity. Returns
// "" when no signal is present.
func ResolveRole(explicit, active Role, identity *Identity) Role {
	if explicit != "" {
		return explicit
	}
	if active != "" {
		return active
	}
	return identity.EffectiveRole()
}
