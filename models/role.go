package models

import "fmt"

// Role is the closed set of authorization roles a user account can hold.
// All role decisions go through [Role.OneOf]; call sites must never compare
// raw strings.
type Role string

const (
	// RoleUser is the default role assigned to every account created through
	// the public registration flow.
	RoleUser Role = "USER"

	// RoleEditor can manage editorial content owned by others.
	RoleEditor Role = "EDITOR"

	// RoleAdManager can manage advertisement placements and the content
	// records that own them.
	RoleAdManager Role = "AD_MANAGER"

	// RoleAdmin bypasses ownership checks entirely.
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a raw string into a [Role].
// Returns an error for any value outside the closed set.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEditor, RoleAdManager, RoleAdmin:
		return true
	}
	return false
}

// OneOf reports whether the role is contained in the allowed set.
// An empty allowed set matches nothing.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// String returns the role name. Implements the [fmt.Stringer] interface.
func (r Role) String() string {
	return string(r)
}
