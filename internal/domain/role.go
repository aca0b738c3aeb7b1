package domain

import "strings"

type Role string

const (
	RoleStaff Role = "staff"
	RoleHOD   Role = "hod"
	RoleHR    Role = "hr"
	RoleGM    Role = "gm"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStaff, RoleHOD, RoleHR, RoleGM, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole matches role names case-insensitively, the way the users table
// stores them.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	ID         int64
	Role       Role
	Name       string
	Department string
}

// Allows reports whether the actor holds one of the accepted roles.
// Admin is accepted everywhere.
func (a Actor) Allows(accepted ...Role) bool {
	if a.Role == RoleAdmin {
		return true
	}
	for _, r := range accepted {
		if a.Role == r {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
