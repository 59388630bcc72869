package domain

import (
	"strings"
	"time"
)

// UserRole enumerates account types. Wire values follow the helpdesk API
// contract (Portuguese labels).
type UserRole string

const (
	RoleRequester  UserRole = "usuario"
	RoleTechnician UserRole = "tecnico"
	RoleAdmin      UserRole = "admin"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleRequester, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every account; requesters, technicians and
// administrators share one identity store distinguished by Role.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         UserRole
	Department   *string
	Phone        *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTechnician reports whether the user can be assigned to tickets.
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// Initials derives avatar initials from the full name.
func (u *User) Initials() string {
	names := strings.Fields(u.FullName)
	switch {
	case len(names) >= 2:
		return strings.ToUpper(names[0][:1] + names[len(names)-1][:1])
	case len(names) == 1 && len(names[0]) >= 2:
		return strings.ToUpper(names[0][:2])
	case len(names) == 1:
		return strings.ToUpper(names[0])
	}
	return "US"
}
