package domain

import "time"

// Role represents the access level assigned to a user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleManager   Role = "manager"
	RoleDataEntry Role = "data-entry"
	// RoleUnassigned is a valid stored state produced when user creation
	// supplies a role outside the fixed set.
	RoleUnassigned Role = ""
)

// ValidRoles returns the fixed role enum in its canonical order.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleManager, RoleDataEntry}
}

// NormalizeRole coerces a requested role into the stored role set. Anything
// outside the fixed enum maps to RoleUnassigned rather than being rejected;
// this is a deliberate permissive policy, not an error path.
func NormalizeRole(requested string) Role {
	role := Role(requested)
	for _, valid := range ValidRoles() {
		if role == valid {
			return role
		}
	}
	return RoleUnassigned
}

// User is the domain model for staff accounts.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
