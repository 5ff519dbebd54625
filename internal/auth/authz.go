package auth

import "github.com/spec-kit/erp-service/internal/domain"

// Action identifies a gated operation category. Role rules live in one place
// so handlers never branch on roles themselves.
type Action string

const (
	ActionProductRead  Action = "product:read"
	ActionProductWrite Action = "product:write"
	ActionUserManage   Action = "user:manage"
	ActionOrderRead    Action = "order:read"
	ActionOrderWrite   Action = "order:write"
)

// CanPerform is the authorization decision table, evaluated after
// authentication. Catalog writes require admin or manager, user management
// requires admin, everything else is open to any authenticated identity
// including the unassigned role.
func CanPerform(role domain.Role, action Action) bool {
	switch action {
	case ActionProductWrite:
		return role == domain.RoleAdmin || role == domain.RoleManager
	case ActionUserManage:
		return role == domain.RoleAdmin
	case ActionProductRead, ActionOrderRead, ActionOrderWrite:
		return true
	default:
		return false
	}
}
