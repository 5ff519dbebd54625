package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/erp-service/internal/domain"
)

func TestCanPerform_DecisionTable(t *testing.T) {
	everyRole := append(domain.ValidRoles(), domain.RoleUnassigned)

	cases := []struct {
		action  Action
		allowed map[domain.Role]bool
	}{
		{
			action: ActionProductWrite,
			allowed: map[domain.Role]bool{
				domain.RoleAdmin:   true,
				domain.RoleManager: true,
			},
		},
		{
			action: ActionUserManage,
			allowed: map[domain.Role]bool{
				domain.RoleAdmin: true,
			},
		},
	}

	for _, tc := range cases {
		for _, role := range everyRole {
			assert.Equal(t, tc.allowed[role], CanPerform(role, tc.action),
				"role %q action %q", role, tc.action)
		}
	}
}

func TestCanPerform_ReadsAndOrderWritesOpenToAnyIdentity(t *testing.T) {
	for _, role := range append(domain.ValidRoles(), domain.RoleUnassigned) {
		for _, action := range []Action{ActionProductRead, ActionOrderRead, ActionOrderWrite} {
			assert.True(t, CanPerform(role, action), "role %q action %q", role, action)
		}
	}
}

func TestCanPerform_UnknownActionDenied(t *testing.T) {
	assert.False(t, CanPerform(domain.RoleAdmin, Action("order:export")))
}
