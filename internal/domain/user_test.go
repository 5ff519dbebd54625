package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole_KeepsValidRoles(t *testing.T) {
	for _, role := range ValidRoles() {
		assert.Equal(t, role, NormalizeRole(string(role)))
	}
}

func TestNormalizeRole_CoercesUnknownToUnassigned(t *testing.T) {
	for _, requested := range []string{"superuser", "ADMIN", "root", " ", "admin "} {
		assert.Equal(t, RoleUnassigned, NormalizeRole(requested), "requested %q", requested)
	}
}

func TestValidRoles_FixedEnumOrder(t *testing.T) {
	assert.Equal(t, []Role{RoleAdmin, RoleUser, RoleManager, RoleDataEntry}, ValidRoles())
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusCompleted.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}
