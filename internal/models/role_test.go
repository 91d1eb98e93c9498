package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want Role
	}{
		{"plain string", "staff", RoleStaff},
		{"uppercase string", "ADMIN", RoleAdmin},
		{"padded string", "  consultant ", RoleConsultant},
		{"string slice", []string{"customer"}, RoleCustomer},
		{"interface slice first match", []interface{}{"nonsense", "manager"}, RoleManager},
		{"object with name", map[string]interface{}{"name": "staff"}, RoleStaff},
		{"object with role", map[string]interface{}{"role": "customer"}, RoleCustomer},
		{"object with type", map[string]interface{}{"type": "ADMIN"}, RoleAdmin},
		{"nested object in slice", []interface{}{map[string]interface{}{"role": "consultant"}}, RoleConsultant},
		{"unknown string", "superuser", RoleGuest},
		{"nil", nil, RoleGuest},
		{"number", 42, RoleGuest},
		{"empty slice", []interface{}{}, RoleGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.in))
		})
	}
}

func TestRolePrivileged(t *testing.T) {
	assert.False(t, RoleGuest.Privileged())
	assert.False(t, RoleCustomer.Privileged())
	assert.True(t, RoleStaff.Privileged())
	assert.True(t, RoleConsultant.Privileged())
	assert.True(t, RoleManager.Privileged())
	assert.True(t, RoleAdmin.Privileged())
}
