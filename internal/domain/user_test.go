package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleRequester.Valid())
	assert.True(t, RoleTechnician.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, UserRole("gerente").Valid())
}

func TestUserIsTechnician(t *testing.T) {
	assert.True(t, (&User{Role: RoleTechnician}).IsTechnician())
	assert.False(t, (&User{Role: RoleAdmin}).IsTechnician())
	assert.False(t, (&User{Role: RoleRequester}).IsTechnician())
}

func TestUserInitials(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{"first and last", "Ana Souza", "AS"},
		{"middle names use first and last", "Ana Maria Souza Lima", "AL"},
		{"single name", "Ana", "AN"},
		{"single letter", "A", "A"},
		{"empty", "", "US"},
		{"extra whitespace", "  Bruno   Lima  ", "BL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{FullName: tt.fullName}
			assert.Equal(t, tt.want, u.Initials())
		})
	}
}
