package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("segredo-de-teste", 30)

	token, expiresAt, err := tm.GenerateToken("u1", domain.RoleTechnician)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleTechnician, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("segredo-a", 30)
	other := NewTokenManager("segredo-b", 30)

	token, _, err := tm.GenerateToken("u1", domain.RoleRequester)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("segredo", 30)
	_, err := tm.ParseToken("nao.e.jwt")
	assert.Error(t, err)
}

func TestTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager("segredo", 0)
	_, expiresAt, err := tm.GenerateToken("u1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("minha-senha", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "minha-senha"))
	assert.Error(t, ComparePassword(hash, "outra-senha"))
}
