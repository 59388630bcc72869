package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

func newAuthServiceFixture(t *testing.T) (*AuthService, *mockUserRepo, domain.User) {
	t.Helper()
	hash, err := auth.HashPassword("senha-correta", 4)
	require.NoError(t, err)

	account := domain.User{
		ID: "u1", Username: "ana", Email: "ana@example.com",
		PasswordHash: hash, FullName: "Ana Souza",
		Role: domain.RoleRequester, Active: true,
	}
	users := &mockUserRepo{}
	users.getByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
		if username == account.Username {
			cp := account
			return &cp, nil
		}
		return nil, pgx.ErrNoRows
	}
	tokens := auth.NewTokenManager("test-secret", 30)
	return NewAuthService(users, tokens, 4, zap.NewNop()), users, account
}

func TestAuthServiceLogin(t *testing.T) {
	service, _, account := newAuthServiceFixture(t)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		result, err := service.Login(context.Background(), "ana", "senha-correta")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, account.ID, result.User.ID)
		assert.False(t, result.ExpiresAt.IsZero())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), "ana", "senha-errada")
		assertDomainCode(t, err, "UNAUTHORIZED")
	})

	t.Run("unknown user maps to the same error as wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), "ninguem", "senha-correta")
		assertDomainCode(t, err, "UNAUTHORIZED")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := service.Login(context.Background(), "", "")
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})
}

func TestAuthServiceLoginInactiveUser(t *testing.T) {
	service, users, account := newAuthServiceFixture(t)
	users.getByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
		cp := account
		cp.Active = false
		return &cp, nil
	}
	_, err := service.Login(context.Background(), "ana", "senha-correta")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestAuthServiceChangePassword(t *testing.T) {
	service, users, account := newAuthServiceFixture(t)

	var savedHash string
	users.updateFn = func(ctx context.Context, user *domain.User) error {
		savedHash = user.PasswordHash
		return nil
	}

	t.Run("wrong current password", func(t *testing.T) {
		user := account
		err := service.ChangePassword(context.Background(), &user, "errada", "nova-senha-123")
		assertDomainCode(t, err, "UNAUTHORIZED")
	})

	t.Run("short new password", func(t *testing.T) {
		user := account
		err := service.ChangePassword(context.Background(), &user, "senha-correta", "curta")
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("valid change rehashes", func(t *testing.T) {
		user := account
		err := service.ChangePassword(context.Background(), &user, "senha-correta", "nova-senha-123")
		require.NoError(t, err)
		require.NotEmpty(t, savedHash)
		assert.NoError(t, auth.ComparePassword(savedHash, "nova-senha-123"))
	})
}
