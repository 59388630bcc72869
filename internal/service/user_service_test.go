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

func TestUserServiceCreate(t *testing.T) {
	users := &mockUserRepo{}
	users.createFn = func(ctx context.Context, user *domain.User) error {
		user.ID = "u-new"
		return nil
	}
	service := NewUserService(users, 4, zap.NewNop())

	valid := UserCreateInput{
		Username: "bruno",
		Email:    "Bruno@Example.com",
		Password: "senha-segura",
		FullName: "Bruno Lima",
		Role:     domain.RoleTechnician,
	}

	t.Run("valid input", func(t *testing.T) {
		user, err := service.Create(context.Background(), valid)
		require.NoError(t, err)
		assert.Equal(t, "u-new", user.ID)
		assert.Equal(t, "bruno@example.com", user.Email, "email is normalized")
		assert.True(t, user.Active)
		assert.NoError(t, auth.ComparePassword(user.PasswordHash, "senha-segura"))
	})

	t.Run("invalid role", func(t *testing.T) {
		input := valid
		input.Role = domain.UserRole("gerente")
		_, err := service.Create(context.Background(), input)
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("short password", func(t *testing.T) {
		input := valid
		input.Password = "curta"
		_, err := service.Create(context.Background(), input)
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("duplicate username", func(t *testing.T) {
		users.getByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "u0", Username: username}, nil
		}
		defer func() { users.getByUsernameFn = nil }()
		_, err := service.Create(context.Background(), valid)
		assertDomainCode(t, err, "CONFLICT")
	})

	t.Run("duplicate email", func(t *testing.T) {
		users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u0", Email: email}, nil
		}
		defer func() { users.getByEmailFn = nil }()
		_, err := service.Create(context.Background(), valid)
		assertDomainCode(t, err, "CONFLICT")
	})
}

func TestUserServiceDelete(t *testing.T) {
	users := &mockUserRepo{}
	users.getByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
		if id == "u2" {
			return &domain.User{ID: "u2"}, nil
		}
		return nil, pgx.ErrNoRows
	}
	users.deleteFn = func(ctx context.Context, id string) error { return nil }
	service := NewUserService(users, 4, zap.NewNop())

	admin := domain.User{ID: "a1", Role: domain.RoleAdmin}

	t.Run("deleting own account is rejected", func(t *testing.T) {
		err := service.Delete(context.Background(), &admin, "a1")
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("unknown account", func(t *testing.T) {
		err := service.Delete(context.Background(), &admin, "missing")
		assertDomainCode(t, err, "NOT_FOUND")
	})

	t.Run("valid delete", func(t *testing.T) {
		err := service.Delete(context.Background(), &admin, "u2")
		assert.NoError(t, err)
	})
}

func TestUserServiceUpdateProfileDoesNotTouchRole(t *testing.T) {
	stored := domain.User{
		ID: "u1", Username: "ana", Email: "ana@example.com",
		FullName: "Ana Souza", Role: domain.RoleRequester, Active: true,
	}
	users := &mockUserRepo{}
	users.getByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
		cp := stored
		return &cp, nil
	}
	var saved *domain.User
	users.updateFn = func(ctx context.Context, user *domain.User) error {
		saved = user
		return nil
	}
	service := NewUserService(users, 4, zap.NewNop())

	name := "Ana Souza Santos"
	dept := "Financeiro"
	actor := stored
	_, err := service.UpdateProfile(context.Background(), &actor, ProfileUpdateInput{
		FullName:   &name,
		Department: &dept,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Ana Souza Santos", saved.FullName)
	assert.Equal(t, domain.RoleRequester, saved.Role)
	assert.True(t, saved.Active)
}
