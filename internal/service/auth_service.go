package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// AuthService handles credential checks and token issuance. Tokens are
// stateless, so logout is purely a client-side discard.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login verifies credentials and issues an access token. Unknown username
// and wrong password produce the same error so callers cannot probe for
// valid accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username e senha são obrigatórios", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("credenciais inválidas")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("credenciais inválidas")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("credenciais inválidas")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Refresh issues a fresh token for an already-authenticated principal.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User) (*LoginResult, error) {
	if !user.Active {
		return nil, apperrors.NewUnauthorized("usuário inativo")
	}
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("a nova senha deve ter pelo menos 8 caracteres", nil)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("senha atual incorreta")
	}

	hashed, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hashed
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	s.logger.Info("password changed", zap.String("user_id", user.ID))
	return nil
}
