package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// UserService manages accounts. Listing, creation, update and removal are
// admin operations; profile reads and edits are self-service.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, logger: logger}
}

// UserCreateInput carries fields for account creation.
type UserCreateInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Role       domain.UserRole
	Department *string
	Phone      *string
}

// UserUpdateInput carries fields for account edits. Nil means unchanged.
type UserUpdateInput struct {
	Email      *string
	FullName   *string
	Role       *domain.UserRole
	Department *string
	Phone      *string
	Active     *bool
}

// ProfileUpdateInput restricts self-service edits to contact fields.
type ProfileUpdateInput struct {
	Email      *string
	FullName   *string
	Department *string
	Phone      *string
}

// List returns accounts matching the filter.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.List(ctx, filter)
}

// ListTechnicians returns active technicians for assignment pickers.
func (s *UserService) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	return s.users.ListTechnicians(ctx)
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("usuário", nil)
		}
		return nil, err
	}
	return user, nil
}

// Create validates input, enforces username and email uniqueness and
// stores the account with a hashed password.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	details := map[string]any{}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if input.Username == "" {
		details["username"] = "obrigatório"
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		details["email"] = "email inválido"
	}
	if len(input.Password) < 8 {
		details["senha"] = "a senha deve ter pelo menos 8 caracteres"
	}
	if input.FullName == "" {
		details["nome_completo"] = "obrigatório"
	}
	if !input.Role.Valid() {
		details["tipo_usuario"] = "tipo de usuário inválido"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("dados de usuário inválidos", details)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username já está em uso", map[string]any{"username": input.Username})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email já está em uso", map[string]any{"email": input.Email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
		FullName:     input.FullName,
		Role:         input.Role,
		Department:   input.Department,
		Phone:        input.Phone,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Update applies an admin edit to an account.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperrors.NewValidationError("email inválido", nil)
		}
		if email != user.Email {
			if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID != user.ID {
				return nil, apperrors.NewConflict("email já está em uso", map[string]any{"email": email})
			} else if err != nil && err != pgx.ErrNoRows {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError("nome_completo não pode ser vazio", nil)
		}
		user.FullName = name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("tipo de usuário inválido", nil)
		}
		user.Role = *input.Role
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateProfile applies a self-service edit. Role and active flag are
// never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	return s.Update(ctx, user.ID, UserUpdateInput{
		Email:      input.Email,
		FullName:   input.FullName,
		Department: input.Department,
		Phone:      input.Phone,
	})
}

// Delete removes an account. An account referenced by tickets surfaces as
// a conflict rather than a cascade.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor.ID == id {
		return apperrors.NewValidationError("não é possível remover a própria conta", nil)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("actor_id", actor.ID))
	return nil
}
