package dto

import (
	"time"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Password   string          `json:"senha"`
	FullName   string          `json:"nome_completo"`
	Role       domain.UserRole `json:"tipo_usuario"`
	Department *string         `json:"departamento"`
	Phone      *string         `json:"telefone"`
}

// UpdateUserRequest payload for admin account edits. Absent fields stay
// unchanged.
type UpdateUserRequest struct {
	Email      *string          `json:"email"`
	FullName   *string          `json:"nome_completo"`
	Role       *domain.UserRole `json:"tipo_usuario"`
	Department *string          `json:"departamento"`
	Phone      *string          `json:"telefone"`
	Active     *bool            `json:"ativo"`
}

// UpdateProfileRequest payload for self-service edits.
type UpdateProfileRequest struct {
	Email      *string `json:"email"`
	FullName   *string `json:"nome_completo"`
	Department *string `json:"departamento"`
	Phone      *string `json:"telefone"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword      string `json:"senha_atual"`
	NewPassword          string `json:"nova_senha"`
	NewPasswordConfirmed string `json:"confirmacao_senha"`
}

// UserSummary is the compact account view embedded in ticket responses.
type UserSummary struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	FullName string          `json:"nome_completo"`
	Role     domain.UserRole `json:"tipo_usuario"`
	Initials string          `json:"iniciais"`
}

// UserResponse is the full account view.
type UserResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	FullName   string          `json:"nome_completo"`
	Role       domain.UserRole `json:"tipo_usuario"`
	Department *string         `json:"departamento"`
	Phone      *string         `json:"telefone"`
	Active     bool            `json:"ativo"`
	CreatedAt  time.Time       `json:"criado_em"`
	UpdatedAt  time.Time       `json:"atualizado_em"`
}
