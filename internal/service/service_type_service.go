package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// ServiceTypeService manages the catalog tickets classify against.
type ServiceTypeService struct {
	repo   repository.ServiceTypeRepository
	logger *zap.Logger
}

// NewServiceTypeService constructs the service.
func NewServiceTypeService(repo repository.ServiceTypeRepository, logger *zap.Logger) *ServiceTypeService {
	return &ServiceTypeService{repo: repo, logger: logger}
}

// ServiceTypeInput carries fields for catalog writes.
type ServiceTypeInput struct {
	Name        string
	Description *string
	Active      *bool
}

// List returns catalog entries. Non-admin callers only see active ones.
func (s *ServiceTypeService) List(ctx context.Context, actor *domain.User) ([]domain.ServiceType, error) {
	activeOnly := actor.Role != domain.RoleAdmin
	return s.repo.List(ctx, activeOnly)
}

// Get returns a single catalog entry.
func (s *ServiceTypeService) Get(ctx context.Context, id string) (*domain.ServiceType, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("tipo de serviço", nil)
		}
		return nil, err
	}
	return st, nil
}

// Create adds a catalog entry.
func (s *ServiceTypeService) Create(ctx context.Context, input ServiceTypeInput) (*domain.ServiceType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("nome é obrigatório", nil)
	}

	st := &domain.ServiceType{Name: name, Description: input.Description, Active: true}
	if input.Active != nil {
		st.Active = *input.Active
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("service type created", zap.String("id", st.ID), zap.String("nome", st.Name))
	return st, nil
}

// Update edits a catalog entry. Deactivating a type hides it from new
// tickets without touching existing ones.
func (s *ServiceTypeService) Update(ctx context.Context, id string, input ServiceTypeInput) (*domain.ServiceType, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		st.Name = name
	}
	if input.Description != nil {
		st.Description = input.Description
	}
	if input.Active != nil {
		st.Active = *input.Active
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, apperrors.MapError(err)
	}
	return st, nil
}

// Delete removes a catalog entry. A type still referenced by tickets maps
// to a conflict; callers should deactivate instead.
func (s *ServiceTypeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.logger.Info("service type deleted", zap.String("id", id))
	return nil
}
