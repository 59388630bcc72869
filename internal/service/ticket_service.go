package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/events"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	"github.com/helpdesk-ti/chamados-service/internal/storage"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// TicketService coordinates the ticket lifecycle: creation with number
// assignment, role-gated status transitions, technician assignment and the
// audit trail. Every mutation and its history entries commit in one
// transaction.
type TicketService struct {
	tx           persistence.TxManager
	tickets      repository.TicketRepository
	serviceTypes repository.ServiceTypeRepository
	users        repository.UserRepository
	attachments  repository.AttachmentRepository
	history      repository.HistoryRepository
	store        storage.ObjectStore
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Tx              persistence.TxManager
	TicketRepo      repository.TicketRepository
	ServiceTypeRepo repository.ServiceTypeRepository
	UserRepo        repository.UserRepository
	AttachmentRepo  repository.AttachmentRepository
	HistoryRepo     repository.HistoryRepository
	Store           storage.ObjectStore
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tx:           deps.Tx,
		tickets:      deps.TicketRepo,
		serviceTypes: deps.ServiceTypeRepo,
		users:        deps.UserRepo,
		attachments:  deps.AttachmentRepo,
		history:      deps.HistoryRepo,
		store:        deps.Store,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title         string
	Description   string
	ServiceTypeID string
	Priority      domain.TicketPriority
	Equipment     *string
	Location      *string
}

// TicketUpdateInput describes a partial update. Nil fields are unchanged;
// RemoveTechnician clears the assignment.
type TicketUpdateInput struct {
	Title            *string
	Description      *string
	ServiceTypeID    *string
	Status           *domain.TicketStatus
	Priority         *domain.TicketPriority
	Equipment        *string
	Location         *string
	TechnicianID     *string
	RemoveTechnician bool
	TechnicianNotes  *string
}

// TicketDetail is the enriched read representation of a single ticket.
type TicketDetail struct {
	Ticket      domain.Ticket
	ServiceType domain.ServiceType
	Requester   domain.User
	Technician  *domain.User
	Attachments []domain.Attachment
	History     []domain.HistoryEntry
}

// Create opens a new ticket for the acting user. Number assignment and the
// "criado" history entry share the insert transaction.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*TicketDetail, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("titulo e descricao são obrigatórios", nil)
	}

	serviceType, err := s.serviceTypes.GetByID(ctx, input.ServiceTypeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("tipo de serviço inválido",
				map[string]any{"tipo_servico": input.ServiceTypeID})
		}
		return nil, err
	}
	if !serviceType.Active {
		return nil, apperrors.NewValidationError("tipo de serviço inativo",
			map[string]any{"tipo_servico": serviceType.Name})
	}

	ticket := &domain.Ticket{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		ServiceTypeID: serviceType.ID,
		Status:        domain.TicketStatusOpen,
		Priority:      input.Priority,
		Equipment:     input.Equipment,
		Location:      input.Location,
		RequesterID:   actor.ID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if !ticket.Priority.Valid() {
		return nil, apperrors.NewValidationError("prioridade inválida",
			map[string]any{"prioridade": string(ticket.Priority)})
	}

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		tickets := s.tickets.WithTx(tx)
		number, err := tickets.NextNumber(ctx)
		if err != nil {
			return err
		}
		ticket.Number = number
		if err := tickets.Create(ctx, ticket); err != nil {
			return err
		}
		entry := &domain.HistoryEntry{
			TicketID:    ticket.ID,
			Action:      domain.ActionCreated,
			Description: fmt.Sprintf("Chamado criado por %s", actor.FullName),
			ActorID:     actor.ID,
		}
		return s.history.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCreated,
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		Actor:        events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketCreatedPayload{
			ServiceTypeID: ticket.ServiceTypeID,
			Priority:      ticket.Priority,
			Title:         ticket.Title,
		},
	})
	return s.detail(ctx, ticket)
}

// Get returns the detailed representation of a ticket.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("chamado", nil)
		}
		return nil, err
	}
	return s.detail(ctx, ticket)
}

// Update applies a partial update to the ticket: status transitions are
// role-gated via the policy table, lifecycle timestamps are stamped once,
// and every observed change appends a history entry in the same
// transaction as the update itself.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, ticketID string, input TicketUpdateInput) (*TicketDetail, error) {
	old, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("chamado", nil)
		}
		return nil, err
	}

	updated := *old
	applyUpdateInput(&updated, input)

	if updated.Status != old.Status {
		if !updated.Status.Valid() {
			return nil, apperrors.NewValidationError("status inválido",
				map[string]any{"status": string(updated.Status)})
		}
		if !canTransition(actor, old, updated.Status) {
			return nil, apperrors.NewForbidden(
				fmt.Sprintf("sem permissão para alterar o status para %s", updated.Status))
		}
	}
	if updated.Priority != old.Priority && !updated.Priority.Valid() {
		return nil, apperrors.NewValidationError("prioridade inválida",
			map[string]any{"prioridade": string(updated.Priority)})
	}
	if updated.ServiceTypeID != old.ServiceTypeID {
		if _, err := s.serviceTypes.GetByID(ctx, updated.ServiceTypeID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("tipo de serviço inválido", nil)
			}
			return nil, err
		}
	}

	var newTechnician *domain.User
	if updated.TechnicianID != nil && !equalPtr(old.TechnicianID, updated.TechnicianID) {
		newTechnician, err = s.validateTechnician(ctx, *updated.TechnicianID)
		if err != nil {
			return nil, err
		}
	}

	applyLifecycleTimestamps(old, &updated, time.Now())
	changes := diffTicketChanges(old, &updated, actor, newTechnician)

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.tickets.WithTx(tx).Update(ctx, &updated); err != nil {
			return err
		}
		history := s.history.WithTx(tx)
		for i := range changes {
			if err := history.Create(ctx, &changes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdateEvents(ctx, actor, old, &updated)
	return s.detail(ctx, &updated)
}

// UpdateStatus is the patch-only status endpoint: it changes status and,
// optionally, the technician notes, nothing else.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus, notes *string) (*TicketDetail, error) {
	return s.Update(ctx, actor, ticketID, TicketUpdateInput{
		Status:          &newStatus,
		TechnicianNotes: notes,
	})
}

// Delete removes the ticket; attachments and history cascade with it and
// stored payloads are cleaned up afterwards.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("chamado", nil)
		}
		return err
	}

	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		return err
	}

	if err := s.store.RemoveTicketFiles(ticket.Number); err != nil {
		s.logger.Warn("failed to remove ticket files",
			zap.String("numero", ticket.Number), zap.Error(err))
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketDeleted,
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		Actor:        events.Actor{UserID: actor.ID, Role: actor.Role},
	})
	return nil
}

// TicketListFilter mirrors the repository filter at the service boundary.
type TicketListFilter = repository.TicketFilter

// List returns summary rows matching the filter.
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]repository.TicketSummary, error) {
	return s.tickets.ListSummaries(ctx, filter)
}

// ListMine returns tickets opened by the acting user.
func (s *TicketService) ListMine(ctx context.Context, actor *domain.User, statuses []domain.TicketStatus) ([]repository.TicketSummary, error) {
	return s.tickets.ListSummaries(ctx, repository.TicketFilter{
		RequesterID: &actor.ID,
		Statuses:    statuses,
	})
}

// ListAssigned returns tickets assigned to the acting technician.
func (s *TicketService) ListAssigned(ctx context.Context, actor *domain.User, statuses []domain.TicketStatus) ([]repository.TicketSummary, error) {
	if actor.Role != domain.RoleTechnician {
		return nil, apperrors.NewForbidden("apenas técnicos podem acessar esta funcionalidade")
	}
	return s.tickets.ListSummaries(ctx, repository.TicketFilter{
		TechnicianID: &actor.ID,
		Statuses:     statuses,
	})
}

// History returns the audit trail of a ticket, newest first.
func (s *TicketService) History(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("chamado", nil)
		}
		return nil, err
	}
	return s.history.ListByTicket(ctx, ticketID)
}

func (s *TicketService) validateTechnician(ctx context.Context, technicianID string) (*domain.User, error) {
	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("técnico não encontrado",
				map[string]any{"tecnico_responsavel": technicianID})
		}
		return nil, err
	}
	if !technician.IsTechnician() {
		return nil, apperrors.NewValidationError("o usuário selecionado não é um técnico",
			map[string]any{"tecnico_responsavel": technician.Username})
	}
	if !technician.Active {
		return nil, apperrors.NewValidationError("técnico inativo",
			map[string]any{"tecnico_responsavel": technician.Username})
	}
	return technician, nil
}

func (s *TicketService) detail(ctx context.Context, ticket *domain.Ticket) (*TicketDetail, error) {
	serviceType, err := s.serviceTypes.GetByID(ctx, ticket.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	requester, err := s.users.GetByID(ctx, ticket.RequesterID)
	if err != nil {
		return nil, err
	}
	var technician *domain.User
	if ticket.TechnicianID != nil {
		technician, err = s.users.GetByID(ctx, *ticket.TechnicianID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	history, err := s.history.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	return &TicketDetail{
		Ticket:      *ticket,
		ServiceType: *serviceType,
		Requester:   *requester,
		Technician:  technician,
		Attachments: attachments,
		History:     history,
	}, nil
}

func applyUpdateInput(ticket *domain.Ticket, input TicketUpdateInput) {
	if input.Title != nil {
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.ServiceTypeID != nil {
		ticket.ServiceTypeID = *input.ServiceTypeID
	}
	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.Equipment != nil {
		ticket.Equipment = input.Equipment
	}
	if input.Location != nil {
		ticket.Location = input.Location
	}
	if input.RemoveTechnician {
		ticket.TechnicianID = nil
	} else if input.TechnicianID != nil {
		ticket.TechnicianID = input.TechnicianID
	}
	if input.TechnicianNotes != nil {
		ticket.TechnicianNotes = input.TechnicianNotes
	}
}

func (s *TicketService) publishUpdateEvents(ctx context.Context, actor *domain.User, old, updated *domain.Ticket) {
	if old.Status != updated.Status {
		s.publishEvent(ctx, events.Event{
			Type:         events.EventTicketStatusChanged,
			TicketID:     updated.ID,
			TicketNumber: updated.Number,
			Actor:        events.Actor{UserID: actor.ID, Role: actor.Role},
			Payload: events.TicketStatusChangedPayload{
				OldStatus: old.Status,
				NewStatus: updated.Status,
			},
		})
	}
	if !equalPtr(old.TechnicianID, updated.TechnicianID) {
		s.publishEvent(ctx, events.Event{
			Type:         events.EventTicketTechnicianChanged,
			TicketID:     updated.ID,
			TicketNumber: updated.Number,
			Actor:        events.Actor{UserID: actor.ID, Role: actor.Role},
			Payload: events.TicketTechnicianChangedPayload{
				OldTechnicianID: old.TechnicianID,
				NewTechnicianID: updated.TechnicianID,
			},
		})
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	publishWithDefaults(ctx, s.dispatcher, event)
}

func publishWithDefaults(ctx context.Context, d events.Dispatcher, event events.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = d.Publish(ctx, event)
}
