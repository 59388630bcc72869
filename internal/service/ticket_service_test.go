package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/events"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

type ticketServiceFixture struct {
	service     *TicketService
	tickets     *mockTicketRepo
	users       *mockUserRepo
	types       *mockServiceTypeRepo
	attachments *mockAttachmentRepo
	history     *mockHistoryRepo
	store       *mockStore
	dispatcher  *recordingDispatcher
}

func newTicketServiceFixture() *ticketServiceFixture {
	f := &ticketServiceFixture{
		tickets:     &mockTicketRepo{},
		users:       &mockUserRepo{},
		types:       &mockServiceTypeRepo{},
		attachments: &mockAttachmentRepo{},
		history:     &mockHistoryRepo{},
		store:       &mockStore{},
		dispatcher:  &recordingDispatcher{},
	}
	f.service = NewTicketService(TicketDependencies{
		Tx:              mockTxManager{},
		TicketRepo:      f.tickets,
		ServiceTypeRepo: f.types,
		UserRepo:        f.users,
		AttachmentRepo:  f.attachments,
		HistoryRepo:     f.history,
		Store:           f.store,
		Dispatcher:      f.dispatcher,
		Logger:          zap.NewNop(),
	})
	return f
}

var (
	testServiceType = domain.ServiceType{ID: "st1", Name: "Manutenção", Active: true}
	testRequester   = domain.User{ID: "u1", Username: "ana", FullName: "Ana Souza", Role: domain.RoleRequester, Active: true}
	testTechnician  = domain.User{ID: "t1", Username: "carla", FullName: "Carla Dias", Role: domain.RoleTechnician, Active: true}
	testAdmin       = domain.User{ID: "a1", Username: "diego", FullName: "Diego Alves", Role: domain.RoleAdmin, Active: true}
)

func (f *ticketServiceFixture) stubLookups() {
	f.types.getByIDFn = func(ctx context.Context, id string) (*domain.ServiceType, error) {
		if id == testServiceType.ID {
			st := testServiceType
			return &st, nil
		}
		return nil, pgx.ErrNoRows
	}
	f.users.getByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
		switch id {
		case testRequester.ID:
			u := testRequester
			return &u, nil
		case testTechnician.ID:
			u := testTechnician
			return &u, nil
		case testAdmin.ID:
			u := testAdmin
			return &u, nil
		}
		return nil, pgx.ErrNoRows
	}
}

func TestTicketServiceCreate(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	f.tickets.nextNumberFn = func(ctx context.Context) (string, error) { return "00007", nil }
	f.tickets.createFn = func(ctx context.Context, ticket *domain.Ticket) error {
		ticket.ID = "c1"
		return nil
	}

	actor := testRequester
	detail, err := f.service.Create(context.Background(), &actor, TicketCreateInput{
		Title:         "Impressora não liga",
		Description:   "A impressora da recepção parou de funcionar",
		ServiceTypeID: testServiceType.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "00007", detail.Ticket.Number)
	assert.Equal(t, domain.TicketStatusOpen, detail.Ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, detail.Ticket.Priority, "priority defaults to media")

	require.Len(t, f.history.entries, 1, "creation writes exactly one history entry")
	assert.Equal(t, domain.ActionCreated, f.history.entries[0].Action)
	assert.Equal(t, "Chamado criado por Ana Souza", f.history.entries[0].Description)
	assert.Equal(t, actor.ID, f.history.entries[0].ActorID)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, f.dispatcher.published[0].Type)
	assert.Equal(t, "00007", f.dispatcher.published[0].TicketNumber)
}

func TestTicketServiceCreateValidation(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	actor := testRequester

	t.Run("empty title", func(t *testing.T) {
		_, err := f.service.Create(context.Background(), &actor, TicketCreateInput{
			Description:   "descrição",
			ServiceTypeID: testServiceType.ID,
		})
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("unknown service type", func(t *testing.T) {
		_, err := f.service.Create(context.Background(), &actor, TicketCreateInput{
			Title:         "título",
			Description:   "descrição",
			ServiceTypeID: "missing",
		})
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("inactive service type", func(t *testing.T) {
		f.types.getByIDFn = func(ctx context.Context, id string) (*domain.ServiceType, error) {
			return &domain.ServiceType{ID: id, Name: "Desativado", Active: false}, nil
		}
		_, err := f.service.Create(context.Background(), &actor, TicketCreateInput{
			Title:         "título",
			Description:   "descrição",
			ServiceTypeID: "st-off",
		})
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("invalid priority", func(t *testing.T) {
		f.stubLookups()
		_, err := f.service.Create(context.Background(), &actor, TicketCreateInput{
			Title:         "título",
			Description:   "descrição",
			ServiceTypeID: testServiceType.ID,
			Priority:      domain.TicketPriority("altíssima"),
		})
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})
}

func TestTicketServiceUpdateForbiddenTransition(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	stored := domain.Ticket{
		ID: "c1", Number: "00001", Title: "t", Description: "d",
		ServiceTypeID: testServiceType.ID, Status: domain.TicketStatusOpen,
		Priority: domain.TicketPriorityMedium, RequesterID: testRequester.ID,
	}
	f.tickets.getByIDFn = func(ctx context.Context, id string) (*domain.Ticket, error) {
		cp := stored
		return &cp, nil
	}
	updateCalled := false
	f.tickets.updateFn = func(ctx context.Context, ticket *domain.Ticket) error {
		updateCalled = true
		return nil
	}

	actor := testRequester
	status := domain.TicketStatusInProgress
	_, err := f.service.Update(context.Background(), &actor, "c1", TicketUpdateInput{Status: &status})

	assertDomainCode(t, err, "FORBIDDEN")
	assert.False(t, updateCalled, "forbidden transition must not touch the ticket")
	assert.Empty(t, f.history.entries, "forbidden transition must not write history")
	assert.Empty(t, f.dispatcher.published)
}

func TestTicketServiceUpdateClose(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	techID := testTechnician.ID
	stored := domain.Ticket{
		ID: "c1", Number: "00001", Title: "t", Description: "d",
		ServiceTypeID: testServiceType.ID, Status: domain.TicketStatusInProgress,
		Priority: domain.TicketPriorityHigh, RequesterID: testRequester.ID,
		TechnicianID: &techID,
	}
	f.tickets.getByIDFn = func(ctx context.Context, id string) (*domain.Ticket, error) {
		cp := stored
		return &cp, nil
	}
	var saved *domain.Ticket
	f.tickets.updateFn = func(ctx context.Context, ticket *domain.Ticket) error {
		saved = ticket
		return nil
	}

	actor := testTechnician
	status := domain.TicketStatusClosed
	detail, err := f.service.Update(context.Background(), &actor, "c1", TicketUpdateInput{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, domain.TicketStatusClosed, saved.Status)
	require.NotNil(t, saved.ClosedAt, "closing stamps encerrado_em")
	assert.Equal(t, domain.TicketStatusClosed, detail.Ticket.Status)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, domain.ActionStatusChanged, f.history.entries[0].Action)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketStatusChanged, f.dispatcher.published[0].Type)
}

func TestTicketServiceUpdateRequesterClosesOwn(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	stored := domain.Ticket{
		ID: "c1", Number: "00001", Title: "t", Description: "d",
		ServiceTypeID: testServiceType.ID, Status: domain.TicketStatusInProgress,
		Priority: domain.TicketPriorityMedium, RequesterID: testRequester.ID,
	}
	f.tickets.getByIDFn = func(ctx context.Context, id string) (*domain.Ticket, error) {
		cp := stored
		return &cp, nil
	}
	f.tickets.updateFn = func(ctx context.Context, ticket *domain.Ticket) error { return nil }

	actor := testRequester
	_, err := f.service.UpdateStatus(context.Background(), &actor, "c1", domain.TicketStatusClosed, nil)
	require.NoError(t, err)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "Chamado encerrado pelo solicitante (Ana Souza)", f.history.entries[0].Description)
}

func TestTicketServiceUpdateAssignTechnician(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	stored := domain.Ticket{
		ID: "c1", Number: "00001", Title: "t", Description: "d",
		ServiceTypeID: testServiceType.ID, Status: domain.TicketStatusOpen,
		Priority: domain.TicketPriorityMedium, RequesterID: testRequester.ID,
	}
	f.tickets.getByIDFn = func(ctx context.Context, id string) (*domain.Ticket, error) {
		cp := stored
		return &cp, nil
	}
	f.tickets.updateFn = func(ctx context.Context, ticket *domain.Ticket) error { return nil }

	actor := testAdmin

	t.Run("assigning a requester is rejected", func(t *testing.T) {
		requesterID := testRequester.ID
		_, err := f.service.Update(context.Background(), &actor, "c1",
			TicketUpdateInput{TechnicianID: &requesterID})
		assertDomainCode(t, err, "VALIDATION_FAILED")
		assert.Empty(t, f.history.entries)
	})

	t.Run("assigning a technician records history and event", func(t *testing.T) {
		techID := testTechnician.ID
		detail, err := f.service.Update(context.Background(), &actor, "c1",
			TicketUpdateInput{TechnicianID: &techID})
		require.NoError(t, err)
		require.NotNil(t, detail.Ticket.TechnicianID)

		require.Len(t, f.history.entries, 1)
		assert.Equal(t, domain.ActionTechnicianAssigned, f.history.entries[0].Action)
		assert.Equal(t, "Técnico Carla Dias atribuído ao chamado", f.history.entries[0].Description)

		require.Len(t, f.dispatcher.published, 1)
		assert.Equal(t, events.EventTicketTechnicianChanged, f.dispatcher.published[0].Type)
	})
}

func TestTicketServiceDelete(t *testing.T) {
	f := newTicketServiceFixture()
	f.stubLookups()
	stored := domain.Ticket{ID: "c1", Number: "00009", RequesterID: testRequester.ID}
	f.tickets.getByIDFn = func(ctx context.Context, id string) (*domain.Ticket, error) {
		cp := stored
		return &cp, nil
	}
	deleted := ""
	f.tickets.deleteFn = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}

	actor := testAdmin
	err := f.service.Delete(context.Background(), &actor, "c1")
	require.NoError(t, err)

	assert.Equal(t, "c1", deleted)
	assert.Equal(t, []string{"00009"}, f.store.removedNo, "stored payloads are removed with the ticket")
	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketDeleted, f.dispatcher.published[0].Type)
}

func TestTicketServiceListAssignedRequiresTechnician(t *testing.T) {
	f := newTicketServiceFixture()
	actor := testRequester
	_, err := f.service.ListAssigned(context.Background(), &actor, nil)
	assertDomainCode(t, err, "FORBIDDEN")
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}
