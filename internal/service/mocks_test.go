package service

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/events"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
)

// mockTxManager runs the callback without a real transaction; repositories
// backed by func fields ignore the nil tx handle.
type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type mockTicketRepo struct {
	createFn     func(ctx context.Context, ticket *domain.Ticket) error
	updateFn     func(ctx context.Context, ticket *domain.Ticket) error
	deleteFn     func(ctx context.Context, id string) error
	getByIDFn    func(ctx context.Context, id string) (*domain.Ticket, error)
	nextNumberFn func(ctx context.Context) (string, error)
	listFn       func(ctx context.Context, filter repository.TicketFilter) ([]repository.TicketSummary, error)
}

func (m *mockTicketRepo) WithTx(tx pgx.Tx) repository.TicketRepository { return m }

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	return m.createFn(ctx, ticket)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	return m.updateFn(ctx, ticket)
}

func (m *mockTicketRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTicketRepo) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepo) ListSummaries(ctx context.Context, filter repository.TicketFilter) ([]repository.TicketSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepo) NextNumber(ctx context.Context) (string, error) {
	return m.nextNumberFn(ctx)
}

type mockUserRepo struct {
	createFn        func(ctx context.Context, user *domain.User) error
	updateFn        func(ctx context.Context, user *domain.User) error
	deleteFn        func(ctx context.Context, id string) error
	getByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	listFn          func(ctx context.Context, filter repository.UserFilter) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return m.listFn(ctx, filter)
}

func (m *mockUserRepo) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	return nil, nil
}

type mockServiceTypeRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.ServiceType, error)
	createFn  func(ctx context.Context, st *domain.ServiceType) error
	updateFn  func(ctx context.Context, st *domain.ServiceType) error
	deleteFn  func(ctx context.Context, id string) error
	listFn    func(ctx context.Context, activeOnly bool) ([]domain.ServiceType, error)
}

func (m *mockServiceTypeRepo) Create(ctx context.Context, st *domain.ServiceType) error {
	return m.createFn(ctx, st)
}

func (m *mockServiceTypeRepo) Update(ctx context.Context, st *domain.ServiceType) error {
	return m.updateFn(ctx, st)
}

func (m *mockServiceTypeRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockServiceTypeRepo) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockServiceTypeRepo) List(ctx context.Context, activeOnly bool) ([]domain.ServiceType, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activeOnly)
	}
	return nil, nil
}

type mockAttachmentRepo struct {
	createFn       func(ctx context.Context, attachment *domain.Attachment) error
	deleteFn       func(ctx context.Context, id string) error
	getByIDFn      func(ctx context.Context, id string) (*domain.Attachment, error)
	listByTicketFn func(ctx context.Context, ticketID string) ([]domain.Attachment, error)
}

func (m *mockAttachmentRepo) WithTx(tx pgx.Tx) repository.AttachmentRepository { return m }

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *domain.Attachment) error {
	return m.createFn(ctx, attachment)
}

func (m *mockAttachmentRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockAttachmentRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	if m.listByTicketFn != nil {
		return m.listByTicketFn(ctx, ticketID)
	}
	return nil, nil
}

type mockHistoryRepo struct {
	entries        []domain.HistoryEntry
	createFn       func(ctx context.Context, entry *domain.HistoryEntry) error
	listByTicketFn func(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error)
}

func (m *mockHistoryRepo) WithTx(tx pgx.Tx) repository.HistoryRepository { return m }

func (m *mockHistoryRepo) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	if m.createFn != nil {
		return m.createFn(ctx, entry)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error) {
	if m.listByTicketFn != nil {
		return m.listByTicketFn(ctx, ticketID)
	}
	return m.entries, nil
}

type mockStore struct {
	saveFn    func(ticketNumber, filename string, r io.Reader) (string, int64, error)
	deleteFn  func(key string) error
	removeFn  func(ticketNumber string) error
	openFn    func(key string) (io.ReadCloser, error)
	deleted   []string
	removedNo []string
}

func (m *mockStore) Save(ticketNumber, filename string, r io.Reader) (string, int64, error) {
	if m.saveFn != nil {
		return m.saveFn(ticketNumber, filename, r)
	}
	return "chamados/" + ticketNumber + "/anexos/" + filename, 42, nil
}

func (m *mockStore) Delete(key string) error {
	m.deleted = append(m.deleted, key)
	if m.deleteFn != nil {
		return m.deleteFn(key)
	}
	return nil
}

func (m *mockStore) RemoveTicketFiles(ticketNumber string) error {
	m.removedNo = append(m.removedNo, ticketNumber)
	if m.removeFn != nil {
		return m.removeFn(ticketNumber)
	}
	return nil
}

func (m *mockStore) Open(key string) (io.ReadCloser, error) {
	if m.openFn != nil {
		return m.openFn(key)
	}
	return nil, pgx.ErrNoRows
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
