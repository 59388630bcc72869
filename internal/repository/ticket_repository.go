package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
)

// ticketNumberLockKey is the advisory lock key serializing number assignment.
const ticketNumberLockKey = 420001

// TicketFilter captures ticket search parameters.
type TicketFilter struct {
	RequesterID   *string
	TechnicianID  *string
	ServiceTypeID *string
	Statuses      []domain.TicketStatus
	Priorities    []domain.TicketPriority
	SearchTerm    *string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// TicketSummary is the read-optimized list row: the ticket plus the names
// a listing displays, resolved in one joined query.
type TicketSummary struct {
	Ticket          domain.Ticket
	ServiceTypeName string
	RequesterName   string
	TechnicianName  *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	WithTx(tx pgx.Tx) TicketRepository
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListSummaries(ctx context.Context, filter TicketFilter) ([]TicketSummary, error)
	NextNumber(ctx context.Context) (string, error)
}

type ticketRepository struct {
	db persistence.Querier
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{db: pool}
}

func (r *ticketRepository) WithTx(tx pgx.Tx) TicketRepository {
	return &ticketRepository{db: tx}
}

const ticketColumns = `id, numero, titulo, descricao, tipo_servico_id, status, prioridade,
               equipamento, localizacao, solicitante_id, tecnico_responsavel_id,
               observacoes_tecnico, criado_em, atualizado_em, atendido_em, encerrado_em`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO chamados (numero, titulo, descricao, tipo_servico_id, status, prioridade,
            equipamento, localizacao, solicitante_id, tecnico_responsavel_id, observacoes_tecnico)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, criado_em, atualizado_em`
	return r.db.QueryRow(ctx, query,
		ticket.Number,
		ticket.Title,
		ticket.Description,
		ticket.ServiceTypeID,
		ticket.Status,
		ticket.Priority,
		ticket.Equipment,
		ticket.Location,
		ticket.RequesterID,
		ticket.TechnicianID,
		ticket.TechnicianNotes,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE chamados SET titulo=$1, descricao=$2, tipo_servico_id=$3, status=$4, prioridade=$5,
            equipamento=$6, localizacao=$7, tecnico_responsavel_id=$8, observacoes_tecnico=$9,
            atendido_em=$10, encerrado_em=$11, atualizado_em=NOW()
        WHERE id=$12
        RETURNING atualizado_em`
	return r.db.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.ServiceTypeID,
		ticket.Status,
		ticket.Priority,
		ticket.Equipment,
		ticket.Location,
		ticket.TechnicianID,
		ticket.TechnicianNotes,
		ticket.FirstResponseAt,
		ticket.ClosedAt,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM chamados WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM chamados WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM chamados WHERE numero=$1`
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.Number,
		&ticket.Title,
		&ticket.Description,
		&ticket.ServiceTypeID,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Equipment,
		&ticket.Location,
		&ticket.RequesterID,
		&ticket.TechnicianID,
		&ticket.TechnicianNotes,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.FirstResponseAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func buildTicketWhere(filter TicketFilter, table string) (string, []any) {
	prefix := ""
	if table != "" {
		prefix = table + "."
	}
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("%ssolicitante_id=$%d", prefix, len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("%stecnico_responsavel_id=$%d", prefix, len(args)))
	}
	if filter.ServiceTypeID != nil {
		args = append(args, *filter.ServiceTypeID)
		clauses = append(clauses, fmt.Sprintf("%stipo_servico_id=$%d", prefix, len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("%sstatus IN (%s)", prefix, strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("%sprioridade IN (%s)", prefix, strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("%scriado_em >= $%d", prefix, len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("%scriado_em <= $%d", prefix, len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(%[1]snumero) LIKE %[2]s OR LOWER(%[1]stitulo) LIKE %[2]s OR LOWER(%[1]sdescricao) LIKE %[2]s OR LOWER(COALESCE(%[1]sequipamento,'')) LIKE %[2]s OR LOWER(COALESCE(%[1]slocalizacao,'')) LIKE %[2]s)",
			prefix, placeholder))
	}

	return strings.Join(clauses, " AND "), args
}

func pageBounds(filter TicketFilter) (int, int) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	where, args := buildTicketWhere(filter, "")
	limit, offset := pageBounds(filter)

	query := fmt.Sprintf(`SELECT %s FROM chamados WHERE %s ORDER BY criado_em DESC LIMIT %d OFFSET %d`,
		ticketColumns, where, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListSummaries(ctx context.Context, filter TicketFilter) ([]TicketSummary, error) {
	where, args := buildTicketWhere(filter, "c")
	limit, offset := pageBounds(filter)

	query := fmt.Sprintf(`
        SELECT c.id, c.numero, c.titulo, c.descricao, c.tipo_servico_id, c.status, c.prioridade,
               c.equipamento, c.localizacao, c.solicitante_id, c.tecnico_responsavel_id,
               c.observacoes_tecnico, c.criado_em, c.atualizado_em, c.atendido_em, c.encerrado_em,
               ts.nome, sol.nome_completo, tec.nome_completo
        FROM chamados c
        JOIN tipos_servico ts ON ts.id = c.tipo_servico_id
        JOIN usuarios sol ON sol.id = c.solicitante_id
        LEFT JOIN usuarios tec ON tec.id = c.tecnico_responsavel_id
        WHERE %s ORDER BY c.criado_em DESC LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketSummary
	for rows.Next() {
		var s TicketSummary
		if err := rows.Scan(
			&s.Ticket.ID,
			&s.Ticket.Number,
			&s.Ticket.Title,
			&s.Ticket.Description,
			&s.Ticket.ServiceTypeID,
			&s.Ticket.Status,
			&s.Ticket.Priority,
			&s.Ticket.Equipment,
			&s.Ticket.Location,
			&s.Ticket.RequesterID,
			&s.Ticket.TechnicianID,
			&s.Ticket.TechnicianNotes,
			&s.Ticket.CreatedAt,
			&s.Ticket.UpdatedAt,
			&s.Ticket.FirstResponseAt,
			&s.Ticket.ClosedAt,
			&s.ServiceTypeName,
			&s.RequesterName,
			&s.TechnicianName,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// NextNumber computes the next sequential ticket number. It must run inside
// the same transaction as the insert: the advisory lock serializes
// concurrent creations so two tickets never receive the same number, and
// the unique constraint on numero is the backstop.
func (r *ticketRepository) NextNumber(ctx context.Context) (string, error) {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ticketNumberLockKey); err != nil {
		return "", fmt.Errorf("acquire number lock: %w", err)
	}

	var last *string
	err := r.db.QueryRow(ctx, `SELECT MAX(numero) FROM chamados`).Scan(&last)
	if err != nil && err != pgx.ErrNoRows {
		return "", fmt.Errorf("read max ticket number: %w", err)
	}

	next := 1
	if last != nil && *last != "" {
		if parsed, perr := strconv.Atoi(*last); perr == nil {
			next = parsed + 1
		}
	}
	return FormatTicketNumber(next), nil
}

// FormatTicketNumber renders a sequence value as the zero-padded wire form.
func FormatTicketNumber(n int) string {
	return fmt.Sprintf("%05d", n)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Number,
			&ticket.Title,
			&ticket.Description,
			&ticket.ServiceTypeID,
			&ticket.Status,
			&ticket.Priority,
			&ticket.Equipment,
			&ticket.Location,
			&ticket.RequesterID,
			&ticket.TechnicianID,
			&ticket.TechnicianNotes,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.FirstResponseAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
