package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
)

// HistoryRepository stores the append-only audit trail. There is no update
// or delete: entries are immutable once written.
type HistoryRepository interface {
	WithTx(tx pgx.Tx) HistoryRepository
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	db persistence.Querier
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{db: pool}
}

func (r *historyRepository) WithTx(tx pgx.Tx) HistoryRepository {
	return &historyRepository{db: tx}
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	const query = `
        INSERT INTO historico_chamados (chamado_id, tipo_acao, descricao, usuario_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, criado_em`
	return r.db.QueryRow(ctx, query,
		entry.TicketID,
		entry.Action,
		entry.Description,
		entry.ActorID,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *historyRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error) {
	const query = `
        SELECT id, chamado_id, tipo_acao, descricao, usuario_id, criado_em
        FROM historico_chamados WHERE chamado_id=$1 ORDER BY criado_em DESC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.Action,
			&entry.Description,
			&entry.ActorID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
