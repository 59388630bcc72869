package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
)

// DashboardCounts aggregates the read-side dashboard numbers.
type DashboardCounts struct {
	Total      int64
	Open       int64
	InProgress int64
	Closed     int64
	// Urgent counts only unresolved urgent tickets.
	Urgent int64
	// Mine and PendingMine are role-scoped, filled per requesting subject.
	Mine        int64
	PendingMine int64
}

// StatsRepository runs the dashboard aggregation queries. Pure reads;
// no state mutation.
type StatsRepository interface {
	Overview(ctx context.Context) (DashboardCounts, error)
	CountForRequester(ctx context.Context, userID string) (mine, pending int64, err error)
	CountForTechnician(ctx context.Context, technicianID string) (mine, pending int64, err error)
}

type statsRepository struct {
	db persistence.Querier
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{db: pool}
}

func (r *statsRepository) Overview(ctx context.Context) (DashboardCounts, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status=$1),
               COUNT(*) FILTER (WHERE status=$2),
               COUNT(*) FILTER (WHERE status=$3),
               COUNT(*) FILTER (WHERE prioridade=$4 AND status IN ($1,$2))
        FROM chamados`
	var counts DashboardCounts
	err := r.db.QueryRow(ctx, query,
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusClosed,
		domain.TicketPriorityUrgent,
	).Scan(&counts.Total, &counts.Open, &counts.InProgress, &counts.Closed, &counts.Urgent)
	return counts, err
}

func (r *statsRepository) CountForRequester(ctx context.Context, userID string) (int64, int64, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status IN ($2,$3))
        FROM chamados WHERE solicitante_id=$1`
	var mine, pending int64
	err := r.db.QueryRow(ctx, query, userID,
		domain.TicketStatusOpen, domain.TicketStatusInProgress).
		Scan(&mine, &pending)
	return mine, pending, err
}

// CountForTechnician counts the union of open tickets and tickets assigned
// to the technician in a single query, so a ticket matching both arms is
// never double counted.
func (r *statsRepository) CountForTechnician(ctx context.Context, technicianID string) (int64, int64, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status IN ($2,$3))
        FROM chamados WHERE status=$2 OR tecnico_responsavel_id=$1`
	var mine, pending int64
	err := r.db.QueryRow(ctx, query, technicianID,
		domain.TicketStatusOpen, domain.TicketStatusInProgress).
		Scan(&mine, &pending)
	return mine, pending, err
}
