package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
)

// ServiceTypeRepository manages the service-type reference catalog.
type ServiceTypeRepository interface {
	Create(ctx context.Context, st *domain.ServiceType) error
	Update(ctx context.Context, st *domain.ServiceType) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ServiceType, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ServiceType, error)
}

type serviceTypeRepository struct {
	db persistence.Querier
}

// NewServiceTypeRepository instantiates repository.
func NewServiceTypeRepository(pool *pgxpool.Pool) ServiceTypeRepository {
	return &serviceTypeRepository{db: pool}
}

func (r *serviceTypeRepository) Create(ctx context.Context, st *domain.ServiceType) error {
	const query = `
        INSERT INTO tipos_servico (nome, descricao, ativo)
        VALUES ($1,$2,$3)
        RETURNING id, criado_em`
	return r.db.QueryRow(ctx, query, st.Name, st.Description, st.Active).
		Scan(&st.ID, &st.CreatedAt)
}

func (r *serviceTypeRepository) Update(ctx context.Context, st *domain.ServiceType) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE tipos_servico SET nome=$1, descricao=$2, ativo=$3 WHERE id=$4`,
		st.Name, st.Description, st.Active, st.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the row. The foreign key from chamados is RESTRICT, so a
// referenced type fails with a constraint violation the service maps to a
// conflict error.
func (r *serviceTypeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tipos_servico WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceTypeRepository) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	const query = `SELECT id, nome, descricao, ativo, criado_em FROM tipos_servico WHERE id=$1`
	var st domain.ServiceType
	if err := r.db.QueryRow(ctx, query, id).
		Scan(&st.ID, &st.Name, &st.Description, &st.Active, &st.CreatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *serviceTypeRepository) List(ctx context.Context, activeOnly bool) ([]domain.ServiceType, error) {
	query := `SELECT id, nome, descricao, ativo, criado_em FROM tipos_servico`
	if activeOnly {
		query += ` WHERE ativo=TRUE`
	}
	query += ` ORDER BY nome ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceType
	for rows.Next() {
		var st domain.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &st.Active, &st.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}
