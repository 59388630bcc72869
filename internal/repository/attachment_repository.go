package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
)

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	WithTx(tx pgx.Tx) AttachmentRepository
	Create(ctx context.Context, attachment *domain.Attachment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	db persistence.Querier
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{db: pool}
}

func (r *attachmentRepository) WithTx(tx pgx.Tx) AttachmentRepository {
	return &attachmentRepository{db: tx}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO anexos_chamados (chamado_id, storage_key, nome_original, tamanho, tipo_arquivo, enviado_por_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, criado_em`
	return r.db.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.StorageKey,
		attachment.OriginalName,
		attachment.SizeBytes,
		attachment.ContentType,
		attachment.UploadedByID,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM anexos_chamados WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	const query = `
        SELECT id, chamado_id, storage_key, nome_original, tamanho, tipo_arquivo, enviado_por_id, criado_em
        FROM anexos_chamados WHERE id=$1`
	var att domain.Attachment
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&att.ID,
		&att.TicketID,
		&att.StorageKey,
		&att.OriginalName,
		&att.SizeBytes,
		&att.ContentType,
		&att.UploadedByID,
		&att.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	const query = `
        SELECT id, chamado_id, storage_key, nome_original, tamanho, tipo_arquivo, enviado_por_id, criado_em
        FROM anexos_chamados WHERE chamado_id=$1 ORDER BY criado_em DESC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.TicketID,
			&att.StorageKey,
			&att.OriginalName,
			&att.SizeBytes,
			&att.ContentType,
			&att.UploadedByID,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
