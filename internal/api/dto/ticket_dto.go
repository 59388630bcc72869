package dto

import (
	"time"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title         string                `json:"titulo"`
	Description   string                `json:"descricao"`
	ServiceTypeID string                `json:"tipo_servico"`
	Priority      domain.TicketPriority `json:"prioridade"`
	Equipment     *string               `json:"equipamento"`
	Location      *string               `json:"localizacao"`
}

// UpdateTicketRequest payload. Absent fields stay unchanged; sending
// "tecnico_responsavel": null clears the assignment, which is why the
// field tracks presence separately.
type UpdateTicketRequest struct {
	Title           *string                `json:"titulo"`
	Description     *string                `json:"descricao"`
	ServiceTypeID   *string                `json:"tipo_servico"`
	Status          *domain.TicketStatus   `json:"status"`
	Priority        *domain.TicketPriority `json:"prioridade"`
	Equipment       *string                `json:"equipamento"`
	Location        *string                `json:"localizacao"`
	TechnicianID    *string                `json:"tecnico_responsavel"`
	TechnicianNotes *string                `json:"observacoes_tecnico"`
}

// UpdateStatusRequest payload for the status-only patch endpoint.
type UpdateStatusRequest struct {
	Status          domain.TicketStatus `json:"status"`
	TechnicianNotes *string             `json:"observacoes_tecnico"`
}

// TicketSummary is the list-row response.
type TicketSummary struct {
	ID              string                `json:"id"`
	Number          string                `json:"numero"`
	Title           string                `json:"titulo"`
	ServiceType     string                `json:"tipo_servico"`
	Status          domain.TicketStatus   `json:"status"`
	StatusDisplay   string                `json:"status_display"`
	Priority        domain.TicketPriority `json:"prioridade"`
	PriorityDisplay string                `json:"prioridade_display"`
	Requester       string                `json:"solicitante"`
	Technician      *string               `json:"tecnico_responsavel"`
	CreatedAt       time.Time             `json:"criado_em"`
	UpdatedAt       time.Time             `json:"atualizado_em"`
}

// TicketDetailResponse provides the full ticket view.
type TicketDetailResponse struct {
	ID              string                `json:"id"`
	Number          string                `json:"numero"`
	Title           string                `json:"titulo"`
	Description     string                `json:"descricao"`
	ServiceType     ServiceTypeResponse   `json:"tipo_servico"`
	Status          domain.TicketStatus   `json:"status"`
	StatusDisplay   string                `json:"status_display"`
	Priority        domain.TicketPriority `json:"prioridade"`
	PriorityDisplay string                `json:"prioridade_display"`
	Equipment       *string               `json:"equipamento"`
	Location        *string               `json:"localizacao"`
	Requester       UserSummary           `json:"solicitante"`
	Technician      *UserSummary          `json:"tecnico_responsavel"`
	TechnicianNotes *string               `json:"observacoes_tecnico"`
	Attachments     []AttachmentResponse  `json:"anexos"`
	History         []HistoryResponse     `json:"historico"`
	CreatedAt       time.Time             `json:"criado_em"`
	UpdatedAt       time.Time             `json:"atualizado_em"`
	FirstResponseAt *time.Time            `json:"atendido_em"`
	ClosedAt        *time.Time            `json:"encerrado_em"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID            string    `json:"id"`
	OriginalName  string    `json:"nome_original"`
	SizeBytes     int64     `json:"tamanho"`
	FormattedSize string    `json:"tamanho_formatado"`
	ContentType   string    `json:"tipo_conteudo"`
	UploadedBy    string    `json:"enviado_por"`
	CreatedAt     time.Time `json:"criado_em"`
}

// HistoryResponse is one audit-trail entry.
type HistoryResponse struct {
	ID            string               `json:"id"`
	Action        domain.HistoryAction `json:"acao"`
	ActionDisplay string               `json:"acao_display"`
	Description   string               `json:"descricao"`
	ActorID       string               `json:"usuario_id"`
	CreatedAt     time.Time            `json:"criado_em"`
}
