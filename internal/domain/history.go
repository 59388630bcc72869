package domain

import "time"

// HistoryAction captures what kind of action a history entry records.
type HistoryAction string

const (
	ActionCreated            HistoryAction = "criado"
	ActionStatusChanged      HistoryAction = "status_alterado"
	ActionTechnicianAssigned HistoryAction = "tecnico_atribuido"
	ActionTechnicianRemoved  HistoryAction = "tecnico_removido"
	ActionNoteAdded          HistoryAction = "observacao_adicionada"
	ActionAttachmentAdded    HistoryAction = "anexo_adicionado"
	ActionAttachmentRemoved  HistoryAction = "anexo_removido"
)

// Label returns the display label for the action.
func (a HistoryAction) Label() string {
	switch a {
	case ActionCreated:
		return "Chamado Criado"
	case ActionStatusChanged:
		return "Status Alterado"
	case ActionTechnicianAssigned:
		return "Técnico Atribuído"
	case ActionTechnicianRemoved:
		return "Técnico Removido"
	case ActionNoteAdded:
		return "Observação Adicionada"
	case ActionAttachmentAdded:
		return "Anexo Adicionado"
	case ActionAttachmentRemoved:
		return "Anexo Removido"
	}
	return string(a)
}

// HistoryEntry is an immutable audit record of one action taken on a
// ticket. Entries are append-only: never updated or deleted while the
// ticket exists.
type HistoryEntry struct {
	ID          string
	TicketID    string
	Action      HistoryAction
	Description string
	ActorID     string
	CreatedAt   time.Time
}
