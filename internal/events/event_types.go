package events

import (
	"time"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated           EventType = "ticket_created"
	EventTicketStatusChanged     EventType = "ticket_status_changed"
	EventTicketTechnicianChanged EventType = "ticket_technician_changed"
	EventTicketAttachmentAdded   EventType = "ticket_attachment_added"
	EventTicketAttachmentRemoved EventType = "ticket_attachment_removed"
	EventTicketDeleted           EventType = "ticket_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	TicketID     string      `json:"ticket_id"`
	TicketNumber string      `json:"ticket_number"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ServiceTypeID string                `json:"service_type_id"`
	Priority      domain.TicketPriority `json:"priority"`
	Title         string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketTechnicianChangedPayload payload.
type TicketTechnicianChangedPayload struct {
	OldTechnicianID *string `json:"old_technician_id,omitempty"`
	NewTechnicianID *string `json:"new_technician_id,omitempty"`
}

// TicketAttachmentPayload payload for attachment add/remove events.
type TicketAttachmentPayload struct {
	AttachmentID string `json:"attachment_id"`
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
}
