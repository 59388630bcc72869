package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "aberto"
	TicketStatusInProgress TicketStatus = "em_atendimento"
	TicketStatusClosed     TicketStatus = "encerrado"
	TicketStatusCancelled  TicketStatus = "cancelado"
)

// Valid reports whether the status is a known value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed, TicketStatusCancelled:
		return true
	}
	return false
}

// Label returns the human-readable label used in history descriptions.
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusOpen:
		return "Aberto"
	case TicketStatusInProgress:
		return "Em Atendimento"
	case TicketStatusClosed:
		return "Encerrado"
	case TicketStatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "baixa"
	TicketPriorityMedium TicketPriority = "media"
	TicketPriorityHigh   TicketPriority = "alta"
	TicketPriorityUrgent TicketPriority = "urgente"
)

// Label returns the human-readable label for the priority.
func (p TicketPriority) Label() string {
	switch p {
	case TicketPriorityLow:
		return "Baixa"
	case TicketPriorityMedium:
		return "Média"
	case TicketPriorityHigh:
		return "Alta"
	case TicketPriorityUrgent:
		return "Urgente"
	}
	return string(p)
}

// Valid reports whether the priority is a known value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for helpdesk service requests. Number is assigned
// once at creation and never reused; RequesterID is immutable after creation.
type Ticket struct {
	ID              string
	Number          string
	Title           string
	Description     string
	ServiceTypeID   string
	Status          TicketStatus
	Priority        TicketPriority
	Equipment       *string
	Location        *string
	RequesterID     string
	TechnicianID    *string
	TechnicianNotes *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	FirstResponseAt *time.Time
	ClosedAt        *time.Time
}

// IsResolved reports whether the ticket reached a terminal state.
func (t *Ticket) IsResolved() bool {
	return t.Status == TicketStatusClosed || t.Status == TicketStatusCancelled
}
