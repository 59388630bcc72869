package service

import (
	"fmt"
	"time"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

// transitionPolicy is the single authorization table for status changes:
// target status -> roles allowed to request it. A requester entry only
// applies when the actor is the ticket's own requester. Statuses absent
// from the table are not gated.
var transitionPolicy = map[domain.TicketStatus][]domain.UserRole{
	domain.TicketStatusInProgress: {domain.RoleTechnician, domain.RoleAdmin},
	domain.TicketStatusCancelled:  {domain.RoleTechnician, domain.RoleAdmin},
	domain.TicketStatusClosed:     {domain.RoleRequester, domain.RoleTechnician, domain.RoleAdmin},
}

// canTransition consults the policy table for the requested transition.
func canTransition(actor *domain.User, ticket *domain.Ticket, next domain.TicketStatus) bool {
	roles, gated := transitionPolicy[next]
	if !gated {
		return true
	}
	for _, role := range roles {
		if actor.Role != role {
			continue
		}
		if role == domain.RoleRequester && ticket.RequesterID != actor.ID {
			continue
		}
		return true
	}
	return false
}

// applyLifecycleTimestamps stamps atendido_em/encerrado_em on the first
// transition into the corresponding status. A timestamp, once set, is
// never overwritten by a later transition into the same state.
func applyLifecycleTimestamps(old, updated *domain.Ticket, now time.Time) {
	if updated.Status == domain.TicketStatusInProgress &&
		old.Status != domain.TicketStatusInProgress &&
		updated.FirstResponseAt == nil {
		updated.FirstResponseAt = &now
	}
	if updated.Status == domain.TicketStatusClosed &&
		old.Status != domain.TicketStatusClosed &&
		updated.ClosedAt == nil {
		updated.ClosedAt = &now
	}
}

// diffTicketChanges compares the previous and new ticket snapshots and
// produces the history entries to append, decoupling what happened from
// how it is persisted. newTechnician must be the loaded user when the
// assignment changed to a non-nil technician.
func diffTicketChanges(old, updated *domain.Ticket, actor *domain.User, newTechnician *domain.User) []domain.HistoryEntry {
	var entries []domain.HistoryEntry

	if old.Status != updated.Status {
		var description string
		if actor.ID == updated.RequesterID && updated.Status == domain.TicketStatusClosed {
			description = fmt.Sprintf("Chamado encerrado pelo solicitante (%s)", actor.FullName)
		} else {
			description = fmt.Sprintf("Status alterado de %q para %q por %s",
				old.Status.Label(), updated.Status.Label(), actor.FullName)
		}
		entries = append(entries, domain.HistoryEntry{
			TicketID:    updated.ID,
			Action:      domain.ActionStatusChanged,
			Description: description,
			ActorID:     actor.ID,
		})
	}

	if !equalPtr(old.TechnicianID, updated.TechnicianID) {
		if updated.TechnicianID != nil {
			name := *updated.TechnicianID
			if newTechnician != nil {
				name = newTechnician.FullName
			}
			entries = append(entries, domain.HistoryEntry{
				TicketID:    updated.ID,
				Action:      domain.ActionTechnicianAssigned,
				Description: fmt.Sprintf("Técnico %s atribuído ao chamado", name),
				ActorID:     actor.ID,
			})
		} else {
			entries = append(entries, domain.HistoryEntry{
				TicketID:    updated.ID,
				Action:      domain.ActionTechnicianRemoved,
				Description: "Técnico removido do chamado",
				ActorID:     actor.ID,
			})
		}
	}

	if noteAdded(old.TechnicianNotes, updated.TechnicianNotes) {
		entries = append(entries, domain.HistoryEntry{
			TicketID:    updated.ID,
			Action:      domain.ActionNoteAdded,
			Description: fmt.Sprintf("Observação adicionada por %s", actor.FullName),
			ActorID:     actor.ID,
		})
	}

	return entries
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func noteAdded(old, updated *string) bool {
	if updated == nil || *updated == "" {
		return false
	}
	return old == nil || *old != *updated
}
