package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatusValid(t *testing.T) {
	for _, status := range []TicketStatus{
		TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed, TicketStatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, TicketStatus("pendente").Valid())
	assert.False(t, TicketStatus("").Valid())
}

func TestTicketStatusLabel(t *testing.T) {
	assert.Equal(t, "Aberto", TicketStatusOpen.Label())
	assert.Equal(t, "Em Atendimento", TicketStatusInProgress.Label())
	assert.Equal(t, "Encerrado", TicketStatusClosed.Label())
	assert.Equal(t, "Cancelado", TicketStatusCancelled.Label())
}

func TestTicketPriority(t *testing.T) {
	assert.True(t, TicketPriorityUrgent.Valid())
	assert.False(t, TicketPriority("critica").Valid())
	assert.Equal(t, "Média", TicketPriorityMedium.Label())
	assert.Equal(t, "Urgente", TicketPriorityUrgent.Label())
}

func TestTicketIsResolved(t *testing.T) {
	assert.False(t, (&Ticket{Status: TicketStatusOpen}).IsResolved())
	assert.False(t, (&Ticket{Status: TicketStatusInProgress}).IsResolved())
	assert.True(t, (&Ticket{Status: TicketStatusClosed}).IsResolved())
	assert.True(t, (&Ticket{Status: TicketStatusCancelled}).IsResolved())
}
