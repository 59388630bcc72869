package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventTicketCreated, TicketNumber: "00001"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "00001", received[0].TicketNumber)
}

func TestDispatcherIgnoresUnrelatedEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventTicketDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.False(t, called)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var order []string
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		order = append(order, "first")
		return errors.New("handler failed")
	})
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged})
	assert.EqualError(t, err, "handler failed")
	assert.Equal(t, []string{"first", "second"}, order)
}
