package worker

import (
	"context"

	"github.com/helpdesk-ti/chamados-service/internal/events"
	"github.com/helpdesk-ti/chamados-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartStatsInvalidator drops the cached dashboard counters whenever any
// ticket mutation event fires.
func StartStatsInvalidator(dispatcher events.Dispatcher, statsService *service.StatsService) {
	if dispatcher == nil || statsService == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		statsService.InvalidateAll(ctx)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketTechnicianChanged,
		events.EventTicketDeleted,
	} {
		dispatcher.Subscribe(eventType, invalidate)
	}
}
