package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/events"
)

// NotificationService reacts to ticket events. Delivery is currently a
// structured log line per event; the subscription surface is where a mail
// or webhook sender would plug in.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketTechnicianChanged, n.handleTechnicianChanged)
	n.dispatcher.Subscribe(events.EventTicketAttachmentAdded, n.handleAttachment)
	n.dispatcher.Subscribe(events.EventTicketAttachmentRemoved, n.handleAttachment)
	n.dispatcher.Subscribe(events.EventTicketDeleted, n.handleTicketDeleted)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("chamado criado",
		zap.String("numero", event.TicketNumber),
		zap.String("solicitante_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("status do chamado alterado",
		zap.String("numero", event.TicketNumber),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTechnicianChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("técnico do chamado alterado",
		zap.String("numero", event.TicketNumber),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleAttachment(ctx context.Context, event events.Event) error {
	n.logger.Info("anexo do chamado alterado",
		zap.String("numero", event.TicketNumber),
		zap.String("event_type", string(event.Type)),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("chamado removido",
		zap.String("numero", event.TicketNumber),
		zap.String("actor_id", event.Actor.UserID))
	return nil
}
