package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/events"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	"github.com/helpdesk-ti/chamados-service/internal/storage"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// AttachmentService manages ticket attachments: the metadata row, the
// stored payload and the history entry move together.
type AttachmentService struct {
	tx          persistence.TxManager
	tickets     repository.TicketRepository
	attachments repository.AttachmentRepository
	history     repository.HistoryRepository
	store       storage.ObjectStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AttachmentDependencies bundles collaborators for the attachment service.
type AttachmentDependencies struct {
	Tx             persistence.TxManager
	TicketRepo     repository.TicketRepository
	AttachmentRepo repository.AttachmentRepository
	HistoryRepo    repository.HistoryRepository
	Store          storage.ObjectStore
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewAttachmentService constructs the service.
func NewAttachmentService(deps AttachmentDependencies) *AttachmentService {
	return &AttachmentService{
		tx:          deps.Tx,
		tickets:     deps.TicketRepo,
		attachments: deps.AttachmentRepo,
		history:     deps.HistoryRepo,
		store:       deps.Store,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// Upload stores the payload and records metadata plus the history entry in
// one transaction. Filename, size and content type come from the inbound
// file itself, not from client-supplied metadata.
func (s *AttachmentService) Upload(ctx context.Context, actor *domain.User, ticketID, filename, contentType string, r io.Reader) (*domain.Attachment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("chamado", nil)
		}
		return nil, err
	}
	if actor.Role == domain.RoleRequester && ticket.RequesterID != actor.ID {
		return nil, apperrors.NewNotFound("chamado", nil)
	}

	key, size, err := s.store.Save(ticket.Number, filename, r)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment := &domain.Attachment{
		TicketID:     ticket.ID,
		StorageKey:   key,
		OriginalName: filename,
		SizeBytes:    size,
		ContentType:  contentType,
		UploadedByID: actor.ID,
	}

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.attachments.WithTx(tx).Create(ctx, attachment); err != nil {
			return err
		}
		entry := &domain.HistoryEntry{
			TicketID:    ticket.ID,
			Action:      domain.ActionAttachmentAdded,
			Description: fmt.Sprintf("Anexo %q adicionado", attachment.OriginalName),
			ActorID:     actor.ID,
		}
		return s.history.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		// The payload was written before the metadata; roll it back too.
		if rerr := s.store.Delete(key); rerr != nil && !os.IsNotExist(rerr) {
			s.logger.Warn("failed to remove orphaned attachment payload",
				zap.String("key", key), zap.Error(rerr))
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketAttachmentAdded,
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		Actor:        events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketAttachmentPayload{
			AttachmentID: attachment.ID,
			OriginalName: attachment.OriginalName,
			SizeBytes:    attachment.SizeBytes,
		},
	})
	return attachment, nil
}

// Delete removes the metadata row and the history entry transactionally,
// then deletes the backing payload. A payload already missing from storage
// does not fail the delete; it is logged as a recoverable anomaly so
// orphaned metadata never blocks cleanup.
func (s *AttachmentService) Delete(ctx context.Context, actor *domain.User, attachmentID string) error {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("anexo", nil)
		}
		return err
	}

	if attachment.UploadedByID != actor.ID &&
		actor.Role != domain.RoleTechnician && actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("sem permissão para deletar este anexo")
	}

	ticket, err := s.tickets.GetByID(ctx, attachment.TicketID)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		entry := &domain.HistoryEntry{
			TicketID:    attachment.TicketID,
			Action:      domain.ActionAttachmentRemoved,
			Description: fmt.Sprintf("Anexo %q removido", attachment.OriginalName),
			ActorID:     actor.ID,
		}
		if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
			return err
		}
		return s.attachments.WithTx(tx).Delete(ctx, attachment.ID)
	})
	if err != nil {
		return err
	}

	if err := s.store.Delete(attachment.StorageKey); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("attachment payload already missing",
				zap.String("key", attachment.StorageKey))
		} else {
			s.logger.Error("failed to delete attachment payload",
				zap.String("key", attachment.StorageKey), zap.Error(err))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketAttachmentRemoved,
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		Actor:        events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketAttachmentPayload{
			AttachmentID: attachment.ID,
			OriginalName: attachment.OriginalName,
			SizeBytes:    attachment.SizeBytes,
		},
	})
	return nil
}

// Open returns the stored payload of an attachment for download.
func (s *AttachmentService) Open(ctx context.Context, attachmentID string) (*domain.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("anexo", nil)
		}
		return nil, nil, err
	}
	rc, err := s.store.Open(attachment.StorageKey)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.NewNotFound("arquivo do anexo", nil)
		}
		return nil, nil, err
	}
	return attachment, rc, nil
}

func (s *AttachmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	publishWithDefaults(ctx, s.dispatcher, event)
}
