package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// AttachmentsHandler manages ticket attachment endpoints.
type AttachmentsHandler struct {
	service  *service.AttachmentService
	maxBytes int64
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService, maxBytes int64) *AttachmentsHandler {
	return &AttachmentsHandler{service: attachmentService, maxBytes: maxBytes}
}

// Upload POST /api/chamados/:id/anexos. Expects a multipart form with the
// file under "arquivo"; name, size and content type come from the part
// itself.
func (h *AttachmentsHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		return apperrors.NewValidationError("arquivo é obrigatório", nil)
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("arquivo excede o tamanho máximo de %d bytes", h.maxBytes),
			map[string]any{"tamanho": fileHeader.Size})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	attachment, err := h.service.Upload(
		c.UserContext(),
		principal.User,
		c.Params("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": attachmentResponse(attachment)})
}

// Download GET /api/anexos/:id/download.
func (h *AttachmentsHandler) Download(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("autenticação necessária")
	}

	attachment, rc, err := h.service.Open(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, attachment.ContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", attachment.OriginalName))
	return c.SendStream(rc, int(attachment.SizeBytes))
}

// Delete DELETE /api/anexos/:id.
func (h *AttachmentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	if err := h.service.Delete(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
