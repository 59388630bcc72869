package handlers

import (
	"github.com/helpdesk-ti/chamados-service/internal/api/dto"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	"github.com/helpdesk-ti/chamados-service/internal/service"
)

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		Initials: user.Initials(),
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
		Department: user.Department,
		Phone:      user.Phone,
		Active:     user.Active,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func serviceTypeResponse(st *domain.ServiceType) dto.ServiceTypeResponse {
	return dto.ServiceTypeResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		Active:      st.Active,
		CreatedAt:   st.CreatedAt,
	}
}

func ticketSummary(row *repository.TicketSummary) dto.TicketSummary {
	t := &row.Ticket
	return dto.TicketSummary{
		ID:              t.ID,
		Number:          t.Number,
		Title:           t.Title,
		ServiceType:     row.ServiceTypeName,
		Status:          t.Status,
		StatusDisplay:   t.Status.Label(),
		Priority:        t.Priority,
		PriorityDisplay: t.Priority.Label(),
		Requester:       row.RequesterName,
		Technician:      row.TechnicianName,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ticketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	t := &detail.Ticket
	resp := dto.TicketDetailResponse{
		ID:              t.ID,
		Number:          t.Number,
		Title:           t.Title,
		Description:     t.Description,
		ServiceType:     serviceTypeResponse(&detail.ServiceType),
		Status:          t.Status,
		StatusDisplay:   t.Status.Label(),
		Priority:        t.Priority,
		PriorityDisplay: t.Priority.Label(),
		Equipment:       t.Equipment,
		Location:        t.Location,
		Requester:       userSummary(&detail.Requester),
		TechnicianNotes: t.TechnicianNotes,
		Attachments:     attachmentResponses(detail.Attachments),
		History:         historyResponses(detail.History),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		FirstResponseAt: t.FirstResponseAt,
		ClosedAt:        t.ClosedAt,
	}
	if detail.Technician != nil {
		tech := userSummary(detail.Technician)
		resp.Technician = &tech
	}
	return resp
}

func attachmentResponse(att *domain.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:            att.ID,
		OriginalName:  att.OriginalName,
		SizeBytes:     att.SizeBytes,
		FormattedSize: att.FormattedSize(),
		ContentType:   att.ContentType,
		UploadedBy:    att.UploadedByID,
		CreatedAt:     att.CreatedAt,
	}
}

func attachmentResponses(attachments []domain.Attachment) []dto.AttachmentResponse {
	resp := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		resp = append(resp, attachmentResponse(&attachments[i]))
	}
	return resp
}

func historyResponses(entries []domain.HistoryEntry) []dto.HistoryResponse {
	resp := make([]dto.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.HistoryResponse{
			ID:            entry.ID,
			Action:        entry.Action,
			ActionDisplay: entry.Action.Label(),
			Description:   entry.Description,
			ActorID:       entry.ActorID,
			CreatedAt:     entry.CreatedAt,
		})
	}
	return resp
}
