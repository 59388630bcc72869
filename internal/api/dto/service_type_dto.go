package dto

import "time"

// ServiceTypeRequest payload for catalog writes.
type ServiceTypeRequest struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
	Active      *bool   `json:"ativo"`
}

// ServiceTypeResponse is the catalog entry view.
type ServiceTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Description *string   `json:"descricao"`
	Active      bool      `json:"ativo"`
	CreatedAt   time.Time `json:"criado_em"`
}
