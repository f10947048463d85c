package dto

import (
	"time"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
)

// CreateClientRequest payload.
type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Company      string `json:"company" validate:"required,min=2,max=100"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

// UpdateClientRequest payload; omitted fields stay unchanged.
type UpdateClientRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	Company      *string `json:"company" validate:"omitempty,min=2,max=100"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClientResponse maps a domain client.
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:           client.ID,
		Name:         client.Name,
		Company:      client.Company,
		ContactEmail: client.ContactEmail,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}
