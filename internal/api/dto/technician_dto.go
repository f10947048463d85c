package dto

import (
	"time"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
)

// CreateTechnicianRequest payload.
type CreateTechnicianRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Specialty    string `json:"specialty" validate:"required,min=2,max=100"`
	Availability *bool  `json:"availability"`
}

// UpdateTechnicianRequest payload; omitted fields stay unchanged.
type UpdateTechnicianRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	Specialty    *string `json:"specialty" validate:"omitempty,min=2,max=100"`
	Availability *bool   `json:"availability"`
}

// TechnicianResponse represents a technician in API responses.
type TechnicianResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Specialty    string    `json:"specialty"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TechnicianWorkloadResponse reports current active ticket load.
type TechnicianWorkloadResponse struct {
	TechnicianID  string `json:"technician_id"`
	ActiveTickets int    `json:"active_tickets"`
	Limit         int    `json:"limit"`
}

// NewTechnicianResponse maps a domain technician.
func NewTechnicianResponse(tech *domain.Technician) TechnicianResponse {
	return TechnicianResponse{
		ID:           tech.ID,
		Name:         tech.Name,
		Specialty:    tech.Specialty,
		Availability: tech.Availability,
		CreatedAt:    tech.CreatedAt,
		UpdatedAt:    tech.UpdatedAt,
	}
}
