package dto

import (
	"strings"
	"time"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. Status is not accepted from callers; new
// tickets always start OPEN.
type CreateTicketRequest struct {
	Title        string  `json:"title" validate:"required,min=5,max=200"`
	Description  string  `json:"description" validate:"required,min=10"`
	Priority     string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	CategoryID   string  `json:"category_id" validate:"required,uuid"`
	ClientID     string  `json:"client_id" validate:"required,uuid"`
	TechnicianID *string `json:"technician_id" validate:"omitempty,uuid"`
}

// Normalize trims surrounding whitespace so the length rules apply to the
// text that will actually be stored. Must run before validation.
func (r *CreateTicketRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID string `json:"technician_id" validate:"required,uuid"`
}

// TicketResponse represents a ticket in API responses.
type TicketResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	CategoryID   string                `json:"category_id"`
	ClientID     string                `json:"client_id"`
	TechnicianID *string               `json:"technician_id"`
	CreatedByID  string                `json:"created_by_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		CategoryID:   ticket.CategoryID,
		ClientID:     ticket.ClientID,
		TechnicianID: ticket.TechnicianID,
		CreatedByID:  ticket.CreatedByID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

// NewTicketResponses maps a slice of domain tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
