package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/events"
	"github.com/techhelpdesk/helpdesk-service/internal/repository"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// TicketService orchestrates the ticket lifecycle: creation, status
// transitions, assignment and removal. It holds no state across calls; every
// operation is a fresh fetch-validate-mutate-persist cycle.
type TicketService struct {
	tickets     repository.TicketRepository
	categories  repository.CategoryRepository
	clients     repository.ClientRepository
	technicians repository.TechnicianRepository
	assignment  *AssignmentService
	workload    WorkloadCache
	dispatcher  events.Dispatcher
	locks       *keyMutex
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CategoryRepo   repository.CategoryRepository
	ClientRepo     repository.ClientRepository
	TechnicianRepo repository.TechnicianRepository
	Assignment     *AssignmentService
	WorkloadCache  WorkloadCache
	Dispatcher     events.Dispatcher
}

// TicketCreateInput describes ticket creation payload. Any caller-supplied
// status is ignored; new tickets always start OPEN.
type TicketCreateInput struct {
	Title        string
	Description  string
	Priority     domain.TicketPriority
	CategoryID   string
	ClientID     string
	TechnicianID *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		categories:  deps.CategoryRepo,
		clients:     deps.ClientRepo,
		technicians: deps.TechnicianRepo,
		assignment:  deps.Assignment,
		workload:    deps.WorkloadCache,
		dispatcher:  deps.Dispatcher,
		locks:       newKeyMutex(),
	}
}

// CreateTicket validates references in order (category, client, technician)
// and persists a new OPEN ticket for the creator.
func (s *TicketService) CreateTicket(ctx context.Context, creatorID string, input TicketCreateInput) (*domain.Ticket, error) {
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{
			"priority": "must be one of: LOW MEDIUM HIGH CRITICAL",
		})
	}
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Status:       domain.TicketStatusOpen,
		Priority:     input.Priority,
		CategoryID:   input.CategoryID,
		ClientID:     input.ClientID,
		TechnicianID: input.TechnicianID,
		CreatedByID:  creatorID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if input.TechnicianID != nil {
		techID := *input.TechnicianID
		s.locks.Lock(technicianKey(techID))
		defer s.locks.Unlock(technicianKey(techID))

		if err := s.assignment.CheckCapacity(ctx, techID); err != nil {
			return nil, err
		}
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.invalidateWorkload(ctx, techID)
	} else {
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  creatorID,
		Payload: events.TicketCreatedPayload{
			CategoryID:   ticket.CategoryID,
			ClientID:     ticket.ClientID,
			TechnicianID: ticket.TechnicianID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListAllTickets returns every ticket, most recent first.
func (s *TicketService) ListAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListByClient returns a client's tickets ordered by creation time descending.
func (s *TicketService) ListByClient(ctx context.Context, clientID string) ([]domain.Ticket, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": clientID})
		}
		return nil, apperrors.MapError(err)
	}
	tickets, err := s.tickets.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListByTechnician returns a technician's tickets ordered by creation time
// descending.
func (s *TicketService) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error) {
	if _, err := s.technicians.GetByID(ctx, technicianID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	tickets, err := s.tickets.ListByTechnician(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ChangeStatus moves a ticket to the requested status if it is the single
// allowed successor of the current one. Transitions on the same ticket are
// serialized so concurrent requests cannot both commit.
func (s *TicketService) ChangeStatus(ctx context.Context, actorID, ticketID string, requested domain.TicketStatus) (*domain.Ticket, error) {
	s.locks.Lock(ticketKey(ticketID))
	defer s.locks.Unlock(ticketKey(ticketID))

	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(ticket.Status, requested) {
		return nil, apperrors.NewInvalidTransition(string(ticket.Status), string(requested))
	}

	oldStatus := ticket.Status
	ticket.Status = requested
	if err := s.tickets.UpdateStatus(ctx, ticket.ID, requested); err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.TechnicianID != nil {
		s.invalidateWorkload(ctx, *ticket.TechnicianID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: requested,
		},
	})
	return ticket, nil
}

// ReassignTicket assigns the ticket to a technician, subject to the workload
// cap.
func (s *TicketService) ReassignTicket(ctx context.Context, actorID, ticketID, technicianID string) (*domain.Ticket, error) {
	s.locks.Lock(technicianKey(technicianID))
	defer s.locks.Unlock(technicianKey(technicianID))

	if err := s.assignment.CheckCapacity(ctx, technicianID); err != nil {
		return nil, err
	}

	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldTechnician := ticket.TechnicianID
	ticket.TechnicianID = &technicianID
	if err := s.tickets.UpdateAssignment(ctx, ticket.ID, &technicianID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateWorkload(ctx, technicianID)
	if oldTechnician != nil {
		s.invalidateWorkload(ctx, *oldTechnician)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload:  events.TicketAssignedPayload{TechnicianID: technicianID},
	})
	return ticket, nil
}

// DeleteTicket removes a ticket unconditionally after an existence check.
// Deletion bypasses the state machine.
func (s *TicketService) DeleteTicket(ctx context.Context, actorID, ticketID string) error {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return apperrors.MapError(err)
	}
	if ticket.TechnicianID != nil {
		s.invalidateWorkload(ctx, *ticket.TechnicianID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload:  events.TicketDeletedPayload{Status: ticket.Status},
	})
	return nil
}

func (s *TicketService) invalidateWorkload(ctx context.Context, technicianID string) {
	if s.workload != nil {
		s.workload.Invalidate(ctx, technicianID)
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func technicianKey(id string) string {
	return "technician:" + id
}

func ticketKey(id string) string {
	return "ticket:" + id
}
