package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/repository"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// WorkloadCache caches per-technician active ticket counts. Entries may lag
// the store; callers that enforce the workload cap must not rely on it.
type WorkloadCache interface {
	GetActiveCount(ctx context.Context, technicianID string) (int, bool)
	SetActiveCount(ctx context.Context, technicianID string, count int)
	Invalidate(ctx context.Context, technicianID string)
}

// AssignmentService decides whether a technician may accept one more active
// ticket. The cap counts existing IN_PROGRESS tickets only; it gates new
// assignments regardless of the new ticket's own initial status.
type AssignmentService struct {
	tickets     repository.TicketRepository
	technicians repository.TechnicianRepository
	workload    WorkloadCache
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketRepo     repository.TicketRepository
	TechnicianRepo repository.TechnicianRepository
	WorkloadCache  WorkloadCache
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:     deps.TicketRepo,
		technicians: deps.TechnicianRepo,
		workload:    deps.WorkloadCache,
	}
}

// CheckCapacity verifies the technician exists and holds fewer than
// domain.MaxActiveTickets tickets in IN_PROGRESS. The count comes straight
// from the store: a cached value can be stale the moment a transition commits
// on another ticket, and the cap decision must never admit on stale data.
// Callers that go on to persist an assignment must hold the per-technician
// lock across the check and the write.
func (s *AssignmentService) CheckCapacity(ctx context.Context, technicianID string) error {
	if _, err := s.technicians.GetByID(ctx, technicianID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return apperrors.MapError(err)
	}

	count, err := s.tickets.CountByTechnicianAndStatus(ctx, technicianID, domain.TicketStatusInProgress)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count >= domain.MaxActiveTickets {
		return apperrors.NewCapacityExceeded(technicianID, domain.MaxActiveTickets)
	}
	return nil
}

// ActiveCount returns the technician's current IN_PROGRESS ticket count for
// informational reads (the workload endpoint), read through the cache.
func (s *AssignmentService) ActiveCount(ctx context.Context, technicianID string) (int, error) {
	if s.workload != nil {
		if count, ok := s.workload.GetActiveCount(ctx, technicianID); ok {
			return count, nil
		}
	}
	count, err := s.tickets.CountByTechnicianAndStatus(ctx, technicianID, domain.TicketStatusInProgress)
	if err != nil {
		return 0, err
	}
	if s.workload != nil {
		s.workload.SetActiveCount(ctx, technicianID, count)
	}
	return count, nil
}
