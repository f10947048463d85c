package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/repository"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// TechnicianService manages technician records.
type TechnicianService struct {
	technicians repository.TechnicianRepository
	assignment  *AssignmentService
}

// TechnicianUpdateInput describes fields that may change; nil means unchanged.
type TechnicianUpdateInput struct {
	Name         *string
	Specialty    *string
	Availability *bool
}

// NewTechnicianService builds the service.
func NewTechnicianService(technicians repository.TechnicianRepository, assignment *AssignmentService) *TechnicianService {
	return &TechnicianService{technicians: technicians, assignment: assignment}
}

// CreateTechnician registers a new technician. Availability defaults to true.
func (s *TechnicianService) CreateTechnician(ctx context.Context, name, specialty string, availability bool) (*domain.Technician, error) {
	tech := &domain.Technician{Name: name, Specialty: specialty, Availability: availability}
	if err := s.technicians.Create(ctx, tech); err != nil {
		return nil, apperrors.MapError(err)
	}
	return tech, nil
}

// GetTechnician fetches a technician by id.
func (s *TechnicianService) GetTechnician(ctx context.Context, id string) (*domain.Technician, error) {
	tech, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return tech, nil
}

// GetWorkload returns the technician's current IN_PROGRESS ticket count.
func (s *TechnicianService) GetWorkload(ctx context.Context, id string) (int, error) {
	if _, err := s.GetTechnician(ctx, id); err != nil {
		return 0, err
	}
	count, err := s.assignment.ActiveCount(ctx, id)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// ListTechnicians returns all technicians.
func (s *TechnicianService) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	technicians, err := s.technicians.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return technicians, nil
}

// UpdateTechnician applies partial changes.
func (s *TechnicianService) UpdateTechnician(ctx context.Context, id string, input TechnicianUpdateInput) (*domain.Technician, error) {
	tech, err := s.GetTechnician(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tech.Name = *input.Name
	}
	if input.Specialty != nil {
		tech.Specialty = *input.Specialty
	}
	if input.Availability != nil {
		tech.Availability = *input.Availability
	}

	if err := s.technicians.Update(ctx, tech); err != nil {
		return nil, apperrors.MapError(err)
	}
	return tech, nil
}

// DeleteTechnician removes a technician after an existence check. Assigned
// tickets keep running; the store sets their technician reference to null.
func (s *TechnicianService) DeleteTechnician(ctx context.Context, id string) error {
	if _, err := s.GetTechnician(ctx, id); err != nil {
		return err
	}
	if err := s.technicians.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
