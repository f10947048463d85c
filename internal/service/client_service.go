package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/repository"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// ClientService manages client records.
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService builds the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// CreateClient creates a client with a unique contact email.
func (s *ClientService) CreateClient(ctx context.Context, name, company, contactEmail string) (*domain.Client, error) {
	if _, err := s.clients.GetByContactEmail(ctx, contactEmail); err == nil {
		return nil, apperrors.NewConflict("contact email already registered", map[string]any{"contact_email": contactEmail})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	client := &domain.Client{Name: name, Company: company, ContactEmail: contactEmail}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// GetClient fetches a client by id.
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// ListClients returns all clients.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

// UpdateClient applies partial changes, keeping contact emails unique.
func (s *ClientService) UpdateClient(ctx context.Context, id string, name, company, contactEmail *string) (*domain.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if contactEmail != nil && *contactEmail != client.ContactEmail {
		if _, err := s.clients.GetByContactEmail(ctx, *contactEmail); err == nil {
			return nil, apperrors.NewConflict("contact email already registered", map[string]any{"contact_email": *contactEmail})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		client.ContactEmail = *contactEmail
	}
	if name != nil {
		client.Name = *name
	}
	if company != nil {
		client.Company = *company
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// DeleteClient removes a client after an existence check.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
