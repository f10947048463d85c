package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/events"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

type ticketFixture struct {
	service     *TicketService
	tickets     *fakeTicketRepo
	categories  *fakeCategoryRepo
	clients     *fakeClientRepo
	technicians *fakeTechnicianRepo
	dispatcher  events.Dispatcher

	category   *domain.Category
	client     *domain.Client
	technician *domain.Technician
	creatorID  string
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	ctx := context.Background()

	f := &ticketFixture{
		tickets:     newFakeTicketRepo(),
		categories:  newFakeCategoryRepo(),
		clients:     newFakeClientRepo(),
		technicians: newFakeTechnicianRepo(),
		dispatcher:  events.NewInMemoryDispatcher(),
		creatorID:   "user-1",
	}

	f.category = &domain.Category{Name: "Hardware Incident", Description: "hardware problems"}
	require.NoError(t, f.categories.Create(ctx, f.category))
	f.client = &domain.Client{Name: "Carlos Rodriguez", Company: "Tech Solutions", ContactEmail: "carlos@techsolutions.com"}
	require.NoError(t, f.clients.Create(ctx, f.client))
	f.technician = &domain.Technician{Name: "Pedro Sanchez", Specialty: "Networking", Availability: true}
	require.NoError(t, f.technicians.Create(ctx, f.technician))

	assignment := NewAssignmentService(AssignmentDependencies{
		TicketRepo:     f.tickets,
		TechnicianRepo: f.technicians,
	})
	f.service = NewTicketService(TicketDependencies{
		TicketRepo:     f.tickets,
		CategoryRepo:   f.categories,
		ClientRepo:     f.clients,
		TechnicianRepo: f.technicians,
		Assignment:     assignment,
		Dispatcher:     f.dispatcher,
	})
	return f
}

func (f *ticketFixture) createInput() TicketCreateInput {
	return TicketCreateInput{
		Title:       "Printer not printing",
		Description: "The third floor printer is not responding",
		CategoryID:  f.category.ID,
		ClientID:    f.client.ID,
	}
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Code
}

func TestCreateTicketStartsOpenWithDefaultPriority(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.CreateTicket(context.Background(), f.creatorID, f.createInput())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, f.creatorID, ticket.CreatedByID)
	assert.Nil(t, ticket.TechnicianID)
	assert.NotEmpty(t, ticket.ID)
}

func TestCreateTicketKeepsExplicitPriority(t *testing.T) {
	f := newTicketFixture(t)

	input := f.createInput()
	input.Priority = domain.TicketPriorityCritical
	ticket, err := f.service.CreateTicket(context.Background(), f.creatorID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityCritical, ticket.Priority)
}

func TestCreateTicketRejectsUnknownPriority(t *testing.T) {
	f := newTicketFixture(t)

	input := f.createInput()
	input.Priority = domain.TicketPriority("URGENT")
	_, err := f.service.CreateTicket(context.Background(), f.creatorID, input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
	assert.Empty(t, f.tickets.tickets)
}

func TestCreateTicketValidatesReferencesInOrder(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	// Category is checked first even when the client is also missing.
	input := f.createInput()
	input.CategoryID = "missing-category"
	input.ClientID = "missing-client"
	_, err := f.service.CreateTicket(ctx, f.creatorID, input)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Message, "category")

	input = f.createInput()
	input.ClientID = "missing-client"
	_, err = f.service.CreateTicket(ctx, f.creatorID, input)
	require.Error(t, err)
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Message, "client")

	missingTech := "missing-technician"
	input = f.createInput()
	input.TechnicianID = &missingTech
	_, err = f.service.CreateTicket(ctx, f.creatorID, input)
	require.Error(t, err)
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Message, "technician")

	// Nothing was persisted by the failed attempts.
	all, err := f.service.ListAllTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateTicketAssignedCountsTowardCapacity(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	// Fill the technician to the cap with IN_PROGRESS tickets.
	for i := 0; i < domain.MaxActiveTickets; i++ {
		input := f.createInput()
		input.TechnicianID = &f.technician.ID
		ticket, err := f.service.CreateTicket(ctx, f.creatorID, input)
		require.NoError(t, err)
		_, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusInProgress)
		require.NoError(t, err)
	}

	input := f.createInput()
	input.TechnicianID = &f.technician.ID
	_, err := f.service.CreateTicket(ctx, f.creatorID, input)
	require.Error(t, err)
	assert.Equal(t, "CAPACITY_EXCEEDED", domainErrCode(t, err))

	// OPEN tickets do not count toward the cap, so an unassigned create still
	// succeeds and later reassignment to a free technician works.
	ticket, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
}

func TestCapacityCountsOnlyInProgress(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	// Five assigned tickets that stay OPEN leave the technician at capacity 0.
	for i := 0; i < domain.MaxActiveTickets; i++ {
		input := f.createInput()
		input.TechnicianID = &f.technician.ID
		_, err := f.service.CreateTicket(ctx, f.creatorID, input)
		require.NoError(t, err)
	}

	input := f.createInput()
	input.TechnicianID = &f.technician.ID
	_, err := f.service.CreateTicket(ctx, f.creatorID, input)
	require.NoError(t, err)
}

func TestChangeStatusFollowsLinearChain(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)

	for _, next := range []domain.TicketStatus{
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	} {
		ticket, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, ticket.Status)
	}

	// CLOSED is terminal.
	_, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusOpen)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", domainErrCode(t, err))
}

func TestChangeStatusRejectsSkipSelfAndBackward(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)

	for _, requested := range []domain.TicketStatus{
		domain.TicketStatusResolved, // skip
		domain.TicketStatusClosed,   // skip
		domain.TicketStatusOpen,     // self
	} {
		_, err := f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, requested)
		require.Error(t, err, "requested %s", requested)
		assert.Equal(t, "INVALID_TRANSITION", domainErrCode(t, err))
	}

	ticket, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)

	// Backward move is rejected once progressed.
	_, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusOpen)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", domainErrCode(t, err))

	// A rejected transition leaves the stored status untouched.
	stored, err := f.service.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, stored.Status)
}

func TestChangeStatusUnknownTicket(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.ChangeStatus(context.Background(), f.creatorID, "missing", domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestListByClientOrderedNewestFirst(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		input := f.createInput()
		input.Title = fmt.Sprintf("Ticket number %d", i)
		ticket, err := f.service.CreateTicket(ctx, f.creatorID, input)
		require.NoError(t, err)
		ids = append(ids, ticket.ID)
	}

	listed, err := f.service.ListByClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, ids[2], listed[0].ID)
	assert.Equal(t, ids[0], listed[2].ID)
}

func TestListByClientUnknownClient(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.ListByClient(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestListByTechnician(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	input := f.createInput()
	input.TechnicianID = &f.technician.ID
	assigned, err := f.service.CreateTicket(ctx, f.creatorID, input)
	require.NoError(t, err)
	_, err = f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)

	listed, err := f.service.ListByTechnician(ctx, f.technician.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, assigned.ID, listed[0].ID)

	_, err = f.service.ListByTechnician(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestReassignTicketRespectsCapacity(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)

	ticket, err = f.service.ReassignTicket(ctx, f.creatorID, ticket.ID, f.technician.ID)
	require.NoError(t, err)
	require.NotNil(t, ticket.TechnicianID)
	assert.Equal(t, f.technician.ID, *ticket.TechnicianID)

	// Saturate the technician, then a further reassignment must fail.
	for i := 0; i < domain.MaxActiveTickets; i++ {
		input := f.createInput()
		input.TechnicianID = &f.technician.ID
		busy, err := f.service.CreateTicket(ctx, f.creatorID, input)
		require.NoError(t, err)
		_, err = f.service.ChangeStatus(ctx, f.creatorID, busy.ID, domain.TicketStatusInProgress)
		require.NoError(t, err)
	}

	other, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)
	_, err = f.service.ReassignTicket(ctx, f.creatorID, other.ID, f.technician.ID)
	require.Error(t, err)
	assert.Equal(t, "CAPACITY_EXCEEDED", domainErrCode(t, err))
}

func TestDeleteTicketBypassesLifecycle(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)
	_, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)

	// Deletable in any status, no CLOSED required.
	require.NoError(t, f.service.DeleteTicket(ctx, f.creatorID, ticket.ID))

	_, err = f.service.GetTicket(ctx, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))

	err = f.service.DeleteTicket(ctx, f.creatorID, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestDeleteFreesTechnicianCapacity(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	var busy []*domain.Ticket
	for i := 0; i < domain.MaxActiveTickets; i++ {
		input := f.createInput()
		input.TechnicianID = &f.technician.ID
		ticket, err := f.service.CreateTicket(ctx, f.creatorID, input)
		require.NoError(t, err)
		_, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusInProgress)
		require.NoError(t, err)
		busy = append(busy, ticket)
	}

	require.NoError(t, f.service.DeleteTicket(ctx, f.creatorID, busy[0].ID))

	input := f.createInput()
	input.TechnicianID = &f.technician.ID
	_, err := f.service.CreateTicket(ctx, f.creatorID, input)
	require.NoError(t, err)
}

func TestCreateTicketPublishesEvent(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	var received []events.Event
	f.dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	ticket, err := f.service.CreateTicket(ctx, f.creatorID, f.createInput())
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, ticket.ID, received[0].TicketID)
	assert.Equal(t, f.creatorID, received[0].ActorID)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestStatusAndAssignmentUpdatesDoNotClobberEachOther(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	input := f.createInput()
	input.TechnicianID = &f.technician.ID
	ticket, err := f.service.CreateTicket(ctx, f.creatorID, input)
	require.NoError(t, err)

	_, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)

	other := &domain.Technician{Name: "Ana Lopez", Specialty: "Hardware", Availability: true}
	require.NoError(t, f.technicians.Create(ctx, other))

	// Reassignment writes only the technician column, so the status change
	// committed above survives it.
	updated, err := f.service.ReassignTicket(ctx, f.creatorID, ticket.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	require.NotNil(t, updated.TechnicianID)
	assert.Equal(t, other.ID, *updated.TechnicianID)

	// And a status change writes only the status column.
	updated, err = f.service.ChangeStatus(ctx, f.creatorID, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.NotNil(t, updated.TechnicianID)
	assert.Equal(t, other.ID, *updated.TechnicianID)
}
