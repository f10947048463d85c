package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

func assertConflict(t *testing.T, err error) {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, "CONFLICT", de.Code)
}

func TestCategoryServiceUniqueName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, "Hardware Incident", "hardware problems")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = svc.CreateCategory(ctx, "Hardware Incident", "duplicate")
	require.Error(t, err)
	assertConflict(t, err)

	other, err := svc.CreateCategory(ctx, "Software Incident", "software problems")
	require.NoError(t, err)

	// Renaming onto a taken name is rejected too.
	taken := "Hardware Incident"
	_, err = svc.UpdateCategory(ctx, other.ID, &taken, nil)
	require.Error(t, err)
	assertConflict(t, err)

	// Updating without changing the name is fine.
	desc := "updated description"
	updated, err := svc.UpdateCategory(ctx, other.ID, nil, &desc)
	require.NoError(t, err)
	assert.Equal(t, "updated description", updated.Description)
	assert.Equal(t, "Software Incident", updated.Name)
}

func TestCategoryServiceDelete(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, "Service Request", "general requests")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))

	err = svc.DeleteCategory(ctx, created.ID)
	require.Error(t, err)
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestClientServiceUniqueContactEmail(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())
	ctx := context.Background()

	_, err := svc.CreateClient(ctx, "Carlos Rodriguez", "Tech Solutions", "carlos@techsolutions.com")
	require.NoError(t, err)

	_, err = svc.CreateClient(ctx, "Second Carlos", "Other Corp", "carlos@techsolutions.com")
	require.Error(t, err)
	assertConflict(t, err)
}

func TestClientServicePartialUpdate(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, "Maria Gonzalez", "Innovatech", "maria@innovatech.com")
	require.NoError(t, err)

	company := "Innovatech Corp"
	updated, err := svc.UpdateClient(ctx, created.ID, nil, &company, nil)
	require.NoError(t, err)
	assert.Equal(t, "Innovatech Corp", updated.Company)
	assert.Equal(t, "Maria Gonzalez", updated.Name)
	assert.Equal(t, "maria@innovatech.com", updated.ContactEmail)
}

func TestTechnicianServiceWorkload(t *testing.T) {
	tickets := newFakeTicketRepo()
	technicians := newFakeTechnicianRepo()
	assignment := NewAssignmentService(AssignmentDependencies{
		TicketRepo:     tickets,
		TechnicianRepo: technicians,
	})
	svc := NewTechnicianService(technicians, assignment)
	ctx := context.Background()

	tech, err := svc.CreateTechnician(ctx, "Miguel Ruiz", "Operating Systems", true)
	require.NoError(t, err)

	addInProgressTickets(t, tickets, tech.ID, 2)

	count, err := svc.GetWorkload(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = svc.GetWorkload(ctx, "missing")
	require.Error(t, err)
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestUserServiceLifecycle(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, 4)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Primary Administrator", "admin@techhelpdesk.com", "admin123", domain.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, created.Role)
	assert.NotEqual(t, "admin123", created.PasswordHash)

	_, err = svc.CreateUser(ctx, "Duplicate", "admin@techhelpdesk.com", "admin123", domain.UserRoleClient)
	require.Error(t, err)
	assertConflict(t, err)

	name := "Renamed Administrator"
	updated, err := svc.UpdateUser(ctx, created.ID, UserUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Administrator", updated.Name)
	assert.Equal(t, "admin@techhelpdesk.com", updated.Email)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))
	_, err = svc.GetUser(ctx, created.ID)
	require.Error(t, err)
}
