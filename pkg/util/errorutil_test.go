package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidTransition(t *testing.T) {
	err := NewInvalidTransition("OPEN", "CLOSED")

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "INVALID_TRANSITION", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "OPEN", de.Details["from"])
	assert.Equal(t, "CLOSED", de.Details["to"])
	assert.Contains(t, de.Message, "OPEN -> IN_PROGRESS -> RESOLVED -> CLOSED")
}

func TestNewCapacityExceeded(t *testing.T) {
	err := NewCapacityExceeded("tech-1", 5)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "CAPACITY_EXCEEDED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "tech-1", de.Details["technician_id"])
	assert.Equal(t, 5, de.Details["limit"])
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewNotFound("ticket", map[string]any{"ticket_id": "abc"})
	converted := ToDomainError(original)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", converted.Code)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	converted := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	assert.ErrorContains(t, converted, "boom")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
}
