package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionFullGrid(t *testing.T) {
	statuses := []TicketStatus{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed,
	}
	allowed := map[TicketStatus]TicketStatus{
		TicketStatusOpen:       TicketStatusInProgress,
		TicketStatusInProgress: TicketStatusResolved,
		TicketStatusResolved:   TicketStatusClosed,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[from] == to && from != TicketStatusClosed
			got := CanTransition(from, to)
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestCanTransitionRejectsSelf(t *testing.T) {
	for _, s := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed} {
		assert.False(t, CanTransition(s, s), "self transition at %s", s)
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(TicketStatus("ARCHIVED"), TicketStatusOpen))
	assert.False(t, CanTransition(TicketStatusOpen, TicketStatus("ARCHIVED")))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(TicketStatusOpen)
	assert.True(t, ok)
	assert.Equal(t, TicketStatusInProgress, next)

	_, ok = NextStatus(TicketStatusClosed)
	assert.False(t, ok)
}
