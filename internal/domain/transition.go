package domain

// statusSuccessor maps each lifecycle state to its single allowed next state.
// The lifecycle is a linear chain; CLOSED has no successor. Adding a branch
// state is a data change here, not new control flow.
var statusSuccessor = map[TicketStatus]TicketStatus{
	TicketStatusOpen:       TicketStatusInProgress,
	TicketStatusInProgress: TicketStatusResolved,
	TicketStatusResolved:   TicketStatusClosed,
}

// NextStatus returns the single allowed successor of current. The second
// return value is false for terminal or unknown states.
func NextStatus(current TicketStatus) (TicketStatus, bool) {
	next, ok := statusSuccessor[current]
	return next, ok
}

// CanTransition reports whether requested is the designated successor of
// current. Self-transitions, skips and backward moves are all rejected, as is
// any move out of CLOSED.
func CanTransition(current, requested TicketStatus) bool {
	next, ok := statusSuccessor[current]
	return ok && next == requested
}
