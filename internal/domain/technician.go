package domain

import "time"

// MaxActiveTickets is the number of IN_PROGRESS tickets a technician may hold
// concurrently. New assignments beyond the cap are rejected.
const MaxActiveTickets = 5

// Technician models a worker who resolves tickets. Availability is
// informational and not a hard gate in assignment decisions.
type Technician struct {
	ID           string
	Name         string
	Specialty    string
	Availability bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
