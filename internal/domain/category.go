package domain

import "time"

// Category classifies tickets (e.g. hardware incident, software incident,
// service request). Names are unique.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
