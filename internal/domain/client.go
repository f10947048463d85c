package domain

import "time"

// Client represents an organization contact that reports tickets.
type Client struct {
	ID           string
	Name         string
	Company      string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
