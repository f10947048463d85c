package domain

import "time"

// UserRole enumerates system roles.
type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleTechnician UserRole = "TECHNICIAN"
	UserRoleClient     UserRole = "CLIENT"
)

// User is the domain model for authenticated actors.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
