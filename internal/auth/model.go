package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is stored in the request context after authentication.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
}
