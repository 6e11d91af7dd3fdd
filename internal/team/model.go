package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table. The invite code is generated
// at creation and never changes; the owner is always present in the
// member set.
type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	InviteCode  string
	CreatedAt   time.Time
}

// Member is a team member with the user's profile resolved.
type Member struct {
	ID       uuid.UUID
	Name     string
	Email    string
	JoinedAt time.Time
}
