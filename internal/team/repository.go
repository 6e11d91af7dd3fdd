package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrInviteCodeTaken is returned when inserting a team whose invite code
// collides with an existing one. Creation retries with a fresh code.
var ErrInviteCodeTaken = errors.New("invite code already exists")

// ErrAlreadyMember is returned when adding a user who is already a member.
var ErrAlreadyMember = errors.New("already a member of this team")

// ErrNotMember is returned when removing a user who is not a member.
var ErrNotMember = errors.New("not a member of this team")

// Repository provides operations on the teams and team_members tables.
type Repository interface {
	// Create inserts the team and the owner's membership in one transaction.
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	GetByInviteCode(ctx context.Context, code string) (*Team, error)
	// ListForUser returns every team the user owns or is a member of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Team, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error)
	MemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}
