package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/task"
)

// ErrOwnerCannotLeave is returned when the owner attempts to leave their
// own team. The owner must delete the team instead.
var ErrOwnerCannotLeave = errors.New("owner cannot leave team")

// inviteRetries bounds invite-code regeneration on store collisions.
const inviteRetries = 5

// Details is a team with its members resolved. Tasks is populated only by
// Get; list operations leave it nil.
type Details struct {
	Team    Team
	Members []Member
	Tasks   []task.Task
}

// Service orchestrates team operations over the team and task stores.
type Service struct {
	teams Repository
	tasks task.Repository
}

// NewService creates a new team Service.
func NewService(teams Repository, tasks task.Repository) *Service {
	return &Service{teams: teams, tasks: tasks}
}

// List returns every team the user owns or is a member of, with members resolved.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Details, error) {
	teams, err := s.teams.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]Details, 0, len(teams))
	for _, t := range teams {
		members, err := s.teams.ListMembers(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, Details{Team: t, Members: members})
	}

	return details, nil
}

// Create makes the caller the owner and sole initial member of a new team.
// The invite code is generated here and retried on store collision; after
// inviteRetries failed attempts the error is surfaced as-is.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name, description string) (*Details, error) {
	var t *Team
	for attempt := 0; attempt < inviteRetries; attempt++ {
		code, err := NewInviteCode()
		if err != nil {
			return nil, err
		}

		candidate := &Team{
			Name:        name,
			Description: description,
			OwnerID:     userID,
			InviteCode:  code,
		}

		err = s.teams.Create(ctx, candidate)
		if err == nil {
			t = candidate
			break
		}
		if !errors.Is(err, ErrInviteCodeTaken) {
			return nil, err
		}
	}
	if t == nil {
		return nil, fmt.Errorf("generating unique invite code: %w", ErrInviteCodeTaken)
	}

	members, err := s.teams.ListMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &Details{Team: *t, Members: members}, nil
}

// Join adds the caller to the team matching the invite code. Codes are
// case-insensitive on input: they are upper-cased before lookup. A code
// that matches no team is not-found; joining a team twice is a conflict.
func (s *Service) Join(ctx context.Context, userID uuid.UUID, inviteCode string) (*Details, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))

	t, err := s.teams.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.teams.AddMember(ctx, t.ID, userID); err != nil {
		return nil, err
	}

	members, err := s.teams.ListMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &Details{Team: *t, Members: members}, nil
}

// Get returns a team with members resolved plus all of its tasks.
func (s *Service) Get(ctx context.Context, teamID uuid.UUID) (*Details, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.teams.ListMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByTeam(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &Details{Team: *t, Members: members, Tasks: tasks}, nil
}

// Leave removes the caller from a team. The owner may never leave; the
// check runs before any mutation, so a rejected leave changes nothing.
func (s *Service) Leave(ctx context.Context, userID, teamID uuid.UUID) error {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if t.OwnerID == userID {
		return ErrOwnerCannotLeave
	}

	return s.teams.RemoveMember(ctx, t.ID, userID)
}
