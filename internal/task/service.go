package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/policy"
)

// ErrPermissionDenied is returned when the caller may not modify a task.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotTeamMember is returned when creating a task for a team the caller
// does not belong to.
var ErrNotTeamMember = errors.New("not a member of this team")

// TeamDirectory answers membership queries against the team store. It is
// satisfied by team.Repository; declared here so the task package does not
// depend on the team package.
type TeamDirectory interface {
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	MemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error)
}

// Service orchestrates task operations: it checks existence, consults the
// policy rules, and then issues a single store call per operation.
type Service struct {
	tasks Repository
	teams TeamDirectory
}

// NewService creates a new task Service.
func NewService(tasks Repository, teams TeamDirectory) *Service {
	return &Service{tasks: tasks, teams: teams}
}

// List returns every task visible to the user, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	return s.tasks.ListForUser(ctx, userID)
}

// Create inserts a new task with the caller as creator. A team task
// requires the caller to be a current member of that team; failing that is
// a permission error, not a validation error. New tasks always start at
// todo; a status in the request body is ignored. An empty priority falls
// back to medium.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, fields Fields) (*Task, error) {
	if fields.TeamID != nil {
		member, err := s.teams.IsMember(ctx, *fields.TeamID, userID)
		if err != nil {
			return nil, fmt.Errorf("checking team membership: %w", err)
		}
		if !member {
			return nil, ErrNotTeamMember
		}
	}

	fields.Status = StatusTodo
	if fields.Priority == "" {
		fields.Priority = PriorityMedium
	}

	t := &Task{
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
		DueDate:     fields.DueDate,
		AssignedTo:  fields.AssignedTo,
		CreatedBy:   userID,
		TeamID:      fields.TeamID,
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Update replaces all fields of a task after checking the caller is
// allowed to. Omitted fields arrive zeroed and are written as such.
func (s *Service) Update(ctx context.Context, userID, taskID uuid.UUID, fields Fields) (*Task, error) {
	existing, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorize(ctx, userID, existing, policy.OpUpdate)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrPermissionDenied
	}

	if fields.Status == "" {
		fields.Status = StatusTodo
	}
	if fields.Priority == "" {
		fields.Priority = PriorityMedium
	}

	return s.tasks.Update(ctx, taskID, fields)
}

// Delete removes a task after checking the caller is allowed to. Unlike
// update, being the assignee alone is not enough.
func (s *Service) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	existing, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	allowed, err := s.authorize(ctx, userID, existing, policy.OpDelete)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrPermissionDenied
	}

	return s.tasks.Delete(ctx, taskID)
}

// authorize builds a policy snapshot of the task, loading the team member
// set at decision time when the task belongs to a team.
func (s *Service) authorize(ctx context.Context, userID uuid.UUID, t *Task, op policy.Operation) (bool, error) {
	snapshot := policy.TaskSnapshot{
		CreatorID:  t.CreatedBy,
		AssigneeID: t.AssignedTo,
		TeamID:     t.TeamID,
	}

	if t.TeamID != nil {
		members, err := s.teams.MemberIDs(ctx, *t.TeamID)
		if err != nil {
			return false, fmt.Errorf("loading team members: %w", err)
		}
		snapshot.TeamMembers = members
	}

	return policy.CanModifyTask(userID, snapshot, op), nil
}
