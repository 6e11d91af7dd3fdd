package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task record is not found.
var ErrTaskNotFound = errors.New("task not found")

// Repository provides CRUD operations on the tasks table.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// ListForUser returns the union of personal tasks created by the user,
	// tasks assigned to the user, and tasks of any team the user belongs
	// to, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, id uuid.UUID, fields Fields) (*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
