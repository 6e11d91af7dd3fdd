package task

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a row in the tasks table. Creator and assignee name and
// email are joined from the users table on every read so responses can
// display them without extra lookups.
type Task struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Status        string
	Priority      string
	DueDate       *time.Time
	AssignedTo    *uuid.UUID
	CreatedBy     uuid.UUID
	TeamID        *uuid.UUID
	CreatedAt     time.Time
	CreatorName   string
	CreatorEmail  string
	AssigneeName  *string
	AssigneeEmail *string
}

// Fields holds the user-settable fields of a task. Update replaces the
// whole set: a zero or nil field overwrites whatever the row held, so
// clients must send the full object back.
type Fields struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
	TeamID      *uuid.UUID
}
