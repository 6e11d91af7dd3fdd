package validation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/task"
)

// TaskRequest mirrors the fields needed for create and update task
// validation. Status must still be a known value when present, even though
// create discards it and always starts tasks at todo.
type TaskRequest struct {
	Title      string
	Status     string
	Priority   string
	AssignedTo string
	Team       string
}

// ValidateTaskRequest validates the fields of a create or update task request.
func ValidateTaskRequest(req TaskRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}

	if req.Status != "" && !task.ValidStatus(req.Status) {
		errs = append(errs, FieldError{Field: "status", Message: `status must be "todo", "in-progress", or "done"`})
	}

	if req.Priority != "" && !task.ValidPriority(req.Priority) {
		errs = append(errs, FieldError{Field: "priority", Message: `priority must be "low", "medium", or "high"`})
	}

	if req.AssignedTo != "" {
		if _, err := uuid.Parse(req.AssignedTo); err != nil {
			errs = append(errs, FieldError{Field: "assignedTo", Message: "assignedTo must be a valid UUID"})
		}
	}

	if req.Team != "" {
		if _, err := uuid.Parse(req.Team); err != nil {
			errs = append(errs, FieldError{Field: "team", Message: "team must be a valid UUID"})
		}
	}

	return errs
}
