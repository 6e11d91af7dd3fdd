package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/api/middleware"
	"github.com/taskhive/taskhive/internal/api/response"
	"github.com/taskhive/taskhive/internal/api/validation"
	"github.com/taskhive/taskhive/internal/task"
)

// taskRequest is the body of POST /tasks and PUT /tasks/{id}. Updates are
// full replacements: any field left out of the body is written back as its
// zero value, so clients resend the whole object.
type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	AssignedTo  string `json:"assignedTo"`
	Team        string `json:"team"`
}

type userRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type taskResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	DueDate     *string          `json:"dueDate"`
	AssignedTo  *userRefResponse `json:"assignedTo"`
	CreatedBy   userRefResponse  `json:"createdBy"`
	Team        *string          `json:"team"`
	CreatedAt   string           `json:"createdAt"`
}

func toTaskResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedBy: userRefResponse{
			ID:    t.CreatedBy.String(),
			Name:  t.CreatorName,
			Email: t.CreatorEmail,
		},
		CreatedAt: t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC().Format("2006-01-02T15:04:05Z")
		resp.DueDate = &due
	}
	if t.AssignedTo != nil {
		ref := userRefResponse{ID: t.AssignedTo.String()}
		if t.AssigneeName != nil {
			ref.Name = *t.AssigneeName
		}
		if t.AssigneeEmail != nil {
			ref.Email = *t.AssigneeEmail
		}
		resp.AssignedTo = &ref
	}
	if t.TeamID != nil {
		team := t.TeamID.String()
		resp.Team = &team
	}
	return resp
}

// TaskHandler handles task CRUD endpoints.
type TaskHandler struct {
	taskService *task.Service
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *task.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) decodeFields(w http.ResponseWriter, r *http.Request, requestID string) (task.Fields, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return task.Fields{}, false
	}

	fieldErrors := validation.ValidateTaskRequest(validation.TaskRequest{
		Title:      req.Title,
		Status:     req.Status,
		Priority:   req.Priority,
		AssignedTo: req.AssignedTo,
		Team:       req.Team,
	})

	fields := task.Fields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}

	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			fieldErrors = append(fieldErrors, validation.FieldError{
				Field:   "dueDate",
				Message: "dueDate must be an RFC 3339 timestamp or YYYY-MM-DD date",
			})
		} else {
			fields.DueDate = &due
		}
	}
	if req.AssignedTo != "" {
		if id, err := uuid.Parse(req.AssignedTo); err == nil {
			fields.AssignedTo = &id
		}
	}
	if req.Team != "" {
		if id, err := uuid.Parse(req.Team); err == nil {
			fields.TeamID = &id
		}
	}

	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return task.Fields{}, false
	}

	return fields, true
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	tasks, err := h.taskService.List(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tasks", requestID)
		return
	}

	items := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, toTaskResponse(&tasks[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	fields, ok := h.decodeFields(w, r, requestID)
	if !ok {
		return
	}

	t, err := h.taskService.Create(r.Context(), identity.UserID, fields)
	if err != nil {
		if errors.Is(err, task.ErrNotTeamMember) {
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this team", requestID)
			return
		}
		slog.Error("failed to create task", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create task", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTaskResponse(t), requestID)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	fields, ok := h.decodeFields(w, r, requestID)
	if !ok {
		return
	}

	t, err := h.taskService.Update(r.Context(), identity.UserID, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
		case errors.Is(err, task.ErrPermissionDenied):
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "You don't have permission to edit this task", requestID)
		default:
			slog.Error("failed to update task", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, toTaskResponse(t), requestID)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.taskService.Delete(r.Context(), identity.UserID, id); err != nil {
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
		case errors.Is(err, task.ErrPermissionDenied):
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "You don't have permission to delete this task", requestID)
		default:
			slog.Error("failed to delete task", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete task", requestID)
		}
		return
	}

	response.NoContent(w)
}
