package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/api/middleware"
	"github.com/taskhive/taskhive/internal/api/response"
	"github.com/taskhive/taskhive/internal/api/validation"
	"github.com/taskhive/taskhive/internal/team"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type joinTeamRequest struct {
	InviteCode string `json:"inviteCode"`
}

type memberResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinedAt string `json:"joinedAt"`
}

type teamResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Owner       *memberResponse  `json:"owner"`
	Members     []memberResponse `json:"members"`
	InviteCode  string           `json:"inviteCode"`
	CreatedAt   string           `json:"createdAt"`
	Tasks       []taskResponse   `json:"tasks,omitempty"`
}

func toTeamResponse(d *team.Details) teamResponse {
	members := make([]memberResponse, 0, len(d.Members))
	var owner *memberResponse
	for _, m := range d.Members {
		mr := memberResponse{
			ID:       m.ID.String(),
			Name:     m.Name,
			Email:    m.Email,
			JoinedAt: m.JoinedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if m.ID == d.Team.OwnerID {
			o := mr
			owner = &o
		}
		members = append(members, mr)
	}

	resp := teamResponse{
		ID:          d.Team.ID.String(),
		Name:        d.Team.Name,
		Description: d.Team.Description,
		Owner:       owner,
		Members:     members,
		InviteCode:  d.Team.InviteCode,
		CreatedAt:   d.Team.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	if d.Tasks != nil {
		tasks := make([]taskResponse, 0, len(d.Tasks))
		for i := range d.Tasks {
			tasks = append(tasks, toTaskResponse(&d.Tasks[i]))
		}
		resp.Tasks = tasks
	}

	return resp
}

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teamService *team.Service
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *team.Service) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// List handles GET /teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	teams, err := h.teamService.List(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch teams", requestID)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// Create handles POST /teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	details, err := h.teamService.Create(r.Context(), identity.UserID, req.Name, req.Description)
	if err != nil {
		slog.Error("failed to create team", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTeamResponse(details), requestID)
}

// Join handles POST /teams/join.
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req joinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{
		InviteCode: req.InviteCode,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	details, err := h.teamService.Join(r.Context(), identity.UserID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, team.ErrTeamNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Invalid invite code", requestID)
		case errors.Is(err, team.ErrAlreadyMember):
			response.Err(w, http.StatusBadRequest, "ALREADY_MEMBER", "Already a member of this team", requestID)
		default:
			slog.Error("failed to join team", "error", err)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to join team", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(details), requestID)
}

// Get handles GET /teams/{id}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	details, err := h.teamService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to get team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(details), requestID)
}

// Leave handles POST /teams/{id}/leave.
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.teamService.Leave(r.Context(), identity.UserID, id); err != nil {
		switch {
		case errors.Is(err, team.ErrTeamNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
		case errors.Is(err, team.ErrOwnerCannotLeave):
			response.Err(w, http.StatusBadRequest, "OWNER_CANNOT_LEAVE", "Owner cannot leave team. Delete the team instead.", requestID)
		case errors.Is(err, team.ErrNotMember):
			response.Err(w, http.StatusBadRequest, "NOT_MEMBER", "Not a member of this team", requestID)
		default:
			slog.Error("failed to leave team", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to leave team", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, map[string]string{"message": "Left team successfully"}, requestID)
}
