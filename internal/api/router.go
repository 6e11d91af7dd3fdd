package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/api/handler"
	"github.com/taskhive/taskhive/internal/api/middleware"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/task"
	"github.com/taskhive/taskhive/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger    handler.DBPinger
	AuthService *auth.Service
	UserRepo    auth.UserRepository
	TaskService *task.Service
	TeamService *team.Service
	Version     string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(middleware.Auth(deps.AuthService)).Get("/me", authHandler.Me)
	})

	requireAuth := middleware.Auth(deps.AuthService)

	userHandler := handler.NewUserHandler(deps.UserRepo)
	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/{id}", userHandler.GetByID)
	})

	taskHandler := handler.NewTaskHandler(deps.TaskService)
	r.Route("/tasks", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	teamHandler := handler.NewTeamHandler(deps.TeamService)
	r.Route("/teams", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", teamHandler.List)
		r.Post("/", teamHandler.Create)
		r.Post("/join", teamHandler.Join)
		r.Get("/{id}", teamHandler.Get)
		r.Post("/{id}/leave", teamHandler.Leave)
	})

	return r
}
