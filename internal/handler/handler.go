package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taskdeck/taskdeck/docs"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/service"
)

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	pool     *pgxpool.Pool
	tasks    *service.TaskService
	auth     *service.AuthService
	users    *repository.UserRepository
	taskRepo *repository.TaskRepository
	events   *repository.EventLogRepository
	authMW   *middleware.AuthMiddleware
}

// New wires repositories, services and middleware over the given pool.
func New(pool *pgxpool.Pool, tokens *service.TokenIssuer) *Handler {
	taskRepo := repository.NewTaskRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventLogRepository(pool)

	return &Handler{
		pool:     pool,
		tasks:    service.NewTaskService(taskRepo, userRepo, eventRepo),
		auth:     service.NewAuthService(userRepo, eventRepo, tokens),
		users:    userRepo,
		taskRepo: taskRepo,
		events:   eventRepo,
		authMW:   middleware.NewAuthMiddleware(tokens, userRepo),
	}
}

// RegisterRoutes registers all HTTP routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)

	authed := func(fn http.HandlerFunc) http.Handler {
		return h.authMW.Authenticate(fn)
	}

	mux.Handle("GET /api/v1/tasks", authed(h.ListTasks))
	mux.Handle("POST /api/v1/tasks", authed(h.CreateTask))
	mux.Handle("GET /api/v1/tasks/stats", authed(h.TaskStats))
	mux.Handle("GET /api/v1/tasks/my-tasks", authed(h.MyTasks))
	mux.Handle("GET /api/v1/tasks/created-tasks", authed(h.CreatedTasks))
	mux.Handle("GET /api/v1/tasks/{id}", authed(h.GetTask))
	mux.Handle("PATCH /api/v1/tasks/{id}", authed(h.UpdateTask))
	mux.Handle("DELETE /api/v1/tasks/{id}", authed(h.DeleteTask))

	mux.Handle("GET /api/v1/events", authed(h.RecentEvents))

	mux.Handle("GET /api/v1/users", authed(h.ListUsers))
	mux.Handle("GET /api/v1/users/profile", authed(h.Profile))
	mux.Handle("PATCH /api/v1/users/profile", authed(h.UpdateProfile))
	mux.Handle("GET /api/v1/users/{id}", authed(h.GetUser))
	mux.Handle("DELETE /api/v1/users/{id}", authed(h.DeleteUser))
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps a domain error to its HTTP form and writes it.
func respondError(w http.ResponseWriter, err error) {
	status, resp := dto.MapDomainError(err)
	respondJSON(w, status, resp)
}

// extractTaskID pulls and validates the task id path parameter.
func extractTaskID(r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
