package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// CreateTask godoc
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task to create"
// @Success 201 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse "Assigned user not found"
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, dto.NewErrorResponse("INVALID_JSON", "request body must be valid JSON"))
		return
	}

	dueDate, err := service.ParseDueDate(req.DueDate)
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), service.CreateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.TaskPriority(req.Priority),
		DueDate:        dueDate,
		AssignedUserID: req.AssignedUserID,
	}, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// ListTasks godoc
// @Summary List tasks visible to the caller
// @Description Returns tasks the caller created or is assigned to. Pass all=true for the unscoped view.
// @Tags tasks
// @Produce json
// @Param all query bool false "Return all tasks regardless of ownership"
// @Param status query string false "Comma-separated status filter"
// @Param priority query string false "Comma-separated priority filter"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.TasksListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	filters, err := parseTaskFilters(r, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, total, err := h.tasks.FindTasks(r.Context(), filters)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks:  dto.ToTaskResponses(tasks),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
}

// parseTaskFilters builds listing filters from query parameters.
func parseTaskFilters(r *http.Request, actorID string) (repository.TaskFilters, error) {
	q := r.URL.Query()

	filters := repository.TaskFilters{
		Scope: repository.ScopeFilter{ActorID: &actorID},
		Limit: defaultListLimit,
	}

	// all=true is the explicit unscoped view
	if q.Get("all") == "true" {
		filters.Scope = repository.ScopeFilter{}
	}

	for _, status := range splitParam(q.Get("status")) {
		if !domain.TaskStatus(status).IsValid() {
			return filters, domain.ErrInvalidStatus
		}
		filters.Statuses = append(filters.Statuses, status)
	}
	for _, priority := range splitParam(q.Get("priority")) {
		if !domain.TaskPriority(priority).IsValid() {
			return filters, domain.ErrInvalidPriority
		}
		filters.Priorities = append(filters.Priorities, priority)
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err == nil && limit > 0 {
			if limit > maxListLimit {
				limit = maxListLimit
			}
			filters.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err == nil && offset > 0 {
			filters.Offset = offset
		}
	}

	return filters, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// GetTask godoc
// @Summary Get a task by ID
// @Description A task outside the caller's scope is reported as not found.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	taskID, ok := extractTaskID(r)
	if !ok {
		respondError(w, domain.ErrTaskNotFound)
		return
	}

	task, err := h.tasks.FindTask(r.Context(), taskID, &user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// MyTasks godoc
// @Summary List tasks assigned to the caller
// @Tags tasks
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /api/v1/tasks/my-tasks [get]
func (h *Handler) MyTasks(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.tasks.FindAssignedTasks(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponses(tasks))
}

// CreatedTasks godoc
// @Summary List tasks created by the caller
// @Tags tasks
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /api/v1/tasks/created-tasks [get]
func (h *Handler) CreatedTasks(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.tasks.FindCreatedTasks(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponses(tasks))
}

// UpdateTask godoc
// @Summary Update a task
// @Description Creator or assignee only. Absent fields are unchanged; an empty assignedUserId clears the assignment.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [patch]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	taskID, ok := extractTaskID(r)
	if !ok {
		respondError(w, domain.ErrTaskNotFound)
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, dto.NewErrorResponse("INVALID_JSON", "request body must be valid JSON"))
		return
	}

	params := service.UpdateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		AssignedUserID: req.AssignedUserID,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.DueDate != nil {
		params.DueDateSet = true
		dueDate, err := service.ParseDueDate(*req.DueDate)
		if err != nil {
			respondError(w, err)
			return
		}
		params.DueDate = dueDate
	}

	task, err := h.tasks.UpdateTask(r.Context(), taskID, params, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Only the creator may delete a task.
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	taskID, ok := extractTaskID(r)
	if !ok {
		respondError(w, domain.ErrTaskNotFound)
		return
	}

	if err := h.tasks.RemoveTask(r.Context(), taskID, user.ID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
