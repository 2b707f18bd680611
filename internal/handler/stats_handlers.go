package handler

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// TaskStats godoc
// @Summary Task counts by status and priority
// @Description Counts cover the tasks visible to the caller.
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.TaskStatsResponse
// @Security BearerAuth
// @Router /api/v1/tasks/stats [get]
func (h *Handler) TaskStats(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := h.taskRepo.GetTaskStats(r.Context(), repository.ScopeFilter{ActorID: &user.ID})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskStatsResponse(stats))
}
