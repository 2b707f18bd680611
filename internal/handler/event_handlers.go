package handler

import (
	"net/http"
	"strconv"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// RecentEvents godoc
// @Summary List recent audit events of a given type
// @Description Returns up to limit entries, newest first. The result is a snapshot, not a stream.
// @Tags events
// @Produce json
// @Param type query string true "Event type, e.g. task.created"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} dto.EventsListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events [get]
func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	eventType := r.URL.Query().Get("type")
	if eventType == "" {
		respondJSON(w, http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", "type query parameter is required"))
		return
	}

	limit := repository.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.events.RecentByType(r.Context(), domain.EventType(eventType), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.EventsListResponse{
		Events: dto.ToEventLogResponses(entries),
	})
}
