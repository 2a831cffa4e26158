package handlers

import (
	"encoding/json"
	"net/http"

	"wedding-site-backend/internal/models"
	"wedding-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TimelineHandler handles timeline HTTP requests
type TimelineHandler struct {
	timelineService *services.TimelineService
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timelineService *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

// List handles GET /api/v1/timeline
func (h *TimelineHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.timelineService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list timeline events")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
	})
}

type timelineEventRequest struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Create handles POST /api/v1/timeline
func (h *TimelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req timelineEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.timelineService.Create(r.Context(), models.TimelineEventFields{
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create timeline event")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// Update handles PUT /api/v1/timeline/{id}
func (h *TimelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req timelineEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.timelineService.Update(r.Context(), id, models.TimelineEventFields{
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to update timeline event")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// Delete handles DELETE /api/v1/timeline/{id}: remove one event and
// compact the remaining order values
func (h *TimelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.timelineService.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to delete timeline event")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Event deleted successfully",
	})
}

type reorderRequest struct {
	Events []services.ReorderRequest `json:"events"`
}

// Reorder handles PUT /api/v1/timeline
func (h *TimelineHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid events data", http.StatusBadRequest)
		return
	}

	if err := h.timelineService.Reorder(r.Context(), req.Events); err != nil {
		log.Error().Err(err).Msg("Failed to reorder timeline")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Timeline order updated successfully",
	})
}

// Reset handles DELETE /api/v1/timeline: wipe everything and restore the
// default set
func (h *TimelineHandler) Reset(w http.ResponseWriter, r *http.Request) {
	events, err := h.timelineService.Reset(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to reset timeline")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Timeline reset to default",
		"events":  events,
	})
}
