package handlers

import (
	"io"
	"net/http"
	"strconv"

	"wedding-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxPhotoUploadBytes = 32 << 20

// OwnerTokenHeader carries the card capability issued at submission time
const OwnerTokenHeader = "X-Owner-Token"

// MemoryCardHandler handles memory wall HTTP requests
type MemoryCardHandler struct {
	cardService *services.MemoryCardService
}

// NewMemoryCardHandler creates a new memory card handler
func NewMemoryCardHandler(cardService *services.MemoryCardService) *MemoryCardHandler {
	return &MemoryCardHandler{cardService: cardService}
}

// List handles GET /api/v1/memory-cards
func (h *MemoryCardHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	fingerprint := r.URL.Query().Get("deviceFingerprint")

	cards, err := h.cardService.List(r.Context(), limit, fingerprint)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list memory cards")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cards":   cards,
		"total":   len(cards),
	})
}

// Get handles GET /api/v1/memory-cards/{id}
func (h *MemoryCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fingerprint := r.URL.Query().Get("deviceFingerprint")

	card, err := h.cardService.Get(r.Context(), id, fingerprint)
	if err != nil {
		log.Error().Err(err).Str("card_id", id).Msg("Failed to get memory card")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"card":    card,
	})
}

// Create handles POST /api/v1/memory-cards: a multipart guest submission
// with an optional photo
func (h *MemoryCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	input := services.CreateCardInput{
		Name:              r.FormValue("name"),
		Message:           r.FormValue("message"),
		Password:          r.FormValue("password"),
		DeviceFingerprint: r.FormValue("deviceFingerprint"),
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			respondError(w, "Failed to read photo", http.StatusBadRequest)
			return
		}
		input.Photo = data
		input.PhotoName = header.Filename
	}

	card, ownerToken, err := h.cardService.Create(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Str("name", input.Name).Msg("Failed to create memory card")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("card_id", card.ID).
		Int64("serial", card.SerialNumber).
		Msg("Memory card created")

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"card":       card,
		"ownerToken": ownerToken,
	})
}

// Delete handles DELETE /api/v1/memory-cards/{id}: guests present the
// capability token they received at submission time
func (h *MemoryCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	token := r.Header.Get(OwnerTokenHeader)
	if token == "" {
		token = r.URL.Query().Get("ownerToken")
	}

	if err := h.cardService.DeleteAsOwner(r.Context(), id, token); err != nil {
		log.Warn().Err(err).Str("card_id", id).Msg("Rejected memory card deletion")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Memory card deleted successfully",
	})
}

// AdminDelete handles DELETE /api/v1/admin/memory-cards/{id}; the admin
// session middleware has already vetted the caller
func (h *MemoryCardHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.cardService.DeleteAsAdmin(r.Context(), id); err != nil {
		log.Error().Err(err).Str("card_id", id).Msg("Failed to delete memory card")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Memory card deleted successfully",
	})
}
