package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"wedding-site-backend/internal/imaging"
	"wedding-site-backend/internal/models"
	"wedding-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxCoverUploadBytes = 16 << 20

// AlbumHandler handles album HTTP requests
type AlbumHandler struct {
	albumService *services.AlbumService
}

// NewAlbumHandler creates a new album handler
func NewAlbumHandler(albumService *services.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

// List handles GET /api/v1/albums
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albumService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list albums")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"albums":  albums,
	})
}

// Reset handles DELETE /api/v1/albums: wipe everything and restore the
// default set
func (h *AlbumHandler) Reset(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albumService.Reset(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to reset albums")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Albums reset to default",
		"albums":  albums,
	})
}

type albumUpdateRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	CoverImage       string `json:"coverImage"`
	GooglePhotosLink string `json:"googlePhotosLink"`
}

// Update handles PUT /api/v1/albums/{id}
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req albumUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	album, err := h.albumService.Update(r.Context(), id, models.AlbumFields{
		Title:            req.Title,
		Description:      req.Description,
		GooglePhotosLink: req.GooglePhotosLink,
		CoverImage:       req.CoverImage,
	})
	if err != nil {
		log.Error().Err(err).Str("album_id", id).Msg("Failed to update album")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"album":   album,
	})
}

// UpdateCover handles POST /api/v1/albums/{id}/cover: accepts a raw image
// upload and stores it as a square data-URI cover
func (h *AlbumHandler) UpdateCover(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxCoverUploadBytes); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read image", http.StatusBadRequest)
		return
	}

	targetKB := imaging.DefaultAvatarTargetKB
	if v := r.FormValue("target_kb"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			targetKB = parsed
		}
	}

	album, err := h.albumService.UpdateCover(r.Context(), id, data, targetKB)
	if err != nil {
		log.Error().Err(err).Str("album_id", id).Msg("Failed to update album cover")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"album":   album,
	})
}
