package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wedding-site-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondJSON writes a JSON response body with the given status
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondServiceError maps service errors onto the HTTP error taxonomy.
// Internal details are never exposed; callers log them first.
func respondServiceError(w http.ResponseWriter, err error) {
	if verr, ok := services.AsValidation(err); ok {
		respondError(w, verr.Message, http.StatusBadRequest)
		return
	}
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		respondError(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		respondError(w, "You can only delete cards you created", http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		respondError(w, "Not found", http.StatusNotFound)
	default:
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}
