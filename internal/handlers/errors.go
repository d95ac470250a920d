package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reelguess/internal/service"
	"reelguess/internal/validation"
)

// writeJSON writes a JSON response body with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithError writes a JSON error body and logs the underlying cause
func respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	writeJSON(w, status, map[string]string{"error": userMsg})
}

// respondWithGameError maps the game engine's typed errors onto transport
// status codes. The engine never chooses status codes itself.
func respondWithGameError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	var notFound service.NotFoundError
	var conflict service.ConflictError
	var exhausted service.ExhaustedError
	var persistence service.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), nil)
	case errors.As(err, &notFound):
		respondWithError(w, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &conflict):
		respondWithError(w, http.StatusConflict, conflict.Error(), nil)
	case errors.As(err, &exhausted):
		respondWithError(w, http.StatusConflict, exhausted.Error(), nil)
	case errors.As(err, &persistence):
		respondWithError(w, http.StatusInternalServerError, "Internal server error", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}
