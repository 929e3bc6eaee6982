package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"resto-backoffice/internal/models"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// writeErrorResponse writes an error response in JSON format
func writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// writeError maps the core error taxonomy to HTTP status codes. Every
// failure carries the typed message so the caller can render it.
func writeError(w http.ResponseWriter, err error, requestID string) {
	var validationErr models.ValidationError
	var notFoundErr models.NotFoundError
	var transitionErr models.InvalidTransitionError
	var conflictErr models.ConflictError

	switch {
	case errors.As(err, &validationErr):
		writeErrorResponse(w, http.StatusBadRequest, validationErr.Error(), requestID)
	case errors.As(err, &notFoundErr):
		writeErrorResponse(w, http.StatusNotFound, notFoundErr.Error(), requestID)
	case errors.As(err, &transitionErr):
		writeErrorResponse(w, http.StatusConflict, transitionErr.Error(), requestID)
	case errors.As(err, &conflictErr):
		writeErrorResponse(w, http.StatusConflict, conflictErr.Error(), requestID)
	case errors.Is(err, models.ErrPersistence):
		writeErrorResponse(w, http.StatusServiceUnavailable, "store temporarily unavailable, retry the request", requestID)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error", requestID)
	}
}

// decodeJSON parses a request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return models.ValidationError{Field: "body", Message: "invalid JSON payload"}
	}
	return nil
}
