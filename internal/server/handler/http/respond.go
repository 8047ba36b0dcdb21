// Package http provides the HTTP handlers and routing for the legacy
// planning service.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/afterly/afterly/internal/apperrors"
)

// writeData writes the {data} half of the owner-facing envelope.
func writeData(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

// writeError maps a service error onto a status code and the {error} half of
// the envelope. Services never panic across this boundary; everything arrives
// here as an error value.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForError(err))
	_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAlreadyProcessed):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAccountLocked),
		errors.Is(err, apperrors.ErrAccountDeactivated):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
