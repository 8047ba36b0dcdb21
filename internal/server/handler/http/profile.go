package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/afterly/afterly/internal/middleware"
	"github.com/afterly/afterly/internal/models"
	"github.com/afterly/afterly/internal/service"
)

// ProfileService defines the profile operations required by the HTTP handlers.
type ProfileService interface {
	Create(ctx context.Context, callerID string, input service.ProfileInput) (*models.Profile, error)
	Get(ctx context.Context, callerID string) (*models.Profile, error)
	Update(ctx context.Context, callerID string, input service.ProfileInput) (*models.Profile, error)
}

// ProfileHandler handles HTTP requests for the owner profile.
type ProfileHandler struct {
	ProfileService ProfileService
}

// Create handles POST /api/profile (first onboarding step).
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	profile, err := h.ProfileService.Create(r.Context(), callerID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, profile)
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	profile, err := h.ProfileService.Get(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	profile, err := h.ProfileService.Update(r.Context(), callerID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}
