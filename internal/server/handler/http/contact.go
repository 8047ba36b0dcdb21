package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/afterly/afterly/internal/middleware"
	"github.com/afterly/afterly/internal/models"
	"github.com/afterly/afterly/internal/service"
	"github.com/go-chi/chi/v5"
)

// ContactService defines the trusted contact operations required by the HTTP
// handlers.
type ContactService interface {
	Create(ctx context.Context, callerID string, input service.ContactInput) (*models.TrustedContact, error)
	List(ctx context.Context, callerID string) ([]models.TrustedContact, error)
	Update(ctx context.Context, callerID, contactID string, input service.ContactInput) (*models.TrustedContact, error)
	Delete(ctx context.Context, callerID, contactID string) error
}

// ContactHandler handles HTTP requests for trusted contacts.
type ContactHandler struct {
	ContactService ContactService
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	contact, err := h.ContactService.Create(r.Context(), callerID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, contact)
}

// List handles GET /api/contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	contacts, err := h.ContactService.List(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, contacts)
}

// Update handles PUT /api/contacts/{contactID}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	contact, err := h.ContactService.Update(r.Context(), callerID, chi.URLParam(r, "contactID"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{contactID}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.ContactService.Delete(r.Context(), callerID, chi.URLParam(r, "contactID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}
