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

// AccountService defines the digital account operations required by the HTTP
// handlers.
type AccountService interface {
	Create(ctx context.Context, callerID string, input service.AccountInput) (*models.DigitalAccount, error)
	List(ctx context.Context, callerID string) ([]models.DigitalAccount, error)
	Update(ctx context.Context, callerID, accountID string, input service.AccountInput) (*models.DigitalAccount, error)
	Delete(ctx context.Context, callerID, accountID string) error
}

// AccountHandler handles HTTP requests for digital accounts.
type AccountHandler struct {
	AccountService AccountService
}

// Create handles POST /api/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	account, err := h.AccountService.Create(r.Context(), callerID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, account)
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	accounts, err := h.AccountService.List(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, accounts)
}

// Update handles PUT /api/accounts/{accountID}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	account, err := h.AccountService.Update(r.Context(), callerID, chi.URLParam(r, "accountID"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, account)
}

// Delete handles DELETE /api/accounts/{accountID}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.AccountService.Delete(r.Context(), callerID, chi.URLParam(r, "accountID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}
