package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/afterly/afterly/internal/middleware"
	"github.com/afterly/afterly/internal/models"
	"github.com/go-chi/chi/v5"
)

// SharingService defines the grant operations required by the HTTP handlers.
type SharingService interface {
	Grant(ctx context.Context, callerID string, kind models.ResourceKind, resourceID string, contactIDs []string) error
	Revoke(ctx context.Context, callerID string, kind models.ResourceKind, resourceID, contactID string) error
	ReplaceAll(ctx context.Context, callerID string, kind models.ResourceKind, resourceID string, contactIDs []string) error
	ListContacts(ctx context.Context, callerID string, kind models.ResourceKind, resourceID string) ([]string, error)
}

// SharingHandler handles HTTP requests for resource grants. Routes carry the
// resource kind as a path segment; unknown kinds 404.
type SharingHandler struct {
	SharingService SharingService
}

// resourceKinds maps URL path segments to resource kinds.
var resourceKinds = map[string]models.ResourceKind{
	"documents": models.KindDocument,
	"folders":   models.KindMediaFolder,
	"accounts":  models.KindAccount,
}

type grantRequest struct {
	ContactIDs []string `json:"contactIds"`
}

func kindFromRequest(r *http.Request) (models.ResourceKind, bool) {
	kind, ok := resourceKinds[chi.URLParam(r, "kind")]
	return kind, ok
}

// Grant handles POST /api/sharing/{kind}/{resourceID}.
func (h *SharingHandler) Grant(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.SharingService.Grant(r.Context(), callerID, kind, chi.URLParam(r, "resourceID"), req.ContactIDs); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}

// ReplaceAll handles PUT /api/sharing/{kind}/{resourceID}. An empty contact
// list clears every grant on the resource.
func (h *SharingHandler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.SharingService.ReplaceAll(r.Context(), callerID, kind, chi.URLParam(r, "resourceID"), req.ContactIDs); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}

// Revoke handles DELETE /api/sharing/{kind}/{resourceID}/{contactID}.
func (h *SharingHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.SharingService.Revoke(r.Context(), callerID, kind, chi.URLParam(r, "resourceID"), chi.URLParam(r, "contactID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}

// ListContacts handles GET /api/sharing/{kind}/{resourceID}.
func (h *SharingHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	ids, err := h.SharingService.ListContacts(r.Context(), callerID, kind, chi.URLParam(r, "resourceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string][]string{"contactIds": ids})
}
