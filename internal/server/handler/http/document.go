package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/afterly/afterly/internal/middleware"
	"github.com/afterly/afterly/internal/models"
	"github.com/afterly/afterly/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds multipart uploads held in memory before spilling to
// temp files.
const maxUploadSize = 32 << 20

// DocumentService defines the document operations required by the HTTP
// handlers.
type DocumentService interface {
	UploadFile(ctx context.Context, callerID, filename string, data io.Reader) (string, error)
	Create(ctx context.Context, callerID string, input service.DocumentInput) (*models.Document, error)
	List(ctx context.Context, callerID string) ([]models.Document, error)
	Update(ctx context.Context, callerID, documentID string, input service.DocumentInput) (*models.Document, error)
	Delete(ctx context.Context, callerID, documentID string) error
}

// DocumentHandler handles HTTP requests for documents.
type DocumentHandler struct {
	DocumentService DocumentService
}

// Upload handles POST /api/documents/upload. It expects a multipart form with
// a single "file" part and returns the stored file URL.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	callerID := middleware.GetCallerIDFromContext(r.Context())
	fileURL, err := h.DocumentService.UploadFile(r.Context(), callerID, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"fileUrl":  fileURL,
		"fileType": header.Header.Get("Content-Type"),
		"fileSize": header.Size,
	})
}

// Create handles POST /api/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	doc, err := h.DocumentService.Create(r.Context(), callerID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, doc)
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	docs, err := h.DocumentService.List(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, docs)
}

// Update handles PUT /api/documents/{documentID}.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	doc, err := h.DocumentService.Update(r.Context(), callerID, chi.URLParam(r, "documentID"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/documents/{documentID}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.DocumentService.Delete(r.Context(), callerID, chi.URLParam(r, "documentID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}
