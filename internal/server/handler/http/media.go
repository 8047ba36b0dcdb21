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

// MediaService defines the media operations required by the HTTP handlers.
type MediaService interface {
	CreateFolder(ctx context.Context, callerID string, input service.FolderInput) (*models.MediaFolder, error)
	UpdateFolder(ctx context.Context, callerID, folderID string, input service.FolderInput) (*models.MediaFolder, error)
	DeleteFolder(ctx context.Context, callerID, folderID string) error
	UploadItem(ctx context.Context, callerID, filename string, data io.Reader, input service.MediaItemInput) (*models.MediaItem, error)
	List(ctx context.Context, callerID string) (*service.MediaOverview, error)
	DeleteItem(ctx context.Context, callerID, itemID string) error
}

// MediaHandler handles HTTP requests for media folders and items.
type MediaHandler struct {
	MediaService MediaService
}

// CreateFolder handles POST /api/media/folders.
func (h *MediaHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var input service.FolderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	folder, err := h.MediaService.CreateFolder(r.Context(), callerID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, folder)
}

// UpdateFolder handles PUT /api/media/folders/{folderID}.
func (h *MediaHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	var input service.FolderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	callerID := middleware.GetCallerIDFromContext(r.Context())
	folder, err := h.MediaService.UpdateFolder(r.Context(), callerID, chi.URLParam(r, "folderID"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /api/media/folders/{folderID}. Items of the
// folder are kept and become unorganized.
func (h *MediaHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.MediaService.DeleteFolder(r.Context(), callerID, chi.URLParam(r, "folderID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}

// UploadItem handles POST /api/media/items. It expects a multipart form with a
// "file" part, an optional "name" field and an optional "folderId" field.
func (h *MediaHandler) UploadItem(w http.ResponseWriter, r *http.Request) {
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

	input := service.MediaItemInput{
		Name:     r.FormValue("name"),
		FileType: header.Header.Get("Content-Type"),
		FileSize: header.Size,
		FolderID: r.FormValue("folderId"),
	}
	if input.Name == "" {
		input.Name = header.Filename
	}

	callerID := middleware.GetCallerIDFromContext(r.Context())
	item, err := h.MediaService.UploadItem(r.Context(), callerID, header.Filename, file, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

// List handles GET /api/media.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	overview, err := h.MediaService.List(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, overview)
}

// DeleteItem handles DELETE /api/media/items/{itemID}.
func (h *MediaHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetCallerIDFromContext(r.Context())
	if err := h.MediaService.DeleteItem(r.Context(), callerID, chi.URLParam(r, "itemID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true})
}
