package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"github.com/afterly/afterly/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaRepository defines the media folder and item persistence operations
// needed by the services in this package.
type MediaRepository interface {
	CreateFolder(ctx context.Context, f *models.MediaFolder) error
	GetFolderByID(ctx context.Context, userID, id string) (*models.MediaFolder, error)
	UpdateFolder(ctx context.Context, f *models.MediaFolder) error
	DeleteFolder(ctx context.Context, userID, id string) error
	ListFoldersByUser(ctx context.Context, userID string) ([]models.MediaFolder, error)
	ListFoldersGrantedToContact(ctx context.Context, contactID string) ([]models.MediaFolder, error)
	CreateItem(ctx context.Context, it *models.MediaItem) error
	GetItemByID(ctx context.Context, userID, id string) (*models.MediaItem, error)
	ListUnorganizedByUser(ctx context.Context, userID string) ([]models.MediaItem, error)
	DeleteItem(ctx context.Context, userID, id string) error
}

// FolderInput carries the editable media folder fields.
type FolderInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MediaItemInput carries the metadata of an uploaded media item.
type MediaItemInput struct {
	Name     string `json:"name"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	FolderID string `json:"folderId"`
}

// MediaOverview is the owner's media listing: folders with their items plus
// the items that belong to no folder.
type MediaOverview struct {
	Folders     []models.MediaFolder `json:"folders"`
	Unorganized []models.MediaItem   `json:"unorganized"`
}

// MediaService implements media folder and item management.
type MediaService struct {
	gate  lifecycleGate
	media MediaRepository
	blobs storage.BlobStore
	log   *zap.Logger
	now   func() time.Time
}

// NewMediaService constructs a MediaService using the provided repository and
// blob store.
func NewMediaService(profiles ProfileRepository, media MediaRepository, blobs storage.BlobStore, log *zap.Logger) *MediaService {
	return &MediaService{
		gate:  lifecycleGate{profiles: profiles},
		media: media,
		blobs: blobs,
		log:   log,
		now:   time.Now,
	}
}

// CreateFolder adds a media folder.
func (s *MediaService) CreateFolder(ctx context.Context, callerID string, input FolderInput) (*models.MediaFolder, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: folder name is required", apperrors.ErrValidation)
	}

	f := &models.MediaFolder{
		ID:          uuid.NewString(),
		UserID:      p.ID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   s.now().UTC(),
	}
	f.UpdatedAt = f.CreatedAt
	if err := s.media.CreateFolder(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFolder rewrites an owned folder's fields.
func (s *MediaService) UpdateFolder(ctx context.Context, callerID, folderID string, input FolderInput) (*models.MediaFolder, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}

	f, err := s.media.GetFolderByID(ctx, p.ID, folderID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		f.Name = input.Name
	}
	f.Description = input.Description

	if err := s.media.UpdateFolder(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFolder removes an owned folder. Its items become unorganized.
func (s *MediaService) DeleteFolder(ctx context.Context, callerID, folderID string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	return s.media.DeleteFolder(ctx, p.ID, folderID)
}

// UploadItem stores the raw file and records the item in one step.
func (s *MediaService) UploadItem(ctx context.Context, callerID, filename string, data io.Reader, input MediaItemInput) (*models.MediaItem, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", apperrors.ErrValidation)
	}
	if input.FolderID != "" {
		if _, err := s.media.GetFolderByID(ctx, p.ID, input.FolderID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: folder not found", apperrors.ErrValidation)
			}
			return nil, err
		}
	}

	url, err := s.blobs.Put(ctx, fmt.Sprintf("media/%s/%s", p.ClerkUserID, filename), data)
	if err != nil {
		return nil, fmt.Errorf("store media file: %w", err)
	}

	name := input.Name
	if name == "" {
		name = filename
	}
	it := &models.MediaItem{
		ID:        uuid.NewString(),
		UserID:    p.ID,
		FolderID:  input.FolderID,
		Name:      name,
		FileURL:   url,
		FileType:  input.FileType,
		FileSize:  input.FileSize,
		CreatedAt: s.now().UTC(),
	}
	if err := s.media.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// List returns the caller's media overview. Never gated.
func (s *MediaService) List(ctx context.Context, callerID string) (*MediaOverview, error) {
	p, err := s.gate.resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	folders, err := s.media.ListFoldersByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	unorganized, err := s.media.ListUnorganizedByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &MediaOverview{Folders: folders, Unorganized: unorganized}, nil
}

// DeleteItem removes an owned media item. The blob delete is best-effort.
func (s *MediaService) DeleteItem(ctx context.Context, callerID, itemID string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	it, err := s.media.GetItemByID(ctx, p.ID, itemID)
	if err != nil {
		return err
	}
	if err := s.media.DeleteItem(ctx, p.ID, itemID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, it.FileURL); err != nil {
		s.log.Error("failed to delete media blob",
			zap.String("itemId", itemID), zap.Error(err))
	}
	return nil
}
