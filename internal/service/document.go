package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"github.com/afterly/afterly/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentRepository defines the document persistence operations needed by the
// services in this package.
type DocumentRepository interface {
	Create(ctx context.Context, d *models.Document) error
	GetByID(ctx context.Context, userID, id string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
	ListGrantedToContact(ctx context.Context, contactID string) ([]models.Document, error)
	Update(ctx context.Context, d *models.Document) error
	Delete(ctx context.Context, userID, id string) error
}

// DocumentInput carries the document metadata fields.
type DocumentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	IsWill      bool   `json:"isWill"`
}

// DocumentService implements document management including blob upload.
type DocumentService struct {
	gate      lifecycleGate
	documents DocumentRepository
	blobs     storage.BlobStore
	log       *zap.Logger
	now       func() time.Time
}

// NewDocumentService constructs a DocumentService using the provided
// repository and blob store.
func NewDocumentService(profiles ProfileRepository, documents DocumentRepository, blobs storage.BlobStore, log *zap.Logger) *DocumentService {
	return &DocumentService{
		gate:      lifecycleGate{profiles: profiles},
		documents: documents,
		blobs:     blobs,
		log:       log,
		now:       time.Now,
	}
}

// UploadFile stores the raw file and returns its URL. Put failures propagate.
func (s *DocumentService) UploadFile(ctx context.Context, callerID, filename string, data io.Reader) (string, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return "", err
	}
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", apperrors.ErrValidation)
	}
	url, err := s.blobs.Put(ctx, fmt.Sprintf("documents/%s/%s", p.ClerkUserID, filename), data)
	if err != nil {
		return "", fmt.Errorf("store document file: %w", err)
	}
	return url, nil
}

// Create records document metadata referencing an already uploaded blob.
func (s *DocumentService) Create(ctx context.Context, callerID string, input DocumentInput) (*models.Document, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" || input.FileURL == "" {
		return nil, fmt.Errorf("%w: name and file url are required", apperrors.ErrValidation)
	}

	d := &models.Document{
		ID:          uuid.NewString(),
		UserID:      p.ID,
		Name:        input.Name,
		Description: input.Description,
		FileURL:     input.FileURL,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		IsWill:      input.IsWill,
		CreatedAt:   s.now().UTC(),
	}
	d.UpdatedAt = d.CreatedAt
	if err := s.documents.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns every document the caller has, will first. Never gated.
func (s *DocumentService) List(ctx context.Context, callerID string) ([]models.Document, error) {
	p, err := s.gate.resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.documents.ListByUser(ctx, p.ID)
}

// Update rewrites an owned document's metadata.
func (s *DocumentService) Update(ctx context.Context, callerID, documentID string, input DocumentInput) (*models.Document, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}

	d, err := s.documents.GetByID(ctx, p.ID, documentID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		d.Name = input.Name
	}
	d.Description = input.Description
	d.IsWill = input.IsWill

	if err := s.documents.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes an owned document. The blob delete is best-effort: a failure
// is logged and the row still goes away.
func (s *DocumentService) Delete(ctx context.Context, callerID, documentID string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	d, err := s.documents.GetByID(ctx, p.ID, documentID)
	if err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, p.ID, documentID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, d.FileURL); err != nil {
		s.log.Error("failed to delete document blob",
			zap.String("documentId", documentID), zap.Error(err))
	}
	return nil
}
