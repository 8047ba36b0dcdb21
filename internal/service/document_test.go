package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"go.uber.org/zap"
)

type mockBlobStore struct {
	PutFunc    func(ctx context.Context, key string, data io.Reader) (string, error)
	DeleteFunc func(ctx context.Context, fileURL string) error
}

func (m *mockBlobStore) Put(ctx context.Context, key string, data io.Reader) (string, error) {
	return m.PutFunc(ctx, key, data)
}
func (m *mockBlobStore) Delete(ctx context.Context, fileURL string) error {
	return m.DeleteFunc(ctx, fileURL)
}

func TestDocumentUploadFile_KeyLayout(t *testing.T) {
	var gotKey string
	blobs := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, data io.Reader) (string, error) {
			gotKey = key
			return "http://app/files/" + key, nil
		},
	}
	svc := NewDocumentService(activeProfileRepo("p1"), &mockDocumentRepo{}, blobs, zap.NewNop())

	url, err := svc.UploadFile(context.Background(), "clerk1", "will.pdf", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if gotKey != "documents/clerk1/will.pdf" {
		t.Errorf("blob key = %q; want documents/clerk1/will.pdf", gotKey)
	}
	if url == "" {
		t.Error("expected file URL")
	}
}

func TestDocumentUploadFile_PutFailurePropagates(t *testing.T) {
	blobs := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, data io.Reader) (string, error) {
			return "", errors.New("disk full")
		},
	}
	svc := NewDocumentService(activeProfileRepo("p1"), &mockDocumentRepo{}, blobs, zap.NewNop())

	if _, err := svc.UploadFile(context.Background(), "clerk1", "will.pdf", strings.NewReader("data")); err == nil {
		t.Fatal("expected Put failure to propagate")
	}
}

func TestDocumentCreate_RequiresNameAndURL(t *testing.T) {
	svc := NewDocumentService(activeProfileRepo("p1"), &mockDocumentRepo{}, &mockBlobStore{}, zap.NewNop())

	_, err := svc.Create(context.Background(), "clerk1", DocumentInput{Name: "Will"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("Create error = %v; want ErrValidation", err)
	}
}

func TestDocumentCreate_Success(t *testing.T) {
	var stored *models.Document
	documents := &mockDocumentRepo{
		CreateFunc: func(ctx context.Context, d *models.Document) error {
			stored = d
			return nil
		},
	}
	svc := NewDocumentService(activeProfileRepo("p1"), documents, &mockBlobStore{}, zap.NewNop())

	d, err := svc.Create(context.Background(), "clerk1", DocumentInput{
		Name: "Will", FileURL: "http://app/files/documents/clerk1/will.pdf", IsWill: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected document to be stored")
	}
	if !d.IsWill || d.UserID != "p1" {
		t.Errorf("document = %+v", d)
	}
}

func TestDocumentDelete_BlobFailureIsSwallowed(t *testing.T) {
	deleted := false
	documents := &mockDocumentRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*models.Document, error) {
			return &models.Document{ID: id, UserID: userID, FileURL: "http://app/files/x"}, nil
		},
		DeleteFunc: func(ctx context.Context, userID, id string) error {
			deleted = true
			return nil
		},
	}
	blobs := &mockBlobStore{
		DeleteFunc: func(ctx context.Context, fileURL string) error {
			return errors.New("blob gone already")
		},
	}
	svc := NewDocumentService(activeProfileRepo("p1"), documents, blobs, zap.NewNop())

	if err := svc.Delete(context.Background(), "clerk1", "doc1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("expected row deletion despite blob failure")
	}
}
