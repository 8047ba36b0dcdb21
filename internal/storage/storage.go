// Package storage abstracts the blob store holding uploaded documents and media.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BlobStore is the opaque file store. Put returns a URL that is stored
// verbatim on the resource row; Delete takes that URL back.
type BlobStore interface {
	Put(ctx context.Context, key string, data io.Reader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// FileStore implements BlobStore on the local filesystem. Files live under
// Root and are served under BaseURL + "/files/".
type FileStore struct {
	Root    string
	BaseURL string
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FileStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes the blob under its key and returns the public URL.
func (s *FileStore) Put(ctx context.Context, key string, data io.Reader) (string, error) {
	clean := path.Clean("/" + key)
	dst := filepath.Join(s.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.BaseURL + "/files" + clean, nil
}

// Delete removes the blob behind a URL previously returned by Put.
// A missing file is not an error.
func (s *FileStore) Delete(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("parse blob url: %w", err)
	}
	rel := strings.TrimPrefix(u.Path, "/files/")
	dst := filepath.Join(s.Root, filepath.FromSlash(path.Clean("/"+rel)))
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
