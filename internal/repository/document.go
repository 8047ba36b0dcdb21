package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

const documentColumns = `id, user_id, name, description, file_url, file_type, file_size,
		is_will, created_at, updated_at`

// PostgresDocumentRepository implements document persistence against PostgreSQL.
type PostgresDocumentRepository struct {
	DB *sql.DB
}

// NewPostgresDocumentRepository creates a new PostgresDocumentRepository using
// the provided *sql.DB.
func NewPostgresDocumentRepository(db *sql.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{DB: db}
}

func scanDocuments(rows *sql.Rows) ([]models.Document, error) {
	defer rows.Close()
	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Description, &d.FileURL,
			&d.FileType, &d.FileSize, &d.IsWill, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Create inserts a new document row.
func (r *PostgresDocumentRepository) Create(ctx context.Context, d *models.Document) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO documents (id, user_id, name, description, file_url, file_type,
			file_size, is_will, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, d.ID, d.UserID, d.Name, d.Description, d.FileURL, d.FileType,
		d.FileSize, d.IsWill, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// GetByID fetches one document scoped to its owner.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, userID, id string) (*models.Document, error) {
	var d models.Document
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+documentColumns+` FROM documents WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&d.ID, &d.UserID, &d.Name, &d.Description, &d.FileURL,
		&d.FileType, &d.FileSize, &d.IsWill, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListByUser fetches every document the owner has, will first.
func (r *PostgresDocumentRepository) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+documentColumns+` FROM documents
		 WHERE user_id = $1 ORDER BY is_will DESC, updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return scanDocuments(rows)
}

// ListGrantedToContact fetches the documents explicitly shared with a contact.
func (r *PostgresDocumentRepository) ListGrantedToContact(ctx context.Context, contactID string) ([]models.Document, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT d.id, d.user_id, d.name, d.description, d.file_url, d.file_type,
		       d.file_size, d.is_will, d.created_at, d.updated_at
		  FROM documents d
		  JOIN document_access g ON g.document_id = d.id
		 WHERE g.contact_id = $1
		 ORDER BY d.is_will DESC, d.updated_at DESC
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list granted documents: %w", err)
	}
	return scanDocuments(rows)
}

// Update rewrites the mutable metadata of an owned document.
func (r *PostgresDocumentRepository) Update(ctx context.Context, d *models.Document) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE documents
		   SET name = $3, description = $4, is_will = $5, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
	`, d.ID, d.UserID, d.Name, d.Description, d.IsWill)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an owned document. Access grants cascade away with it.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM documents WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
