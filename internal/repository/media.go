package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

// PostgresMediaRepository implements media folder and item persistence against
// PostgreSQL.
type PostgresMediaRepository struct {
	DB *sql.DB
}

// NewPostgresMediaRepository creates a new PostgresMediaRepository using the
// provided *sql.DB.
func NewPostgresMediaRepository(db *sql.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{DB: db}
}

func scanMediaItems(rows *sql.Rows) ([]models.MediaItem, error) {
	defer rows.Close()
	var items []models.MediaItem
	for rows.Next() {
		var it models.MediaItem
		var folderID sql.NullString
		if err := rows.Scan(&it.ID, &it.UserID, &folderID, &it.Name, &it.FileURL,
			&it.FileType, &it.FileSize, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media item: %w", err)
		}
		it.FolderID = folderID.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateFolder inserts a new media folder.
func (r *PostgresMediaRepository) CreateFolder(ctx context.Context, f *models.MediaFolder) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO media_folders (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, f.ID, f.UserID, f.Name, f.Description, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// GetFolderByID fetches one folder scoped to its owner.
func (r *PostgresMediaRepository) GetFolderByID(ctx context.Context, userID, id string) (*models.MediaFolder, error) {
	var f models.MediaFolder
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, created_at, updated_at
		  FROM media_folders WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&f.ID, &f.UserID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &f, nil
}

// UpdateFolder rewrites the mutable fields of an owned folder.
func (r *PostgresMediaRepository) UpdateFolder(ctx context.Context, f *models.MediaFolder) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE media_folders
		   SET name = $3, description = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
	`, f.ID, f.UserID, f.Name, f.Description)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFolder removes an owned folder. Its items survive as unorganized media
// because the foreign key sets folder_id to NULL.
func (r *PostgresMediaRepository) DeleteFolder(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM media_folders WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListFoldersByUser fetches every folder the owner has, items included.
func (r *PostgresMediaRepository) ListFoldersByUser(ctx context.Context, userID string) ([]models.MediaFolder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, description, created_at, updated_at
		  FROM media_folders WHERE user_id = $1 ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	folders, err := r.scanFoldersWithItems(ctx, rows)
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// ListFoldersGrantedToContact fetches the folders explicitly shared with a
// contact, items included.
func (r *PostgresMediaRepository) ListFoldersGrantedToContact(ctx context.Context, contactID string) ([]models.MediaFolder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT f.id, f.user_id, f.name, f.description, f.created_at, f.updated_at
		  FROM media_folders f
		  JOIN media_folder_access g ON g.folder_id = f.id
		 WHERE g.contact_id = $1
		 ORDER BY f.updated_at DESC
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list granted folders: %w", err)
	}
	return r.scanFoldersWithItems(ctx, rows)
}

func (r *PostgresMediaRepository) scanFoldersWithItems(ctx context.Context, rows *sql.Rows) ([]models.MediaFolder, error) {
	var folders []models.MediaFolder
	var scanErr error
	for rows.Next() {
		var f models.MediaFolder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Description,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			scanErr = err
			break
		}
		folders = append(folders, f)
	}
	if scanErr == nil {
		scanErr = rows.Err()
	}
	rows.Close()
	if scanErr != nil {
		return nil, fmt.Errorf("scan folders: %w", scanErr)
	}
	for i := range folders {
		items, err := r.ListItemsByFolder(ctx, folders[i].ID)
		if err != nil {
			return nil, err
		}
		folders[i].Items = items
	}
	return folders, nil
}

// CreateItem inserts a new media item.
func (r *PostgresMediaRepository) CreateItem(ctx context.Context, it *models.MediaItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO media_items (id, user_id, folder_id, name, file_url, file_type, file_size, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
	`, it.ID, it.UserID, it.FolderID, it.Name, it.FileURL, it.FileType, it.FileSize, it.CreatedAt)
	if err != nil {
		return fmt.Errorf("create media item: %w", err)
	}
	return nil
}

// GetItemByID fetches one media item scoped to its owner.
func (r *PostgresMediaRepository) GetItemByID(ctx context.Context, userID, id string) (*models.MediaItem, error) {
	var it models.MediaItem
	var folderID sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, folder_id, name, file_url, file_type, file_size, created_at
		  FROM media_items WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&it.ID, &it.UserID, &folderID, &it.Name, &it.FileURL,
		&it.FileType, &it.FileSize, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get media item: %w", err)
	}
	it.FolderID = folderID.String
	return &it, nil
}

// ListItemsByFolder fetches the items of one folder.
func (r *PostgresMediaRepository) ListItemsByFolder(ctx context.Context, folderID string) ([]models.MediaItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, folder_id, name, file_url, file_type, file_size, created_at
		  FROM media_items WHERE folder_id = $1 ORDER BY created_at DESC
	`, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder items: %w", err)
	}
	return scanMediaItems(rows)
}

// ListUnorganizedByUser fetches the owner's items that belong to no folder.
func (r *PostgresMediaRepository) ListUnorganizedByUser(ctx context.Context, userID string) ([]models.MediaItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, folder_id, name, file_url, file_type, file_size, created_at
		  FROM media_items WHERE user_id = $1 AND folder_id IS NULL ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list unorganized items: %w", err)
	}
	return scanMediaItems(rows)
}

// DeleteItem removes an owned media item.
func (r *PostgresMediaRepository) DeleteItem(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM media_items WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete media item: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
