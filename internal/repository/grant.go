package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

// grantTable maps a resource kind to its join table and resource column.
// One table per kind, keyed (resource, contact) UNIQUE.
var grantTable = map[models.ResourceKind]struct {
	table  string
	column string
}{
	models.KindDocument:    {"document_access", "document_id"},
	models.KindMediaFolder: {"media_folder_access", "folder_id"},
	models.KindAccount:     {"account_access", "account_id"},
}

// PostgresGrantRepository implements the access grant ledger against PostgreSQL.
// It is parameterized over the resource kind so the three join tables share one
// implementation.
type PostgresGrantRepository struct {
	DB *sql.DB
}

// NewPostgresGrantRepository creates a new PostgresGrantRepository using the
// provided *sql.DB.
func NewPostgresGrantRepository(db *sql.DB) *PostgresGrantRepository {
	return &PostgresGrantRepository{DB: db}
}

// Grant inserts one row per contact. Duplicate grants are silently skipped.
func (r *PostgresGrantRepository) Grant(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error {
	spec, ok := grantTable[kind]
	if !ok {
		return fmt.Errorf("grant: unknown resource kind %q", kind)
	}
	for _, contactID := range contactIDs {
		_, err := r.DB.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (%s, contact_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				spec.table, spec.column),
			resourceID, contactID)
		if err != nil {
			return fmt.Errorf("grant %s: %w", kind, err)
		}
	}
	return nil
}

// Revoke deletes exactly one grant row. Returns apperrors.ErrNotFound when no
// such grant exists.
func (r *PostgresGrantRepository) Revoke(ctx context.Context, kind models.ResourceKind, resourceID, contactID string) error {
	spec, ok := grantTable[kind]
	if !ok {
		return fmt.Errorf("revoke: unknown resource kind %q", kind)
	}
	res, err := r.DB.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND contact_id = $2`, spec.table, spec.column),
		resourceID, contactID)
	if err != nil {
		return fmt.Errorf("revoke %s: %w", kind, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceAll deletes every grant for the resource and inserts the given set
// inside one transaction. An empty set leaves the resource fully unshared.
func (r *PostgresGrantRepository) ReplaceAll(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error {
	spec, ok := grantTable[kind]
	if !ok {
		return fmt.Errorf("replace grants: unknown resource kind %q", kind)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, spec.table, spec.column),
		resourceID)
	if err != nil {
		return fmt.Errorf("clear grants: %w", err)
	}

	for _, contactID := range contactIDs {
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (%s, contact_id) VALUES ($1, $2)`, spec.table, spec.column),
			resourceID, contactID)
		if err != nil {
			return fmt.Errorf("insert grant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListContactIDs returns the contacts the resource is currently shared with.
func (r *PostgresGrantRepository) ListContactIDs(ctx context.Context, kind models.ResourceKind, resourceID string) ([]string, error) {
	spec, ok := grantTable[kind]
	if !ok {
		return nil, fmt.Errorf("list grants: unknown resource kind %q", kind)
	}
	rows, err := r.DB.QueryContext(ctx,
		fmt.Sprintf(`SELECT contact_id FROM %s WHERE %s = $1`, spec.table, spec.column),
		resourceID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
