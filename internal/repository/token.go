package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

const tokenColumns = `id, user_id, contact_id, token, expires_at, last_used_at, created_at`

// PostgresTokenRepository implements legacy access token persistence against
// PostgreSQL.
type PostgresTokenRepository struct {
	DB *sql.DB
}

// NewPostgresTokenRepository creates a new PostgresTokenRepository using the
// provided *sql.DB.
func NewPostgresTokenRepository(db *sql.DB) *PostgresTokenRepository {
	return &PostgresTokenRepository{DB: db}
}

func scanToken(row *sql.Row) (*models.LegacyAccessToken, error) {
	var t models.LegacyAccessToken
	err := row.Scan(&t.ID, &t.UserID, &t.ContactID, &t.Token, &t.ExpiresAt,
		&t.LastUsedAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan token: %w", err)
	}
	return &t, nil
}

// GetByToken looks up a token by its exact secret value.
func (r *PostgresTokenRepository) GetByToken(ctx context.Context, token string) (*models.LegacyAccessToken, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM legacy_access_tokens WHERE token = $1`, token)
	return scanToken(row)
}

// GetByContact looks up the token minted for one (profile, contact) pair.
func (r *PostgresTokenRepository) GetByContact(ctx context.Context, userID, contactID string) (*models.LegacyAccessToken, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM legacy_access_tokens WHERE user_id = $1 AND contact_id = $2`,
		userID, contactID)
	return scanToken(row)
}

// Create persists a freshly minted token.
func (r *PostgresTokenRepository) Create(ctx context.Context, t *models.LegacyAccessToken) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO legacy_access_tokens (id, user_id, contact_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.UserID, t.ContactID, t.Token, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

// TouchLastUsed records a resolved access. Informational only; a lost update
// here is acceptable.
func (r *PostgresTokenRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE legacy_access_tokens SET last_used_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch token: %w", err)
	}
	return nil
}
