package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afterly/afterly/internal/models"
)

// PostgresInvitationRepository implements pending invitation persistence
// against PostgreSQL.
type PostgresInvitationRepository struct {
	DB *sql.DB
}

// NewPostgresInvitationRepository creates a new PostgresInvitationRepository
// using the provided *sql.DB.
func NewPostgresInvitationRepository(db *sql.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{DB: db}
}

// Exists checks whether an invitation for the given email already exists.
func (r *PostgresInvitationRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM pending_invitations WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new invitation. The ON CONFLICT DO NOTHING clause keeps a
// concurrent duplicate from turning into an error.
func (r *PostgresInvitationRepository) Create(ctx context.Context, inv *models.PendingInvitation) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO pending_invitations (id, email, name, insurance_ref, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`, inv.ID, inv.Email, inv.Name, inv.InsuranceRef, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}
