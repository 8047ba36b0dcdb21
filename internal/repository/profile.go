// Package repository provides persistence implementations for the legacy
// planning domain using a PostgreSQL database.
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

const profileColumns = `id, clerk_user_id, full_name, email, phone, date_of_birth,
		country_of_residence, status, deceased_at, onboarding_complete, created_at, updated_at`

// PostgresProfileRepository implements profile persistence against PostgreSQL.
type PostgresProfileRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository with the
// given database connection.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.ClerkUserID, &p.FullName, &p.Email, &p.Phone, &p.DateOfBirth,
		&p.CountryOfResidence, &p.Status, &p.DeceasedAt, &p.OnboardingComplete,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

// GetByID fetches a profile by its primary identifier.
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// GetByClerkID fetches a profile by its external identity reference.
func (r *PostgresProfileRepository) GetByClerkID(ctx context.Context, clerkUserID string) (*models.Profile, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE clerk_user_id = $1`, clerkUserID)
	return scanProfile(row)
}

// GetByEmail fetches a profile by its contact email.
func (r *PostgresProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
	return scanProfile(row)
}

// Create inserts a new profile row.
func (r *PostgresProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (id, clerk_user_id, full_name, email, phone, date_of_birth,
			country_of_residence, status, onboarding_complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`, p.ID, p.ClerkUserID, p.FullName, p.Email, p.Phone, p.DateOfBirth,
		p.CountryOfResidence, p.Status, p.OnboardingComplete, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Update rewrites the mutable profile fields.
func (r *PostgresProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles
		   SET full_name = $2, email = $3, phone = $4, date_of_birth = $5,
		       country_of_residence = $6, onboarding_complete = $7, updated_at = NOW()
		 WHERE id = $1
	`, p.ID, p.FullName, p.Email, p.Phone, p.DateOfBirth,
		p.CountryOfResidence, p.OnboardingComplete)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// MarkDeceased flips the profile to DECEASED and records the death timestamp.
func (r *PostgresProfileRepository) MarkDeceased(ctx context.Context, id string, deceasedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET status = $2, deceased_at = $3, updated_at = NOW() WHERE id = $1
	`, id, models.StatusDeceased, deceasedAt)
	if err != nil {
		return fmt.Errorf("mark deceased: %w", err)
	}
	return nil
}

// Deactivate flips the profile to INACTIVE.
func (r *PostgresProfileRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, models.StatusInactive)
	if err != nil {
		return fmt.Errorf("deactivate profile: %w", err)
	}
	return nil
}
