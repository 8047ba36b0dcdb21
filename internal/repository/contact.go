package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"github.com/lib/pq"
)

const contactColumns = `id, user_id, name, email, phone, relationship, role, created_at`

// PostgresContactRepository implements trusted contact persistence against PostgreSQL.
type PostgresContactRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresContactRepository creates a new PostgresContactRepository using the
// provided *sql.DB.
func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{DB: db}
}

func scanContactRows(rows *sql.Rows) ([]models.TrustedContact, error) {
	defer rows.Close()
	var contacts []models.TrustedContact
	for rows.Next() {
		var c models.TrustedContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
			&c.Relationship, &c.Role, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Create inserts a new trusted contact.
func (r *PostgresContactRepository) Create(ctx context.Context, c *models.TrustedContact) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO trusted_contacts (id, user_id, name, email, phone, relationship, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Relationship, c.Role, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// ListByUser fetches every trusted contact the owner has.
func (r *PostgresContactRepository) ListByUser(ctx context.Context, userID string) ([]models.TrustedContact, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+contactColumns+` FROM trusted_contacts WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return scanContactRows(rows)
}

// GetByID fetches one contact scoped to its owner. Returns apperrors.ErrNotFound
// when the contact is absent or belongs to a different owner.
func (r *PostgresContactRepository) GetByID(ctx context.Context, userID, id string) (*models.TrustedContact, error) {
	var c models.TrustedContact
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+contactColumns+` FROM trusted_contacts WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
		&c.Relationship, &c.Role, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// CountOwned reports how many of the given contact ids belong to the owner.
// Used to validate contact-id lists before granting access.
func (r *PostgresContactRepository) CountOwned(ctx context.Context, userID string, ids []string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM trusted_contacts WHERE user_id = $1 AND id = ANY($2)
	`, userID, pq.Array(ids)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}

// Update rewrites the mutable fields of an owned contact.
func (r *PostgresContactRepository) Update(ctx context.Context, c *models.TrustedContact) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE trusted_contacts
		   SET name = $3, email = $4, phone = $5, relationship = $6, role = $7
		 WHERE id = $1 AND user_id = $2
	`, c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Relationship, c.Role)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an owned contact. Grants and legacy tokens cascade away with it.
func (r *PostgresContactRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM trusted_contacts WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
