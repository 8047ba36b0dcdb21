package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

const accountColumns = `id, user_id, category, platform_name, platform_icon, username,
		email, action_on_death, transfer_to_id, notes, created_at, updated_at`

// PostgresAccountRepository implements digital account persistence against PostgreSQL.
type PostgresAccountRepository struct {
	DB *sql.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository using the
// provided *sql.DB.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

func scanAccount(scan func(dest ...any) error) (models.DigitalAccount, error) {
	var a models.DigitalAccount
	var transferTo sql.NullString
	err := scan(&a.ID, &a.UserID, &a.Category, &a.PlatformName, &a.PlatformIcon,
		&a.Username, &a.Email, &a.ActionOnDeath, &transferTo, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.DigitalAccount{}, err
	}
	a.TransferToID = transferTo.String
	return a, nil
}

// Create inserts a new digital account.
func (r *PostgresAccountRepository) Create(ctx context.Context, a *models.DigitalAccount) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO digital_accounts (id, user_id, category, platform_name, platform_icon,
			username, email, action_on_death, transfer_to_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $11)
	`, a.ID, a.UserID, a.Category, a.PlatformName, a.PlatformIcon,
		a.Username, a.Email, a.ActionOnDeath, a.TransferToID, a.Notes, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByID fetches one account scoped to its owner.
func (r *PostgresAccountRepository) GetByID(ctx context.Context, userID, id string) (*models.DigitalAccount, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM digital_accounts WHERE id = $1 AND user_id = $2
	`, id, userID)
	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// ListByUser fetches every account the owner has, category first.
func (r *PostgresAccountRepository) ListByUser(ctx context.Context, userID string) ([]models.DigitalAccount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+accountColumns+` FROM digital_accounts
		 WHERE user_id = $1 ORDER BY category, platform_name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.DigitalAccount
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ListGrantedToContact fetches the accounts explicitly shared with a contact.
func (r *PostgresAccountRepository) ListGrantedToContact(ctx context.Context, contactID string) ([]models.DigitalAccount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT a.id, a.user_id, a.category, a.platform_name, a.platform_icon, a.username,
		       a.email, a.action_on_death, a.transfer_to_id, a.notes, a.created_at, a.updated_at
		  FROM digital_accounts a
		  JOIN account_access g ON g.account_id = a.id
		 WHERE g.contact_id = $1
		 ORDER BY a.category, a.platform_name
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list granted accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.DigitalAccount
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Update rewrites the mutable fields of an owned account.
func (r *PostgresAccountRepository) Update(ctx context.Context, a *models.DigitalAccount) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE digital_accounts
		   SET category = $3, platform_name = $4, platform_icon = $5, username = $6,
		       email = $7, action_on_death = $8, transfer_to_id = NULLIF($9, ''),
		       notes = $10, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
	`, a.ID, a.UserID, a.Category, a.PlatformName, a.PlatformIcon, a.Username,
		a.Email, a.ActionOnDeath, a.TransferToID, a.Notes)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an owned account.
func (r *PostgresAccountRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM digital_accounts WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
