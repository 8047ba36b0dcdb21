package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

func setupTokenMock(t *testing.T) (*PostgresTokenRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresTokenRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func tokenRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "contact_id", "token", "expires_at", "last_used_at", "created_at",
	})
}

func TestTokenGetByToken_Found(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM legacy_access_tokens WHERE token = $1`)).
		WithArgs("secret").
		WillReturnRows(tokenRows().AddRow("t1", "p1", "c1", "secret", nil, nil, time.Now()))

	tok, err := repo.GetByToken(context.Background(), "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.UserID != "p1" || tok.ContactID != "c1" {
		t.Errorf("token = %+v", tok)
	}
}

func TestTokenGetByToken_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM legacy_access_tokens WHERE token = $1`)).
		WithArgs("unknown").
		WillReturnRows(tokenRows())

	_, err := repo.GetByToken(context.Background(), "unknown")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetByToken error = %v; want ErrNotFound", err)
	}
}

func TestTokenGetByContact(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM legacy_access_tokens WHERE user_id = $1 AND contact_id = $2`)).
		WithArgs("p1", "c1").
		WillReturnRows(tokenRows().AddRow("t1", "p1", "c1", "secret", nil, nil, time.Now()))

	tok, err := repo.GetByContact(context.Background(), "p1", "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Token != "secret" {
		t.Errorf("token = %q; want secret", tok.Token)
	}
}

func TestTokenCreate(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO legacy_access_tokens`)).
		WithArgs("t1", "p1", "c1", "secret", nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tok := &models.LegacyAccessToken{ID: "t1", UserID: "p1", ContactID: "c1", Token: "secret", CreatedAt: now}
	if err := repo.Create(context.Background(), tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTokenTouchLastUsed(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	at := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE legacy_access_tokens SET last_used_at = $2 WHERE id = $1`)).
		WithArgs("t1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchLastUsed(context.Background(), "t1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
