package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"go.uber.org/zap"
)

// legacyFixture wires a resolver around one deceased owner (alice) with an
// executor (bob) and a recipient (carol). Alice owns two documents, one
// folder, one unorganized item, and one account; only doc1 is shared with
// carol.
func legacyFixture(t *testing.T) *LegacyService {
	t.Helper()

	deceasedAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	tokens := &mockTokenRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.LegacyAccessToken, error) {
			switch token {
			case "bob-token":
				return &models.LegacyAccessToken{ID: "t1", UserID: "alice", ContactID: "bob"}, nil
			case "carol-token":
				return &models.LegacyAccessToken{ID: "t2", UserID: "alice", ContactID: "carol"}, nil
			}
			return nil, apperrors.ErrNotFound
		},
		TouchLastUsedFunc: func(ctx context.Context, id string, at time.Time) error {
			return nil
		},
	}
	profiles := &mockProfileRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Profile, error) {
			return &models.Profile{
				ID: "alice", FullName: "Alice", Status: models.StatusDeceased, DeceasedAt: &deceasedAt,
			}, nil
		},
	}
	contacts := &mockContactRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*models.TrustedContact, error) {
			switch id {
			case "bob":
				return &models.TrustedContact{ID: "bob", Name: "Bob", Role: models.RoleExecutor}, nil
			case "carol":
				return &models.TrustedContact{ID: "carol", Name: "Carol", Role: models.RoleRecipient}, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	documents := &mockDocumentRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]models.Document, error) {
			return []models.Document{{ID: "doc1", IsWill: true}, {ID: "doc2"}}, nil
		},
		ListGrantedToContactFunc: func(ctx context.Context, contactID string) ([]models.Document, error) {
			if contactID == "carol" {
				return []models.Document{{ID: "doc1", IsWill: true}}, nil
			}
			return nil, nil
		},
	}
	media := &mockMediaRepo{
		ListFoldersByUserFunc: func(ctx context.Context, userID string) ([]models.MediaFolder, error) {
			return []models.MediaFolder{{ID: "f1", Name: "Photos"}}, nil
		},
		ListFoldersGrantedToContactFunc: func(ctx context.Context, contactID string) ([]models.MediaFolder, error) {
			return nil, nil
		},
		ListUnorganizedByUserFunc: func(ctx context.Context, userID string) ([]models.MediaItem, error) {
			return []models.MediaItem{{ID: "m1"}}, nil
		},
	}
	accounts := &mockAccountRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]models.DigitalAccount, error) {
			return []models.DigitalAccount{{ID: "a1", ActionOnDeath: models.ActionTransfer, TransferToID: "bob"}}, nil
		},
		ListGrantedToContactFunc: func(ctx context.Context, contactID string) ([]models.DigitalAccount, error) {
			return nil, nil
		},
	}
	return NewLegacyService(tokens, profiles, contacts, documents, media, accounts, zap.NewNop())
}

func TestResolve_UnknownToken(t *testing.T) {
	svc := legacyFixture(t)

	_, err := svc.Resolve(context.Background(), "no-such-token")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Resolve error = %v; want ErrNotFound", err)
	}
}

func TestResolve_ExecutorSeesEverything(t *testing.T) {
	svc := legacyFixture(t)

	view, err := svc.Resolve(context.Background(), "bob-token")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.State != LegacyStateOK {
		t.Fatalf("State = %q; want ok", view.State)
	}
	if !view.IsExecutor {
		t.Error("expected executor view")
	}
	if len(view.Documents) != 2 {
		t.Errorf("Documents = %d; want 2", len(view.Documents))
	}
	if len(view.Accounts) != 1 {
		t.Errorf("Accounts = %d; want 1", len(view.Accounts))
	}
	if len(view.MediaFolders) != 1 || len(view.UnorganizedMedia) != 1 {
		t.Errorf("MediaFolders = %d, UnorganizedMedia = %d; want 1, 1",
			len(view.MediaFolders), len(view.UnorganizedMedia))
	}
	if view.OwnerName != "Alice" || view.DeceasedAt == nil {
		t.Errorf("owner summary = %q, %v", view.OwnerName, view.DeceasedAt)
	}
}

func TestResolve_RecipientSeesGrantsOnly(t *testing.T) {
	svc := legacyFixture(t)

	view, err := svc.Resolve(context.Background(), "carol-token")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.IsExecutor {
		t.Error("expected recipient view")
	}
	if len(view.Documents) != 1 || view.Documents[0].ID != "doc1" {
		t.Errorf("Documents = %v; want only doc1", view.Documents)
	}
	if len(view.Accounts) != 0 {
		t.Errorf("Accounts = %d; want 0", len(view.Accounts))
	}
	if len(view.UnorganizedMedia) != 0 {
		t.Errorf("UnorganizedMedia = %d; recipients never see unorganized items", len(view.UnorganizedMedia))
	}
}

func TestResolve_ExpiredShortCircuits(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	touched := false
	tokens := &mockTokenRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.LegacyAccessToken, error) {
			return &models.LegacyAccessToken{ID: "t1", UserID: "alice", ContactID: "bob", ExpiresAt: &expired}, nil
		},
		TouchLastUsedFunc: func(ctx context.Context, id string, at time.Time) error {
			touched = true
			return nil
		},
	}
	svc := NewLegacyService(tokens, nil, nil, nil, nil, nil, zap.NewNop())

	view, err := svc.Resolve(context.Background(), "bob-token")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.State != LegacyStateExpired {
		t.Errorf("State = %q; want expired", view.State)
	}
	if touched {
		t.Error("expired token must not be touched or resolved further")
	}
}

func TestResolve_OwnerNotDeceased(t *testing.T) {
	tokens := &mockTokenRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.LegacyAccessToken, error) {
			return &models.LegacyAccessToken{ID: "t1", UserID: "alice", ContactID: "bob"}, nil
		},
		TouchLastUsedFunc: func(ctx context.Context, id string, at time.Time) error {
			return nil
		},
	}
	profiles := &mockProfileRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Profile, error) {
			return &models.Profile{ID: "alice", Status: models.StatusActive}, nil
		},
	}
	svc := NewLegacyService(tokens, profiles, nil, nil, nil, nil, zap.NewNop())

	view, err := svc.Resolve(context.Background(), "bob-token")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.State != LegacyStateNotAvailable {
		t.Errorf("State = %q; want not_available", view.State)
	}
}

func TestResolve_TouchFailureIsIgnored(t *testing.T) {
	deceasedAt := time.Now()
	tokens := &mockTokenRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.LegacyAccessToken, error) {
			return &models.LegacyAccessToken{ID: "t1", UserID: "alice", ContactID: "carol"}, nil
		},
		TouchLastUsedFunc: func(ctx context.Context, id string, at time.Time) error {
			return errors.New("db busy")
		},
	}
	profiles := &mockProfileRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Profile, error) {
			return &models.Profile{ID: "alice", Status: models.StatusDeceased, DeceasedAt: &deceasedAt}, nil
		},
	}
	contacts := &mockContactRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*models.TrustedContact, error) {
			return &models.TrustedContact{ID: "carol", Role: models.RoleRecipient}, nil
		},
	}
	documents := &mockDocumentRepo{
		ListGrantedToContactFunc: func(ctx context.Context, contactID string) ([]models.Document, error) {
			return nil, nil
		},
	}
	media := &mockMediaRepo{
		ListFoldersGrantedToContactFunc: func(ctx context.Context, contactID string) ([]models.MediaFolder, error) {
			return nil, nil
		},
	}
	accounts := &mockAccountRepo{
		ListGrantedToContactFunc: func(ctx context.Context, contactID string) ([]models.DigitalAccount, error) {
			return nil, nil
		},
	}
	svc := NewLegacyService(tokens, profiles, contacts, documents, media, accounts, zap.NewNop())

	view, err := svc.Resolve(context.Background(), "carol-token")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.State != LegacyStateOK {
		t.Errorf("State = %q; want ok despite touch failure", view.State)
	}
}
