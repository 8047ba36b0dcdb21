package service

import (
	"context"
	"time"

	"github.com/afterly/afterly/internal/models"
	"go.uber.org/zap"
)

// LegacyState tells the rendering layer which page to show.
type LegacyState string

const (
	// LegacyStateOK means the token resolved and the view carries data.
	LegacyStateOK LegacyState = "ok"
	// LegacyStateExpired means the token exists but passed its expiry.
	LegacyStateExpired LegacyState = "expired"
	// LegacyStateNotAvailable means the owner is not deceased. Tokens should
	// not exist before death, so this is a defensive state.
	LegacyStateNotAvailable LegacyState = "not_available"
)

// LegacyView is the read-only snapshot served to a trusted contact. It carries
// no identifiers usable for mutation: the token path exposes no write
// operations at all.
type LegacyView struct {
	State LegacyState `json:"state"`

	OwnerName  string     `json:"ownerName,omitempty"`
	DeceasedAt *time.Time `json:"deceasedAt,omitempty"`

	ContactName string             `json:"contactName,omitempty"`
	Role        models.ContactRole `json:"role,omitempty"`
	IsExecutor  bool               `json:"isExecutor,omitempty"`

	Documents        []models.Document       `json:"documents,omitempty"`
	MediaFolders     []models.MediaFolder    `json:"mediaFolders,omitempty"`
	UnorganizedMedia []models.MediaItem      `json:"unorganizedMedia,omitempty"`
	Accounts         []models.DigitalAccount `json:"accounts,omitempty"`
}

// LegacyService resolves bearer tokens into role-scoped read-only views.
type LegacyService struct {
	tokens    TokenRepository
	profiles  ProfileRepository
	contacts  ContactRepository
	documents DocumentRepository
	media     MediaRepository
	accounts  AccountRepository
	log       *zap.Logger
	now       func() time.Time
}

// NewLegacyService constructs a LegacyService using the provided repositories.
func NewLegacyService(
	tokens TokenRepository,
	profiles ProfileRepository,
	contacts ContactRepository,
	documents DocumentRepository,
	media MediaRepository,
	accounts AccountRepository,
	log *zap.Logger,
) *LegacyService {
	return &LegacyService{
		tokens:    tokens,
		profiles:  profiles,
		contacts:  contacts,
		documents: documents,
		media:     media,
		accounts:  accounts,
		log:       log,
		now:       time.Now,
	}
}

// Resolve validates the token and assembles the visibility-scoped view.
// An unknown token returns apperrors.ErrNotFound; the caller must render it
// exactly like any other missing page so the endpoint cannot be used as a
// token-validity oracle.
func (s *LegacyService) Resolve(ctx context.Context, token string) (*LegacyView, error) {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if t.ExpiresAt != nil && t.ExpiresAt.Before(s.now()) {
		return &LegacyView{State: LegacyStateExpired}, nil
	}

	// Best-effort bookkeeping; a failure must not block the view.
	if err := s.tokens.TouchLastUsed(ctx, t.ID, s.now().UTC()); err != nil {
		s.log.Warn("failed to touch legacy token", zap.String("tokenId", t.ID), zap.Error(err))
	}

	profile, err := s.profiles.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	if profile.Status != models.StatusDeceased {
		return &LegacyView{State: LegacyStateNotAvailable}, nil
	}

	contact, err := s.contacts.GetByID(ctx, t.UserID, t.ContactID)
	if err != nil {
		return nil, err
	}

	view := &LegacyView{
		State:       LegacyStateOK,
		OwnerName:   profile.FullName,
		DeceasedAt:  profile.DeceasedAt,
		ContactName: contact.Name,
		Role:        contact.Role,
		IsExecutor:  contact.Role == models.RoleExecutor,
	}

	if view.IsExecutor {
		err = s.resolveExecutor(ctx, profile.ID, view)
	} else {
		err = s.resolveRecipient(ctx, contact.ID, view)
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// resolveExecutor loads the full structural ownership set. Grants are
// irrelevant for executors.
func (s *LegacyService) resolveExecutor(ctx context.Context, userID string, view *LegacyView) error {
	var err error
	if view.Documents, err = s.documents.ListByUser(ctx, userID); err != nil {
		return err
	}
	if view.MediaFolders, err = s.media.ListFoldersByUser(ctx, userID); err != nil {
		return err
	}
	if view.UnorganizedMedia, err = s.media.ListUnorganizedByUser(ctx, userID); err != nil {
		return err
	}
	if view.Accounts, err = s.accounts.ListByUser(ctx, userID); err != nil {
		return err
	}
	return nil
}

// resolveRecipient loads exactly the granted set, one query per resource kind.
func (s *LegacyService) resolveRecipient(ctx context.Context, contactID string, view *LegacyView) error {
	var err error
	if view.Documents, err = s.documents.ListGrantedToContact(ctx, contactID); err != nil {
		return err
	}
	if view.MediaFolders, err = s.media.ListFoldersGrantedToContact(ctx, contactID); err != nil {
		return err
	}
	if view.Accounts, err = s.accounts.ListGrantedToContact(ctx, contactID); err != nil {
		return err
	}
	return nil
}
