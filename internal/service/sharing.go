package service

import (
	"context"
	"fmt"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

// GrantRepository defines the access grant ledger operations.
type GrantRepository interface {
	Grant(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error
	Revoke(ctx context.Context, kind models.ResourceKind, resourceID, contactID string) error
	ReplaceAll(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error
	ListContactIDs(ctx context.Context, kind models.ResourceKind, resourceID string) ([]string, error)
}

// SharingService implements the owner-facing grant ledger over all three
// shareable resource kinds. Grants only affect RECIPIENT visibility; executor
// visibility is structural, so a grant for an executor is a harmless no-op.
type SharingService struct {
	gate      lifecycleGate
	grants    GrantRepository
	contacts  ContactRepository
	documents DocumentRepository
	media     MediaRepository
	accounts  AccountRepository
}

// NewSharingService constructs a SharingService using the provided repositories.
func NewSharingService(
	profiles ProfileRepository,
	grants GrantRepository,
	contacts ContactRepository,
	documents DocumentRepository,
	media MediaRepository,
	accounts AccountRepository,
) *SharingService {
	return &SharingService{
		gate:      lifecycleGate{profiles: profiles},
		grants:    grants,
		contacts:  contacts,
		documents: documents,
		media:     media,
		accounts:  accounts,
	}
}

// verifyResource checks that the resource exists and belongs to the owner.
// Cross-owner references surface as apperrors.ErrNotFound so other owners'
// resources stay invisible.
func (s *SharingService) verifyResource(ctx context.Context, userID string, kind models.ResourceKind, resourceID string) error {
	var err error
	switch kind {
	case models.KindDocument:
		_, err = s.documents.GetByID(ctx, userID, resourceID)
	case models.KindMediaFolder:
		_, err = s.media.GetFolderByID(ctx, userID, resourceID)
	case models.KindAccount:
		_, err = s.accounts.GetByID(ctx, userID, resourceID)
	default:
		return fmt.Errorf("%w: unknown resource kind %q", apperrors.ErrValidation, kind)
	}
	return err
}

// verifyContacts checks that every contact id belongs to the owner.
func (s *SharingService) verifyContacts(ctx context.Context, userID string, contactIDs []string) error {
	if len(contactIDs) == 0 {
		return nil
	}
	owned, err := s.contacts.CountOwned(ctx, userID, contactIDs)
	if err != nil {
		return err
	}
	if owned != len(contactIDs) {
		return apperrors.ErrNotFound
	}
	return nil
}

// Grant shares a resource with the given contacts. Duplicate grants are
// silently skipped.
func (s *SharingService) Grant(ctx context.Context, callerID string, kind models.ResourceKind, resourceID string, contactIDs []string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	if len(contactIDs) == 0 {
		return fmt.Errorf("%w: at least one contact is required", apperrors.ErrValidation)
	}
	if err := s.verifyResource(ctx, p.ID, kind, resourceID); err != nil {
		return err
	}
	if err := s.verifyContacts(ctx, p.ID, contactIDs); err != nil {
		return err
	}
	return s.grants.Grant(ctx, kind, resourceID, contactIDs)
}

// Revoke unshares a resource from one contact.
func (s *SharingService) Revoke(ctx context.Context, callerID string, kind models.ResourceKind, resourceID, contactID string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	if err := s.verifyResource(ctx, p.ID, kind, resourceID); err != nil {
		return err
	}
	return s.grants.Revoke(ctx, kind, resourceID, contactID)
}

// ReplaceAll rewrites the full sharing set of a resource. An empty contact
// list leaves the resource fully unshared.
func (s *SharingService) ReplaceAll(ctx context.Context, callerID string, kind models.ResourceKind, resourceID string, contactIDs []string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	if err := s.verifyResource(ctx, p.ID, kind, resourceID); err != nil {
		return err
	}
	if err := s.verifyContacts(ctx, p.ID, contactIDs); err != nil {
		return err
	}
	return s.grants.ReplaceAll(ctx, kind, resourceID, contactIDs)
}

// ListContacts returns the contacts a resource is currently shared with.
// Never gated.
func (s *SharingService) ListContacts(ctx context.Context, callerID string, kind models.ResourceKind, resourceID string) ([]string, error) {
	p, err := s.gate.resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.verifyResource(ctx, p.ID, kind, resourceID); err != nil {
		return nil, err
	}
	return s.grants.ListContactIDs(ctx, kind, resourceID)
}
