package service

import (
	"context"
	"fmt"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"github.com/google/uuid"
)

// ContactRepository defines the trusted contact persistence operations needed
// by the services in this package.
type ContactRepository interface {
	Create(ctx context.Context, c *models.TrustedContact) error
	ListByUser(ctx context.Context, userID string) ([]models.TrustedContact, error)
	GetByID(ctx context.Context, userID, id string) (*models.TrustedContact, error)
	CountOwned(ctx context.Context, userID string, ids []string) (int, error)
	Update(ctx context.Context, c *models.TrustedContact) error
	Delete(ctx context.Context, userID, id string) error
}

// ContactInput carries the editable trusted contact fields.
type ContactInput struct {
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Phone        string                  `json:"phone"`
	Relationship models.RelationshipType `json:"relationship"`
	Role         models.ContactRole      `json:"role"`
}

func (in ContactInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	switch in.Role {
	case models.RoleExecutor, models.RoleRecipient:
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, in.Role)
	}
	switch in.Relationship {
	case models.RelationshipFamily, models.RelationshipFriend, models.RelationshipCoworker,
		models.RelationshipLegal, models.RelationshipOther:
	default:
		return fmt.Errorf("%w: unknown relationship %q", apperrors.ErrValidation, in.Relationship)
	}
	return nil
}

// ContactService implements trusted contact management.
type ContactService struct {
	gate     lifecycleGate
	contacts ContactRepository
	now      func() time.Time
}

// NewContactService constructs a ContactService using the provided repositories.
func NewContactService(profiles ProfileRepository, contacts ContactRepository) *ContactService {
	return &ContactService{
		gate:     lifecycleGate{profiles: profiles},
		contacts: contacts,
		now:      time.Now,
	}
}

// Create adds a trusted contact for the caller.
func (s *ContactService) Create(ctx context.Context, callerID string, input ContactInput) (*models.TrustedContact, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	c := &models.TrustedContact{
		ID:           uuid.NewString(),
		UserID:       p.ID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Relationship: input.Relationship,
		Role:         input.Role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the caller's trusted contacts. Never gated.
func (s *ContactService) List(ctx context.Context, callerID string) ([]models.TrustedContact, error) {
	p, err := s.gate.resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.contacts.ListByUser(ctx, p.ID)
}

// Update rewrites an owned contact. Changing the role after a legacy token was
// minted changes future resolutions; that is accepted behavior.
func (s *ContactService) Update(ctx context.Context, callerID, contactID string, input ContactInput) (*models.TrustedContact, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	c, err := s.contacts.GetByID(ctx, p.ID, contactID)
	if err != nil {
		return nil, err
	}
	c.Name = input.Name
	c.Email = input.Email
	c.Phone = input.Phone
	c.Relationship = input.Relationship
	c.Role = input.Role

	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes an owned contact. Grants and the legacy token cascade away.
func (s *ContactService) Delete(ctx context.Context, callerID, contactID string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	return s.contacts.Delete(ctx, p.ID, contactID)
}
