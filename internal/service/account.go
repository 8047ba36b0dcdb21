package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
	"github.com/google/uuid"
)

// AccountRepository defines the digital account persistence operations needed
// by the services in this package.
type AccountRepository interface {
	Create(ctx context.Context, a *models.DigitalAccount) error
	GetByID(ctx context.Context, userID, id string) (*models.DigitalAccount, error)
	ListByUser(ctx context.Context, userID string) ([]models.DigitalAccount, error)
	ListGrantedToContact(ctx context.Context, contactID string) ([]models.DigitalAccount, error)
	Update(ctx context.Context, a *models.DigitalAccount) error
	Delete(ctx context.Context, userID, id string) error
}

// AccountInput carries the editable digital account fields.
type AccountInput struct {
	Category      models.AccountCategory `json:"category"`
	PlatformName  string                 `json:"platformName"`
	PlatformIcon  string                 `json:"platformIcon"`
	Username      string                 `json:"username"`
	Email         string                 `json:"email"`
	ActionOnDeath models.ActionOnDeath   `json:"actionOnDeath"`
	TransferToID  string                 `json:"transferToId"`
	Notes         string                 `json:"notes"`
}

// AccountService implements digital account inventory management.
type AccountService struct {
	gate     lifecycleGate
	accounts AccountRepository
	contacts ContactRepository
	now      func() time.Time
}

// NewAccountService constructs an AccountService using the provided repositories.
func NewAccountService(profiles ProfileRepository, accounts AccountRepository, contacts ContactRepository) *AccountService {
	return &AccountService{
		gate:     lifecycleGate{profiles: profiles},
		accounts: accounts,
		contacts: contacts,
		now:      time.Now,
	}
}

// validateInput checks enum fields and the TRANSFER target. A TRANSFER action
// must name a contact owned by the caller.
func (s *AccountService) validateInput(ctx context.Context, userID string, input AccountInput) error {
	if input.PlatformName == "" {
		return fmt.Errorf("%w: platform name is required", apperrors.ErrValidation)
	}
	switch input.Category {
	case models.CategorySocialMedia, models.CategoryEmail, models.CategoryFinancial,
		models.CategoryCrypto, models.CategorySubscriptions, models.CategoryOther:
	default:
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, input.Category)
	}
	switch input.ActionOnDeath {
	case models.ActionDelete, models.ActionTransfer, models.ActionMemorialize:
	default:
		return fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, input.ActionOnDeath)
	}
	if input.ActionOnDeath == models.ActionTransfer {
		if input.TransferToID == "" {
			return fmt.Errorf("%w: transfer action requires a transfer contact", apperrors.ErrValidation)
		}
		if _, err := s.contacts.GetByID(ctx, userID, input.TransferToID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: transfer contact not found", apperrors.ErrValidation)
			}
			return err
		}
	}
	return nil
}

// Create inventories a new digital account.
func (s *AccountService) Create(ctx context.Context, callerID string, input AccountInput) (*models.DigitalAccount, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, p.ID, input); err != nil {
		return nil, err
	}

	a := &models.DigitalAccount{
		ID:            uuid.NewString(),
		UserID:        p.ID,
		Category:      input.Category,
		PlatformName:  input.PlatformName,
		PlatformIcon:  input.PlatformIcon,
		Username:      input.Username,
		Email:         input.Email,
		ActionOnDeath: input.ActionOnDeath,
		TransferToID:  input.TransferToID,
		Notes:         input.Notes,
		CreatedAt:     s.now().UTC(),
	}
	a.UpdatedAt = a.CreatedAt
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns every account the caller has. Never gated.
func (s *AccountService) List(ctx context.Context, callerID string) ([]models.DigitalAccount, error) {
	p, err := s.gate.resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.accounts.ListByUser(ctx, p.ID)
}

// Update rewrites an owned account.
func (s *AccountService) Update(ctx context.Context, callerID, accountID string, input AccountInput) (*models.DigitalAccount, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, p.ID, input); err != nil {
		return nil, err
	}

	a, err := s.accounts.GetByID(ctx, p.ID, accountID)
	if err != nil {
		return nil, err
	}
	a.Category = input.Category
	a.PlatformName = input.PlatformName
	a.PlatformIcon = input.PlatformIcon
	a.Username = input.Username
	a.Email = input.Email
	a.ActionOnDeath = input.ActionOnDeath
	a.TransferToID = input.TransferToID
	a.Notes = input.Notes

	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an owned account.
func (s *AccountService) Delete(ctx context.Context, callerID, accountID string) error {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return err
	}
	return s.accounts.Delete(ctx, p.ID, accountID)
}
