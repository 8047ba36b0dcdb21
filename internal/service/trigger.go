package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/mailer"
	"github.com/afterly/afterly/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenRepository defines the legacy access token persistence operations.
type TokenRepository interface {
	GetByToken(ctx context.Context, token string) (*models.LegacyAccessToken, error)
	GetByContact(ctx context.Context, userID, contactID string) (*models.LegacyAccessToken, error)
	Create(ctx context.Context, t *models.LegacyAccessToken) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

// TriggerInput identifies the deceased owner. At least one of Email or
// ClerkUserID is required.
type TriggerInput struct {
	Email       string     `json:"email"`
	ClerkUserID string     `json:"clerkUserId"`
	DeathDate   *time.Time `json:"deathDate"`
}

// AccessTokenInfo describes one minted (or reused) token in the trigger summary.
type AccessTokenInfo struct {
	ContactName  string             `json:"contactName"`
	ContactEmail string             `json:"contactEmail"`
	Role         models.ContactRole `json:"role"`
	AccessLink   string             `json:"accessLink"`
}

// TriggerSummary reports what the death trigger did.
type TriggerSummary struct {
	UserID                  string            `json:"userId"`
	UserName                string            `json:"userName"`
	DeceasedAt              time.Time         `json:"deceasedAt"`
	TrustedContactsNotified int               `json:"trustedContactsNotified"`
	AccessTokens            []AccessTokenInfo `json:"accessTokens"`
}

// TriggerService orchestrates the death trigger: lock the profile, mint one
// legacy token per trusted contact, and dispatch notifications.
type TriggerService struct {
	profiles ProfileRepository
	contacts ContactRepository
	tokens   TokenRepository
	sender   mailer.Sender
	baseURL  string
	log      *zap.Logger
	now      func() time.Time
}

// NewTriggerService constructs a TriggerService. sender may be nil, in which
// case notifications are skipped.
func NewTriggerService(
	profiles ProfileRepository,
	contacts ContactRepository,
	tokens TokenRepository,
	sender mailer.Sender,
	baseURL string,
	log *zap.Logger,
) *TriggerService {
	return &TriggerService{
		profiles: profiles,
		contacts: contacts,
		tokens:   tokens,
		sender:   sender,
		baseURL:  baseURL,
		log:      log,
		now:      time.Now,
	}
}

// generateToken mints a 256-bit hex-encoded secret.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Trigger processes one death event. The status flip is the single commit
// point; everything after it is best-effort and independently retryable by
// re-delivering the trigger (which then reuses existing tokens).
func (s *TriggerService) Trigger(ctx context.Context, input TriggerInput) (*TriggerSummary, error) {
	if input.Email == "" && input.ClerkUserID == "" {
		return nil, fmt.Errorf("%w: either email or clerkUserId is required", apperrors.ErrValidation)
	}

	profile, err := s.findProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	if profile.Status == models.StatusDeceased {
		return nil, apperrors.ErrAlreadyProcessed
	}

	deceasedAt := s.now().UTC()
	if input.DeathDate != nil {
		deceasedAt = input.DeathDate.UTC()
	}
	if err := s.profiles.MarkDeceased(ctx, profile.ID, deceasedAt); err != nil {
		return nil, err
	}
	s.log.Info("profile marked deceased",
		zap.String("profileId", profile.ID),
		zap.Time("deceasedAt", deceasedAt),
	)

	contactList, err := s.contacts.ListByUser(ctx, profile.ID)
	if err != nil {
		// The lifecycle transition is already committed; report it anyway.
		s.log.Error("failed to list contacts after death trigger",
			zap.String("profileId", profile.ID), zap.Error(err))
		contactList = nil
	}

	summary := &TriggerSummary{
		UserID:     profile.ID,
		UserName:   profile.FullName,
		DeceasedAt: deceasedAt,
	}

	for _, contact := range contactList {
		token, err := s.tokenForContact(ctx, profile.ID, contact.ID)
		if err != nil {
			// Token generation is isolated per contact.
			s.log.Error("failed to generate token for contact",
				zap.String("contactId", contact.ID), zap.Error(err))
			continue
		}

		accessLink := s.baseURL + "/legacy/" + token
		summary.AccessTokens = append(summary.AccessTokens, AccessTokenInfo{
			ContactName:  contact.Name,
			ContactEmail: contact.Email,
			Role:         contact.Role,
			AccessLink:   accessLink,
		})

		s.notify(ctx, contact, profile.FullName, accessLink)
	}
	summary.TrustedContactsNotified = len(summary.AccessTokens)

	return summary, nil
}

func (s *TriggerService) findProfile(ctx context.Context, input TriggerInput) (*models.Profile, error) {
	if input.ClerkUserID != "" {
		p, err := s.profiles.GetByClerkID(ctx, input.ClerkUserID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if input.Email != "" {
		p, err := s.profiles.GetByEmail(ctx, input.Email)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

// tokenForContact reuses the existing token for the pair or mints a new one.
// Tokens have no expiration by default.
func (s *TriggerService) tokenForContact(ctx context.Context, userID, contactID string) (string, error) {
	existing, err := s.tokens.GetByContact(ctx, userID, contactID)
	if err == nil {
		return existing.Token, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	secret, err := generateToken()
	if err != nil {
		return "", err
	}
	t := &models.LegacyAccessToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		ContactID: contactID,
		Token:     secret,
		CreatedAt: s.now().UTC(),
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return "", err
	}
	return secret, nil
}

// notify dispatches the death notification. Failures are logged and swallowed:
// one bad mailbox must not abort the other contacts or roll anything back.
func (s *TriggerService) notify(ctx context.Context, contact models.TrustedContact, deceasedName, accessLink string) {
	if s.sender == nil || contact.Email == "" {
		s.log.Warn("skipping death notification",
			zap.String("contactId", contact.ID),
			zap.Bool("hasEmail", contact.Email != ""),
		)
		return
	}
	msg, err := mailer.DeathNotification(contact.Email, contact.Name, deceasedName, accessLink)
	if err != nil {
		s.log.Error("failed to render death notification", zap.Error(err))
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Error("failed to send death notification",
			zap.String("contactEmail", contact.Email), zap.Error(err))
		return
	}
	s.log.Info("death notification sent", zap.String("contactEmail", contact.Email))
}
