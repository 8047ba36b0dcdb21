package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/mailer"
	"github.com/afterly/afterly/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvitationRepository defines pending invitation persistence operations.
type InvitationRepository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, inv *models.PendingInvitation) error
}

// NewUserEntry is one insurance-fed signup candidate.
type NewUserEntry struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	InsuranceRef string `json:"insuranceRef"`
}

// DisabledUserEntry is one insurance-fed deactivation.
type DisabledUserEntry struct {
	Email        string `json:"email"`
	ClerkUserID  string `json:"clerkUserId"`
	InsuranceRef string `json:"insuranceRef"`
}

// SyncPayload is the insurance feed batch.
type SyncPayload struct {
	NewUsers      []NewUserEntry      `json:"newUsers"`
	DisabledUsers []DisabledUserEntry `json:"disabledUsers"`
}

// BatchResult tallies one batch loop. Per-item failures never abort the batch.
type BatchResult struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// SyncResults reports both loops of one sync call.
type SyncResults struct {
	NewUsers      BatchResult `json:"newUsers"`
	DisabledUsers BatchResult `json:"disabledUsers"`
}

// InsuranceService processes the external insurance feed: invitation upserts
// for new users and profile deactivation for disabled ones.
type InsuranceService struct {
	profiles    ProfileRepository
	invitations InvitationRepository
	sender      mailer.Sender
	baseURL     string
	log         *zap.Logger
	now         func() time.Time
}

// NewInsuranceService constructs an InsuranceService. sender may be nil, in
// which case invitation emails are skipped.
func NewInsuranceService(
	profiles ProfileRepository,
	invitations InvitationRepository,
	sender mailer.Sender,
	baseURL string,
	log *zap.Logger,
) *InsuranceService {
	return &InsuranceService{
		profiles:    profiles,
		invitations: invitations,
		sender:      sender,
		baseURL:     baseURL,
		log:         log,
		now:         time.Now,
	}
}

// Sync runs both batch loops and returns their tallies. This is a deliberately
// permissive partial-success contract, not all-or-nothing.
func (s *InsuranceService) Sync(ctx context.Context, payload SyncPayload) SyncResults {
	var results SyncResults
	results.NewUsers.Errors = []string{}
	results.DisabledUsers.Errors = []string{}

	for _, user := range payload.NewUsers {
		if err := s.inviteUser(ctx, user); err != nil {
			s.log.Error("failed to process new user",
				zap.String("email", user.Email), zap.Error(err))
			results.NewUsers.Failed++
			results.NewUsers.Errors = append(results.NewUsers.Errors,
				fmt.Sprintf("Failed to invite %s", user.Email))
			continue
		}
		results.NewUsers.Processed++
	}

	for _, user := range payload.DisabledUsers {
		if err := s.disableUser(ctx, user); err != nil {
			s.log.Error("failed to disable user",
				zap.String("email", user.Email), zap.Error(err))
			results.DisabledUsers.Failed++
			results.DisabledUsers.Errors = append(results.DisabledUsers.Errors,
				disableErrorMessage(user, err))
			continue
		}
		results.DisabledUsers.Processed++
	}

	return results
}

func disableErrorMessage(user DisabledUserEntry, err error) string {
	who := user.Email
	if who == "" {
		who = user.ClerkUserID
	}
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		return fmt.Sprintf("User not found: %s", who)
	}
	return fmt.Sprintf("Failed to disable %s", who)
}

// inviteUser upserts the pending invitation and best-effort dispatches the
// invitation email. An existing invitation counts as processed.
func (s *InsuranceService) inviteUser(ctx context.Context, user NewUserEntry) error {
	if user.Email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	exists, err := s.invitations.Exists(ctx, user.Email)
	if err != nil {
		return err
	}
	if exists {
		s.log.Info("invitation already exists", zap.String("email", user.Email))
		return nil
	}

	inv := &models.PendingInvitation{
		ID:           uuid.NewString(),
		Email:        user.Email,
		Name:         user.Name,
		InsuranceRef: user.InsuranceRef,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return err
	}

	if s.sender == nil {
		s.log.Warn("email not configured, skipping invitation email",
			zap.String("email", user.Email))
		return nil
	}
	msg, err := mailer.Invitation(user.Email, user.Name, s.baseURL+"/sign-up")
	if err != nil {
		s.log.Error("failed to render invitation email", zap.Error(err))
		return nil
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		// Email dispatch never fails the item once the invitation is stored.
		s.log.Error("failed to send invitation email",
			zap.String("email", user.Email), zap.Error(err))
		return nil
	}
	s.log.Info("invitation email sent", zap.String("email", user.Email))
	return nil
}

// disableUser resolves the profile by external identity first, falling back to
// email, and flips it to INACTIVE.
func (s *InsuranceService) disableUser(ctx context.Context, user DisabledUserEntry) error {
	var profile *models.Profile
	var err error

	if user.ClerkUserID != "" {
		profile, err = s.profiles.GetByClerkID(ctx, user.ClerkUserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	if profile == nil && user.Email != "" {
		profile, err = s.profiles.GetByEmail(ctx, user.Email)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	if profile == nil {
		return apperrors.ErrProfileNotFound
	}

	if err := s.profiles.Deactivate(ctx, profile.ID); err != nil {
		return err
	}
	s.log.Info("profile deactivated",
		zap.String("profileId", profile.ID), zap.String("email", user.Email))
	return nil
}
