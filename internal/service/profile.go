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

// ProfileInput carries the owner-editable profile fields.
type ProfileInput struct {
	FullName           string     `json:"fullName"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	CountryOfResidence string     `json:"countryOfResidence"`
	OnboardingComplete *bool      `json:"onboardingComplete"`
}

// ProfileService implements owner profile operations.
type ProfileService struct {
	gate lifecycleGate
	now  func() time.Time
}

// NewProfileService constructs a ProfileService using the provided repository.
func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{
		gate: lifecycleGate{profiles: profiles},
		now:  time.Now,
	}
}

// Create makes the profile on the first onboarding step. Fails when the caller
// already has one.
func (s *ProfileService) Create(ctx context.Context, callerID string, input ProfileInput) (*models.Profile, error) {
	if callerID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	if input.FullName == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: full name and email are required", apperrors.ErrValidation)
	}

	_, err := s.gate.profiles.GetByClerkID(ctx, callerID)
	if err == nil {
		return nil, fmt.Errorf("%w: profile already exists", apperrors.ErrValidation)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	p := &models.Profile{
		ID:                 uuid.NewString(),
		ClerkUserID:        callerID,
		FullName:           input.FullName,
		Email:              input.Email,
		Phone:              input.Phone,
		DateOfBirth:        input.DateOfBirth,
		CountryOfResidence: input.CountryOfResidence,
		Status:             models.StatusActive,
		OnboardingComplete: false,
		CreatedAt:          s.now().UTC(),
	}
	p.UpdatedAt = p.CreatedAt
	if err := s.gate.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the caller's profile. Never gated: a locked owner can still see
// their own data.
func (s *ProfileService) Get(ctx context.Context, callerID string) (*models.Profile, error) {
	return s.gate.resolve(ctx, callerID)
}

// Update rewrites the owner-editable fields. Gated by lifecycle state.
func (s *ProfileService) Update(ctx context.Context, callerID string, input ProfileInput) (*models.Profile, error) {
	p, err := s.gate.requireActive(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		p.FullName = input.FullName
	}
	if input.Email != "" {
		p.Email = input.Email
	}
	if input.Phone != "" {
		p.Phone = input.Phone
	}
	if input.DateOfBirth != nil {
		p.DateOfBirth = input.DateOfBirth
	}
	if input.CountryOfResidence != "" {
		p.CountryOfResidence = input.CountryOfResidence
	}
	if input.OnboardingComplete != nil {
		p.OnboardingComplete = *input.OnboardingComplete
	}

	if err := s.gate.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
