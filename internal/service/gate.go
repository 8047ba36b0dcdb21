// Package service provides the business logic for legacy planning: owner-facing
// resource management, the sharing ledger, the death trigger, the legacy access
// resolver, and the insurance sync feed. Persistence is delegated to repository
// interfaces.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/models"
)

// ProfileRepository defines the profile persistence operations shared by the
// services in this package.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByClerkID(ctx context.Context, clerkUserID string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, p *models.Profile) error
	MarkDeceased(ctx context.Context, id string, deceasedAt time.Time) error
	Deactivate(ctx context.Context, id string) error
}

// lifecycleGate resolves the caller's profile and enforces the write gate that
// every owner mutation must pass. Only the death trigger and the insurance
// feed can flip status, so a check-then-act here cannot be raced by the owner.
type lifecycleGate struct {
	profiles ProfileRepository
}

// resolve maps the caller identity to a profile without gating. Used by reads.
func (g lifecycleGate) resolve(ctx context.Context, callerID string) (*models.Profile, error) {
	if callerID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	p, err := g.profiles.GetByClerkID(ctx, callerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// requireActive resolves the caller's profile and fails when its lifecycle
// state no longer admits owner mutations.
func (g lifecycleGate) requireActive(ctx context.Context, callerID string) (*models.Profile, error) {
	p, err := g.resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	switch p.Status {
	case models.StatusDeceased:
		return nil, apperrors.ErrAccountLocked
	case models.StatusInactive:
		return nil, apperrors.ErrAccountDeactivated
	}
	return p, nil
}
