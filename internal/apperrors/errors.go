// Package apperrors defines the sentinel error kinds shared across services
// and mapped to HTTP responses at the handler boundary.
package apperrors

import "errors"

var (
	// ErrNotAuthenticated means no caller identity was attached to the request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrProfileNotFound means the caller has no profile yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAccountLocked blocks mutations once a profile is DECEASED.
	ErrAccountLocked = errors.New("account locked")
	// ErrAccountDeactivated blocks mutations once a profile is INACTIVE.
	ErrAccountDeactivated = errors.New("account deactivated")
	// ErrNotFound covers absent resources, contacts, and tokens. It is also
	// returned for resources owned by someone else so that cross-owner probes
	// cannot distinguish "absent" from "not yours".
	ErrNotFound = errors.New("not found")
	// ErrValidation covers malformed or inconsistent input.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyProcessed guards the death trigger against duplicate delivery.
	ErrAlreadyProcessed = errors.New("already processed")
)
