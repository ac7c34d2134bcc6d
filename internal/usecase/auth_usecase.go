// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

// RegisterInput carries a new-account request from the signup form.
type RegisterInput struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// AuthSessionUsecase owns the current identity and the token lifecycle.
//
// Initialize must be called once at startup. Until it completes, Loading
// reports true and dependents must treat the session as unknown, not as
// guest: authorization decisions taken while Loading is true are invalid.
type AuthSessionUsecase interface {
	// Initialize resolves the persisted token into an identity. A dead or
	// missing token resolves to guest; resolution never fails the app.
	Initialize(ctx context.Context) error

	// Loading reports whether startup resolution is still in flight.
	Loading() bool

	// Current returns the resolved identity, or nil for guest.
	Current() *entity.Identity

	// Login exchanges credentials for a token, persists the token, then
	// assumes the returned identity.
	Login(ctx context.Context, email, password string) (*entity.Identity, error)

	// Register creates an account and signs the new user in.
	Register(ctx context.Context, input RegisterInput) (*entity.Identity, error)

	// SetIdentity assigns the current identity directly. It does not touch
	// the persisted token; the login flow stores the token first.
	SetIdentity(ctx context.Context, identity *entity.Identity) error

	// UpdateIdentity merges a server profile response, which may be a bare
	// identity object or a {"user": ...} / {"identity": ...} wrapper, into
	// the current identity and persists the result.
	UpdateIdentity(ctx context.Context, payload []byte) (*entity.Identity, error)

	// UpdateProfile sends profile edits to the server and merges the
	// server's response into the current identity via UpdateIdentity, so
	// server-side normalization wins over what the form submitted.
	UpdateProfile(ctx context.Context, update service.ProfileUpdate) (*entity.Identity, error)

	// Logout clears the token and cached profile, reverts to guest and runs
	// the configured session-reset hook so no view state from the previous
	// identity leaks into the next session.
	Logout(ctx context.Context) error
}
