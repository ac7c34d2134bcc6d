// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/repository"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// SessionResetHook runs after logout, standing in for the storefront's full
// navigation reset back to the public entry point. It must not block.
type SessionResetHook func()

// authSessionService implements the AuthSessionUsecase interface.
type authSessionService struct {
	store      repository.SessionStore
	authAPI    service.AuthAPI
	profileAPI service.ProfileAPI
	publisher  service.IdentityPublisher
	resetHook  SessionResetHook
	validate   *validator.Validate
	logger     *slog.Logger

	mu      sync.Mutex
	current *entity.Identity
	loading bool
}

// NewAuthSessionService is the constructor for authSessionService. The
// session reports loading until Initialize has resolved the persisted
// token; consumers must not make authorization decisions before that.
func NewAuthSessionService(
	store repository.SessionStore,
	authAPI service.AuthAPI,
	profileAPI service.ProfileAPI,
	publisher service.IdentityPublisher,
	resetHook SessionResetHook,
	logger *slog.Logger,
) usecase.AuthSessionUsecase {
	return &authSessionService{
		store:      store,
		authAPI:    authAPI,
		profileAPI: profileAPI,
		publisher:  publisher,
		resetHook:  resetHook,
		validate:   validator.New(),
		logger:     logger,
		loading:    true,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authSessionService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// Initialize resolves the persisted token into the current identity.
// Every failure path demotes to guest; none of them is fatal to the caller.
func (srv *authSessionService) Initialize(ctx context.Context) error {
	defer srv.setLoading(false)

	// 1. Read the persisted token. No token means a plain guest session.
	token, err := srv.store.Get(ctx, repository.KeyToken)
	if err != nil || token == "" {
		if err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
			srv.log(ctx).Warn("Session store unreadable, starting as guest", slog.Any("error", err))
		}
		srv.assume(ctx, nil)

		return nil
	}

	// 2. A JWT-shaped token with an elapsed exp claim is dead on arrival:
	// fail closed locally without a network round-trip. Opaque tokens skip
	// this and are judged by the API.
	if tokenLooksExpired(token) {
		srv.log(ctx).Info("Persisted token is expired, clearing session")
		srv.clearPersisted(ctx)
		srv.assume(ctx, nil)

		return nil
	}

	// 3. Hydrate optimistically from the cached profile for an immediate
	// paint. Not published: dependents wait for the resolved identity.
	if raw, err := srv.store.Get(ctx, repository.KeyProfile); err == nil {
		var cached entity.Identity
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.ID != "" {
			srv.mu.Lock()
			srv.current = &cached
			srv.mu.Unlock()
		}
	}

	// 4. Ask the API who this token belongs to; server truth overwrites the
	// cache. Any failure, auth or network, clears the session (fail closed).
	identity, err := srv.profileAPI.FetchProfile(ctx)
	if err != nil {
		srv.log(ctx).Warn("Token resolution failed, demoting to guest", slog.Any("error", err))
		srv.clearPersisted(ctx)
		srv.assume(ctx, nil)

		return nil
	}

	srv.persistProfile(ctx, identity)
	srv.assume(ctx, identity)
	srv.log(ctx).Info("Session resolved", slog.String("user_id", identity.ID), slog.String("role", string(identity.Role)))

	return nil
}

// Loading reports whether startup resolution is still in flight.
func (srv *authSessionService) Loading() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.loading
}

// Current returns the resolved identity, or nil for guest.
func (srv *authSessionService) Current() *entity.Identity {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current == nil {
		return nil
	}
	identity := *srv.current

	return &identity
}

// Login exchanges credentials for a token and assumes the returned identity.
// The token is persisted before the identity is set, so a crash between the
// two replays as a normal startup resolution.
func (srv *authSessionService) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	result, err := srv.authAPI.Login(ctx, service.Credentials{Email: email, Password: password})
	if err != nil {
		srv.log(ctx).Info("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "login failed")
	}

	if err := srv.store.Set(ctx, repository.KeyToken, result.Token); err != nil {
		return nil, errors.Wrap(err, "failed to persist session token")
	}

	identity := result.Identity
	srv.persistProfile(ctx, &identity)
	srv.assume(ctx, &identity)
	srv.log(ctx).Info("Login succeeded", slog.String("user_id", identity.ID))

	return &identity, nil
}

// Register creates an account and signs the new user in.
func (srv *authSessionService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.Identity, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidation.WithDetails(err.Error())
	}

	result, err := srv.authAPI.Register(ctx, service.Registration{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		srv.log(ctx).Info("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "registration failed")
	}

	if err := srv.store.Set(ctx, repository.KeyToken, result.Token); err != nil {
		return nil, errors.Wrap(err, "failed to persist session token")
	}

	identity := result.Identity
	srv.persistProfile(ctx, &identity)
	srv.assume(ctx, &identity)
	srv.log(ctx).Info("Registration succeeded", slog.String("user_id", identity.ID))

	return &identity, nil
}

// SetIdentity assigns the current identity directly. The persisted token is
// untouched; the login flow stores it before calling this.
func (srv *authSessionService) SetIdentity(ctx context.Context, identity *entity.Identity) error {
	if identity != nil {
		srv.persistProfile(ctx, identity)
	}
	srv.assume(ctx, identity)

	return nil
}

// profileEnvelope matches the wrapper shapes the API uses interchangeably
// for profile responses.
type profileEnvelope struct {
	User     *entity.Identity `json:"user"`
	Identity *entity.Identity `json:"identity"`
}

// UpdateIdentity merges a profile response, wrapped or bare, into the
// current identity and persists the merged result.
func (srv *authSessionService) UpdateIdentity(ctx context.Context, payload []byte) (*entity.Identity, error) {
	srv.mu.Lock()
	if srv.current == nil {
		srv.mu.Unlock()

		return nil, domainerrors.ErrNotAuthenticated
	}
	base := *srv.current
	srv.mu.Unlock()

	incoming, err := unwrapIdentity(payload)
	if err != nil {
		return nil, err
	}

	merged := base.Merge(*incoming)
	srv.persistProfile(ctx, &merged)

	srv.mu.Lock()
	srv.current = &merged
	srv.mu.Unlock()

	return &merged, nil
}

// UpdateProfile sends the edits to the server and merges the server's
// response into the current identity. The response, not the submitted
// edits, is what gets merged: the server may normalize or reject fields.
func (srv *authSessionService) UpdateProfile(ctx context.Context, update service.ProfileUpdate) (*entity.Identity, error) {
	srv.mu.Lock()
	loading := srv.loading
	signedIn := srv.current != nil
	srv.mu.Unlock()

	if loading {
		return nil, domainerrors.ErrSessionResolving
	}
	if !signedIn {
		return nil, domainerrors.ErrNotAuthenticated
	}

	payload, err := srv.profileAPI.UpdateProfile(ctx, update)
	if err != nil {
		return nil, errors.Wrap(err, "profile update failed")
	}

	return srv.UpdateIdentity(ctx, payload)
}

// Logout clears every trace of the session and reverts to guest.
func (srv *authSessionService) Logout(ctx context.Context) error {
	srv.clearPersisted(ctx)
	srv.assume(ctx, nil)
	srv.log(ctx).Info("Logged out")

	if srv.resetHook != nil {
		srv.resetHook()
	}

	return nil
}

// assume swaps the current identity and notifies subscribers synchronously.
// Publishing happens outside the lock so subscribers can call back in.
func (srv *authSessionService) assume(ctx context.Context, identity *entity.Identity) {
	srv.mu.Lock()
	srv.current = identity
	srv.mu.Unlock()

	srv.publisher.Publish(ctx, identity)
}

func (srv *authSessionService) setLoading(loading bool) {
	srv.mu.Lock()
	srv.loading = loading
	srv.mu.Unlock()
}

func (srv *authSessionService) persistProfile(ctx context.Context, identity *entity.Identity) {
	raw, err := json.Marshal(identity)
	if err != nil {
		srv.log(ctx).Warn("Failed to serialize profile cache", slog.Any("error", err))

		return
	}
	if err := srv.store.Set(ctx, repository.KeyProfile, string(raw)); err != nil {
		srv.log(ctx).Warn("Failed to persist profile cache", slog.Any("error", err))
	}
}

func (srv *authSessionService) clearPersisted(ctx context.Context) {
	if err := srv.store.Delete(ctx, repository.KeyToken); err != nil {
		srv.log(ctx).Warn("Failed to clear persisted token", slog.Any("error", err))
	}
	if err := srv.store.Delete(ctx, repository.KeyProfile); err != nil {
		srv.log(ctx).Warn("Failed to clear profile cache", slog.Any("error", err))
	}
}

// unwrapIdentity decodes a profile payload that may be a bare identity or a
// {"user": ...} / {"identity": ...} envelope.
func unwrapIdentity(payload []byte) (*entity.Identity, error) {
	var envelope profileEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil {
		if envelope.User != nil {
			return envelope.User, nil
		}
		if envelope.Identity != nil {
			return envelope.Identity, nil
		}
	}

	var bare entity.Identity
	if err := json.Unmarshal(payload, &bare); err != nil {
		return nil, errors.Wrap(err, "unrecognized profile payload")
	}

	return &bare, nil
}

// tokenLooksExpired reports whether the token parses as a JWT whose exp
// claim has elapsed. Signature verification is deliberately skipped: the
// token is the server's to judge, this is only a shortcut for the common
// "came back after the session died" case.
func tokenLooksExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
