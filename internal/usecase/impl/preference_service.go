package impl

import (
	"context"
	"log/slog"
	"strconv"

	"bijou/internal/appctx"
	"bijou/internal/domain/repository"
	"bijou/internal/usecase"

	"github.com/pkg/errors"
)

// preferenceService implements the PreferenceUsecase interface. Preferences
// are identity-independent and best-effort: a missing or unreadable value
// falls back to the default.
type preferenceService struct {
	store  repository.SessionStore
	logger *slog.Logger
}

// NewPreferenceService is the constructor for preferenceService.
func NewPreferenceService(store repository.SessionStore, logger *slog.Logger) usecase.PreferenceUsecase {
	return &preferenceService{
		store:  store,
		logger: logger,
	}
}

func (srv *preferenceService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// DarkMode reports the persisted theme preference, defaulting to light.
func (srv *preferenceService) DarkMode(ctx context.Context) bool {
	return srv.readBool(ctx, repository.KeyDarkMode)
}

// SetDarkMode persists the theme preference.
func (srv *preferenceService) SetDarkMode(ctx context.Context, enabled bool) error {
	if err := srv.store.Set(ctx, repository.KeyDarkMode, strconv.FormatBool(enabled)); err != nil {
		return errors.Wrap(err, "failed to persist dark mode preference")
	}

	return nil
}

// HasSeenWelcome reports whether the one-time welcome overlay was dismissed.
func (srv *preferenceService) HasSeenWelcome(ctx context.Context) bool {
	return srv.readBool(ctx, repository.KeyHasSeenWelcome)
}

// MarkWelcomeSeen closes the welcome gate permanently.
func (srv *preferenceService) MarkWelcomeSeen(ctx context.Context) error {
	if err := srv.store.Set(ctx, repository.KeyHasSeenWelcome, "true"); err != nil {
		return errors.Wrap(err, "failed to persist welcome gate")
	}

	return nil
}

func (srv *preferenceService) readBool(ctx context.Context, key string) bool {
	raw, err := srv.store.Get(ctx, key)
	if err != nil {
		return false
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		srv.log(ctx).Debug("Ignoring malformed preference value", slog.String("key", key))

		return false
	}

	return value
}
