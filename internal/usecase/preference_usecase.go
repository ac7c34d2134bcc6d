package usecase

import (
	"context"
)

// PreferenceUsecase persists the identity-independent display preferences:
// the dark mode toggle and the one-time welcome overlay gate. Both are
// best-effort; a missing value falls back to the default.
type PreferenceUsecase interface {
	DarkMode(ctx context.Context) bool
	SetDarkMode(ctx context.Context, enabled bool) error

	HasSeenWelcome(ctx context.Context) bool
	MarkWelcomeSeen(ctx context.Context) error
}
