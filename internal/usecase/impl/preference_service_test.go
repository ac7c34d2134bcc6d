package impl

import (
	"context"
	"testing"

	"bijou/internal/domain/repository"
	"bijou/internal/infra/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_DarkMode(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewPreferenceService(store, newDiscardLogger())
	ctx := context.Background()

	assert.False(t, svc.DarkMode(ctx))

	require.NoError(t, svc.SetDarkMode(ctx, true))
	assert.True(t, svc.DarkMode(ctx))

	require.NoError(t, svc.SetDarkMode(ctx, false))
	assert.False(t, svc.DarkMode(ctx))
}

func TestPreferenceService_WelcomeGate(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewPreferenceService(store, newDiscardLogger())
	ctx := context.Background()

	assert.False(t, svc.HasSeenWelcome(ctx))

	require.NoError(t, svc.MarkWelcomeSeen(ctx))
	assert.True(t, svc.HasSeenWelcome(ctx))
}

func TestPreferenceService_MalformedValueFallsBack(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewPreferenceService(store, newDiscardLogger())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, repository.KeyDarkMode, "sometimes"))

	assert.False(t, svc.DarkMode(ctx))
}
