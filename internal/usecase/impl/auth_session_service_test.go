package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/repository"
	"bijou/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthSessionService_Initialize_NoToken_Guest(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()

	assert.True(t, f.auth.Loading())

	require.NoError(t, f.auth.Initialize(ctx))

	assert.False(t, f.auth.Loading())
	assert.Nil(t, f.auth.Current())
	assert.Equal(t, 0, f.profile.fetchCalls)
}

func TestAuthSessionService_Initialize_ValidToken_ResolvesIdentity(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, repository.KeyToken, "opaque-token"))
	f.profile.identity = testCustomer()

	require.NoError(t, f.auth.Initialize(ctx))

	current := f.auth.Current()
	require.NotNil(t, current)
	assert.Equal(t, "user-1", current.ID)
	assert.Equal(t, 1, f.profile.fetchCalls)

	// The resolved profile is cached for the next startup.
	raw, err := f.store.Get(ctx, repository.KeyProfile)
	require.NoError(t, err)
	var cached entity.Identity
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "user-1", cached.ID)
}

func TestAuthSessionService_Initialize_ExpiredJWT_SkipsNetwork(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, repository.KeyToken, signedJWT(t, time.Now().Add(-time.Hour))))

	require.NoError(t, f.auth.Initialize(ctx))

	assert.Nil(t, f.auth.Current())
	assert.Equal(t, 0, f.profile.fetchCalls)
	_, err := f.store.Get(ctx, repository.KeyToken)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestAuthSessionService_Initialize_FutureJWT_StillResolved(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, repository.KeyToken, signedJWT(t, time.Now().Add(time.Hour))))
	f.profile.identity = testCustomer()

	require.NoError(t, f.auth.Initialize(ctx))

	require.NotNil(t, f.auth.Current())
	assert.Equal(t, 1, f.profile.fetchCalls)
}

func TestAuthSessionService_Login_PersistsTokenAndPublishes(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.auth.Initialize(ctx))

	f.authAPI.result = authResultFor(testCustomer(), "fresh-token")

	identity, err := f.auth.Login(ctx, "alice@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "alice@example.com", f.authAPI.lastCreds.Email)

	token, err := f.store.Get(ctx, repository.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)

	// The transition fanned out: the cart is now keyed to the new identity.
	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1))
	assert.Len(t, f.cart.Lines(), 1)
}

func TestAuthSessionService_Register_SignsIn(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.auth.Initialize(ctx))

	f.authAPI.result = authResultFor(testCustomer(), "fresh-token")

	identity, err := f.auth.Register(ctx, registerInput("Alice", "alice@example.com", "longenough"))

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "Alice", f.authAPI.lastReg.Name)

	token, err := f.store.Get(ctx, repository.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestAuthSessionService_UpdateIdentity_UnwrapsEnvelopes(t *testing.T) {
	payloads := map[string]string{
		"bare":              `{"id":"ignored","name":"Alice Renamed"}`,
		"user envelope":     `{"user":{"name":"Alice Renamed"}}`,
		"identity envelope": `{"identity":{"name":"Alice Renamed"}}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			f := newCommerceFixture(t)
			ctx := context.Background()
			f.signIn(t, testCustomer())

			merged, err := f.auth.UpdateIdentity(ctx, []byte(payload))

			require.NoError(t, err)
			assert.Equal(t, "Alice Renamed", merged.Name)
			// The merge never moves the session to another account.
			assert.Equal(t, "user-1", merged.ID)
			assert.Equal(t, "alice@example.com", merged.Email)
		})
	}
}

func TestAuthSessionService_UpdateProfile_MergesServerResponse(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())

	name := "Alice Renamed"
	// The server normalizes the name; its answer, not the form's, is merged.
	f.profile.updateResp = []byte(`{"user":{"name":"Alice R."}}`)

	merged, err := f.auth.UpdateProfile(ctx, service.ProfileUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alice R.", merged.Name)
	assert.Equal(t, "user-1", merged.ID)
	assert.Equal(t, "Alice R.", f.auth.Current().Name)

	require.NotNil(t, f.profile.lastUpdate)
	assert.Equal(t, &name, f.profile.lastUpdate.Name)

	// The merged profile is cached for the next startup.
	raw, err := f.store.Get(ctx, repository.KeyProfile)
	require.NoError(t, err)
	var cached entity.Identity
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "Alice R.", cached.Name)
}

func TestAuthSessionService_Logout_ClearsEverything(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())
	require.NoError(t, f.store.Set(ctx, repository.KeyToken, "opaque-token"))
	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1))

	require.NoError(t, f.auth.Logout(ctx))

	assert.Nil(t, f.auth.Current())
	assert.Empty(t, f.cart.Lines())
	assert.Equal(t, 1, f.resets)

	_, err := f.store.Get(ctx, repository.KeyToken)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	_, err = f.store.Get(ctx, repository.KeyProfile)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}
