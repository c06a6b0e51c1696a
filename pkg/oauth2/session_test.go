package oauth2

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authsdk/pkg/cache"
)

func testIdentity() *Identity {
	return &Identity{
		ID:         IdentityID{ProviderUserID: "12345", Provider: "facebook"},
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		AuthMethod: AuthMethodOAuth2,
		AuthInfo:   TokenInfo{AccessToken: "XYZ"},
	}
}

func newTestSessions(t *testing.T) *SessionStore {
	t.Helper()
	c := cache.NewMemoryCache()
	t.Cleanup(c.Close)
	return NewSessionStore(c, time.Minute)
}

func TestSessionStore_CreateGet(t *testing.T) {
	t.Parallel()

	store := newTestSessions(t)
	ctx := context.Background()

	session, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "12345", got.Identity.ID.ProviderUserID)
	assert.Equal(t, "XYZ", got.Identity.AuthInfo.AccessToken)
}

func TestSessionStore_GetUnknown(t *testing.T) {
	t.Parallel()

	store := newTestSessions(t)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_UpdateTokens(t *testing.T) {
	t.Parallel()

	store := newTestSessions(t)
	ctx := context.Background()

	session, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	seconds := 1800
	require.NoError(t, store.UpdateTokens(ctx, session.ID, &TokenInfo{AccessToken: "NEW", ExpiresIn: &seconds}))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEW", got.Identity.AuthInfo.AccessToken)
	require.NotNil(t, got.Identity.AuthInfo.ExpiresIn)
	assert.Equal(t, 1800, *got.Identity.AuthInfo.ExpiresIn)
}

func TestSessionStore_Delete(t *testing.T) {
	t.Parallel()

	store := newTestSessions(t)
	ctx := context.Background()

	session, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, session.ID))

	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
