package oauth2

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authsdk/pkg/cache"
)

func TestGenerateRandomString(t *testing.T) {
	t.Parallel()

	a, err := GenerateRandomString(32)
	require.NoError(t, err)
	b, err := GenerateRandomString(32)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestGeneratePKCE(t *testing.T) {
	t.Parallel()

	verifier, challenge, err := GeneratePKCE()
	require.NoError(t, err)
	assert.NotEmpty(t, verifier)
	assert.NotEmpty(t, challenge)
	assert.NotEqual(t, verifier, challenge)
}

func TestStateStore_ValidateState(t *testing.T) {
	t.Parallel()

	c := cache.NewMemoryCache()
	t.Cleanup(c.Close)
	store := NewStateStore(c, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, "sess-1", "abc"))

	t.Run("mismatch", func(t *testing.T) {
		assert.ErrorIs(t, store.ValidateState(ctx, "sess-1", "xyz"), ErrStateMismatch)
	})

	t.Run("empty state", func(t *testing.T) {
		assert.ErrorIs(t, store.ValidateState(ctx, "sess-1", ""), ErrStateMismatch)
	})

	t.Run("unknown session", func(t *testing.T) {
		assert.ErrorIs(t, store.ValidateState(ctx, "other", "abc"), ErrStateMismatch)
	})

	t.Run("one-time use", func(t *testing.T) {
		require.NoError(t, store.ValidateState(ctx, "sess-1", "abc"))
		assert.ErrorIs(t, store.ValidateState(ctx, "sess-1", "abc"), ErrStateMismatch)
	})
}

func TestStateStore_Expiry(t *testing.T) {
	t.Parallel()

	c := cache.NewMemoryCache()
	t.Cleanup(c.Close)
	store := NewStateStore(c, -time.Second)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, "sess-1", "abc"))
	assert.ErrorIs(t, store.ValidateState(ctx, "sess-1", "abc"), ErrStateMismatch)
}

func TestStateStore_VerifierConsumed(t *testing.T) {
	t.Parallel()

	c := cache.NewMemoryCache()
	t.Cleanup(c.Close)
	store := NewStateStore(c, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveVerifier(ctx, "sess-1", "ver"))

	got, err := store.Verifier(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ver", got)

	_, err = store.Verifier(ctx, "sess-1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
