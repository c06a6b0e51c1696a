package oauth2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubBinding_ParseTokenResponse(t *testing.T) {
	t.Parallel()
	b := NewGithubBinding()

	t.Run("json token", func(t *testing.T) {
		t.Parallel()
		token, err := b.ParseTokenResponse([]byte(`{"access_token": "gho_abc", "token_type": "bearer", "expires_in": 28800}`))
		require.NoError(t, err)
		assert.Equal(t, "gho_abc", token.AccessToken)
		require.NotNil(t, token.ExpiresIn)
		assert.Equal(t, 28800, *token.ExpiresIn)
	})

	t.Run("no expiry", func(t *testing.T) {
		t.Parallel()
		token, err := b.ParseTokenResponse([]byte(`{"access_token": "gho_abc"}`))
		require.NoError(t, err)
		assert.Nil(t, token.ExpiresIn)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		token, err := b.ParseTokenResponse([]byte(`{"error": "bad_verification_code"}`))
		assert.Nil(t, token)
		var invalid *InvalidResponseFormatError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "github", invalid.Provider)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()
		token, err := b.ParseTokenResponse([]byte("access_token=gho_abc"))
		assert.Nil(t, token)
		var invalid *InvalidResponseFormatError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestGithubBinding_ParseProfile(t *testing.T) {
	t.Parallel()
	b := NewGithubBinding()

	t.Run("full profile", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"id": 42, "login": "jane", "name": "Jane Doe",
			"email": "jane@example.com", "avatar_url": "https://avatars.example/42"}`))
		require.NoError(t, err)
		assert.Equal(t, "42", identity.ID.ProviderUserID)
		assert.Equal(t, "github", identity.ID.Provider)
		assert.Equal(t, "Jane Doe", identity.FullName)
		assert.Equal(t, "https://avatars.example/42", identity.AvatarURL)
	})

	t.Run("login fallback for blank name", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"id": 42, "login": "jane"}`))
		require.NoError(t, err)
		assert.Equal(t, "jane", identity.FullName)
	})

	t.Run("api error message", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"message": "Bad credentials"}`))
		assert.Nil(t, identity)
		var specified *SpecifiedProfileError
		require.ErrorAs(t, err, &specified)
		assert.Equal(t, "Bad credentials", specified.Message)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"login": "jane"}`))
		assert.Nil(t, identity)
		var unspecified *UnspecifiedProfileError
		require.ErrorAs(t, err, &unspecified)
	})
}
