package oauth2

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacebookBinding_ParseTokenResponse(t *testing.T) {
	t.Parallel()
	b := NewFacebookBinding()

	t.Run("token with expiry", func(t *testing.T) {
		t.Parallel()
		token, err := b.ParseTokenResponse([]byte("access_token=XYZ&expires=3600"))
		require.NoError(t, err)
		assert.Equal(t, "XYZ", token.AccessToken)
		require.NotNil(t, token.ExpiresIn)
		assert.Equal(t, 3600, *token.ExpiresIn)
	})

	t.Run("token without expiry", func(t *testing.T) {
		t.Parallel()
		token, err := b.ParseTokenResponse([]byte("access_token=XYZ"))
		require.NoError(t, err)
		assert.Equal(t, "XYZ", token.AccessToken)
		assert.Nil(t, token.ExpiresIn)
	})

	t.Run("rejected shapes", func(t *testing.T) {
		t.Parallel()
		bodies := []string{
			"",
			"foo=bar",
			"access_token=",
			"access_token=XYZ&expires=soon",
			"expires=3600&access_token=XYZ",
			"access_token=XYZ&expires=3600&scope=email",
		}
		for _, body := range bodies {
			token, err := b.ParseTokenResponse([]byte(body))
			assert.Nil(t, token, "body %q", body)
			var invalid *InvalidResponseFormatError
			require.ErrorAs(t, err, &invalid, "body %q", body)
			assert.Equal(t, "facebook", invalid.Provider)
			assert.Equal(t, "[facebook] Invalid response format for accessToken", err.Error())
		}
	})
}

func TestFacebookBinding_ParseProfile(t *testing.T) {
	t.Parallel()
	b := NewFacebookBinding()

	t.Run("full profile", func(t *testing.T) {
		t.Parallel()
		raw := []byte(`{
			"id": "12345",
			"name": "Jane Doe",
			"first_name": "Jane",
			"last_name": "Doe",
			"email": "jane@example.com",
			"picture": {"data": {"url": "https://cdn.example.com/p.jpg"}}
		}`)

		identity, err := b.ParseProfile(raw)
		require.NoError(t, err)
		assert.Equal(t, "12345", identity.ID.ProviderUserID)
		assert.Equal(t, "facebook", identity.ID.Provider)
		assert.Equal(t, "Jane", identity.FirstName)
		assert.Equal(t, "Doe", identity.LastName)
		assert.Equal(t, "Jane Doe", identity.FullName)
		assert.Equal(t, "jane@example.com", identity.Email)
		assert.Equal(t, "https://cdn.example.com/p.jpg", identity.AvatarURL)
		assert.Equal(t, AuthMethodOAuth2, identity.AuthMethod)
	})

	t.Run("optional fields stay absent", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"id": "12345"}`))
		require.NoError(t, err)
		assert.Equal(t, "12345", identity.ID.ProviderUserID)
		assert.Empty(t, identity.Email)
		assert.Empty(t, identity.AvatarURL)
		assert.Empty(t, identity.FirstName)
	})

	t.Run("provider-reported error", func(t *testing.T) {
		t.Parallel()
		raw := []byte(`{"error": {"type": "OAuthException", "message": "Invalid OAuth access token"}}`)

		identity, err := b.ParseProfile(raw)
		assert.Nil(t, identity)
		var specified *SpecifiedProfileError
		require.ErrorAs(t, err, &specified)
		assert.Equal(t, "OAuthException", specified.Type)
		assert.Equal(t, "Invalid OAuth access token", specified.Message)
		assert.Equal(t,
			"[facebook] Error retrieving profile information. Error type: OAuthException, message: Invalid OAuth access token",
			err.Error())
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"name": "Jane Doe"}`))
		assert.Nil(t, identity)
		var unspecified *UnspecifiedProfileError
		require.ErrorAs(t, err, &unspecified)
		assert.Equal(t, "[facebook] Error retrieving profile information", err.Error())
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		identity, err := b.ParseProfile([]byte(`{"id": `))
		assert.Nil(t, identity)
		var unspecified *UnspecifiedProfileError
		require.ErrorAs(t, err, &unspecified)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		raw := []byte(`{"id": "12345", "name": "Jane Doe", "email": "jane@example.com"}`)
		first, err := b.ParseProfile(raw)
		require.NoError(t, err)
		second, err := b.ParseProfile(raw)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestFacebookBinding_ProfileRequest(t *testing.T) {
	t.Parallel()
	b := NewFacebookBinding()

	req, err := b.ProfileRequest(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "graph.facebook.com", req.URL.Host)
	assert.Equal(t, "/me", req.URL.Path)

	q := req.URL.Query()
	assert.Equal(t, "tok-123", q.Get("access_token"))
	assert.Equal(t, "name,first_name,last_name,picture,email", q.Get("fields"))
	assert.Equal(t, "1", q.Get("return_ssl_resources"))
}
