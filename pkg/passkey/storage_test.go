package passkey

import (
	"testing"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStorage_Users(t *testing.T) {
	s := NewInMemoryStorage()

	user, err := s.CreateUser("jane")
	require.NoError(t, err)
	assert.Equal(t, "jane", user.Username)
	assert.Len(t, user.ID, 16)

	_, err = s.CreateUser("jane")
	assert.ErrorIs(t, err, ErrUserExists)

	got, err := s.GetUser("jane")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUser("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInMemoryStorage_Credentials(t *testing.T) {
	s := NewInMemoryStorage()
	_, err := s.CreateUser("jane")
	require.NoError(t, err)

	cred := webauthn.Credential{ID: []byte("cred-1")}
	require.NoError(t, s.AddCredential("jane", cred))

	user, err := s.GetUser("jane")
	require.NoError(t, err)
	require.Len(t, user.Credentials, 1)
	assert.Equal(t, []byte("cred-1"), user.Credentials[0].ID)

	assert.ErrorIs(t, s.AddCredential("nobody", cred), ErrUserNotFound)
}

func TestInMemoryStorage_CeremonyOneTimeUse(t *testing.T) {
	s := NewInMemoryStorage()

	data := &webauthn.SessionData{Challenge: "chal"}
	require.NoError(t, s.SaveCeremony("c1", data))

	got, err := s.TakeCeremony("c1")
	require.NoError(t, err)
	assert.Equal(t, "chal", got.Challenge)

	_, err = s.TakeCeremony("c1")
	assert.ErrorIs(t, err, ErrCeremonyNotFound)
}
