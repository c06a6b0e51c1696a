package oauth2

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"authsdk/pkg/cache"
)

const (
	stateKeyPrefix    = "oauth2:state:"
	nonceKeyPrefix    = "oauth2:nonce:"
	verifierKeyPrefix = "oauth2:verifier:"
)

// GenerateRandomString returns a URL-safe random string of n bytes entropy.
func GenerateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GeneratePKCE returns a fresh code verifier and its S256 challenge.
func GeneratePKCE() (verifier string, challenge string, err error) {
	verifier, err = GenerateRandomString(32)
	if err != nil {
		return "", "", err
	}
	hash := sha256.Sum256([]byte(verifier))
	return verifier, base64.RawURLEncoding.EncodeToString(hash[:]), nil
}

// StateStore keeps per-attempt CSRF state values, OIDC nonces and PKCE
// verifiers in a Cache, keyed by an opaque session/client identifier.
// Entries expire with the store TTL; a state is valid exactly once.
type StateStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStateStore(c cache.Cache, ttl time.Duration) *StateStore {
	return &StateStore{cache: c, ttl: ttl}
}

func (s *StateStore) SaveState(ctx context.Context, sessionKey, state string) error {
	return s.cache.Set(ctx, stateKeyPrefix+sessionKey, state, s.ttl)
}

// ValidateState compares the callback state against the stored value and
// consumes it. Absent, expired or mismatched states fail with
// ErrStateMismatch.
func (s *StateStore) ValidateState(ctx context.Context, sessionKey, state string) error {
	stored, err := s.cache.Get(ctx, stateKeyPrefix+sessionKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return ErrStateMismatch
	}
	if err != nil {
		return err
	}
	if state == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(state)) != 1 {
		return ErrStateMismatch
	}
	return s.cache.Del(ctx, stateKeyPrefix+sessionKey)
}

func (s *StateStore) SaveNonce(ctx context.Context, sessionKey, nonce string) error {
	return s.cache.Set(ctx, nonceKeyPrefix+sessionKey, nonce, s.ttl)
}

// Nonce returns and consumes the stored OIDC nonce for the session.
func (s *StateStore) Nonce(ctx context.Context, sessionKey string) (string, error) {
	nonce, err := s.cache.Get(ctx, nonceKeyPrefix+sessionKey)
	if err != nil {
		return "", err
	}
	return nonce, s.cache.Del(ctx, nonceKeyPrefix+sessionKey)
}

func (s *StateStore) SaveVerifier(ctx context.Context, sessionKey, verifier string) error {
	return s.cache.Set(ctx, verifierKeyPrefix+sessionKey, verifier, s.ttl)
}

// Verifier returns and consumes the stored PKCE code verifier.
func (s *StateStore) Verifier(ctx context.Context, sessionKey string) (string, error) {
	verifier, err := s.cache.Get(ctx, verifierKeyPrefix+sessionKey)
	if err != nil {
		return "", err
	}
	return verifier, s.cache.Del(ctx, verifierKeyPrefix+sessionKey)
}
