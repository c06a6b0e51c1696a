package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"authsdk/pkg/cache"
)

var ErrSessionNotFound = errors.New("oauth2: session not found")

const sessionKeyPrefix = "oauth2:session:"

// Session ties a server-side session ID to the identity that produced it.
type Session struct {
	ID        string    `json:"id"`
	Identity  *Identity `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore keeps JSON-encoded sessions in a Cache with a fixed TTL.
// Expiry is enforced by the cache; an expired session is simply a miss.
type SessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSessionStore(c cache.Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, identity *Identity) (*Session, error) {
	id, err := GenerateRandomString(32)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:        id,
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// UpdateTokens replaces the stored credential after a refresh, keeping
// the original session expiry.
func (s *SessionStore) UpdateTokens(ctx context.Context, sessionID string, token *TokenInfo) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Identity.AuthInfo = *token
	return s.put(ctx, session)
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, sessionKeyPrefix+sessionID)
}

func (s *SessionStore) put(ctx context.Context, session *Session) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+session.ID, string(encoded), time.Until(session.ExpiresAt))
}
