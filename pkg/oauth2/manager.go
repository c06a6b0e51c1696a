package oauth2

import (
	"context"
	"errors"
	"fmt"
	"time"

	"authsdk/cfg"
	"authsdk/pkg/cache"
	"authsdk/pkg/logger"
)

// Manager holds the registered authentication providers and owns the
// state and session stores they share.
type Manager struct {
	providers map[string]Provider
	states    *StateStore
	sessions  *SessionStore
	log       logger.Logger
}

// NewManager creates a manager with providers from configuration. A
// provider is registered only when its client credentials are set.
func NewManager(ctx context.Context, config *cfg.OAuth2Config, store cache.Cache, log logger.Logger) (*Manager, error) {
	stateTTL := time.Duration(config.StateTTLMinutes) * time.Minute
	sessionTTL := time.Duration(config.SessionTTLMinutes) * time.Minute

	mgr := &Manager{
		providers: make(map[string]Provider),
		states:    NewStateStore(store, stateTTL),
		sessions:  NewSessionStore(store, sessionTTL),
		log:       log.WithComponent("oauth2"),
	}

	if config.Facebook.ClientID != "" && config.Facebook.ClientSecret != "" {
		flow, err := NewFlow(
			FacebookSettings(config.Facebook.ClientID, config.Facebook.ClientSecret, config.Facebook.RedirectURL),
			NewFacebookBinding(),
			mgr.states,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Facebook provider: %w", err)
		}
		mgr.RegisterProvider(flow)
	}

	if config.Github.ClientID != "" && config.Github.ClientSecret != "" {
		flow, err := NewFlow(
			GithubSettings(config.Github.ClientID, config.Github.ClientSecret, config.Github.RedirectURL),
			NewGithubBinding(),
			mgr.states,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub provider: %w", err)
		}
		mgr.RegisterProvider(flow)
	}

	if config.Google.ClientID != "" && config.Google.ClientSecret != "" {
		googleProvider, err := NewGoogleOIDCProvider(
			ctx,
			config.Google.ClientID,
			config.Google.ClientSecret,
			config.Google.RedirectURL,
			mgr.states,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google provider: %w", err)
		}
		mgr.RegisterProvider(googleProvider)
	}

	return mgr, nil
}

// RegisterProvider registers a new authentication provider
func (m *Manager) RegisterProvider(provider Provider) {
	m.providers[provider.Name()] = provider
}

// Sessions exposes the session store for other auth methods (passkey)
// that produce identities outside the OAuth2 flow.
func (m *Manager) Sessions() *SessionStore {
	return m.sessions
}

// AuthURL generates the authorization URL for a fresh attempt, keyed by
// the caller's opaque session identifier.
func (m *Manager) AuthURL(ctx context.Context, providerName, sessionKey string) (string, error) {
	provider, exists := m.providers[providerName]
	if !exists {
		return "", ErrProviderNotFound
	}
	return provider.AuthCodeURL(ctx, sessionKey)
}

// HandleCallback validates the callback through the provider and creates
// a session for the resulting identity.
func (m *Manager) HandleCallback(ctx context.Context, providerName, sessionKey, code, state string) (string, *Identity, error) {
	provider, exists := m.providers[providerName]
	if !exists {
		return "", nil, ErrProviderNotFound
	}

	identity, err := provider.HandleCallback(ctx, sessionKey, code, state)
	if err != nil {
		m.log.Warn("callback failed",
			logger.Field{Key: "provider", Value: providerName},
			logger.Field{Key: "error", Value: err},
		)
		return "", nil, err
	}

	session, err := m.sessions.Create(ctx, identity)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	m.log.Info("authenticated",
		logger.Field{Key: "provider", Value: providerName},
		logger.Field{Key: "provider_user_id", Value: identity.ID.ProviderUserID},
	)
	return session.ID, identity, nil
}

// GetSession retrieves a session by ID
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return m.sessions.Get(ctx, sessionID)
}

// RefreshSession refreshes tokens for a session (OIDC providers only).
func (m *Manager) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.Identity.AuthInfo.RefreshToken == "" {
		return errors.New("no refresh token available")
	}

	provider, exists := m.providers[session.Identity.ID.Provider]
	if !exists {
		return ErrProviderNotFound
	}

	refresher, ok := provider.(interface {
		RefreshToken(ctx context.Context, refreshToken string) (*TokenInfo, error)
	})
	if !ok {
		return errors.New("provider does not support token refresh")
	}

	newToken, err := refresher.RefreshToken(ctx, session.Identity.AuthInfo.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	return m.sessions.UpdateTokens(ctx, sessionID, newToken)
}

// DeleteSession deletes a session (logout)
func (m *Manager) DeleteSession(ctx context.Context, sessionID string) error {
	return m.sessions.Delete(ctx, sessionID)
}
