package oauth2

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// GoogleOIDCProvider implements Provider using OIDC: the profile comes
// from the verified ID token instead of a separate endpoint fetch.
type GoogleOIDCProvider struct {
	config       *oauth2.Config
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	states       *StateStore
	providerName string
}

// NewGoogleOIDCProvider creates a new Google OIDC provider
func NewGoogleOIDCProvider(ctx context.Context, clientID, clientSecret, redirectURL string, states *StateStore, scopes []string) (*GoogleOIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       scopes,
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	return &GoogleOIDCProvider{
		config:       config,
		provider:     provider,
		verifier:     verifier,
		states:       states,
		providerName: "google",
	}, nil
}

func (g *GoogleOIDCProvider) Name() string {
	return g.providerName
}

func (g *GoogleOIDCProvider) AuthCodeURL(ctx context.Context, sessionKey string) (string, error) {
	state, err := GenerateRandomString(32)
	if err != nil {
		return "", err
	}
	nonce, err := GenerateRandomString(32)
	if err != nil {
		return "", err
	}

	if err := g.states.SaveState(ctx, sessionKey, state); err != nil {
		return "", fmt.Errorf("failed to save state: %w", err)
	}
	if err := g.states.SaveNonce(ctx, sessionKey, nonce); err != nil {
		return "", fmt.Errorf("failed to save nonce: %w", err)
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oidc.Nonce(nonce),
	}
	return g.config.AuthCodeURL(state, opts...), nil
}

func (g *GoogleOIDCProvider) HandleCallback(ctx context.Context, sessionKey, code, state string) (*Identity, error) {
	if err := g.states.ValidateState(ctx, sessionKey, state); err != nil {
		return nil, err
	}
	nonce, err := g.states.Nonce(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load nonce: %w", err)
	}

	oauth2Token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, &NetworkError{Provider: g.providerName, Cause: err}
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, &UnspecifiedProfileError{Provider: g.providerName, Cause: fmt.Errorf("no id_token in response")}
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, &UnspecifiedProfileError{Provider: g.providerName, Cause: fmt.Errorf("failed to verify ID token: %w", err)}
	}

	if idToken.Nonce != nonce {
		return nil, ErrStateMismatch
	}

	var claims struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, &UnspecifiedProfileError{Provider: g.providerName, Cause: fmt.Errorf("failed to parse claims: %w", err)}
	}

	tokenInfo := TokenInfo{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
	}
	if !oauth2Token.Expiry.IsZero() {
		seconds := int(time.Until(oauth2Token.Expiry).Seconds())
		tokenInfo.ExpiresIn = &seconds
	}

	return &Identity{
		ID: IdentityID{
			ProviderUserID: idToken.Subject,
			Provider:       g.providerName,
		},
		FirstName:  claims.GivenName,
		LastName:   claims.FamilyName,
		FullName:   claims.Name,
		Email:      claims.Email,
		AvatarURL:  claims.Picture,
		AuthMethod: AuthMethodOIDC,
		AuthInfo:   tokenInfo,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (g *GoogleOIDCProvider) RefreshToken(ctx context.Context, refreshToken string) (*TokenInfo, error) {
	tokenSource := g.config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
	})

	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, &NetworkError{Provider: g.providerName, Cause: fmt.Errorf("failed to refresh token: %w", err)}
	}

	tokenInfo := &TokenInfo{
		AccessToken:  newToken.AccessToken,
		RefreshToken: newToken.RefreshToken,
	}
	if !newToken.Expiry.IsZero() {
		seconds := int(time.Until(newToken.Expiry).Seconds())
		tokenInfo.ExpiresIn = &seconds
	}
	return tokenInfo, nil
}
