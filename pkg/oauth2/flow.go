package oauth2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Flow drives the generic three-step OAuth2 client flow for one provider:
// redirect-to-authorize, exchange-code-for-token, fetch-and-normalize
// profile. Provider-specific parsing is delegated to the Binding so the
// security-sensitive parts (state validation, error classification) live
// once. A Flow issues at most one network call per operation, holds no
// mutable state and is safe for concurrent use across sessions.
type Flow struct {
	settings   Settings
	binding    Binding
	states     *StateStore
	httpClient *http.Client
	usePKCE    bool
}

// Option configures a Flow.
type Option func(*Flow)

// WithHTTPClient sets a custom HTTP client, useful for tests with
// httptest servers or custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Flow) {
		f.httpClient = client
	}
}

// WithPKCE enables the S256 code challenge on authorize and the matching
// code_verifier on exchange.
func WithPKCE() Option {
	return func(f *Flow) {
		f.usePKCE = true
	}
}

// NewFlow validates the settings and wires a binding into the generic
// flow. Blank required settings fail with ConfigurationError.
func NewFlow(settings Settings, binding Binding, states *StateStore, opts ...Option) (*Flow, error) {
	if err := settings.Validate(binding.Name()); err != nil {
		return nil, err
	}

	f := &Flow{
		settings: settings,
		binding:  binding,
		states:   states,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Flow) Name() string {
	return f.binding.Name()
}

// AuthCodeURL builds the authorize URL with a freshly generated state
// value, stored under sessionKey for the callback to validate.
func (f *Flow) AuthCodeURL(ctx context.Context, sessionKey string) (string, error) {
	state, err := GenerateRandomString(32)
	if err != nil {
		return "", err
	}
	if err := f.states.SaveState(ctx, sessionKey, state); err != nil {
		return "", fmt.Errorf("failed to save state: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", f.settings.ClientID)
	params.Set("redirect_uri", f.settings.RedirectURL)
	params.Set("response_type", "code")
	params.Set("state", state)
	if f.settings.Scope != "" {
		params.Set("scope", f.settings.Scope)
	}

	if f.usePKCE {
		verifier, challenge, err := GeneratePKCE()
		if err != nil {
			return "", err
		}
		if err := f.states.SaveVerifier(ctx, sessionKey, verifier); err != nil {
			return "", fmt.Errorf("failed to save verifier: %w", err)
		}
		params.Set("code_challenge", challenge)
		params.Set("code_challenge_method", "S256")
	}

	return f.settings.AuthorizationURL + "?" + params.Encode(), nil
}

// ExchangeCode validates the callback state and trades the authorization
// code for a TokenInfo. A mismatched state fails with ErrStateMismatch
// before any network call is made.
func (f *Flow) ExchangeCode(ctx context.Context, sessionKey, code, state string) (*TokenInfo, error) {
	if err := f.states.ValidateState(ctx, sessionKey, state); err != nil {
		return nil, err
	}

	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", f.settings.ClientID)
	data.Set("client_secret", f.settings.ClientSecret)
	data.Set("redirect_uri", f.settings.RedirectURL)
	data.Set("grant_type", "authorization_code")

	if f.usePKCE {
		verifier, err := f.states.Verifier(ctx, sessionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load verifier: %w", err)
		}
		data.Set("code_verifier", verifier)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.settings.AccessTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Provider: f.Name(), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Provider: f.Name(), Cause: err}
	}

	// The body goes to the binding regardless of status: error bodies do
	// not match an accepted token shape and fail loudly there.
	return f.binding.ParseTokenResponse(body)
}

// BuildIdentity fetches the provider profile with the access token and
// normalizes it. A provider-reported error object surfaces as
// SpecifiedProfileError; every other fetch or parse failure as
// UnspecifiedProfileError; transport failures as NetworkError.
func (f *Flow) BuildIdentity(ctx context.Context, token *TokenInfo) (*Identity, error) {
	req, err := f.binding.ProfileRequest(ctx, token.AccessToken)
	if err != nil {
		return nil, &UnspecifiedProfileError{Provider: f.Name(), Cause: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Provider: f.Name(), Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Provider: f.Name(), Cause: err}
	}

	identity, err := f.binding.ParseProfile(raw)
	if err != nil {
		var specified *SpecifiedProfileError
		var unspecified *UnspecifiedProfileError
		if errors.As(err, &specified) || errors.As(err, &unspecified) {
			return nil, err
		}
		return nil, &UnspecifiedProfileError{Provider: f.Name(), Cause: err}
	}

	identity.AuthInfo = *token
	if identity.AuthMethod == "" {
		identity.AuthMethod = AuthMethodOAuth2
	}
	return identity, nil
}

// HandleCallback implements Provider: exchange then profile fetch.
func (f *Flow) HandleCallback(ctx context.Context, sessionKey, code, state string) (*Identity, error) {
	token, err := f.ExchangeCode(ctx, sessionKey, code, state)
	if err != nil {
		return nil, err
	}
	return f.BuildIdentity(ctx, token)
}
