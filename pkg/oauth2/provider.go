package oauth2

import (
	"context"
	"net/http"
)

// Provider is implemented by every authentication provider registered with
// the Manager: generic OAuth2 flows (Flow + a Binding) and OIDC providers.
type Provider interface {
	Name() string

	// AuthCodeURL builds the authorize redirect URL for a fresh attempt,
	// persisting the generated state (and PKCE verifier) under sessionKey.
	AuthCodeURL(ctx context.Context, sessionKey string) (string, error)

	// HandleCallback validates state, exchanges the code and returns the
	// normalized identity. No session or account decisions are made here.
	HandleCallback(ctx context.Context, sessionKey, code, state string) (*Identity, error)
}

// Binding supplies the provider-specific half of the generic OAuth2 flow:
// endpoint constants and pure translation between the provider's wire
// formats and the canonical model. A binding performs no I/O itself; the
// Flow owns every network call, so bindings stay at a couple dozen lines.
type Binding interface {
	Name() string

	// ParseTokenResponse parses the raw token-endpoint body. The body is
	// not guaranteed to be JSON; non-compliant providers return
	// key=value pairs. An unparseable body must fail with
	// InvalidResponseFormatError, never produce a partial token.
	ParseTokenResponse(body []byte) (*TokenInfo, error)

	// ParseProfile translates a profile response body into an Identity.
	// A provider-reported error object fails with SpecifiedProfileError;
	// a missing required user ID fails with UnspecifiedProfileError.
	// Optional fields degrade to absent rather than failing.
	ParseProfile(raw []byte) (*Identity, error)

	// ProfileRequest builds the authenticated profile-endpoint request,
	// embedding the access token as a query or header parameter as the
	// provider requires.
	ProfileRequest(ctx context.Context, accessToken string) (*http.Request, error)
}
