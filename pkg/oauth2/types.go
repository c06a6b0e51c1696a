package oauth2

// AuthMethod tags how an Identity was established.
type AuthMethod string

const (
	AuthMethodOAuth2   AuthMethod = "oauth2"
	AuthMethodOIDC     AuthMethod = "oidc"
	AuthMethodWebauthn AuthMethod = "webauthn"
)

// Settings describes one provider's endpoints and client credentials.
// Values are loaded once at startup and never mutated.
type Settings struct {
	AuthorizationURL string
	AccessTokenURL   string
	RedirectURL      string
	ClientID         string
	ClientSecret     string
	Scope            string
}

// Validate reports blank required settings as a ConfigurationError.
func (s Settings) Validate(provider string) error {
	var missing []string
	if s.AuthorizationURL == "" {
		missing = append(missing, "authorization URL")
	}
	if s.AccessTokenURL == "" {
		missing = append(missing, "access token URL")
	}
	if s.RedirectURL == "" {
		missing = append(missing, "redirect URL")
	}
	if s.ClientID == "" {
		missing = append(missing, "client ID")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Provider: provider, Missing: missing}
	}
	return nil
}

// TokenInfo is the credential obtained by exchanging an authorization code.
// AccessToken is never empty in a successfully parsed response. ExpiresIn
// is nil when the provider reported no expiry.
type TokenInfo struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    *int   `json:"expires_in,omitempty"`
}

// IdentityID uniquely identifies a user within a provider's namespace.
type IdentityID struct {
	ProviderUserID string `json:"provider_user_id"`
	Provider       string `json:"provider"`
}

// Identity is the canonical, provider-agnostic user record produced by a
// successful authentication flow. Construction is all-or-nothing: a partial
// Identity is never returned. ProviderUserID is never empty on success.
// Extra carries the provider-specific payload verbatim.
type Identity struct {
	ID         IdentityID     `json:"id"`
	FirstName  string         `json:"first_name,omitempty"`
	LastName   string         `json:"last_name,omitempty"`
	FullName   string         `json:"full_name,omitempty"`
	Email      string         `json:"email,omitempty"`
	AvatarURL  string         `json:"avatar_url,omitempty"`
	AuthMethod AuthMethod     `json:"auth_method"`
	AuthInfo   TokenInfo      `json:"auth_info"`
	Extra      map[string]any `json:"extra,omitempty"`
}
