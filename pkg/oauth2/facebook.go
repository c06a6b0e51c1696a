package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	facebookAuthURL    = "https://graph.facebook.com/oauth/authorize"
	facebookTokenURL   = "https://graph.facebook.com/oauth/access_token"
	facebookProfileURL = "https://graph.facebook.com/me"

	facebookProfileFields = "name,first_name,last_name,picture,email"
)

// FacebookSettings fills the Graph API endpoints around the configured
// client credentials.
func FacebookSettings(clientID, clientSecret, redirectURL string) Settings {
	return Settings{
		AuthorizationURL: facebookAuthURL,
		AccessTokenURL:   facebookTokenURL,
		RedirectURL:      redirectURL,
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		Scope:            "email",
	}
}

// FacebookBinding translates Facebook's wire formats into the canonical
// model. Facebook's token endpoint is non-compliant: it answers
// text/plain key=value pairs instead of JSON.
type FacebookBinding struct{}

func NewFacebookBinding() *FacebookBinding {
	return &FacebookBinding{}
}

func (b *FacebookBinding) Name() string {
	return "facebook"
}

// ParseTokenResponse matches the body against the two accepted shapes,
// "access_token=<tok>&expires=<secs>" and "access_token=<tok>". Any other
// shape fails: a malformed response must never yield a partial token.
func (b *FacebookBinding) ParseTokenResponse(body []byte) (*TokenInfo, error) {
	parts := strings.FieldsFunc(string(body), func(r rune) bool {
		return r == '&' || r == '='
	})

	switch {
	case len(parts) == 4 && parts[0] == "access_token" && parts[2] == "expires":
		seconds, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, &InvalidResponseFormatError{Provider: b.Name()}
		}
		return &TokenInfo{AccessToken: parts[1], ExpiresIn: &seconds}, nil
	case len(parts) == 2 && parts[0] == "access_token":
		return &TokenInfo{AccessToken: parts[1]}, nil
	default:
		return nil, &InvalidResponseFormatError{Provider: b.Name()}
	}
}

// facebookProfile mirrors the Graph /me response, including the error
// object Facebook embeds in the body on failure.
type facebookProfile struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Picture   *struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// ParseProfile checks for a provider-reported error object before
// treating the body as a profile. The id field is required; every other
// field degrades to absent.
func (b *FacebookBinding) ParseProfile(raw []byte) (*Identity, error) {
	var profile facebookProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, &UnspecifiedProfileError{Provider: b.Name(), Cause: err}
	}

	if profile.Error != nil {
		return nil, &SpecifiedProfileError{
			Provider: b.Name(),
			Type:     profile.Error.Type,
			Message:  profile.Error.Message,
		}
	}

	if profile.ID == "" {
		return nil, &UnspecifiedProfileError{
			Provider: b.Name(),
			Cause:    errors.New("missing required profile field: id"),
		}
	}

	identity := &Identity{
		ID: IdentityID{
			ProviderUserID: profile.ID,
			Provider:       b.Name(),
		},
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		FullName:   profile.Name,
		Email:      profile.Email,
		AuthMethod: AuthMethodOAuth2,
	}
	if profile.Picture != nil {
		identity.AvatarURL = profile.Picture.Data.URL
	}

	var extra map[string]any
	if err := json.Unmarshal(raw, &extra); err == nil {
		identity.Extra = extra
	}

	return identity, nil
}

func (b *FacebookBinding) ProfileRequest(ctx context.Context, accessToken string) (*http.Request, error) {
	params := url.Values{}
	params.Set("fields", facebookProfileFields)
	params.Set("return_ssl_resources", "1")
	params.Set("access_token", accessToken)

	return http.NewRequestWithContext(ctx, http.MethodGet, facebookProfileURL+"?"+params.Encode(), nil)
}
