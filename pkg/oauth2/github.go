package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

const (
	githubAuthURL  = "https://github.com/login/oauth/authorize"
	githubTokenURL = "https://github.com/login/oauth/access_token"
	githubUserURL  = "https://api.github.com/user"
)

func GithubSettings(clientID, clientSecret, redirectURL string) Settings {
	return Settings{
		AuthorizationURL: githubAuthURL,
		AccessTokenURL:   githubTokenURL,
		RedirectURL:      redirectURL,
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		Scope:            "read:user user:email",
	}
}

// GithubBinding translates GitHub's wire formats. With the Accept header
// the Flow sends, GitHub answers the token exchange in JSON.
type GithubBinding struct{}

func NewGithubBinding() *GithubBinding {
	return &GithubBinding{}
}

func (b *GithubBinding) Name() string {
	return "github"
}

func (b *GithubBinding) ParseTokenResponse(body []byte) (*TokenInfo, error) {
	var tokenResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    *int   `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &InvalidResponseFormatError{Provider: b.Name()}
	}
	if tokenResp.AccessToken == "" {
		return nil, &InvalidResponseFormatError{Provider: b.Name()}
	}

	return &TokenInfo{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Message   string `json:"message"`
}

func (b *GithubBinding) ParseProfile(raw []byte) (*Identity, error) {
	var user githubUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, &UnspecifiedProfileError{Provider: b.Name(), Cause: err}
	}

	// GitHub reports API errors as {"message": "..."} with no id.
	if user.ID == 0 {
		if user.Message != "" {
			return nil, &SpecifiedProfileError{
				Provider: b.Name(),
				Type:     "api_error",
				Message:  user.Message,
			}
		}
		return nil, &UnspecifiedProfileError{
			Provider: b.Name(),
			Cause:    errors.New("missing required profile field: id"),
		}
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	identity := &Identity{
		ID: IdentityID{
			ProviderUserID: strconv.FormatInt(user.ID, 10),
			Provider:       b.Name(),
		},
		FullName:   name,
		Email:      user.Email,
		AvatarURL:  user.AvatarURL,
		AuthMethod: AuthMethodOAuth2,
	}

	var extra map[string]any
	if err := json.Unmarshal(raw, &extra); err == nil {
		identity.Extra = extra
	}

	return identity, nil
}

func (b *GithubBinding) ProfileRequest(ctx context.Context, accessToken string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubUserURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
