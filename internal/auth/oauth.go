package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleEndpoint is spelled out here to avoid pulling in the cloud metadata
// dependency of the oauth2/google subpackage.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// GoogleUser is the subset of the userinfo payload the application needs.
type GoogleUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GoogleExchanger swaps an OAuth authorization code for the user's identity.
type GoogleExchanger interface {
	Exchange(ctx context.Context, code string) (GoogleUser, error)
}

// GoogleOAuth implements GoogleExchanger against the real Google endpoints.
type GoogleOAuth struct {
	config *oauth2.Config
}

// NewGoogleOAuth builds the exchanger from client credentials.
func NewGoogleOAuth(clientID, clientSecret, redirectURL string) *GoogleOAuth {
	return &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		},
	}
}

// Exchange trades the authorization code for a token and fetches the user's
// profile with it.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (GoogleUser, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return GoogleUser{}, fmt.Errorf("auth: exchanging code: %w", err)
	}
	resp, err := g.config.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return GoogleUser{}, fmt.Errorf("auth: fetching userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return GoogleUser{}, fmt.Errorf("auth: userinfo returned %d", resp.StatusCode)
	}
	var u GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return GoogleUser{}, fmt.Errorf("auth: decoding userinfo: %w", err)
	}
	if u.Email == "" {
		return GoogleUser{}, fmt.Errorf("auth: userinfo missing email")
	}
	return u, nil
}
