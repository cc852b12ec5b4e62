package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"job-funnel-service/internal/entity"
)

const (
	ProviderGoogle      = "google"
	GoogleUserInfoURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	maxUserInfoBodySize = 1 << 20
)

var ErrMissingEmail = errors.New("identity provider returned no email")

// GoogleProvider runs the authorization-code flow and reads the OpenID userinfo document.
type GoogleProvider struct {
	cfg         *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return NewOAuthProvider(&oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}, GoogleUserInfoURL)
}

// NewOAuthProvider is NewGoogleProvider with explicit endpoints.
func NewOAuthProvider(cfg *oauth2.Config, userInfoURL string) *GoogleProvider {
	return &GoogleProvider{cfg: cfg, userInfoURL: userInfoURL}
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

type googleUserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Exchange trades the callback code for a token and fetches the caller's profile.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (entity.Profile, error) {
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return entity.Profile{}, err
	}
	resp, err := p.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return entity.Profile{}, fmt.Errorf("userinfo status=%d body=%s", resp.StatusCode, body)
	}

	var info googleUserInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBodySize)).Decode(&info); err != nil {
		return entity.Profile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" {
		return entity.Profile{}, ErrMissingEmail
	}

	return entity.Profile{
		Provider: ProviderGoogle,
		Subject:  info.Sub,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
