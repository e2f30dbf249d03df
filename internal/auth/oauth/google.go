package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/smallbiznis/landedcost/internal/config"
	obstracing "github.com/smallbiznis/landedcost/internal/observability/tracing"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	CallbackPath      = "/auth/oauth/google"
)

var (
	ErrProviderDisabled = errors.New("oauth provider disabled")
	ErrInvalidRequest   = errors.New("invalid oauth request")
	ErrUnauthorized     = errors.New("oauth unauthorized")
)

type RedirectResult struct {
	URL          string
	State        string
	CodeVerifier string
}

type Identity struct {
	ExternalID  string
	Email       string
	DisplayName string
	Picture     string
}

// Google runs the authorization code flow with PKCE against Google.
type Google struct {
	enabled     bool
	allowSignUp bool
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func NewGoogle(cfg config.Config) *Google {
	return newGoogle(cfg.Google, cfg.PublicURL+CallbackPath, google.Endpoint, googleUserInfoURL)
}

func newGoogle(cfg config.GoogleConfig, redirectURL string, endpoint oauth2.Endpoint, userInfoURL string) *Google {
	return &Google{
		enabled:     cfg.Enabled && cfg.ClientID != "",
		allowSignUp: cfg.AllowSignUp,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: userInfoURL,
		httpClient:  obstracing.WrapHTTPClient(&http.Client{}),
	}
}

func (g *Google) Enabled() bool { return g != nil && g.enabled }

func (g *Google) AllowSignUp() bool { return g.allowSignUp }

// RedirectURL builds the consent URL. The caller keeps State and
// CodeVerifier for the callback.
func (g *Google) RedirectURL() (*RedirectResult, error) {
	if !g.Enabled() {
		return nil, ErrProviderDisabled
	}

	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	return &RedirectResult{
		URL:          g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier)),
		State:        state,
		CodeVerifier: verifier,
	}, nil
}

// Exchange trades an authorization code for the user's identity.
func (g *Google) Exchange(ctx context.Context, code, verifier string) (*Identity, error) {
	if !g.Enabled() {
		return nil, ErrProviderDisabled
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidRequest
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	token, err := g.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return g.fetchIdentity(ctx, token)
}

func (g *Google) fetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, ErrUnauthorized
	}

	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Sub == "" || claims.Email == "" || !claims.EmailVerified {
		return nil, ErrUnauthorized
	}

	identity := &Identity{
		ExternalID:  claims.Sub,
		Email:       claims.Email,
		DisplayName: strings.TrimSpace(claims.Name),
		Picture:     claims.Picture,
	}
	if identity.DisplayName == "" {
		identity.DisplayName = identity.Email
	}
	return identity, nil
}
