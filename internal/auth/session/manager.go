package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/landedcost/internal/config"
)

const (
	DefaultCookieName = "_sid"

	oauthStateCookie    = "_oauth_state"
	oauthVerifierCookie = "_oauth_verifier"
	oauthCookieTTL      = 10 * time.Minute
)

// Manager reads and writes the session and OAuth handshake cookies.
type Manager struct {
	cookieName string
	secure     bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cookieName: DefaultCookieName,
		secure:     cfg.AuthCookieSecure,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	return m.read(c, m.cookieName)
}

func (m *Manager) Set(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	m.write(c, m.cookieName, value, maxAge)
}

func (m *Manager) Clear(c *gin.Context) {
	m.write(c, m.cookieName, "", -1)
}

// SetOAuthHandshake stores the state and PKCE verifier for the callback.
func (m *Manager) SetOAuthHandshake(c *gin.Context, state, verifier string) {
	maxAge := int(oauthCookieTTL.Seconds())
	m.write(c, oauthStateCookie, state, maxAge)
	m.write(c, oauthVerifierCookie, verifier, maxAge)
}

// TakeOAuthHandshake returns the stored handshake and clears it.
func (m *Manager) TakeOAuthHandshake(c *gin.Context) (state, verifier string, ok bool) {
	state, okState := m.read(c, oauthStateCookie)
	verifier, okVerifier := m.read(c, oauthVerifierCookie)
	m.write(c, oauthStateCookie, "", -1)
	m.write(c, oauthVerifierCookie, "", -1)
	return state, verifier, okState && okVerifier
}

func (m *Manager) read(c *gin.Context, name string) (string, bool) {
	value, err := c.Cookie(name)
	if err != nil || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func (m *Manager) write(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", m.secure, true)
}
