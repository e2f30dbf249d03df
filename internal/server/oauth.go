package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/landedcost/internal/auth/domain"
	"github.com/smallbiznis/landedcost/internal/auth/oauth"
	"go.uber.org/zap"
)

// GoogleLogin starts the Google sign-in when called without a code and
// completes it when Google redirects back with one.
func (s *Server) GoogleLogin(c *gin.Context) {
	if !s.google.Enabled() {
		AbortWithError(c, oauth.ErrProviderDisabled)
		return
	}

	if reason := strings.TrimSpace(c.Query("error")); reason != "" {
		s.log.Info("google sign-in declined", zap.String("reason", reason))
		s.obsMetrics.RecordLogin(c.Request.Context(), authdomain.ProviderGoogle, "declined")
		AbortWithError(c, oauth.ErrUnauthorized)
		return
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		s.startGoogleLogin(c)
		return
	}
	s.finishGoogleLogin(c, code)
}

func (s *Server) startGoogleLogin(c *gin.Context) {
	redirect, err := s.google.RedirectURL()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.SetOAuthHandshake(c, redirect.State, redirect.CodeVerifier)
	c.Redirect(http.StatusFound, redirect.URL)
}

func (s *Server) finishGoogleLogin(c *gin.Context, code string) {
	ctx := c.Request.Context()

	state, verifier, ok := s.sessions.TakeOAuthHandshake(c)
	if !ok || subtle.ConstantTimeCompare([]byte(state), []byte(c.Query("state"))) != 1 {
		AbortWithError(c, oauth.ErrInvalidRequest)
		return
	}

	identity, err := s.google.Exchange(ctx, code, verifier)
	if err != nil {
		s.obsMetrics.RecordLogin(ctx, authdomain.ProviderGoogle, "error")
		AbortWithError(c, err)
		return
	}

	result, err := s.authsvc.LoginWithIdentity(ctx, authdomain.IdentityLoginRequest{
		Provider:    authdomain.ProviderGoogle,
		ExternalID:  identity.ExternalID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Picture:     identity.Picture,
		AllowSignUp: s.google.AllowSignUp(),
		UserAgent:   c.Request.UserAgent(),
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		s.obsMetrics.RecordLogin(ctx, authdomain.ProviderGoogle, "error")
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordLogin(ctx, authdomain.ProviderGoogle, "success")

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.Redirect(http.StatusFound, s.cfg.PublicURL+"/")
}
