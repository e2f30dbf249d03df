package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/landedcost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndReadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(config.Config{AuthCookieSecure: true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.Set(c, "token-value", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookies[0])

	token, ok := m.ReadToken(c2)
	assert.True(t, ok)
	assert.Equal(t, "token-value", token)
}

func TestTakeOAuthHandshakeClearsCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(config.Config{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.SetOAuthHandshake(c, "state-1", "verifier-1")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		c2.Request.AddCookie(ck)
	}

	state, verifier, ok := m.TakeOAuthHandshake(c2)
	require.True(t, ok)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "verifier-1", verifier)

	for _, ck := range w2.Result().Cookies() {
		assert.Equal(t, "", ck.Value)
		assert.True(t, ck.MaxAge < 0)
	}
}
