package server

import (
	"net/http"
	"testing"

	authdomain "github.com/smallbiznis/landedcost/internal/auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAPIRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decode[apiError](t, rec)
	assert.Equal(t, "unauthorized", body.Error.Type)
}

func TestSignUpLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signUp(t, "Owner@Example.com")

	rec := ts.do(t, http.MethodGet, "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[envelope[authdomain.UserResponse]](t, rec)
	assert.Equal(t, "owner@example.com", me.Data.Email)
	assert.Equal(t, "Shop Owner", me.Data.DisplayName)

	rec = ts.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "owner@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestSignUpRejectsDuplicateAndWeakPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "owner@example.com")

	rec := ts.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":    "owner@example.com",
		"password": "correct horse battery",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":    "other@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[apiError](t, rec)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "password", body.Error.Errors[0].Field)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "owner@example.com")

	rec := ts.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong password!",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signUp(t, "owner@example.com")

	rec := ts.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/products", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleLoginDisabled(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/auth/oauth/google", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
