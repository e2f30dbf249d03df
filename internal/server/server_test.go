package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/landedcost/internal/auth/oauth"
	authrepository "github.com/smallbiznis/landedcost/internal/auth/repository"
	authservice "github.com/smallbiznis/landedcost/internal/auth/service"
	"github.com/smallbiznis/landedcost/internal/auth/session"
	"github.com/smallbiznis/landedcost/internal/cache"
	"github.com/smallbiznis/landedcost/internal/clock"
	"github.com/smallbiznis/landedcost/internal/config"
	dutyrepository "github.com/smallbiznis/landedcost/internal/dutycategory/repository"
	dutyservice "github.com/smallbiznis/landedcost/internal/dutycategory/service"
	"github.com/smallbiznis/landedcost/internal/events"
	"github.com/smallbiznis/landedcost/internal/migration"
	"github.com/smallbiznis/landedcost/internal/observability"
	productrepository "github.com/smallbiznis/landedcost/internal/product/repository"
	productservice "github.com/smallbiznis/landedcost/internal/product/service"
	"github.com/smallbiznis/landedcost/internal/providers/pdf"
	"github.com/smallbiznis/landedcost/internal/providers/spreadsheet"
	"github.com/smallbiznis/landedcost/internal/ratelimit"
	"github.com/smallbiznis/landedcost/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	srv   *Server
	clock *clock.FakeClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.Run(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	cfg := config.Config{Environment: "test", HTTPPort: "0"}
	settings := config.NewStaticCatalogSettings(config.DefaultCatalogSettings())

	userRepo, sessionRepo := authrepository.New(conn)
	authsvc := authservice.New(authservice.Params{
		Log:         log,
		Repo:        userRepo,
		SessionRepo: sessionRepo,
		GenID:       node,
		Clock:       clk,
	})
	dutysvc := dutyservice.NewService(dutyservice.Params{
		Log:       log,
		GenID:     node,
		Repo:      dutyrepository.NewRepository(conn),
		Cache:     cache.NewDutyCategoryCache(nil),
		Publisher: events.NoopPublisher{},
		Clock:     clk,
	})
	productsvc := productservice.New(productservice.Params{
		DB:        conn,
		Log:       log,
		GenID:     node,
		Repo:      productrepository.Provide(),
		Duty:      dutysvc,
		Settings:  settings,
		Publisher: events.NoopPublisher{},
		Clock:     clk,
	})

	srv := NewServer(ServerParams{
		Gin:          NewEngine(observability.Config{Environment: "test", QuietRoutes: []string{"/health"}}, nil),
		Cfg:          cfg,
		Log:          log,
		Authsvc:      authsvc,
		Google:       oauth.NewGoogle(cfg),
		Sessions:     session.NewManager(cfg),
		LoginLimiter: ratelimit.NewLoginLimiter(cfg, nil, log),
		DutySvc:      dutysvc,
		ProductSvc:   productsvc,
		Settings:     settings,
		PDF:          pdf.New(),
		Spreadsheet:  spreadsheet.New(),
		Clock:        clk,
	})
	return &testServer{srv: srv, clock: clk}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)
	return rec
}

// signUp registers a user and returns its session cookie.
func (ts *testServer) signUp(t *testing.T, email string) *http.Cookie {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":        email,
		"password":     "correct horse battery",
		"display_name": "Shop Owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", session.DefaultCookieName)
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type apiError struct {
	Error errorPayload `json:"error"`
}
