package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"veldrith-backend/internal/auth"
)

// serve wires the full route table, middleware included
func (env *testEnv) serve(t *testing.T, limiter *auth.RateLimiter) *echo.Echo {
	t.Helper()
	e := echo.New()
	if limiter == nil {
		limiter = auth.DefaultRateLimiter()
	}
	RegisterRoutes(e.Group("/api"), env.handlers, limiter)
	return e
}

func doJSON(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireAdminSession(t *testing.T) {
	env := newTestEnv(t)
	e := env.serve(t, nil)

	// No session at all
	rec := doJSON(e, http.MethodGet, "/api/users", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// A regular user's session is not enough
	password := env.createUser(t, "alice", 10)
	aliceToken := env.login(t, "alice", password)
	rec = doJSON(e, http.MethodGet, "/api/users", nil, map[string]string{
		"X-Portal-Username": "alice",
		"X-Portal-Token":    aliceToken,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// An admin session passes
	require.NoError(t, env.users.CreateAdmin("root", "supersecret"))
	rootToken := env.login(t, "root", "supersecret")
	rec = doJSON(e, http.MethodGet, "/api/users", nil, map[string]string{
		"X-Portal-Username": "root",
		"X-Portal-Token":    rootToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicRoutesNeedNoSessionHeaders(t *testing.T) {
	env := newTestEnv(t)
	e := env.serve(t, nil)

	rec := doJSON(e, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	password := env.createUser(t, "alice", 10)
	rec = doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterCapsTheAPI(t *testing.T) {
	env := newTestEnv(t)
	e := env.serve(t, auth.NewRateLimiter(3, time.Minute))

	for i := 0; i < 3; i++ {
		rec := doJSON(e, http.MethodGet, "/api/health", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
