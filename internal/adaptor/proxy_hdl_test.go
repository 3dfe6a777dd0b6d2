package adaptor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"game-platform/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProxyStripsAPIPrefix(t *testing.T) {
	var gotPath, gotUserID string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserID = r.Header.Get("X-USER-ID")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer upstream.Close()

	proxy, err := NewProxyHandler("User service", upstream.URL, http.DefaultTransport, zap.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me?x=1", nil)
	req.Header.Set("X-USER-ID", "42")
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "/users/me", gotPath)
	assert.Equal(t, "42", gotUserID)
}

func TestProxyFallbackWhenUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	proxy, err := NewProxyHandler("Game service", url, http.DefaultTransport, zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	errBody := decodeEnvelope(t, rec)["error"].(map[string]any)
	assert.Equal(t, utils.CodeUnavailable, errBody["code"])
	assert.Equal(t, "Game service is currently unavailable. Please try again later.", errBody["message"])
}

func TestNewProxyHandlerRejectsRelativeURL(t *testing.T) {
	_, err := NewProxyHandler("User service", "localhost:8081", http.DefaultTransport, zap.NewNop())
	assert.Error(t, err)
}

func TestStripAPIPrefix(t *testing.T) {
	assert.Equal(t, "/auth/login", stripAPIPrefix("/api/auth/login"))
	assert.Equal(t, "/", stripAPIPrefix("/api"))
	assert.Equal(t, "/apiary", stripAPIPrefix("/apiary"))
	assert.Equal(t, "/games", stripAPIPrefix("/games"))
}

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	rec := httptest.NewRecorder()
	NewHealthHandler(map[string]HealthCheck{"db": up}, zap.NewNop()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "UP", decodeEnvelope(t, rec)["status"])

	rec = httptest.NewRecorder()
	NewHealthHandler(map[string]HealthCheck{"db": up, "cache": down}, zap.NewNop()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "DOWN", body["status"])
	components := body["components"].(map[string]any)
	assert.Equal(t, "UP", components["db"].(map[string]any)["status"])
	cache := components["cache"].(map[string]any)
	assert.Equal(t, "DOWN", cache["status"])
	assert.NotContains(t, cache, "error")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
