package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"game-platform/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequireRole(t *testing.T) {
	handler := TrustedIdentity(RequireRole("ADMIN", zap.NewNop())(http.HandlerFunc(okHandler)))

	tests := []struct {
		name   string
		userID string
		roles  string
		status int
		code   string
	}{
		{name: "anonymous", status: http.StatusUnauthorized, code: utils.CodeMissingToken},
		{name: "customer", userID: "u1", roles: "CUSTOMER", status: http.StatusForbidden, code: utils.CodeForbidden},
		{name: "no roles", userID: "u1", status: http.StatusForbidden, code: utils.CodeForbidden},
		{name: "admin", userID: "u1", roles: "CUSTOMER, ADMIN", status: http.StatusNoContent},
		{name: "prefixed admin", userID: "u1", roles: "ROLE_ADMIN", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/games/1", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.roles != "" {
				req.Header.Set(HeaderUserRoles, tt.roles)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, rec))
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := TrustedIdentity(RequireAuth(http.HandlerFunc(okHandler)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(HeaderUserID, "u1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSEchoesOriginWithCredentials(t *testing.T) {
	handler := CORS([]string{"*"})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSRestrictsConfiguredOrigins(t *testing.T) {
	handler := CORS([]string{"https://app.example.com"})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverWritesEnvelope(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, utils.CodeInternal, errorCode(t, rec))
}
