package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"game-platform/internal/dto/request"
	"game-platform/internal/dto/response"
	"game-platform/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthService struct {
	loginErr     error
	refreshErr   error
	loggedOut    string
	refreshedFor string
}

func (s *stubAuthService) Register(_ context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	return &response.UserResponse{Username: req.Username, Email: req.Email, Roles: []string{"CUSTOMER"}}, nil
}

func (s *stubAuthService) Login(_ context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &response.AuthResponse{
		AccessToken:  "access",
		TokenType:    response.TokenTypeBearer,
		ExpiresIn:    900,
		User:         &response.UserResponse{Username: req.UsernameOrEmail},
		RefreshToken: "refresh",
	}, nil
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (*response.AuthResponse, error) {
	s.refreshedFor = refreshToken
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &response.AuthResponse{AccessToken: "access-2", TokenType: response.TokenTypeBearer, RefreshToken: "refresh-2"}, nil
}

func (s *stubAuthService) Logout(_ context.Context, refreshToken string) {
	s.loggedOut = refreshToken
}

const testRefreshTTL = 24 * time.Hour

func newAuthHandler(svc *stubAuthService) *AuthHandler {
	return NewAuthHandler(svc, utils.CookieConfig{Secure: true}, testRefreshTTL, zap.NewNop())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.RefreshCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", utils.RefreshCookieName)
	return nil
}

func TestRegisterHandler(t *testing.T) {
	h := newAuthHandler(&stubAuthService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"alice@example.com","username":"alice","password":"secret123","firstName":"A","lastName":"L"}`))
	h.Register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, "alice", body["data"].(map[string]any)["username"])
}

func TestRegisterHandlerRejectsBadJSON(t *testing.T) {
	h := newAuthHandler(&stubAuthService{})

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, utils.CodeValidation, body["error"].(map[string]any)["code"])
}

func TestLoginSetsRefreshCookie(t *testing.T) {
	tests := []struct {
		name       string
		rememberMe bool
		maxAge     int
	}{
		{name: "default ttl", rememberMe: false, maxAge: int(testRefreshTTL.Seconds())},
		{name: "remember me", rememberMe: true, maxAge: 604800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandler(&stubAuthService{})
			payload, _ := json.Marshal(map[string]any{
				"usernameOrEmail": "alice",
				"password":        "secret123",
				"rememberMe":      tt.rememberMe,
			})

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(string(payload))))

			require.Equal(t, http.StatusOK, rec.Code)
			cookie := refreshCookie(t, rec)
			assert.Equal(t, "refresh", cookie.Value)
			assert.Equal(t, tt.maxAge, cookie.MaxAge)
			assert.True(t, cookie.HttpOnly)
			assert.True(t, cookie.Secure)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
			assert.Equal(t, "/", cookie.Path)

			data := decodeEnvelope(t, rec)["data"].(map[string]any)
			assert.Equal(t, "access", data["accessToken"])
			assert.Equal(t, "Bearer", data["tokenType"])
			assert.NotContains(t, data, "refreshToken")
		})
	}
}

func TestLoginFailureSetsNoCookie(t *testing.T) {
	h := newAuthHandler(&stubAuthService{
		loginErr: utils.NewAppError(utils.KindAuthFailed, utils.CodeAuthFailed, "Invalid credentials"),
	})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"usernameOrEmail":"alice","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, utils.CodeAuthFailed, decodeEnvelope(t, rec)["error"].(map[string]any)["code"])
}

func TestRefreshRotatesCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: "refresh"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refresh", svc.refreshedFor)
	cookie := refreshCookie(t, rec)
	assert.Equal(t, "refresh-2", cookie.Value)
	assert.Equal(t, int(testRefreshTTL.Seconds()), cookie.MaxAge)
}

func TestRefreshFailureClearsCookie(t *testing.T) {
	h := newAuthHandler(&stubAuthService{
		refreshErr: utils.NewAppError(utils.KindInvalidToken, utils.CodeInvalidRefreshToken, "Invalid or expired refresh token"),
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, utils.CodeInvalidRefreshToken, decodeEnvelope(t, rec)["error"].(map[string]any)["code"])

	cookie := refreshCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestLogoutClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: "refresh"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refresh", svc.loggedOut)
	assert.Equal(t, "Logout successful", decodeEnvelope(t, rec)["message"])
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")

	// without a cookie logout still succeeds
	rec = httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
