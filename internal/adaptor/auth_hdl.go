package adaptor

import (
	"net/http"
	"time"

	"game-platform/internal/dto/request"
	"game-platform/internal/usecase"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service    usecase.AuthService
	cookie     utils.CookieConfig
	refreshTTL time.Duration
	log        *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookie utils.CookieConfig, refreshTTL time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookie:     cookie,
		refreshTTL: refreshTTL,
		log:        log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "User registered successfully", user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	maxAge := h.refreshTTL
	if req.RememberMe {
		maxAge = utils.RememberMeTTL
	}
	utils.SetRefreshCookie(w, h.cookie, resp.RefreshToken, maxAge)

	utils.ResponseSuccess(w, r, "Login successful", resp)
}

// Refresh handles POST /auth/refresh using the refreshToken cookie
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Refresh(r.Context(), refreshTokenFromCookie(r))
	if err != nil {
		utils.ClearRefreshCookie(w, h.cookie)
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.SetRefreshCookie(w, h.cookie, resp.RefreshToken, h.refreshTTL)
	utils.ResponseSuccess(w, r, "Token refreshed successfully", resp)
}

// Logout handles POST /auth/logout. The cookie is cleared whatever its state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context(), refreshTokenFromCookie(r))
	utils.ClearRefreshCookie(w, h.cookie)
	utils.ResponseSuccess(w, r, "Logout successful", nil)
}

func refreshTokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(utils.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
