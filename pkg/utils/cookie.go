package utils

import (
	"net/http"
	"time"
)

const RefreshCookieName = "refreshToken"

// RememberMeTTL is the refresh cookie lifetime when the user asks to be remembered
const RememberMeTTL = 7 * 24 * time.Hour

func SetRefreshCookie(w http.ResponseWriter, cfg CookieConfig, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearRefreshCookie expires the cookie immediately (Max-Age=0 on the wire).
func ClearRefreshCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
