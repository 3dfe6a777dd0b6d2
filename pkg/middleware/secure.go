package middleware

import (
	"net/http"
	"time"

	"game-platform/pkg/utils"

	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// SecureHeaders sets the standard hardening headers on every response
func SecureHeaders(debug bool, logger *zap.Logger) func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      debug,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", zap.Error(err))
				utils.ResponseInternalError(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits each client IP to requests per minute. A non-positive
// limit disables it.
func RateLimitByIP(requests int) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(requests, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseFailure(w, r, http.StatusTooManyRequests, "TOO_MANY_REQUESTS",
				"Too many requests. Please try again later.", nil)
		}),
	)
}
