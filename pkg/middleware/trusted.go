package middleware

import (
	"net/http"
	"strings"

	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

// TrustedIdentity reads the gateway identity headers into a Principal.
// Requests without X-USER-ID stay anonymous.
func TrustedIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal := &utils.Principal{
			UserID: userID,
			Roles:  utils.SplitRoles(r.Header.Get(HeaderUserRoles)),
		}
		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), principal)))
	})
}

// RequireAuth rejects anonymous callers
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.PrincipalFromContext(r.Context()); !ok {
			writeAuthError(w, r, utils.KindMissingToken, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows the request only when the principal holds role
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get principal
			principal, ok := utils.PrincipalFromContext(r.Context())
			if !ok {
				writeAuthError(w, r, utils.KindMissingToken, "Authentication required")
				return
			}

			// 2. Check role
			if !principal.HasRole(role) {
				logger.Warn("Role check failed",
					zap.String("user_id", principal.UserID),
					zap.String("required_role", role),
					zap.String("path", r.URL.Path),
				)
				appErr := utils.ErrForbidden("Access denied. " + utils.NormalizeRole(role) + " role required")
				utils.ResponseFailure(w, r, appErr.Status(), appErr.Code, appErr.Message, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
