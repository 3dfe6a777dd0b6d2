package middleware

import (
	"errors"
	"net/http"
	"strings"

	"game-platform/pkg/token"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

const bearerScheme = "Bearer"

// TokenVerifier is satisfied by *token.Service
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Authenticate validates the bearer token and stores the caller as a Principal
// in the request context. Failures stop the chain with a 401.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeAuthError(w, r, utils.KindMissingToken, "Authentication token is required")
				return
			}

			// 2. Verify
			claims, err := verifier.Verify(raw)
			switch {
			case errors.Is(err, token.ErrTokenExpired):
				logger.Debug("Expired token", zap.String("path", r.URL.Path))
				writeAuthError(w, r, utils.KindTokenExpired, "Authentication token has expired")
				return
			case err != nil:
				logger.Warn("Invalid token", zap.String("path", r.URL.Path), zap.Error(err))
				writeAuthError(w, r, utils.KindInvalidToken, "Invalid authentication token")
				return
			}

			// 3. Resolve principal once for the rest of the chain
			principal := &utils.Principal{
				UserID:   claims.UserID,
				Username: claims.Subject,
				Roles:    utils.NormalizeRoles(token.ExtractRoles(claims)),
			}

			next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), principal)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, kind utils.ErrorKind, message string) {
	appErr := utils.NewAppError(kind, "", message)
	utils.ResponseFailure(w, r, appErr.Status(), appErr.Code, appErr.Message, nil)
}

// bearerToken extracts the credentials of an Authorization header; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}
