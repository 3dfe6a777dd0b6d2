package middleware

import (
	"net/http"
	"strings"

	"game-platform/pkg/utils"
)

// Identity headers forwarded from the gateway to internal services
const (
	HeaderUserID    = "X-USER-ID"
	HeaderUserRoles = "X-USER-ROLES"
)

// StripIdentityHeaders drops identity headers supplied by clients. It runs
// first at the edge so only ForwardIdentity can produce them.
func StripIdentityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserID) != "" || r.Header.Get(HeaderUserRoles) != "" {
			r = r.Clone(r.Context())
			r.Header.Del(HeaderUserID)
			r.Header.Del(HeaderUserRoles)
		}
		next.ServeHTTP(w, r)
	})
}

// ForwardIdentity copies the authenticated principal onto the outbound
// request. Without a principal the request passes through unmodified.
func ForwardIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := utils.PrincipalFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		r = r.Clone(r.Context())
		r.Header.Set(HeaderUserID, principal.UserID)
		r.Header.Set(HeaderUserRoles, strings.Join(utils.NormalizeRoles(principal.Roles), ","))
		next.ServeHTTP(w, r)
	})
}
