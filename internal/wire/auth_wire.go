package wire

import (
	"game-platform/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth mounts the public auth routes; the gateway rate limits them
func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)
	})
}
