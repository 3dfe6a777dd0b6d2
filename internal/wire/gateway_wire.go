package wire

import (
	"fmt"
	"net/http"

	"game-platform/internal/adaptor"
	"game-platform/pkg/middleware"
	"game-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WiringGateway builds the edge router: public auth routes, bearer token
// authentication for everything else and reverse proxies to the services.
func WiringGateway(config *utils.Config, verifier middleware.TokenVerifier, transport http.RoundTripper, logger *zap.Logger) (*App, error) {
	userProxy, err := adaptor.NewProxyHandler("User service", config.Gateway.UserServiceURL, transport, logger)
	if err != nil {
		return nil, fmt.Errorf("user service proxy: %w", err)
	}
	gameProxy, err := adaptor.NewProxyHandler("Game service", config.Gateway.GameServiceURL, transport, logger)
	if err != nil {
		return nil, fmt.Errorf("game service proxy: %w", err)
	}

	metrics := middleware.NewMetrics(utils.ServiceGateway)
	r := newRouter(metrics, logger, middleware.StripIdentityHeaders)
	r.Use(middleware.SecureHeaders(config.App.Debug, logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	wireActuator(r, metrics, nil, logger)

	// ==================== PUBLIC ROUTES ====================
	r.With(middleware.RateLimitByIP(config.RateLimit.AuthPerMinute)).
		Handle("/api/auth/*", userProxy)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(verifier, logger))
		r.Use(middleware.ForwardIdentity)

		r.Handle("/api/users", userProxy)
		r.Handle("/api/users/*", userProxy)
		r.Handle("/api/games", gameProxy)
		r.Handle("/api/games/*", gameProxy)

		// unknown paths still require a token before they 404
		r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseFailure(w, r, http.StatusNotFound, utils.CodeNotFound, "No route for "+r.URL.Path, nil)
		}))
	})

	return &App{Router: r, Metrics: metrics}, nil
}
