package wire

import (
	"net/http"

	"game-platform/internal/adaptor"
	"game-platform/pkg/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const roleAdmin = "ADMIN"

// App holds the router of one service process
type App struct {
	Router  *chi.Mux
	Metrics *middleware.Metrics
}

// newRouter applies the middleware shared by every service. The gateway
// passes StripIdentityHeaders as edge so it runs before anything reads them.
func newRouter(metrics *middleware.Metrics, logger *zap.Logger, edge ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(edge...)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(metrics.Middleware)

	return r
}

// wireActuator mounts the health and metrics endpoints
func wireActuator(r chi.Router, metrics *middleware.Metrics, checks map[string]adaptor.HealthCheck, logger *zap.Logger) {
	r.Route("/actuator", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", adaptor.NewHealthHandler(checks, logger))
		r.Method(http.MethodGet, "/prometheus", metrics.Handler())
	})
}
