package wire

import (
	"context"

	"game-platform/internal/adaptor"
	"game-platform/internal/data/repository"
	"game-platform/internal/usecase"
	"game-platform/pkg/database"
	"game-platform/pkg/middleware"
	"game-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// WiringUser builds the user-service router over PostgreSQL
func WiringUser(db *database.DB, tokens usecase.TokenIssuer, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)
	service := usecase.NewAccountService(repo, database.NewTransactor(db, logger), tokens, logger)
	handler := adaptor.NewAccountHandler(service, config.Cookie, config.JWT.RefreshTTL, logger)

	metrics := middleware.NewMetrics(utils.ServiceUser)
	metrics.Registerer().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "db_pool_total_conns",
		Help: "Open connections in the PostgreSQL pool.",
	}, func() float64 {
		return float64(db.Pool().Stat().TotalConns())
	}))

	r := newRouter(metrics, logger, middleware.TrustedIdentity)
	wireActuator(r, metrics, map[string]adaptor.HealthCheck{
		"db": func(ctx context.Context) error { return db.Ping(ctx) },
	}, logger)

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, logger)

	return &App{Router: r, Metrics: metrics}
}

// wireUser configures user management routes with role-based access control
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// ==================== SELF SERVICE ====================
		r.Get("/me", userHandler.Me)
		r.Put("/me", userHandler.UpdateMe)
		r.Get("/{id}", userHandler.Get)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(roleAdmin, log))
			r.Get("/", userHandler.List)
			r.Delete("/{id}", userHandler.Delete)
		})
	})
}
