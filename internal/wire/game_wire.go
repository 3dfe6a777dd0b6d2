package wire

import (
	"context"

	"game-platform/internal/adaptor"
	"game-platform/internal/data/repository"
	"game-platform/internal/usecase"
	"game-platform/pkg/middleware"
	"game-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WiringGame builds the game-service router over MongoDB. rdb may be nil, in
// which case reads are not cached.
func WiringGame(client *mongo.Client, db *mongo.Database, rdb *redis.Client, config *utils.Config, logger *zap.Logger) *App {
	games := repository.NewGameRepository(db, logger)
	cache := repository.NewGameCache(rdb, config.Redis.CacheTTL, logger)
	return wireGameApp(games, cache, gameHealthChecks(client, rdb), logger)
}

func gameHealthChecks(client *mongo.Client, rdb *redis.Client) map[string]adaptor.HealthCheck {
	checks := map[string]adaptor.HealthCheck{
		"mongo": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

func wireGameApp(games repository.GameRepository, cache repository.GameCache, checks map[string]adaptor.HealthCheck, logger *zap.Logger) *App {
	service := usecase.NewCatalogService(games, cache, logger)
	handler := adaptor.NewCatalogHandler(service, logger)

	metrics := middleware.NewMetrics(utils.ServiceGame)
	r := newRouter(metrics, logger, middleware.TrustedIdentity)
	wireActuator(r, metrics, checks, logger)
	wireGame(r, handler.Game, logger)

	return &App{Router: r, Metrics: metrics}
}

// wireGame configures catalogue routes; reads are public, writes need ADMIN
func wireGame(r chi.Router, gameHandler *adaptor.GameHandler, log *zap.Logger) {
	r.Route("/games", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", gameHandler.List)
		r.Get("/count", gameHandler.Count)
		r.Get("/appid/{appId}", gameHandler.GetByAppID)
		r.Get("/{id}", gameHandler.Get)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(roleAdmin, log))
			r.Post("/", gameHandler.Create)
			r.Post("/bulk", gameHandler.CreateBulk)
			r.Put("/{id}", gameHandler.Update)
			r.Delete("/{id}", gameHandler.Delete)
			r.Delete("/appid/{appId}", gameHandler.DeleteByAppID)
		})
	})
}
