package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"game-platform/cmd"
	"game-platform/internal/data/repository"
	"game-platform/internal/wire"
	"game-platform/pkg/database"
	"game-platform/pkg/telemetry"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig(utils.ServiceGame)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.ValidateGameService(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug, utils.ServiceGame)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("Game service stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	otel, err := telemetry.Setup(ctx, utils.ServiceGame, config.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	// Connect to MongoDB
	client, db, err := database.InitMongo(ctx, config.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	logger.Info("MongoDB connected successfully", zap.String("database", config.Mongo.Database))

	if err := repository.NewGameRepository(db, logger).EnsureIndexes(ctx); err != nil {
		return err
	}

	// Redis is optional; without it reads go straight to MongoDB
	rdb, err := database.InitRedis(ctx, config.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis cache enabled", zap.Duration("ttl", config.Redis.CacheTTL))
	} else {
		logger.Info("Redis cache disabled")
	}

	// Wire all dependencies
	app := wire.WiringGame(client, db, rdb, config, logger)

	handler := telemetry.Handler(app.Router, utils.ServiceGame)
	return cmd.APIServer(ctx, handler, config.App.Port, config.App.ShutdownTimeout, logger)
}
