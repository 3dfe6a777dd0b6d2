package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"game-platform/cmd"
	"game-platform/internal/migrations"
	"game-platform/internal/wire"
	"game-platform/pkg/database"
	"game-platform/pkg/telemetry"
	"game-platform/pkg/token"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig(utils.ServiceUser)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.ValidateUserService(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug, utils.ServiceUser)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("User service stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	otel, err := telemetry.Setup(ctx, utils.ServiceUser, config.Telemetry)
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

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	if err := database.Migrate(ctx, db, migrations.Migrations); err != nil {
		return err
	}
	logger.Info("Database migrations applied")

	tokens, err := token.NewService(config.JWT.Secret, config.JWT.AccessTTL, config.JWT.RefreshTTL)
	if err != nil {
		return err
	}

	// Wire all dependencies
	app := wire.WiringUser(db, tokens, config, logger)

	handler := telemetry.Handler(app.Router, utils.ServiceUser)
	return cmd.APIServer(ctx, handler, config.App.Port, config.App.ShutdownTimeout, logger)
}
