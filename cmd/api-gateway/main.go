package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"game-platform/cmd"
	"game-platform/internal/wire"
	"game-platform/pkg/telemetry"
	"game-platform/pkg/token"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig(utils.ServiceGateway)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.ValidateGateway(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug, utils.ServiceGateway)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("Gateway stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("user_service", config.Gateway.UserServiceURL),
		zap.String("game_service", config.Gateway.GameServiceURL),
	)

	otel, err := telemetry.Setup(ctx, utils.ServiceGateway, config.Telemetry)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(otel, logger)

	tokens, err := token.NewService(config.JWT.Secret, config.JWT.AccessTTL, config.JWT.RefreshTTL)
	if err != nil {
		return err
	}

	app, err := wire.WiringGateway(config, tokens, telemetry.Transport(nil), logger)
	if err != nil {
		return err
	}

	handler := telemetry.Handler(app.Router, utils.ServiceGateway)
	return cmd.APIServer(ctx, handler, config.App.Port, config.App.ShutdownTimeout, logger)
}

func shutdownTelemetry(otel *telemetry.OTel, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := otel.Shutdown(ctx); err != nil {
		logger.Warn("Failed to flush traces", zap.Error(err))
	}
}
