package main

import (
	"context"
	"log"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"

	"github.com/caretrip/caretrip/internal/pkg/config"
	"github.com/caretrip/caretrip/internal/pkg/database"
	"github.com/caretrip/caretrip/internal/pkg/logger"
	natspkg "github.com/caretrip/caretrip/internal/pkg/nats"
	"github.com/caretrip/caretrip/internal/pkg/server"
	"github.com/caretrip/caretrip/services/tracking/gateway"
	"github.com/caretrip/caretrip/services/tracking/handler"
	"github.com/caretrip/caretrip/services/tracking/repository"
	"github.com/caretrip/caretrip/services/tracking/usecase"
)

func main() {
	appName := "tracking-service"
	configPath := "config/tracking.env"
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Postgres
	db, err := database.NewPostgresDB(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	// Redis
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	// NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}

	// Wire the tracking service
	rideRepo := repository.NewRideRepository(configs, db)
	locationRepo := repository.NewLocationRepository(db, redisClient)
	trackingGW := gateway.NewTrackingGW(natsClient)
	trackingUC := usecase.NewTrackingUC(configs, rideRepo, locationRepo, trackingGW, clock.New())
	trackingHandler := handler.NewHandler(trackingUC, locationRepo, configs)

	// HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.Use(logger.EchoMiddleware(zapLogger))
	trackingHandler.RegisterRoutes(e)

	shutdownManager := server.NewShutdownManager(zapLogger)
	shutdownManager.Register(func(ctx context.Context) error {
		return trackingUC.Close()
	})
	shutdownManager.Register(func(ctx context.Context) error {
		natsClient.Close()
		return nil
	})
	shutdownManager.Register(func(ctx context.Context) error {
		return redisClient.Close()
	})
	shutdownManager.Register(func(ctx context.Context) error {
		return db.Close()
	})

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server shutdown with error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()
	_ = shutdownManager.Shutdown(ctx)

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
