package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	httpDelivery "github.com/shopzone-microservice/internal/delivery/http"
	"github.com/shopzone-microservice/internal/delivery/http/handler"
	"github.com/shopzone-microservice/internal/pkg/logger"
	"github.com/shopzone-microservice/internal/repository/cache"
	"github.com/shopzone-microservice/internal/repository/postgres"
	"github.com/shopzone-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ShopZone Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	healthCtx, cancelHealth := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelHealth()

	if err := db.Health(healthCtx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(healthCtx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	boundaryRepo := postgres.NewBoundaryRepository(db)
	areaRepo := postgres.NewAreaRepository(db)
	shopRepo := postgres.NewShopRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	mapUC := usecase.NewMapQueryUseCase(areaRepo, shopRepo, statsRepo, cacheRepo, cfg, log)
	radiusUC := usecase.NewRadiusSearchUseCase(areaRepo, shopRepo, cfg, log)
	areaUC := usecase.NewAreaUseCase(areaRepo, boundaryRepo, log)
	statsUC := usecase.NewStatsUseCase(boundaryRepo, shopRepo, statsRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	mapHandler := handler.NewMapHandler(mapUC, log)
	shopHandler := handler.NewShopHandler(radiusUC, log)
	areaHandler := handler.NewAreaHandler(areaUC, log)
	boundaryHandler := handler.NewBoundaryHandler(areaUC, log)
	adminHandler := handler.NewAdminHandler(statsUC, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		mapHandler,
		shopHandler,
		areaHandler,
		boundaryHandler,
		adminHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// 12. Graceful shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	log.Info("Server shutdown complete")
}
