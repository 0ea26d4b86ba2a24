package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	"github.com/shopzone-microservice/internal/pkg/logger"
	"github.com/shopzone-microservice/internal/repository/postgres"
	"github.com/shopzone-microservice/internal/usecase"
	"github.com/shopzone-microservice/internal/worker"
	"github.com/shopzone-microservice/internal/worker/stats"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Refresher.Enabled {
		fmt.Println("Refresher is disabled in configuration. Set REFRESHER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting stats refresh worker",
		zap.Duration("interval", cfg.Refresher.Interval),
		zap.Duration("run_timeout", cfg.Refresher.RunTimeout),
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

	// 4. Initialize repositories and use cases
	boundaryRepo := postgres.NewBoundaryRepository(db)
	shopRepo := postgres.NewShopRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	statsUC := usecase.NewStatsUseCase(boundaryRepo, shopRepo, statsRepo, log)

	// 5. Initialize workers
	refreshWorker := stats.NewRefreshWorker(
		statsUC,
		cfg.Refresher.Interval,
		cfg.Refresher.RunTimeout,
		log,
	)

	// 6. Create worker manager and register workers
	manager := worker.NewManager(log)
	manager.Register(refreshWorker)

	// 7. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
