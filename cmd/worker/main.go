package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/infrastructure/cache"
	"github.com/raceday/pro-upgrade/internal/infrastructure/config"
	"github.com/raceday/pro-upgrade/internal/infrastructure/external/storegw"
	"github.com/raceday/pro-upgrade/internal/infrastructure/logging"
	"github.com/raceday/pro-upgrade/internal/infrastructure/persistence/pool"
	"github.com/raceday/pro-upgrade/internal/infrastructure/persistence/repository"
	worker_tasks "github.com/raceday/pro-upgrade/internal/worker/tasks"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.Logger.Info("Starting upgrade screen worker")

	// Initialize database for the pruning task
	ctx := context.Background()
	dbPool, err := pool.NewPool(ctx, cfg.Database)
	if err != nil {
		logging.Logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close(dbPool)

	// Initialize Redis
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logging.Logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	opts.PoolSize = cfg.Redis.PoolSize
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Logger.Fatal("Failed to ping Redis", zap.Error(err))
	}

	// Task dependencies
	gateway := storegw.NewClient(storegw.Config{
		BaseURL: cfg.StoreGateway.BaseURL,
		APIKey:  cfg.StoreGateway.APIKey,
		Timeout: cfg.StoreGateway.Timeout,
	}, logging.WithComponent("storegw"))
	catalogCache := cache.NewCatalogCache(redisClient, cfg.StoreGateway.CatalogTTL, logging.WithComponent("catalog_cache"))
	eventRepo := repository.NewPurchaseEventRepository(dbPool)

	taskHandlers := worker_tasks.NewTaskHandlers(
		gateway,
		catalogCache,
		eventRepo,
		cfg.Events.Retention,
		logging.WithComponent("tasks"),
	)

	// Initialize Asynq server
	server := asynq.NewServerFromRedisClient(redisClient, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 3,
			"low":     1,
		},
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			// Exponential backoff: 2^n seconds
			return time.Duration(1<<uint(n)) * time.Second
		},
	})

	mux := asynq.NewServeMux()
	worker_tasks.RegisterHandlers(mux, taskHandlers)

	if err := server.Start(mux); err != nil {
		logging.Logger.Fatal("Failed to start worker", zap.Error(err))
	}

	// Register scheduled tasks
	scheduler := asynq.NewSchedulerFromRedisClient(redisClient, nil)
	worker_tasks.RegisterScheduledTasks(scheduler, logging.Logger)

	if err := scheduler.Start(); err != nil {
		logging.Logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	logging.Logger.Info("Worker started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down worker...")
	scheduler.Shutdown()
	server.Shutdown()
	logging.Logger.Info("Worker exited")
}
