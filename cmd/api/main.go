package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/application/middleware"
	"github.com/raceday/pro-upgrade/internal/application/session"
	"github.com/raceday/pro-upgrade/internal/domain/store"
	"github.com/raceday/pro-upgrade/internal/infrastructure/cache"
	"github.com/raceday/pro-upgrade/internal/infrastructure/config"
	"github.com/raceday/pro-upgrade/internal/infrastructure/external/storegw"
	"github.com/raceday/pro-upgrade/internal/infrastructure/logging"
	"github.com/raceday/pro-upgrade/internal/infrastructure/persistence/pool"
	"github.com/raceday/pro-upgrade/internal/infrastructure/persistence/repository"
	app_handler "github.com/raceday/pro-upgrade/internal/interfaces/http/handlers"
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

	logging.Logger.Info("Starting upgrade screen API server",
		zap.Int("port", cfg.Server.Port),
		zap.String("environment", cfg.Sentry.Environment),
	)

	// Initialize database connection
	ctx := context.Background()
	dbPool, err := pool.NewPool(ctx, cfg.Database)
	if err != nil {
		logging.Logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close(dbPool)

	if err := pool.Ping(ctx, dbPool); err != nil {
		logging.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

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

	// Store gateway and shared catalog cache
	catalogCache := cache.NewCatalogCache(redisClient, cfg.StoreGateway.CatalogTTL, logging.WithComponent("catalog_cache"))
	gateway := storegw.NewClient(storegw.Config{
		BaseURL: cfg.StoreGateway.BaseURL,
		APIKey:  cfg.StoreGateway.APIKey,
		Timeout: cfg.StoreGateway.Timeout,
	}, logging.WithComponent("storegw"))

	// Telemetry
	eventRepo := repository.NewPurchaseEventRepository(dbPool)

	// Per-user screen sessions
	factory := func(userID string) store.Service {
		return storegw.NewService(gateway, catalogCache, userID, logging.WithComponent("store_session"))
	}
	sessions := session.NewManager(factory, eventRepo, logging.WithComponent("session"))

	// Middleware
	jwtMiddleware := middleware.NewJWTMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer, redisClient, logging.WithComponent("jwt"))
	rateLimiter := middleware.NewRateLimiter(redisClient, true, logging.WithComponent("rate_limiter")) // fail open

	// Handlers
	screenHandler := app_handler.NewScreenHandler(sessions)

	// Setup Gin router
	if cfg.Sentry.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logging.RequestMiddleware(logging.Logger),
	)

	// Health check endpoint (no auth required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes (all require JWT)
	v1 := router.Group("/v1")
	v1.Use(jwtMiddleware.Authenticate())
	{
		upgrade := v1.Group("/screen/upgrade")
		upgrade.GET("", screenHandler.GetScreen)
		upgrade.POST("/purchase",
			rateLimiter.Middleware(middleware.ByUserID, middleware.PurchaseConfig),
			screenHandler.Purchase,
		)
		upgrade.POST("/restore",
			rateLimiter.Middleware(middleware.ByUserID, middleware.PurchaseConfig),
			screenHandler.Restore,
		)
		upgrade.POST("/reload",
			rateLimiter.Middleware(middleware.ByUserID, middleware.DefaultConfig),
			screenHandler.Reload,
		)
		upgrade.POST("/alerts/:alert/dismiss", screenHandler.DismissAlert)
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logging.Logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exited")
}
