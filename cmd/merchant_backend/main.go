package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/services"
	"github.com/SscSPs/merchant_payments/internal/handlers"
	"github.com/SscSPs/merchant_payments/internal/middleware"
	"github.com/SscSPs/merchant_payments/internal/platform/config"
	"github.com/SscSPs/merchant_payments/internal/repositories/cache/memory"
	"github.com/SscSPs/merchant_payments/internal/repositories/cache/rediscache"
	"github.com/SscSPs/merchant_payments/internal/repositories/database/pgsql"
	"github.com/SscSPs/merchant_payments/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
)

// @title Merchant Payments API
// @version 1.0
// @description Multi-currency balances, conversion rates and withdrawals for merchants.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	var redisClient redis.UniversalClient
	if cfg.RedisAddr != "" {
		redisClient = rediscache.NewClient(strings.Split(cfg.RedisAddr, ","), cfg.RedisPassword, cfg.RedisDB)
		defer redisClient.Close()

		rateCache := rediscache.NewRateCache(redisClient, cfg.RateCacheKey, cfg.RateCacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rateCache.Ping(pingCtx); err != nil {
			// The store falls back to built-in rates while redis is unreachable.
			logger.Warn("Redis rate cache unreachable at startup", slog.String("error", err.Error()))
		}
		cancel()
		repos.RateCache = rateCache
		logger.Info("Using redis rate cache", slog.String("addr", cfg.RedisAddr))
	} else {
		repos.RateCache = memory.NewRateCache()
		logger.Info("Using in-memory rate cache")
	}

	serviceContainer := services.NewServiceContainer(cfg, repos)

	serviceContainer.RateStore.Warm(ctx)
	if _, err := serviceContainer.RateStore.Refresh(ctx); err != nil {
		logger.Warn("Initial conversion rate refresh failed", slog.String("error", err.Error()))
	}
	if refresher, ok := serviceContainer.RateStore.(interface {
		StartAutoRefresh(context.Context, time.Duration)
	}); ok {
		refresher.StartAutoRefresh(ctx, cfg.RateRefreshInterval)
	}

	withdrawalLimiter, err := newWithdrawalLimiter(cfg, redisClient)
	if err != nil {
		logger.Error("Failed to configure withdrawal rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", handlers.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, withdrawalLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newWithdrawalLimiter shares counters through redis when available so limits hold across replicas.
func newWithdrawalLimiter(cfg *config.Config, client redis.UniversalClient) (*limiter.Limiter, error) {
	if cfg.WithdrawalRateLimit == "" {
		return nil, nil
	}
	if client != nil {
		return middleware.NewRedisLimiter(cfg.WithdrawalRateLimit, client)
	}
	return middleware.NewMemoryLimiter(cfg.WithdrawalRateLimit)
}
