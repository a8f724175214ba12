package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/merchant_payments/internal/core/services"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/platform/config"
	"github.com/SscSPs/merchant_payments/internal/repositories/cache/memory"
	"github.com/SscSPs/merchant_payments/internal/repositories/database/pgsql"
	"github.com/SscSPs/merchant_payments/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// environment is what a database-backed command needs.
type environment struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func (e *environment) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg, nil
}

// openEnvironment connects to the database and builds the services.
// The CLI is short-lived, so rates are cached in memory only.
func openEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required")
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(pool)
	repos.RateCache = memory.NewRateCache()

	return &environment{
		cfg:      cfg,
		pool:     pool,
		services: services.NewServiceContainer(cfg, repos),
	}, nil
}
