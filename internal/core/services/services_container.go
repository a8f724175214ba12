package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Rate store first; every other service reads rates through it.
	storeOpts := []RateStoreOption{WithLiveRateMaxAge(cfg.LiveRateMaxAge)}
	if repos.RateCache != nil {
		storeOpts = append(storeOpts, WithRateCache(repos.RateCache))
	}
	rateStore := NewRateStore(repos.ConversionRateRepo, storeOpts...)

	engine := NewConversionEngine(rateStore,
		WithPrecisionTable(cfg.Precision),
		WithFallbackRate(cfg.FallbackRate),
		WithEngineLogger(slog.Default()),
	)

	return &portssvc.ServiceContainer{
		RateStore:      rateStore,
		Converter:      engine,
		ConversionRate: NewConversionRateService(repos.ConversionRateRepo, rateStore, engine),
		Balance: NewBalanceService(repos.BalanceRepo, rateStore, engine,
			WithDisplayOrder(cfg.BalanceDisplayOrder),
			WithBalancePrecision(cfg.Precision),
		),
		Withdrawal: NewWithdrawalService(repos.WithdrawalLedger, repos.BalanceRepo, rateStore, engine, cfg.Precision),
	}
}
