package services

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/dto"
	"github.com/shopspring/decimal"
)

// RateProvider supplies the best-known cached rates without doing I/O.
type RateProvider interface {
	// GetRates returns the cached rates, or the built-in defaults on a cache miss.
	GetRates() []domain.ConversionRate
}

// RateStoreSvc is the rate store: an in-process snapshot backed by a persistent cache.
type RateStoreSvc interface {
	RateProvider

	// FindRate looks for from→to, then for the stored inverse of to→from.
	FindRate(rates []domain.ConversionRate, from, to domain.CurrencyCode) (decimal.Decimal, bool)

	// Warm loads the persistent cache into the snapshot.
	Warm(ctx context.Context)

	// Refresh pulls all rates from the rate source and updates the snapshot and cache.
	Refresh(ctx context.Context) ([]domain.ConversionRate, error)

	// LiveRates is Refresh for callers that treat failure as "no live rates".
	LiveRates(ctx context.Context) []domain.ConversionRate
}

// ConverterSvc converts amounts between currencies. It never fails.
type ConverterSvc interface {
	Convert(amount decimal.Decimal, from, to domain.CurrencyCode, liveRates []domain.ConversionRate) decimal.Decimal
	ConvertWithDetail(amount decimal.Decimal, from, to domain.CurrencyCode, liveRates []domain.ConversionRate) domain.Conversion
	// ConvertWithDetailContext is ConvertWithDetail reporting degraded tiers through the
	// request-scoped logger carried by ctx.
	ConvertWithDetailContext(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode, liveRates []domain.ConversionRate) domain.Conversion
}

// ConversionRateReaderSvc defines read operations for conversion rate data
type ConversionRateReaderSvc interface {
	// ListConversionRates lists rates, optionally filtered by currency codes.
	ListConversionRates(ctx context.Context, fromCode, toCode string) ([]domain.ConversionRate, error)

	// Quote converts an amount using live rates when reachable.
	Quote(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*domain.Conversion, error)
}

// ConversionRateWriterSvc defines write operations for conversion rate data
type ConversionRateWriterSvc interface {
	// CreateConversionRate persists a new rate and refreshes the rate store.
	CreateConversionRate(ctx context.Context, req dto.CreateConversionRateRequest, creatorID string) (*domain.ConversionRate, error)

	// RefreshRates forces a rate store refresh and returns the number of rates loaded.
	RefreshRates(ctx context.Context) (int, error)
}

// ConversionRateSvcFacade combines all conversion rate service interfaces
type ConversionRateSvcFacade interface {
	ConversionRateReaderSvc
	ConversionRateWriterSvc
}
