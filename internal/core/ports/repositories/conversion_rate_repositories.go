package repositories

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
)

// ConversionRateReader defines read operations for conversion rate data
type ConversionRateReader interface {
	// ListConversionRates returns known rates, optionally filtered by currency.
	// A nil filter means "any currency".
	ListConversionRates(ctx context.Context, fromCurrency, toCurrency *domain.CurrencyCode) ([]domain.ConversionRate, error)
}

// ConversionRateWriter defines write operations for conversion rate data
type ConversionRateWriter interface {
	// SaveConversionRate persists a new conversion rate.
	SaveConversionRate(ctx context.Context, rate domain.ConversionRate) error
}

// ConversionRateRepositoryFacade combines all conversion rate repository interfaces
type ConversionRateRepositoryFacade interface {
	ConversionRateReader
	ConversionRateWriter
}

// RateCache is the persistent key/value home of the fallback rate list.
// Reads and writes are best effort and not coherent across processes.
type RateCache interface {
	// Load returns the cached list. A miss returns (nil, nil).
	Load(ctx context.Context) ([]domain.ConversionRate, error)
	// Store replaces the cached list.
	Store(ctx context.Context, rates []domain.ConversionRate) error
}
