package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/middleware"
	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/shopspring/decimal"
)

// DefaultFallbackRate is the last-resort XOF/USD pair used when neither live nor cached
// rates resolve a conversion.
func DefaultFallbackRate() domain.ConversionRate {
	return domain.ConversionRate{
		ID:           "fallback-xof-usd",
		FromCurrency: "XOF",
		ToCurrency:   "USD",
		Rate:         decimal.RequireFromString("0.00165"),
		InverseRate:  decimal.NewFromInt(605),
	}
}

// ConversionEngine converts amounts with the live → cached → hardcoded → identity chain.
// It holds no mutable state and is safe for concurrent use.
type ConversionEngine struct {
	rates     portssvc.RateProvider
	precision *utils.PrecisionTable
	fallback  domain.ConversionRate
	logger    *slog.Logger
}

// ConversionEngineOption is a functional option for configuring the engine
type ConversionEngineOption func(*ConversionEngine)

// WithPrecisionTable sets the per-currency rounding table.
func WithPrecisionTable(table *utils.PrecisionTable) ConversionEngineOption {
	return func(e *ConversionEngine) {
		e.precision = table
	}
}

// WithFallbackRate sets the hardcoded last-resort pair.
func WithFallbackRate(rate domain.ConversionRate) ConversionEngineOption {
	return func(e *ConversionEngine) {
		rate.FromCurrency = domain.NormalizeCurrencyCode(string(rate.FromCurrency))
		rate.ToCurrency = domain.NormalizeCurrencyCode(string(rate.ToCurrency))
		e.fallback = rate
	}
}

// WithEngineLogger sets the logger used to report degraded conversions when the
// context carries no request-scoped logger.
func WithEngineLogger(logger *slog.Logger) ConversionEngineOption {
	return func(e *ConversionEngine) {
		e.logger = logger
	}
}

// NewConversionEngine creates an engine reading cached rates from rates (may be nil).
func NewConversionEngine(rates portssvc.RateProvider, options ...ConversionEngineOption) *ConversionEngine {
	e := &ConversionEngine{
		rates:     rates,
		precision: utils.DefaultPrecisionTable(),
		fallback:  DefaultFallbackRate(),
		logger:    slog.Default(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

var _ portssvc.ConverterSvc = (*ConversionEngine)(nil)

// Convert returns amount expressed in to. See ConvertWithDetail.
func (e *ConversionEngine) Convert(amount decimal.Decimal, from, to domain.CurrencyCode, liveRates []domain.ConversionRate) decimal.Decimal {
	return e.ConvertWithDetail(amount, from, to, liveRates).Converted
}

// ConvertWithDetail converts amount and reports which tier resolved the rate.
// Identical currencies and unresolvable pairs return amount untouched and unrounded;
// every other result is rounded to the precision of to.
func (e *ConversionEngine) ConvertWithDetail(amount decimal.Decimal, from, to domain.CurrencyCode, liveRates []domain.ConversionRate) domain.Conversion {
	return e.ConvertWithDetailContext(context.Background(), amount, from, to, liveRates)
}

// ConvertWithDetailContext is ConvertWithDetail with warnings logged through the
// logger carried by ctx.
func (e *ConversionEngine) ConvertWithDetailContext(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode, liveRates []domain.ConversionRate) domain.Conversion {
	from = domain.NormalizeCurrencyCode(string(from))
	to = domain.NormalizeCurrencyCode(string(to))
	result := domain.Conversion{
		Amount:       amount,
		FromCurrency: from,
		ToCurrency:   to,
		Converted:    amount,
		Rate:         decimal.NewFromInt(1),
		Tier:         domain.TierIdentity,
	}
	if from == to {
		return result
	}

	rate, tier, ok := e.resolve(from, to, liveRates)
	if !ok {
		e.loggerFor(ctx).Warn("No conversion rate available, returning amount unconverted",
			slog.String("from", string(from)),
			slog.String("to", string(to)))
		return result
	}
	if tier == domain.TierHardcoded {
		e.loggerFor(ctx).Warn("Hardcoded fallback conversion rate used",
			slog.String("from", string(from)),
			slog.String("to", string(to)),
			slog.String("rate", rate.String()))
	}

	result.Rate = rate
	result.Tier = tier
	result.Converted = e.precision.Round(amount.Mul(rate), to)
	return result
}

func (e *ConversionEngine) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := middleware.LoggerFromCtx(ctx); ok {
		return logger
	}
	return e.logger
}

func (e *ConversionEngine) resolve(from, to domain.CurrencyCode, liveRates []domain.ConversionRate) (decimal.Decimal, domain.RateTier, bool) {
	if len(liveRates) > 0 {
		if rate, ok := FindRate(liveRates, from, to); ok {
			return rate, domain.TierLive, true
		}
	}
	if e.rates != nil {
		if rate, ok := FindRate(e.rates.GetRates(), from, to); ok {
			return rate, domain.TierCached, true
		}
	}
	if rate, ok := FindRate([]domain.ConversionRate{e.fallback}, from, to); ok {
		return rate, domain.TierHardcoded, true
	}
	return decimal.Zero, domain.TierIdentity, false
}
