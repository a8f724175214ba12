package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// DefaultRates is the built-in list served on a cache miss so the XOF/USD pair never fails.
func DefaultRates() []domain.ConversionRate {
	return []domain.ConversionRate{
		{
			ID:           "builtin-xof-usd",
			FromCurrency: "XOF",
			ToCurrency:   "USD",
			Rate:         decimal.RequireFromString("0.00165"),
			InverseRate:  decimal.NewFromInt(605),
		},
	}
}

// FindRate looks for a direct from→to entry, then for a to→from entry and returns its
// stored InverseRate. Non-positive factors are treated as missing.
func FindRate(rates []domain.ConversionRate, from, to domain.CurrencyCode) (decimal.Decimal, bool) {
	from = domain.NormalizeCurrencyCode(string(from))
	to = domain.NormalizeCurrencyCode(string(to))
	for _, r := range rates {
		if r.FromCurrency == from && r.ToCurrency == to && r.Rate.IsPositive() {
			return r.Rate, true
		}
	}
	for _, r := range rates {
		if r.FromCurrency == to && r.ToCurrency == from && r.InverseRate.IsPositive() {
			return r.InverseRate, true
		}
	}
	return decimal.Zero, false
}

// RateStore keeps the best-known rate list in memory, backed by a persistent RateCache
// and refreshed from the rate source.
type RateStore struct {
	BaseService
	source   portsrepo.ConversionRateReader
	cache    portsrepo.RateCache
	defaults []domain.ConversionRate

	// liveMaxAge lets LiveRates reuse a source read younger than this. Zero always reads.
	liveMaxAge time.Duration

	mu          sync.RWMutex
	snapshot    []domain.ConversionRate
	refreshedAt time.Time
	fetchedAt   time.Time
}

// RateStoreOption is a functional option for configuring the rate store
type RateStoreOption func(*RateStore)

// WithDefaultRates replaces the built-in rates served on a cache miss.
func WithDefaultRates(rates []domain.ConversionRate) RateStoreOption {
	return func(s *RateStore) {
		s.defaults = normalizeRates(rates)
	}
}

// WithRateCache sets the persistent cache.
func WithRateCache(cache portsrepo.RateCache) RateStoreOption {
	return func(s *RateStore) {
		s.cache = cache
	}
}

// WithLiveRateMaxAge lets LiveRates serve rates fetched from the source within maxAge.
func WithLiveRateMaxAge(maxAge time.Duration) RateStoreOption {
	return func(s *RateStore) {
		s.liveMaxAge = maxAge
	}
}

// NewRateStore creates a rate store reading from source. A nil source disables Refresh.
func NewRateStore(source portsrepo.ConversionRateReader, options ...RateStoreOption) *RateStore {
	s := &RateStore{
		source:   source,
		defaults: DefaultRates(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.RateStoreSvc = (*RateStore)(nil)

// GetRates returns a copy of the cached rates, or the defaults on a cache miss.
func (s *RateStore) GetRates() []domain.ConversionRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.snapshot) == 0 {
		return append([]domain.ConversionRate(nil), s.defaults...)
	}
	return append([]domain.ConversionRate(nil), s.snapshot...)
}

// FindRate implements portssvc.RateStoreSvc.
func (s *RateStore) FindRate(rates []domain.ConversionRate, from, to domain.CurrencyCode) (decimal.Decimal, bool) {
	return FindRate(rates, from, to)
}

// RefreshedAt reports when the snapshot was last replaced. Zero if never.
func (s *RateStore) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// Warm loads the persistent cache into memory. Failures leave the defaults in place.
func (s *RateStore) Warm(ctx context.Context) {
	if s.cache == nil {
		return
	}
	rates, err := s.cache.Load(ctx)
	if err != nil {
		s.LogWarn(ctx, "Failed to load cached conversion rates, using defaults", slog.String("error", err.Error()))
		return
	}
	if len(rates) == 0 {
		s.LogDebug(ctx, "Conversion rate cache is empty")
		return
	}
	s.replace(rates, false)
	s.LogInfo(ctx, "Conversion rates loaded from cache", slog.Int("count", len(rates)))
}

// Refresh fetches every known rate from the source. A non-empty result replaces the
// snapshot and is written to the persistent cache on a best-effort basis.
func (s *RateStore) Refresh(ctx context.Context) ([]domain.ConversionRate, error) {
	if s.source == nil {
		return nil, fmt.Errorf("rate store has no rate source")
	}
	rates, err := s.source.ListConversionRates(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversion rates: %w", err)
	}
	rates = normalizeRates(rates)
	if len(rates) == 0 {
		return rates, nil
	}
	s.replace(rates, true)
	if s.cache != nil {
		if err := s.cache.Store(ctx, rates); err != nil {
			s.LogWarn(ctx, "Failed to persist conversion rates to cache", slog.String("error", err.Error()))
		}
	}
	return rates, nil
}

// LiveRates returns freshly fetched rates, or nil when the source is unavailable so the
// caller falls through to the cached tier. A source read younger than the configured
// max age is reused.
func (s *RateStore) LiveRates(ctx context.Context) []domain.ConversionRate {
	if s.source == nil {
		return nil
	}
	if rates, ok := s.recentSourceRates(); ok {
		return rates
	}
	rates, err := s.Refresh(ctx)
	if err != nil {
		s.LogWarn(ctx, "Live conversion rates unavailable, falling back to cached rates", slog.String("error", err.Error()))
		return nil
	}
	return rates
}

// StartAutoRefresh refreshes on every tick until ctx is done.
func (s *RateStore) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.source == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rates, err := s.Refresh(ctx)
				if err != nil {
					s.LogError(ctx, err, "Scheduled conversion rate refresh failed")
					continue
				}
				s.LogDebug(ctx, "Scheduled conversion rate refresh done", slog.Int("count", len(rates)))
			}
		}
	}()
}

func (s *RateStore) recentSourceRates() ([]domain.ConversionRate, bool) {
	if s.liveMaxAge <= 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fetchedAt.IsZero() || len(s.snapshot) == 0 || time.Since(s.fetchedAt) >= s.liveMaxAge {
		return nil, false
	}
	return append([]domain.ConversionRate(nil), s.snapshot...), true
}

func (s *RateStore) replace(rates []domain.ConversionRate, fromSource bool) {
	s.mu.Lock()
	s.snapshot = append([]domain.ConversionRate(nil), rates...)
	s.refreshedAt = time.Now()
	if fromSource {
		s.fetchedAt = s.refreshedAt
	}
	s.mu.Unlock()
}

func normalizeRates(rates []domain.ConversionRate) []domain.ConversionRate {
	out := make([]domain.ConversionRate, len(rates))
	for i, r := range rates {
		r.FromCurrency = domain.NormalizeCurrencyCode(string(r.FromCurrency))
		r.ToCurrency = domain.NormalizeCurrencyCode(string(r.ToCurrency))
		out[i] = r
	}
	return out
}
