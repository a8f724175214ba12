package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/shopspring/decimal"
)

// balanceService implements portssvc.BalanceSvc
type balanceService struct {
	BaseService
	balanceRepo  portsrepo.BalanceReader
	rateStore    portssvc.RateStoreSvc
	aggregator   *BalanceAggregator
	precision    *utils.PrecisionTable
	displayOrder []domain.CurrencyCode
}

// BalanceServiceOption is a functional option for configuring the balance service
type BalanceServiceOption func(*balanceService)

// WithDisplayOrder sets the preferred order used when callers pass none.
func WithDisplayOrder(order []domain.CurrencyCode) BalanceServiceOption {
	return func(s *balanceService) {
		s.displayOrder = order
	}
}

// WithBalancePrecision sets the table used for formatted amounts.
func WithBalancePrecision(table *utils.PrecisionTable) BalanceServiceOption {
	return func(s *balanceService) {
		s.precision = table
	}
}

// NewBalanceService creates a new balance service with the provided options
func NewBalanceService(balanceRepo portsrepo.BalanceReader, rateStore portssvc.RateStoreSvc, converter portssvc.ConverterSvc, options ...BalanceServiceOption) portssvc.BalanceSvc {
	svc := &balanceService{
		balanceRepo:  balanceRepo,
		rateStore:    rateStore,
		aggregator:   NewBalanceAggregator(converter),
		precision:    utils.DefaultPrecisionTable(),
		displayOrder: []domain.CurrencyCode{"XOF", "USD"},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// GetBalanceOverview implements portssvc.BalanceSvc.
func (s *balanceService) GetBalanceOverview(ctx context.Context, merchantID string, defaultCurrency domain.CurrencyCode, displayOrder []domain.CurrencyCode) (*domain.BalanceOverview, error) {
	merchantID = strings.TrimSpace(merchantID)
	if merchantID == "" {
		return nil, fmt.Errorf("%w: merchant ID is required", apperrors.ErrValidation)
	}
	defaultCurrency = domain.NormalizeCurrencyCode(string(defaultCurrency))
	if defaultCurrency != "" && !defaultCurrency.IsWellFormed() {
		return nil, fmt.Errorf("%w: default currency '%s' is not a valid currency code", apperrors.ErrValidation, defaultCurrency)
	}
	if len(displayOrder) == 0 {
		displayOrder = s.displayOrder
	}

	balances, err := s.balanceRepo.ListBalanceBreakdowns(ctx, merchantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance breakdown", slog.String("merchant_id", merchantID))
		return nil, fmt.Errorf("failed to retrieve balances: %w", err)
	}

	sorted := s.aggregator.SortedBalances(balances, displayOrder)
	overview := &domain.BalanceOverview{
		MerchantID:              merchantID,
		DefaultCurrency:         defaultCurrency,
		Lines:                   make([]domain.BalanceLine, 0, len(sorted)),
		TotalAvailableInDefault: decimal.Zero,
	}
	if len(sorted) == 0 {
		return overview, nil
	}
	if overview.DefaultCurrency == "" {
		overview.DefaultCurrency = domain.NormalizeCurrencyCode(string(sorted[0].CurrencyCode))
	}

	var liveRates []domain.ConversionRate
	if s.needsConversion(sorted, overview.DefaultCurrency) && s.rateStore != nil {
		liveRates = s.rateStore.LiveRates(ctx)
	}

	for _, b := range sorted {
		line := domain.BalanceLine{
			BalanceBreakdown:   b,
			FormattedAvailable: utils.FormatAmount(b.AvailableBalance, b.CurrencyCode, s.precision),
		}
		if domain.NormalizeCurrencyCode(string(b.CurrencyCode)) == overview.DefaultCurrency {
			line.IsDefault = true
			overview.TotalAvailableInDefault = overview.TotalAvailableInDefault.Add(b.AvailableBalance)
		} else {
			conversion := s.aggregator.EquivalentConversion(ctx, b, overview.DefaultCurrency, liveRates)
			line.ConversionTier = conversion.Tier
			if conversion.Tier == domain.TierIdentity {
				overview.TotalIsPartial = true
				s.LogWarn(ctx, "Balance left out of total, no conversion rate",
					slog.String("merchant_id", merchantID),
					slog.String("from", string(b.CurrencyCode)),
					slog.String("to", string(overview.DefaultCurrency)))
			} else {
				equivalent := conversion.Converted
				line.ConvertedEquivalent = &equivalent
				overview.TotalAvailableInDefault = overview.TotalAvailableInDefault.Add(equivalent)
			}
		}
		overview.Lines = append(overview.Lines, line)
	}

	s.LogDebug(ctx, "Balance overview built",
		slog.String("merchant_id", merchantID),
		slog.String("default_currency", string(overview.DefaultCurrency)),
		slog.Int("currencies", len(overview.Lines)))
	return overview, nil
}

func (s *balanceService) needsConversion(balances []domain.BalanceBreakdown, target domain.CurrencyCode) bool {
	for _, b := range balances {
		if domain.NormalizeCurrencyCode(string(b.CurrencyCode)) != target {
			return true
		}
	}
	return false
}
