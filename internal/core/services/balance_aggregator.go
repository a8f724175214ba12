package services

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// SortedBalances orders balances by displayOrder; currencies missing from displayOrder
// follow in lexicographic order. The input slice is not modified and the sort is stable.
func SortedBalances(balances []domain.BalanceBreakdown, displayOrder []domain.CurrencyCode) []domain.BalanceBreakdown {
	rank := make(map[domain.CurrencyCode]int, len(displayOrder))
	for i, code := range displayOrder {
		code = domain.NormalizeCurrencyCode(string(code))
		if _, seen := rank[code]; !seen {
			rank[code] = i
		}
	}

	sorted := append([]domain.BalanceBreakdown{}, balances...)
	slices.SortStableFunc(sorted, func(a, b domain.BalanceBreakdown) int {
		ca := domain.NormalizeCurrencyCode(string(a.CurrencyCode))
		cb := domain.NormalizeCurrencyCode(string(b.CurrencyCode))
		ra, okA := rank[ca]
		rb, okB := rank[cb]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(string(ca), string(cb))
		}
	})
	return sorted
}

// BalanceAggregator combines per-currency balances with the conversion engine.
type BalanceAggregator struct {
	converter portssvc.ConverterSvc
}

// NewBalanceAggregator creates a new BalanceAggregator.
func NewBalanceAggregator(converter portssvc.ConverterSvc) *BalanceAggregator {
	return &BalanceAggregator{converter: converter}
}

// SortedBalances is the method form of SortedBalances.
func (a *BalanceAggregator) SortedBalances(balances []domain.BalanceBreakdown, displayOrder []domain.CurrencyCode) []domain.BalanceBreakdown {
	return SortedBalances(balances, displayOrder)
}

// ConvertedEquivalent expresses the available balance in target, for "≈ X" display.
func (a *BalanceAggregator) ConvertedEquivalent(balance domain.BalanceBreakdown, target domain.CurrencyCode, liveRates []domain.ConversionRate) decimal.Decimal {
	return a.converter.Convert(balance.AvailableBalance, balance.CurrencyCode, target, liveRates)
}

// EquivalentConversion is ConvertedEquivalent with the tier that produced it.
func (a *BalanceAggregator) EquivalentConversion(ctx context.Context, balance domain.BalanceBreakdown, target domain.CurrencyCode, liveRates []domain.ConversionRate) domain.Conversion {
	return a.converter.ConvertWithDetailContext(ctx, balance.AvailableBalance, balance.CurrencyCode, target, liveRates)
}
