package services

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
)

// BalanceSvc builds display-ready balance views for merchants.
type BalanceSvc interface {
	// GetBalanceOverview returns the merchant's balances ordered by displayOrder with
	// converted equivalents in defaultCurrency. Empty arguments fall back to configured defaults.
	GetBalanceOverview(ctx context.Context, merchantID string, defaultCurrency domain.CurrencyCode, displayOrder []domain.CurrencyCode) (*domain.BalanceOverview, error)
}
