package repositories

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
)

// BalanceReader defines read operations for merchant balances
type BalanceReader interface {
	// ListBalanceBreakdowns returns one entry per currency held by the merchant.
	ListBalanceBreakdowns(ctx context.Context, merchantID string) ([]domain.BalanceBreakdown, error)

	// FindLedgerCurrency returns the currency the merchant's ledger is kept in.
	FindLedgerCurrency(ctx context.Context, merchantID string) (domain.CurrencyCode, error)
}
