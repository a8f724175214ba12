package mapping

import (
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/models"
)

// ToDomainBalanceBreakdown converts a merchant balance row to a domain BalanceBreakdown
func ToDomainBalanceBreakdown(m models.MerchantBalance) domain.BalanceBreakdown {
	return domain.BalanceBreakdown{
		CurrencyCode:     domain.NormalizeCurrencyCode(m.CurrencyCode),
		AvailableBalance: m.AvailableBalance,
		PendingBalance:   m.PendingBalance,
		TotalBalance:     m.TotalBalance,
	}
}
