package dto

import (
	"strings"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceQuery binds the query string of a balance overview request.
type BalanceQuery struct {
	// Default is the currency to show converted equivalents in.
	Default string `form:"default" binding:"omitempty,len=3"`
	// Order is a comma separated preferred display order, e.g. "XOF,USD".
	Order string `form:"order"`
}

// DisplayOrder parses Order into currency codes, dropping blanks.
func (q BalanceQuery) DisplayOrder() []domain.CurrencyCode {
	if strings.TrimSpace(q.Order) == "" {
		return nil
	}
	parts := strings.Split(q.Order, ",")
	codes := make([]domain.CurrencyCode, 0, len(parts))
	for _, p := range parts {
		code := domain.NormalizeCurrencyCode(p)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// BalanceLineResponse is one currency of a balance overview.
type BalanceLineResponse struct {
	CurrencyCode        domain.CurrencyCode `json:"currencyCode"`
	AvailableBalance    decimal.Decimal     `json:"availableBalance"`
	PendingBalance      decimal.Decimal     `json:"pendingBalance"`
	TotalBalance        decimal.Decimal     `json:"totalBalance"`
	IsDefault           bool                `json:"isDefault"`
	ConvertedEquivalent *decimal.Decimal    `json:"convertedEquivalent,omitempty"`
	ConversionTier      domain.RateTier     `json:"conversionTier,omitempty"`
	FormattedAvailable  string              `json:"formattedAvailable"`
}

// BalanceOverviewResponse is the balance view of a merchant.
type BalanceOverviewResponse struct {
	MerchantID              string                `json:"merchantID"`
	DefaultCurrency         domain.CurrencyCode   `json:"defaultCurrency,omitempty"`
	Balances                []BalanceLineResponse `json:"balances"`
	TotalAvailableInDefault decimal.Decimal       `json:"totalAvailableInDefault"`
	TotalIsPartial          bool                  `json:"totalIsPartial"`
}

// ToBalanceOverviewResponse converts a domain.BalanceOverview to its response DTO.
func ToBalanceOverviewResponse(o *domain.BalanceOverview) BalanceOverviewResponse {
	lines := make([]BalanceLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = BalanceLineResponse{
			CurrencyCode:        l.CurrencyCode,
			AvailableBalance:    l.AvailableBalance,
			PendingBalance:      l.PendingBalance,
			TotalBalance:        l.TotalBalance,
			IsDefault:           l.IsDefault,
			ConvertedEquivalent: l.ConvertedEquivalent,
			ConversionTier:      l.ConversionTier,
			FormattedAvailable:  l.FormattedAvailable,
		}
	}
	return BalanceOverviewResponse{
		MerchantID:              o.MerchantID,
		DefaultCurrency:         o.DefaultCurrency,
		Balances:                lines,
		TotalAvailableInDefault: o.TotalAvailableInDefault,
		TotalIsPartial:          o.TotalIsPartial,
	}
}
