package domain

import (
	"github.com/shopspring/decimal"
)

// BalanceBreakdown is a merchant's holdings in one currency.
// TotalBalance == AvailableBalance + PendingBalance is expected to hold at the source.
type BalanceBreakdown struct {
	CurrencyCode     CurrencyCode    `json:"currencyCode"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	PendingBalance   decimal.Decimal `json:"pendingBalance"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
}

// BalanceLine is one display row of a balance overview.
type BalanceLine struct {
	BalanceBreakdown
	IsDefault bool `json:"isDefault"`
	// ConvertedEquivalent is the available balance expressed in the default currency.
	// Nil for the default currency itself.
	ConvertedEquivalent *decimal.Decimal `json:"convertedEquivalent,omitempty"`
	// ConversionTier is the rate tier behind ConvertedEquivalent. TierIdentity means
	// no rate was found, ConvertedEquivalent is nil and the line is left out of the total.
	ConversionTier     RateTier `json:"conversionTier,omitempty"`
	FormattedAvailable string   `json:"formattedAvailable"`
}

// BalanceOverview is the display-ready multi-currency view of a merchant.
type BalanceOverview struct {
	MerchantID              string          `json:"merchantID"`
	DefaultCurrency         CurrencyCode    `json:"defaultCurrency"`
	Lines                   []BalanceLine   `json:"lines"`
	TotalAvailableInDefault decimal.Decimal `json:"totalAvailableInDefault"`
	// TotalIsPartial is set when a currency could not be converted into the default.
	TotalIsPartial bool `json:"totalIsPartial"`
}
