package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRate is a stored factor between two currencies.
// amount_in_to = amount_in_from * Rate, and amount_in_from = amount_in_to * InverseRate.
// InverseRate is stored rather than derived so repeated inversion cannot drift.
type ConversionRate struct {
	ID           string          `json:"id"`
	FromCurrency CurrencyCode    `json:"fromCurrency"`
	ToCurrency   CurrencyCode    `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	InverseRate  decimal.Decimal `json:"inverseRate"`
	CreatedAt    time.Time       `json:"createdAt"` // Display/freshness only
}

// RateTier names the fallback level that resolved a conversion.
type RateTier string

const (
	TierIdentity  RateTier = "identity"  // from == to, or no rate anywhere
	TierLive      RateTier = "live"      // caller-supplied fresh rates
	TierCached    RateTier = "cached"    // rate store snapshot or built-in defaults
	TierHardcoded RateTier = "hardcoded" // configured last-resort pair
)

// Conversion is the outcome of a single conversion with the rate that produced it.
type Conversion struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency CurrencyCode    `json:"fromCurrency"`
	ToCurrency   CurrencyCode    `json:"toCurrency"`
	Converted    decimal.Decimal `json:"converted"`
	Rate         decimal.Decimal `json:"rate"`
	Tier         RateTier        `json:"tier"`
}
