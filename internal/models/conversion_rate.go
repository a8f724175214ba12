package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRate is a row of the conversion_rates table.
type ConversionRate struct {
	ConversionRateID string          `json:"conversionRateID"` // Primary Key (UUID)
	FromCurrency     string          `json:"fromCurrency"`
	ToCurrency       string          `json:"toCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	InverseRate      decimal.Decimal `json:"inverseRate"`
	CreatedAt        time.Time       `json:"createdAt"`
}
