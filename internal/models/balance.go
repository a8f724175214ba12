package models

import "github.com/shopspring/decimal"

// MerchantBalance is a row of the merchant_balances table.
// TotalBalance is computed by the query, not stored.
type MerchantBalance struct {
	MerchantID       string
	CurrencyCode     string
	AvailableBalance decimal.Decimal
	PendingBalance   decimal.Decimal
	TotalBalance     decimal.Decimal
}
