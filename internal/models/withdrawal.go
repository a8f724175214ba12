package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal is a row of the withdrawals table.
type Withdrawal struct {
	WithdrawalID         string
	MerchantID           string
	Amount               decimal.Decimal
	CurrencyCode         string
	RequestedAmount      decimal.Decimal
	RequestedCurrency    string
	DestinationAccountID string
	Status               string
	IdempotencyKey       *string // NULL when the caller sent no key
	CreatedAt            time.Time
}
