package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the ledger status of a submitted withdrawal.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "PENDING"
	WithdrawalCompleted WithdrawalStatus = "COMPLETED"
	WithdrawalFailed    WithdrawalStatus = "FAILED"
)

// WithdrawalRequest is the transient caller input. It is never persisted as-is.
type WithdrawalRequest struct {
	MerchantID           string
	Amount               decimal.Decimal
	CurrencyCode         CurrencyCode
	DestinationAccountID string
	IdempotencyKey       string
}

// WithdrawalSubmission is what is sent to the ledger, already in ledger currency.
type WithdrawalSubmission struct {
	MerchantID           string
	Amount               decimal.Decimal
	CurrencyCode         CurrencyCode
	RequestedAmount      decimal.Decimal
	RequestedCurrency    CurrencyCode
	DestinationAccountID string
	IdempotencyKey       string
}

// Withdrawal is a withdrawal recorded by the ledger.
type Withdrawal struct {
	WithdrawalID         string           `json:"withdrawalID"`
	MerchantID           string           `json:"merchantID"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         CurrencyCode     `json:"currencyCode"`
	RequestedAmount      decimal.Decimal  `json:"requestedAmount"`
	RequestedCurrency    CurrencyCode     `json:"requestedCurrency"`
	DestinationAccountID string           `json:"destinationAccountID"`
	Status               WithdrawalStatus `json:"status"`
	IdempotencyKey       string           `json:"idempotencyKey,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// WithdrawalResult is the structured outcome handed back to callers.
// Failures are reported here, never as errors.
type WithdrawalResult struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message,omitempty"`
	WithdrawalID   string          `json:"withdrawalID,omitempty"`
	LedgerAmount   decimal.Decimal `json:"ledgerAmount"`
	LedgerCurrency CurrencyCode    `json:"ledgerCurrency,omitempty"`
}
