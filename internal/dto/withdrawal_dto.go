package dto

import (
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest is the body of a withdrawal request.
type CreateWithdrawalRequest struct {
	Amount               decimal.Decimal     `json:"amount" binding:"required"`
	CurrencyCode         domain.CurrencyCode `json:"currencyCode" binding:"required,currency_code"`
	DestinationAccountID string              `json:"destinationAccountID" binding:"required"`
}

// ToWithdrawalRequest builds the domain request for a merchant.
func (r CreateWithdrawalRequest) ToWithdrawalRequest(merchantID, idempotencyKey string) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		MerchantID:           merchantID,
		Amount:               r.Amount,
		CurrencyCode:         domain.NormalizeCurrencyCode(string(r.CurrencyCode)),
		DestinationAccountID: r.DestinationAccountID,
		IdempotencyKey:       idempotencyKey,
	}
}

// WithdrawalResultResponse is the outcome of a withdrawal request.
type WithdrawalResultResponse struct {
	Success        bool                `json:"success"`
	Message        string              `json:"message,omitempty"`
	WithdrawalID   string              `json:"withdrawalID,omitempty"`
	LedgerAmount   *decimal.Decimal    `json:"ledgerAmount,omitempty"`
	LedgerCurrency domain.CurrencyCode `json:"ledgerCurrency,omitempty"`
}

// ToWithdrawalResultResponse converts a domain.WithdrawalResult to its response DTO.
func ToWithdrawalResultResponse(r domain.WithdrawalResult) WithdrawalResultResponse {
	resp := WithdrawalResultResponse{
		Success:        r.Success,
		Message:        r.Message,
		WithdrawalID:   r.WithdrawalID,
		LedgerCurrency: r.LedgerCurrency,
	}
	if r.Success {
		amount := r.LedgerAmount
		resp.LedgerAmount = &amount
	}
	return resp
}

// WithdrawalResponse describes a recorded withdrawal.
type WithdrawalResponse struct {
	WithdrawalID         string                  `json:"withdrawalID"`
	MerchantID           string                  `json:"merchantID"`
	Amount               decimal.Decimal         `json:"amount"`
	CurrencyCode         domain.CurrencyCode     `json:"currencyCode"`
	RequestedAmount      decimal.Decimal         `json:"requestedAmount"`
	RequestedCurrency    domain.CurrencyCode     `json:"requestedCurrency"`
	DestinationAccountID string                  `json:"destinationAccountID"`
	Status               domain.WithdrawalStatus `json:"status"`
	CreatedAt            time.Time               `json:"createdAt"`
}

// ToWithdrawalResponse converts a domain.Withdrawal to its response DTO.
func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:         w.WithdrawalID,
		MerchantID:           w.MerchantID,
		Amount:               w.Amount,
		CurrencyCode:         w.CurrencyCode,
		RequestedAmount:      w.RequestedAmount,
		RequestedCurrency:    w.RequestedCurrency,
		DestinationAccountID: w.DestinationAccountID,
		Status:               w.Status,
		CreatedAt:            w.CreatedAt,
	}
}
