package mapping

import (
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/models"
)

// ToModelWithdrawal builds a withdrawal row from a ledger submission.
func ToModelWithdrawal(s domain.WithdrawalSubmission, withdrawalID string) models.Withdrawal {
	m := models.Withdrawal{
		WithdrawalID:         withdrawalID,
		MerchantID:           s.MerchantID,
		Amount:               s.Amount,
		CurrencyCode:         string(s.CurrencyCode),
		RequestedAmount:      s.RequestedAmount,
		RequestedCurrency:    string(s.RequestedCurrency),
		DestinationAccountID: s.DestinationAccountID,
		Status:               string(domain.WithdrawalPending),
	}
	if s.IdempotencyKey != "" {
		key := s.IdempotencyKey
		m.IdempotencyKey = &key
	}
	return m
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	d := domain.Withdrawal{
		WithdrawalID:         m.WithdrawalID,
		MerchantID:           m.MerchantID,
		Amount:               m.Amount,
		CurrencyCode:         domain.NormalizeCurrencyCode(m.CurrencyCode),
		RequestedAmount:      m.RequestedAmount,
		RequestedCurrency:    domain.NormalizeCurrencyCode(m.RequestedCurrency),
		DestinationAccountID: m.DestinationAccountID,
		Status:               domain.WithdrawalStatus(m.Status),
		CreatedAt:            m.CreatedAt,
	}
	if m.IdempotencyKey != nil {
		d.IdempotencyKey = *m.IdempotencyKey
	}
	return d
}

// SameWithdrawalPayload reports whether a stored withdrawal matches a resubmission.
// Only what the client sent is compared; the ledger amount depends on the rate at
// the time of the first submission.
func SameWithdrawalPayload(existing domain.Withdrawal, s domain.WithdrawalSubmission) bool {
	return existing.RequestedAmount.Equal(s.RequestedAmount) &&
		existing.RequestedCurrency == domain.NormalizeCurrencyCode(string(s.RequestedCurrency)) &&
		existing.DestinationAccountID == s.DestinationAccountID
}
