package services

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
)

// WithdrawalSvc submits and looks up merchant withdrawals.
type WithdrawalSvc interface {
	// RequestWithdrawal never returns an error; failures are reported in the result.
	RequestWithdrawal(ctx context.Context, req domain.WithdrawalRequest) domain.WithdrawalResult

	// GetWithdrawal retrieves a withdrawal owned by the merchant.
	GetWithdrawal(ctx context.Context, merchantID, withdrawalID string) (*domain.Withdrawal, error)
}
