package repositories

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
)

// WithdrawalLedger is the external ledger that debits balances atomically.
type WithdrawalLedger interface {
	// SubmitWithdrawal debits the merchant and records the withdrawal in one step.
	// It returns apperrors.ErrInsufficientFunds, ErrInvalidAccount or ErrIdempotencyConflict
	// for business rejections.
	SubmitWithdrawal(ctx context.Context, submission domain.WithdrawalSubmission) (*domain.Withdrawal, error)

	// FindWithdrawal retrieves a withdrawal that belongs to the merchant.
	FindWithdrawal(ctx context.Context, merchantID, withdrawalID string) (*domain.Withdrawal, error)
}
