package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	"github.com/SscSPs/merchant_payments/internal/models"
	"github.com/SscSPs/merchant_payments/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const withdrawalColumns = `withdrawal_id, merchant_id, amount, currency_code, requested_amount,
	requested_currency, destination_account_id, status, idempotency_key, created_at`

// PgxWithdrawalRepository is the Postgres-backed withdrawal ledger.
type PgxWithdrawalRepository struct {
	BaseRepository
}

func newPgxWithdrawalRepository(db *pgxpool.Pool) portsrepo.WithdrawalLedgerWithTx {
	return &PgxWithdrawalRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SubmitWithdrawal debits the available balance and records a PENDING withdrawal in one
// transaction. A repeated idempotency key with the same payload returns the original record.
func (r *PgxWithdrawalRepository) SubmitWithdrawal(ctx context.Context, submission domain.WithdrawalSubmission) (*domain.Withdrawal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	available, err := r.lockBalance(ctx, tx, submission)
	if err != nil {
		return nil, err
	}

	if submission.IdempotencyKey != "" {
		existing, err := findWithdrawalByIdempotency(ctx, tx, submission.MerchantID, submission.IdempotencyKey)
		if err == nil {
			return replayWithdrawal(existing, submission)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to check idempotency key", err)
		}
	}

	if err := checkDestinationAccount(ctx, tx, submission); err != nil {
		return nil, err
	}

	if available.LessThan(submission.Amount) {
		return nil, fmt.Errorf("%w: available %s, requested %s", apperrors.ErrInsufficientFunds, available, submission.Amount)
	}

	row := mapping.ToModelWithdrawal(submission, uuid.NewString())
	created, err := insertWithdrawal(ctx, tx, row)
	if err != nil {
		if isUniqueViolation(err) && submission.IdempotencyKey != "" {
			// A concurrent request with the same key won the insert.
			_ = r.Rollback(ctx, tx)
			existing, gerr := findWithdrawalByIdempotency(ctx, r.Pool, submission.MerchantID, submission.IdempotencyKey)
			if gerr == nil {
				return replayWithdrawal(existing, submission)
			}
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to insert withdrawal", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE merchant_balances
		SET available_balance = available_balance - $1,
			pending_balance = pending_balance + $1,
			updated_at = NOW()
		WHERE merchant_id = $2 AND currency_code = $3`,
		submission.Amount, submission.MerchantID, string(submission.CurrencyCode))
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to debit balance", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	withdrawal := mapping.ToDomainWithdrawal(created)
	return &withdrawal, nil
}

// FindWithdrawal retrieves a withdrawal that belongs to the merchant.
func (r *PgxWithdrawalRepository) FindWithdrawal(ctx context.Context, merchantID, withdrawalID string) (*domain.Withdrawal, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE merchant_id = $1 AND withdrawal_id = $2`, merchantID, withdrawalID)
	m, err := scanWithdrawal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("withdrawal not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find withdrawal", err)
	}
	withdrawal := mapping.ToDomainWithdrawal(m)
	return &withdrawal, nil
}

// lockBalance locks the merchant's balance row in the ledger currency and returns the available amount.
func (r *PgxWithdrawalRepository) lockBalance(ctx context.Context, tx pgx.Tx, submission domain.WithdrawalSubmission) (available decimal.Decimal, err error) {
	err = tx.QueryRow(ctx, `
		SELECT available_balance FROM merchant_balances
		WHERE merchant_id = $1 AND currency_code = $2
		FOR UPDATE`, submission.MerchantID, string(submission.CurrencyCode)).Scan(&available)
	if err == nil {
		return available, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return available, apperrors.NewAppError(http.StatusInternalServerError, "failed to lock balance", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM merchants WHERE merchant_id = $1)`, submission.MerchantID).Scan(&exists); err != nil {
		return available, apperrors.NewAppError(http.StatusInternalServerError, "failed to find merchant", err)
	}
	if !exists {
		return available, apperrors.NewNotFoundError("merchant not found")
	}
	return available, fmt.Errorf("%w: no %s balance", apperrors.ErrInsufficientFunds, submission.CurrencyCode)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func checkDestinationAccount(ctx context.Context, q queryRower, submission domain.WithdrawalSubmission) error {
	var active bool
	err := q.QueryRow(ctx, `
		SELECT is_active FROM bank_accounts
		WHERE bank_account_id = $1 AND merchant_id = $2`,
		submission.DestinationAccountID, submission.MerchantID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidAccount, submission.DestinationAccountID)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to check destination account", err)
	}
	if !active {
		return fmt.Errorf("%w: %s is inactive", apperrors.ErrInvalidAccount, submission.DestinationAccountID)
	}
	return nil
}

func insertWithdrawal(ctx context.Context, tx pgx.Tx, m models.Withdrawal) (models.Withdrawal, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO withdrawals (
			withdrawal_id, merchant_id, amount, currency_code, requested_amount,
			requested_currency, destination_account_id, status, idempotency_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+withdrawalColumns,
		m.WithdrawalID, m.MerchantID, m.Amount, m.CurrencyCode, m.RequestedAmount,
		m.RequestedCurrency, m.DestinationAccountID, m.Status, m.IdempotencyKey)
	return scanWithdrawal(row)
}

func findWithdrawalByIdempotency(ctx context.Context, q queryRower, merchantID, key string) (models.Withdrawal, error) {
	row := q.QueryRow(ctx, `SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE merchant_id = $1 AND idempotency_key = $2`, merchantID, key)
	return scanWithdrawal(row)
}

func scanWithdrawal(row pgx.Row) (models.Withdrawal, error) {
	var m models.Withdrawal
	err := row.Scan(&m.WithdrawalID, &m.MerchantID, &m.Amount, &m.CurrencyCode, &m.RequestedAmount,
		&m.RequestedCurrency, &m.DestinationAccountID, &m.Status, &m.IdempotencyKey, &m.CreatedAt)
	return m, err
}

func replayWithdrawal(existing models.Withdrawal, submission domain.WithdrawalSubmission) (*domain.Withdrawal, error) {
	withdrawal := mapping.ToDomainWithdrawal(existing)
	if !mapping.SameWithdrawalPayload(withdrawal, submission) {
		return nil, apperrors.ErrIdempotencyConflict
	}
	return &withdrawal, nil
}
