package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	"github.com/SscSPs/merchant_payments/internal/models"
	"github.com/SscSPs/merchant_payments/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBalanceRepository implements portsrepo.BalanceReader using pgxpool.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(db *pgxpool.Pool) portsrepo.BalanceReader {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ListBalanceBreakdowns returns the merchant's balances, one per currency.
// A known merchant without balances gets an empty list; an unknown one gets ErrNotFound.
func (r *PgxBalanceRepository) ListBalanceBreakdowns(ctx context.Context, merchantID string) ([]domain.BalanceBreakdown, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT merchant_id, currency_code, available_balance, pending_balance,
			available_balance + pending_balance AS total_balance
		FROM merchant_balances
		WHERE merchant_id = $1
		ORDER BY currency_code;`, merchantID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list balances", err)
	}
	defer rows.Close()

	balances := []domain.BalanceBreakdown{}
	for rows.Next() {
		var m models.MerchantBalance
		if err := rows.Scan(&m.MerchantID, &m.CurrencyCode, &m.AvailableBalance, &m.PendingBalance, &m.TotalBalance); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan balance", err)
		}
		balances = append(balances, mapping.ToDomainBalanceBreakdown(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate balances", err)
	}

	if len(balances) == 0 {
		if _, err := r.FindLedgerCurrency(ctx, merchantID); err != nil {
			return nil, err
		}
	}
	return balances, nil
}

// FindLedgerCurrency returns the currency the merchant's ledger is kept in.
func (r *PgxBalanceRepository) FindLedgerCurrency(ctx context.Context, merchantID string) (domain.CurrencyCode, error) {
	var code string
	err := r.Pool.QueryRow(ctx, `SELECT ledger_currency FROM merchants WHERE merchant_id = $1`, merchantID).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("merchant not found")
		}
		return "", apperrors.NewAppError(http.StatusInternalServerError, "failed to find merchant", err)
	}
	return domain.NormalizeCurrencyCode(code), nil
}
