package pgsql

import (
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. RateCache is left for the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ConversionRateRepo: newPgxConversionRateRepository(dbPool),
		BalanceRepo:        newPgxBalanceRepository(dbPool),
		WithdrawalLedger:   newPgxWithdrawalRepository(dbPool),
	}
}
