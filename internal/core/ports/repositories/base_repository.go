package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction; rolling back a finished tx is not an error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// WithdrawalLedgerWithTx is a ledger that also exposes its transaction handling
type WithdrawalLedgerWithTx interface {
	WithdrawalLedger
	TransactionManager
}
