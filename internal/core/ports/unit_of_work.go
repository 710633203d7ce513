package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction over the ledger tables. Projections are written
// outside of it: the three projections never share a transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	// LedgerRepository is bound to the transaction started by Begin.
	LedgerRepository() LedgerRepository

	// AccountRepository is bound to the transaction started by Begin.
	AccountRepository() AccountRepository
}
