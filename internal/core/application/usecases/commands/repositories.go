// Package commands contains the fulfillment operations that modify state.
// Every handler follows the same shape: validate the command, check structural
// preconditions (hard errors), check business rules (structured results), then
// write the projections one by one and notify the parties.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces for the ledger. The projections are never written
// inside a shared transaction, only the entry log and the cached accounts are.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LedgerRepoFactory provides access to the entry log within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// AccountRepoFactory provides access to the cached accounts within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// LedgerUoW appends entries and refreshes the affected accounts atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.LedgerRepository().Append(ctx, entries...)
	//   err = uow.AccountRepository().Save(ctx, account)
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		LedgerRepoFactory
		AccountRepoFactory
	}

	// LedgerUoWFactory creates a fresh LedgerUoW per operation.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)

// Stores groups the projection repositories. Each one is an independent
// store: a write to one is never rolled back because another failed.
type Stores struct {
	Distributors      ports.DistributorRepository
	DistributorOrders ports.DistributorOrderRepository
	ClientOrders      ports.ClientOrderRepository
	Couriers          ports.CourierRepository
}
