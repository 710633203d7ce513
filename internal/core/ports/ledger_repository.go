package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/ledger"
)

// LedgerRepository is the append-only entry log.
type LedgerRepository interface {
	// Lock serializes writers of one actor until the surrounding transaction ends.
	Lock(ctx context.Context, actor ledger.Actor) error

	// Append stores entries. An entry whose id already exists is skipped, which
	// makes replayed fulfillment steps harmless.
	Append(ctx context.Context, entries ...*ledger.Entry) error

	// ListByActor returns the actor's full history, oldest first.
	ListByActor(ctx context.Context, actor ledger.Actor) ([]*ledger.Entry, error)

	// ListActors returns every actor with at least one entry.
	ListActors(ctx context.Context) ([]ledger.Actor, error)
}

// AccountRepository stores the cached balance of each actor.
type AccountRepository interface {
	// Get returns errs.ObjectNotFoundError when no cache row exists yet.
	Get(ctx context.Context, actor ledger.Actor) (*ledger.Account, error)

	// Save inserts or overwrites the cached row.
	Save(ctx context.Context, account *ledger.Account) error
}
