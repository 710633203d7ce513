package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"
)

// LedgerWriter appends entries and rebuilds the cached account of every actor
// they touch, in a single transaction. Balances are never incremented: each
// write folds the actor's whole history again.
type LedgerWriter struct {
	uowFactory LedgerUoWFactory
}

func NewLedgerWriter(uowFactory LedgerUoWFactory) LedgerWriter {
	return LedgerWriter{uowFactory: uowFactory}
}

// Record appends the entries (entries already stored are skipped by id) and
// returns the refreshed accounts in actor order of first appearance.
func (w LedgerWriter) Record(ctx context.Context, at time.Time, entries ...*ledger.Entry) ([]*ledger.Account, error) {
	actors := make([]ledger.Actor, 0, len(entries))
	seen := make(map[ledger.Actor]struct{}, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[e.Actor()]; ok {
			continue
		}
		seen[e.Actor()] = struct{}{}
		actors = append(actors, e.Actor())
	}

	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()
	accountRepo := uow.AccountRepository()

	for _, actor := range actors {
		if err := ledgerRepo.Lock(ctx, actor); err != nil {
			return nil, err
		}
	}

	if err := ledgerRepo.Append(ctx, entries...); err != nil {
		return nil, err
	}

	accounts := make([]*ledger.Account, 0, len(actors))
	for _, actor := range actors {
		history, err := ledgerRepo.ListByActor(ctx, actor)
		if err != nil {
			return nil, err
		}

		account, err := ledger.NewAccountFromLog(actor, history, at)
		if err != nil {
			return nil, err
		}

		if err = accountRepo.Save(ctx, account); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Withdraw debits amount after checking it against the log-derived balance.
func (w LedgerWriter) Withdraw(ctx context.Context, actor ledger.Actor, amount int64, at time.Time) (*ledger.Entry, *ledger.Account, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()
	if err := ledgerRepo.Lock(ctx, actor); err != nil {
		return nil, nil, err
	}

	history, err := ledgerRepo.ListByActor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}

	entry, err := ledger.Withdrawal(actor, amount, history, at)
	if err != nil {
		return nil, nil, err
	}

	if err = ledgerRepo.Append(ctx, entry); err != nil {
		return nil, nil, err
	}

	account, err := ledger.NewAccountFromLog(actor, append(history, entry), at)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.AccountRepository().Save(ctx, account); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return entry, account, nil
}

// ResyncOutcome describes one cache rebuild.
type ResyncOutcome struct {
	Account *ledger.Account
	// Previous is the cached row before the rebuild, nil when none existed.
	Previous *ledger.Account
	// Repaired is set when a cached row existed and disagreed with the log.
	Repaired bool
}

// Resync recomputes the actor's cached account from the log and overwrites it.
func (w LedgerWriter) Resync(ctx context.Context, actor ledger.Actor, at time.Time) (ResyncOutcome, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ResyncOutcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()
	accountRepo := uow.AccountRepository()

	if err := ledgerRepo.Lock(ctx, actor); err != nil {
		return ResyncOutcome{}, err
	}

	history, err := ledgerRepo.ListByActor(ctx, actor)
	if err != nil {
		return ResyncOutcome{}, err
	}

	previous, err := accountRepo.Get(ctx, actor)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return ResyncOutcome{}, err
	}

	account, err := ledger.NewAccountFromLog(actor, history, at)
	if err != nil {
		return ResyncOutcome{}, err
	}

	if err = accountRepo.Save(ctx, account); err != nil {
		return ResyncOutcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ResyncOutcome{}, fmt.Errorf("commit resync of %s: %w", actor, err)
	}

	return ResyncOutcome{
		Account:  account,
		Previous: previous,
		Repaired: previous != nil && !previous.Matches(history),
	}, nil
}
