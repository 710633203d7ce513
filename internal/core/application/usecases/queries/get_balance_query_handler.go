package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetBalanceQueryHandler serves the cached account. An actor without a cache
// row is answered from a fold of the log; nothing is written.
type GetBalanceQueryHandler struct {
	accounts ports.AccountRepository
	entries  ports.LedgerRepository
}

func NewGetBalanceQueryHandler(accounts ports.AccountRepository, entries ports.LedgerRepository) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{accounts: accounts, entries: entries}
}

func (h GetBalanceQueryHandler) Handle(ctx context.Context, query GetBalanceQuery) (GetBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	account, err := h.accounts.Get(ctx, query.Actor())
	cached := err == nil
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return GetBalanceQueryResponse{}, err
	}

	if !cached {
		history, err := h.entries.ListByActor(ctx, query.Actor())
		if err != nil {
			return GetBalanceQueryResponse{}, err
		}
		if account, err = ledger.NewAccountFromLog(query.Actor(), history, time.Now().UTC()); err != nil {
			return GetBalanceQueryResponse{}, err
		}
	}

	return GetBalanceQueryResponse{
		Actor:        account.Actor(),
		Balance:      account.Balance(),
		Revenue:      account.Revenue(),
		Entries:      account.EntryCount(),
		Cached:       cached,
		ReconciledAt: account.ReconciledAt(),
	}, nil
}
