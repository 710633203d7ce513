package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBalanceQueryIsNotConstructed = errors.New(
	"GetBalanceQuery must be created via NewGetBalanceQuery constructor",
)

type GetBalanceQuery struct {
	actor ledger.Actor

	guard guard.ConstructorGuard
}

func NewGetBalanceQuery(actor ledger.Actor) (GetBalanceQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetBalanceQuery{}, err
	}
	return GetBalanceQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

func (q GetBalanceQuery) Actor() ledger.Actor { return q.actor }

type GetBalanceQueryResponse struct {
	Actor   ledger.Actor
	Balance int64
	Revenue int64
	Entries int
	// Cached is false when no cache row existed and the log was folded instead.
	Cached       bool
	ReconciledAt time.Time
}
