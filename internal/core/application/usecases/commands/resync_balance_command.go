package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/guard"
)

var ErrResyncBalanceCommandIsNotConstructed = errors.New(
	"ResyncBalanceCommand must be created via NewResyncBalanceCommand constructor",
)

// ResyncBalanceCommand rebuilds one actor's cached account from its entry log.
type ResyncBalanceCommand struct {
	actor ledger.Actor

	guard guard.ConstructorGuard
}

func NewResyncBalanceCommand(actor ledger.Actor) (ResyncBalanceCommand, error) {
	if err := actor.Validate(); err != nil {
		return ResyncBalanceCommand{}, err
	}
	return ResyncBalanceCommand{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ResyncBalanceCommand) Validate() error {
	return c.guard.Validate(ErrResyncBalanceCommandIsNotConstructed)
}

func (c ResyncBalanceCommand) Actor() ledger.Actor { return c.actor }
