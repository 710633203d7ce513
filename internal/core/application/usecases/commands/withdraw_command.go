package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrWithdrawCommandIsNotConstructed = errors.New(
	"WithdrawCommand must be created via NewWithdrawCommand constructor",
)

// WithdrawCommand pays out part of an actor's balance.
type WithdrawCommand struct {
	actor  ledger.Actor
	amount int64

	guard guard.ConstructorGuard
}

func NewWithdrawCommand(actor ledger.Actor, amount int64) (WithdrawCommand, error) {
	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	if err := errors.Join(actor.Validate(), amountErr); err != nil {
		return WithdrawCommand{}, err
	}
	return WithdrawCommand{actor: actor, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (c WithdrawCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawCommandIsNotConstructed)
}

func (c WithdrawCommand) Actor() ledger.Actor { return c.actor }
func (c WithdrawCommand) Amount() int64       { return c.amount }
