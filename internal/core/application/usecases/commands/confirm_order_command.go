package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand is the distributor accepting a new order.
type ConfirmOrderCommand struct {
	distributorID kernel.UUID
	orderID       kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(distributorID, orderID kernel.UUID) (ConfirmOrderCommand, error) {
	if err := errors.Join(
		requireID("distributor id", distributorID),
		requireID("order id", orderID),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		distributorID: distributorID,
		orderID:       orderID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) DistributorID() kernel.UUID { return c.distributorID }
func (c ConfirmOrderCommand) OrderID() kernel.UUID       { return c.orderID }
