package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand is the courier leaving the distributor with the goods.
type StartDeliveryCommand struct {
	courierID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(courierID, orderID kernel.UUID) (StartDeliveryCommand, error) {
	if err := errors.Join(
		requireID("courier id", courierID),
		requireID("order id", orderID),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		courierID: courierID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) CourierID() kernel.UUID { return c.courierID }
func (c StartDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
