package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand is a courier withdrawing from an assignment.
type CancelDeliveryCommand struct {
	courierID kernel.UUID
	orderID   kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(courierID, orderID kernel.UUID, reason string) (CancelDeliveryCommand, error) {
	if err := errors.Join(
		requireID("courier id", courierID),
		requireID("order id", orderID),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return CancelDeliveryCommand{
		courierID: courierID,
		orderID:   orderID,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) CourierID() kernel.UUID { return c.courierID }
func (c CancelDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CancelDeliveryCommand) Reason() string         { return c.reason }
