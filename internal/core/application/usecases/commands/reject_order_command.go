package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand is the distributor refusing an order. The reason is optional.
type RejectOrderCommand struct {
	orderID       kernel.UUID
	distributorID kernel.UUID
	reason        string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID, distributorID kernel.UUID, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("order id", orderID),
		requireID("distributor id", distributorID),
	); err != nil {
		return RejectOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.distributorID = distributorID

	return cmd, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c RejectOrderCommand) DistributorID() kernel.UUID { return c.distributorID }
func (c RejectOrderCommand) Reason() string             { return c.reason }
