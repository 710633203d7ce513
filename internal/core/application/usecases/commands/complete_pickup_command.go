package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePickupCommandIsNotConstructed = errors.New(
	"CompletePickupCommand must be created via NewCompletePickupCommand constructor",
)

// CompletePickupCommand carries the code a client shows at the distributor's counter.
type CompletePickupCommand struct {
	orderID       kernel.UUID
	distributorID kernel.UUID
	code          string

	guard guard.ConstructorGuard
}

func NewCompletePickupCommand(orderID kernel.UUID, code string, distributorID kernel.UUID) (CompletePickupCommand, error) {
	cmd := CompletePickupCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setDistributorID(distributorID),
	); err != nil {
		return CompletePickupCommand{}, err
	}

	return cmd, nil
}

func (c CompletePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupCommandIsNotConstructed)
}

func (c CompletePickupCommand) OrderID() kernel.UUID       { return c.orderID }
func (c CompletePickupCommand) DistributorID() kernel.UUID { return c.distributorID }
func (c CompletePickupCommand) Code() string               { return c.code }

func (c *CompletePickupCommand) setOrderID(id kernel.UUID) error {
	if err := requireID("order id", id); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CompletePickupCommand) setDistributorID(id kernel.UUID) error {
	if err := requireID("distributor id", id); err != nil {
		return err
	}
	c.distributorID = id
	return nil
}

func (c *CompletePickupCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}
