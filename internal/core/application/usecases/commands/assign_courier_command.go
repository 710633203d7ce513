package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand asks to bind a courier to one of the distributor's orders.
// The contact is what the client sees to reach the courier.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(distributorID, orderID, courierID, "+221 77 000 00 00")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AssignCourierCommand struct {
	distributorID kernel.UUID
	orderID       kernel.UUID
	courierID     kernel.UUID
	contact       string

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(distributorID, orderID, courierID kernel.UUID, contact string) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		contact: strings.TrimSpace(contact),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDistributorID(distributorID),
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) DistributorID() kernel.UUID { return c.distributorID }
func (c AssignCourierCommand) OrderID() kernel.UUID       { return c.orderID }
func (c AssignCourierCommand) CourierID() kernel.UUID     { return c.courierID }
func (c AssignCourierCommand) Contact() string            { return c.contact }

func (c *AssignCourierCommand) setDistributorID(id kernel.UUID) error {
	if err := requireID("distributor id", id); err != nil {
		return err
	}
	c.distributorID = id
	return nil
}

func (c *AssignCourierCommand) setOrderID(id kernel.UUID) error {
	if err := requireID("order id", id); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AssignCourierCommand) setCourierID(id kernel.UUID) error {
	if err := requireID("courier id", id); err != nil {
		return err
	}
	c.courierID = id
	return nil
}
