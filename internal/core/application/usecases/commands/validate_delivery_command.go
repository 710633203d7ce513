package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrValidateDeliveryCommandIsNotConstructed = errors.New(
	"ValidateDeliveryCommand must be created via NewValidateDeliveryCommand constructor",
)

// ValidateDeliveryCommand carries the code a courier collected from the client
// at the door. The courier id may also be the courier's linked account id.
type ValidateDeliveryCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewValidateDeliveryCommand only checks that a code was submitted. Its format
// is checked against the stored code by the handler, where a wrong code is an
// expected outcome rather than an error.
func NewValidateDeliveryCommand(orderID kernel.UUID, code string, courierID kernel.UUID) (ValidateDeliveryCommand, error) {
	cmd := ValidateDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setCourierID(courierID),
	); err != nil {
		return ValidateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c ValidateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrValidateDeliveryCommandIsNotConstructed)
}

func (c ValidateDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
func (c ValidateDeliveryCommand) CourierID() kernel.UUID { return c.courierID }
func (c ValidateDeliveryCommand) Code() string           { return c.code }

func (c *ValidateDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := requireID("order id", id); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ValidateDeliveryCommand) setCourierID(id kernel.UUID) error {
	if err := requireID("courier id", id); err != nil {
		return err
	}
	c.courierID = id
	return nil
}

func (c *ValidateDeliveryCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}
