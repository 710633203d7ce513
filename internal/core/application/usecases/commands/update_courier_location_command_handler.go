package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// UpdateCourierLocationCommandHandler stores the courier's position twice: on
// the courier record, which ranking falls back to, and in the live locator.
type UpdateCourierLocationCommandHandler struct {
	couriers ports.CourierRepository
	locator  ports.CourierLocator
}

func NewUpdateCourierLocationCommandHandler(
	couriers ports.CourierRepository,
	locator ports.CourierLocator,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{couriers: couriers, locator: locator}
}

func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := h.couriers.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = c.MoveTo(cmd.Position()); err != nil {
		return err
	}
	if err = h.couriers.Update(ctx, c); err != nil {
		return err
	}

	return h.locator.UpdatePosition(ctx, c.ID(), cmd.Position())
}
