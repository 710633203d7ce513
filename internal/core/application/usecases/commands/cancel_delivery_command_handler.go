package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

type CancelDeliveryResult struct {
	Outcome
	OrderID kernel.UUID
}

// CancelDeliveryCommandHandler marks the courier's entry cancelled. The order
// keeps its status and validation code so another courier can take it over,
// and the cancelled entry stays on the list so the same courier can be
// reassigned later.
type CancelDeliveryCommandHandler struct {
	couriers ports.CourierRepository
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewCancelDeliveryCommandHandler(
	couriers ports.CourierRepository,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		couriers: couriers,
		notifier: notifier,
		logger:   logger.With("component", "cancel_delivery"),
		now:      utcNow,
	}
}

func (h CancelDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CancelDeliveryCommand,
) (result CancelDeliveryResult, err error) {
	if err = cmd.Validate(); err != nil {
		return CancelDeliveryResult{}, err
	}

	ctx, span := startSpan(ctx, "CancelDelivery", cmd.OrderID())
	defer func() { finish(span, "cancel_delivery", result.Outcome, err) }()

	result = CancelDeliveryResult{OrderID: cmd.OrderID()}

	c, err := resolveCourier(ctx, h.couriers, cmd.CourierID())
	if err != nil {
		return result, err
	}

	d, found := c.FindDelivery(cmd.OrderID())
	switch {
	case !found:
		result.Outcome = rejected(ReasonCourierNotHolding)
		return result, nil
	case d.Status() == courier.DeliveryCancelled:
		result.Outcome = alreadyProcessed()
		return result, nil
	case d.Status() == courier.DeliveryCompleted:
		result.Outcome = rejected(ReasonStatusConflict)
		return result, nil
	}

	if err = c.CancelDelivery(cmd.OrderID(), cmd.Reason(), h.now()); err != nil {
		return result, err
	}
	if err = h.couriers.Update(ctx, c); err != nil {
		return result, err
	}

	result.Outcome = succeeded()
	result.NotificationErrors = notifyAll(ctx, h.notifier, h.logger,
		notification(ports.RoleDistributor, d.DistributorID(), ports.EventDeliveryCancelled, cmd.OrderID(),
			c.Name()+" withdrew from the delivery, assign another courier", map[string]any{
				"courierId": c.ID().String(),
				"reason":    cmd.Reason(),
			}),
	)

	h.logger.InfoContext(ctx, "delivery cancelled by courier",
		"order_id", cmd.OrderID().String(), "courier_id", c.ID().String())

	return result, nil
}
