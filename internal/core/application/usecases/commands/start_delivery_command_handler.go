package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type StartDeliveryResult struct {
	Outcome
	OrderID kernel.UUID
}

// StartDeliveryCommandHandler moves the courier's entry to in_progress and
// stamps startedAt on both order projections. The courier list decides
// whether the step already happened, so it is written last.
type StartDeliveryCommandHandler struct {
	stores   Stores
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewStartDeliveryCommandHandler(stores Stores, notifier ports.Notifier, logger *slog.Logger) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		stores:   stores,
		notifier: notifier,
		logger:   logger.With("component", "start_delivery"),
		now:      utcNow,
	}
}

func (h StartDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd StartDeliveryCommand,
) (result StartDeliveryResult, err error) {
	if err = cmd.Validate(); err != nil {
		return StartDeliveryResult{}, err
	}

	ctx, span := startSpan(ctx, "StartDelivery", cmd.OrderID())
	defer func() { finish(span, "start_delivery", result.Outcome, err) }()

	result = StartDeliveryResult{OrderID: cmd.OrderID()}

	c, err := resolveCourier(ctx, h.stores.Couriers, cmd.CourierID())
	if err != nil {
		return result, err
	}

	d, found := c.FindDelivery(cmd.OrderID())
	switch {
	case !found || !d.Status().IsActive():
		result.Outcome = rejected(ReasonCourierNotHolding)
		return result, nil
	case d.Status() == courier.DeliveryInProgress:
		result.Outcome = alreadyProcessed()
		return result, nil
	}

	now := h.now()
	start := func(o *order.Order) error {
		if err := alignAssignment(o, c.ID(), d.AssignedAt()); err != nil {
			return err
		}
		return o.MarkStarted(now)
	}

	distributorOrder, err := h.stores.DistributorOrders.Get(ctx, d.DistributorID(), cmd.OrderID())
	if err != nil {
		return result, err
	}
	if err = start(distributorOrder); err != nil {
		return result, err
	}
	if err = h.stores.DistributorOrders.Update(ctx, distributorOrder); err != nil {
		return result, err
	}

	clientOrder, err := h.stores.ClientOrders.Get(ctx, cmd.OrderID())
	if err != nil {
		return result, NewPartialWriteError(cmd.OrderID(), ProjectionClient, err)
	}
	if err = start(clientOrder); err != nil {
		return result, err
	}
	if err = h.stores.ClientOrders.UpdateFulfillment(ctx, clientOrder); err != nil {
		return result, NewPartialWriteError(cmd.OrderID(), ProjectionClient, err)
	}

	if err = c.StartDelivery(cmd.OrderID(), now); err != nil {
		return result, err
	}
	if err = h.stores.Couriers.Update(ctx, c); err != nil {
		return result, NewPartialWriteError(cmd.OrderID(), ProjectionCourier, err)
	}

	result.Outcome = succeeded()
	result.NotificationErrors = notifyAll(ctx, h.notifier, h.logger,
		notification(ports.RoleClient, clientOrder.ClientID(), ports.EventDeliveryStarted, cmd.OrderID(),
			c.Name()+" picked up your order", map[string]any{"courierId": c.ID().String()}),
		notification(ports.RoleDistributor, distributorOrder.DistributorID(), ports.EventDeliveryStarted, cmd.OrderID(),
			c.Name()+" left with the order", map[string]any{"courierId": c.ID().String()}),
	)

	return result, nil
}
