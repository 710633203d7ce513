package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type ConfirmOrderResult struct {
	Outcome
	OrderID kernel.UUID
	Status  order.Status
}

// ConfirmOrderCommandHandler moves an order from new to confirmed. The client
// projection is written first, the distributor projection last.
type ConfirmOrderCommandHandler struct {
	stores   Stores
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewConfirmOrderCommandHandler(stores Stores, notifier ports.Notifier, logger *slog.Logger) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		stores:   stores,
		notifier: notifier,
		logger:   logger.With("component", "confirm_order"),
	}
}

func (h ConfirmOrderCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmOrderCommand,
) (result ConfirmOrderResult, err error) {
	if err = cmd.Validate(); err != nil {
		return ConfirmOrderResult{}, err
	}

	ctx, span := startSpan(ctx, "ConfirmOrder", cmd.OrderID())
	defer func() { finish(span, "confirm_order", result.Outcome, err) }()

	result = ConfirmOrderResult{OrderID: cmd.OrderID()}

	o, err := h.stores.DistributorOrders.Get(ctx, cmd.DistributorID(), cmd.OrderID())
	if err != nil {
		return result, err
	}
	result.Status = o.Status()

	if o.Status().IsTerminal() || o.Status() == order.Confirmed {
		result.Outcome = alreadyProcessed()
		return result, nil
	}

	err = o.Confirm()
	if errors.Is(err, order.ErrTransitionNotAllowed) {
		result.Outcome = rejected(ReasonStatusConflict)
		return result, nil
	}
	if err != nil {
		return result, err
	}

	clientOrder, err := h.stores.ClientOrders.Get(ctx, o.ID())
	if err != nil {
		return result, err
	}
	if clientOrder.Status() == order.New {
		if err = clientOrder.Confirm(); err != nil {
			return result, err
		}
		if err = h.stores.ClientOrders.UpdateFulfillment(ctx, clientOrder); err != nil {
			return result, err
		}
	}

	if err = h.stores.DistributorOrders.Update(ctx, o); err != nil {
		return result, NewPartialWriteError(o.ID(), ProjectionDistributor, err)
	}

	result.Status = o.Status()
	result.Outcome = succeeded()
	result.NotificationErrors = notifyAll(ctx, h.notifier, h.logger,
		notification(ports.RoleClient, o.ClientID(), ports.EventOrderConfirmed, o.ID(),
			"Your order was confirmed", nil),
	)

	return result, nil
}
