package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ValidateDeliveryResult reports a delivery validation.
type ValidateDeliveryResult struct {
	Outcome
	OrderID kernel.UUID
	// Status is the order status in the client projection after the call.
	Status order.Status
	// CodeValid is false when the submitted code did not match.
	CodeValid bool
	// CourierValid is false when the courier does not hold the order.
	CourierValid bool
	// Accounts holds the refreshed distributor and courier accounts.
	Accounts []*ledger.Account
}

// ValidateDeliveryCommandHandler completes a home delivery once the courier
// presents the client's code.
//
// Writes happen courier list, ledger, distributor, client. The client
// projection decides whether the order was already processed, so it is written
// last: until it is, re-running the command finishes the remaining steps and
// the ledger skips entries it already holds.
type ValidateDeliveryCommandHandler struct {
	stores   Stores
	ledger   LedgerWriter
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewValidateDeliveryCommandHandler(
	stores Stores,
	ledgerWriter LedgerWriter,
	notifier ports.Notifier,
	logger *slog.Logger,
) ValidateDeliveryCommandHandler {
	return ValidateDeliveryCommandHandler{
		stores:   stores,
		ledger:   ledgerWriter,
		notifier: notifier,
		logger:   logger.With("component", "validate_delivery"),
		now:      utcNow,
	}
}

func (h ValidateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ValidateDeliveryCommand,
) (result ValidateDeliveryResult, err error) {
	if err = cmd.Validate(); err != nil {
		return ValidateDeliveryResult{}, err
	}

	ctx, span := startSpan(ctx, "ValidateDelivery", cmd.OrderID())
	defer func() { finish(span, "validate_delivery", result.Outcome, err) }()

	result = ValidateDeliveryResult{OrderID: cmd.OrderID()}

	clientOrder, err := h.stores.ClientOrders.Get(ctx, cmd.OrderID())
	if err != nil {
		return result, err
	}
	result.Status = clientOrder.Status()

	if clientOrder.Mode() != order.Delivery {
		return result, fmt.Errorf("%w: order %s is a %s order", ErrFulfillmentModeMismatch, clientOrder.ID(), clientOrder.Mode())
	}
	if clientOrder.Status().IsTerminal() {
		result.Outcome = alreadyProcessed()
		result.CodeValid, result.CourierValid = true, true
		return result, nil
	}

	if !clientOrder.MatchesCode(cmd.Code()) {
		result.Outcome = rejected(ReasonInvalidCode)
		return result, nil
	}
	result.CodeValid = true

	c, err := resolveCourier(ctx, h.stores.Couriers, cmd.CourierID())
	if err != nil {
		return result, err
	}

	d, found := c.FindDelivery(cmd.OrderID())
	if !found || (!d.Status().IsActive() && d.Status() != courier.DeliveryCompleted) {
		result.Outcome = rejected(ReasonCourierNotHolding)
		return result, nil
	}
	result.CourierValid = true

	now := h.now()

	if d.Status() != courier.DeliveryCompleted {
		if err = c.CompleteDelivery(cmd.OrderID(), now); err != nil {
			return result, err
		}
		if err = h.stores.Couriers.Update(ctx, c); err != nil {
			return result, err
		}
	}

	if err = alignAssignment(clientOrder, c.ID(), d.AssignedAt()); err != nil {
		return result, err
	}
	if err = clientOrder.Deliver(now); err != nil {
		return result, err
	}

	entries, err := ledger.DeliveryProceeds(clientOrder, c.ID(), now)
	if err != nil {
		return result, err
	}
	if result.Accounts, err = h.ledger.Record(ctx, now, entries...); err != nil {
		return result, NewPartialWriteError(clientOrder.ID(), ProjectionLedger, err)
	}

	if err = h.deliverDistributorCopy(ctx, clientOrder, c.ID(), d.AssignedAt(), now); err != nil {
		return result, NewPartialWriteError(clientOrder.ID(), ProjectionDistributor, err)
	}

	if err = h.stores.ClientOrders.UpdateFulfillment(ctx, clientOrder); err != nil {
		return result, NewPartialWriteError(clientOrder.ID(), ProjectionClient, err)
	}
	if err = h.stores.ClientOrders.Archive(ctx, clientOrder); err != nil {
		return result, NewPartialWriteError(clientOrder.ID(), ProjectionClient, err)
	}

	result.Status = clientOrder.Status()
	result.Outcome = succeeded()
	result.NotificationErrors = notifyAll(ctx, h.notifier, h.logger, completedNotifications(clientOrder, c.ID())...)

	h.logger.InfoContext(ctx, "delivery validated",
		"order_id", clientOrder.ID().String(),
		"courier_id", c.ID().String(),
		"product_amount", clientOrder.ProductAmount(),
		"delivery_fee", clientOrder.DeliveryFee(),
	)

	return result, nil
}

func (h ValidateDeliveryCommandHandler) deliverDistributorCopy(
	ctx context.Context,
	clientOrder *order.Order,
	courierID kernel.UUID,
	assignedAt, at time.Time,
) error {
	distributorOrder, err := h.stores.DistributorOrders.Get(ctx, clientOrder.DistributorID(), clientOrder.ID())
	if err != nil {
		return err
	}
	if distributorOrder.Status().IsTerminal() {
		return nil
	}
	if err = alignAssignment(distributorOrder, courierID, assignedAt); err != nil {
		return err
	}
	if err = distributorOrder.Deliver(at); err != nil {
		return err
	}
	return h.stores.DistributorOrders.Update(ctx, distributorOrder)
}

func completedNotifications(o *order.Order, courierID kernel.UUID) []ports.Notification {
	return []ports.Notification{
		notification(ports.RoleClient, o.ClientID(), ports.EventDeliveryCompleted, o.ID(),
			"Your order was delivered", nil),
		notification(ports.RoleDistributor, o.DistributorID(), ports.EventDeliveryCompleted, o.ID(),
			fmt.Sprintf("Order delivered, %d credited", o.ProductAmount()), map[string]any{
				"amount": o.ProductAmount(),
			}),
		notification(ports.RoleCourier, courierID, ports.EventDeliveryCompleted, o.ID(),
			fmt.Sprintf("Delivery completed, %d credited", o.DeliveryFee()), map[string]any{
				"amount": o.DeliveryFee(),
			}),
	}
}
