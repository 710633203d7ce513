package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// syncClientAssignment brings the client projection in line with an assignment
// already recorded on the distributor projection. The write is targeted and
// skipped entirely when the client copy already agrees.
func syncClientAssignment(ctx context.Context, clientOrders ports.ClientOrderRepository, source *order.Order, at time.Time) error {
	courierID := source.CourierID()
	if courierID == nil {
		return nil
	}

	clientOrder, err := clientOrders.Get(ctx, source.ID())
	if err != nil {
		return err
	}
	if clientOrder.Status().IsTerminal() {
		return nil
	}

	changed := false
	if clientOrder.ValidationCode().IsZero() && !source.ValidationCode().IsZero() {
		if err = clientOrder.RestoreValidationCode(source.ValidationCode()); err != nil {
			return err
		}
		changed = true
	}

	current := clientOrder.CourierID()
	if clientOrder.Status() != order.InDelivery || current == nil || !current.IsEqual(*courierID) {
		assignedAt := at
		if sourceAt := source.AssignedAt(); sourceAt != nil {
			assignedAt = *sourceAt
		}
		if err = alignConfirmation(clientOrder); err != nil {
			return err
		}
		if err = clientOrder.AssignCourier(*courierID, assignedAt); err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return clientOrders.UpdateFulfillment(ctx, clientOrder)
}

// alignAssignment repairs a projection that missed the assignment step before
// a later step is applied to it.
func alignAssignment(o *order.Order, courierID kernel.UUID, assignedAt time.Time) error {
	if o.Status().IsTerminal() {
		return nil
	}
	current := o.CourierID()
	if o.Status() == order.InDelivery && current != nil && current.IsEqual(courierID) {
		return nil
	}
	if err := alignConfirmation(o); err != nil {
		return err
	}
	return o.AssignCourier(courierID, assignedAt)
}

// alignConfirmation confirms a projection that missed the distributor's
// confirmation, so the next step starts from Confirmed like its source did.
func alignConfirmation(o *order.Order) error {
	if o.Status() != order.New {
		return nil
	}
	return o.Confirm()
}

// releaseCourier removes the order from a courier who no longer holds it.
// It is best-effort: a failure leaves a stale entry behind and is only logged.
func releaseCourier(ctx context.Context, couriers ports.CourierRepository, logger *slog.Logger, courierID, orderID kernel.UUID) {
	c, err := couriers.Get(ctx, courierID)
	if err != nil {
		logger.WarnContext(ctx, "stale assignment not removed",
			"courier_id", courierID.String(), "order_id", orderID.String(), "error", err)
		return
	}
	if !c.RemoveDelivery(orderID) {
		return
	}
	if err = couriers.Update(ctx, c); err != nil {
		logger.WarnContext(ctx, "stale assignment not removed",
			"courier_id", courierID.String(), "order_id", orderID.String(), "error", err)
	}
}

// finalizeClientCopy applies a terminal transition to the client projection
// and moves the order into the client's history. An order that is already
// terminal is only archived, which is itself idempotent.
func finalizeClientCopy(
	ctx context.Context,
	clientOrders ports.ClientOrderRepository,
	orderID kernel.UUID,
	transition func(*order.Order) error,
) error {
	clientOrder, err := clientOrders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !clientOrder.Status().IsTerminal() {
		if err = transition(clientOrder); err != nil {
			return err
		}
		if err = clientOrders.UpdateFulfillment(ctx, clientOrder); err != nil {
			return err
		}
	}

	return clientOrders.Archive(ctx, clientOrder)
}

// resolveCourier accepts the courier id and, failing that, a linked account id.
func resolveCourier(ctx context.Context, couriers ports.CourierRepository, id kernel.UUID) (*courier.Courier, error) {
	c, err := couriers.Get(ctx, id)
	if err == nil || !errors.Is(err, errs.ErrObjectNotFound) {
		return c, err
	}
	return couriers.GetByAccountID(ctx, id)
}
