package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AssignResult reports the outcome of an assignment.
type AssignResult struct {
	Outcome
	OrderID   kernel.UUID
	CourierID kernel.UUID
	// AlreadyAssigned is set on an idempotent repeat: nothing was written.
	AlreadyAssigned bool
	// IsReassignment is set when a previously cancelled assignment was revived.
	IsReassignment bool
	// CodeRepaired is set when the order had no validation code and got one.
	CodeRepaired bool
}

// AssignCourierCommandHandler binds a courier to an order and propagates the
// assignment to the courier, distributor and client projections, in that order.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(stores, notifier, logger)
//	result, err := handler.Handle(ctx, cmd)
//	var partial *PartialWriteError
//	switch {
//	case errors.As(err, &partial):
//	    // retry the same command to repair the client projection
//	case err != nil:
//	    return err
//	case !result.Success:
//	    log.Printf("assignment refused: %s", result.Reason)
//	}
type AssignCourierCommandHandler struct {
	stores     Stores
	dispatcher services.OrderDispatcher
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewAssignCourierCommandHandler(stores Stores, notifier ports.Notifier, logger *slog.Logger) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		stores:     stores,
		dispatcher: services.NewOrderDispatcher(),
		notifier:   notifier,
		logger:     logger.With("component", "assign_courier"),
		now:        utcNow,
	}
}

// Handle checks, in order, that the distributor exists and owns the order, that
// the order is confirmed and can still take a courier, and that the courier exists. Missing
// records are errors; an order that cannot take a courier is a structured failure.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (result AssignResult, err error) {
	if err = cmd.Validate(); err != nil {
		return AssignResult{}, err
	}

	ctx, span := startSpan(ctx, "AssignCourier", cmd.OrderID())
	defer func() { finish(span, "assign_courier", result.Outcome, err) }()

	result = AssignResult{OrderID: cmd.OrderID(), CourierID: cmd.CourierID()}

	if _, err = h.stores.Distributors.Get(ctx, cmd.DistributorID()); err != nil {
		return result, err
	}

	o, err := h.stores.DistributorOrders.Get(ctx, cmd.DistributorID(), cmd.OrderID())
	if err != nil {
		return result, err
	}
	if o.Status().IsTerminal() || o.Status() == order.New || o.Mode() != order.Delivery {
		result.Outcome = rejected(ReasonAssignmentConflict)
		return result, nil
	}

	c, err := h.stores.Couriers.Get(ctx, cmd.CourierID())
	if err != nil {
		return result, err
	}

	codeBorrowed, err := h.borrowClientCode(ctx, o)
	if err != nil {
		return result, err
	}

	previous := o.CourierID()
	now := h.now()

	dispatch, err := h.dispatcher.Dispatch(o, c, cmd.Contact(), now)
	switch {
	case errors.Is(err, services.ErrCourierUnavailable):
		result.Outcome = rejected(ReasonCourierUnavailable)
		return result, nil
	case errors.Is(err, order.ErrTransitionNotAllowed):
		result.Outcome = rejected(ReasonAssignmentConflict)
		return result, nil
	case err != nil:
		return result, err
	}

	result.AlreadyAssigned = dispatch.AlreadyAssigned()
	result.IsReassignment = dispatch.IsReassignment()
	result.CodeRepaired = dispatch.CodeRepaired || codeBorrowed

	if dispatch.AlreadyAssigned() && !dispatch.OrderChanged && !result.CodeRepaired {
		// The client write is the only one a previous run may have missed.
		if err = syncClientAssignment(ctx, h.stores.ClientOrders, o, now); err != nil {
			return result, NewPartialWriteError(o.ID(), ProjectionClient, err)
		}
		result.Outcome = succeeded()
		return result, nil
	}

	if previous != nil && !previous.IsEqual(c.ID()) {
		releaseCourier(ctx, h.stores.Couriers, h.logger, *previous, o.ID())
	}

	if !dispatch.AlreadyAssigned() {
		if err = h.stores.Couriers.Update(ctx, c); err != nil {
			return result, err
		}
	}

	if err = h.stores.DistributorOrders.Update(ctx, o); err != nil {
		return result, NewPartialWriteError(o.ID(), ProjectionDistributor, err)
	}

	if err = syncClientAssignment(ctx, h.stores.ClientOrders, o, now); err != nil {
		return result, NewPartialWriteError(o.ID(), ProjectionClient, err)
	}

	result.Outcome = succeeded()
	result.NotificationErrors = notifyAll(ctx, h.notifier, h.logger, h.notifications(o, c.ID(), c.Name(), cmd.Contact(), dispatch)...)

	h.logger.InfoContext(ctx, "courier assigned",
		"order_id", o.ID().String(),
		"courier_id", c.ID().String(),
		"reassignment", dispatch.IsReassignment(),
		"code_repaired", result.CodeRepaired,
	)

	return result, nil
}

// borrowClientCode gives a distributor copy stored without a code the code the
// client copy already holds. A fresh code is only generated when both are empty.
func (h AssignCourierCommandHandler) borrowClientCode(ctx context.Context, o *order.Order) (bool, error) {
	if !o.ValidationCode().IsZero() {
		return false, nil
	}

	clientOrder, err := h.stores.ClientOrders.Get(ctx, o.ID())
	if err != nil {
		return false, err
	}
	if clientOrder.ValidationCode().IsZero() {
		return false, nil
	}

	if err = o.RestoreValidationCode(clientOrder.ValidationCode()); err != nil {
		return false, err
	}
	return true, nil
}

func (h AssignCourierCommandHandler) notifications(
	o *order.Order,
	courierID kernel.UUID,
	courierName, contact string,
	dispatch services.DispatchResult,
) []ports.Notification {
	courierEvent := ports.EventCourierAssigned
	courierMessage := fmt.Sprintf("New delivery assigned: %s", o.Address())
	if dispatch.IsReassignment() {
		courierEvent = ports.EventCourierReassigned
		courierMessage = fmt.Sprintf("You accepted order %s again. This second commitment is binding.", o.ID())
	}

	return []ports.Notification{
		notification(ports.RoleCourier, courierID, courierEvent, o.ID(), courierMessage, map[string]any{
			"isReassignment": dispatch.IsReassignment(),
			"address":        o.Address(),
			"deliveryFee":    o.DeliveryFee(),
			"total":          o.Total(),
		}),
		notification(ports.RoleDistributor, o.DistributorID(), ports.EventCourierAssigned, o.ID(),
			fmt.Sprintf("%s will deliver the order", courierName), map[string]any{
				"courierId": courierID.String(),
			}),
		notification(ports.RoleClient, o.ClientID(), ports.EventCourierAssigned, o.ID(),
			fmt.Sprintf("%s is on the way", courierName), map[string]any{
				"courierId":      courierID.String(),
				"courierContact": contact,
			}),
	}
}
