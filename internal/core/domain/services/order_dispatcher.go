package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/order"
)

var (
	// ErrOrderIsFinalized is returned when dispatching a delivered or cancelled order.
	ErrOrderIsFinalized = errors.New("order is already finalized")
	// ErrCourierUnavailable is returned for a courier who is off duty.
	ErrCourierUnavailable = errors.New("courier is not available")
)

// DispatchResult describes what Dispatch changed.
type DispatchResult struct {
	Outcome courier.AssignmentOutcome
	// CodeRepaired is set when the order had no validation code and one was synthesized.
	CodeRepaired bool
	// OrderChanged is false when the order already pointed at this courier in delivery.
	OrderChanged bool
}

// AlreadyAssigned reports an idempotent repeat of a previous assignment.
func (r DispatchResult) AlreadyAssigned() bool {
	return r.Outcome == courier.AssignmentAlreadyActive
}

// IsReassignment reports a revived, previously cancelled assignment.
func (r DispatchResult) IsReassignment() bool {
	return r.Outcome == courier.AssignmentReactivated
}

// OrderDispatcher binds one courier to one order by updating both aggregates.
// It does not persist anything.
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch records the assignment on the courier's delivery list and on the order.
//
// A live entry on the courier's list is left untouched. The order is still
// brought in line when it does not reference the courier yet, which repairs a
// previous run that stopped between the two writes.
func (d OrderDispatcher) Dispatch(o *order.Order, c *courier.Courier, contact string, at time.Time) (DispatchResult, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return DispatchResult{}, err
	}
	if o.Status().IsTerminal() {
		return DispatchResult{}, fmt.Errorf("%w: order %s is %s", ErrOrderIsFinalized, o.ID(), o.Status())
	}
	if o.Mode() != order.Delivery {
		return DispatchResult{}, order.ErrPickupOrderCannotHaveCourier
	}
	if _, err := o.Status().Assign(); err != nil {
		return DispatchResult{}, err
	}

	existing, found := c.FindDelivery(o.ID())
	holdsLive := found && existing.Status() != courier.DeliveryCancelled
	if !c.IsAvailable() && !holdsLive {
		return DispatchResult{}, fmt.Errorf("%w: %s", ErrCourierUnavailable, c.ID())
	}

	codeRepaired, err := o.EnsureValidationCode()
	if err != nil {
		return DispatchResult{}, err
	}

	outcome, err := c.AssignDelivery(o, contact, at)
	if err != nil {
		return DispatchResult{}, err
	}

	result := DispatchResult{Outcome: outcome, CodeRepaired: codeRepaired}

	current := o.CourierID()
	inLine := o.Status() == order.InDelivery && current != nil && current.IsEqual(c.ID())
	if outcome == courier.AssignmentAlreadyActive && inLine {
		return result, nil
	}

	if err = o.AssignCourier(c.ID(), at); err != nil {
		return DispatchResult{}, err
	}
	result.OrderChanged = true

	return result, nil
}
