package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrTransitionNotAllowed is the sentinel behind every rejected status transition.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──> Confirmed ──> InDelivery ──> Delivered   (delivery mode)
//	 │          │  └───────────────────> Delivered   (pickup mode)
//	 └──────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Any transition requested on a terminal
// status is a no-op that returns the current status and no error, so late or
// duplicated calls from retrying callers are never penalized.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	New
	Confirmed
	InDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		Confirmed:  "confirmed",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "new",
		Confirmed:  "confirmed",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// ParseStatus converts the wire representation ("new", "in_delivery", ...) back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside of the declared constants.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition can change the status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Confirm moves New to Confirmed. Confirmed is accepted again unchanged.
func (s Status) Confirm() (Status, error) {
	switch {
	case s.IsTerminal():
		return s, nil
	case s == New, s == Confirmed:
		return Confirmed, nil
	default:
		return 0, newTransitionError(s, Confirmed)
	}
}

// Assign moves a confirmed order into InDelivery. InDelivery is accepted as
// well: it is the take-over of an order whose previous courier withdrew.
func (s Status) Assign() (Status, error) {
	switch {
	case s.IsTerminal():
		return s, nil
	case s == Confirmed, s == InDelivery:
		return InDelivery, nil
	default:
		return 0, newTransitionError(s, InDelivery)
	}
}

// Deliver completes the order. Delivery mode requires InDelivery; pickup mode
// goes straight from Confirmed and never passes through InDelivery.
func (s Status) Deliver(mode FulfillmentMode) (Status, error) {
	if s.IsTerminal() {
		return s, nil
	}

	switch mode {
	case Delivery:
		if s == InDelivery {
			return Delivered, nil
		}
	case Pickup:
		if s == Confirmed {
			return Delivered, nil
		}
	case UnknownMode:
	}

	return 0, newTransitionError(s, Delivered)
}

// Cancel is reachable from New or Confirmed only.
func (s Status) Cancel() (Status, error) {
	switch {
	case s.IsTerminal():
		return s, nil
	case s == New, s == Confirmed:
		return Cancelled, nil
	default:
		return 0, newTransitionError(s, Cancelled)
	}
}

// TransitionError describes a rejected transition. It matches both
// ErrTransitionNotAllowed and errs.ErrValueIsInvalid.
type TransitionError struct {
	From Status
	To   Status
}

func newTransitionError(from, to Status) *TransitionError {
	return &TransitionError{From: from, To: to}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrTransitionNotAllowed, e.From, e.To)
}

func (e *TransitionError) Unwrap() []error {
	return []error{ErrTransitionNotAllowed, errs.ErrValueIsInvalid}
}
