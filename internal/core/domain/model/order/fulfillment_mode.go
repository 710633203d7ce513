package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// FulfillmentMode tells whether an order ends with a home delivery or an
// in-store pickup. It is fixed at creation.
type FulfillmentMode int

const (
	UnknownMode FulfillmentMode = iota
	Pickup
	Delivery
)

func (m FulfillmentMode) String() string {
	switch m {
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	case UnknownMode:
	}
	return "unknown"
}

func (m FulfillmentMode) Validate() error {
	if m != Pickup && m != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("fulfillment mode", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

func ParseFulfillmentMode(s string) (FulfillmentMode, error) {
	switch s {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	}
	return UnknownMode, errs.NewValueIsInvalidErrorWithCause("fulfillment mode", fmt.Errorf("%q is not a valid mode", s))
}
