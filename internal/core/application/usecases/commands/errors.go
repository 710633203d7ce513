package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrFulfillmentModeMismatch rejects a completion entry point used for the
	// other fulfillment mode: couriers validate deliveries, distributors validate pickups.
	ErrFulfillmentModeMismatch = fmt.Errorf("fulfillment mode does not match the operation: %w", errs.ErrValueIsInvalid)

	// ErrPartialWrite is the sentinel behind PartialWriteError.
	ErrPartialWrite = errors.New("projections left divergent")
)

// Projection names used in PartialWriteError and metrics.
const (
	ProjectionCourier     = "courier"
	ProjectionDistributor = "distributor"
	ProjectionClient      = "client"
	ProjectionLedger      = "ledger"
)

// PartialWriteError is returned when a write failed after an earlier projection
// of the same order was already written. Re-running the same command repairs it.
type PartialWriteError struct {
	OrderID    kernel.UUID
	Projection string
	Cause      error
}

func NewPartialWriteError(orderID kernel.UUID, projection string, cause error) *PartialWriteError {
	return &PartialWriteError{OrderID: orderID, Projection: projection, Cause: cause}
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: %s write failed for order %s: %v", ErrPartialWrite, e.Projection, e.OrderID, e.Cause)
}

func (e *PartialWriteError) Unwrap() []error {
	return []error{ErrPartialWrite, e.Cause}
}

// FailureReason names the business rule a structured failure tripped.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonInvalidCode        FailureReason = "invalid_code"
	ReasonCourierNotHolding  FailureReason = "courier_not_holding_order"
	ReasonAssignmentConflict FailureReason = "assignment_conflict"
	ReasonCourierUnavailable FailureReason = "courier_unavailable"
	ReasonStatusConflict     FailureReason = "status_conflict"
)

// Outcome is the part every fulfillment result shares. Hard failures are
// returned as errors instead.
type Outcome struct {
	Success bool
	// AlreadyProcessed marks a successful no-op: the order was already past this step.
	AlreadyProcessed bool
	Reason           FailureReason
	// NotificationErrors lists notifications that could not be sent. They never
	// turn a successful operation into a failure.
	NotificationErrors []NotificationError
}

func succeeded() Outcome {
	return Outcome{Success: true}
}

func alreadyProcessed() Outcome {
	return Outcome{Success: true, AlreadyProcessed: true}
}

func rejected(reason FailureReason) Outcome {
	return Outcome{Reason: reason}
}
