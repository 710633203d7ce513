package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrPickupOrderCannotHaveCourier guards the pickup invariant: no courier, ever.
	ErrPickupOrderCannotHaveCourier = errors.New("pickup order cannot be assigned to a courier")

	// ErrPartitionBroken means productAmount + deliveryFee no longer equals total.
	ErrPartitionBroken = errors.New("product amount and delivery fee do not partition the order total")
)

// Order is one logical order. The client and the distributor each persist their own
// copy of it (a projection) keyed by the shared order id; the courier keeps a
// plain-data snapshot in its delivery list.
//
// Invariants:
//   - total = productAmount + deliveryFee, immutable once set
//   - fulfillment mode is fixed at creation; pickup implies deliveryFee = 0 and no courier
//   - only status, courier and timestamps mutate after creation
type Order struct {
	id            kernel.UUID
	clientID      kernel.UUID
	distributorID kernel.UUID
	address       string

	items         []LineItem
	productAmount int64
	deliveryFee   int64
	total         int64
	mode          FulfillmentMode

	status         Status
	validationCode ValidationCode
	courierID      *kernel.UUID

	createdAt          time.Time
	assignedAt         *time.Time
	startedAt          *time.Time
	deliveredAt        *time.Time
	pickedUpAt         *time.Time
	cancelledAt        *time.Time
	cancellationReason string

	guard guard.ConstructorGuard
}

// NewOrder creates an order in New status with a fresh validation code.
// The product amount is derived from the items.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	distributorID kernel.UUID,
	address string,
	items []LineItem,
	deliveryFee int64,
	mode FulfillmentMode,
	createdAt time.Time,
) (*Order, error) {
	code, err := NewValidationCode()
	if err != nil {
		return nil, err
	}

	o := &Order{
		status:         New,
		validationCode: code,
		createdAt:      createdAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setDistributorID(distributorID),
		o.setMode(mode),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee, mode),
		o.setAddress(address, mode),
	); err != nil {
		return nil, err
	}

	o.productAmount = SumItems(o.items)
	o.total = o.productAmount + o.deliveryFee

	return o, nil
}

// Snapshot is the plain-data form of an Order, used by persistence adapters and
// by the courier's delivery entry. It shares no memory with the aggregate.
type Snapshot struct {
	ID                 kernel.UUID
	ClientID           kernel.UUID
	DistributorID      kernel.UUID
	Address            string
	Items              []LineItem
	ProductAmount      int64
	DeliveryFee        int64
	Total              int64
	Mode               FulfillmentMode
	Status             Status
	ValidationCode     string
	CourierID          *kernel.UUID
	CreatedAt          time.Time
	AssignedAt         *time.Time
	StartedAt          *time.Time
	DeliveredAt        *time.Time
	PickedUpAt         *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// RestoreOrder rebuilds an order from storage. An empty validation code is
// accepted so malformed historical records can still be loaded and repaired.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		address:            s.Address,
		productAmount:      s.ProductAmount,
		deliveryFee:        s.DeliveryFee,
		total:              s.Total,
		createdAt:          s.CreatedAt,
		assignedAt:         copyTime(s.AssignedAt),
		startedAt:          copyTime(s.StartedAt),
		deliveredAt:        copyTime(s.DeliveredAt),
		pickedUpAt:         copyTime(s.PickedUpAt),
		cancelledAt:        copyTime(s.CancelledAt),
		cancellationReason: s.CancellationReason,
		guard:              guard.NewConstructorGuard(),
	}

	var codeErr error
	if s.ValidationCode != "" {
		o.validationCode, codeErr = ValidationCodeFromString(s.ValidationCode)
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setClientID(s.ClientID),
		o.setDistributorID(s.DistributorID),
		o.setMode(s.Mode),
		o.setItems(s.Items),
		o.setStatus(s.Status),
		o.setCourier(s.CourierID),
		codeErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) ClientID() kernel.UUID          { return o.clientID }
func (o *Order) DistributorID() kernel.UUID     { return o.distributorID }
func (o *Order) Address() string                { return o.address }
func (o *Order) Items() []LineItem              { return CloneItems(o.items) }
func (o *Order) ProductAmount() int64           { return o.productAmount }
func (o *Order) DeliveryFee() int64             { return o.deliveryFee }
func (o *Order) Total() int64                   { return o.total }
func (o *Order) Mode() FulfillmentMode          { return o.mode }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) ValidationCode() ValidationCode { return o.validationCode }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) AssignedAt() *time.Time         { return copyTime(o.assignedAt) }
func (o *Order) StartedAt() *time.Time          { return copyTime(o.startedAt) }
func (o *Order) DeliveredAt() *time.Time        { return copyTime(o.deliveredAt) }
func (o *Order) PickedUpAt() *time.Time         { return copyTime(o.pickedUpAt) }
func (o *Order) CancelledAt() *time.Time        { return copyTime(o.cancelledAt) }
func (o *Order) CancellationReason() string     { return o.cancellationReason }

// CourierID returns the assigned courier, nil until an assignment succeeds.
func (o *Order) CourierID() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// Snapshot returns a deep copy of the order's data.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		ClientID:           o.clientID,
		DistributorID:      o.distributorID,
		Address:            o.address,
		Items:              CloneItems(o.items),
		ProductAmount:      o.productAmount,
		DeliveryFee:        o.deliveryFee,
		Total:              o.total,
		Mode:               o.mode,
		Status:             o.status,
		ValidationCode:     o.validationCode.String(),
		CourierID:          o.CourierID(),
		CreatedAt:          o.createdAt,
		AssignedAt:         copyTime(o.assignedAt),
		StartedAt:          copyTime(o.startedAt),
		DeliveredAt:        copyTime(o.deliveredAt),
		PickedUpAt:         copyTime(o.pickedUpAt),
		CancelledAt:        copyTime(o.cancelledAt),
		CancellationReason: o.cancellationReason,
	}
}

// Confirm records the distributor's acceptance of the order.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AssignCourier attaches a courier and moves the order into InDelivery. Assigning
// over another courier is the take-over path. On a terminal order it does nothing.
func (o *Order) AssignCourier(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return nil
	}
	if o.mode == Pickup {
		return ErrPickupOrderCannotHaveCourier
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.assignedAt = &at
	return nil
}

// MarkStarted records that the courier left with the goods. It keeps the first
// start time when called again.
func (o *Order) MarkStarted(at time.Time) error {
	if o.status.IsTerminal() {
		return nil
	}
	if o.status != InDelivery {
		return newTransitionError(o.status, InDelivery)
	}
	if o.startedAt == nil {
		o.startedAt = &at
	}
	return nil
}

// Deliver finalizes the order for its fulfillment mode. Delivery mode stamps
// deliveredAt, pickup mode stamps pickedUpAt.
func (o *Order) Deliver(at time.Time) error {
	if o.status.IsTerminal() {
		return nil
	}

	newStatus, err := o.status.Deliver(o.mode)
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.mode == Pickup {
		o.pickedUpAt = &at
	} else {
		o.deliveredAt = &at
	}
	return nil
}

// Cancel moves a New or Confirmed order to Cancelled.
func (o *Order) Cancel(reason string, at time.Time) error {
	if o.status.IsTerminal() {
		return nil
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &at
	o.cancellationReason = strings.TrimSpace(reason)
	return nil
}

// EnsureValidationCode synthesizes a code for records stored without one.
// It reports whether a repair happened. An existing code is never regenerated.
func (o *Order) EnsureValidationCode() (bool, error) {
	if !o.validationCode.IsZero() {
		return false, nil
	}

	code, err := NewValidationCode()
	if err != nil {
		return false, err
	}
	o.validationCode = code
	return true, nil
}

// RestoreValidationCode copies a code known to another projection of the same
// order, so all copies agree after a repair.
func (o *Order) RestoreValidationCode(code ValidationCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	if !o.validationCode.IsZero() {
		return nil
	}
	o.validationCode = code
	return nil
}

// MatchesCode compares the submitted code with the stored one.
func (o *Order) MatchesCode(code string) bool {
	return o.validationCode.Matches(code)
}

// CheckPartition verifies that the amounts split the total without overlap or remainder.
func (o *Order) CheckPartition() error {
	if o.productAmount+o.deliveryFee != o.total {
		return fmt.Errorf("%w: %d + %d != %d", ErrPartitionBroken, o.productAmount, o.deliveryFee, o.total)
	}
	if o.productAmount < 0 || o.deliveryFee < 0 {
		return fmt.Errorf("%w: negative component", ErrPartitionBroken)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setDistributorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("distributor id", err)
	}
	o.distributorID = id
	return nil
}

func (o *Order) setMode(mode FulfillmentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.mode = mode
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = CloneItems(items)
	return nil
}

func (o *Order) setDeliveryFee(fee int64, mode FulfillmentMode) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%d is negative", fee))
	}
	if mode == Pickup && fee != 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", errors.New("pickup orders carry no delivery fee"))
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setAddress(address string, mode FulfillmentMode) error {
	address = strings.TrimSpace(address)
	if mode == Delivery && address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCourier(courierID *kernel.UUID) error {
	if courierID == nil {
		o.courierID = nil
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	o.courierID = &id
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
