package courier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// DeliveryStatus is the courier-side view of an assignment. It is distinct from
// the order status: a cancelled delivery leaves the order in delivery, waiting
// for another courier.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryPending
	DeliveryInProgress
	DeliveryCompleted
	DeliveryCancelled
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryPending:
		return "pending"
	case DeliveryInProgress:
		return "in_progress"
	case DeliveryCompleted:
		return "completed"
	case DeliveryCancelled:
		return "cancelled"
	case DeliveryUnknown:
	}
	return "unknown"
}

func (s DeliveryStatus) Validate() error {
	if s < DeliveryPending || s > DeliveryCancelled {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// IsActive reports pending and in_progress assignments.
func (s DeliveryStatus) IsActive() bool {
	return s == DeliveryPending || s == DeliveryInProgress
}

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for _, status := range []DeliveryStatus{DeliveryPending, DeliveryInProgress, DeliveryCompleted, DeliveryCancelled} {
		if status.String() == s {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%q is not a valid delivery status", s))
}

// Delivery is one entry of a courier's delivery list, keyed by order id.
// It carries a plain-data copy of the order so the courier aggregate never
// holds a live reference into another aggregate.
type Delivery struct {
	orderID       kernel.UUID
	clientID      kernel.UUID
	distributorID kernel.UUID
	address       string
	contact       string
	items         []order.LineItem
	productAmount int64
	deliveryFee   int64
	total         int64

	status             DeliveryStatus
	assignedAt         time.Time
	startedAt          *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason string
	reactivations      int

	guard guard.ConstructorGuard
}

// NewDelivery snapshots the order into a pending delivery.
func NewDelivery(o *order.Order, contact string, assignedAt time.Time) (*Delivery, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	s := o.Snapshot()
	return &Delivery{
		orderID:       s.ID,
		clientID:      s.ClientID,
		distributorID: s.DistributorID,
		address:       s.Address,
		contact:       strings.TrimSpace(contact),
		items:         s.Items,
		productAmount: s.ProductAmount,
		deliveryFee:   s.DeliveryFee,
		total:         s.Total,
		status:        DeliveryPending,
		assignedAt:    assignedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// DeliverySnapshot is the stored form of a Delivery.
type DeliverySnapshot struct {
	OrderID            kernel.UUID
	ClientID           kernel.UUID
	DistributorID      kernel.UUID
	Address            string
	Contact            string
	Items              []order.LineItem
	ProductAmount      int64
	DeliveryFee        int64
	Total              int64
	Status             DeliveryStatus
	AssignedAt         time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	Reactivations      int
}

func RestoreDelivery(s DeliverySnapshot) (*Delivery, error) {
	if err := errors.Join(s.OrderID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		orderID:            s.OrderID,
		clientID:           s.ClientID,
		distributorID:      s.DistributorID,
		address:            s.Address,
		contact:            s.Contact,
		items:              order.CloneItems(s.Items),
		productAmount:      s.ProductAmount,
		deliveryFee:        s.DeliveryFee,
		total:              s.Total,
		status:             s.Status,
		assignedAt:         s.AssignedAt,
		startedAt:          copyTime(s.StartedAt),
		completedAt:        copyTime(s.CompletedAt),
		cancelledAt:        copyTime(s.CancelledAt),
		cancellationReason: s.CancellationReason,
		reactivations:      s.Reactivations,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) OrderID() kernel.UUID       { return d.orderID }
func (d *Delivery) Status() DeliveryStatus     { return d.status }
func (d *Delivery) DeliveryFee() int64         { return d.deliveryFee }
func (d *Delivery) Total() int64               { return d.total }
func (d *Delivery) AssignedAt() time.Time      { return d.assignedAt }
func (d *Delivery) Items() []order.LineItem    { return order.CloneItems(d.items) }
func (d *Delivery) Reactivations() int         { return d.reactivations }
func (d *Delivery) CompletedAt() *time.Time    { return copyTime(d.completedAt) }
func (d *Delivery) DistributorID() kernel.UUID { return d.distributorID }

func (d *Delivery) Snapshot() DeliverySnapshot {
	return DeliverySnapshot{
		OrderID:            d.orderID,
		ClientID:           d.clientID,
		DistributorID:      d.distributorID,
		Address:            d.address,
		Contact:            d.contact,
		Items:              order.CloneItems(d.items),
		ProductAmount:      d.productAmount,
		DeliveryFee:        d.deliveryFee,
		Total:              d.total,
		Status:             d.status,
		AssignedAt:         d.assignedAt,
		StartedAt:          copyTime(d.startedAt),
		CompletedAt:        copyTime(d.completedAt),
		CancelledAt:        copyTime(d.cancelledAt),
		CancellationReason: d.cancellationReason,
		Reactivations:      d.reactivations,
	}
}

func (d *Delivery) clone() *Delivery {
	c := *d
	c.items = order.CloneItems(d.items)
	c.startedAt = copyTime(d.startedAt)
	c.completedAt = copyTime(d.completedAt)
	c.cancelledAt = copyTime(d.cancelledAt)
	return &c
}

// reactivate turns a cancelled entry back into a pending one. The assignment
// time is refreshed: the new commitment starts now.
func (d *Delivery) reactivate(o *order.Order, contact string, at time.Time) {
	s := o.Snapshot()
	d.items = s.Items
	d.address = s.Address
	if contact = strings.TrimSpace(contact); contact != "" {
		d.contact = contact
	}
	d.status = DeliveryPending
	d.assignedAt = at
	d.startedAt = nil
	d.cancelledAt = nil
	d.cancellationReason = ""
	d.reactivations++
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
