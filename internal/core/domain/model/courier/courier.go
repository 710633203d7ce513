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

const (
	minRating = 1
	maxRating = 5
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")

	// ErrDeliveryNotFound means the courier holds no entry for the order.
	ErrDeliveryNotFound = errors.New("delivery not found")
	// ErrDeliveryNotActive means the entry exists but is neither pending nor in progress.
	ErrDeliveryNotActive = errors.New("delivery is not active")
	// ErrDeliveryAlreadyCompleted protects completed entries from cancellation.
	ErrDeliveryAlreadyCompleted = errors.New("delivery is already completed")
)

// AssignmentOutcome tells the coordinator which path AssignDelivery took.
type AssignmentOutcome int

const (
	// AssignmentCreated appended a new pending entry.
	AssignmentCreated AssignmentOutcome = iota + 1
	// AssignmentAlreadyActive found a live entry and changed nothing.
	AssignmentAlreadyActive
	// AssignmentReactivated revived a cancelled entry: a second, binding commitment.
	AssignmentReactivated
)

// Courier is the aggregate root for a courier and its delivery list.
//
// At most one entry exists per order id. Cancelled entries stay in the list as
// history and are revived on reassignment rather than duplicated.
type Courier struct {
	id          kernel.UUID
	accountID   *kernel.UUID
	name        string
	phone       string
	location    kernel.GeoPoint
	available   bool
	ratingSum   int
	ratingCount int
	deliveries  []*Delivery
	score       *Score
	guard       guard.ConstructorGuard
}

// NewCourier registers an available courier with an empty delivery list.
func NewCourier(id kernel.UUID, accountID *kernel.UUID, name, phone string, location kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setAccountID(accountID),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}
	c.phone = strings.TrimSpace(phone)

	return c, nil
}

// RestoreCourier rebuilds a courier from storage.
func RestoreCourier(
	id kernel.UUID,
	accountID *kernel.UUID,
	name, phone string,
	location kernel.GeoPoint,
	available bool,
	ratingSum, ratingCount int,
	deliveries []*Delivery,
	score *Score,
) (*Courier, error) {
	c := &Courier{
		phone:       phone,
		available:   available,
		ratingSum:   ratingSum,
		ratingCount: ratingCount,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setAccountID(accountID),
		c.setName(name),
		c.setLocation(location),
		c.setDeliveries(deliveries),
		c.setScore(score),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID           { return c.id }
func (c *Courier) Name() string              { return c.name }
func (c *Courier) Phone() string             { return c.phone }
func (c *Courier) Location() kernel.GeoPoint { return c.location }
func (c *Courier) IsAvailable() bool         { return c.available }
func (c *Courier) RatingSum() int            { return c.ratingSum }
func (c *Courier) RatingCount() int          { return c.ratingCount }

// AccountID is the linked account identifier, accepted as a lookup fallback.
func (c *Courier) AccountID() *kernel.UUID {
	if c.accountID == nil {
		return nil
	}
	id := *c.accountID
	return &id
}

// Deliveries returns copies of the delivery entries.
func (c *Courier) Deliveries() []*Delivery {
	out := make([]*Delivery, 0, len(c.deliveries))
	for _, d := range c.deliveries {
		out = append(out, d.clone())
	}
	return out
}

// FindDelivery returns a copy of the entry for the order, if any.
func (c *Courier) FindDelivery(orderID kernel.UUID) (*Delivery, bool) {
	d := c.findDelivery(orderID)
	if d == nil {
		return nil, false
	}
	return d.clone(), true
}

// HoldsActiveDelivery reports a pending or in-progress entry for the order.
func (c *Courier) HoldsActiveDelivery(orderID kernel.UUID) bool {
	d := c.findDelivery(orderID)
	return d != nil && d.status.IsActive()
}

// AssignDelivery records the order in the delivery list.
//
//   - no entry: a pending entry is appended (AssignmentCreated)
//   - a live entry: nothing changes (AssignmentAlreadyActive)
//   - a cancelled entry: it is revived as pending with a fresh assignedAt (AssignmentReactivated)
func (c *Courier) AssignDelivery(o *order.Order, contact string, at time.Time) (AssignmentOutcome, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	if o.Mode() == order.Pickup {
		return 0, order.ErrPickupOrderCannotHaveCourier
	}

	if existing := c.findDelivery(o.ID()); existing != nil {
		if existing.status != DeliveryCancelled {
			return AssignmentAlreadyActive, nil
		}
		existing.reactivate(o, contact, at)
		return AssignmentReactivated, nil
	}

	d, err := NewDelivery(o, contact, at)
	if err != nil {
		return 0, err
	}
	c.deliveries = append(c.deliveries, d)
	return AssignmentCreated, nil
}

// RemoveDelivery drops a non-completed entry, used when another courier takes
// the order over. It reports whether an entry was removed.
func (c *Courier) RemoveDelivery(orderID kernel.UUID) bool {
	for i, d := range c.deliveries {
		if d.orderID.IsEqual(orderID) && d.status != DeliveryCompleted {
			c.deliveries = append(c.deliveries[:i], c.deliveries[i+1:]...)
			return true
		}
	}
	return false
}

// StartDelivery moves a pending entry to in_progress.
func (c *Courier) StartDelivery(orderID kernel.UUID, at time.Time) error {
	d, err := c.activeDelivery(orderID)
	if err != nil {
		return err
	}
	if d.status == DeliveryPending {
		d.status = DeliveryInProgress
		d.startedAt = &at
	}
	return nil
}

// CompleteDelivery closes the entry, passing through in_progress when it is
// still pending. Completing a completed entry is a no-op.
func (c *Courier) CompleteDelivery(orderID kernel.UUID, at time.Time) error {
	d := c.findDelivery(orderID)
	if d != nil && d.status == DeliveryCompleted {
		return nil
	}

	if err := c.StartDelivery(orderID, at); err != nil {
		return err
	}

	d.status = DeliveryCompleted
	d.completedAt = &at
	return nil
}

// CancelDelivery withdraws the courier from an active entry. The entry is kept
// so a later reassignment can revive it.
func (c *Courier) CancelDelivery(orderID kernel.UUID, reason string, at time.Time) error {
	d := c.findDelivery(orderID)
	switch {
	case d == nil:
		return fmt.Errorf("%w: order %s", ErrDeliveryNotFound, orderID)
	case d.status == DeliveryCancelled:
		return nil
	case d.status == DeliveryCompleted:
		return fmt.Errorf("%w: order %s", ErrDeliveryAlreadyCompleted, orderID)
	}

	d.status = DeliveryCancelled
	d.cancelledAt = &at
	d.cancellationReason = strings.TrimSpace(reason)
	return nil
}

// DeliveryStats summarizes the delivery list.
type DeliveryStats struct {
	Total     int
	Completed int
	Cancelled int
	Active    int
}

// CompletionRate is completed / total, 1 for a courier without history.
func (s DeliveryStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Completed) / float64(s.Total)
}

func (c *Courier) Stats() DeliveryStats {
	var stats DeliveryStats
	for _, d := range c.deliveries {
		stats.Total++
		switch d.status {
		case DeliveryCompleted:
			stats.Completed++
		case DeliveryCancelled:
			stats.Cancelled++
		case DeliveryPending, DeliveryInProgress:
			stats.Active++
		case DeliveryUnknown:
		}
	}
	return stats
}

// AverageRating returns the mean rating and false when the courier was never rated.
func (c *Courier) AverageRating() (float64, bool) {
	if c.ratingCount == 0 {
		return 0, false
	}
	return float64(c.ratingSum) / float64(c.ratingCount), true
}

func (c *Courier) AddRating(stars int) error {
	if stars < minRating || stars > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", stars, minRating, maxRating)
	}
	c.ratingSum += stars
	c.ratingCount++
	return nil
}

// Score returns the last computed score, if any.
func (c *Courier) Score() (Score, bool) {
	if c.score == nil {
		return Score{}, false
	}
	return *c.score, true
}

func (c *Courier) SetScore(score Score) error {
	if err := score.Validate(); err != nil {
		return err
	}
	c.score = &score
	return nil
}

func (c *Courier) MoveTo(location kernel.GeoPoint) error {
	return c.setLocation(location)
}

func (c *Courier) SetAvailable(available bool) {
	c.available = available
}

func (c *Courier) findDelivery(orderID kernel.UUID) *Delivery {
	for _, d := range c.deliveries {
		if d.orderID.IsEqual(orderID) {
			return d
		}
	}
	return nil
}

func (c *Courier) activeDelivery(orderID kernel.UUID) (*Delivery, error) {
	d := c.findDelivery(orderID)
	if d == nil {
		return nil, fmt.Errorf("%w: order %s", ErrDeliveryNotFound, orderID)
	}
	if !d.status.IsActive() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrDeliveryNotActive, orderID, d.status)
	}
	return d, nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setAccountID(accountID *kernel.UUID) error {
	if accountID == nil {
		return nil
	}
	if err := accountID.Validate(); err != nil {
		return err
	}
	id := *accountID
	c.accountID = &id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setDeliveries(deliveries []*Delivery) error {
	seen := make(map[kernel.UUID]struct{}, len(deliveries))
	c.deliveries = make([]*Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := seen[d.orderID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("deliveries", fmt.Errorf("duplicate entry for order %s", d.orderID))
		}
		seen[d.orderID] = struct{}{}
		c.deliveries = append(c.deliveries, d.clone())
	}
	return nil
}

func (c *Courier) setScore(score *Score) error {
	if score == nil {
		return nil
	}
	if err := score.Validate(); err != nil {
		return err
	}
	s := *score
	c.score = &s
	return nil
}
