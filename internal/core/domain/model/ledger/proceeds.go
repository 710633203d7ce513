package ledger

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrModeMismatch is returned when proceeds are split for the wrong fulfillment mode.
var ErrModeMismatch = errors.New("fulfillment mode does not match the proceeds rule")

// DeliveryProceeds splits a delivered order between the distributor (product
// amount, as a sale) and the courier (delivery fee, as a credit). The two
// amounts partition the total exactly.
func DeliveryProceeds(o *order.Order, courierID kernel.UUID, at time.Time) ([]*Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Mode() != order.Delivery {
		return nil, fmt.Errorf("%w: %s order", ErrModeMismatch, o.Mode())
	}
	if err := o.CheckPartition(); err != nil {
		return nil, err
	}

	distributorActor, err := NewActor(DistributorActor, o.DistributorID())
	if err != nil {
		return nil, err
	}
	courierActor, err := NewActor(CourierActor, courierID)
	if err != nil {
		return nil, err
	}

	sale, err := NewOrderEntry(distributorActor, Vente, o.ProductAmount(), o.ID(),
		fmt.Sprintf("sale for order %s", o.ID()), at)
	if err != nil {
		return nil, err
	}
	fee, err := NewOrderEntry(courierActor, Credit, o.DeliveryFee(), o.ID(),
		fmt.Sprintf("delivery fee for order %s", o.ID()), at)
	if err != nil {
		return nil, err
	}

	if sale.amount+fee.amount != o.Total() {
		return nil, fmt.Errorf("%w: entries sum to %d, total is %d", order.ErrPartitionBroken, sale.amount+fee.amount, o.Total())
	}

	return []*Entry{sale, fee}, nil
}

// PickupProceeds credits the whole order total to the distributor in a single sale.
func PickupProceeds(o *order.Order, at time.Time) (*Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Mode() != order.Pickup {
		return nil, fmt.Errorf("%w: %s order", ErrModeMismatch, o.Mode())
	}

	distributorActor, err := NewActor(DistributorActor, o.DistributorID())
	if err != nil {
		return nil, err
	}
	return NewOrderEntry(distributorActor, Vente, o.Total(), o.ID(),
		fmt.Sprintf("pickup sale for order %s", o.ID()), at)
}

// Refund credits the full order total back to the client, whatever the mode.
func Refund(o *order.Order, reason string, at time.Time) (*Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	clientActor, err := NewActor(ClientActor, o.ClientID())
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("refund for order %s", o.ID())
	if reason != "" {
		description += ": " + reason
	}
	return NewOrderEntry(clientActor, Remboursement, o.Total(), o.ID(), description, at)
}

// Withdrawal debits amount from an actor whose log-derived balance covers it.
func Withdrawal(actor Actor, amount int64, history []*Entry, at time.Time) (*Entry, error) {
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}

	balance := Reconcile(history).Balance
	if amount > balance {
		return nil, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientFunds, balance, amount)
	}

	return NewEntry(kernel.NewUUID(), actor, Retrait, amount, nil, "withdrawal", at)
}
