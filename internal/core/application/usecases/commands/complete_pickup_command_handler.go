package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CompletePickupResult reports an in-store pickup validation.
type CompletePickupResult struct {
	Outcome
	OrderID   kernel.UUID
	Status    order.Status
	CodeValid bool
	// Account is the distributor's refreshed account.
	Account *ledger.Account
}

// CompletePickupCommandHandler completes an in-store pickup. No courier state
// is read or written. The distributor projection decides whether the order was
// already processed and is written last.
type CompletePickupCommandHandler struct {
	stores   Stores
	ledger   LedgerWriter
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewCompletePickupCommandHandler(
	stores Stores,
	ledgerWriter LedgerWriter,
	notifier ports.Notifier,
	logger *slog.Logger,
) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{
		stores:   stores,
		ledger:   ledgerWriter,
		notifier: notifier,
		logger:   logger.With("component", "complete_pickup"),
		now:      utcNow,
	}
}

func (h CompletePickupCommandHandler) Handle(
	ctx context.Context,
	cmd CompletePickupCommand,
) (result CompletePickupResult, err error) {
	if err = cmd.Validate(); err != nil {
		return CompletePickupResult{}, err
	}

	ctx, span := startSpan(ctx, "CompletePickup", cmd.OrderID())
	defer func() { finish(span, "complete_pickup", result.Outcome, err) }()

	result = CompletePickupResult{OrderID: cmd.OrderID()}

	o, err := h.stores.DistributorOrders.Get(ctx, cmd.DistributorID(), cmd.OrderID())
	if err != nil {
		return result, err
	}
	result.Status = o.Status()

	if o.Mode() != order.Pickup {
		return result, fmt.Errorf("%w: order %s is a %s order", ErrFulfillmentModeMismatch, o.ID(), o.Mode())
	}
	if o.Status().IsTerminal() {
		result.Outcome = alreadyProcessed()
		result.CodeValid = true
		return result, nil
	}

	if o.Status() != order.Confirmed {
		result.Outcome = rejected(ReasonStatusConflict)
		return result, nil
	}

	if !o.MatchesCode(cmd.Code()) {
		result.Outcome = rejected(ReasonInvalidCode)
		return result, nil
	}
	result.CodeValid = true

	now := h.now()
	if err = o.Deliver(now); err != nil {
		return result, err
	}

	entry, err := ledger.PickupProceeds(o, now)
	if err != nil {
		return result, err
	}
	accounts, err := h.ledger.Record(ctx, now, entry)
	if err != nil {
		return result, err
	}
	result.Account = accounts[0]

	err = finalizeClientCopy(ctx, h.stores.ClientOrders, o.ID(), func(clientOrder *order.Order) error {
		if err := alignConfirmation(clientOrder); err != nil {
			return err
		}
		return clientOrder.Deliver(now)
	})
	if err != nil {
		return result, NewPartialWriteError(o.ID(), ProjectionClient, err)
	}

	if err = h.stores.DistributorOrders.Update(ctx, o); err != nil {
		return result, NewPartialWriteError(o.ID(), ProjectionDistributor, err)
	}

	result.Status = o.Status()
	result.Outcome = succeeded()
	result.NotificationErrors = notifyAll(ctx, h.notifier, h.logger,
		notification(ports.RoleClient, o.ClientID(), ports.EventOrderPickedUp, o.ID(),
			"Your order was picked up", nil),
		notification(ports.RoleDistributor, o.DistributorID(), ports.EventOrderPickedUp, o.ID(),
			fmt.Sprintf("Pickup confirmed, %d credited", o.Total()), map[string]any{
				"amount": o.Total(),
			}),
	)

	h.logger.InfoContext(ctx, "pickup completed", "order_id", o.ID().String(), "total", o.Total())

	return result, nil
}
