package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// RejectOrderResult reports an order rejection.
type RejectOrderResult struct {
	Outcome
	OrderID kernel.UUID
	Status  order.Status
	// Refund is the amount credited back to the client.
	Refund int64
	// Account is the client's refreshed account.
	Account *ledger.Account
}

// RejectOrderCommandHandler cancels an order on the distributor's behalf and
// refunds the full total to the client, whatever the fulfillment mode.
// Only orders that are still new or confirmed can be rejected.
type RejectOrderCommandHandler struct {
	stores   Stores
	ledger   LedgerWriter
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewRejectOrderCommandHandler(
	stores Stores,
	ledgerWriter LedgerWriter,
	notifier ports.Notifier,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		stores:   stores,
		ledger:   ledgerWriter,
		notifier: notifier,
		logger:   logger.With("component", "reject_order"),
		now:      utcNow,
	}
}

func (h RejectOrderCommandHandler) Handle(
	ctx context.Context,
	cmd RejectOrderCommand,
) (result RejectOrderResult, err error) {
	if err = cmd.Validate(); err != nil {
		return RejectOrderResult{}, err
	}

	ctx, span := startSpan(ctx, "RejectOrder", cmd.OrderID())
	defer func() { finish(span, "reject_order", result.Outcome, err) }()

	result = RejectOrderResult{OrderID: cmd.OrderID()}

	o, err := h.stores.DistributorOrders.Get(ctx, cmd.DistributorID(), cmd.OrderID())
	if err != nil {
		return result, err
	}
	result.Status = o.Status()

	if o.Status().IsTerminal() {
		result.Outcome = alreadyProcessed()
		return result, nil
	}

	now := h.now()
	err = o.Cancel(cmd.Reason(), now)
	if errors.Is(err, order.ErrTransitionNotAllowed) {
		result.Outcome = rejected(ReasonStatusConflict)
		return result, nil
	}
	if err != nil {
		return result, err
	}

	refund, err := ledger.Refund(o, cmd.Reason(), now)
	if err != nil {
		return result, err
	}
	accounts, err := h.ledger.Record(ctx, now, refund)
	if err != nil {
		return result, err
	}
	result.Account = accounts[0]
	result.Refund = refund.Amount()

	err = finalizeClientCopy(ctx, h.stores.ClientOrders, o.ID(), func(clientOrder *order.Order) error {
		return clientOrder.Cancel(cmd.Reason(), now)
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
		notification(ports.RoleClient, o.ClientID(), ports.EventOrderRejected, o.ID(),
			fmt.Sprintf("Your order was rejected, %d refunded", o.Total()), map[string]any{
				"reason": cmd.Reason(),
				"refund": o.Total(),
			}),
		notification(ports.RoleDistributor, o.DistributorID(), ports.EventOrderRejected, o.ID(),
			"Order rejected", map[string]any{
				"reason": cmd.Reason(),
			}),
	)

	h.logger.InfoContext(ctx, "order rejected", "order_id", o.ID().String(), "refund", o.Total())

	return result, nil
}
