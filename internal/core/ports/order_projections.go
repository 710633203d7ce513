package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ClientOrderRepository stores the client projection. Finished orders move from
// the active list to an immutable history.
type ClientOrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Get looks the order up in the active list first, then in the history.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// UpdateFulfillment writes only the fields fulfillment owns (status, courier,
	// validation code, timestamps) with a statement scoped by order id, so
	// concurrent client-side edits of other fields are not overwritten.
	UpdateFulfillment(ctx context.Context, aggregate *order.Order) error

	// Archive copies the order into the history and removes it from the active
	// list. Archiving an already archived order is a no-op.
	Archive(ctx context.Context, aggregate *order.Order) error
}

// DistributorOrderRepository stores the distributor projection.
type DistributorOrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError unless the distributor owns the order.
	Get(ctx context.Context, distributorID, orderID kernel.UUID) (*order.Order, error)

	Update(ctx context.Context, aggregate *order.Order) error
}
