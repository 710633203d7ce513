// Package ports defines the contracts between the fulfillment core and its
// infrastructure: projection stores, the ledger, live positions and notifications.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CourierRepository persists courier aggregates together with their delivery list.
type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists the courier and replaces its delivery list.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get returns errs.ObjectNotFoundError when no courier has this id.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByAccountID resolves a courier through its linked account identifier.
	GetByAccountID(ctx context.Context, accountID kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable returns couriers currently marked available.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
