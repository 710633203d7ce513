package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CourierLocator serves live courier positions.
type CourierLocator interface {
	// Positions returns the known positions. Couriers without a live position
	// are absent from the map.
	Positions(ctx context.Context, courierIDs []kernel.UUID) (map[kernel.UUID]kernel.GeoPoint, error)

	UpdatePosition(ctx context.Context, courierID kernel.UUID, position kernel.GeoPoint) error
}
