package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListCouriersQueryIsNotConstructed = errors.New(
	"ListCouriersQuery must be created via NewListCouriersQuery constructor",
)

// ListCouriersQuery reads the courier roster for the back office.
//
// Example:
//
//	query := NewListCouriersQuery(true)
//	couriers, err := handler.Handle(ctx, query)
type ListCouriersQuery struct {
	onlyAvailable bool

	guard guard.ConstructorGuard
}

func NewListCouriersQuery(onlyAvailable bool) ListCouriersQuery {
	return ListCouriersQuery{onlyAvailable: onlyAvailable, guard: guard.NewConstructorGuard()}
}

func (q ListCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListCouriersQueryIsNotConstructed)
}

func (q ListCouriersQuery) OnlyAvailable() bool { return q.onlyAvailable }

type ListCouriersQueryResponse struct {
	ID               kernel.UUID
	Name             string
	Phone            string
	Location         kernel.GeoPoint
	Available        bool
	ActiveDeliveries int
	// AverageRating is nil for a courier who was never rated.
	AverageRating *float64
	// Score is nil until the first scoring run.
	Score *float64
}
