package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery lists a distributor's orders that are not yet delivered
// or cancelled, oldest first.
type GetOpenOrdersQuery struct {
	distributorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOpenOrdersQuery(distributorID kernel.UUID) (GetOpenOrdersQuery, error) {
	if err := distributorID.Validate(); err != nil {
		return GetOpenOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("distributor id", err)
	}
	return GetOpenOrdersQuery{distributorID: distributorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

func (q GetOpenOrdersQuery) DistributorID() kernel.UUID { return q.distributorID }

type GetOpenOrdersQueryResponse struct {
	ID        kernel.UUID
	ClientID  kernel.UUID
	Address   string
	Total     int64
	Mode      order.FulfillmentMode
	Status    order.Status
	CourierID *kernel.UUID
	CreatedAt time.Time
}
