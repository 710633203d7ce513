// Package queries contains read operations. Queries never change projections,
// with one exception: GetValidationCode repairs a missing code.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxRankingLimit caps the number of couriers a single ranking returns.
const MaxRankingLimit = 100

var ErrRankAvailableCouriersQueryIsNotConstructed = errors.New(
	"RankAvailableCouriersQuery must be created via NewRankAvailableCouriersQuery constructor",
)

// RankAvailableCouriersQuery asks for the best couriers around a distributor's shop.
//
// Example:
//
//	query, err := NewRankAvailableCouriersQuery(distributorID, 5)
//	if err != nil {
//	    return err
//	}
//	ranking, err := handler.Handle(ctx, query)
type RankAvailableCouriersQuery struct {
	distributorID kernel.UUID
	limit         int

	guard guard.ConstructorGuard
}

// NewRankAvailableCouriersQuery builds the query. A limit of 0 returns every
// courier in range.
func NewRankAvailableCouriersQuery(distributorID kernel.UUID, limit int) (RankAvailableCouriersQuery, error) {
	if err := distributorID.Validate(); err != nil {
		return RankAvailableCouriersQuery{}, errs.NewValueIsRequiredErrorWithCause("distributor id", err)
	}
	if limit < 0 || limit > MaxRankingLimit {
		return RankAvailableCouriersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxRankingLimit)
	}

	return RankAvailableCouriersQuery{
		distributorID: distributorID,
		limit:         limit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q RankAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrRankAvailableCouriersQueryIsNotConstructed)
}

func (q RankAvailableCouriersQuery) DistributorID() kernel.UUID { return q.distributorID }
func (q RankAvailableCouriersQuery) Limit() int                 { return q.limit }

// RankedCourierResponse is one line of the ranking, best first.
type RankedCourierResponse struct {
	CourierID        kernel.UUID
	Name             string
	Position         kernel.GeoPoint
	DistanceMeters   float64
	BaseScore        float64
	DistanceScore    float64
	TotalScore       float64
	ActiveDeliveries int
	// LivePosition is false when the stored location was used because the
	// locator had no fresh position for the courier.
	LivePosition bool
}
