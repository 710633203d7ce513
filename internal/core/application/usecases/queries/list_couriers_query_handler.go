package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCouriersQueryHandler reads couriers straight from the database, sorted by
// name, with their active delivery count computed in SQL.
type ListCouriersQueryHandler struct {
	db *gorm.DB
}

func NewListCouriersQueryHandler(db *gorm.DB) ListCouriersQueryHandler {
	return ListCouriersQueryHandler{db: db}
}

func (h ListCouriersQueryHandler) Handle(
	ctx context.Context,
	query ListCouriersQuery,
) ([]ListCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]ListCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.phone,
			c.lat,
			c.lng,
			c.available,
			c.rating_sum,
			c.rating_count,
			c.score_rating + c.score_reliability + c.score_load AS score,
			COUNT(d.order_id) AS active_deliveries
		FROM couriers c
		LEFT JOIN courier_deliveries d
			ON d.courier_id = c.id AND d.status IN (?, ?)
		WHERE (? = FALSE OR c.available)
		GROUP BY c.id
		ORDER BY c.name, c.id
	`,
		courier.DeliveryPending.String(),
		courier.DeliveryInProgress.String(),
		query.OnlyAvailable(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListCouriersQueryResponse
		var id uuid.UUID
		var lat, lng float64
		var ratingSum, ratingCount int

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&lat,
			&lng,
			&resp.Available,
			&ratingSum,
			&ratingCount,
			&resp.Score,
			&resp.ActiveDeliveries,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = courierID

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = location

		if ratingCount > 0 {
			avg := float64(ratingSum) / float64(ratingCount)
			resp.AverageRating = &avg
		}

		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
