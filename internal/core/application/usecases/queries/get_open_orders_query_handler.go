package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads the distributor projection directly.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			address,
			total,
			mode,
			status,
			courier_id,
			created_at
		FROM distributor_orders
		WHERE distributor_id = ? AND status IN (?, ?, ?)
		ORDER BY created_at, id
	`,
		query.DistributorID().Bytes(),
		order.New.String(),
		order.Confirmed.String(),
		order.InDelivery.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id, clientID uuid.UUID
		var courierID *uuid.UUID
		var mode, status string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&clientID,
			&resp.Address,
			&resp.Total,
			&mode,
			&status,
			&courierID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if courierID != nil {
			cID, courierErr := kernel.UUIDFromBytes((*courierID)[:])
			if courierErr != nil {
				return nil, courierErr
			}
			resp.CourierID = &cID
		}
		if resp.Mode, err = order.ParseFulfillmentMode(mode); err != nil {
			return nil, err
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
