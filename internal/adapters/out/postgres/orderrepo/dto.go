// Package orderrepo persists the two order projections. Distributor and client
// copies live in separate tables and are never written in one transaction; a
// finished client order moves from client_orders to client_order_history.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderColumns is the column set shared by every order table.
type OrderColumns struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ClientID           uuid.UUID     `gorm:"type:uuid;not null;index"`
	DistributorID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	Address            string        `gorm:"type:text"`
	Items              []LineItemDTO `gorm:"type:jsonb;serializer:json;not null"`
	ProductAmount      int64         `gorm:"not null"`
	DeliveryFee        int64         `gorm:"not null"`
	Total              int64         `gorm:"not null"`
	Mode               string        `gorm:"type:varchar(16);not null"`
	Status             string        `gorm:"type:varchar(16);not null;index"`
	ValidationCode     string        `gorm:"type:varchar(6)"`
	CourierID          *uuid.UUID    `gorm:"type:uuid;index"`
	CreatedAt          time.Time     `gorm:"not null"`
	AssignedAt         *time.Time
	StartedAt          *time.Time
	DeliveredAt        *time.Time
	PickedUpAt         *time.Time
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
}

// LineItemDTO is the JSON form of an order line.
type LineItemDTO struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// DistributorOrderDTO is the distributor's copy, the authority for assignment.
type DistributorOrderDTO struct {
	OrderColumns `gorm:"embedded"`
}

func (DistributorOrderDTO) TableName() string {
	return "distributor_orders"
}

// ClientOrderDTO is the client's copy of an open order.
type ClientOrderDTO struct {
	OrderColumns `gorm:"embedded"`
}

func (ClientOrderDTO) TableName() string {
	return "client_orders"
}

// ClientOrderHistoryDTO holds the client's delivered, picked-up and cancelled orders.
type ClientOrderHistoryDTO struct {
	OrderColumns `gorm:"embedded"`
	ArchivedAt   time.Time `gorm:"not null"`
}

func (ClientOrderHistoryDTO) TableName() string {
	return "client_order_history"
}

// fromDomain converts an order aggregate to its column set.
func fromDomain(o *order.Order) OrderColumns {
	s := o.Snapshot()

	var courierID *uuid.UUID
	if s.CourierID != nil {
		raw := s.CourierID.Bytes()
		courierID = &raw
	}

	items := make([]LineItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, LineItemDTO{
			Name:      item.Name,
			Type:      item.Type,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return OrderColumns{
		ID:                 s.ID.Bytes(),
		ClientID:           s.ClientID.Bytes(),
		DistributorID:      s.DistributorID.Bytes(),
		Address:            s.Address,
		Items:              items,
		ProductAmount:      s.ProductAmount,
		DeliveryFee:        s.DeliveryFee,
		Total:              s.Total,
		Mode:               s.Mode.String(),
		Status:             s.Status.String(),
		ValidationCode:     s.ValidationCode,
		CourierID:          courierID,
		CreatedAt:          s.CreatedAt,
		AssignedAt:         s.AssignedAt,
		StartedAt:          s.StartedAt,
		DeliveredAt:        s.DeliveredAt,
		PickedUpAt:         s.PickedUpAt,
		CancelledAt:        s.CancelledAt,
		CancellationReason: s.CancellationReason,
	}
}

// fulfillmentColumns lists the columns a fulfillment step may change. Items
// and amounts are left out so a stale aggregate can never rewrite them.
func fulfillmentColumns(c OrderColumns) map[string]any {
	return map[string]any{
		"status":              c.Status,
		"validation_code":     c.ValidationCode,
		"courier_id":          c.CourierID,
		"assigned_at":         c.AssignedAt,
		"started_at":          c.StartedAt,
		"delivered_at":        c.DeliveredAt,
		"picked_up_at":        c.PickedUpAt,
		"cancelled_at":        c.CancelledAt,
		"cancellation_reason": c.CancellationReason,
	}
}

// toDomain rebuilds an order aggregate with RestoreOrder.
func toDomain(c OrderColumns) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(c.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(c.ClientID[:])
	if err != nil {
		return nil, err
	}
	distributorID, err := kernel.UUIDFromBytes(c.DistributorID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if c.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*c.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	mode, err := order.ParseFulfillmentMode(c.Mode)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(c.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, order.LineItem{
			Name:      item.Name,
			Type:      item.Type,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		ClientID:           clientID,
		DistributorID:      distributorID,
		Address:            c.Address,
		Items:              items,
		ProductAmount:      c.ProductAmount,
		DeliveryFee:        c.DeliveryFee,
		Total:              c.Total,
		Mode:               mode,
		Status:             status,
		ValidationCode:     c.ValidationCode,
		CourierID:          courierID,
		CreatedAt:          c.CreatedAt,
		AssignedAt:         c.AssignedAt,
		StartedAt:          c.StartedAt,
		DeliveredAt:        c.DeliveredAt,
		PickedUpAt:         c.PickedUpAt,
		CancelledAt:        c.CancelledAt,
		CancellationReason: c.CancellationReason,
	})
}
