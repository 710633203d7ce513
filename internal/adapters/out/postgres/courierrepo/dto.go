// Package courierrepo persists courier aggregates: one row per courier plus
// one row per delivery entry, keyed by (courier, order).
package courierrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// CourierDTO is the database form of a courier. The score columns are NULL
// until the first scoring run.
type CourierDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID         *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name              string     `gorm:"type:varchar(255);not null"`
	Phone             string     `gorm:"type:varchar(32)"`
	Lat               float64    `gorm:"not null"`
	Lng               float64    `gorm:"not null"`
	Available         bool       `gorm:"not null;index"`
	RatingSum         int        `gorm:"not null"`
	RatingCount       int        `gorm:"not null"`
	ScoreRating       *float64
	ScoreReliability  *float64
	ScoreLoad         *float64
	ScoreCalculatedAt *time.Time
	Deliveries        []DeliveryDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// DeliveryDTO is one entry of a courier's delivery list.
type DeliveryDTO struct {
	CourierID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID     `gorm:"type:uuid;primaryKey;index"`
	ClientID           uuid.UUID     `gorm:"type:uuid;not null"`
	DistributorID      uuid.UUID     `gorm:"type:uuid;not null"`
	Address            string        `gorm:"type:text"`
	Contact            string        `gorm:"type:varchar(64)"`
	Items              []LineItemDTO `gorm:"type:jsonb;serializer:json;not null"`
	ProductAmount      int64         `gorm:"not null"`
	DeliveryFee        int64         `gorm:"not null"`
	Total              int64         `gorm:"not null"`
	Status             string        `gorm:"type:varchar(16);not null"`
	AssignedAt         time.Time     `gorm:"not null"`
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
	Reactivations      int    `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "courier_deliveries"
}

// LineItemDTO is the JSON form of an order line kept on the delivery entry.
type LineItemDTO struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// fromDomain converts a courier aggregate, deliveries included.
func fromDomain(c *courier.Courier) CourierDTO {
	courierID := c.ID().Bytes()

	var accountID *uuid.UUID
	if id := c.AccountID(); id != nil {
		raw := id.Bytes()
		accountID = &raw
	}

	dto := CourierDTO{
		ID:          courierID,
		AccountID:   accountID,
		Name:        c.Name(),
		Phone:       c.Phone(),
		Lat:         c.Location().Lat(),
		Lng:         c.Location().Lng(),
		Available:   c.IsAvailable(),
		RatingSum:   c.RatingSum(),
		RatingCount: c.RatingCount(),
	}

	if score, ok := c.Score(); ok {
		rating, reliability, load := score.RatingComponent(), score.ReliabilityComponent(), score.LoadComponent()
		calculatedAt := score.CalculatedAt()
		dto.ScoreRating = &rating
		dto.ScoreReliability = &reliability
		dto.ScoreLoad = &load
		dto.ScoreCalculatedAt = &calculatedAt
	}

	deliveries := c.Deliveries()
	dto.Deliveries = make([]DeliveryDTO, 0, len(deliveries))
	for _, d := range deliveries {
		dto.Deliveries = append(dto.Deliveries, deliveryFromDomain(courierID, d.Snapshot()))
	}

	return dto
}

func deliveryFromDomain(courierID uuid.UUID, s courier.DeliverySnapshot) DeliveryDTO {
	items := make([]LineItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, LineItemDTO{
			Name:      item.Name,
			Type:      item.Type,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return DeliveryDTO{
		CourierID:          courierID,
		OrderID:            s.OrderID.Bytes(),
		ClientID:           s.ClientID.Bytes(),
		DistributorID:      s.DistributorID.Bytes(),
		Address:            s.Address,
		Contact:            s.Contact,
		Items:              items,
		ProductAmount:      s.ProductAmount,
		DeliveryFee:        s.DeliveryFee,
		Total:              s.Total,
		Status:             s.Status.String(),
		AssignedAt:         s.AssignedAt,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
		CancelledAt:        s.CancelledAt,
		CancellationReason: s.CancellationReason,
		Reactivations:      s.Reactivations,
	}
}

// toDomain rebuilds a courier aggregate with RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var accountID *kernel.UUID
	if dto.AccountID != nil {
		aID, accountErr := kernel.UUIDFromBytes((*dto.AccountID)[:])
		if accountErr != nil {
			return nil, accountErr
		}
		accountID = &aID
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	var score *courier.Score
	if dto.ScoreCalculatedAt != nil && dto.ScoreRating != nil && dto.ScoreReliability != nil && dto.ScoreLoad != nil {
		s, scoreErr := courier.NewScore(*dto.ScoreRating, *dto.ScoreReliability, *dto.ScoreLoad, *dto.ScoreCalculatedAt)
		if scoreErr != nil {
			return nil, scoreErr
		}
		score = &s
	}

	deliveries := make([]*courier.Delivery, 0, len(dto.Deliveries))
	for _, d := range dto.Deliveries {
		delivery, deliveryErr := deliveryToDomain(d)
		if deliveryErr != nil {
			return nil, deliveryErr
		}
		deliveries = append(deliveries, delivery)
	}

	return courier.RestoreCourier(
		id,
		accountID,
		dto.Name,
		dto.Phone,
		location,
		dto.Available,
		dto.RatingSum,
		dto.RatingCount,
		deliveries,
		score,
	)
}

func deliveryToDomain(dto DeliveryDTO) (*courier.Delivery, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	distributorID, err := kernel.UUIDFromBytes(dto.DistributorID[:])
	if err != nil {
		return nil, err
	}
	status, err := courier.ParseDeliveryStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.LineItem{
			Name:      item.Name,
			Type:      item.Type,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return courier.RestoreDelivery(courier.DeliverySnapshot{
		OrderID:            orderID,
		ClientID:           clientID,
		DistributorID:      distributorID,
		Address:            dto.Address,
		Contact:            dto.Contact,
		Items:              items,
		ProductAmount:      dto.ProductAmount,
		DeliveryFee:        dto.DeliveryFee,
		Total:              dto.Total,
		Status:             status,
		AssignedAt:         dto.AssignedAt,
		StartedAt:          dto.StartedAt,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
		CancellationReason: dto.CancellationReason,
		Reactivations:      dto.Reactivations,
	})
}
