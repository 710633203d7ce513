package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClientOrderRepository implements ports.ClientOrderRepository using GORM.
// Reads fall back to the history table, so an archived order is still found.
type GormClientOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormClientOrderRepository(db *gorm.DB) *GormClientOrderRepository {
	return &GormClientOrderRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add saves a new order to the client's open list.
func (r *GormClientOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := ClientOrderDTO{OrderColumns: fromDomain(aggregate)}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves the client's copy, open or archived.
func (r *GormClientOrderRepository) Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ClientOrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", orderID.Bytes()).Error
	if err == nil {
		return toDomain(dto.OrderColumns)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var archived ClientOrderHistoryDTO
	err = r.db.WithContext(ctx).First(&archived, "id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client order", orderID.String())
		}
		return nil, err
	}

	return toDomain(archived.OrderColumns)
}

// UpdateFulfillment writes only the fulfillment columns, wherever the order
// currently lives.
func (r *GormClientOrderRepository) UpdateFulfillment(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	columns := fromDomain(aggregate)
	values := fulfillmentColumns(columns)

	result := r.db.WithContext(ctx).Model(&ClientOrderDTO{}).Where("id = ?", columns.ID).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	result = r.db.WithContext(ctx).Model(&ClientOrderHistoryDTO{}).Where("id = ?", columns.ID).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("client order", aggregate.ID().String())
	}

	return nil
}

// Archive moves a terminal order into the client's history. Archiving an
// order twice is a no-op.
func (r *GormClientOrderRepository) Archive(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.Status().IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a terminal status", aggregate.Status()),
		)
	}

	history := ClientOrderHistoryDTO{
		OrderColumns: fromDomain(aggregate),
		ArchivedAt:   r.now(),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&history).Error; err != nil {
			return err
		}
		return tx.Delete(&ClientOrderDTO{}, "id = ?", history.ID).Error
	})
}
