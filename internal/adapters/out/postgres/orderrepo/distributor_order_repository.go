package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDistributorOrderRepository implements ports.DistributorOrderRepository using GORM.
type GormDistributorOrderRepository struct {
	db *gorm.DB
}

func NewGormDistributorOrderRepository(db *gorm.DB) *GormDistributorOrderRepository {
	return &GormDistributorOrderRepository{db: db}
}

// Add saves a new order to the distributor's projection.
func (r *GormDistributorOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := DistributorOrderDTO{OrderColumns: fromDomain(aggregate)}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update overwrites the fulfillment columns of an existing order.
func (r *GormDistributorOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	columns := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DistributorOrderDTO{}).
		Where("id = ? AND distributor_id = ?", columns.ID, columns.DistributorID).
		Updates(fulfillmentColumns(columns))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("distributor order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order from the given distributor's projection.
func (r *GormDistributorOrderRepository) Get(ctx context.Context, distributorID, orderID kernel.UUID) (*order.Order, error) {
	if err := errors.Join(distributorID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dto DistributorOrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND distributor_id = ?", orderID.Bytes(), distributorID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("distributor order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto.OrderColumns)
}
