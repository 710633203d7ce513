// Package distributorrepo persists distributors: the origin of every delivery.
package distributorrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/distributor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DistributorDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
	Lat  float64   `gorm:"not null"`
	Lng  float64   `gorm:"not null"`
}

func (DistributorDTO) TableName() string {
	return "distributors"
}

// GormDistributorRepository implements ports.DistributorRepository using GORM.
type GormDistributorRepository struct {
	db *gorm.DB
}

func NewGormDistributorRepository(db *gorm.DB) *GormDistributorRepository {
	return &GormDistributorRepository{db: db}
}

func (r *GormDistributorRepository) Add(ctx context.Context, aggregate *distributor.Distributor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := DistributorDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
		Lat:  aggregate.Location().Lat(),
		Lng:  aggregate.Location().Lng(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDistributorRepository) Get(ctx context.Context, id kernel.UUID) (*distributor.Distributor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DistributorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("distributor", id.String())
		}
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}
	return distributor.NewDistributor(id, dto.Name, location)
}
