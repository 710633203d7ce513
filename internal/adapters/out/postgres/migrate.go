package postgres

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/distributorrepo"
	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service writes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&distributorrepo.DistributorDTO{},
		&orderrepo.DistributorOrderDTO{},
		&orderrepo.ClientOrderDTO{},
		&orderrepo.ClientOrderHistoryDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.DeliveryDTO{},
		&ledgerrepo.EntryDTO{},
		&ledgerrepo.AccountDTO{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
