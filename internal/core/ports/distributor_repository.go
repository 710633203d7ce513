package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/distributor"
	"fulfillment/internal/core/domain/model/kernel"
)

type DistributorRepository interface {
	Add(ctx context.Context, distributor *distributor.Distributor) error
	Get(ctx context.Context, id kernel.UUID) (*distributor.Distributor, error)
}
