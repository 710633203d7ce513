package queries_test

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/distributor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockDistributorRepository struct{ mock.Mock }

func (m *MockDistributorRepository) Add(ctx context.Context, d *distributor.Distributor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDistributorRepository) Get(ctx context.Context, id kernel.UUID) (*distributor.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*distributor.Distributor), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetByAccountID(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockCourierLocator struct{ mock.Mock }

func (m *MockCourierLocator) Positions(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.GeoPoint, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]kernel.GeoPoint), args.Error(1)
}

func (m *MockCourierLocator) UpdatePosition(ctx context.Context, id kernel.UUID, position kernel.GeoPoint) error {
	return m.Called(ctx, id, position).Error(0)
}

type MockClientOrderRepository struct{ mock.Mock }

func (m *MockClientOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockClientOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockClientOrderRepository) UpdateFulfillment(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockClientOrderRepository) Archive(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockDistributorOrderRepository struct{ mock.Mock }

func (m *MockDistributorOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockDistributorOrderRepository) Get(ctx context.Context, distributorID, orderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, distributorID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockDistributorOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Get(ctx context.Context, actor ledger.Actor) (*ledger.Account, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, a *ledger.Account) error {
	return m.Called(ctx, a).Error(0)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Lock(ctx context.Context, actor ledger.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockLedgerRepository) Append(ctx context.Context, entries ...*ledger.Entry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLedgerRepository) ListByActor(ctx context.Context, actor ledger.Actor) ([]*ledger.Entry, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) ListActors(ctx context.Context) ([]ledger.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Actor), args.Error(1)
}
