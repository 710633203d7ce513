package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/distributor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/logging"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	distributors      *MockDistributorRepository
	distributorOrders *MockDistributorOrderRepository
	clientOrders      *MockClientOrderRepository
	couriers          *MockCourierRepository
	notifier          *MockNotifier
}

func newFixture() *fixture {
	return &fixture{
		distributors:      new(MockDistributorRepository),
		distributorOrders: new(MockDistributorOrderRepository),
		clientOrders:      new(MockClientOrderRepository),
		couriers:          new(MockCourierRepository),
		notifier:          new(MockNotifier),
	}
}

func (f *fixture) stores() commands.Stores {
	return commands.Stores{
		Distributors:      f.distributors,
		DistributorOrders: f.distributorOrders,
		ClientOrders:      f.clientOrders,
		Couriers:          f.couriers,
	}
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.distributors.AssertExpectations(t)
	f.distributorOrders.AssertExpectations(t)
	f.clientOrders.AssertExpectations(t)
	f.couriers.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func newOrder(t *testing.T, mode order.FulfillmentMode, productAmount, fee int64) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("Rice 25kg", "grocery", 1, productAmount)
	require.NoError(t, err)
	address := "Rue 10, Dakar"
	if mode == order.Pickup {
		address = ""
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), address,
		[]order.LineItem{item}, fee, mode, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func newConfirmedOrder(t *testing.T, mode order.FulfillmentMode, productAmount, fee int64) *order.Order {
	t.Helper()
	o := newOrder(t, mode, productAmount, fee)
	require.NoError(t, o.Confirm())
	return o
}

// copyOf returns an independent projection of the same order.
func copyOf(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	c, err := order.RestoreOrder(o.Snapshot())
	require.NoError(t, err)
	return c
}

// withoutCode returns a projection stored without a validation code.
func withoutCode(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	s := o.Snapshot()
	s.ValidationCode = ""
	c, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return c
}

func newCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), nil, "Awa Diop", "+221770000000", kernel.MustNewGeoPoint(14.69, -17.44))
	require.NoError(t, err)
	return c
}

func newDistributor(t *testing.T, id kernel.UUID) *distributor.Distributor {
	t.Helper()
	d, err := distributor.NewDistributor(id, "Boutique Centrale", kernel.MustNewGeoPoint(14.70, -17.45))
	require.NoError(t, err)
	return d
}

// assigned returns the distributor copy of o assigned to c, c holding the entry.
func assigned(t *testing.T, o *order.Order, c *courier.Courier) {
	t.Helper()
	_, err := c.AssignDelivery(o, "+221770000000", time.Now().UTC())
	require.NoError(t, err)
	if o.Status() == order.New {
		require.NoError(t, o.Confirm())
	}
	require.NoError(t, o.AssignCourier(c.ID(), time.Now().UTC()))
}

var testLogger = logging.NewNop()

func actorOf(t *testing.T, actorType ledger.ActorType, id kernel.UUID) ledger.Actor {
	t.Helper()
	a, err := ledger.NewActor(actorType, id)
	require.NoError(t, err)
	return a
}

// wrongCode returns a well-formed code that differs from code.
func wrongCode(code order.ValidationCode) string {
	b := []byte(code.String())
	b[0] = '0' + (b[0]-'0'+1)%10
	return string(b)
}
