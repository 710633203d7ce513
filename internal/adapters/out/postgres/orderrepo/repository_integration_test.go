package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs both order projections against a
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	distributors *orderrepo.GormDistributorOrderRepository
	clients      *orderrepo.GormClientOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.DistributorOrderDTO{},
		&orderrepo.ClientOrderDTO{},
		&orderrepo.ClientOrderHistoryDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE distributor_orders, client_orders, client_order_history").Error)

	suite.distributors = orderrepo.NewGormDistributorOrderRepository(suite.db)
	suite.clients = orderrepo.NewGormClientOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDistributorAdd_RoundTripsEveryField() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)

	suite.Require().NoError(suite.distributors.Add(ctx, o))

	got, err := suite.distributors.Get(ctx, o.DistributorID(), o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(o.ClientID(), got.ClientID())
	suite.Equal(o.Address(), got.Address())
	suite.Equal(o.Items(), got.Items())
	suite.Equal(int64(5000), got.ProductAmount())
	suite.Equal(int64(1000), got.DeliveryFee())
	suite.Equal(int64(6000), got.Total())
	suite.Equal(order.Delivery, got.Mode())
	suite.Equal(order.New, got.Status())
	suite.Equal(o.ValidationCode(), got.ValidationCode())
	suite.Nil(got.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDistributorGet_ScopedToDistributor() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)
	suite.Require().NoError(suite.distributors.Add(ctx, o))

	got, err := suite.distributors.Get(ctx, kernel.NewUUID(), o.ID())

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDistributorUpdate_WritesAssignment() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)
	suite.Require().NoError(suite.distributors.Add(ctx, o))

	courierID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.Require().NoError(o.Confirm())
	suite.Require().NoError(o.AssignCourier(courierID, at))
	suite.Require().NoError(suite.distributors.Update(ctx, o))

	got, err := suite.distributors.Get(ctx, o.DistributorID(), o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InDelivery, got.Status())
	suite.Require().NotNil(got.CourierID())
	suite.True(got.CourierID().IsEqual(courierID))
	suite.Require().NotNil(got.AssignedAt())
	suite.True(got.AssignedAt().Equal(at))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDistributorUpdate_MissingOrder() {
	err := suite.distributors.Update(context.Background(), suite.newOrder(order.Delivery, 1000))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientGet_NotFound() {
	got, err := suite.clients.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientArchive_MovesOrderToHistory() {
	ctx := context.Background()
	o := suite.newOrder(order.Pickup, 0)
	suite.Require().NoError(suite.clients.Add(ctx, o))

	suite.Require().NoError(o.Confirm())
	suite.Require().NoError(o.Deliver(time.Now().UTC()))
	suite.Require().NoError(suite.clients.UpdateFulfillment(ctx, o))
	suite.Require().NoError(suite.clients.Archive(ctx, o))

	suite.assertCount(&orderrepo.ClientOrderDTO{}, 0)
	suite.assertCount(&orderrepo.ClientOrderHistoryDTO{}, 1)

	got, err := suite.clients.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
	suite.NotNil(got.PickedUpAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientArchive_IsIdempotent() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)
	suite.Require().NoError(suite.clients.Add(ctx, o))
	suite.Require().NoError(o.Cancel("out of stock", time.Now().UTC()))

	suite.Require().NoError(suite.clients.Archive(ctx, o))
	suite.Require().NoError(suite.clients.Archive(ctx, o))

	suite.assertCount(&orderrepo.ClientOrderHistoryDTO{}, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientArchive_RejectsOpenOrder() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)
	suite.Require().NoError(suite.clients.Add(ctx, o))

	err := suite.clients.Archive(ctx, o)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.assertCount(&orderrepo.ClientOrderDTO{}, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientUpdateFulfillment_ReachesArchivedOrder() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)
	suite.Require().NoError(suite.clients.Add(ctx, o))
	suite.Require().NoError(o.Cancel("client request", time.Now().UTC()))
	suite.Require().NoError(suite.clients.Archive(ctx, o))

	stored, err := suite.clients.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.clients.UpdateFulfillment(ctx, stored))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientUpdateFulfillment_RestoresMissingCode() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, 1000)
	suite.Require().NoError(suite.clients.Add(ctx, o))
	suite.Require().NoError(suite.db.Exec(
		"UPDATE client_orders SET validation_code = '' WHERE id = ?", o.ID().Bytes()).Error)

	stored, err := suite.clients.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.ValidationCode().IsZero())

	suite.Require().NoError(stored.RestoreValidationCode(o.ValidationCode()))
	suite.Require().NoError(suite.clients.UpdateFulfillment(ctx, stored))

	got, err := suite.clients.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ValidationCode(), got.ValidationCode())
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(mode order.FulfillmentMode, fee int64) *order.Order {
	item, err := order.NewLineItem("Gas bottle 12kg", "gas", 2, 2500)
	suite.Require().NoError(err)

	address := "12 Rue des Palmiers"
	if mode == order.Pickup {
		address = ""
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		address,
		[]order.LineItem{item},
		fee,
		mode,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
