package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/core/domain/model/courier"
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

// CourierRepositoryIntegrationTestSuite provides integration tests for
// GormCourierRepository using a PostgreSQL container.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}, &courierrepo.DeliveryDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE courier_deliveries, couriers").Error)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_RoundTripsCourier() {
	ctx := context.Background()
	accountID := kernel.NewUUID()
	c := suite.newCourier(&accountID)

	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(c.Name(), got.Name())
	suite.Equal(c.Phone(), got.Phone())
	suite.True(c.Location().IsEqual(got.Location()))
	suite.True(got.IsAvailable())
	suite.Require().NotNil(got.AccountID())
	suite.True(got.AccountID().IsEqual(accountID))
	suite.Empty(got.Deliveries())

	_, scored := got.Score()
	suite.False(scored)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NotFound() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetByAccountID() {
	ctx := context.Background()
	accountID := kernel.NewUUID()
	c := suite.newCourier(&accountID)
	suite.Require().NoError(suite.repository.Add(ctx, c))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newCourier(nil)))

	got, err := suite.repository.GetByAccountID(ctx, accountID)
	suite.Require().NoError(err)
	suite.Equal(c.ID(), got.ID())

	_, err = suite.repository.GetByAccountID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsDeliveryLifecycle() {
	ctx := context.Background()
	c := suite.newCourier(nil)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	o := suite.newOrder()
	at := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	outcome, err := c.AssignDelivery(o, "+237600000000", at)
	suite.Require().NoError(err)
	suite.Equal(courier.AssignmentCreated, outcome)
	suite.Require().NoError(suite.repository.Update(ctx, c))

	stored, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	d, found := stored.FindDelivery(o.ID())
	suite.Require().True(found)
	suite.Equal(courier.DeliveryPending, d.Status())
	suite.True(d.AssignedAt().Equal(at))
	suite.Equal(o.Items(), d.Items())
	suite.Equal(o.Total(), d.Total())

	suite.Require().NoError(stored.StartDelivery(o.ID(), at.Add(time.Minute)))
	suite.Require().NoError(stored.CompleteDelivery(o.ID(), at.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, stored))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	d, found = got.FindDelivery(o.ID())
	suite.Require().True(found)
	suite.Equal(courier.DeliveryCompleted, d.Status())
	suite.NotNil(d.CompletedAt())
	suite.Equal(1, got.Stats().Completed)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_RemovedDeliveryIsDeleted() {
	ctx := context.Background()
	c := suite.newCourier(nil)
	first, second := suite.newOrder(), suite.newOrder()
	now := time.Now().UTC()
	_, err := c.AssignDelivery(first, "", now)
	suite.Require().NoError(err)
	_, err = c.AssignDelivery(second, "", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	suite.True(c.RemoveDelivery(first.ID()))
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Len(got.Deliveries(), 1)
	_, found := got.FindDelivery(first.ID())
	suite.False(found)

	suite.True(got.RemoveDelivery(second.ID()))
	suite.Require().NoError(suite.repository.Update(ctx, got))

	var count int64
	suite.Require().NoError(suite.db.Model(&courierrepo.DeliveryDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsScoreAndAvailability() {
	ctx := context.Background()
	c := suite.newCourier(nil)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	calculatedAt := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	score, err := courier.NewScore(24, 25, 10, calculatedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(c.SetScore(score))
	suite.Require().NoError(c.AddRating(4))
	c.SetAvailable(false)
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.False(got.IsAvailable())
	suite.Equal(4, got.RatingSum())
	suite.Equal(1, got.RatingCount())

	stored, ok := got.Score()
	suite.Require().True(ok)
	suite.InDelta(59.0, stored.Overall(), 1e-9)
	suite.True(stored.CalculatedAt().Equal(calculatedAt))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_MissingCourier() {
	err := suite.repository.Update(context.Background(), suite.newCourier(nil))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllAvailable_SkipsUnavailable() {
	ctx := context.Background()
	available := suite.newCourier(nil)
	away := suite.newCourier(nil)
	away.SetAvailable(false)
	suite.Require().NoError(suite.repository.Add(ctx, available))
	suite.Require().NoError(suite.repository.Add(ctx, away))

	got, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(available.ID(), got[0].ID())

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *CourierRepositoryIntegrationTestSuite) newCourier(accountID *kernel.UUID) *courier.Courier {
	c, err := courier.NewCourier(
		kernel.NewUUID(),
		accountID,
		"Awa Ndiaye",
		"+221770000000",
		kernel.MustNewGeoPoint(3.8480, 11.5021),
	)
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewLineItem("Gas bottle 6kg", "gas", 1, 4000)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Bastos, Yaounde",
		[]order.LineItem{item},
		500,
		order.Delivery,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return o
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
