package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestNewGetOpenOrdersQuery(t *testing.T) {
	_, err := queries.NewGetOpenOrdersQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, queries.GetOpenOrdersQuery{}.Validate(), queries.ErrGetOpenOrdersQueryIsNotConstructed)
}

type GetOpenOrdersQueryHandlerTestSuite struct {
	postgresSuite
	handler queries.GetOpenOrdersQueryHandler
	orders  *orderrepo.GormDistributorOrderRepository
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupTest() {
	suite.postgresSuite.SetupTest()
	suite.handler = queries.NewGetOpenOrdersQueryHandler(suite.db)
	suite.orders = orderrepo.NewGormDistributorOrderRepository(suite.db)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_OnlyOpenOrdersOfTheDistributor() {
	ctx := context.Background()
	distributorID := kernel.NewUUID()
	base := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	fresh := suite.addOrder(distributorID, base.Add(2*time.Minute), nil)
	inDelivery := suite.addOrder(distributorID, base, func(o *order.Order) {
		suite.Require().NoError(o.Confirm())
		suite.Require().NoError(o.AssignCourier(kernel.NewUUID(), base))
	})
	suite.addOrder(distributorID, base.Add(time.Minute), func(o *order.Order) {
		suite.Require().NoError(o.Cancel("no stock", base))
	})
	suite.addOrder(kernel.NewUUID(), base, nil)

	query, err := queries.NewGetOpenOrdersQuery(distributorID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(inDelivery.ID(), result[0].ID, "oldest first")
	suite.Equal(order.InDelivery, result[0].Status)
	suite.NotNil(result[0].CourierID)
	suite.Equal(fresh.ID(), result[1].ID)
	suite.Equal(order.New, result[1].Status)
	suite.Nil(result[1].CourierID)
	suite.Equal(fresh.Total(), result[1].Total)
	suite.Equal(order.Delivery, result[1].Mode)
	suite.True(result[1].CreatedAt.Equal(base.Add(2 * time.Minute)))
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	query, err := queries.NewGetOpenOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) addOrder(
	distributorID kernel.UUID,
	createdAt time.Time,
	mutate func(*order.Order),
) *order.Order {
	item, err := order.NewLineItem("Palm oil 5L", "grocery", 2, 3500)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), distributorID, "Mokolo, Yaounde",
		[]order.LineItem{item}, 800, order.Delivery, createdAt)
	suite.Require().NoError(err)
	if mutate != nil {
		mutate(o)
	}
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func TestGetOpenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOpenOrdersQueryHandlerTestSuite))
}
