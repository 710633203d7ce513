package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// handler is the shape shared by every command and query handler.
type handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type locationHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateCourierLocationCommand) error
}

// Handlers lists the use cases the API exposes.
type Handlers struct {
	ConfirmOrder     handler[commands.ConfirmOrderCommand, commands.ConfirmOrderResult]
	AssignCourier    handler[commands.AssignCourierCommand, commands.AssignResult]
	CompletePickup   handler[commands.CompletePickupCommand, commands.CompletePickupResult]
	RejectOrder      handler[commands.RejectOrderCommand, commands.RejectOrderResult]
	StartDelivery    handler[commands.StartDeliveryCommand, commands.StartDeliveryResult]
	ValidateDelivery handler[commands.ValidateDeliveryCommand, commands.ValidateDeliveryResult]
	CancelDelivery   handler[commands.CancelDeliveryCommand, commands.CancelDeliveryResult]
	UpdateLocation   locationHandler
	ResyncBalance    handler[commands.ResyncBalanceCommand, commands.ResyncBalanceResult]
	Withdraw         handler[commands.WithdrawCommand, commands.WithdrawResult]

	RankCouriers      handler[queries.RankAvailableCouriersQuery, []queries.RankedCourierResponse]
	GetValidationCode handler[queries.GetValidationCodeQuery, queries.GetValidationCodeQueryResponse]
	GetBalance        handler[queries.GetBalanceQuery, queries.GetBalanceQueryResponse]
	GetOpenOrders     handler[queries.GetOpenOrdersQuery, []queries.GetOpenOrdersQueryResponse]
	ListCouriers      handler[queries.ListCouriersQuery, []queries.ListCouriersQueryResponse]
}

// Server adapts HTTP requests to the fulfillment use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	distributors := api.Group("/distributors/:distributorId")
	distributors.GET("/orders", s.GetOpenOrders)
	distributors.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	distributors.POST("/orders/:orderId/assign", s.AssignCourier)
	distributors.POST("/orders/:orderId/pickup", s.CompletePickup)
	distributors.POST("/orders/:orderId/reject", s.RejectOrder)
	distributors.GET("/couriers/ranking", s.RankCouriers)

	api.GET("/couriers", s.ListCouriers)
	couriers := api.Group("/couriers/:courierId")
	couriers.PUT("/location", s.UpdateLocation)
	couriers.POST("/deliveries/:orderId/start", s.StartDelivery)
	couriers.POST("/deliveries/:orderId/validate", s.ValidateDelivery)
	couriers.POST("/deliveries/:orderId/cancel", s.CancelDelivery)

	api.GET("/clients/:clientId/orders/:orderId/code", s.GetValidationCode)

	ledger := api.Group("/ledger/:actorType/:actorId")
	ledger.GET("/balance", s.GetBalance)
	ledger.POST("/resync", s.ResyncBalance)
	ledger.POST("/withdrawals", s.Withdraw)
}
