package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type assignRequest struct {
	CourierID string `json:"courier_id"`
	Contact   string `json:"contact"`
}

type codeRequest struct {
	Code string `json:"code"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// distributorOrder reads the distributor and order ids every order route carries.
func distributorOrder(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	distributorID, err := pathUUID(ctx, "distributorId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return distributorID, orderID, nil
}

// ConfirmOrder handles POST /api/v1/distributors/:distributorId/orders/:orderId/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	distributorID, orderID, err := distributorOrder(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(distributorID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, toOrderStatus(result.OrderID, result.Status.String(), result.Outcome))
}

// AssignCourier handles POST /api/v1/distributors/:distributorId/orders/:orderId/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	distributorID, orderID, err := distributorOrder(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req assignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "courier_id must be a UUID")
	}

	cmd, err := commands.NewAssignCourierCommand(distributorID, orderID, courierID, req.Contact)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.AssignCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, AssignmentResponse{
		OrderID:         result.OrderID.String(),
		CourierID:       result.CourierID.String(),
		AlreadyAssigned: result.AlreadyAssigned,
		IsReassignment:  result.IsReassignment,
		CodeRepaired:    result.CodeRepaired,
	})
}

// CompletePickup handles POST /api/v1/distributors/:distributorId/orders/:orderId/pickup.
func (s *Server) CompletePickup(ctx echo.Context) error {
	distributorID, orderID, err := distributorOrder(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req codeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompletePickupCommand(orderID, req.Code, distributorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CompletePickup.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, toOrderStatus(result.OrderID, result.Status.String(), result.Outcome))
}

// RejectOrder handles POST /api/v1/distributors/:distributorId/orders/:orderId/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	distributorID, orderID, err := distributorOrder(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req reasonRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, distributorID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.RejectOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, RejectionResponse{
		OrderStatusResponse: toOrderStatus(result.OrderID, result.Status.String(), result.Outcome),
		Refund:              result.Refund,
	})
}

// GetOpenOrders handles GET /api/v1/distributors/:distributorId/orders.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	distributorID, err := pathUUID(ctx, "distributorId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOpenOrdersQuery(distributorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.h.GetOpenOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOpenOrders(orders))
}

// RankCouriers handles GET /api/v1/distributors/:distributorId/couriers/ranking?limit=.
func (s *Server) RankCouriers(ctx echo.Context) error {
	distributorID, err := pathUUID(ctx, "distributorId")
	if err != nil {
		return s.fail(ctx, err)
	}
	limit, err := queryInt(ctx, "limit", 0)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewRankAvailableCouriersQuery(distributorID, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	ranking, err := s.h.RankCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRankedCouriers(ranking))
}
