package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type locationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func courierDelivery(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return courierID, orderID, nil
}

// ListCouriers handles GET /api/v1/couriers?available=.
func (s *Server) ListCouriers(ctx echo.Context) error {
	onlyAvailable, err := queryBool(ctx, "available")
	if err != nil {
		return s.fail(ctx, err)
	}

	couriers, err := s.h.ListCouriers.Handle(ctx.Request().Context(), queries.NewListCouriersQuery(onlyAvailable))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCouriers(couriers))
}

// UpdateLocation handles PUT /api/v1/couriers/:courierId/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req locationRequest
	if err = ctx.Bind(&req); err != nil || req.Lat == nil || req.Lng == nil {
		return badRequest(ctx, "lat and lng are required")
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, *req.Lat, *req.Lng)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/couriers/:courierId/deliveries/:orderId/start.
func (s *Server) StartDelivery(ctx echo.Context) error {
	courierID, orderID, err := courierDelivery(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(courierID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.StartDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, toOrderStatus(result.OrderID, "", result.Outcome))
}

// ValidateDelivery handles POST /api/v1/couriers/:courierId/deliveries/:orderId/validate.
func (s *Server) ValidateDelivery(ctx echo.Context) error {
	courierID, orderID, err := courierDelivery(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req codeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewValidateDeliveryCommand(orderID, req.Code, courierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ValidateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, toOrderStatus(result.OrderID, result.Status.String(), result.Outcome))
}

// CancelDelivery handles POST /api/v1/couriers/:courierId/deliveries/:orderId/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	courierID, orderID, err := courierDelivery(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req reasonRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelDeliveryCommand(courierID, orderID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CancelDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return respond(ctx, result.Outcome, toOrderStatus(result.OrderID, "", result.Outcome))
}

// GetValidationCode handles GET /api/v1/clients/:clientId/orders/:orderId/code.
func (s *Server) GetValidationCode(ctx echo.Context) error {
	clientID, err := pathUUID(ctx, "clientId")
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetValidationCodeQuery(orderID, clientID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.h.GetValidationCode.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ValidationCodeResponse{
		OrderID: response.OrderID.String(),
		Code:    response.Code,
		Status:  response.Status.String(),
		Mode:    response.Mode.String(),
	})
}
