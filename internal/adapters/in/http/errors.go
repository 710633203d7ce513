package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	// OrderID correlates an infrastructure failure with the order it hit.
	OrderID string `json:"orderId,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrPartialWrite):
		return http.StatusServiceUnavailable
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrTransitionNotAllowed),
		errors.Is(err, commands.ErrFulfillmentModeMismatch),
		errors.Is(err, order.ErrPickupOrderCannotHaveCourier):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	body := Error{Code: statusFor(err), Message: err.Error()}
	switch body.Code {
	case http.StatusInternalServerError:
		body.OrderID = failedOrderID(ctx, err)
		ctx.Logger().Errorf("%s %s (order %q): %v", ctx.Request().Method, ctx.Path(), body.OrderID, err)
		body.Message = http.StatusText(body.Code)
	case http.StatusServiceUnavailable:
		body.OrderID = failedOrderID(ctx, err)
	}
	return ctx.JSON(body.Code, body)
}

// failedOrderID prefers the order named by a partial write over the path.
func failedOrderID(ctx echo.Context, err error) string {
	var partial *commands.PartialWriteError
	if errors.As(err, &partial) {
		return partial.OrderID.String()
	}
	return ctx.Param("orderId")
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// respond writes a 200 on success and a 409 carrying the rule that refused the
// operation otherwise.
func respond(ctx echo.Context, outcome commands.Outcome, body any) error {
	if !outcome.Success {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "operation refused",
			Reason:  string(outcome.Reason),
		})
	}
	return ctx.JSON(http.StatusOK, body)
}
