package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetValidationCodeQueryIsNotConstructed = errors.New(
	"GetValidationCodeQuery must be created via NewGetValidationCodeQuery constructor",
)

// GetValidationCodeQuery returns the code a client hands to the courier or
// shows at the counter. Only the client who owns the order may read it.
type GetValidationCodeQuery struct {
	orderID  kernel.UUID
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetValidationCodeQuery(orderID, clientID kernel.UUID) (GetValidationCodeQuery, error) {
	var orderErr, clientErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := clientID.Validate(); err != nil {
		clientErr = errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	if err := errors.Join(orderErr, clientErr); err != nil {
		return GetValidationCodeQuery{}, err
	}

	return GetValidationCodeQuery{
		orderID:  orderID,
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetValidationCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetValidationCodeQueryIsNotConstructed)
}

func (q GetValidationCodeQuery) OrderID() kernel.UUID  { return q.orderID }
func (q GetValidationCodeQuery) ClientID() kernel.UUID { return q.clientID }

type GetValidationCodeQueryResponse struct {
	OrderID kernel.UUID
	Code    string
	Status  order.Status
	Mode    order.FulfillmentMode
	// Repaired is set when the client projection had no code and one was
	// copied from the distributor projection or generated.
	Repaired bool
}
