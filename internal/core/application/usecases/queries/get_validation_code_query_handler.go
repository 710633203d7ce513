package queries

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/telemetry"
)

// GetValidationCodeQueryHandler reads the code from the client projection.
//
// Records stored without a code are repaired on read: the distributor's code is
// copied when it has one, otherwise a fresh code is written to the distributor
// projection first and then to the client projection, so both agree.
type GetValidationCodeQueryHandler struct {
	clientOrders      ports.ClientOrderRepository
	distributorOrders ports.DistributorOrderRepository
	logger            *slog.Logger
}

func NewGetValidationCodeQueryHandler(
	clientOrders ports.ClientOrderRepository,
	distributorOrders ports.DistributorOrderRepository,
	logger *slog.Logger,
) GetValidationCodeQueryHandler {
	return GetValidationCodeQueryHandler{
		clientOrders:      clientOrders,
		distributorOrders: distributorOrders,
		logger:            logger.With("component", "get_validation_code"),
	}
}

func (h GetValidationCodeQueryHandler) Handle(
	ctx context.Context,
	query GetValidationCodeQuery,
) (response GetValidationCodeQueryResponse, err error) {
	if err = query.Validate(); err != nil {
		return GetValidationCodeQueryResponse{}, err
	}

	ctx, span := telemetry.StartSpan(ctx, "queries.GetValidationCode")
	defer func() { telemetry.EndSpan(span, err) }()

	clientOrder, err := h.clientOrders.Get(ctx, query.OrderID())
	if err != nil {
		return GetValidationCodeQueryResponse{}, err
	}
	// another client's order is reported as missing
	if !clientOrder.ClientID().IsEqual(query.ClientID()) {
		return GetValidationCodeQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	response = GetValidationCodeQueryResponse{
		OrderID: clientOrder.ID(),
		Status:  clientOrder.Status(),
		Mode:    clientOrder.Mode(),
	}

	if clientOrder.ValidationCode().IsZero() {
		if err = h.repair(ctx, clientOrder); err != nil {
			return GetValidationCodeQueryResponse{}, err
		}
		response.Repaired = true
	}

	response.Code = clientOrder.ValidationCode().String()
	return response, nil
}

func (h GetValidationCodeQueryHandler) repair(ctx context.Context, clientOrder *order.Order) error {
	distributorOrder, err := h.distributorOrders.Get(ctx, clientOrder.DistributorID(), clientOrder.ID())
	if err != nil {
		return err
	}

	generated, err := distributorOrder.EnsureValidationCode()
	if err != nil {
		return err
	}
	if generated {
		if err = h.distributorOrders.Update(ctx, distributorOrder); err != nil {
			return err
		}
	}

	if err = clientOrder.RestoreValidationCode(distributorOrder.ValidationCode()); err != nil {
		return err
	}
	if err = h.clientOrders.UpdateFulfillment(ctx, clientOrder); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "missing validation code repaired",
		"order_id", clientOrder.ID().String(), "generated", generated)
	return nil
}
