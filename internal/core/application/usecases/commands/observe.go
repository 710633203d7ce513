package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func startSpan(ctx context.Context, operation string, orderID kernel.UUID) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, "commands."+operation, attribute.String("order_id", orderID.String()))
}

// finish ends the span and counts the outcome of one handler call.
func finish(span trace.Span, operation string, outcome Outcome, err error) {
	var partial *PartialWriteError
	if errors.As(err, &partial) {
		telemetry.PartialWrites.WithLabelValues(partial.Projection).Inc()
	}

	label := telemetry.OutcomeSuccess
	switch {
	case err != nil:
		label = telemetry.OutcomeError
	case outcome.AlreadyProcessed:
		label = telemetry.OutcomeAlreadyProcessed
	case !outcome.Success:
		label = telemetry.OutcomeRejected
	}

	span.SetAttributes(
		attribute.String("outcome", label),
		attribute.String("reason", string(outcome.Reason)),
	)
	telemetry.RecordOutcome(operation, label)
	telemetry.EndSpan(span, err)
}
