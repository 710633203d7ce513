// Package telemetry holds the Prometheus collectors and the OpenTelemetry tracer
// used by the fulfillment handlers. Exporter setup is left to the process.
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	namespace  = "fulfillment"
	tracerName = "fulfillment"
)

// Outcome labels.
const (
	OutcomeSuccess          = "success"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeRejected         = "rejected"
	OutcomeError            = "error"
)

var (
	// Operations counts handler results by operation and outcome.
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Fulfillment operations by outcome.",
	}, []string{"operation", "outcome"})

	// NotificationFailures counts notifications that could not be delivered.
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Notifications that failed to be dispatched.",
	}, []string{"event_type", "role"})

	// PartialWrites counts projection writes that failed after an earlier projection succeeded.
	PartialWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "partial_writes_total",
		Help:      "Projection writes left divergent.",
	}, []string{"projection"})

	// BalanceRepairs counts cached balances that differed from the log on resync.
	BalanceRepairs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_repairs_total",
		Help:      "Cached balances overwritten by a resync.",
	}, []string{"actor_type"})

	// HTTPRequestDuration observes API latency by route and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordOutcome increments Operations.
func RecordOutcome(operation, outcome string) {
	Operations.WithLabelValues(operation, outcome).Inc()
}

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
