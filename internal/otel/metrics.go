package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "weftctl"

// Metrics holds all OTEL metric instruments for weftctl.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Deliveries counts delivery attempts, partitioned by verb and
	// outcome via attributes.
	Deliveries metric.Int64Counter

	// ParseWarnings counts diagnostics recorded while applying config
	// default arguments.
	ParseWarnings metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Deliveries, err = meter.Int64Counter("command.deliveries",
		metric.WithDescription("Command delivery attempts partitioned by verb and outcome (delivered, failed, unsupported)"),
		metric.WithUnit("{delivery}"))
	if err != nil {
		return nil, err
	}

	m.ParseWarnings, err = meter.Int64Counter("args.warnings",
		metric.WithDescription("Diagnostics recorded while parsing config default arguments"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordDelivery records one delivery attempt with its outcome.
func (m *Metrics) RecordDelivery(ctx context.Context, verb, outcome string) {
	if m == nil {
		return
	}
	m.Deliveries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command.verb", verb),
		attribute.String("delivery.outcome", outcome),
	))
}

// RecordParseWarnings records diagnostics accumulated while applying
// config defaults.
func (m *Metrics) RecordParseWarnings(ctx context.Context, verb string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.ParseWarnings.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("command.verb", verb),
	))
}
