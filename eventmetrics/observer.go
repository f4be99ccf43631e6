// Package eventmetrics records event bus activity as OpenTelemetry metrics.
package eventmetrics

import (
	"context"
	"github.com/saylorsolutions/nain/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"time"
)

const (
	MeterName = "github.com/saylorsolutions/nain/events"

	DispatchCount   = "nain.events.dispatches"
	HandlerCount    = "nain.events.handlers"
	DispatchLatency = "nain.events.dispatch.latency_ms"
	UnknownBusCount = "nain.events.unknown_bus"
)

// Observer is an [events.Observer] that records to OpenTelemetry instruments.
type Observer struct {
	dispatches metric.Int64Counter
	handlers   metric.Int64Counter
	latency    metric.Float64Histogram
	unknown    metric.Int64Counter
}

var _ events.Observer = (*Observer)(nil)

// New creates the instruments from provider.
// A nil provider uses the global meter provider.
func New(provider metric.MeterProvider) (*Observer, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(MeterName)

	dispatches, err := meter.Int64Counter(DispatchCount,
		metric.WithDescription("Number of events dispatched"),
	)
	if err != nil {
		return nil, err
	}
	handlers, err := meter.Int64Counter(HandlerCount,
		metric.WithDescription("Number of handler calls made for dispatched events"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(DispatchLatency,
		metric.WithDescription("Time taken for all handlers of an event to return"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	unknown, err := meter.Int64Counter(UnknownBusCount,
		metric.WithDescription("Number of operations that named a bus that doesn't exist"),
	)
	if err != nil {
		return nil, err
	}
	return &Observer{
		dispatches: dispatches,
		handlers:   handlers,
		latency:    latency,
		unknown:    unknown,
	}, nil
}

func (o *Observer) Dispatched(bus string, event string, handlers int, elapsed time.Duration) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("bus", bus),
		attribute.String("event", event),
	)
	o.dispatches.Add(ctx, 1, attrs)
	o.handlers.Add(ctx, int64(handlers), attrs)
	o.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}

func (o *Observer) UnknownBus(bus string, op string) {
	o.unknown.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("bus", bus),
		attribute.String("op", op),
	))
}
