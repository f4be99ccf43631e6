package eventmetrics

import (
	"context"
	"fmt"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Totals is a summary of everything an [Observer] has recorded, keyed by event name.
type Totals struct {
	Dispatches map[string]int64
	Handlers   map[string]int64
	UnknownBus int64
}

// Collect reads the current state of reader into a [Totals].
// The reader must be registered with the provider given to [New].
func Collect(ctx context.Context, reader sdkmetric.Reader) (Totals, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Totals{}, fmt.Errorf("failed to collect metrics: %w", err)
	}
	totals := Totals{
		Dispatches: map[string]int64{},
		Handlers:   map[string]int64{},
	}
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != MeterName {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, point := range sum.DataPoints {
				switch m.Name {
				case DispatchCount:
					totals.Dispatches[eventAttr(point.Attributes)] += point.Value
				case HandlerCount:
					totals.Handlers[eventAttr(point.Attributes)] += point.Value
				case UnknownBusCount:
					totals.UnknownBus += point.Value
				}
			}
		}
	}
	return totals, nil
}

func eventAttr(set attribute.Set) string {
	val, ok := set.Value("event")
	if !ok {
		return ""
	}
	return val.AsString()
}
