package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const metric_count = "csstats.count"

// MeterAPI is an API that also records every ReportCount as a gauge,
// with the report id as the "id" attribute.
type MeterAPI struct {
	API
	count metric.Int64Gauge
}

func NewMeterAPI(inner API, meter metric.Meter) (MeterAPI, error) {
	count, err := meter.Int64Gauge(
		metric_count,
		metric.WithDescription("The latest count reported by a component."),
	)
	if err != nil {
		return MeterAPI{}, fmt.Errorf("create %s gauge: %w", metric_count, err)
	}
	return MeterAPI{
		API:   inner,
		count: count,
	}, nil
}

func (m MeterAPI) ReportCount(id string, count int64) {
	m.API.ReportCount(id, count)
	m.count.Record(
		context.Background(),
		count,
		metric.WithAttributes(attribute.String("id", id)),
	)
}
