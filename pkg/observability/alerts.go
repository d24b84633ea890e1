package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AlertCounter counts blood-sugar readings outside the normal range.
type AlertCounter struct {
	counter metric.Int64Counter
}

// NewAlertCounter registers glycare_blood_sugar_alerts_total on the global
// meter provider.
func NewAlertCounter() (*AlertCounter, error) {
	c, err := otel.Meter(tracerName).Int64Counter(
		"glycare_blood_sugar_alerts_total",
		metric.WithDescription("Blood-sugar measurements recorded outside 70-180 mg/dL"),
		metric.WithUnit("{measurement}"),
	)
	if err != nil {
		return nil, err
	}
	return &AlertCounter{counter: c}, nil
}

// Record adds one alert in the given direction
// ("low" or "high"). A nil counter is a no-op.
func (a *AlertCounter) Record(ctx context.Context, direction string) {
	if a == nil {
		return
	}
	a.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))
}
