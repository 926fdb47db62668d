package keyvault

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	fetchDurationMetricName = "kvsample_fetch_secret_duration"
	fetchTotalMetricName    = "kvsample_fetch_secret_total"

	kindKey    = "kind"
	successKey = "success"
)

// statsReporter records the duration and outcome of every fetch.
type statsReporter struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

func newStatsReporter(meter metric.Meter) (*statsReporter, error) {
	duration, err := meter.Float64Histogram(
		fetchDurationMetricName,
		metric.WithDescription("Distribution of how long it took to fetch the secret from Key Vault"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	total, err := meter.Int64Counter(
		fetchTotalMetricName,
		metric.WithDescription("Number of secret fetches by outcome"))
	if err != nil {
		return nil, err
	}
	return &statsReporter{duration: duration, total: total}, nil
}

// report records the duration and outcome kind of a fetch.
func (r *statsReporter) report(ctx context.Context, o Outcome, duration time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(kindKey, string(o.Kind)),
		attribute.Bool(successKey, o.Success),
	)
	r.duration.Record(ctx, duration.Seconds(), attrs)
	r.total.Add(ctx, 1, attrs)
}
