package keyvault

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestStatsReporter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := newStatsReporter(mp.Meter("keyvault"))
	if err != nil {
		t.Fatalf("newStatsReporter() error = %v", err)
	}

	ctx := context.Background()
	r.report(ctx, retrieved("s3cr3t"), 10*time.Millisecond)
	r.report(ctx, retrieved("s3cr3t"), 20*time.Millisecond)
	r.report(ctx, unexpected(errors.New("boom")), 30*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	got := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			got[m.Name] = m
		}
	}

	total, ok := got[fetchTotalMetricName]
	if !ok {
		t.Fatalf("metric %s was not recorded", fetchTotalMetricName)
	}
	sum, ok := total.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %s has data %T, want metricdata.Sum[int64]", fetchTotalMetricName, total.Data)
	}
	var count int64
	for _, dp := range sum.DataPoints {
		count += dp.Value
	}
	if count != 3 {
		t.Errorf("%s = %d, want 3", fetchTotalMetricName, count)
	}
	if len(sum.DataPoints) != 2 {
		t.Errorf("%s has %d data points, want one per outcome kind", fetchTotalMetricName, len(sum.DataPoints))
	}

	if _, ok := got[fetchDurationMetricName]; !ok {
		t.Errorf("metric %s was not recorded", fetchDurationMetricName)
	}
}

func TestStatsReporterNil(t *testing.T) {
	var r *statsReporter
	// must not panic
	r.report(context.Background(), unreachable(), time.Second)
}
