package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHTTPRequestAttributesUseSharedKeys(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	rec, err := NewRecorderFor(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.RecordHTTPRequest(http.MethodPost, "/api/selection", http.StatusBadRequest, time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var attrs attribute.Set
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == MetricHTTPRequests {
				attrs = sum.DataPoints[0].Attributes
			}
		}
	}

	want := map[attribute.Key]string{
		AttrMethod: "POST",
		AttrPath:   "/api/selection",
		AttrStatus: "400",
	}
	for key, v := range want {
		got, ok := attrs.Value(key)
		if !ok || got.Emit() != v {
			t.Fatalf("%s: expected %q, got %q", key, v, got.Emit())
		}
	}
}
