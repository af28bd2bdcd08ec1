package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/f1-dashboard-service/internal/config"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard-service/internal/testutil"
)

// metricsSetupSuccess allows us to force a handler to test buildMetrics success path.
func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics server on :9999, got %s", srv.Addr())
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: config.ProviderStatic,
	}

	srv := newServerWithMetrics(cfg, nil, nil, nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: false},
		Provider: config.ProviderStatic,
	}

	srv := newServerWithMetrics(cfg, nil, nil, nil)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, reader := testutil.NewObservedRecorder(t)
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: config.ProviderStatic,
	}

	srv := newServerWithMetrics(cfg, nil, testutil.SampleProvider(), rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if _, err := srv.Dashboard().Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if rec.ProviderCalls(config.ProviderStatic) == 0 {
		t.Fatalf("expected provider calls recorded under the configured name")
	}
	if got := testutil.CounterTotal(t, reader, metrics.MetricRefreshes); got != 1 {
		t.Fatalf("expected one exported refresh, got %d", got)
	}
}
