package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	meterName          = "f1-dashboard-service"
	otlpExportInterval = 15 * time.Second
)

// Instrument names as exported to Prometheus and OTLP.
const (
	MetricHTTPRequests       = "http_requests_total"
	MetricHTTPLatency        = "http_request_duration_ms"
	MetricProviderAttempts   = "provider_attempts_total"
	MetricProviderErrors     = "provider_errors_total"
	MetricProviderLatency    = "provider_duration_ms"
	MetricBreakerTransitions = "provider_breaker_transitions_total"
	MetricRefreshes          = "dashboard_refreshes_total"
	MetricRefreshErrors      = "dashboard_refresh_errors_total"
	MetricRefreshStaleDrops  = "dashboard_refresh_stale_drops_total"
	MetricRefreshLatency     = "dashboard_refresh_duration_ms"
	MetricPollerCycles       = "poller_cycles_total"
	MetricPollerErrors       = "poller_errors_total"
	MetricPollerLatency      = "poller_cycle_duration_ms"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup builds a meter provider that always exports to Prometheus and also
// pushes to OTLP when an endpoint is set. It returns the recorder, the
// /metrics handler and a shutdown func. Disabled telemetry yields an
// in-memory recorder with no handler.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = meterName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, err
	}
	provider := sdkmetric.NewMeterProvider(append(opts, sdkmetric.WithResource(res))...)

	rec, err := NewRecorderFor(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	return rec, promHandler, provider.Shutdown, nil
}

// NewRecorderFor returns a recorder that mirrors its counters into
// instruments created on provider.
func NewRecorderFor(provider metric.MeterProvider) (*Recorder, error) {
	inst, err := instrumentFactory(provider)
	if err != nil {
		return nil, err
	}
	return newRecorder(inst), nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(otlpExportInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx context.Context

	requests         metric.Int64Counter
	requestLatency   metric.Float64Histogram
	providerAttempts metric.Int64Counter
	providerErrors   metric.Int64Counter
	providerLatency  metric.Float64Histogram
	breakerChanges   metric.Int64Counter
	refreshes        metric.Int64Counter
	refreshErrors    metric.Int64Counter
	refreshStale     metric.Int64Counter
	refreshLatency   metric.Float64Histogram
	pollerCycles     metric.Int64Counter
	pollerErrors     metric.Int64Counter
	pollerLatency    metric.Float64Histogram
}

// instrumentSet collects the first creation failure so the constructor
// reads as a flat list.
type instrumentSet struct {
	meter metric.Meter
	errs  []error
}

func (s *instrumentSet) counter(name string) metric.Int64Counter {
	c, err := s.meter.Int64Counter(name)
	s.errs = append(s.errs, err)
	return c
}

func (s *instrumentSet) histogram(name string) metric.Float64Histogram {
	h, err := s.meter.Float64Histogram(name, metric.WithUnit("ms"))
	s.errs = append(s.errs, err)
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	s := &instrumentSet{meter: provider.Meter(meterName)}
	inst := &otelInstruments{
		ctx:              context.Background(),
		requests:         s.counter(MetricHTTPRequests),
		requestLatency:   s.histogram(MetricHTTPLatency),
		providerAttempts: s.counter(MetricProviderAttempts),
		providerErrors:   s.counter(MetricProviderErrors),
		providerLatency:  s.histogram(MetricProviderLatency),
		breakerChanges:   s.counter(MetricBreakerTransitions),
		refreshes:        s.counter(MetricRefreshes),
		refreshErrors:    s.counter(MetricRefreshErrors),
		refreshStale:     s.counter(MetricRefreshStaleDrops),
		refreshLatency:   s.histogram(MetricRefreshLatency),
		pollerCycles:     s.counter(MetricPollerCycles),
		pollerErrors:     s.counter(MetricPollerErrors),
		pollerLatency:    s.histogram(MetricPollerLatency),
	}
	if err := errors.Join(s.errs...); err != nil {
		return nil, err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatency.Record(o.ctx, ms(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider, endpoint string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrEndpoint, endpoint),
	)
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatency.Record(o.ctx, ms(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordBreakerState(provider, from, to string) {
	if o == nil {
		return
	}
	o.breakerChanges.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrFrom, from),
		attribute.String(AttrTo, to),
	))
}

func (o *otelInstruments) recordRefresh(duration time.Duration, err error, stale bool) {
	if o == nil {
		return
	}
	outcome := "applied"
	if stale {
		outcome = "stale"
		o.refreshStale.Add(o.ctx, 1)
	}
	o.refreshes.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrOutcome, outcome)))
	o.refreshLatency.Record(o.ctx, ms(duration))
	if err != nil {
		o.refreshErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.pollerCycles.Add(o.ctx, 1)
	o.pollerLatency.Record(o.ctx, ms(duration))
	if err != nil {
		o.pollerErrors.Add(o.ctx, 1)
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
