package server

import (
	"log/slog"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/config"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (instrumentation + breaker).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	archive *archive.Archive
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder, a *archive.Archive) providerFactory {
	return providerFactory{logger: logger, metrics: metrics, archive: a}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base, name := selectProvider(cfg, f.archive, f.logger)
	return f.wrap(cfg, base, name)
}

// wrap instruments every call and, when enabled, puts the breaker outside
// so short-circuited calls never reach the instrumented layer.
func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider, name string) providers.DataProvider {
	p := providers.NewInstrumentedProvider(base, f.logger, f.metrics, name)
	if !cfg.Backend.Breaker.Enabled {
		return p
	}
	return providers.NewBreakerProvider(p, providers.BreakerConfig{
		Name:             name,
		FailureThreshold: uint32(max(cfg.Backend.Breaker.Failures, 0)),
		OpenTimeout:      cfg.Backend.Breaker.OpenTimeout,
	}, f.logger, f.metrics)
}
