package server

import (
	"log/slog"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/config"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers/backend"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers/static"
)

// selectProvider returns the raw upstream named by cfg.Provider along with
// the name used for it in logs and metrics.
func selectProvider(cfg config.Config, a *archive.Archive, logger *slog.Logger) (providers.DataProvider, string) {
	switch cfg.Provider {
	case config.ProviderBackend, "":
		return backend.NewClient(backend.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout,
		}), config.ProviderBackend
	case config.ProviderStatic:
		return static.New(a), config.ProviderStatic
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to static archive", slog.String("provider", cfg.Provider))
		}
		return static.New(a), config.ProviderStatic
	}
}
