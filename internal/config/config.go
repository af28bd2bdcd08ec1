package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	RefreshInterval time.Duration
	Backend         BackendConfig
	Dashboard       DashboardConfig
	AdminToken      string
	Log             LogConfig
	Metrics         MetricsConfig
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables win over it.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Backend:         loadBackend(),
		Dashboard:       loadDashboard(),
		AdminToken:      envOrDefault(envAdminToken, ""),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}
