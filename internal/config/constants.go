package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envAPIBaseURL      = "API_BASE_URL"
	envViteAPIBaseURL  = "VITE_API_BASE_URL"
	envAPITimeout      = "API_TIMEOUT"
	envBreakerOn       = "BREAKER_ENABLED"
	envBreakerFailures = "BREAKER_FAILURES"
	envBreakerOpen     = "BREAKER_OPEN_TIMEOUT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envDefaultSeason   = "DEFAULT_SEASON"
	envDefaultRound    = "DEFAULT_ROUND"
	envRaceDataPath    = "RACE_DATA_PATH"
	envAdminToken      = "ADMIN_TOKEN"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort            = "4000"
	defaultProvider        = ProviderBackend
	defaultAPIBaseURL      = "http://localhost:8000"
	defaultAPITimeout      = 10 * time.Second
	defaultBreakerOn       = true
	defaultBreakerFailures = 5
	defaultBreakerOpen     = 30 * time.Second
	defaultRefreshInterval = 5 * time.Minute
	defaultRound           = 1
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "f1-dashboard-service"
)

// Provider names accepted by PROVIDER.
const (
	ProviderBackend = "backend"
	ProviderStatic  = "static"
)
