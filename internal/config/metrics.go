package config

import "strings"

// MetricsConfig controls the Prometheus listener and optional OTLP push.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics() MetricsConfig {
	endpoint, insecure := splitOTLPEndpoint(envOrDefault(envOtelEndpoint, ""), boolEnvOrDefault(envOtelInsecure, true))
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         strings.TrimPrefix(envOrDefault(envMetricsPort, defaultMetricsPort), ":"),
		OtlpEndpoint: endpoint,
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: insecure,
	}
}

// splitOTLPEndpoint reduces a collector URL to the host:port the HTTP
// exporter expects. An explicit scheme decides transport security.
func splitOTLPEndpoint(raw string, insecure bool) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "https://"):
		raw, insecure = strings.TrimPrefix(raw, "https://"), false
	case strings.HasPrefix(raw, "http://"):
		raw, insecure = strings.TrimPrefix(raw, "http://"), true
	}
	host, _, _ := strings.Cut(raw, "/")
	return host, insecure
}
