package config

import "time"

// BackendConfig controls how we talk to the analytics backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// BreakerConfig controls the circuit breaker in front of the backend.
type BreakerConfig struct {
	Enabled     bool
	Failures    int
	OpenTimeout time.Duration
}

func loadBackend() BackendConfig {
	return BackendConfig{
		BaseURL: firstEnv(defaultAPIBaseURL, envAPIBaseURL, envViteAPIBaseURL),
		Timeout: durationEnvOrDefault(envAPITimeout, defaultAPITimeout),
		Breaker: BreakerConfig{
			Enabled:     boolEnvOrDefault(envBreakerOn, defaultBreakerOn),
			Failures:    intEnvOrDefault(envBreakerFailures, defaultBreakerFailures),
			OpenTimeout: durationEnvOrDefault(envBreakerOpen, defaultBreakerOpen),
		},
	}
}
