package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the trimmed value of key; blank counts as unset.
func lookup(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func envOrDefault(key, defaultValue string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultValue
}

// firstEnv returns the first set value among keys, so aliases can share a default.
func firstEnv(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if val, ok := lookup(key); ok {
			return val
		}
	}
	return defaultValue
}

// durationEnvOrDefault accepts Go durations ("45s", "5m") or bare seconds ("300").
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return defaultValue
		}
		return time.Duration(secs) * time.Second
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
