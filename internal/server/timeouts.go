package server

import "time"

const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second

	// minWriteTimeout covers cached reads; requests that fan out to the
	// backend get the upstream timeout plus writeSlack on top.
	minWriteTimeout = 10 * time.Second
	writeSlack      = 5 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// writeTimeoutFor returns the response deadline for a given upstream timeout.
func writeTimeoutFor(upstream time.Duration) time.Duration {
	return max(minWriteTimeout, upstream+writeSlack)
}
