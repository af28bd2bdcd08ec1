package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
)

// logCall writes one provider-scoped record. Every record carries the
// provider name and, when set, the endpoint.
func logCall(ctx context.Context, logger *slog.Logger, level slog.Level, provider, endpoint, msg string, attrs ...slog.Attr) {
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	base := make([]slog.Attr, 0, len(attrs)+2)
	base = append(base, slog.String(logging.FieldProvider, provider))
	if endpoint != "" {
		base = append(base, slog.String(logging.FieldEndpoint, endpoint))
	}
	logger.LogAttrs(ctx, level, msg, append(base, attrs...)...)
}

// callLevel picks the level for a failed call: 404s are expected for rounds
// the backend has not processed yet.
func callLevel(err error) slog.Level {
	if statusErr, ok := AsStatusError(err); ok && statusErr.NotFound() {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
