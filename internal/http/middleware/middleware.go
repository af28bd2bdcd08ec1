package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/f1-dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging, request ID support, and metrics.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get("X-Request-ID"))
		w.Header().Set("X-Request-ID", reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
		)

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = ContextWithRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), ww.status, duration)

		attrs := []any{
			slog.Int(logging.FieldStatusCode, ww.status),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		}
		switch {
		case ww.status >= http.StatusInternalServerError:
			logging.Warn(logger, "request complete", attrs...)
		case isProbe(r.URL.Path):
			// Probes fire every few seconds.
			logging.Debug(logger, "request complete", attrs...)
		default:
			logging.Info(logger, "request complete", attrs...)
		}
	})
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

// ContextWithRequestID attaches id for RequestIDFromContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type requestIDKey struct{}

// knownRoutes are the paths reported as-is in metrics.
var knownRoutes = map[string]struct{}{
	"/health":                     {},
	"/ready":                      {},
	"/race-data.json":             {},
	"/api/dashboard":              {},
	"/api/selection":              {},
	"/api/seasons":                {},
	"/api/races":                  {},
	"/api/race":                   {},
	"/api/standings/drivers":      {},
	"/api/standings/constructors": {},
	"/api/standings/teams":        {},
	"/api/history":                {},
	"/api/pace":                   {},
	"/api/drivers/visual":         {},
	"/api/scenario":               {},
	"/admin/refresh":              {},
}

func isProbe(path string) bool {
	return path == "/health" || path == "/ready"
}

// normalizePath keeps metric label cardinality bounded to known routes.
func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "/other"
}
