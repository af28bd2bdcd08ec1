package logging

import "log/slog"

// Structured log keys.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSeason     = "season"
	FieldRound      = "round"
	FieldSession    = "session_type"
	FieldEndpoint   = "endpoint"
	FieldGeneration = "generation"
	FieldRefreshIdx = "refresh_index"
	FieldDurationMS = "duration_ms"
	FieldClientIP   = "client_ip"
	FieldError      = "error"
)

// Selection renders season, round and, when set, session type as top-level
// fields of the record.
func Selection(season, round int, session string) slog.Attr {
	attrs := []any{slog.Int(FieldSeason, season), slog.Int(FieldRound, round)}
	if session != "" {
		attrs = append(attrs, slog.String(FieldSession, session))
	}
	return slog.Group("", attrs...)
}

func serviceAttrs(service, version string) []slog.Attr {
	var attrs []slog.Attr
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
