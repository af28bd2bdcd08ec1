package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/f1-dashboard-service/internal/dashboard"
	"github.com/preston-bernstein/f1-dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	svc    *dashboard.Service
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token leaves the
// endpoints open.
func NewAdminHandler(svc *dashboard.Service, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		token:  strings.TrimSpace(token),
		logger: logger,
	}
}

// Refresh bumps the refresh index and re-fetches the current selection.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.svc == nil {
		writeError(w, r, http.StatusServiceUnavailable, "dashboard not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	snap, err := h.svc.Refresh(r.Context())
	status := "ok"
	if err != nil {
		if r.Context().Err() != nil {
			writeError(w, r, http.StatusServiceUnavailable, "request cancelled", logger)
			return
		}
		status = "degraded"
		logging.Warn(logger, "admin refresh completed with upstream gaps", logging.Err(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"refreshIndex": snap.RefreshIndex,
		"generation":   snap.Generation,
		"selection":    snap.Selection,
	}, logger)
	logging.Info(logger, "admin refresh done",
		slog.Uint64(logging.FieldRefreshIdx, snap.RefreshIndex),
		logging.Selection(snap.Selection.Season, snap.Selection.Round, snap.Selection.SessionType),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	got, ok := requestutil.BearerToken(r)
	return ok && subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
