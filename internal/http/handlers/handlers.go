package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/f1-dashboard-service/internal/dashboard"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/poller"
)

// Handler wires HTTP routes to the dashboard service.
type Handler struct {
	svc      *dashboard.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc *dashboard.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Dashboard returns the reconciled snapshot for the requested selection.
// Upstream failures only empty the affected panels.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	sel, ok := h.selectionFromQuery(w, r)
	if !ok {
		return
	}
	snap, err := h.svc.Dashboard(r.Context(), sel)
	if h.handleServiceError(w, r, err) {
		return
	}
	writeJSON(w, http.StatusOK, snap, h.logger)
}

type selectionRequest struct {
	Season      int    `json:"season"`
	Round       int    `json:"round"`
	SessionType string `json:"session_type"`
}

// Selection switches the current selection and re-fetches it.
func (h *Handler) Selection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	sel := dashboard.Selection{Season: req.Season, Round: req.Round, SessionType: strings.TrimSpace(req.SessionType)}
	snap, err := h.svc.Select(r.Context(), sel)
	if h.handleServiceError(w, r, err) {
		return
	}
	writeJSON(w, http.StatusOK, snap, h.logger)
}

// Seasons lists available seasons and the default selection.
func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	list, selected := h.svc.Seasons(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"seasons": list, "selected": selected}, h.logger)
}

// Races lists race options for a season.
func (h *Handler) Races(w http.ResponseWriter, r *http.Request) {
	season, _, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"races": h.svc.Races(r.Context(), season)}, h.logger)
}

// Race returns the reconciled descriptor for one race.
func (h *Handler) Race(w http.ResponseWriter, r *http.Request) {
	season, round, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Race(r.Context(), season, round), h.logger)
}

// DriverStandings returns the driver table.
func (h *Handler) DriverStandings(w http.ResponseWriter, r *http.Request) {
	season, round, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": h.svc.DriverStandings(r.Context(), season, round)}, h.logger)
}

// ConstructorStandings returns the canonicalized constructor table.
func (h *Handler) ConstructorStandings(w http.ResponseWriter, r *http.Request) {
	season, round, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": h.svc.ConstructorStandings(r.Context(), season, round)}, h.logger)
}

// TeamStandings returns team standings with their drivers.
func (h *Handler) TeamStandings(w http.ResponseWriter, r *http.Request) {
	season, round, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": h.svc.TeamStandings(r.Context(), season, round)}, h.logger)
}

// History returns the archived season merged with live standings.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	season, _, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	history, found := h.svc.History(r.Context(), season)
	if !found {
		writeError(w, r, http.StatusNotFound, "season not archived", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, history, h.logger)
}

// Pace returns finishing positions per driver.
func (h *Handler) Pace(w http.ResponseWriter, r *http.Request) {
	season, _, ok := h.seasonRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pace": h.svc.Pace(r.Context(), season)}, h.logger)
}

// DriverVisual resolves a driver's visual profile.
func (h *Handler) DriverVisual(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	q := r.URL.Query()
	code := strings.TrimSpace(q.Get("code"))
	name := strings.TrimSpace(q.Get("name"))
	if code == "" && name == "" {
		writeError(w, r, http.StatusBadRequest, "code or name is required", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Visual(code, name, strings.TrimSpace(q.Get("team"))), h.logger)
}

// Scenario runs a what-if win prediction.
func (h *Handler) Scenario(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	var in predictions.ScenarioInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	res, err := h.svc.Scenario(r.Context(), in)
	if h.handleServiceError(w, r, err) {
		return
	}
	writeJSON(w, http.StatusOK, res, h.logger)
}

// RaceData serves the scenario form catalog.
func (h *Handler) RaceData(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RaceData(), h.logger)
}

func (h *Handler) seasonRound(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return 0, 0, false
	}
	season, ok := requestutil.QueryInt(r, "season")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid season", h.logger)
		return 0, 0, false
	}
	round, ok := requestutil.QueryInt(r, "round")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid round", h.logger)
		return 0, 0, false
	}
	return season, round, true
}

func (h *Handler) selectionFromQuery(w http.ResponseWriter, r *http.Request) (dashboard.Selection, bool) {
	season, ok := requestutil.QueryInt(r, "season")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid season", h.logger)
		return dashboard.Selection{}, false
	}
	round, ok := requestutil.QueryInt(r, "round")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid round", h.logger)
		return dashboard.Selection{}, false
	}
	return dashboard.Selection{
		Season:      season,
		Round:       round,
		SessionType: strings.TrimSpace(r.URL.Query().Get("session_type")),
	}, true
}

// handleServiceError writes a response for errors the caller must see and
// reports whether it did. Partial upstream failures are only logged.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	logger := loggerFromContext(r, h.logger)
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return true
	case r.Context().Err() != nil:
		writeError(w, r, http.StatusServiceUnavailable, "request cancelled", h.logger)
		return true
	default:
		logging.Warn(logger, "dashboard served with upstream gaps", logging.Err(err))
		return false
	}
}
