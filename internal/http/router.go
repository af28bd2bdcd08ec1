package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/f1-dashboard-service/internal/http/handlers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/http/middleware"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
)

// NewRouter registers HTTP routes on a ServeMux and wraps them with request
// logging. admin may be nil to leave the admin routes unmounted.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)

	mux.HandleFunc("/api/dashboard", handler.Dashboard)
	mux.HandleFunc("/api/selection", handler.Selection)
	mux.HandleFunc("/api/seasons", handler.Seasons)
	mux.HandleFunc("/api/races", handler.Races)
	mux.HandleFunc("/api/race", handler.Race)
	mux.HandleFunc("/api/standings/drivers", handler.DriverStandings)
	mux.HandleFunc("/api/standings/constructors", handler.ConstructorStandings)
	mux.HandleFunc("/api/standings/teams", handler.TeamStandings)
	mux.HandleFunc("/api/history", handler.History)
	mux.HandleFunc("/api/pace", handler.Pace)
	mux.HandleFunc("/api/drivers/visual", handler.DriverVisual)
	mux.HandleFunc("/api/scenario", handler.Scenario)
	mux.HandleFunc("/race-data.json", handler.RaceData)

	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
	}
	return middleware.LoggingMiddleware(logger, recorder, mux)
}
