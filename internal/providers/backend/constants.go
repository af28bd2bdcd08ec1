package backend

import "time"

const (
	providerName       = "backend"
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)

const (
	pathSeasons     = "/api/meta/seasons"
	pathRaces       = "/api/meta/races"
	pathSummary     = "/api/predictions/race_win/summary"
	pathMonitor     = "/api/monitor"
	pathDrivers     = "/api/standings/drivers"
	pathConstructor = "/api/standings/constructors"
	pathTeams       = "/api/standings/teams"
	pathScenario    = "/api/predict/race_win_scenario"
)
