package monitor

import "github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"

// LatestSession is the most recently ingested bronze session.
type LatestSession struct {
	Season        *int    `json:"season"`
	Round         *int    `json:"round"`
	GrandPrixSlug *string `json:"grand_prix_slug,omitempty"`
	SessionCode   *string `json:"session_code,omitempty"`
	SessionName   *string `json:"session_name,omitempty"`
	DateStart     *string `json:"date_start,omitempty"`
}

// Bronze summarizes the raw ingestion layer.
type Bronze struct {
	NSessions     int            `json:"n_sessions"`
	NSeasons      int            `json:"n_seasons"`
	NResultRows   *int           `json:"n_result_rows,omitempty"`
	LatestSession *LatestSession `json:"latest_session,omitempty"`
}

// Predictions describes the predictions table for a season.
type Predictions struct {
	Season *int `json:"season,omitempty"`
	NRows  int  `json:"n_rows"`
	NRaces *int `json:"n_races,omitempty"`
}

// Payload is the pipeline health document returned by the monitor endpoint.
type Payload struct {
	Bronze      *Bronze              `json:"bronze,omitempty"`
	Predictions *Predictions         `json:"predictions,omitempty"`
	Model       *predictions.Summary `json:"model,omitempty"`
}

// Level tags a pipeline log entry.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelSuccess Level = "SUCCESS"
	LevelDebug   Level = "DEBUG"
)

// Entry is one line of the pipeline activity feed.
type Entry struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Status is the rendered pipeline panel.
type Status struct {
	Model    *predictions.Summary `json:"model"`
	HitAt1   string               `json:"hitAt1"`
	HitAt3   string               `json:"hitAt3"`
	Sessions *int                 `json:"sessions"`
	Seasons  *int                 `json:"seasons"`
	Entries  []Entry              `json:"entries"`
}
