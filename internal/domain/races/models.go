package races

import "github.com/aarondl/opt/omitnull"

// Session type codes used by the backend.
const (
	SessionRace           = "R"
	SessionQualifying     = "Q"
	SessionPractice1      = "FP1"
	SessionPractice2      = "FP2"
	SessionPractice3      = "FP3"
	SessionSprintQual     = "SQ"
	SessionSprintShootout = "SS"
	SessionSprint         = "S"
)

// RaceMeta is a race as described by the backend metadata endpoint.
// Any field may be missing or null; both read as unset.
type RaceMeta struct {
	Season          omitnull.Val[int]     `json:"season"`
	Round           omitnull.Val[int]     `json:"round"`
	DisplayRound    omitnull.Val[int]     `json:"display_round"`
	GrandPrixSlug   omitnull.Val[string]  `json:"grand_prix_slug"`
	DisplayName     omitnull.Val[string]  `json:"display_name"`
	CircuitName     omitnull.Val[string]  `json:"circuit_name"`
	DateStart       omitnull.Val[string]  `json:"date_start"`
	DateEnd         omitnull.Val[string]  `json:"date_end"`
	Laps            omitnull.Val[int]     `json:"laps"`
	LapCount        omitnull.Val[int]     `json:"lap_count"`
	RainProbability omitnull.Val[float64] `json:"rain_probability"`
	RainProb        omitnull.Val[float64] `json:"rainProb"`
}

// Race is the fully populated race descriptor rendered by the dashboard.
type Race struct {
	Season        int     `json:"season"`
	Round         int     `json:"round"`
	Name          string  `json:"name"`
	Circuit       string  `json:"circuit"`
	Date          string  `json:"date"`
	Image         string  `json:"image"`
	Laps          int     `json:"laps"`
	Length        string  `json:"length"`
	TrackID       string  `json:"trackId"`
	RainProb      float64 `json:"rainProb"`
	GrandPrixSlug string  `json:"grandPrixSlug"`
}

// RaceOption is a selectable entry of a season's race list.
type RaceOption struct {
	Season        int    `json:"season"`
	Round         int    `json:"round"`
	DisplayRound  int    `json:"displayRound"`
	GrandPrixSlug string `json:"grandPrixSlug"`
	Name          string `json:"name"`
}

// NewRaceOption flattens a RaceMeta for list rendering.
func NewRaceOption(m RaceMeta) RaceOption {
	round := m.Round.GetOrZero()
	return RaceOption{
		Season:        m.Season.GetOrZero(),
		Round:         round,
		DisplayRound:  m.DisplayRound.GetOr(round),
		GrandPrixSlug: m.GrandPrixSlug.GetOrZero(),
		Name:          m.DisplayName.GetOrZero(),
	}
}

// SessionMeta describes one session of a race weekend.
type SessionMeta struct {
	SessionType string `json:"session_type"`
	Name        string `json:"name"`
	SessionKey  int    `json:"session_key"`
}

// SessionsPayload wraps the sessions endpoint body.
type SessionsPayload struct {
	Sessions []SessionMeta `json:"sessions"`
}

// WeatherPayload carries every key variant the weather endpoint has used.
type WeatherPayload struct {
	Rain            omitnull.Val[float64] `json:"rain"`
	RainProbability omitnull.Val[float64] `json:"rain_probability"`
	RainProb        omitnull.Val[float64] `json:"rain_prob"`
	TrackTempC      omitnull.Val[float64] `json:"track_temp_c"`
	TrackTemp       omitnull.Val[float64] `json:"track_temp"`
	AirTempC        omitnull.Val[float64] `json:"air_temp_c"`
	AirTemp         omitnull.Val[float64] `json:"air_temp"`
	WindSpeed       omitnull.Val[float64] `json:"wind_speed"`
	WindSpeedKmh    omitnull.Val[float64] `json:"wind_speed_kmh"`
	Humidity        omitnull.Val[float64] `json:"humidity"`
	HumidityPct     omitnull.Val[float64] `json:"humidity_pct"`
}

// WeatherSummary is the normalized weather panel; nil means no data.
type WeatherSummary struct {
	Rain      *float64 `json:"rain"`
	TrackTemp *float64 `json:"trackTemp"`
	AirTemp   *float64 `json:"airTemp"`
	WindSpeed *float64 `json:"windSpeed"`
	Humidity  *float64 `json:"humidity"`
}
