package standings

import "github.com/aarondl/opt/omitnull"

// DriverStanding is a row of the backend driver standings.
type DriverStanding struct {
	Season     omitnull.Val[int]     `json:"season"`
	Position   omitnull.Val[int]     `json:"position"`
	DriverCode omitnull.Val[string]  `json:"driver_code"`
	DriverName string                `json:"driver_name"`
	TeamName   string                `json:"team_name"`
	Points     omitnull.Val[float64] `json:"points"`
	Wins       omitnull.Val[int]     `json:"wins"`
	Podiums    omitnull.Val[int]     `json:"podiums"`
}

// ConstructorStanding is a row of the backend constructor standings.
type ConstructorStanding struct {
	Season   omitnull.Val[int]     `json:"season"`
	Position omitnull.Val[int]     `json:"position"`
	TeamName string                `json:"team_name"`
	Points   omitnull.Val[float64] `json:"points"`
}

// TeamStandingDriver is one driver's contribution to a team standing.
type TeamStandingDriver struct {
	DriverCode string  `json:"driver_code"`
	DriverName string  `json:"driver_name"`
	Points     float64 `json:"points"`
	Races      int     `json:"races"`
}

// TeamStanding is a constructor standing with a per-driver breakdown.
type TeamStanding struct {
	Position int                  `json:"position"`
	TeamName string               `json:"team_name"`
	Points   float64              `json:"points"`
	Drivers  []TeamStandingDriver `json:"drivers"`
}

// DriverRow is a rendered driver standings line.
type DriverRow struct {
	Position   int     `json:"position"`
	DriverCode string  `json:"driverCode"`
	DriverName string  `json:"driverName"`
	TeamName   string  `json:"teamName"`
	Points     float64 `json:"points"`
	Wins       int     `json:"wins"`
	Podiums    int     `json:"podiums"`
	Color      string  `json:"color"`
	Image      string  `json:"image"`
	Rank       int     `json:"rank"`
}

// ConstructorRow is a rendered constructor standings line with its canonical name.
type ConstructorRow struct {
	Position int     `json:"position"`
	TeamName string  `json:"teamName"`
	Points   float64 `json:"points"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon,omitempty"`
}
