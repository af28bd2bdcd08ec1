package seasons

import jsoniter "github.com/json-iterator/go"

// DefaultAvailable is shown when the backend cannot list seasons.
var DefaultAvailable = []int{2023, 2024}

// DefaultSelected is the season selected alongside DefaultAvailable.
const DefaultSelected = 2024

// Entry is one item of the seasons list. The backend has sent both bare
// years and {"season": year} objects; anything else is kept but skipped.
type Entry struct {
	Season int
	valid  bool
}

// UnmarshalJSON accepts either form and never fails on a well-formed value.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var year int
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &year); err == nil {
		e.Season, e.valid = year, true
		return nil
	}
	var obj struct {
		Season *int `json:"season"`
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &obj); err == nil && obj.Season != nil {
		e.Season, e.valid = *obj.Season, true
	}
	return nil
}

// Payload is the seasons endpoint body.
type Payload struct {
	Seasons []Entry `json:"seasons"`
}

// Years flattens the payload, dropping entries without a numeric season.
func (p Payload) Years() []int {
	out := make([]int, 0, len(p.Seasons))
	for _, e := range p.Seasons {
		if e.valid {
			out = append(out, e.Season)
		}
	}
	return out
}

// Driver is a driver line of the merged season history.
type Driver struct {
	Name    string  `json:"name"`
	Points  float64 `json:"points"`
	Image   string  `json:"image"`
	Wins    int     `json:"wins"`
	Podiums int     `json:"podiums"`
	Number  int     `json:"number,omitempty"`
	Extra   bool    `json:"extra,omitempty"`
}

// Team is a constructor of the merged season history.
type Team struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ShortName  string   `json:"shortName"`
	Color      string   `json:"color"`
	Points     float64  `json:"points"`
	Rank       int      `json:"rank"`
	CarImage   string   `json:"carImage"`
	Trajectory []int    `json:"trajectory"`
	Drivers    []Driver `json:"drivers"`
}

// Champion is the highest scoring driver of the merged view.
type Champion struct {
	Name   string  `json:"name"`
	Team   string  `json:"team"`
	Color  string  `json:"color"`
	Points float64 `json:"points"`
	Image  string  `json:"image"`
}

// History is the archive season overlaid with live standings.
type History struct {
	Year     int       `json:"year"`
	Title    string    `json:"title"`
	Rounds   string    `json:"rounds"`
	Live     bool      `json:"live"`
	Champion *Champion `json:"champion"`
	Teams    []Team    `json:"teams"`
}
