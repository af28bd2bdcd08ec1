package archive

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed archive.yaml
var embedded []byte

// ErrEmptyArchive is returned when a document carries no drivers or seasons.
var ErrEmptyArchive = errors.New("archive: no drivers or seasons defined")

// Driver is a static driver profile and its visual assets.
type Driver struct {
	ID          string  `yaml:"id" json:"id"`
	Code        string  `yaml:"code" json:"code,omitempty"`
	Name        string  `yaml:"name" json:"name"`
	Team        string  `yaml:"team" json:"team"`
	Number      int     `yaml:"number" json:"number"`
	Color       string  `yaml:"color" json:"color"`
	Points      float64 `yaml:"points" json:"points"`
	Country     string  `yaml:"country" json:"country"`
	Image       string  `yaml:"image" json:"image"`
	CareerWins  int     `yaml:"careerWins" json:"careerWins"`
	Titles      int     `yaml:"titles" json:"titles"`
	Poles       int     `yaml:"poles" json:"poles"`
	Podiums     int     `yaml:"podiums" json:"podiums"`
	FastestLaps int     `yaml:"fastestLaps" json:"fastestLaps"`
	GrandPrix   int     `yaml:"grandPrix" json:"grandPrix"`
}

// Team is an entry of the current constructor list.
type Team struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	FullTeamName string   `yaml:"fullTeamName" json:"fullTeamName"`
	Points       float64  `yaml:"points" json:"points"`
	Color        string   `yaml:"color" json:"color"`
	Base         string   `yaml:"base" json:"base"`
	Chief        string   `yaml:"chief" json:"chief"`
	PowerUnit    string   `yaml:"powerUnit" json:"powerUnit"`
	Titles       int      `yaml:"titles" json:"titles"`
	Drivers      []string `yaml:"drivers" json:"drivers"`
	IsFuture     bool     `yaml:"isFuture" json:"isFuture,omitempty"`
}

// SeasonDriver is a driver line inside a historical season team.
type SeasonDriver struct {
	Name    string  `yaml:"name" json:"name"`
	Points  float64 `yaml:"points" json:"points"`
	Image   string  `yaml:"image" json:"image"`
	Wins    int     `yaml:"wins" json:"wins"`
	Podiums int     `yaml:"podiums" json:"podiums"`
	Number  int     `yaml:"number" json:"number,omitempty"`
}

// SeasonTeam is a constructor's final classification for one season.
type SeasonTeam struct {
	ID        string         `yaml:"id" json:"id"`
	Name      string         `yaml:"name" json:"name"`
	ShortName string         `yaml:"shortName" json:"shortName"`
	Color     string         `yaml:"color" json:"color"`
	Points    float64        `yaml:"points" json:"points"`
	Rank      int            `yaml:"rank" json:"rank"`
	CarImage  string         `yaml:"carImage" json:"carImage"`
	History   []int          `yaml:"history" json:"history,omitempty"`
	Drivers   []SeasonDriver `yaml:"drivers" json:"drivers"`
}

// Race is one entry of a static season calendar.
type Race struct {
	Round         int     `yaml:"round" json:"round"`
	Name          string  `yaml:"name" json:"name"`
	Circuit       string  `yaml:"circuit" json:"circuit"`
	Date          string  `yaml:"date" json:"date"`
	Image         string  `yaml:"image" json:"image"`
	Laps          int     `yaml:"laps" json:"laps"`
	Length        string  `yaml:"length" json:"length"`
	TrackID       string  `yaml:"trackId" json:"trackId"`
	RainProb      float64 `yaml:"rainProb" json:"rainProb"`
	GrandPrixSlug string  `yaml:"grandPrixSlug" json:"grandPrixSlug"`
}

// Season bundles the archived classification and calendar for one year.
type Season struct {
	Year          int          `yaml:"year" json:"year"`
	Title         string       `yaml:"title" json:"title"`
	Rounds        string       `yaml:"rounds" json:"rounds"`
	Champion      string       `yaml:"champion" json:"champion"`
	ChampionTeam  string       `yaml:"championTeam" json:"championTeam"`
	ChampionColor string       `yaml:"championColor" json:"championColor"`
	Teams         []SeasonTeam `yaml:"teams" json:"teams"`
	Races         []Race       `yaml:"races" json:"races"`
}

type namedValue struct {
	name  string
	value string
}

type document struct {
	LandingImage string `yaml:"landingImage"`
	TrackImages  []struct {
		Slug  string `yaml:"slug"`
		Image string `yaml:"image"`
	} `yaml:"trackImages"`
	TeamColors []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
	} `yaml:"teamColors"`
	TeamIcons []struct {
		Name string `yaml:"name"`
		Icon string `yaml:"icon"`
	} `yaml:"teamIcons"`
	Drivers []Driver `yaml:"drivers"`
	Teams   []Team   `yaml:"teams"`
	Seasons []Season `yaml:"seasons"`
}

// Archive holds the immutable lookup tables. All accessors return copies.
type Archive struct {
	landingImage  string
	trackImages   map[string]string
	teamColors    []namedValue
	teamIcons     map[string]string
	drivers       []Driver
	driversByCode map[string]int
	teams         []Team
	seasons       map[int]Season
	years         []int
}

var loadDefault = sync.OnceValues(func() (*Archive, error) {
	return Parse(embedded)
})

// Default returns the archive compiled into the binary, parsed once per process.
func Default() (*Archive, error) {
	return loadDefault()
}

// MustDefault is Default for callers that cannot proceed without the archive.
func MustDefault() *Archive {
	a, err := Default()
	if err != nil {
		panic(err)
	}
	return a
}

// Parse decodes an archive document.
func Parse(raw []byte) (*Archive, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("archive: decode: %w", err)
	}
	if len(doc.Drivers) == 0 || len(doc.Seasons) == 0 {
		return nil, ErrEmptyArchive
	}

	a := &Archive{
		landingImage:  doc.LandingImage,
		trackImages:   make(map[string]string, len(doc.TrackImages)),
		teamColors:    make([]namedValue, 0, len(doc.TeamColors)),
		teamIcons:     make(map[string]string, len(doc.TeamIcons)),
		drivers:       doc.Drivers,
		driversByCode: make(map[string]int, len(doc.Drivers)),
		teams:         doc.Teams,
		seasons:       make(map[int]Season, len(doc.Seasons)),
	}
	for _, ti := range doc.TrackImages {
		a.trackImages[ti.Slug] = ti.Image
	}
	for _, tc := range doc.TeamColors {
		a.teamColors = append(a.teamColors, namedValue{name: tc.Name, value: tc.Color})
	}
	for _, ic := range doc.TeamIcons {
		a.teamIcons[ic.Name] = ic.Icon
	}
	for i, d := range doc.Drivers {
		if d.Code == "" {
			continue
		}
		code := strings.ToUpper(d.Code)
		if _, dup := a.driversByCode[code]; dup {
			return nil, fmt.Errorf("archive: duplicate driver code %q", code)
		}
		a.driversByCode[code] = i
	}
	for _, s := range doc.Seasons {
		if _, dup := a.seasons[s.Year]; dup {
			return nil, fmt.Errorf("archive: duplicate season %d", s.Year)
		}
		a.seasons[s.Year] = s
		a.years = append(a.years, s.Year)
	}
	sort.Ints(a.years)
	return a, nil
}

// LandingImage is the generic image used when no track image resolves.
func (a *Archive) LandingImage() string {
	return a.landingImage
}

// TrackImage looks up the image for an exact slug key.
func (a *Archive) TrackImage(slug string) (string, bool) {
	img, ok := a.trackImages[slug]
	return img, ok
}

// TeamColor resolves a team's color by case-insensitive name, first table entry wins.
func (a *Archive) TeamColor(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, tc := range a.teamColors {
		if strings.EqualFold(tc.name, name) {
			return tc.value, true
		}
	}
	return "", false
}

// TeamIcon looks up a team icon path by exact name.
func (a *Archive) TeamIcon(name string) (string, bool) {
	icon, ok := a.teamIcons[name]
	return icon, ok
}

// Drivers returns the static driver table in declaration order.
func (a *Archive) Drivers() []Driver {
	return slices.Clone(a.drivers)
}

// DriverByCode finds a driver by three-letter code, case-insensitively.
func (a *Archive) DriverByCode(code string) (Driver, bool) {
	idx, ok := a.driversByCode[strings.ToUpper(code)]
	if !ok {
		return Driver{}, false
	}
	return a.drivers[idx], true
}

// DriverByID finds a driver by archive id (e.g. "verstappen").
func (a *Archive) DriverByID(id string) (Driver, bool) {
	for _, d := range a.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}

// Teams returns the current constructor list.
func (a *Archive) Teams() []Team {
	out := make([]Team, len(a.teams))
	for i, t := range a.teams {
		t.Drivers = slices.Clone(t.Drivers)
		out[i] = t
	}
	return out
}

// Years lists archived seasons in ascending order.
func (a *Archive) Years() []int {
	return slices.Clone(a.years)
}

// Season returns a deep copy of the archived season.
func (a *Archive) Season(year int) (Season, bool) {
	s, ok := a.seasons[year]
	if !ok {
		return Season{}, false
	}
	return cloneSeason(s), true
}

// Calendar returns the static race list for a season.
func (a *Archive) Calendar(year int) ([]Race, bool) {
	s, ok := a.seasons[year]
	if !ok || len(s.Races) == 0 {
		return nil, false
	}
	return slices.Clone(s.Races), true
}

func cloneSeason(s Season) Season {
	teams := make([]SeasonTeam, len(s.Teams))
	for i, t := range s.Teams {
		t.History = slices.Clone(t.History)
		t.Drivers = slices.Clone(t.Drivers)
		teams[i] = t
	}
	s.Teams = teams
	s.Races = slices.Clone(s.Races)
	return s
}
