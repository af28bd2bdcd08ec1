package reconcile

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

const (
	vcarbSeason     = 2024
	rebrandedSeason = 2025
)

var canon2024 = map[string]string{
	"rb":            "VCARB",
	"racingbulls":   "VCARB",
	"rbracing":      "VCARB",
	"rbracingteam":  "VCARB",
	"visacashapprb": "VCARB",
	"rbf1team":      "VCARB",
	"vcarb":         "VCARB",
}

var canon2025 = map[string]string{
	"redbullracing": "Red Bull Racing",
	"ferrari":       "Ferrari",
	"mercedes":      "Mercedes",
	"mclaren":       "McLaren",
	"astonmartin":   "Aston Martin",
	"rb":            "Racing Bulls",
	"rbracing":      "Racing Bulls",
	"rbracingteam":  "Racing Bulls",
	"racingbulls":   "Racing Bulls",
	"visacashapprb": "Racing Bulls",
	"rbf1team":      "Racing Bulls",
	"alpine":        "Alpine",
	"williams":      "Williams",
	"kicksauber":    "Kick Sauber",
	"sauber":        "Kick Sauber",
	"haasf1team":    "Haas F1 Team",
	"haas":          "Haas F1 Team",
}

// allowed2025 is keyed by the raw normalized name, before canonicalization.
var allowed2025 = lo.SliceToMap([]string{
	"Red Bull Racing",
	"Ferrari",
	"Mercedes",
	"McLaren",
	"Aston Martin",
	"RB",
	"RB F1 Team",
	"Visa Cash App RB",
	"Racing Bulls",
	"Alpine",
	"Williams",
	"Kick Sauber",
	"Haas F1 Team",
}, func(name string) (string, struct{}) {
	return NormalizeTeamName(name), struct{}{}
})

// NormalizeTeamName lowercases name and strips every non-alphanumeric rune.
func NormalizeTeamName(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "")
}

// TeamAllowed reports whether a raw team name may appear in season's view.
// Only seasons from 2025 on restrict the set.
func TeamAllowed(raw string, season int) bool {
	if season < rebrandedSeason {
		return true
	}
	_, ok := allowed2025[NormalizeTeamName(raw)]
	return ok
}

// CanonicalTeamName maps a raw name to the display name used in season.
// Seasons before 2024 pass the name through.
func CanonicalTeamName(raw string, season int) string {
	norm := NormalizeTeamName(raw)
	switch {
	case season >= rebrandedSeason:
		if name, ok := canon2025[norm]; ok {
			return name
		}
	case season == vcarbSeason:
		if name, ok := canon2024[norm]; ok {
			return name
		}
	}
	return raw
}

func dedupesCanonical(season int) bool {
	return season >= rebrandedSeason || season == vcarbSeason
}
