// Package reconcile merges live backend payloads with the static archive into
// the view models the dashboard renders. Every function here is total: a
// missing or unmatched input resolves to a usable default.
package reconcile

import (
	"regexp"
	"strings"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
)

// DefaultTeamColor is used for any team missing from the color table.
const DefaultTeamColor = "#94a3b8"

// defaultDriverID is the archive driver used when no visual matches.
const defaultDriverID = "verstappen"

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Reconciler resolves lookups against one archive.
type Reconciler struct {
	archive *archive.Archive
}

// New returns a reconciler over the given archive.
func New(a *archive.Archive) *Reconciler {
	return &Reconciler{archive: a}
}

// Archive exposes the underlying tables.
func (r *Reconciler) Archive() *archive.Archive {
	return r.archive
}

// Slugify lowercases name and collapses non-alphanumeric runs into single hyphens.
func Slugify(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.TrimSpace(strings.ToLower(name))
	return strings.Trim(nonAlnumRuns.ReplaceAllString(lower, "-"), "-")
}

// PrettyGrandPrix turns a slug back into a title, upper-casing the token "gp".
func PrettyGrandPrix(slug string) string {
	if slug == "" {
		return ""
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if strings.EqualFold(part, "gp") {
			parts[i] = strings.ToUpper(part)
			continue
		}
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// TeamColor returns the team's color, or DefaultTeamColor.
func (r *Reconciler) TeamColor(team string) string {
	if color, ok := r.archive.TeamColor(team); ok {
		return color
	}
	return DefaultTeamColor
}

// TeamIcon returns the icon path for an exact team name.
func (r *Reconciler) TeamIcon(team string) string {
	icon, _ := r.archive.TeamIcon(team)
	return icon
}

// TrackImage resolves a track image by raw key, then by its slug, then the landing image.
func (r *Reconciler) TrackImage(key string) string {
	if key == "" {
		return r.archive.LandingImage()
	}
	if img, ok := r.archive.TrackImage(key); ok {
		return img
	}
	if img, ok := r.archive.TrackImage(Slugify(key)); ok {
		return img
	}
	return r.archive.LandingImage()
}
