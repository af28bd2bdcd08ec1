package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
)

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	a, err := archive.Default()
	require.NoError(t, err)
	return New(a)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Abu Dhabi Grand Prix":  "abu-dhabi-grand-prix",
		"  São Paulo GP ":       "s-o-paulo-gp",
		"--Monaco--":            "monaco",
		"Emilia-Romagna  Grand": "emilia-romagna-grand",
		"":                      "",
		"!!!":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "slugify(%q)", in)
	}
}

func TestSlugRoundTripReadsAsTitle(t *testing.T) {
	slug := Slugify("Abu Dhabi Grand Prix")
	require.Equal(t, "abu-dhabi-grand-prix", slug)

	pretty := PrettyGrandPrix(slug)
	assert.Equal(t, "Abu Dhabi Grand Prix", pretty)
	assert.NotEqual(t, slug, pretty)
	assert.Equal(t, slug, Slugify(pretty))
}

func TestPrettyGrandPrixUppercasesGP(t *testing.T) {
	assert.Equal(t, "Las Vegas GP", PrettyGrandPrix("las-vegas-gp"))
	assert.Equal(t, "Miami GP", PrettyGrandPrix("miami-Gp"))
	assert.Equal(t, "", PrettyGrandPrix(""))
}

func TestTeamColor(t *testing.T) {
	r := newTestReconciler(t)
	assert.Equal(t, "#3671C6", r.TeamColor("RED BULL RACING"))
	assert.Equal(t, DefaultTeamColor, r.TeamColor(""))
	assert.Equal(t, DefaultTeamColor, r.TeamColor("Brawn GP"))
}

func TestTrackImageFallsBackThroughSlug(t *testing.T) {
	r := newTestReconciler(t)
	landing := r.Archive().LandingImage()

	exact := r.TrackImage("bahrain-grand-prix")
	assert.Contains(t, exact, "bahrain")
	assert.Equal(t, exact, r.TrackImage("Bahrain Grand Prix"))
	assert.Equal(t, landing, r.TrackImage(""))
	assert.Equal(t, landing, r.TrackImage("atlantis-grand-prix"))
}

func TestTeamIconExactMatchOnly(t *testing.T) {
	r := newTestReconciler(t)
	assert.NotEmpty(t, r.TeamIcon("Ferrari"))
	assert.Empty(t, r.TeamIcon("ferrari"))
}
