package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArchiveLoadsAllSeasons(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []int{2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025}, a.Years())
	assert.NotEmpty(t, a.LandingImage())

	again := MustDefault()
	assert.Same(t, a, again, "archive should be parsed once per process")
}

func TestDriverTableKeepsDeclarationOrder(t *testing.T) {
	drivers := MustDefault().Drivers()
	require.Len(t, drivers, 25)
	assert.Equal(t, "verstappen", drivers[0].ID)
	assert.Equal(t, "zhou", drivers[len(drivers)-1].ID)
}

func TestDriverByCodeIsCaseInsensitive(t *testing.T) {
	a := MustDefault()

	ver, ok := a.DriverByCode("ver")
	require.True(t, ok)
	assert.Equal(t, "Max Verstappen", ver.Name)
	assert.Contains(t, ver.Image, "maxver01")

	_, ok = a.DriverByCode("MAG")
	assert.False(t, ok, "magnussen has no code in the lookup table")
}

func TestTeamColorMatchesCaseInsensitively(t *testing.T) {
	a := MustDefault()

	color, ok := a.TeamColor("red bull racing")
	require.True(t, ok)
	assert.Equal(t, "#3671C6", color)

	_, ok = a.TeamColor("")
	assert.False(t, ok)
	_, ok = a.TeamColor("Brawn GP")
	assert.False(t, ok)
}

func TestCalendarFor2025StartsInBahrain(t *testing.T) {
	races, ok := MustDefault().Calendar(2025)
	require.True(t, ok)
	require.NotEmpty(t, races)

	first := races[0]
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, "Bahrain Grand Prix", first.Name)
	assert.Equal(t, 57, first.Laps)
	assert.Equal(t, "bahrain-grand-prix", first.GrandPrixSlug)

	_, ok = MustDefault().Calendar(1999)
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	a := MustDefault()

	drivers := a.Drivers()
	drivers[0].Name = "mutated"
	assert.Equal(t, "Max Verstappen", a.Drivers()[0].Name)

	season, ok := a.Season(2023)
	require.True(t, ok)
	season.Teams[0].Drivers[0].Points = -1
	fresh, _ := a.Season(2023)
	assert.NotEqual(t, float64(-1), fresh.Teams[0].Drivers[0].Points)

	teams := a.Teams()
	teams[0].Drivers[0] = "nobody"
	assert.NotEqual(t, "nobody", a.Teams()[0].Drivers[0])
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse([]byte("landingImage: x\n"))
	assert.ErrorIs(t, err, ErrEmptyArchive)

	_, err = Parse([]byte("drivers: [\n"))
	assert.Error(t, err)
}

func TestParseRejectsDuplicateCodes(t *testing.T) {
	doc := `
drivers:
  - id: a
    code: AAA
    name: A
  - id: b
    code: aaa
    name: B
seasons:
  - year: 2020
`
	_, err := Parse([]byte(doc))
	assert.ErrorContains(t, err, "duplicate driver code")
}
