package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
)

var weekend = []races.SessionMeta{
	{SessionType: "FP1", Name: "Practice 1", SessionKey: 1},
	{SessionType: "Q", Name: "Qualifying", SessionKey: 4},
	{SessionType: "SQ", Name: "Sprint Qualifying", SessionKey: 2},
	{SessionType: "R", Name: "Race", SessionKey: 5},
	{SessionType: "S", Name: "Sprint", SessionKey: 3},
}

func TestDefaultSessionType(t *testing.T) {
	assert.Equal(t, "R", DefaultSessionType(weekend, "Q"))
	assert.Equal(t, "Q", DefaultSessionType(weekend[:2], "R"), "last session when no race")
	assert.Equal(t, "FP1", DefaultSessionType(nil, "FP1"))
}

func TestVisibleSessionsBySeason(t *testing.T) {
	old := VisibleSessions(2022, weekend)
	types := make([]string, len(old))
	for i, s := range old {
		types[i] = s.SessionType
	}
	assert.Equal(t, []string{"Q", "R"}, types)

	assert.Equal(t, weekend, VisibleSessions(2023, weekend))
	assert.Equal(t, weekend, VisibleSessions(2025, weekend))
}

func TestSelectSeasons(t *testing.T) {
	listed, selected := SelectSeasons(nil, errors.New("boom"), 0)
	assert.Equal(t, []int{2023, 2024}, listed)
	assert.Equal(t, 2024, selected)

	_, selected = SelectSeasons(nil, errors.New("boom"), 2021)
	assert.Equal(t, 2021, selected, "a failure keeps an existing selection")

	listed, selected = SelectSeasons([]int{2022, 2023, 2025}, nil, 0)
	assert.Equal(t, []int{2022, 2023, 2025}, listed)
	assert.Equal(t, 2025, selected)

	_, selected = SelectSeasons([]int{2022, 2023}, nil, 2022)
	assert.Equal(t, 2022, selected)

	listed, selected = SelectSeasons([]int{}, nil, 0)
	assert.Equal(t, []int{2023, 2024}, listed, "an empty listing uses the defaults")
	assert.Equal(t, 2024, selected)
}
