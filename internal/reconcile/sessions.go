package reconcile

import (
	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/seasons"
)

// fullSessionSeason is the first season with every session type published.
const fullSessionSeason = 2023

// DefaultSessionType prefers the race session, else the last listed one.
// An empty list keeps current.
func DefaultSessionType(sessions []races.SessionMeta, current string) string {
	if len(sessions) == 0 {
		return current
	}
	if race, ok := lo.Find(sessions, func(s races.SessionMeta) bool {
		return s.SessionType == races.SessionRace
	}); ok {
		return race.SessionType
	}
	return sessions[len(sessions)-1].SessionType
}

// VisibleSessions limits older seasons to qualifying and the race.
func VisibleSessions(season int, sessions []races.SessionMeta) []races.SessionMeta {
	if season >= fullSessionSeason {
		return sessions
	}
	return lo.Filter(sessions, func(s races.SessionMeta, _ int) bool {
		return s.SessionType == races.SessionQualifying || s.SessionType == races.SessionRace
	})
}

// SelectSeasons resolves the season list and selection. A failed or empty
// listing falls back to seasons.DefaultAvailable; otherwise the latest season
// is selected unless current is already set.
func SelectSeasons(listed []int, err error, current int) ([]int, int) {
	if err != nil || len(listed) == 0 {
		if current == 0 {
			current = seasons.DefaultSelected
		}
		return append([]int(nil), seasons.DefaultAvailable...), current
	}
	if current == 0 {
		current = listed[len(listed)-1]
	}
	return listed, current
}
