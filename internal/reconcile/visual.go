package reconcile

import (
	"strings"

	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
)

// FindDriverVisual resolves the static profile used to draw a driver.
//
// Lookup order is code, then surname substring against the driver table in
// declaration order, then the default driver renamed to name. A supplied team
// overrides both the team and the color.
func (r *Reconciler) FindDriverVisual(code, name, team string) archive.Driver {
	if code != "" {
		if d, ok := r.archive.DriverByCode(code); ok {
			return r.withTeam(d, team)
		}
	}
	if d, ok := r.DriverBySurname(name); ok {
		return r.withTeam(d, team)
	}

	d := r.defaultDriver()
	if name != "" {
		d.Name = name
	}
	if team != "" {
		d.Team = team
	}
	d.Color = r.TeamColor(team)
	return d
}

// DriverBySurname returns the first driver whose name contains the last
// token of name, case-insensitively.
func (r *Reconciler) DriverBySurname(name string) (archive.Driver, bool) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return archive.Driver{}, false
	}
	last := strings.ToLower(tokens[len(tokens)-1])
	return lo.Find(r.archive.Drivers(), func(d archive.Driver) bool {
		return strings.Contains(strings.ToLower(d.Name), last)
	})
}

func (r *Reconciler) withTeam(d archive.Driver, team string) archive.Driver {
	if team == "" {
		return d
	}
	d.Team = team
	d.Color = r.TeamColor(team)
	return d
}

func (r *Reconciler) defaultDriver() archive.Driver {
	if d, ok := r.archive.DriverByID(defaultDriverID); ok {
		return d
	}
	drivers := r.archive.Drivers()
	if len(drivers) == 0 {
		return archive.Driver{}
	}
	return drivers[0]
}
