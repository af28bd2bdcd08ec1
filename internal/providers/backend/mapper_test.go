package backend

import (
	"testing"

	"github.com/aarondl/opt/omitnull"
	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
)

func TestMapPaceKeysByDriverCode(t *testing.T) {
	got := mapPace(paceResponse{Pace: []paceEntry{
		{DriverCode: "VER", Positions: []int{1, 1, 2}},
		{DriverCode: "NOR"},
	}})
	want := map[string][]int{
		"VER": {1, 1, 2},
		"NOR": {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pace mismatch (-want +got):\n%s", diff)
	}
}

func TestMapResultsKeepsOrderAndOptionalFields(t *testing.T) {
	rows := mapResults([]predictions.SessionResultPayload{
		{Position: omitnull.From(1), DriverCode: omitnull.From("VER"), DriverName: "Max Verstappen", Points: omitnull.From(25.0)},
		{DriverName: "Logan Sargeant"},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Position == nil || *rows[0].Position != 1 || *rows[0].Points != 25 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Position != nil || rows[1].DriverCode != nil || rows[1].Points != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", rows[1])
	}
}
