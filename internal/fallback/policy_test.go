package fallback

import (
	"encoding/json"
	"testing"

	"github.com/aarondl/opt/omitnull"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Primary   omitnull.Val[int] `json:"primary"`
	Secondary omitnull.Val[int] `json:"secondary"`
	Label     string            `json:"label"`
	Backup    *int              `json:"backup"`
}

var lapsPolicy = NewPolicy("laps",
	Field("primary", func(s sample) omitnull.Val[int] { return s.Primary }),
	Field("secondary", func(s sample) omitnull.Val[int] { return s.Secondary }),
	Pointer("backup", func(s sample) *int { return s.Backup }),
)

func decode(t *testing.T, raw string) sample {
	t.Helper()
	var s sample
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return s
}

func TestPolicyFirstMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     int
		wantStep string
		wantOK   bool
	}{
		{name: "primary present", raw: `{"primary":57,"secondary":3}`, want: 57, wantStep: "primary", wantOK: true},
		{name: "primary null", raw: `{"primary":null,"secondary":3}`, want: 3, wantStep: "secondary", wantOK: true},
		{name: "primary absent", raw: `{"secondary":0}`, want: 0, wantStep: "secondary", wantOK: true},
		{name: "backup pointer", raw: `{"backup":12}`, want: 12, wantStep: "backup", wantOK: true},
		{name: "nothing", raw: `{}`, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, step, ok := lapsPolicy.Trace(decode(t, tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStep, step)
		})
	}
}

func TestPolicyResolveOrAndOrder(t *testing.T) {
	assert.Equal(t, 99, lapsPolicy.ResolveOr(sample{}, 99))
	assert.Equal(t, []string{"primary", "secondary", "backup"}, lapsPolicy.Order())
	assert.Equal(t, "laps", lapsPolicy.Name())
}

func TestNonZeroAndConst(t *testing.T) {
	p := NewPolicy("label",
		NonZero("label", func(s sample) string { return s.Label }),
		Const[sample]("placeholder", "Grand Prix"),
	)
	assert.Equal(t, "Monaco", p.ResolveOr(sample{Label: "Monaco"}, ""))
	v, step, ok := p.Trace(sample{})
	assert.True(t, ok)
	assert.Equal(t, "Grand Prix", v)
	assert.Equal(t, "placeholder", step)
}

func TestFirstNonZero(t *testing.T) {
	assert.Equal(t, "b", FirstNonZero("", "b", "c"))
	assert.Equal(t, "", FirstNonZero[string]())
	assert.Equal(t, 4, FirstNonZero(0, 0, 4))
}
