package labels_test

import (
	"testing"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/stretchr/testify/assert"
)

func TestTable_Fallbacks(t *testing.T) {
	var nilTable *labels.Table
	assert.Equal(t, "S0", nilTable.State(0))
	assert.Equal(t, "i0", nilTable.Input(0))
	assert.Equal(t, "o0", nilTable.Output(0))

	_, ok := nilTable.Kind()
	assert.False(t, ok)

	tbl := labels.NewTable()
	tbl.States[1] = "ready"
	assert.Equal(t, "S0", tbl.State(0))
	assert.Equal(t, "ready", tbl.State(1))
	assert.Equal(t, "i1", tbl.Input(1), "categories are independent")
}

func TestTable_FallbackPrefixesAreDisjoint(t *testing.T) {
	var tbl *labels.Table
	seen := map[string]bool{}
	for id := uint16(0); id < 64; id++ {
		for _, name := range []string{tbl.State(id), tbl.Input(id), tbl.Output(id)} {
			assert.False(t, seen[name], "collision on %s", name)
			seen[name] = true
		}
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name   string
		labels map[uint16]string
		ids    []uint16
		want   map[uint16]string
	}{
		{
			name: "fallbacks only",
			ids:  []uint16{0, 1},
			want: map[uint16]string{0: "S0", 1: "S1"},
		},
		{
			name:   "label shadows a fallback",
			labels: map[uint16]string{0: "S1"},
			ids:    []uint16{0, 1},
			want:   map[uint16]string{0: "S1", 1: "S1_2"},
		},
		{
			name:   "duplicate labels",
			labels: map[uint16]string{0: "a", 1: "a"},
			ids:    []uint16{0, 1},
			want:   map[uint16]string{0: "a", 1: "a_2"},
		},
		{
			name:   "suffix skips reserved labels",
			labels: map[uint16]string{0: "S1", 2: "S1_2"},
			ids:    []uint16{0, 1, 2},
			want:   map[uint16]string{0: "S1", 1: "S1_3", 2: "S1_2"},
		},
		{
			name:   "labels of absent ids are ignored",
			labels: map[uint16]string{7: "S0"},
			ids:    []uint16{0},
			want:   map[uint16]string{0: "S0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels.Names(tt.labels, tt.ids, labels.StatePrefix))
		})
	}
}

func TestBuild(t *testing.T) {
	m := domain.New(domain.KindMealy)
	m.Name = "vending"
	m.Description = "sells things"

	tbl := labels.Build(m, labels.NameMaps{
		States:  map[uint16]string{0: "idle", 1: "paid"},
		Inputs:  map[uint16]string{0: "coin"},
		Outputs: map[uint16]string{0: "snack"},
	})

	assert.Equal(t, labels.Meta{Version: 1, Kind: "mealy", Name: "vending", Description: "sells things"}, tbl.Meta)
	assert.Equal(t, "paid", tbl.State(1))
	assert.Equal(t, "coin", tbl.Input(0))
	assert.Equal(t, "snack", tbl.Output(0))

	kind, ok := tbl.Kind()
	assert.True(t, ok)
	assert.Equal(t, domain.KindMealy, kind)
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []uint16{0, 2, 10}, labels.IDs(map[uint16]string{10: "c", 0: "a", 2: "b"}))
}
