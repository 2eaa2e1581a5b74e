package analyzer

import (
	"strconv"
	"testing"

	"github.com/eng618/driftstack-engine/internal/state"
)

func flatLevel(n int, attr string) state.LevelDescription {
	tiles := make(map[string]state.TileSpec, n)
	for i := 0; i < n; i++ {
		tiles[strconv.Itoa(i)+"_0"] = state.TileSpec{Type: "t1", Attribute: attr}
	}
	return state.LevelDescription{
		LayerCount: 1,
		Layers:     []state.LayerSpec{{Col: n, Row: 1, Tiles: tiles}},
		GoalCount:  map[string]int{"t1": 3},
	}
}

func TestExtractCountsGimmicks(t *testing.T) {
	desc := flatLevel(6, "chain")
	m := Extract(desc)
	if m.ChainCount != 6 {
		t.Errorf("expected 6 chain tiles, got %d", m.ChainCount)
	}
	if m.TotalTiles != 6 {
		t.Errorf("expected 6 total tiles, got %d", m.TotalTiles)
	}
	if m.ActiveLayers != 1 {
		t.Errorf("expected 1 active layer, got %d", m.ActiveLayers)
	}
}

func TestExtractFlatLayerHasNoBlocking(t *testing.T) {
	desc := flatLevel(5, "none")
	m := Extract(desc)
	if m.LayerBlockingScore != 0 {
		t.Errorf("a single flat layer cannot block itself, got score %d", m.LayerBlockingScore)
	}
}

func TestGradeBoundariesAreInclusiveOnUpperEnd(t *testing.T) {
	cases := map[float64]string{
		0:   "S",
		20:  "S",
		20.01: "A",
		40:  "A",
		40.01: "B",
		60:  "B",
		80:  "C",
		100: "D",
	}
	for score, want := range cases {
		if got := Grade(score); got != want {
			t.Errorf("Grade(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestScoreIsClampedToOneHundred(t *testing.T) {
	desc := flatLevel(500, "bomb")
	for posKey, spec := range desc.Layers[0].Tiles {
		spec.ExtraCount = 3
		desc.Layers[0].Tiles[posKey] = spec
	}
	m := Extract(desc)
	if got := Score(m); got != 100 {
		t.Errorf("expected an extreme level to clamp at 100, got %f", got)
	}
}
