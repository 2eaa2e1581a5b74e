package rules

import (
	"encoding/json"
	"testing"

	"github.com/eng618/driftstack-engine/internal/state"
)

const simpleLevelJSON = `{
  "layer": 1,
  "layer_0": {
    "col": 3, "row": 3,
    "tiles": {
      "1_1": ["t1", ""], "1_2": ["t2", ""], "1_3": ["t3", ""],
      "2_1": ["t1", ""], "2_2": ["t2", ""], "2_3": ["t3", ""],
      "3_1": ["t1", ""], "3_2": ["t2", ""], "3_3": ["t3", ""]
    }
  },
  "goalCount": {"t1": 3, "t2": 3, "t3": 3},
  "max_moves": 20,
  "randSeed": 42
}`

func mustBuildSimple(t *testing.T) *state.GameState {
	t.Helper()
	var desc state.LevelDescription
	if err := json.Unmarshal([]byte(simpleLevelJSON), &desc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2", "t3"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)
	return g
}

func TestPickableFlatBoardAllAccessible(t *testing.T) {
	g := mustBuildSimple(t)
	for _, key := range g.AllKeys() {
		if !Pickable(g, key) {
			t.Errorf("expected %s pickable on a flat obstacle-free board", key)
		}
	}
}

func TestPickedTileNeverPickableAgain(t *testing.T) {
	g := mustBuildSimple(t)
	key := g.AllKeys()[0]
	res := ApplyMove(g, key)
	if !res.Applied {
		t.Fatalf("expected move to apply")
	}
	if Pickable(g, key) {
		t.Fatalf("picked tile must not remain pickable")
	}
	res2 := ApplyMove(g, key)
	if !res2.Blocked {
		t.Fatalf("re-picking an already-picked tile must be blocked")
	}
}

func TestCraftNeverDirectlyPickable(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 2, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1", Attribute: "craft_e", ExtraCount: 2, ExtraInner: "t1_t2", HasExtraSeq: true},
				"1_0": {Type: "t2"},
			},
		}},
		GoalCount: map[string]int{"t1": 3, "t2": 3},
		MaxMoves:  10,
		RandSeed:  1,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)
	if Pickable(g, "0_0_0") {
		t.Fatalf("a craft's own position must never be directly pickable")
	}
}
