package rules

import (
	"testing"

	"github.com/eng618/driftstack-engine/internal/state"
)

func TestApplyMoveClearsLevel(t *testing.T) {
	g := mustBuildSimple(t)
	for _, key := range []string{
		"0_1_1", "0_1_2", "0_1_3",
		"0_2_1", "0_2_2", "0_2_3",
		"0_3_1", "0_3_2", "0_3_3",
	} {
		res := ApplyMove(g, key)
		if res.Blocked {
			t.Fatalf("move %s unexpectedly blocked", key)
		}
	}
	if g.Terminal() != state.TerminalCleared {
		t.Fatalf("expected level cleared, got terminal=%v failReason=%v", g.Terminal(), g.FailReason())
	}
}

func TestApplyMoveMoveBudgetExhausted(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 3, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1"},
				"1_0": {Type: "t2"},
				"2_0": {Type: "t3"},
			},
		}},
		GoalCount: map[string]int{"t1": 3, "t2": 3, "t3": 3},
		MaxMoves:  1,
		RandSeed:  3,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2", "t3"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	res := ApplyMove(g, "0_0_0")
	if res.Terminal != state.TerminalFailed || res.FailReason != state.FailMoveBudgetExhausted {
		t.Fatalf("expected MoveBudgetExhausted, got terminal=%v reason=%v", res.Terminal, res.FailReason)
	}
}

func TestApplyMoveBombExplodes(t *testing.T) {
	// Bomb countdown ticks once per move regardless of which tile was
	// picked (spec.md §4.D.2 step 7), so three filler picks exhaust a
	// bomb seeded at the minimum allowed remaining count of 3.
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 4, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1"},
				"1_0": {Type: "t2"},
				"2_0": {Type: "t3"},
				"3_0": {Type: "t4", Attribute: "bomb", ExtraCount: 3, HasExtra: true},
			},
		}},
		GoalCount: map[string]int{"t1": 3, "t2": 3, "t3": 3, "t4": 3},
		MaxMoves:  20,
		RandSeed:  3,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2", "t3", "t4"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	ApplyMove(g, "0_0_0")
	ApplyMove(g, "0_1_0")
	res := ApplyMove(g, "0_2_0")
	if res.Terminal != state.TerminalFailed || res.FailReason != state.FailBombExploded {
		t.Fatalf("expected BombExploded on the bomb's third tick, got terminal=%v reason=%v", res.Terminal, res.FailReason)
	}
}

func TestChainUnlocksOnAdjacentPick(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 2, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1"},
				"1_0": {Type: "t2", Attribute: "chain"},
			},
		}},
		GoalCount: map[string]int{"t1": 3, "t2": 3},
		MaxMoves:  10,
		RandSeed:  3,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	if Pickable(g, "0_1_0") {
		t.Fatalf("chain tile must start locked")
	}
	ApplyMove(g, "0_0_0")
	RecomputeAccessible(g)
	if !g.ChainUnlocked("0_1_0") {
		t.Fatalf("expected adjacent pick to unlock the chain")
	}
	if !Pickable(g, "0_1_0") {
		t.Fatalf("expected chain tile pickable once unlocked")
	}
}

func TestStackAdvancesThenExhausts(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 1, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1", Attribute: "stack_n", ExtraCount: 2, ExtraInner: "t2_t3", HasExtraSeq: true},
			},
		}},
		GoalCount: map[string]int{"t1": 1, "t2": 1, "t3": 1},
		MaxMoves:  10,
		RandSeed:  3,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2", "t3"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	r1 := ApplyMove(g, "0_0_0")
	if r1.Blocked {
		t.Fatalf("expected first stack pick to apply")
	}
	tl, _ := g.Tile("0_0_0")
	if tl.Picked {
		t.Fatalf("stack must not be picked while inner tiles remain")
	}
	if tl.TileType != "t2" {
		t.Fatalf("expected next top t2, got %s", tl.TileType)
	}

	ApplyMove(g, "0_0_0")
	tl, _ = g.Tile("0_0_0")
	if tl.TileType != "t3" {
		t.Fatalf("expected next top t3, got %s", tl.TileType)
	}

	ApplyMove(g, "0_0_0")
	tl, _ = g.Tile("0_0_0")
	if !tl.Picked {
		t.Fatalf("expected stack exhausted after its last inner tile")
	}
}

func TestCraftEmitsIntoEmptyAdjacentCell(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 2, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1", Attribute: "craft_e", ExtraCount: 1, ExtraInner: "t2", HasExtraSeq: true},
				"1_0": {Type: "t3"},
			},
		}},
		GoalCount: map[string]int{"t2": 1, "t3": 1},
		MaxMoves:  10,
		RandSeed:  3,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t2", "t3"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	ApplyMove(g, "0_1_0") // empties the craft's emit cell
	emitted, ok := g.TileAt(0, 1, 0)
	if !ok {
		t.Fatalf("expected a tile materialised at the emit cell")
	}
	if emitted.TileType != "t2" {
		t.Fatalf("expected craft to emit t2, got %s", emitted.TileType)
	}
}
