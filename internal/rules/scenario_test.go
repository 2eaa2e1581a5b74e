package rules

import (
	"testing"

	"github.com/eng618/driftstack-engine/internal/state"
)

// TestScenarioBombCountdown is S2: a bomb ticks once per move regardless of
// which tile was picked and fails the game once its remaining count reaches
// zero without having itself been picked.
func TestScenarioBombCountdown(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 4, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1"},
				"1_0": {Type: "t1"},
				"2_0": {Type: "t1"},
				"3_0": {Type: "t2", Attribute: "bomb", ExtraCount: 3, HasExtra: true},
			},
		}},
		GoalCount: map[string]int{"t1": 3, "t2": 1},
		MaxMoves:  20,
		RandSeed:  7,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	if rem, ok := g.BombRemaining("0_3_0"); !ok || rem != 3 {
		t.Fatalf("expected bomb seeded at 3, got %d (ok=%v)", rem, ok)
	}

	ApplyMove(g, "0_0_0")
	ApplyMove(g, "0_1_0")
	res := ApplyMove(g, "0_2_0")

	if res.Terminal != state.TerminalFailed || res.FailReason != state.FailBombExploded {
		t.Fatalf("expected the bomb to explode on its third tick, got terminal=%v reason=%v", res.Terminal, res.FailReason)
	}
}

// TestScenarioLinkPairPicksInLockstep is S3: two t1 tiles linked
// east-west plus one solo t1. A link's can_pick requires both halves to be
// independently unblocked by geometry alone (spec.md §4.D.1) — on a flat
// single layer that holds from the start. Picking either half picks its
// partner in lockstep, consuming two dock slots in one move and reporting
// the partner as the move's linked key; the solo third tile then completes
// the match.
func TestScenarioLinkPairPicksInLockstep(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 3, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1", Attribute: "link_e"},
				"1_0": {Type: "t1", Attribute: "link_w"},
				"2_0": {Type: "t1"},
			},
		}},
		GoalCount: map[string]int{"t1": 3},
		MaxMoves:  10,
		RandSeed:  11,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	if !Pickable(g, "0_0_0") || !Pickable(g, "0_1_0") {
		t.Fatalf("an unblocked linked pair must be pickable from the start")
	}

	res := ApplyMove(g, "0_0_0")
	if res.Blocked {
		t.Fatalf("expected the linked pick to apply")
	}
	if res.LinkedKey != "0_1_0" {
		t.Fatalf("expected the move to report the partner as linked, got %q", res.LinkedKey)
	}
	if len(g.Dock()) != 2 {
		t.Fatalf("expected a single linked pick to insert both tiles into the dock, got %d slots", len(g.Dock()))
	}

	res = ApplyMove(g, "0_2_0")
	if len(res.MatchedGroups) == 0 {
		t.Fatalf("expected the third t1 pick to complete a match")
	}
	if g.Terminal() != state.TerminalCleared {
		t.Fatalf("expected the level cleared, got terminal=%v reason=%v", g.Terminal(), g.FailReason())
	}
}

// TestScenarioCurtainOpensOnlyAfterCoverCleared is S4: a curtain-closed
// tile under a covering tile on a higher layer cannot be picked until the
// covering tile is cleared, at which point RecomputeAccessible flips it
// open.
func TestScenarioCurtainOpensOnlyAfterCoverCleared(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 2,
		Layers: []state.LayerSpec{
			{
				Col: 1, Row: 1,
				Tiles: map[string]state.TileSpec{
					"0_0": {Type: "t1", Attribute: "curtain_close"},
				},
			},
			{
				Col: 1, Row: 1,
				Tiles: map[string]state.TileSpec{
					"0_0": {Type: "t2"},
				},
			},
		},
		GoalCount: map[string]int{"t1": 1, "t2": 1},
		MaxMoves:  10,
		RandSeed:  13,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	if Pickable(g, "0_0_0") {
		t.Fatalf("curtained tile under an unpicked cover must not be pickable")
	}

	ApplyMove(g, "1_0_0") // clears the covering tile on layer 1
	if !Pickable(g, "0_0_0") {
		t.Fatalf("expected the curtain to open once its cover is cleared")
	}
	if !g.CurtainOpen("0_0_0") {
		t.Fatalf("expected CurtainOpen to report true once exposed")
	}
}

// TestScenarioTeleportShuffleCyclesEveryThirdPick is S5: the teleport click
// counter ticks on every applied move, cycling 0->1->2->0; the third tick
// shuffles the surviving teleport-tagged types, or strips the effect when
// fewer than two participants survive.
func TestScenarioTeleportShuffleCyclesEveryThirdPick(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 4, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "t1", Attribute: "teleport"},
				"1_0": {Type: "t1", Attribute: "teleport"},
				"2_0": {Type: "t2", Attribute: "teleport"},
				"3_0": {Type: "t2", Attribute: "teleport"},
			},
		}},
		GoalCount: map[string]int{"t1": 2, "t2": 2},
		MaxMoves:  10,
		RandSeed:  17,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	if g.TeleportClickCount() != 0 {
		t.Fatalf("expected the click counter to start at 0, got %d", g.TeleportClickCount())
	}

	ApplyMove(g, "0_0_0")
	if g.TeleportClickCount() != 1 {
		t.Fatalf("expected the click counter at 1 after one pick, got %d", g.TeleportClickCount())
	}
	ApplyMove(g, "0_1_0")
	if g.TeleportClickCount() != 2 {
		t.Fatalf("expected the click counter at 2 after two picks, got %d", g.TeleportClickCount())
	}
	ApplyMove(g, "0_2_0")
	if g.TeleportClickCount() != 0 {
		t.Fatalf("expected the click counter to wrap to 0 on the third pick (shuffle tick), got %d", g.TeleportClickCount())
	}

	// After the third pick only the fourth tile survives, too few to shuffle,
	// so the third tick strips its teleport effect and the participant list
	// empties out even though that tile was never picked.
	remaining := g.TeleportParticipants()
	if len(remaining) != 0 {
		t.Fatalf("expected the teleport participant list to empty after the strip, got %d", len(remaining))
	}
}

// TestScenarioUnlockTileRaisesDockCapacity is S6: unlock_tile lowers the
// starting dock capacity, and each group of three collected "key" tokens
// raises it back by one, up to the hard cap of 7.
func TestScenarioUnlockTileRaisesDockCapacity(t *testing.T) {
	desc := state.LevelDescription{
		LayerCount: 1,
		Layers: []state.LayerSpec{{
			Col: 6, Row: 1,
			Tiles: map[string]state.TileSpec{
				"0_0": {Type: "key"},
				"1_0": {Type: "key"},
				"2_0": {Type: "key"},
				"3_0": {Type: "key"},
				"4_0": {Type: "key"},
				"5_0": {Type: "key"},
			},
		}},
		GoalCount:  map[string]int{"key": 6},
		MaxMoves:   20,
		RandSeed:   19,
		UnlockTile: 2,
	}
	g, err := state.Build(desc, state.BuildOptions{TypePool: []string{"key"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	RecomputeAccessible(g)

	if g.DockCapacity() != 5 {
		t.Fatalf("expected unlock_tile=2 to start dock capacity at 5, got %d", g.DockCapacity())
	}

	ApplyMove(g, "0_0_0")
	ApplyMove(g, "0_1_0")
	ApplyMove(g, "0_2_0")
	if g.DockCapacity() != 6 {
		t.Fatalf("expected the first key group to raise capacity to 6, got %d", g.DockCapacity())
	}

	ApplyMove(g, "0_3_0")
	ApplyMove(g, "0_4_0")
	ApplyMove(g, "0_5_0")
	if g.DockCapacity() != 7 {
		t.Fatalf("expected the second key group to raise capacity to 7, got %d", g.DockCapacity())
	}
}
