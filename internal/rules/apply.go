package rules

import (
	"github.com/google/uuid"

	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// MoveResult reports what a single ApplyMove call did. Blocked moves leave
// state entirely unchanged (spec.md §4.D.3: "Only the first leaves state
// mutable" refers to the other failure classes; a Blocked refusal is not
// one of them).
type MoveResult struct {
	TraceID       string
	Applied       bool
	Blocked       bool
	MatchedGroups []state.MatchedGroup
	Terminal      state.Terminal
	FailReason    state.FailReason

	// LinkedKey is the partner's canonical key when this move picked a
	// linked pair in lockstep, empty otherwise (spec.md §6.2's
	// linked_positions).
	LinkedKey string
}

// ApplyMove picks the tile at key, implementing spec.md §4.D.2's full move
// pipeline: legality check, dock insertion (with stack/craft special
// casing), adjacency effect propagation, teleport ticking, dock matching,
// bomb countdown, frog hopping, craft emission, and terminal classification.
func ApplyMove(g *state.GameState, key string) MoveResult {
	result := MoveResult{TraceID: uuid.New().String()}

	if g.Terminal() != state.TerminalRunning || !Pickable(g, key) {
		result.Blocked = true
		return result
	}

	t, _ := g.Tile(key)
	ice := snapshotExposedIce(g)
	pickOne(g, t)

	if t.Effect.Kind == tile.KindLink {
		if partnerKey, ok := g.LinkPartner(key); ok {
			if partner, pok := g.Tile(partnerKey); pok && !partner.Picked {
				pickOne(g, partner)
				result.LinkedKey = partnerKey
			}
		}
	}

	for _, iceKey := range ice {
		g.DecrementIce(iceKey)
	}

	g.IncrementMoves()

	if t.Effect.Kind == tile.KindTeleport {
		g.RemoveTeleportParticipant(key)
	}
	if g.TeleportTick() == 0 {
		g.ShuffleTeleportTypes()
		if len(g.TeleportParticipants()) < 2 {
			g.StripTeleportEffect()
		}
	}

	result.MatchedGroups = g.MatchDock()

	tickBombs(g)
	stepFrogs(g)
	advanceCrafts(g)

	classifyTerminal(g)
	RecomputeAccessible(g)
	if g.Terminal() == state.TerminalRunning && len(g.AccessibleKeys()) == 0 && !g.BoardEmpty() {
		g.SetTerminal(state.TerminalFailed, state.FailImpossibleLevel)
	}

	result.Applied = true
	result.Terminal = g.Terminal()
	result.FailReason = g.FailReason()
	return result
}

// pickOne inserts a single tile into the dock (stack-advancing in place
// rather than marking picked, for stack tiles) and propagates its adjacency
// effects. Used directly by ApplyMove for the primary key, and a second time
// for a link tile's partner when the two are picked in lockstep.
func pickOne(g *state.GameState, t *tile.Tile) {
	key := t.Key()
	dockType, dockToken := t.TileType, t.GoalToken
	if t.Effect.Kind == tile.KindStack {
		g.InsertDock(state.DockSlot{TileType: dockType, GoalToken: dockToken, SourceKey: key})
		g.StackAdvance(key)
	} else {
		g.MarkPicked(key)
		g.InsertDock(state.DockSlot{TileType: dockType, GoalToken: dockToken, SourceKey: key})
	}
	propagateAdjacency(g, t)
}

// snapshotExposedIce captures every currently exposed ice tile's key before
// a pick resolves (spec.md §4.D.2 step 1). Ice newly revealed by the pick
// itself must not melt this move, so the snapshot is taken first and
// decremented only after the pick has landed.
func snapshotExposedIce(g *state.GameState) []string {
	var keys []string
	for _, key := range g.AllKeys() {
		t, ok := g.Tile(key)
		if !ok || t.Picked || t.Effect.Kind != tile.KindIce {
			continue
		}
		if !blockedByUpper(g, t.Layer, t.X, t.Y) {
			keys = append(keys, key)
		}
	}
	return keys
}

// propagateAdjacency decrements grass on, and unlocks chain partners among,
// the four same-layer cardinal neighbours of a just-picked tile (spec.md
// §4.D.2 step 3). Ice is handled separately via a board-wide exposed
// snapshot (snapshotExposedIce), not neighbour adjacency. Link can_pick is
// not adjacency-driven either — it is pure geometry, recomputed by
// recomputeLinkCanPick every step 9.
func propagateAdjacency(g *state.GameState, picked *tile.Tile) {
	dirs := []tile.Direction{tile.DirN, tile.DirS, tile.DirE, tile.DirW}
	for _, d := range dirs {
		dx, dy := d.Delta()
		neighbor, ok := g.TileAt(picked.Layer, picked.X+dx, picked.Y+dy)
		if !ok || neighbor.Picked {
			continue
		}
		key := neighbor.Key()
		switch neighbor.Effect.Kind {
		case tile.KindGrass:
			if !blockedByUpper(g, neighbor.Layer, neighbor.X, neighbor.Y) {
				g.DecrementGrass(key)
			}
		case tile.KindChain:
			if !neighbor.Effect.ChainUnlocked {
				g.UnlockChain(key)
			}
		}
	}
}

// advanceCrafts emits the next inner tile of any craft whose emit cell has
// become empty (spec.md §4.D.2 step 8).
func advanceCrafts(g *state.GameState) {
	for _, key := range g.AllKeys() {
		t, ok := g.Tile(key)
		if !ok || t.Picked || t.Effect.Kind != tile.KindCraft || !g.CraftPending(key) {
			continue
		}
		dx, dy := t.Effect.CraftDir.Delta()
		ex, ey := t.X+dx, t.Y+dy
		existing, exists := g.TileAt(t.Layer, ex, ey)
		empty := !exists || existing.Picked
		if !empty {
			continue
		}
		emittedType, ok := g.CraftAdvance(key)
		if ok {
			g.AddBoardTile(t.Layer, ex, ey, emittedType, g.CraftGoalToken(key))
		}
	}
}

// classifyTerminal applies spec.md §4.D.3's ordering: an exploded bomb or
// dock overflow fails the game before a clear can be recognised; only then
// is the move budget checked.
func classifyTerminal(g *state.GameState) {
	if g.Terminal() != state.TerminalRunning {
		return
	}
	if g.DockOverflow() {
		g.SetTerminal(state.TerminalFailed, state.FailDockOverflow)
		return
	}
	if g.AllGoalsCleared() && g.BoardEmpty() && g.DockEmpty() {
		g.SetTerminal(state.TerminalCleared, state.FailNone)
		return
	}
	if g.MovesUsed() >= g.MaxMoves() {
		g.SetTerminal(state.TerminalFailed, state.FailMoveBudgetExhausted)
	}
}
