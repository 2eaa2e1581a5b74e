package rules

import (
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// tickBombs decrements every currently exposed bomb's countdown by one after
// each move and fails the game the instant any reaches zero (spec.md §3.3
// "Bomb", §4.D.3 "BombExploded"). A bomb still buried under a higher layer
// does not tick — it cannot explode before it is reachable.
func tickBombs(g *state.GameState) {
	for _, key := range g.AllKeys() {
		t, ok := g.Tile(key)
		if !ok || t.Picked || t.Effect.Kind != tile.KindBomb {
			continue
		}
		if blockedByUpper(g, t.Layer, t.X, t.Y) {
			continue
		}
		if g.DecrementBomb(key) <= 0 {
			g.SetTerminal(state.TerminalFailed, state.FailBombExploded)
		}
	}
}
