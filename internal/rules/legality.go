// Package rules implements the move legality predicate, move application,
// effect propagation, and failure classification described in spec.md §4.D.
// It is the only package that mutates a state.GameState once a level has
// been built — state owns storage, rules owns the rules.
package rules

import (
	"github.com/eng618/driftstack-engine/internal/geometry"
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// Pickable implements spec.md §4.D.1's five-part predicate. A tile at key
// may be picked iff all of the following hold:
//  1. it has not already been picked
//  2. no tile on a layer above blocks it (geometry.IsBlockedByUpper)
//  3. no frog currently occupies its canonical key
//  4. its own effect permits picking (Effect.PermitsPick)
//  5. it is not an unexposed stack/craft interior — which never applies,
//     since interior tiles are never materialised as addressable Tiles
//     (spec.md §9: "pick one as canonical" — stackInner/craftInner hold
//     interior state directly, not shadow Tile entries).
func Pickable(g *state.GameState, key string) bool {
	t, ok := g.Tile(key)
	if !ok || t.Picked {
		return false
	}
	if t.Effect.Kind == tile.KindCraft {
		// A craft's own position is a dispenser, never directly pickable;
		// only its emitted tiles are (SPEC_FULL.md Open Question 1).
		return false
	}
	if blockedByUpper(g, t.Layer, t.X, t.Y) {
		return false
	}
	if g.FrogAt(key) {
		return false
	}
	return t.Effect.PermitsPick()
}

// blockedByUpper reports whether any unpicked tile on a higher layer
// occupies the half-step position above (layer, x, y) (spec.md §4.D.1).
// Shared by pick legality, bomb/ice exposure, and curtain/link resolution.
func blockedByUpper(g *state.GameState, layer, x, y int) bool {
	return geometry.IsBlockedByUpper(layer, x, y, g.LayerCols(), g.MaxLayer(), func(l, tx, ty int) bool {
		other, ok := g.TileAt(l, tx, ty)
		return ok && !other.Picked
	})
}

// RecomputeAccessible rebuilds the game's accessible-tile cache using
// Pickable as the legality predicate, then resolves any curtains newly
// exposed from above (curtains open the moment their covering tiles are
// gone, not on a separate trigger), and refreshes
// link can_pick flags (spec.md §4.D.2 step 9).
func RecomputeAccessible(g *state.GameState) {
	openExposedCurtains(g)
	recomputeLinkCanPick(g)
	g.RecomputeAccessible(func(key string) bool { return Pickable(g, key) })
}

// recomputeLinkCanPick derives each unpicked link tile's can_pick flag from
// geometry alone: both the tile and its partner must be independently
// unblocked by anything on a higher layer (spec.md §4.D.1). A partner that
// has already been picked no longer gates anything.
func recomputeLinkCanPick(g *state.GameState) {
	for _, key := range g.AllKeys() {
		t, ok := g.Tile(key)
		if !ok || t.Effect.Kind != tile.KindLink || t.Picked {
			continue
		}
		selfUnblocked := !blockedByUpper(g, t.Layer, t.X, t.Y)

		partnerUnblocked := true
		if partnerKey, ok := g.LinkPartner(key); ok {
			if partner, pok := g.Tile(partnerKey); pok && !partner.Picked {
				partnerUnblocked = !blockedByUpper(g, partner.Layer, partner.X, partner.Y)
			}
		}
		g.SetLinkCanPick(key, selfUnblocked && partnerUnblocked)
	}
}

// openExposedCurtains flips closed curtains to open once nothing above them
// blocks the position (spec.md §3.3 "Curtain"; S4 scenario: "covering tiles
// above must be cleared before curtains open").
func openExposedCurtains(g *state.GameState) {
	for _, key := range g.AllKeys() {
		t, ok := g.Tile(key)
		if !ok || t.Effect.Kind != tile.KindCurtain || t.Picked || t.Effect.CurtainOpen {
			continue
		}
		if !blockedByUpper(g, t.Layer, t.X, t.Y) {
			g.SetCurtainOpen(key, true)
		}
	}
}
