package rules

import (
	"sort"

	"github.com/eng618/driftstack-engine/internal/geometry"
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// frogHopRadius bounds how far a frog may relocate in one step (spec.md
// §4.D.2 step 5: "a bounded random hop").
const frogHopRadius = 2

// stepFrogs gives every current frog occupant one chance to hop to a still
// legal host within frogHopRadius. Frogs that started this step are visited
// in sorted key order so the sequence of RNG draws is reproducible; a frog
// that finds no legal host simply stays (SPEC_FULL.md Open Question 2: hop
// legality ignores ice/grass pick-predicates, so a frog may land on an
// iced or grass-covered tile).
func stepFrogs(g *state.GameState) {
	keys := g.FrogKeys()
	sort.Strings(keys)
	for _, oldKey := range keys {
		if !g.FrogAt(oldKey) {
			continue // already relocated onto by an earlier frog's hop
		}
		from, ok := g.Tile(oldKey)
		if !ok {
			continue
		}
		candidates := frogHostCandidates(g, from)
		if len(candidates) == 0 {
			continue
		}
		newKey := candidates[g.RNG().Intn(len(candidates))]
		g.MoveFrog(oldKey, newKey)
	}
}

// frogHostCandidates lists same-layer positions within frogHopRadius
// (taxicab distance) that are unpicked, not already frog-occupied, not
// blocked from above, and not a craft dispenser.
func frogHostCandidates(g *state.GameState, from *tile.Tile) []string {
	var out []string
	for dx := -frogHopRadius; dx <= frogHopRadius; dx++ {
		for dy := -frogHopRadius; dy <= frogHopRadius; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if abs(dx)+abs(dy) > frogHopRadius {
				continue
			}
			nx, ny := from.X+dx, from.Y+dy
			candidate, ok := g.TileAt(from.Layer, nx, ny)
			if !ok || candidate.Picked || candidate.Effect.Kind == tile.KindCraft {
				continue
			}
			key := candidate.Key()
			if g.FrogAt(key) {
				continue
			}
			blocked := geometry.IsBlockedByUpper(from.Layer, nx, ny, g.LayerCols(), g.MaxLayer(), func(layer, x, y int) bool {
				other, ok := g.TileAt(layer, x, y)
				return ok && !other.Picked
			})
			if blocked {
				continue
			}
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
