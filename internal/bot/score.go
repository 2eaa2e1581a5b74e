package bot

import (
	"math/rand"

	"github.com/eng618/driftstack-engine/internal/rules"
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// evaluate computes spec.md §4.E.3's per-move additive score: key is applied
// to a throwaway clone of pre to observe whether it completes a match and
// what the resulting dock looks like, then the contributions are summed.
// Higher is better. rng must be nil only when p.PatternRecognition >= 1.0
// (the Optimal invariant): every other profile draws exactly one float here,
// last, for the score-noise term.
func evaluate(pre *state.GameState, key string, p Profile, rng *rand.Rand) float64 {
	t, _ := pre.Tile(key)

	clone := pre.Clone(cloneSeed(pre.Fingerprint() + ">" + key))
	result := rules.ApplyMove(clone, key)
	matched := len(result.MatchedGroups) > 0

	var score float64

	if matched {
		score += 100
	}
	if dockCount(pre, t.TileType) == 2 {
		score += 20 * p.PatternRecognition
	}
	if !matched {
		switch len(clone.Dock()) {
		case 6:
			score -= 50
		case 5:
			score -= 20
		case 4:
			score -= 5 * p.BlockingAwareness * (1 - p.RiskTolerance)
		}
	}
	score += 0.3 * p.BlockingAwareness * float64(t.Layer)
	if pre.AccessibleCount(t.TileType) >= 2 {
		score += 2 * p.PatternRecognition
	}
	if pre.GoalsRemaining()[t.GoalToken] > 0 {
		score += p.GoalPriority
	}
	score += gimmickBonus(pre, t, p)

	if p.PatternRecognition < 1.0 {
		score += rng.Float64() * 2 * (1 - p.PatternRecognition)
	}
	return score
}

// dockCount returns how many dock slots currently carry tileType.
func dockCount(g *state.GameState, tileType string) int {
	n := 0
	for _, slot := range g.Dock() {
		if slot.TileType == tileType {
			n++
		}
	}
	return n
}

// willMatch reports whether picking key would bring its type's dock count
// to 3 or more, i.e. the move is visible regardless of attention
// (spec.md §4.E.2 step 3's "completes a 3-match (always visible)").
func willMatch(g *state.GameState, key string) bool {
	t, ok := g.Tile(key)
	if !ok {
		return false
	}
	return dockCount(g, t.TileType) >= 2
}

// gimmickBonus adds the gimmick-targeted contributions of spec.md §4.E.3:
// chain-unlocking neighbours, an ice neighbour this pick would fully melt,
// and board-wide bomb urgency.
func gimmickBonus(g *state.GameState, t *tile.Tile, p Profile) float64 {
	var bonus float64
	dirs := []tile.Direction{tile.DirN, tile.DirS, tile.DirE, tile.DirW}
	for _, d := range dirs {
		dx, dy := d.Delta()
		neighbor, ok := g.TileAt(t.Layer, t.X+dx, t.Y+dy)
		if !ok || neighbor.Picked {
			continue
		}
		switch neighbor.Effect.Kind {
		case tile.KindChain:
			if !neighbor.Effect.ChainUnlocked {
				bonus += p.ChainPreference
			}
		case tile.KindIce:
			if neighbor.Effect.IceRemaining == 1 {
				bonus += p.BlockingAwareness
			}
		}
	}
	for _, key := range g.AllKeys() {
		bt, ok := g.Tile(key)
		if !ok || bt.Picked || bt.Effect.Kind != tile.KindBomb {
			continue
		}
		if bt.Effect.BombRemaining <= 3 {
			bonus += p.BlockingAwareness * float64(4-bt.Effect.BombRemaining)
		}
	}
	return bonus
}
