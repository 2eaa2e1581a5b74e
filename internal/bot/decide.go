package bot

import (
	"math"
	"math/rand"
	"sort"

	"github.com/eng618/driftstack-engine/internal/rules"
	"github.com/eng618/driftstack-engine/internal/state"
)

// scored pairs a candidate move with its heuristic/lookahead value.
type scored struct {
	key   string
	value float64
}

// Decide picks the bot's next move, implementing spec.md §4.E.2's full
// pipeline in order: mistake gate, attention filter, scoring heuristic,
// optional depth-bounded lookahead over the best few candidates, and a
// final patience gate. Returns false if nothing is pickable. rng must be
// nil for the Optimal profile and non-nil for every other profile — passing
// a non-nil rng to Optimal is a caller bug, not guarded against here, so the
// zero-RNG invariant can be asserted by a caller that wraps rng in a
// draw-counting shim.
func Decide(g *state.GameState, p Profile, rng *rand.Rand) (string, bool) {
	candidates := g.AccessibleKeys()
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)

	if !p.IsOptimal() && rng.Float64() < p.MistakeRate {
		return candidates[rng.Intn(len(candidates))], true
	}

	visible := candidates
	if p.PatternRecognition < 0.99 {
		visible = attentionFilter(g, candidates, p, rng)
	}

	for _, c := range visible {
		if willMatch(g, c) {
			return forcedBestMatch(g, visible, p, rng), true
		}
	}

	scoredMoves := make([]scored, 0, len(visible))
	for _, c := range visible {
		scoredMoves = append(scoredMoves, scored{key: c, value: evaluate(g, c, p, rng)})
	}
	sortScored(scoredMoves)

	if p.LookaheadDepth > 0 {
		breadth := lookaheadBreadth(g)
		if breadth > len(scoredMoves) {
			breadth = len(scoredMoves)
		}
		memo := make(map[string]float64)
		for i := 0; i < breadth; i++ {
			clone := simulateOne(g, scoredMoves[i].key)
			scoredMoves[i].value += evaluateWithLookahead(clone, p.LookaheadDepth-1, p, rng, memo)
		}
		sortScored(scoredMoves[:breadth])
	}

	return applyPatienceGate(scoredMoves, p, rng), true
}

// forcedBestMatch implements spec.md §4.E.2 step 4: any move that completes
// a match is force-picked over every non-matching alternative, breaking ties
// among matching moves by score.
func forcedBestMatch(g *state.GameState, visible []string, p Profile, rng *rand.Rand) string {
	matching := make([]scored, 0, len(visible))
	for _, c := range visible {
		if willMatch(g, c) {
			matching = append(matching, scored{key: c, value: evaluate(g, c, p, rng)})
		}
	}
	sortScored(matching)
	return matching[0].key
}

// attentionFilter keeps each candidate with an independent Bernoulli draw
// whose probability is moveVisibility (spec.md §4.E.2 step 3), falling back
// to the full candidate set if the draws happen to hide everything.
func attentionFilter(g *state.GameState, candidates []string, p Profile, rng *rand.Rand) []string {
	var visible []string
	for _, c := range candidates {
		if willMatch(g, c) || rng.Float64() < moveVisibility(g, c, p) {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return candidates
	}
	return visible
}

// moveVisibility combines top-layer proximity and dock-resident type match
// into the per-move visibility probability of spec.md §4.E.2 step 3, scaled
// by how sharp the profile's pattern recognition is.
func moveVisibility(g *state.GameState, key string, p Profile) float64 {
	t, ok := g.Tile(key)
	if !ok {
		return 0
	}
	visibility := 0.3
	if t.Layer == g.MaxLayer() {
		visibility += 0.3
	}
	if dockCount(g, t.TileType) > 0 {
		visibility += 0.3
	}
	visibility *= p.PatternRecognition
	if visibility > 1 {
		visibility = 1
	}
	return visibility
}

// lookaheadBreadth caps how many top-scoring candidates get carried into
// recursive search, tightening as the dock fills (spec.md §4.E.4's
// "candidate pruning keeps top k=3-7 moves ... depending on dock pressure").
func lookaheadBreadth(g *state.GameState) int {
	switch {
	case len(g.Dock()) >= 5:
		return 3
	case len(g.Dock()) >= 3:
		return 5
	default:
		return 7
	}
}

// applyPatienceGate implements spec.md §4.E.2 step 7: with probability
// 1-patience, pick uniformly among the top ceil(|moves|*patience) scored
// moves instead of the outright best one. Profiles with patience >= 0.5
// never draw from rng here.
func applyPatienceGate(moves []scored, p Profile, rng *rand.Rand) string {
	if p.Patience >= 0.5 || rng.Float64() >= 1-p.Patience {
		return moves[0].key
	}
	topN := int(math.Ceil(float64(len(moves)) * p.Patience))
	if topN < 1 {
		topN = 1
	}
	if topN > len(moves) {
		topN = len(moves)
	}
	return moves[rng.Intn(topN)].key
}

func sortScored(moves []scored) {
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].value != moves[j].value {
			return moves[i].value > moves[j].value
		}
		return moves[i].key < moves[j].key
	})
}

// simulateOne clones g and applies move key, returning the resulting
// position for lookahead recursion. The clone's own RNG is seeded
// deterministically from the position, never drawn from the caller's rng.
func simulateOne(g *state.GameState, key string) *state.GameState {
	clone := g.Clone(cloneSeed(g.Fingerprint() + ">" + key))
	rules.ApplyMove(clone, key)
	return clone
}
