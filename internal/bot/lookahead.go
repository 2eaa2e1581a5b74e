package bot

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/eng618/driftstack-engine/internal/state"
)

// cloneSeed derives a deterministic clone RNG seed from a position
// fingerprint. Lookahead exploration never touches the real game's RNG
// (spec.md §5) — each hypothetical clone gets an independent, reproducible
// source instead. Scoring the clones' candidates still draws noise from the
// bot's own RNG for non-Optimal profiles.
func cloneSeed(fingerprint string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fingerprint))
	return int64(h.Sum64())
}

// evaluateWithLookahead is a depth-bounded best-first search over the bot's
// own sequential choices (there is no adversary in this puzzle, so the
// "minimax" of spec.md §4.E.4 degenerates to maximizing the heuristic over
// the bot's own future picks). memo is a transposition table keyed by
// (depth, position fingerprint), shared across a single Decide call.
// Candidates are pruned to lookaheadBreadth(g) by immediate heuristic value
// before recursing, per spec.md §4.E.4.
func evaluateWithLookahead(g *state.GameState, depth int, p Profile, rng *rand.Rand, memo map[string]float64) float64 {
	if depth <= 0 || g.Terminal() != state.TerminalRunning {
		return 0
	}

	fp := g.Fingerprint()
	memoKey := strconv.Itoa(depth) + "|" + fp
	if v, ok := memo[memoKey]; ok {
		return v
	}

	candidates := g.AccessibleKeys()
	if len(candidates) == 0 {
		memo[memoKey] = 0
		return 0
	}

	immediate := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		immediate = append(immediate, scored{key: c, value: evaluate(g, c, p, rng)})
	}
	sortScored(immediate)

	breadth := lookaheadBreadth(g)
	if breadth > len(immediate) {
		breadth = len(immediate)
	}

	best := immediate[0].value
	for i := 0; i < breadth; i++ {
		clone := simulateOne(g, immediate[i].key)
		v := immediate[i].value + evaluateWithLookahead(clone, depth-1, p, rng, memo)
		if v > best {
			best = v
		}
	}
	memo[memoKey] = best
	return best
}
