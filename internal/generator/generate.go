package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// keyMinDifficulty is the difficulty threshold past which the "key" tile
// type (a dock-capacity-promoting matching type, not a gimmick attribute —
// spec.md §3.3 "Key") is included in a candidate's type pool.
const keyMinDifficulty = 0.30

// Params parameterises a single generation attempt (spec.md §4.G).
type Params struct {
	Difficulty      float64 // 0..1, gates which gimmicks may appear
	Cols, Rows      int
	Layers          int
	TypeCount       int // distinct matching colors, excluding "key"
	ObstacleDensity float64 // fraction of board cells offered a non-none gate
	Seed            int64
}

// Candidate is one generated level plus the bookkeeping the validator loop
// needs to score it.
type Candidate struct {
	Description state.LevelDescription
	TypePool    []string
	Seed        int64
}

// GenerateCandidate builds one deterministic candidate level from Params.
// Every board cell starts as the t0 sentinel; state.Build resolves the
// final per-cell types later so per-type counts stay divisible by three
// (spec.md §9) — this package never re-derives that arithmetic itself.
func GenerateCandidate(p Params) (Candidate, error) {
	if p.Cols <= 0 || p.Rows <= 0 || p.Layers <= 0 {
		return Candidate{}, fmt.Errorf("generator: invalid board dimensions %dx%dx%d", p.Layers, p.Cols, p.Rows)
	}
	if p.TypeCount <= 0 {
		return Candidate{}, fmt.Errorf("generator: type count must be positive")
	}

	rng := rand.New(rand.NewSource(p.Seed))
	typePool := make([]string, p.TypeCount)
	for i := range typePool {
		typePool[i] = fmt.Sprintf("t%d", i+1)
	}
	if p.Difficulty >= keyMinDifficulty {
		typePool = append(typePool, "key")
	}

	unlocked := unlockedAt(p.Difficulty)

	layers := make([]state.LayerSpec, p.Layers)
	for l := 0; l < p.Layers; l++ {
		cols := p.Cols - l // narrower layers stack to a point, like a pyramid
		if cols < 1 {
			cols = 1
		}
		rows := p.Rows
		tiles := make(map[string]state.TileSpec, cols*rows)
		// Fill only a multiple of three cells: each board tile is one t0 slot
		// and stack/craft inners add three more, so every layer's t0 total
		// stays divisible by three and state.Build can resolve it.
		usable := cols*rows - (cols*rows)%3
		placed := 0
		for x := 0; x < cols; x++ {
			for y := 0; y < rows; y++ {
				if placed == usable {
					continue
				}
				placed++
				gate := Gate{Kind: "none"}
				if rng.Float64() < p.ObstacleDensity {
					gate = pickGate(unlocked, rng)
				}
				tiles[fmt.Sprintf("%d_%d", x, y)] = specFor(gate, rng)
			}
		}
		sanitizeLinks(tiles)
		layers[l] = state.LayerSpec{Col: cols, Row: rows, Tiles: tiles}
	}

	goalCount := chooseGoalCounts(typePool, rng)

	desc := state.LevelDescription{
		LayerCount: p.Layers,
		Layers:     layers,
		GoalCount:  goalCount,
		MaxMoves:   estimateMaxMoves(p.Cols, p.Rows, p.Layers),
		RandSeed:   p.Seed,
	}
	return Candidate{Description: desc, TypePool: typePool, Seed: p.Seed}, nil
}

// sanitizeLinks downgrades any link tile whose declared direction does not
// point at another (still-link) tile within the same layer to a plain
// tile, since state.Build rejects a link with no partner outright
// (spec.md §9's link cross-pointer invariant, enforced at construction
// time rather than here). Downgrading one tile can orphan a tile that
// pointed at it, so this runs to a fixpoint rather than a single pass.
func sanitizeLinks(tiles map[string]state.TileSpec) {
	linkDelta := map[string][2]int{
		"link_n": {0, 1}, "link_s": {0, -1}, "link_e": {1, 0}, "link_w": {-1, 0},
	}
	for {
		changed := false
		for key, spec := range tiles {
			delta, ok := linkDelta[spec.Attribute]
			if !ok {
				continue
			}
			x, y, err := parsePos(key)
			if err != nil {
				continue
			}
			neighborKey := fmt.Sprintf("%d_%d", x+delta[0], y+delta[1])
			neighbor, ok := tiles[neighborKey]
			if !ok || !strings.HasPrefix(neighbor.Attribute, "link_") {
				spec.Attribute = ""
				tiles[key] = spec
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func parsePos(key string) (int, int, error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("generator: invalid position key %q", key)
	}
	var x, y int
	if _, err := fmt.Sscanf(parts[0], "%d", &x); err != nil {
		return 0, 0, err
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &y); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// stackCraftDepth bounds how many sentinel slots a generated stack or craft
// inner sequence carries, before resolveSentinels assigns real types.
const stackCraftDepth = 3

// specFor turns a gate into the TileSpec it sits behind, filling in
// whatever extra count or inner sequence that gimmick needs. Board cells
// always keep the Sentinel placeholder type — only the attribute and
// extras vary here.
func specFor(gate Gate, rng *rand.Rand) state.TileSpec {
	switch gate.Kind {
	case "link":
		dirs := []string{"link_n", "link_s", "link_e", "link_w"}
		return state.TileSpec{Type: tile.Sentinel, Attribute: dirs[rng.Intn(len(dirs))]}

	case "curtain":
		return state.TileSpec{Type: tile.Sentinel, Attribute: "curtain_close"}

	case "bomb":
		const min, max = 3, 5
		return state.TileSpec{
			Type:       tile.Sentinel,
			Attribute:  "bomb",
			ExtraCount: min + rng.Intn(max-min+1),
			HasExtra:   true,
		}

	case "stack", "craft":
		dirs := []string{"n", "s", "e", "w"}
		attr := gate.Kind + "_" + dirs[rng.Intn(len(dirs))]
		inner := make([]string, stackCraftDepth)
		for i := range inner {
			inner[i] = tile.Sentinel
		}
		return state.TileSpec{
			Type:        tile.Sentinel,
			Attribute:   attr,
			ExtraCount:  stackCraftDepth,
			ExtraInner:  strings.Join(inner, "_"),
			HasExtra:    true,
			HasExtraSeq: true,
		}

	case "none":
		return state.TileSpec{Type: tile.Sentinel}

	default:
		return state.TileSpec{Type: tile.Sentinel, Attribute: gate.Kind}
	}
}

// chooseGoalCounts assigns each pool type a goal target that is itself a
// multiple of three, since every clearable group removes exactly three
// tiles at a time (spec.md §3.4 invariant (a)).
func chooseGoalCounts(typePool []string, rng *rand.Rand) map[string]int {
	goals := make(map[string]int, len(typePool))
	for _, t := range typePool {
		groups := 1 + rng.Intn(3)
		goals[t] = groups * 3
	}
	return goals
}

// estimateMaxMoves mirrors the teacher's vine-count heuristic (cells times
// 1.5, floored at a playable minimum), scaled down by three since tiles
// clear in groups of three rather than one at a time.
func estimateMaxMoves(cols, rows, layers int) int {
	cells := cols * rows * layers
	maxMoves := int(float64(cells) / 3 * 1.5)
	if maxMoves < 5 {
		maxMoves = 5
	}
	return maxMoves
}
