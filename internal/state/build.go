package state

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/eng618/driftstack-engine/internal/tile"
)

// BuildOptions configures level materialisation (spec.md §4.C).
type BuildOptions struct {
	// TypePool is the bounded set of matching tile types t0 placeholders are
	// resolved into. Sorted internally for determinism regardless of input
	// order; only the shuffle draws on RNG.
	TypePool []string
	// PlayRNG seeds the game's own RNG (frog hops, teleport shuffles) —
	// independent of the materialisation RNG below (spec.md §5).
	PlayRNG *rand.Rand
}

// t0Slot is one position (board, stack, or craft inner) still carrying the
// Sentinel placeholder, pending resolution.
type t0Slot struct {
	kind       string // "board", "stack", "craft"
	key        string // canonical key for board tiles
	stackKey   string // canonical key of the owning stack/craft
	innerIndex int
}

// Build constructs a GameState from a level description, implementing
// spec.md §4.C steps 1-7 (run in the order 5, 7, 1-2, 6, 3-4).
func Build(desc LevelDescription, opts BuildOptions) (*GameState, error) {
	if len(opts.TypePool) == 0 {
		return nil, fmt.Errorf("state: build requires a non-empty type pool for t0 resolution")
	}
	matRNG := rand.New(rand.NewSource(desc.RandSeed))
	playRNG := opts.PlayRNG
	if playRNG == nil {
		playRNG = rand.New(rand.NewSource(desc.RandSeed + 1))
	}

	g := newEmptyState(playRNG)
	g.maxMoves = desc.MaxMoves
	g.timeAttack = desc.TimeAttack

	// Step 5: dock_capacity = 7 - unlock_tile.
	locked := desc.UnlockTile
	if locked < 0 || locked > 6 {
		return nil, fmt.Errorf("state: unlock_tile %d out of range [0,6]", locked)
	}
	g.dockCapacity = 7 - locked

	// Step 7: goals_remaining from the level's goalCount.
	for token, count := range desc.GoalCount {
		if count < 0 {
			return nil, fmt.Errorf("state: goalCount[%s] is negative", token)
		}
		g.goalsRemaining[token] = count
	}

	// Step 1-2: parse each layer's sparse tile map, translate attributes.
	var slots []t0Slot
	for layerIdx, layer := range desc.Layers {
		g.layerCols[layerIdx] = layer.Col
		if layerIdx > g.maxLayer {
			g.maxLayer = layerIdx
		}
		for _, posKey := range sortedTileKeys(layer.Tiles) {
			spec := layer.Tiles[posKey]
			x, y, err := parseXY(posKey)
			if err != nil {
				return nil, err
			}
			eff, err := tile.ParseAttribute(spec.Attribute, spec.ExtraCount)
			if err != nil {
				return nil, fmt.Errorf("state: layer %d pos %s: %w", layerIdx, posKey, err)
			}
			t := &tile.Tile{Layer: layerIdx, X: x, Y: y, TileType: spec.Type, Effect: eff, GoalToken: spec.Type}
			key := t.Key()
			g.tiles[key] = t

			if spec.Type == tile.Sentinel {
				slots = append(slots, t0Slot{kind: "board", key: key})
			}

			switch eff.Kind {
			case tile.KindIce:
				g.iceStates[key] = eff.IceRemaining
			case tile.KindGrass:
				g.grassStates[key] = eff.GrassRemaining
			case tile.KindChain:
				g.chainStates[key] = eff.ChainUnlocked
			case tile.KindCurtain:
				g.curtainStates[key] = eff.CurtainOpen
			case tile.KindBomb:
				g.bombStates[key] = eff.BombRemaining
			case tile.KindFrog:
				g.frogPositions[key] = true
			case tile.KindTeleport:
				g.teleportParticipants = append(g.teleportParticipants, key)
			case tile.KindStack, tile.KindCraft:
				seq := spec.InnerSequence()
				inner := make([]string, len(seq))
				copy(inner, seq)
				if eff.Kind == tile.KindStack {
					g.stackInner[key] = inner
				} else {
					g.craftInner[key] = inner
					g.craftGoalToken[key] = spec.Type
				}
				for i, tt := range inner {
					if tt == tile.Sentinel {
						slots = append(slots, t0Slot{kind: string(eff.Kind.String()), stackKey: key, innerIndex: i})
					}
				}
			}
		}
	}

	// Step 6: seed link partner cross-pointers (the adjacent same-layer cell
	// in the link's own direction, which must also carry a link effect).
	if err := wireLinkPartners(g); err != nil {
		return nil, err
	}

	// Step 3-4: resolve t0 placeholders under the level's own seed so total
	// counts per type are a multiple of three (spec.md §9).
	if err := resolveSentinels(g, slots, opts.TypePool, matRNG); err != nil {
		return nil, err
	}

	return g, nil
}

// wireLinkPartners pairs each Link tile with the Link tile in the adjacent
// same-layer cell in its declared direction, and fails if there is none. Partnering is stored as a position
// reference (canonical key), never an owning pointer, per spec.md §9.
func wireLinkPartners(g *GameState) error {
	for key, t := range g.tiles {
		if t.Effect.Kind != tile.KindLink {
			continue
		}
		dx, dy := t.Effect.LinkDir.Delta()
		nx, ny := t.X+dx, t.Y+dy
		partnerKey := tile.Key(t.Layer, nx, ny)
		partner, ok := g.tiles[partnerKey]
		if !ok || partner.Effect.Kind != tile.KindLink {
			return fmt.Errorf("state: link tile %s has no partner in direction", key)
		}
		t.Effect.LinkPartnerKey = partnerKey
		g.linkPartner[key] = partnerKey
	}
	return nil
}

// resolveSentinels partitions t0 slots across the type pool, shuffled
// deterministically under seed, so every type's final total is divisible
// by three — the matching invariant must make clearance possible.
func resolveSentinels(g *GameState, slots []t0Slot, pool []string, rng *rand.Rand) error {
	if len(slots) == 0 {
		return nil
	}

	sortedPool := append([]string(nil), pool...)
	sort.Strings(sortedPool)

	actual := make(map[string]int)
	for _, t := range g.tiles {
		if t.TileType != tile.Sentinel {
			actual[t.TileType]++
		}
	}
	for _, seq := range g.stackInner {
		for _, tt := range seq {
			if tt != tile.Sentinel {
				actual[tt]++
			}
		}
	}
	for _, seq := range g.craftInner {
		for _, tt := range seq {
			if tt != tile.Sentinel {
				actual[tt]++
			}
		}
	}

	assigned := make([]string, 0, len(slots))
	deficitTotal := 0
	for _, t := range sortedPool {
		deficit := (3 - actual[t]%3) % 3
		deficitTotal += deficit
		for i := 0; i < deficit; i++ {
			assigned = append(assigned, t)
		}
	}
	if deficitTotal > len(slots) {
		return fmt.Errorf("state: impossible level: %d t0 slots cannot cover %d divisibility deficits", len(slots), deficitTotal)
	}
	remaining := len(slots) - deficitTotal
	if remaining%3 != 0 {
		return fmt.Errorf("state: impossible level: %d leftover t0 slots not divisible by three", remaining)
	}
	for i := 0; i < remaining/3; i++ {
		t := sortedPool[i%len(sortedPool)]
		assigned = append(assigned, t, t, t)
	}

	rng.Shuffle(len(assigned), func(i, j int) { assigned[i], assigned[j] = assigned[j], assigned[i] })

	for i, slot := range slots {
		assignedType := assigned[i]
		switch {
		case slot.stackKey == "":
			t := g.tiles[slot.key]
			t.TileType = assignedType
			t.GoalToken = assignedType
		case slot.kind == "stack":
			g.stackInner[slot.stackKey][slot.innerIndex] = assignedType
		default:
			g.craftInner[slot.stackKey][slot.innerIndex] = assignedType
		}
	}
	return nil
}
