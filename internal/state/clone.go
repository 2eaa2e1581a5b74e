package state

import (
	"math/rand"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/eng618/driftstack-engine/internal/tile"
)

// Clone deep-copies the game for hypothetical rollouts (the bot's lookahead,
// spec.md §4.E.4). The clone gets its own RNG seeded independently from
// rngSeed — simulated frog hops and teleport shuffles inside a lookahead
// never draw from the real game's RNG, so exploring a clone never counts as
// RNG consumption by the caller (spec.md §5's zero-RNG audit for the
// Optimal profile is about the caller, not the hypothetical worlds it
// inspects).
func (g *GameState) Clone(rngSeed int64) *GameState {
	out := &GameState{
		tiles:          make(map[string]*tile.Tile, len(g.tiles)),
		layerCols:      make(map[int]int, len(g.layerCols)),
		maxLayer:       g.maxLayer,
		dock:           append([]DockSlot(nil), g.dock...),
		dockCapacity:   g.dockCapacity,
		keyTokens:      g.keyTokens,
		goalsRemaining: make(map[string]int, len(g.goalsRemaining)),
		movesUsed:      g.movesUsed,
		maxMoves:       g.maxMoves,
		timeAttack:     g.timeAttack,
		frogPositions:  make(map[string]bool, len(g.frogPositions)),
		bombStates:     make(map[string]int, len(g.bombStates)),
		curtainStates:  make(map[string]bool, len(g.curtainStates)),
		iceStates:      make(map[string]int, len(g.iceStates)),
		grassStates:    make(map[string]int, len(g.grassStates)),
		chainStates:    make(map[string]bool, len(g.chainStates)),
		linkPartner:    make(map[string]string, len(g.linkPartner)),
		teleportParticipants: append([]string(nil), g.teleportParticipants...),
		teleportClickCount:   g.teleportClickCount,
		stackInner:           make(map[string][]string, len(g.stackInner)),
		craftInner:           make(map[string][]string, len(g.craftInner)),
		craftGoalToken:       make(map[string]string, len(g.craftGoalToken)),
		terminal:             g.terminal,
		failReason:           g.failReason,
		rng:                  rand.New(rand.NewSource(rngSeed)),
		accessible:           xsync.NewMapOf[string, bool](),
		perTypeCounts:        xsync.NewMapOf[string, int](),
	}
	for k, v := range g.layerCols {
		out.layerCols[k] = v
	}
	for k, v := range g.goalsRemaining {
		out.goalsRemaining[k] = v
	}
	for k, v := range g.frogPositions {
		out.frogPositions[k] = v
	}
	for k, v := range g.bombStates {
		out.bombStates[k] = v
	}
	for k, v := range g.curtainStates {
		out.curtainStates[k] = v
	}
	for k, v := range g.iceStates {
		out.iceStates[k] = v
	}
	for k, v := range g.grassStates {
		out.grassStates[k] = v
	}
	for k, v := range g.chainStates {
		out.chainStates[k] = v
	}
	for k, v := range g.linkPartner {
		out.linkPartner[k] = v
	}
	for k, seq := range g.stackInner {
		out.stackInner[k] = append([]string(nil), seq...)
	}
	for k, seq := range g.craftInner {
		out.craftInner[k] = append([]string(nil), seq...)
	}
	for k, v := range g.craftGoalToken {
		out.craftGoalToken[k] = v
	}
	for k, t := range g.tiles {
		cp := *t
		out.tiles[k] = &cp
	}
	return out
}

// Fingerprint produces a cheap, stable summary of board+dock+goal state for
// the bot's lookahead transposition memo (spec.md §4.E.4). It is not a
// cryptographic hash, only a determinism-preserving key.
func (g *GameState) Fingerprint() string {
	keys := g.AllKeys()
	// Sorted so the same state always yields the same string; the result
	// also seeds lookahead clone RNGs.
	sort.Strings(keys)
	buf := make([]byte, 0, 64)
	for _, k := range keys {
		t := g.tiles[k]
		if t.Picked {
			continue
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, t.TileType...)
		buf = append(buf, ',')
	}
	for _, slot := range g.dock {
		buf = append(buf, '|')
		buf = append(buf, slot.TileType...)
	}
	return string(buf)
}
