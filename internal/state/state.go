package state

import (
	"math/rand"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/eng618/driftstack-engine/internal/tile"
)

// Terminal is the authoritative end-of-game status (spec.md §3.4).
type Terminal int

const (
	TerminalRunning Terminal = iota
	TerminalCleared
	TerminalFailed
)

// FailReason distinguishes the terminal-failure classes of spec.md §4.D.3.
// Blocked is deliberately absent: a Blocked refusal never reaches Terminal,
// it leaves state unchanged (spec.md §4.D.3: "Only the first leaves state
// mutable").
type FailReason int

const (
	FailNone FailReason = iota
	FailBombExploded
	FailDockOverflow
	FailMoveBudgetExhausted
	FailImpossibleLevel
)

func (r FailReason) String() string {
	switch r {
	case FailBombExploded:
		return "BombExploded"
	case FailDockOverflow:
		return "DockOverflow"
	case FailMoveBudgetExhausted:
		return "MoveBudgetExhausted"
	case FailImpossibleLevel:
		return "ImpossibleLevel"
	default:
		return "None"
	}
}

// DockSlot is one occupied dock position.
type DockSlot struct {
	TileType  string
	GoalToken string
	SourceKey string // canonical key of the tile that was picked
}

// GameState is the single authoritative simulation structure described in
// spec.md §3.4. All registries are denormalised side maps keyed by a tile's
// canonical key; the mutators in mutate.go keep the Tile's own Effect copy
// in sync with them.
type GameState struct {
	tiles     map[string]*tile.Tile
	layerCols map[int]int
	maxLayer  int

	dock         []DockSlot
	dockCapacity int
	keyTokens    int // "key" tiles inserted into the dock so far

	goalsRemaining map[string]int

	movesUsed int
	maxMoves  int
	timeAttack int // advisory only, per spec.md §9 Open Question 3

	frogPositions map[string]bool
	bombStates    map[string]int
	curtainStates map[string]bool
	iceStates     map[string]int
	grassStates   map[string]int
	chainStates   map[string]bool
	linkPartner   map[string]string

	teleportParticipants []string // ordered canonical keys
	teleportClickCount   int

	stackInner     map[string][]string // canonical key -> remaining inner sequence, front = current top
	craftInner     map[string][]string // canonical key -> remaining inner sequence, front = next emitted
	craftGoalToken map[string]string   // canonical key -> goal token credited by this craft's emissions

	terminal   Terminal
	failReason FailReason

	rng *rand.Rand

	// accessible is a lock-free cache of pickable tile keys plus per-type
	// pickable counts, invalidated on any mutation that can change
	// reachability (spec.md §3.4, §5). xsync.MapOf lets a concurrent reader
	// (e.g. the bot's lookahead clone) observe a consistent snapshot without
	// a manual mutex.
	accessible     *xsync.MapOf[string, bool]
	perTypeCounts  *xsync.MapOf[string, int]
	cacheValid     bool
}

func newEmptyState(rng *rand.Rand) *GameState {
	return &GameState{
		tiles:          make(map[string]*tile.Tile),
		layerCols:      make(map[int]int),
		goalsRemaining: make(map[string]int),
		frogPositions:  make(map[string]bool),
		bombStates:     make(map[string]int),
		curtainStates:  make(map[string]bool),
		iceStates:      make(map[string]int),
		grassStates:    make(map[string]int),
		chainStates:    make(map[string]bool),
		linkPartner:    make(map[string]string),
		stackInner:     make(map[string][]string),
		craftInner:     make(map[string][]string),
		craftGoalToken: make(map[string]string),
		rng:            rng,
		accessible:     xsync.NewMapOf[string, bool](),
		perTypeCounts:  xsync.NewMapOf[string, int](),
	}
}

// Terminal returns the current terminal status.
func (g *GameState) Terminal() Terminal { return g.terminal }

// FailReason returns the reason a Failed terminal was reached.
func (g *GameState) FailReason() FailReason { return g.failReason }

// MovesUsed and MaxMoves expose the move budget.
func (g *GameState) MovesUsed() int { return g.movesUsed }
func (g *GameState) MaxMoves() int  { return g.maxMoves }

// DockCapacity returns 7 minus still-locked slots, adjusted upward by
// collected key tiles (spec.md §3.4, §4.D.2 "Key gimmick").
func (g *GameState) DockCapacity() int { return g.dockCapacity }

// Dock returns a copy of the current dock contents in arrival order.
func (g *GameState) Dock() []DockSlot {
	out := make([]DockSlot, len(g.dock))
	copy(out, g.dock)
	return out
}

// GoalsRemaining returns a copy of the goal-token countdown map.
func (g *GameState) GoalsRemaining() map[string]int {
	out := make(map[string]int, len(g.goalsRemaining))
	for k, v := range g.goalsRemaining {
		out[k] = v
	}
	return out
}

// Tile looks up a tile by canonical key.
func (g *GameState) Tile(key string) (*tile.Tile, bool) {
	t, ok := g.tiles[key]
	return t, ok
}

// TileAt looks up a tile by (layer, x, y).
func (g *GameState) TileAt(layer, x, y int) (*tile.Tile, bool) {
	return g.Tile(tile.Key(layer, x, y))
}

// AllKeys returns every canonical key currently registered on the board.
// Order is unspecified.
func (g *GameState) AllKeys() []string {
	keys := make([]string, 0, len(g.tiles))
	for k := range g.tiles {
		keys = append(keys, k)
	}
	return keys
}

// LayerCols returns the column count map used by the geometry package.
func (g *GameState) LayerCols() map[int]int { return g.layerCols }

// MaxLayer returns the highest populated layer index.
func (g *GameState) MaxLayer() int { return g.maxLayer }

// FrogAt reports whether a frog currently occupies key.
func (g *GameState) FrogAt(key string) bool { return g.frogPositions[key] }

// IceRemaining, GrassRemaining, ChainUnlocked, CurtainOpen, BombRemaining,
// LinkPartner read the canonical registries directly (the Tile.Effect copy
// is kept in sync by every mutation, but callers that only need a cheap
// read should prefer these over re-deriving from the tile).
func (g *GameState) IceRemaining(key string) (int, bool)   { v, ok := g.iceStates[key]; return v, ok }
func (g *GameState) GrassRemaining(key string) (int, bool) { v, ok := g.grassStates[key]; return v, ok }
func (g *GameState) ChainUnlocked(key string) bool          { return g.chainStates[key] }
func (g *GameState) CurtainOpen(key string) bool            { return g.curtainStates[key] }
func (g *GameState) BombRemaining(key string) (int, bool)  { v, ok := g.bombStates[key]; return v, ok }
func (g *GameState) LinkPartner(key string) (string, bool) { v, ok := g.linkPartner[key]; return v, ok }

// TeleportClickCount returns the current click counter (mod 3).
func (g *GameState) TeleportClickCount() int { return g.teleportClickCount }

// TeleportParticipants returns a copy of the ordered participant key list.
func (g *GameState) TeleportParticipants() []string {
	out := make([]string, len(g.teleportParticipants))
	copy(out, g.teleportParticipants)
	return out
}
