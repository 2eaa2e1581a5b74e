package state

import "github.com/eng618/driftstack-engine/internal/tile"

// MarkPicked flags a board tile as picked. Invariant (d) — a picked tile
// never re-appears as un-picked — holds because nothing in this package
// ever clears the flag once set.
func (g *GameState) MarkPicked(key string) {
	if t, ok := g.tiles[key]; ok {
		t.Picked = true
	}
}

// DecrementIce reduces an ice tile's remaining count by one, floored at
// zero, and keeps the Tile's own copy in sync with the canonical registry.
func (g *GameState) DecrementIce(key string) {
	if v, ok := g.iceStates[key]; ok && v > 0 {
		g.iceStates[key] = v - 1
		if t, ok := g.tiles[key]; ok {
			t.Effect.IceRemaining = v - 1
		}
	}
}

// DecrementGrass mirrors DecrementIce for the Grass gimmick.
func (g *GameState) DecrementGrass(key string) {
	if v, ok := g.grassStates[key]; ok && v > 0 {
		g.grassStates[key] = v - 1
		if t, ok := g.tiles[key]; ok {
			t.Effect.GrassRemaining = v - 1
		}
	}
}

// UnlockChain flips a chain tile's unlocked flag to true.
func (g *GameState) UnlockChain(key string) {
	g.chainStates[key] = true
	if t, ok := g.tiles[key]; ok {
		t.Effect.ChainUnlocked = true
	}
}

// SetCurtainOpen sets a curtain tile's open flag.
func (g *GameState) SetCurtainOpen(key string, open bool) {
	g.curtainStates[key] = open
	if t, ok := g.tiles[key]; ok {
		t.Effect.CurtainOpen = open
	}
}

// DecrementBomb reduces a bomb's countdown by one and returns the new
// remaining count.
func (g *GameState) DecrementBomb(key string) int {
	v := g.bombStates[key] - 1
	g.bombStates[key] = v
	if t, ok := g.tiles[key]; ok {
		t.Effect.BombRemaining = v
	}
	return v
}

// SetLinkCanPick updates a link tile's derived pickability flag.
func (g *GameState) SetLinkCanPick(key string, canPick bool) {
	if t, ok := g.tiles[key]; ok {
		t.Effect.LinkCanPick = canPick
	}
}

// MoveFrog relocates a frog obstacle from oldKey to newKey. No-op (stays in
// place) when newKey == oldKey.
func (g *GameState) MoveFrog(oldKey, newKey string) {
	if oldKey == newKey {
		return
	}
	delete(g.frogPositions, oldKey)
	g.frogPositions[newKey] = true
}

// FrogKeys returns the current frog-occupied canonical keys.
func (g *GameState) FrogKeys() []string {
	keys := make([]string, 0, len(g.frogPositions))
	for k := range g.frogPositions {
		keys = append(keys, k)
	}
	return keys
}

// StackTop peeks the currently exposed tile type of a stack (its own
// TileType, which always mirrors the current top).
func (g *GameState) StackTop(key string) (string, bool) {
	t, ok := g.tiles[key]
	if !ok || t.Effect.Kind != tile.KindStack {
		return "", false
	}
	return t.TileType, true
}

// StackAdvance is called after a stack's current top has been picked into
// the dock: it pops the next inner tile into view, or marks the stack
// picked if its inner sequence is exhausted. Returns true if the stack is
// now exhausted (fully picked).
func (g *GameState) StackAdvance(key string) bool {
	t, ok := g.tiles[key]
	if !ok {
		return true
	}
	inner := g.stackInner[key]
	if len(inner) == 0 {
		t.Picked = true
		return true
	}
	next := inner[0]
	g.stackInner[key] = inner[1:]
	t.TileType = next
	t.GoalToken = next
	return false
}

// CraftPending reports whether a craft still has unemitted inner tiles.
func (g *GameState) CraftPending(key string) bool {
	return len(g.craftInner[key]) > 0
}

// CraftAdvance pops the craft's next inner tile for emission. When the
// sequence is exhausted after this pop, the craft tile itself is marked
// picked and removed from the board (spec.md §4.D.2: "An empty craft is
// removed from the board").
func (g *GameState) CraftAdvance(key string) (emittedType string, ok bool) {
	inner := g.craftInner[key]
	if len(inner) == 0 {
		return "", false
	}
	emittedType = inner[0]
	g.craftInner[key] = inner[1:]
	if len(g.craftInner[key]) == 0 {
		if t, exists := g.tiles[key]; exists {
			t.Picked = true
		}
	}
	return emittedType, true
}

// CraftGoalToken returns the goal token a craft's emissions credit.
func (g *GameState) CraftGoalToken(key string) string {
	return g.craftGoalToken[key]
}

// AddBoardTile materialises a new plain board tile, e.g. a craft emission
// into its designated emit cell (spec.md §4.D.2).
func (g *GameState) AddBoardTile(layer, x, y int, tileType, goalToken string) *tile.Tile {
	t := &tile.Tile{Layer: layer, X: x, Y: y, TileType: tileType, GoalToken: goalToken, Role: tile.RoleBoard}
	g.tiles[t.Key()] = t
	return t
}

// IncrementMoves advances the move counter by one.
func (g *GameState) IncrementMoves() { g.movesUsed++ }

// SetTerminal sets the authoritative terminal status and, for Failed, the
// reason.
func (g *GameState) SetTerminal(term Terminal, reason FailReason) {
	g.terminal = term
	g.failReason = reason
}

// TeleportTick advances the teleport click counter modulo 3 and returns the
// new value, per spec.md §4.D.2 step 6.
func (g *GameState) TeleportTick() int {
	g.teleportClickCount = (g.teleportClickCount + 1) % 3
	return g.teleportClickCount
}

// ShuffleTeleportTypes permutes the TileType of the current teleport
// participants using the game's own RNG, leaving positions untouched.
func (g *GameState) ShuffleTeleportTypes() {
	keys := g.teleportParticipants
	if len(keys) < 2 {
		return
	}
	types := make([]string, len(keys))
	for i, k := range keys {
		types[i] = g.tiles[k].TileType
	}
	g.rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })
	for i, k := range keys {
		g.tiles[k].TileType = types[i]
		g.tiles[k].GoalToken = types[i]
	}
}

// RemoveTeleportParticipant drops a key from the teleport participant list,
// e.g. because the tile was picked.
func (g *GameState) RemoveTeleportParticipant(key string) {
	out := g.teleportParticipants[:0]
	for _, k := range g.teleportParticipants {
		if k != key {
			out = append(out, k)
		}
	}
	g.teleportParticipants = out
}

// StripTeleportEffect removes the Teleport kind from the remaining
// participants and promotes each survivor's current type to a permanent
// override (spec.md §4.D.2 step 6: "each surviving participant's new tile
// type is promoted to a permanent override").
func (g *GameState) StripTeleportEffect() {
	for _, k := range g.teleportParticipants {
		if t, ok := g.tiles[k]; ok {
			t.Effect.Kind = tile.KindNone
		}
	}
	g.teleportParticipants = nil
}

// RNG exposes the per-game RNG used by frog hops and teleport shuffles.
func (g *GameState) RNG() interface {
	Intn(int) int
} {
	return g.rng
}
