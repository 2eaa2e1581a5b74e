package tile

import "fmt"

// Role classifies how a tile is addressed and exposed, per spec.md §3.2:
// board tiles sit directly on the grid; stack/craft tiles are containers
// addressed by position plus an inner index and emit their constituents one
// at a time.
type Role int

const (
	RoleBoard Role = iota
	RoleStackInternal
	RoleCraftInternal
)

// Sentinel is the placeholder tile type resolved at level-materialisation
// time (spec.md §3.2). The game simulator itself never sees it.
const Sentinel = "t0"

// Tile is one board tile: its position, type, effect and the goal token it
// credits when matched.
type Tile struct {
	Layer    int
	X, Y     int
	TileType string
	Effect   Effect
	Picked   bool
	Role     Role

	// GoalToken is the goal counter a clear of this tile credits. Usually
	// equal to TileType, but a craft-emitted tile can be tagged to credit
	// a different origin goal (spec.md §4.D.2 step 7).
	GoalToken string
}

// Key returns the tile's canonical key "L_x_y" used to address every
// registry in GameState (spec.md §3.4). Equality on tiles is identity via
// this key, never structural comparison.
func Key(layer, x, y int) string {
	return fmt.Sprintf("%d_%d_%d", layer, x, y)
}

// Key returns this tile's own canonical key.
func (t *Tile) Key() string {
	return Key(t.Layer, t.X, t.Y)
}
