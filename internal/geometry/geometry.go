// Package geometry implements the board's layer/coordinate arithmetic and
// the upper-layer blocking rule. It is a pure function module: nothing here
// allocates beyond a small fixed offset table, and nothing mutates state.
package geometry

// Point is an integer position within a single layer.
type Point struct {
	X, Y int
}

// offset is a relative (dx, dy) displacement against an upper layer.
type offset struct {
	DX, DY int
}

var (
	sameParityOffsets = []offset{{0, 0}}

	widerUpperOffsets = []offset{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
	}

	narrowerUpperOffsets = []offset{
		{-1, -1}, {0, -1}, {-1, 0}, {0, 0},
	}
)

// offsetsFor returns the fixed offset set that applies between layer L and
// the higher layer upper, per spec.md §3.1:
//
//   - same parity                      -> {(0,0)}
//   - different parity, upper wider    -> {(0,0),(1,0),(0,1),(1,1)}
//   - different parity, upper narrower or equal -> {(-1,-1),(0,-1),(-1,0),(0,0)}
func offsetsFor(layer, upper, colLayer, colUpper int) []offset {
	if layer%2 == upper%2 {
		return sameParityOffsets
	}
	if colUpper > colLayer {
		return widerUpperOffsets
	}
	return narrowerUpperOffsets
}

// Occupancy answers whether a tile still occupies (layer, x, y). Callers
// pass a closure bound to their own tile store so this package stays free
// of any dependency on the tile/state packages.
type Occupancy func(layer, x, y int) bool

// UpperBlockers yields the candidate positions in higher layers that could
// block the tile at (layer, x, y), without allocating past the small fixed
// offset table for each higher layer.
func UpperBlockers(layer, x, y int, layerCols map[int]int, maxLayer int, yield func(layer, x, y int) bool) {
	colLayer := layerCols[layer]
	for upper := layer + 1; upper <= maxLayer; upper++ {
		colUpper, ok := layerCols[upper]
		if !ok {
			continue
		}
		for _, o := range offsetsFor(layer, upper, colLayer, colUpper) {
			if !yield(upper, x+o.DX, y+o.DY) {
				return
			}
		}
	}
}

// IsBlockedByUpper reports whether any candidate upper-layer position hosts
// an un-picked tile. The same-parity case short-circuits on the very first
// (and only) candidate.
func IsBlockedByUpper(layer, x, y int, layerCols map[int]int, maxLayer int, occupied Occupancy) bool {
	blocked := false
	UpperBlockers(layer, x, y, layerCols, maxLayer, func(ul, ux, uy int) bool {
		if occupied(ul, ux, uy) {
			blocked = true
			return false
		}
		return true
	})
	return blocked
}
