package state

// InvalidateCache marks the accessible-tile and per-type-count caches stale.
// The rule engine does not call it; it refreshes the caches with
// RecomputeAccessible after each move instead.
func (g *GameState) InvalidateCache() {
	g.cacheValid = false
}

// CacheValid reports whether the accessible cache still reflects the
// current board state.
func (g *GameState) CacheValid() bool { return g.cacheValid }

// RecomputeAccessible rebuilds the accessible-tile cache and per-type
// pickable counts from scratch, using the legality predicate supplied by
// the rule engine (which alone knows how to combine board geometry, frog
// occupancy, and per-effect pick predicates). GameState only owns the
// storage and invalidation discipline, not the predicate itself.
func (g *GameState) RecomputeAccessible(isPickable func(key string) bool) {
	g.accessible.Clear()
	g.perTypeCounts.Clear()

	for key, t := range g.tiles {
		if t.Picked {
			continue
		}
		if !isPickable(key) {
			continue
		}
		g.accessible.Store(key, true)
		g.perTypeCounts.Compute(t.TileType, func(old int, loaded bool) (int, bool) {
			return old + 1, false
		})
	}
	g.cacheValid = true
}

// IsAccessible reports whether key is currently pickable, per the last
// cache recomputation.
func (g *GameState) IsAccessible(key string) bool {
	_, ok := g.accessible.Load(key)
	return ok
}

// AccessibleKeys returns every currently pickable tile's canonical key.
// Order is unspecified; callers needing determinism should sort.
func (g *GameState) AccessibleKeys() []string {
	keys := make([]string, 0, g.accessible.Size())
	g.accessible.Range(func(key string, _ bool) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// AccessibleCount returns how many currently pickable board tiles carry
// tileType — the O(1) cache the bot's scoring heuristic relies on
// (spec.md §4.E.3 "two cached per-type count maps").
func (g *GameState) AccessibleCount(tileType string) int {
	v, _ := g.perTypeCounts.Load(tileType)
	return v
}
