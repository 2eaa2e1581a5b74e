package state

// InsertDock appends a picked tile into the dock while preserving the
// same-type grouping invariant (spec.md §3.4 invariant (a)): a new tile is
// placed immediately after the last tile of its own type if one is already
// present, otherwise at the end of the dock.
func (g *GameState) InsertDock(slot DockSlot) {
	insertAt := len(g.dock)
	for i := len(g.dock) - 1; i >= 0; i-- {
		if g.dock[i].TileType == slot.TileType {
			insertAt = i + 1
			break
		}
	}
	g.dock = append(g.dock, DockSlot{})
	copy(g.dock[insertAt+1:], g.dock[insertAt:])
	g.dock[insertAt] = slot

	if slot.TileType == "key" {
		g.keyTokens++
	}
}

// DockOverflow reports whether the dock is full, i.e. holds at least
// capacity tiles.
func (g *GameState) DockOverflow() bool {
	return len(g.dock) >= g.dockCapacity
}

// MatchedGroup records one group of three same-type tiles cleared from the
// dock in a single matching pass.
type MatchedGroup struct {
	TileType   string
	GoalTokens []string // the three cleared slots' goal tokens, in arrival order
}

// MatchDock repeatedly removes exactly three dock slots of the same type in
// arrival order until no group of three remains (spec.md §4.D.2 step 7).
// Key-token groups additionally promote dock capacity (spec.md §3.3 "Key").
func (g *GameState) MatchDock() []MatchedGroup {
	var groups []MatchedGroup
	for {
		counts := make(map[string]int)
		firstIdx := make(map[string]int)
		for i, slot := range g.dock {
			if counts[slot.TileType] == 0 {
				firstIdx[slot.TileType] = i
			}
			counts[slot.TileType]++
		}

		matchType := ""
		for t, c := range counts {
			if c >= 3 {
				matchType = t
				break
			}
		}
		if matchType == "" {
			return groups
		}

		var cleared []string
		remaining := g.dock[:0:0]
		taken := 0
		for _, slot := range g.dock {
			if slot.TileType == matchType && taken < 3 {
				cleared = append(cleared, slot.GoalToken)
				taken++
				continue
			}
			remaining = append(remaining, slot)
		}
		g.dock = remaining
		groups = append(groups, MatchedGroup{TileType: matchType, GoalTokens: cleared})

		for _, token := range cleared {
			if g.goalsRemaining[token] > 0 {
				g.goalsRemaining[token]--
			}
		}

		if matchType == "key" {
			if g.dockCapacity < 7 {
				g.dockCapacity++
			}
		}
	}
}

// DockEmpty reports whether the dock currently holds no slots.
func (g *GameState) DockEmpty() bool {
	return len(g.dock) == 0
}

// BoardEmpty reports whether every board tile has been picked.
func (g *GameState) BoardEmpty() bool {
	for _, t := range g.tiles {
		if !t.Picked {
			return false
		}
	}
	return true
}

// AllGoalsCleared reports whether every goal counter has reached zero.
func (g *GameState) AllGoalsCleared() bool {
	for _, remaining := range g.goalsRemaining {
		if remaining > 0 {
			return false
		}
	}
	return true
}
