package geometry

import "testing"

func occupantSet(occupied ...[3]int) Occupancy {
	set := make(map[[3]int]bool, len(occupied))
	for _, o := range occupied {
		set[o] = true
	}
	return func(layer, x, y int) bool {
		return set[[3]int{layer, x, y}]
	}
}

func TestSameParityBlocksOnlyDirectlyAbove(t *testing.T) {
	layerCols := map[int]int{0: 7, 2: 7}
	occ := occupantSet([3]int{2, 3, 4})

	if !IsBlockedByUpper(0, 3, 4, layerCols, 2, occ) {
		t.Fatal("expected same-parity direct overlap to block")
	}
	if IsBlockedByUpper(0, 3, 5, layerCols, 2, occ) {
		t.Fatal("adjacent same-parity cell must not block")
	}
}

func TestDifferentParityWiderUpper(t *testing.T) {
	layerCols := map[int]int{0: 7, 1: 8}
	occ := occupantSet([3]int{1, 4, 5})

	// candidates relative to (3,4) at layer 0: (3,4),(4,4),(3,5),(4,5)
	if !IsBlockedByUpper(0, 3, 4, layerCols, 1, occ) {
		t.Fatal("expected (4,5) candidate to block")
	}
	if IsBlockedByUpper(0, 2, 2, layerCols, 1, occ) {
		t.Fatal("unrelated position must not be blocked")
	}
}

func TestDifferentParityNarrowerUpper(t *testing.T) {
	layerCols := map[int]int{0: 8, 1: 7}
	occ := occupantSet([3]int{1, 2, 3})

	// candidates relative to (3,4): (2,3),(3,3),(2,4),(3,4)
	if !IsBlockedByUpper(0, 3, 4, layerCols, 1, occ) {
		t.Fatal("expected (2,3) candidate to block")
	}
}

func TestPickedTileNeverBlocks(t *testing.T) {
	layerCols := map[int]int{0: 7, 1: 7}
	occ := func(layer, x, y int) bool { return false } // everything picked
	if IsBlockedByUpper(0, 3, 4, layerCols, 1, occ) {
		t.Fatal("a picked (absent) upper tile must not block")
	}
}

func TestMissingLayerSkipped(t *testing.T) {
	layerCols := map[int]int{0: 7}
	occ := occupantSet()
	if IsBlockedByUpper(0, 3, 4, layerCols, 5, occ) {
		t.Fatal("layers with no column count must be skipped, not treated as blocking")
	}
}
