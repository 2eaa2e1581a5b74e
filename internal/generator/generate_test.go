package generator

import (
	"testing"

	"github.com/eng618/driftstack-engine/internal/state"
)

func TestGenerateCandidateRejectsBadDimensions(t *testing.T) {
	_, err := GenerateCandidate(Params{Cols: 0, Rows: 3, Layers: 1, TypeCount: 3, Seed: 1})
	if err == nil {
		t.Fatal("expected an error for zero columns")
	}
}

func TestGenerateCandidateRejectsZeroTypeCount(t *testing.T) {
	_, err := GenerateCandidate(Params{Cols: 3, Rows: 3, Layers: 1, TypeCount: 0, Seed: 1})
	if err == nil {
		t.Fatal("expected an error for zero type count")
	}
}

func TestGenerateCandidateIsDeterministic(t *testing.T) {
	p := Params{Cols: 5, Rows: 5, Layers: 2, TypeCount: 4, ObstacleDensity: 0.3, Seed: 777}
	a, err := GenerateCandidate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateCandidate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a.Description.Layers) != len(b.Description.Layers) {
		t.Fatalf("layer count differs across identical-seed runs")
	}
	for i := range a.Description.Layers {
		la, lb := a.Description.Layers[i], b.Description.Layers[i]
		if len(la.Tiles) != len(lb.Tiles) {
			t.Fatalf("layer %d tile count differs: %d vs %d", i, len(la.Tiles), len(lb.Tiles))
		}
		for pos, ta := range la.Tiles {
			tb, ok := lb.Tiles[pos]
			if !ok || ta.Attribute != tb.Attribute {
				t.Fatalf("layer %d pos %s diverged across identical-seed runs", i, pos)
			}
		}
	}
}

func TestGenerateCandidateKeyGatedByDifficulty(t *testing.T) {
	low, err := GenerateCandidate(Params{Cols: 3, Rows: 3, Layers: 1, TypeCount: 3, Difficulty: 0.0, Seed: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, typ := range low.TypePool {
		if typ == "key" {
			t.Fatalf("key should not appear below its unlock threshold")
		}
	}

	high, err := GenerateCandidate(Params{Cols: 3, Rows: 3, Layers: 1, TypeCount: 3, Difficulty: 0.5, Seed: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	found := false
	for _, typ := range high.TypePool {
		if typ == "key" {
			found = true
		}
	}
	if !found {
		t.Fatalf("key should appear once difficulty clears its unlock threshold")
	}
}

// TestGenerateCandidateBuilds checks that every emitted TileSpec actually
// materialises into a valid GameState — the strongest available guarantee
// that the attribute strings this package emits stay in sync with what
// tile.ParseAttribute accepts.
func TestGenerateCandidateBuilds(t *testing.T) {
	p := Params{Cols: 4, Rows: 4, Layers: 1, TypeCount: 4, ObstacleDensity: 0.6, Difficulty: 0.8, Seed: 99}
	cand, err := GenerateCandidate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := state.Build(cand.Description, state.BuildOptions{TypePool: cand.TypePool}); err != nil {
		t.Fatalf("generated candidate failed to build: %v", err)
	}
}

func TestGoalCountsAreMultiplesOfThree(t *testing.T) {
	cand, err := GenerateCandidate(Params{Cols: 3, Rows: 3, Layers: 1, TypeCount: 3, Seed: 5})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for typ, count := range cand.Description.GoalCount {
		if count%3 != 0 {
			t.Errorf("goal count for %s is %d, not a multiple of three", typ, count)
		}
	}
}
