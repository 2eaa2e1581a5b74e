package validator

import (
	"testing"

	"github.com/eng618/driftstack-engine/internal/generator"
)

func TestCurvesLoadAndCompile(t *testing.T) {
	if len(Curves) == 0 {
		t.Fatal("expected at least one target curve")
	}
	for _, c := range Curves {
		rate := c.TargetClearRate(0.5)
		if rate < 0 || rate > 1 {
			t.Errorf("curve %s produced out-of-range rate %f at d=0.5", c.Profile, rate)
		}
	}
}

func TestCurvesAreClampedAtExtremes(t *testing.T) {
	for _, c := range Curves {
		if r := c.TargetClearRate(0); r < 0 || r > 1 {
			t.Errorf("curve %s out of range at d=0: %f", c.Profile, r)
		}
		if r := c.TargetClearRate(1); r < 0 || r > 1 {
			t.Errorf("curve %s out of range at d=1: %f", c.Profile, r)
		}
	}
}

func TestValidateFindsABestCandidate(t *testing.T) {
	res, err := Validate(Options{
		Difficulty:     0.1,
		MaxAttempts:    3,
		IterationsEach: 2,
		BaseSeed:       10,
		Gen: generator.Params{
			Cols: 3, Rows: 3, Layers: 1, TypeCount: 3, ObstacleDensity: 0.1,
		},
		GapTolerance: 0,
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Attempts < 1 {
		t.Fatalf("expected at least one recorded attempt")
	}
	if res.Stats == nil {
		t.Fatalf("expected stats to be populated for the retained candidate")
	}
}
