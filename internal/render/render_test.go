package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eng618/driftstack-engine/internal/generator"
)

func TestAllRendersEveryLayer(t *testing.T) {
	cand, err := generator.GenerateCandidate(generator.Params{
		Cols: 4, Rows: 4, Layers: 2, TypeCount: 4, ObstacleDensity: 0.4, Difficulty: 0.6, Seed: 3,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var buf bytes.Buffer
	All(&buf, cand.Description, true)
	out := buf.String()

	if !strings.Contains(out, "layer 0 ") {
		t.Fatalf("expected a layer 0 header, got:\n%s", out)
	}
	if !strings.Contains(out, "layer 1 ") {
		t.Fatalf("expected a layer 1 header, got:\n%s", out)
	}
	if !strings.Contains(out, "legend:") {
		t.Fatalf("expected a legend line, got:\n%s", out)
	}
}

func TestAllRendersObstacleFreeLevel(t *testing.T) {
	cand, err := generator.GenerateCandidate(generator.Params{
		Cols: 3, Rows: 3, Layers: 1, TypeCount: 3, ObstacleDensity: 0, Seed: 1,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var buf bytes.Buffer
	All(&buf, cand.Description, false)
	if buf.Len() == 0 {
		t.Fatal("expected non-empty render output")
	}
}
