// Package analyzer extracts a fixed metric vector from a level description
// and reduces it to a 0..100 difficulty score and an S..D grade. It never
// builds a GameState or runs the rule engine; it reads the raw layout
// directly (spec.md §4.I). The analyze command calls it; the generator does
// not, so generated candidates are not scored or adjusted by it.
package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eng618/driftstack-engine/internal/geometry"
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

// Metrics is the small vector extracted from a level description.
type Metrics struct {
	TotalTiles         int
	ActiveLayers       int
	GoalAmount         int
	ChainCount         int
	FrogCount          int
	IceCount           int
	LinkCount          int
	BombCount          int
	GrassCount         int
	LayerBlockingScore int // tiles blocked-by-upper at the level's initial layout
}

// weights, per spec.md §4.I's fixed weight vector.
const (
	wChain = 5.0
	wFrog  = 6.0
	wIce   = 4.0
	wLink  = 3.0
	wBomb  = 4.0
	wGrass = 3.0
	wLayer = 0.15 // layer blocking score
	wTiles = 0.5
	wLayers = 4.0 // active layer count
	wGoals = 1.5
)

// Extract builds the metric vector from a level description. Attribute
// strings are parsed through tile.ParseAttribute so gimmick classification
// never drifts from the rule engine's own parsing.
func Extract(desc state.LevelDescription) Metrics {
	var m Metrics

	layerCols := make(map[int]int, len(desc.Layers))
	type pos struct{ layer, x, y int }
	occupied := make(map[pos]bool)

	for layerIdx, layer := range desc.Layers {
		layerCols[layerIdx] = layer.Col
		if len(layer.Tiles) > 0 {
			m.ActiveLayers++
		}
		for posKey, spec := range layer.Tiles {
			m.TotalTiles++
			x, y, err := parseXY(posKey)
			if err != nil {
				continue
			}
			occupied[pos{layerIdx, x, y}] = true

			eff, err := tile.ParseAttribute(spec.Attribute, spec.ExtraCount)
			if err != nil {
				continue
			}
			switch eff.Kind {
			case tile.KindChain:
				m.ChainCount++
			case tile.KindFrog:
				m.FrogCount++
			case tile.KindIce:
				m.IceCount++
			case tile.KindLink:
				m.LinkCount++
			case tile.KindBomb:
				m.BombCount++
			case tile.KindGrass:
				m.GrassCount++
			}
		}
	}

	maxLayer := len(desc.Layers) - 1
	occFn := func(layer, x, y int) bool { return occupied[pos{layer, x, y}] }
	for layerIdx, layer := range desc.Layers {
		for posKey := range layer.Tiles {
			x, y, err := parseXY(posKey)
			if err != nil {
				continue
			}
			if geometry.IsBlockedByUpper(layerIdx, x, y, layerCols, maxLayer, occFn) {
				m.LayerBlockingScore++
			}
		}
	}

	for _, count := range desc.GoalCount {
		m.GoalAmount += count
	}

	return m
}

// Score reduces a metric vector to the weighted 0..100 difficulty score.
func Score(m Metrics) float64 {
	raw := wTiles*float64(m.TotalTiles) +
		wLayers*float64(m.ActiveLayers) +
		wChain*float64(m.ChainCount) +
		wFrog*float64(m.FrogCount) +
		wIce*float64(m.IceCount) +
		wLink*float64(m.LinkCount) +
		wBomb*float64(m.BombCount) +
		wGrass*float64(m.GrassCount) +
		wGoals*float64(m.GoalAmount) +
		wLayer*float64(m.LayerBlockingScore)

	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}

// Grade buckets a 0..100 score into S..D, inclusive on the upper bound of
// each bucket (spec.md §4.I: "20 is S, 40 is A").
func Grade(score float64) string {
	switch {
	case score <= 20:
		return "S"
	case score <= 40:
		return "A"
	case score <= 60:
		return "B"
	case score <= 80:
		return "C"
	default:
		return "D"
	}
}

func parseXY(key string) (int, int, error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("analyzer: invalid position key %q", key)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
