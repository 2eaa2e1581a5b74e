// Package render draws a level description's layers as an ASCII debug
// dump, in the style of the teacher's cmd/render grid-with-legend dump.
// It is a supplemental, non-spec debug aid: purely a reading convenience
// over a raw state.LevelDescription, never consulted by the engine.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eng618/driftstack-engine/internal/geometry"
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/tile"
)

const emptyCell = "."

// All writes every layer of desc to w, each preceded by a small header,
// followed by a glyph legend.
func All(w io.Writer, desc state.LevelDescription, showCoords bool) {
	layerCols := make(map[int]int, len(desc.Layers))
	for i, l := range desc.Layers {
		layerCols[i] = l.Col
	}
	maxLayer := len(desc.Layers) - 1
	occupied := buildOccupancy(desc)

	for idx, layer := range desc.Layers {
		fmt.Fprintf(w, "layer %d (%dx%d, %d tiles)\n", idx, layer.Col, layer.Row, len(layer.Tiles))
		writeGrid(w, desc, idx, layerCols, maxLayer, occupied, showCoords)
		fmt.Fprintln(w)
	}
	writeLegend(w)
}

func buildOccupancy(desc state.LevelDescription) map[[3]int]bool {
	occ := make(map[[3]int]bool)
	for layerIdx, layer := range desc.Layers {
		for key := range layer.Tiles {
			x, y, err := parseXY(key)
			if err != nil {
				continue
			}
			occ[[3]int{layerIdx, x, y}] = true
		}
	}
	return occ
}

func writeGrid(w io.Writer, desc state.LevelDescription, layerIdx int, layerCols map[int]int, maxLayer int, occupied map[[3]int]bool, showCoords bool) {
	layer := desc.Layers[layerIdx]
	width, height := layer.Col, layer.Row
	if width <= 0 || height <= 0 {
		fmt.Fprintf(w, "  (empty layer)\n")
		return
	}

	occFn := func(l, x, y int) bool { return occupied[[3]int{l, x, y}] }

	fmt.Fprint(w, "   +")
	fmt.Fprint(w, strings.Repeat("---", width))
	fmt.Fprint(w, "+\n")

	for y := height - 1; y >= 0; y-- {
		if showCoords {
			fmt.Fprintf(w, "%2d ", y)
		} else {
			fmt.Fprint(w, "   ")
		}
		fmt.Fprint(w, "| ")
		for x := 0; x < width; x++ {
			key := fmt.Sprintf("%d_%d", x, y)
			spec, ok := layer.Tiles[key]
			cell := emptyCell
			if ok {
				cell = glyphFor(spec)
				if geometry.IsBlockedByUpper(layerIdx, x, y, layerCols, maxLayer, occFn) {
					cell = strings.ToLower(cell)
				}
			}
			fmt.Fprintf(w, "%2s ", cell)
		}
		fmt.Fprint(w, "|\n")
	}

	fmt.Fprint(w, "   +")
	fmt.Fprint(w, strings.Repeat("---", width))
	fmt.Fprint(w, "+\n")

	if showCoords {
		fmt.Fprint(w, "   ")
		for x := 0; x < width; x++ {
			fmt.Fprintf(w, "%2d ", x%100)
		}
		fmt.Fprint(w, "\n")
	}
}

// glyphFor picks a single debug glyph per gimmick kind. The caller lowercases
// it when the cell is blocked by an upper layer at the level's initial
// layout; digit glyphs have no lowercase form and look the same either way.
func glyphFor(spec state.TileSpec) string {
	eff, err := tile.ParseAttribute(spec.Attribute, spec.ExtraCount)
	if err != nil {
		return "?"
	}
	switch eff.Kind {
	case tile.KindChain:
		return "C"
	case tile.KindFrog:
		return "F"
	case tile.KindIce:
		return "I"
	case tile.KindGrass:
		return "G"
	case tile.KindLink:
		return "L"
	case tile.KindBomb:
		return "B"
	case tile.KindCurtain:
		return "X"
	case tile.KindTeleport:
		return "T"
	case tile.KindCraft:
		return "R"
	case tile.KindStack:
		return "S"
	case tile.KindUnknown:
		return "?"
	default:
		return typeGlyph(spec.Type)
	}
}

func typeGlyph(t string) string {
	if t == "key" {
		return "K"
	}
	if t == tile.Sentinel {
		return "0"
	}
	if len(t) > 0 {
		return strings.ToUpper(t[len(t)-1:])
	}
	return "?"
}

func writeLegend(w io.Writer) {
	fmt.Fprintln(w, "legend: digit/letter = matching type (lowercase letter = blocked by an upper layer; digits are not marked)")
	fmt.Fprintln(w, "  C=chain F=frog I=ice G=grass L=link B=bomb X=curtain T=teleport R=craft S=stack ?=unknown K=key 0=unresolved sentinel")
}

func parseXY(key string) (int, int, error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("render: invalid position key %q", key)
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
