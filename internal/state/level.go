// Package state implements the authoritative GameState (spec.md §3.4) and
// its construction from a level description (spec.md §6.1, §4.C).
package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TileSpec is one entry of a layer's sparse tile map: [tile_type, attribute]
// or [tile_type, attribute, extra]. extra is [count] for bombs and
// [count, "t_a_t_b_t_c..."] for stack/craft inner sequences (spec.md §6.1).
type TileSpec struct {
	Type         string
	Attribute    string
	ExtraCount   int
	ExtraInner   string
	HasExtra     bool
	HasExtraSeq  bool
}

// UnmarshalJSON parses the tuple-shaped tile entry.
func (t *TileSpec) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("state: tile entry must be a tuple: %w", err)
	}
	if len(raw) < 2 {
		return fmt.Errorf("state: tile entry needs at least [type, attribute], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Type); err != nil {
		return fmt.Errorf("state: tile type: %w", err)
	}
	if err := json.Unmarshal(raw[1], &t.Attribute); err != nil {
		return fmt.Errorf("state: tile attribute: %w", err)
	}
	if len(raw) >= 3 {
		var extra []json.RawMessage
		if err := json.Unmarshal(raw[2], &extra); err != nil {
			return fmt.Errorf("state: tile extra: %w", err)
		}
		if len(extra) >= 1 {
			if err := json.Unmarshal(extra[0], &t.ExtraCount); err != nil {
				return fmt.Errorf("state: tile extra count: %w", err)
			}
			t.HasExtra = true
		}
		if len(extra) >= 2 {
			if err := json.Unmarshal(extra[1], &t.ExtraInner); err != nil {
				return fmt.Errorf("state: tile extra sequence: %w", err)
			}
			t.HasExtraSeq = true
		}
	}
	return nil
}

// InnerSequence splits the "t_a_t_b_t_c..." extra string into its tile
// tokens, e.g. "t1_t2_t0" -> ["t1","t2","t0"].
func (t TileSpec) InnerSequence() []string {
	if t.ExtraInner == "" {
		return nil
	}
	return strings.Split(t.ExtraInner, "_")
}

// LayerSpec is one layer's sparse tile map plus its column/row count.
type LayerSpec struct {
	Col   int                 `json:"col"`
	Row   int                 `json:"row"`
	Tiles map[string]TileSpec `json:"tiles"`
}

// LevelDescription is the external input record (spec.md §6.1). Layers are
// addressed by dynamic keys "layer_0".."layer_{layer-1}" in the wire JSON,
// which is why it needs a custom unmarshaler rather than plain struct tags.
type LevelDescription struct {
	LayerCount int
	Layers     []LayerSpec
	GoalCount  map[string]int
	MaxMoves   int
	RandSeed   int64
	UnlockTile int
	TimeAttack int
}

// UnmarshalJSON reconstructs LevelDescription from its dynamic-key wire
// shape: {"layer": N, "layer_0": {...}, ..., "layer_{N-1}": {...}, "goalCount": {...}, ...}.
func (d *LevelDescription) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["layer"]; ok {
		if err := json.Unmarshal(v, &d.LayerCount); err != nil {
			return fmt.Errorf("state: layer count: %w", err)
		}
	}

	d.Layers = make([]LayerSpec, d.LayerCount)
	for i := 0; i < d.LayerCount; i++ {
		key := "layer_" + strconv.Itoa(i)
		v, ok := raw[key]
		if !ok {
			return fmt.Errorf("state: missing %q for declared layer count %d", key, d.LayerCount)
		}
		var spec LayerSpec
		if err := json.Unmarshal(v, &spec); err != nil {
			return fmt.Errorf("state: %s: %w", key, err)
		}
		d.Layers[i] = spec
	}

	if v, ok := raw["goalCount"]; ok {
		if err := json.Unmarshal(v, &d.GoalCount); err != nil {
			return fmt.Errorf("state: goalCount: %w", err)
		}
	}
	if v, ok := raw["max_moves"]; ok {
		if err := json.Unmarshal(v, &d.MaxMoves); err != nil {
			return fmt.Errorf("state: max_moves: %w", err)
		}
	}
	if v, ok := raw["randSeed"]; ok {
		_ = json.Unmarshal(v, &d.RandSeed)
	}
	if v, ok := raw["unlock_tile"]; ok {
		_ = json.Unmarshal(v, &d.UnlockTile)
	}
	if v, ok := raw["timea"]; ok {
		_ = json.Unmarshal(v, &d.TimeAttack)
	}
	return nil
}

// sortedTileKeys returns a layer's tile position keys ("x_y") in deterministic
// order, so construction never depends on Go's randomized map iteration.
func sortedTileKeys(tiles map[string]TileSpec) []string {
	keys := make([]string, 0, len(tiles))
	for k := range tiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseXY(key string) (int, int, error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("state: invalid position key %q", key)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("state: invalid x in %q: %w", key, err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("state: invalid y in %q: %w", key, err)
	}
	return x, y, nil
}
