// Package generator builds candidate level descriptions from a difficulty
// parameter (spec.md §4.G). Each candidate is a single deterministic
// attempt; retrying across candidates to hit a target clear-rate curve is
// the validator package's job (spec.md §4.H).
package generator

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed unlock_gates.yaml
var unlockGatesYAML []byte

// Gate is one gimmick's difficulty unlock threshold and relative selection
// weight (spec.md §6.3's unlock table).
type Gate struct {
	Kind          string  `yaml:"kind"`
	MinDifficulty float64 `yaml:"min_difficulty"`
	Weight        int     `yaml:"weight"`
}

type gatesTable struct {
	Gates []Gate `yaml:"gates"`
}

// Gates holds every gimmick's unlock gate, sorted by ascending
// MinDifficulty, loaded once at package init.
var Gates []Gate

func init() {
	var table gatesTable
	if err := yaml.Unmarshal(unlockGatesYAML, &table); err != nil {
		panic("generator: invalid embedded unlock_gates.yaml: " + err.Error())
	}
	Gates = table.Gates
	sort.Slice(Gates, func(i, j int) bool { return Gates[i].MinDifficulty < Gates[j].MinDifficulty })
}

// unlockedAt returns every gate whose MinDifficulty does not exceed d.
func unlockedAt(d float64) []Gate {
	var out []Gate
	for _, g := range Gates {
		if g.MinDifficulty <= d {
			out = append(out, g)
		}
	}
	return out
}

// pickGate draws one unlocked gate weighted by its Weight field.
func pickGate(unlocked []Gate, r interface{ Intn(int) int }) Gate {
	total := 0
	for _, g := range unlocked {
		total += g.Weight
	}
	if total <= 0 {
		return Gate{Kind: "none"}
	}
	roll := r.Intn(total)
	for _, g := range unlocked {
		if roll < g.Weight {
			return g
		}
		roll -= g.Weight
	}
	return unlocked[len(unlocked)-1]
}
