// Package bot implements the five fixed decision profiles of spec.md §4.E:
// a mistake gate, an attention filter, an additive scoring heuristic, a
// depth-bounded minimax lookahead with a transposition memo, and a patience
// gate. Optimal is the only profile guaranteed to consume zero RNG draws.
package bot

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Profile is one of the five fixed named decision profiles, holding the
// contracted parameter vector of spec.md §4.E.1.
type Profile struct {
	Name string

	MistakeRate        float64 `yaml:"mistake_rate"`
	LookaheadDepth     int     `yaml:"lookahead_depth"`
	PatternRecognition float64 `yaml:"pattern_recognition"`
	Patience           float64 `yaml:"patience"`

	GoalPriority      float64 `yaml:"goal_priority"`
	BlockingAwareness float64 `yaml:"blocking_awareness"`
	ChainPreference   float64 `yaml:"chain_preference"`
	RiskTolerance     float64 `yaml:"risk_tolerance"`
}

type profilesTable struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profiles holds the five fixed profiles, keyed by name, loaded once at
// package init from the embedded table.
var Profiles map[string]Profile

// Order is the canonical Novice->Optimal skill ordering used by reports and
// batch runs.
var Order = []string{"Novice", "Casual", "Average", "Expert", "Optimal"}

func init() {
	var table profilesTable
	if err := yaml.Unmarshal(profilesYAML, &table); err != nil {
		panic("bot: invalid embedded profiles.yaml: " + err.Error())
	}
	Profiles = make(map[string]Profile, len(table.Profiles))
	for name, p := range table.Profiles {
		p.Name = name
		Profiles[name] = p
	}
}

// IsOptimal reports whether this profile must never draw from an RNG
// (spec.md §5's audit-testable invariant).
func (p Profile) IsOptimal() bool { return p.Name == "Optimal" }
