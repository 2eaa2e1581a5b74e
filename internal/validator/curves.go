// Package validator scores generated candidates against per-profile target
// clear-rate curves and retries generation, keeping whichever candidate
// came closest, until a close-enough match is found or a bounded attempt
// count is exhausted (spec.md §4.H). Generating one candidate is the
// generator package's job; this package decides whether that candidate is
// good enough and, if not, what to try next.
package validator

import (
	_ "embed"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

//go:embed curves.yaml
var curvesYAML []byte

// Curve is one bot profile's target clear-rate as a function of difficulty.
type Curve struct {
	Profile string  `yaml:"profile"`
	Weight  float64 `yaml:"weight"`
	Expr    string  `yaml:"expr"`

	program *vm.Program
}

type curvesTable struct {
	Curves []Curve `yaml:"curves"`
}

// Curves holds every profile's compiled target-clear-rate expression,
// loaded once at package init.
var Curves []Curve

func init() {
	var table curvesTable
	if err := yaml.Unmarshal(curvesYAML, &table); err != nil {
		panic("validator: invalid embedded curves.yaml: " + err.Error())
	}
	for i := range table.Curves {
		c := &table.Curves[i]
		program, err := expr.Compile(c.Expr, expr.Env(map[string]interface{}{"d": 0.0}))
		if err != nil {
			panic("validator: curve for " + c.Profile + " does not compile: " + err.Error())
		}
		c.program = program
	}
	Curves = table.Curves
}

// TargetClearRate evaluates a curve at difficulty d, clamped to [0, 1]
// since a poorly-chosen expression could otherwise overshoot.
func (c Curve) TargetClearRate(d float64) float64 {
	out, err := expr.Run(c.program, map[string]interface{}{"d": d})
	if err != nil {
		return 0
	}
	var rate float64
	switch v := out.(type) {
	case float64:
		rate = v
	case int:
		rate = float64(v)
	}
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}
