package validator

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/eng618/driftstack-engine/internal/generator"
	"github.com/eng618/driftstack-engine/internal/runner"
	"github.com/eng618/driftstack-engine/internal/state"
)

// Options configures a validation run.
type Options struct {
	Difficulty     float64
	MaxAttempts    int
	IterationsEach int   // games per profile per candidate, passed to runner.RunBatch
	BaseSeed       int64 // attempt i draws its own seed from BaseSeed + i*7919
	Gen            generator.Params
	// GapTolerance stops the retry loop early once a candidate's
	// weighted_gap score falls at or below this value.
	GapTolerance float64
}

// Result is the best candidate a Validate call found, plus its measured
// clear-rate statistics and the gap that scored it.
type Result struct {
	Candidate generator.Candidate
	Stats     map[string]*runner.ProfileStats
	Gap       float64
	Attempts  int
}

// Validate runs a bounded generate-simulate-score loop (spec.md §4.H),
// retaining whichever attempt's candidate comes closest to every profile's
// target clear-rate curve at the requested difficulty. This mirrors the
// teacher's generateSingleLevel bounded-attempt loop, split across the
// generator/validator package boundary instead of kept in one function.
func Validate(opts Options) (Result, error) {
	var best Result
	best.Gap = math.Inf(1)

	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		p := opts.Gen
		p.Difficulty = opts.Difficulty
		p.Seed = opts.BaseSeed + int64(i)*7919 // teacher-style attempt-local seed spacing

		cand, err := generator.GenerateCandidate(p)
		if err != nil {
			log.Warn().Err(err).Int("attempt", i).Msg("validator: candidate generation failed")
			continue
		}

		if _, err := state.Build(cand.Description, state.BuildOptions{TypePool: cand.TypePool}); err != nil {
			log.Warn().Err(err).Int("attempt", i).Msg("validator: candidate failed to build")
			continue
		}

		stats := runner.RunBatch(cand.Description, runner.BatchOptions{
			Iterations: opts.IterationsEach,
			BaseSeed:   p.Seed + 1,
			TypePool:   cand.TypePool,
		})

		gap := weightedGap(stats, opts.Difficulty)
		log.Debug().Int("attempt", i).Float64("gap", gap).Msg("validator: attempt scored")

		if gap < best.Gap {
			best = Result{Candidate: cand, Stats: stats, Gap: gap, Attempts: i + 1}
		}
		if best.Gap <= opts.GapTolerance {
			break
		}
	}

	if best.Stats == nil {
		return best, errNoCandidateBuilt
	}
	return best, nil
}

// weightedGap is the weighted sum of squared distances between each
// profile's measured clear rate and its target curve at difficulty d.
func weightedGap(stats map[string]*runner.ProfileStats, d float64) float64 {
	var total float64
	for _, c := range Curves {
		s, ok := stats[c.Profile]
		if !ok {
			continue
		}
		target := c.TargetClearRate(d)
		diff := s.ClearRate() - target
		total += c.Weight * diff * diff
	}
	return total
}

type validatorError string

func (e validatorError) Error() string { return string(e) }

const errNoCandidateBuilt = validatorError("validator: no candidate built successfully within the attempt budget")
