package runner

import (
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eng618/driftstack-engine/internal/bot"
	"github.com/eng618/driftstack-engine/internal/state"
)

// GameResult is one completed game's outcome, stripped of its full
// move-by-move trace to keep batch aggregation cheap.
type GameResult struct {
	Profile    string
	Seed       int64
	Terminal   state.Terminal
	FailReason state.FailReason
	MovesUsed  int
}

// ProfileStats aggregates a batch run's outcomes for one bot profile
// (spec.md §4.F "per-profile clear-rate statistics").
type ProfileStats struct {
	Profile      string
	Games        int
	Cleared      int
	Failed       map[state.FailReason]int
	TotalMoves   int
}

// ClearRate returns the fraction of games that reached TerminalCleared.
func (s ProfileStats) ClearRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Cleared) / float64(s.Games)
}

// AverageMoves returns the mean move count across all games in the batch.
func (s ProfileStats) AverageMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Profiles   []string // defaults to bot.Order if empty
	Iterations int
	BaseSeed   int64
	TypePool   []string
	// Progress, if non-nil, is called after each completed game (done,
	// total) — wired to a CLI spinner by the caller, never imported here.
	Progress func(done, total int)
}

// RunBatch plays Iterations games per profile concurrently, bounded by
// runtime.NumCPU workers, and returns per-profile aggregate statistics.
// Each game gets its own isolated GameState and RNGs (spec.md §4.F
// "per-worker isolated state"); a single goroutine joins the result
// channel, matching the teacher's sem+WaitGroup+channel concurrency shape.
func RunBatch(desc state.LevelDescription, opts BatchOptions) map[string]*ProfileStats {
	profiles := opts.Profiles
	if len(profiles) == 0 {
		profiles = bot.Order
	}

	type job struct {
		profile string
		seed    int64
	}

	var jobs []job
	for _, p := range profiles {
		for i := 0; i < opts.Iterations; i++ {
			jobs = append(jobs, job{profile: p, seed: opts.BaseSeed + int64(i)})
		}
	}

	concurrency := runtime.NumCPU()
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	resultsCh := make(chan GameResult, len(jobs))

	for _, j := range jobs {
		j := j
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			trace, err := PlayGame(desc, j.profile, opts.TypePool, j.seed)
			if err != nil {
				log.Error().Err(err).Str("profile", j.profile).Int64("seed", j.seed).Msg("runner: batch game failed")
				return
			}
			resultsCh <- GameResult{
				Profile:    j.profile,
				Seed:       j.seed,
				Terminal:   trace.Terminal,
				FailReason: trace.FailReason,
				MovesUsed:  trace.MovesUsed,
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	stats := make(map[string]*ProfileStats, len(profiles))
	for _, p := range profiles {
		stats[p] = &ProfileStats{Profile: p, Failed: make(map[state.FailReason]int)}
	}

	done := 0
	for res := range resultsCh {
		s := stats[res.Profile]
		s.Games++
		s.TotalMoves += res.MovesUsed
		if res.Terminal == state.TerminalCleared {
			s.Cleared++
		} else {
			s.Failed[res.FailReason]++
		}
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(jobs))
		}
	}

	return stats
}
