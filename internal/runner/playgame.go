// Package runner drives single games and batches of games to completion,
// wiring the rule engine and bot decision pipeline together (spec.md §4.F).
package runner

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/eng618/driftstack-engine/internal/bot"
	"github.com/eng618/driftstack-engine/internal/rules"
	"github.com/eng618/driftstack-engine/internal/state"
)

// botRNGSalt keeps the bot's own RNG stream independent of the
// play RNG derived from the same game seed (spec.md §5's
// RNG-seed-independence invariant).
const botRNGSalt = 0x9E3779B97F4A7C15

// MoveEntry is one applied (or blocked) move in a game's trace.
type MoveEntry struct {
	TraceID       string
	Key           string
	Blocked       bool
	MatchedGroups []state.MatchedGroup
	LinkedKey     string
}

// Trace is the full move-by-move record of one played game.
type Trace struct {
	Profile    string
	Moves      []MoveEntry
	Terminal   state.Terminal
	FailReason state.FailReason
	MovesUsed  int
}

// PlayGame builds a level and plays it to completion (or to a Blocked dead
// end) under a single named bot profile. seed drives the play and bot RNGs,
// each derived independently (spec.md §5); t0 materialisation always uses
// the level's own desc.RandSeed.
func PlayGame(desc state.LevelDescription, profileName string, typePool []string, seed int64) (*Trace, error) {
	profile, ok := bot.Profiles[profileName]
	if !ok {
		log.Error().Str("profile", profileName).Msg("runner: unknown bot profile")
		return nil, errUnknownProfile(profileName)
	}

	g, err := state.Build(desc, state.BuildOptions{
		TypePool: typePool,
		PlayRNG:  rand.New(rand.NewSource(seed + 1)),
	})
	if err != nil {
		return nil, err
	}
	rules.RecomputeAccessible(g)

	var botRNG *rand.Rand
	if !profile.IsOptimal() {
		botRNG = rand.New(rand.NewSource(seed ^ botRNGSalt))
	}

	trace := &Trace{Profile: profileName}
	for g.Terminal() == state.TerminalRunning {
		key, ok := bot.Decide(g, profile, botRNG)
		if !ok {
			break
		}
		res := rules.ApplyMove(g, key)
		trace.Moves = append(trace.Moves, MoveEntry{
			TraceID:       res.TraceID,
			Key:           key,
			Blocked:       res.Blocked,
			MatchedGroups: res.MatchedGroups,
			LinkedKey:     res.LinkedKey,
		})
		if res.Blocked {
			break
		}
	}
	trace.Terminal = g.Terminal()
	trace.FailReason = g.FailReason()
	trace.MovesUsed = g.MovesUsed()

	log.Debug().
		Str("profile", profileName).
		Int("moves", trace.MovesUsed).
		Str("terminal", terminalString(trace.Terminal)).
		Msg("runner: game finished")

	return trace, nil
}

func terminalString(t state.Terminal) string {
	switch t {
	case state.TerminalCleared:
		return "cleared"
	case state.TerminalFailed:
		return "failed"
	default:
		return "running"
	}
}

type unknownProfileError string

func (e unknownProfileError) Error() string { return "runner: unknown bot profile " + string(e) }

func errUnknownProfile(name string) error { return unknownProfileError(name) }
