// Package simulate implements the `simulate` subcommand, which plays a
// single game against a level file under a named bot profile.
package simulate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/internal/runner"
	"github.com/eng618/driftstack-engine/internal/state"
)

var (
	levelFile string
	profile   string
	typePool  []string
	seed      int64
)

var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Aliases: []string{"sim"},
	Short:   "Play a single game against a level file under one bot profile",
	Long: `Plays one level to completion under a single named bot profile
(Novice, Casual, Average, Expert, or Optimal) and reports the terminal
outcome and move count.

Examples:
  driftstack simulate --level level.json --profile Optimal --seed 42
  driftstack simulate -l level.json -p Novice --type-pool t1,t2,t3,key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := loadLevel(levelFile)
		if err != nil {
			return err
		}

		log.Info().Str("profile", profile).Int64("seed", seed).Msg("simulate: starting game")
		trace, err := runner.PlayGame(desc, profile, typePool, seed)
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}

		fmt.Printf("profile:   %s\n", trace.Profile)
		fmt.Printf("terminal:  %s\n", terminalLabel(trace.Terminal))
		fmt.Printf("moves:     %d\n", trace.MovesUsed)
		if trace.Terminal == state.TerminalFailed {
			fmt.Printf("reason:    %s\n", trace.FailReason)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&levelFile, "level", "l", "", "path to a level description JSON file (required)")
	simulateCmd.Flags().StringVarP(&profile, "profile", "p", "Average", "bot profile: Novice, Casual, Average, Expert, Optimal")
	simulateCmd.Flags().StringSliceVar(&typePool, "type-pool", []string{"t1", "t2", "t3", "t4"}, "matching type pool used to resolve t0 sentinels")
	simulateCmd.Flags().Int64VarP(&seed, "seed", "s", 1, "RNG seed driving play and bot randomness (materialisation uses the level's randSeed)")
	_ = simulateCmd.MarkFlagRequired("level")
}

// GetCommand returns the simulate command for registration with root.
func GetCommand() *cobra.Command {
	return simulateCmd
}

func loadLevel(path string) (state.LevelDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.LevelDescription{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var desc state.LevelDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return state.LevelDescription{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return desc, nil
}

func terminalLabel(t state.Terminal) string {
	switch t {
	case state.TerminalCleared:
		return "cleared"
	case state.TerminalFailed:
		return "failed"
	default:
		return "running"
	}
}
