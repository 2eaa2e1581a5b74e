// Package batch implements the `batch` subcommand, running many games per
// bot profile in parallel and reporting per-profile clear-rate statistics.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/internal/runner"
	"github.com/eng618/driftstack-engine/internal/state"
)

var (
	levelFile  string
	profiles   []string
	iterations int
	baseSeed   int64
	typePool   []string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many games per bot profile and report clear-rate statistics",
	Long: `Plays a level repeatedly under each requested bot profile and
reports clear rate and average moves per profile.

Examples:
  driftstack batch --level level.json --iterations 200
  driftstack batch -l level.json --profiles Novice,Optimal -n 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(levelFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", levelFile, err)
		}
		var desc state.LevelDescription
		if err := json.Unmarshal(data, &desc); err != nil {
			return fmt.Errorf("parsing %s: %w", levelFile, err)
		}

		profileCount := len(profiles)
		if profileCount == 0 {
			profileCount = 5
		}
		total := iterations * profileCount
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" running %d games...", total)
		s.Start()

		stats := runner.RunBatch(desc, runner.BatchOptions{
			Profiles:   profiles,
			Iterations: iterations,
			BaseSeed:   baseSeed,
			TypePool:   typePool,
			Progress: func(done, total int) {
				s.Suffix = fmt.Sprintf(" running games (%d/%d)...", done, total)
			},
		})
		s.Stop()

		order := profiles
		if len(order) == 0 {
			order = []string{"Novice", "Casual", "Average", "Expert", "Optimal"}
		}
		for _, name := range order {
			st, ok := stats[name]
			if !ok {
				continue
			}
			rate := st.ClearRate()
			label := fmt.Sprintf("%-8s clear=%.1f%%  avg_moves=%.1f  games=%d", name, rate*100, st.AverageMoves(), st.Games)
			if rate >= 0.5 {
				color.New(color.FgGreen).Println(label)
			} else {
				color.New(color.FgRed).Println(label)
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&levelFile, "level", "l", "", "path to a level description JSON file (required)")
	batchCmd.Flags().StringSliceVar(&profiles, "profiles", nil, "bot profiles to run (default: all five)")
	batchCmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "games to play per profile")
	batchCmd.Flags().Int64VarP(&baseSeed, "seed", "s", 1, "base seed; iteration i uses seed+i")
	batchCmd.Flags().StringSliceVar(&typePool, "type-pool", []string{"t1", "t2", "t3", "t4"}, "matching type pool used to resolve t0 sentinels")
	_ = batchCmd.MarkFlagRequired("level")
}

// GetCommand returns the batch command for registration with root.
func GetCommand() *cobra.Command {
	return batchCmd
}
