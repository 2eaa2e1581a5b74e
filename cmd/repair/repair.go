// Package repair implements the `repair` subcommand, regenerating a level
// file that fails to parse or fails to build against a default type pool.
// A level that builds is left as is; its clear rates are not checked.
package repair

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/internal/generator"
	"github.com/eng618/driftstack-engine/internal/state"
	"github.com/eng618/driftstack-engine/internal/validator"
)

var (
	levelFile      string
	difficulty     float64
	cols, rows     int
	layers         int
	typeCount      int
	density        float64
	baseSeed       int64
	maxAttempts    int
	iterationsEach int
	gapTolerance   float64
	dryRun         bool
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Regenerate a level file that fails to parse or build",
	Long: `Checks whether a level file parses and builds against a default
type pool. If either check fails, regenerates a replacement via the same
bounded generate-simulate-score loop as the validate command. A level that
builds is left as is; its clear rates are not checked.

Examples:
  driftstack repair --level level.json --difficulty 0.5
  driftstack repair --level level.json --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		needsRepair, reason := checkLevel(levelFile)
		if !needsRepair {
			log.Info().Str("file", levelFile).Msg("repair: level is sound, nothing to do")
			fmt.Printf("%s: ok, no repair needed\n", levelFile)
			return nil
		}

		log.Warn().Str("file", levelFile).Str("reason", reason).Msg("repair: scheduling regeneration")
		if dryRun {
			fmt.Printf("%s: would regenerate (%s)\n", levelFile, reason)
			return nil
		}

		result, err := validator.Validate(validator.Options{
			Difficulty:     difficulty,
			MaxAttempts:    maxAttempts,
			IterationsEach: iterationsEach,
			BaseSeed:       baseSeed,
			GapTolerance:   gapTolerance,
			Gen: generator.Params{
				Cols:            cols,
				Rows:            rows,
				Layers:          layers,
				TypeCount:       typeCount,
				ObstacleDensity: density,
			},
		})
		if err != nil {
			return fmt.Errorf("repair: %w", err)
		}

		data, err := json.MarshalIndent(result.Candidate.Description, "", "  ")
		if err != nil {
			return fmt.Errorf("repair: marshal candidate: %w", err)
		}
		if err := os.WriteFile(levelFile, data, 0o644); err != nil {
			return fmt.Errorf("repair: writing %s: %w", levelFile, err)
		}

		log.Info().Str("file", levelFile).Float64("gap", result.Gap).Int("attempts", result.Attempts).Msg("repair: wrote regenerated level")
		fmt.Printf("%s: repaired (gap=%.4f, attempts=%d)\n", levelFile, result.Gap, result.Attempts)
		return nil
	},
}

// checkLevel reports whether levelFile needs regeneration: either it fails
// to parse, or it fails to build against a default type pool.
func checkLevel(path string) (bool, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return true, fmt.Sprintf("unreadable: %v", err)
	}
	var desc state.LevelDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return true, fmt.Sprintf("failed to parse: %v", err)
	}
	if _, err := state.Build(desc, state.BuildOptions{TypePool: []string{"t1", "t2", "t3", "t4"}}); err != nil {
		return true, fmt.Sprintf("failed to build: %v", err)
	}
	return false, ""
}

func init() {
	repairCmd.Flags().StringVarP(&levelFile, "level", "l", "", "path to the level description JSON file to check and repair (required)")
	repairCmd.Flags().Float64VarP(&difficulty, "difficulty", "d", 0.3, "target difficulty in [0,1] to regenerate toward")
	repairCmd.Flags().IntVar(&cols, "cols", 7, "base column count for layer 0")
	repairCmd.Flags().IntVar(&rows, "rows", 7, "row count")
	repairCmd.Flags().IntVar(&layers, "layers", 1, "layer count")
	repairCmd.Flags().IntVar(&typeCount, "types", 4, "distinct matching colors, excluding key")
	repairCmd.Flags().Float64Var(&density, "density", 0.25, "fraction of cells offered a non-none gimmick gate")
	repairCmd.Flags().Int64VarP(&baseSeed, "seed", "s", 1, "base seed; attempt i uses seed+i*7919")
	repairCmd.Flags().IntVar(&maxAttempts, "attempts", 10, "maximum generate-simulate-score attempts")
	repairCmd.Flags().IntVar(&iterationsEach, "iterations", 50, "games per profile per attempt")
	repairCmd.Flags().Float64Var(&gapTolerance, "tolerance", 0.01, "stop early once the weighted gap falls at or below this")
	repairCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report without writing a replacement file")
	_ = repairCmd.MarkFlagRequired("level")
}

// GetCommand returns the repair command for registration with root.
func GetCommand() *cobra.Command {
	return repairCmd
}
