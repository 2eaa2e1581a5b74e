// Package validate implements the `validate` subcommand, running the
// bounded generate-simulate-score retry loop and reporting the best
// candidate found against per-profile target clear-rate curves.
package validate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/internal/generator"
	"github.com/eng618/driftstack-engine/internal/validator"
)

var (
	difficulty     float64
	cols, rows     int
	layers         int
	typeCount      int
	density        float64
	baseSeed       int64
	maxAttempts    int
	iterationsEach int
	gapTolerance   float64
	outFile        string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Generate and retry until a candidate matches target clear-rate curves",
	Long: `Repeatedly generates a candidate level at a target difficulty,
plays it out under every bot profile, and scores how closely the measured
clear rates match each profile's target curve. Retains the best-scoring
candidate across the attempt budget and writes it to disk.

Examples:
  driftstack validate --difficulty 0.5 --out level.json
  driftstack validate -d 0.8 --attempts 20 --tolerance 0.02`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
			return fmt.Errorf("validate: %w", err)
		}

		data, err := json.MarshalIndent(result.Candidate.Description, "", "  ")
		if err != nil {
			return fmt.Errorf("validate: marshal candidate: %w", err)
		}
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return fmt.Errorf("validate: writing %s: %w", outFile, err)
		}

		log.Info().Float64("gap", result.Gap).Int("attempts", result.Attempts).Str("file", outFile).Msg("validate: wrote best candidate")
		fmt.Printf("attempts: %d\n", result.Attempts)
		fmt.Printf("gap:      %.4f\n", result.Gap)
		for profile, st := range result.Stats {
			fmt.Printf("  %-8s clear=%.1f%%  avg_moves=%.1f\n", profile, st.ClearRate()*100, st.AverageMoves())
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	},
}

func init() {
	validateCmd.Flags().Float64VarP(&difficulty, "difficulty", "d", 0.3, "target difficulty in [0,1]")
	validateCmd.Flags().IntVar(&cols, "cols", 7, "base column count for layer 0")
	validateCmd.Flags().IntVar(&rows, "rows", 7, "row count")
	validateCmd.Flags().IntVar(&layers, "layers", 1, "layer count")
	validateCmd.Flags().IntVar(&typeCount, "types", 4, "distinct matching colors, excluding key")
	validateCmd.Flags().Float64Var(&density, "density", 0.25, "fraction of cells offered a non-none gimmick gate")
	validateCmd.Flags().Int64VarP(&baseSeed, "seed", "s", 1, "base seed; attempt i uses seed+i*7919")
	validateCmd.Flags().IntVar(&maxAttempts, "attempts", 10, "maximum generate-simulate-score attempts")
	validateCmd.Flags().IntVar(&iterationsEach, "iterations", 50, "games per profile per attempt")
	validateCmd.Flags().Float64Var(&gapTolerance, "tolerance", 0.01, "stop early once the weighted gap falls at or below this")
	validateCmd.Flags().StringVarP(&outFile, "out", "o", "level.json", "output file path for the best candidate found")
}

// GetCommand returns the validate command for registration with root.
func GetCommand() *cobra.Command {
	return validateCmd
}
