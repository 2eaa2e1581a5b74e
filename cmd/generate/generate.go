// Package generate implements the `generate` subcommand, producing one
// candidate level description at a requested difficulty and writing it
// to disk.
package generate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/internal/generator"
)

var (
	difficulty float64
	cols, rows int
	layers     int
	typeCount  int
	density    float64
	seed       int64
	outFile    string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate one candidate level at a target difficulty",
	Long: `Generates one deterministic candidate level description from a
difficulty parameter, layer/grid dimensions, and a seed, and writes it to
a JSON file.

Examples:
  driftstack generate --difficulty 0.4 --out level.json
  driftstack gen -d 0.7 --cols 8 --rows 8 --layers 3 --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cand, err := generator.GenerateCandidate(generator.Params{
			Difficulty:      difficulty,
			Cols:            cols,
			Rows:            rows,
			Layers:          layers,
			TypeCount:       typeCount,
			ObstacleDensity: density,
			Seed:            seed,
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		data, err := json.MarshalIndent(cand.Description, "", "  ")
		if err != nil {
			return fmt.Errorf("generate: marshal candidate: %w", err)
		}
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return fmt.Errorf("generate: writing %s: %w", outFile, err)
		}

		log.Info().Str("file", outFile).Float64("difficulty", difficulty).Strs("type_pool", cand.TypePool).Msg("generate: wrote candidate")
		fmt.Printf("wrote %s (type pool: %v)\n", outFile, cand.TypePool)
		return nil
	},
}

func init() {
	generateCmd.Flags().Float64VarP(&difficulty, "difficulty", "d", 0.3, "target difficulty in [0,1]")
	generateCmd.Flags().IntVar(&cols, "cols", 7, "base column count for layer 0")
	generateCmd.Flags().IntVar(&rows, "rows", 7, "row count")
	generateCmd.Flags().IntVar(&layers, "layers", 1, "layer count")
	generateCmd.Flags().IntVar(&typeCount, "types", 4, "distinct matching colors, excluding key")
	generateCmd.Flags().Float64Var(&density, "density", 0.25, "fraction of cells offered a non-none gimmick gate")
	generateCmd.Flags().Int64VarP(&seed, "seed", "s", 1, "generation seed")
	generateCmd.Flags().StringVarP(&outFile, "out", "o", "level.json", "output file path")
}

// GetCommand returns the generate command for registration with root.
func GetCommand() *cobra.Command {
	return generateCmd
}
