// Package analyze implements the `analyze` subcommand, a static,
// non-simulating grader over a level description file.
package analyze

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/internal/analyzer"
	"github.com/eng618/driftstack-engine/internal/state"
)

var levelFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Grade a level's static difficulty without simulating any games",
	Long: `Extracts a fixed metric vector from a level description (tile
counts per gimmick, active layers, goal amount, layer-blocking score) and
reduces it to a 0..100 difficulty score and an S..D grade. Never builds a
game state or runs the rule engine.

Example:
  driftstack analyze --level level.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(levelFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", levelFile, err)
		}
		var desc state.LevelDescription
		if err := json.Unmarshal(data, &desc); err != nil {
			return fmt.Errorf("parsing %s: %w", levelFile, err)
		}

		m := analyzer.Extract(desc)
		score := analyzer.Score(m)
		grade := analyzer.Grade(score)

		fmt.Printf("score:          %.1f (%s)\n", score, grade)
		fmt.Printf("total_tiles:    %d\n", m.TotalTiles)
		fmt.Printf("active_layers:  %d\n", m.ActiveLayers)
		fmt.Printf("goal_amount:    %d\n", m.GoalAmount)
		fmt.Printf("chain:          %d\n", m.ChainCount)
		fmt.Printf("frog:           %d\n", m.FrogCount)
		fmt.Printf("ice:            %d\n", m.IceCount)
		fmt.Printf("link:           %d\n", m.LinkCount)
		fmt.Printf("bomb:           %d\n", m.BombCount)
		fmt.Printf("grass:          %d\n", m.GrassCount)
		fmt.Printf("layer_blocking: %d\n", m.LayerBlockingScore)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&levelFile, "level", "l", "", "path to a level description JSON file (required)")
	_ = analyzeCmd.MarkFlagRequired("level")
}

// GetCommand returns the analyze command for registration with root.
func GetCommand() *cobra.Command {
	return analyzeCmd
}
