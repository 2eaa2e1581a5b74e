// Package render implements the `render` subcommand, printing a level's
// layers as an ASCII debug grid.
package render

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	internalrender "github.com/eng618/driftstack-engine/internal/render"
	"github.com/eng618/driftstack-engine/internal/state"
)

var (
	levelFile  string
	coordsFlag bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a level's layers as an ASCII debug grid",
	Long: `Prints every layer of a level description as an ASCII grid, one
glyph per gimmick kind, with letter glyphs of cells blocked by an upper
layer shown in lowercase (digit glyphs are not marked). A debug aid only;
it never drives engine behavior.

Example:
  driftstack render --level level.json --coords`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(levelFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", levelFile, err)
		}
		var desc state.LevelDescription
		if err := json.Unmarshal(data, &desc); err != nil {
			return fmt.Errorf("parsing %s: %w", levelFile, err)
		}

		internalrender.All(cmd.OutOrStdout(), desc, coordsFlag)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&levelFile, "level", "l", "", "path to a level description JSON file (required)")
	renderCmd.Flags().BoolVarP(&coordsFlag, "coords", "c", false, "show axis coordinates")
	_ = renderCmd.MarkFlagRequired("level")
}

// GetCommand returns the render command for registration with root.
func GetCommand() *cobra.Command {
	return renderCmd
}
