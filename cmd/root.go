// Package cmd wires the engine's subcommands onto a Cobra root, the way
// the teacher's level-builder CLI does (spec.md's CLI layer is out of
// scope for the core, but the core's entry points are exercised through
// it the same way the teacher's pkg/ is exercised through its cmd/).
package cmd

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eng618/driftstack-engine/cmd/analyze"
	"github.com/eng618/driftstack-engine/cmd/batch"
	"github.com/eng618/driftstack-engine/cmd/generate"
	"github.com/eng618/driftstack-engine/cmd/render"
	"github.com/eng618/driftstack-engine/cmd/repair"
	"github.com/eng618/driftstack-engine/cmd/simulate"
	"github.com/eng618/driftstack-engine/cmd/validate"
)

var (
	verbose bool
	workers string

	// WorkersCount is the parsed worker count. No subcommand reads it;
	// batch runs size their worker pool by runtime.NumCPU.
	WorkersCount int
)

var rootCmd = &cobra.Command{
	Use:   "driftstack",
	Short: "Tile-matching level generation, simulation, and validation engine",
	Long: `driftstack is a command-line tool for generating, validating, and
simulating layered tile-matching puzzle levels.

It provides commands for:
  - Simulating a single game under a named bot profile
  - Running batches of games to measure per-profile clear rates
  - Generating candidate levels at a target difficulty
  - Validating a candidate against per-profile target clear-rate curves
  - Grading a level with the static difficulty analyzer
  - Rendering a level's board as an ASCII debug dump
  - Repairing a level file that fails to parse or build by regenerating it`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		count, err := parseWorkers(workers)
		if err != nil {
			return err
		}
		WorkersCount = count
		log.Debug().Int("workers", WorkersCount).Msg("cmd: resolved worker count")
		return nil
	},
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().StringVarP(&workers, "workers", "j", "half", "worker count ('full', 'half', or an integer); parsed and logged only, batch runs use one worker per CPU")

	rootCmd.AddCommand(simulate.GetCommand())
	rootCmd.AddCommand(batch.GetCommand())
	rootCmd.AddCommand(generate.GetCommand())
	rootCmd.AddCommand(validate.GetCommand())
	rootCmd.AddCommand(analyze.GetCommand())
	rootCmd.AddCommand(render.GetCommand())
	rootCmd.AddCommand(repair.GetCommand())
}

// parseWorkers mirrors the teacher's "full"/"half"/integer worker flag.
func parseWorkers(value string) (int, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "full":
		return runtime.NumCPU(), nil
	case "half":
		count := runtime.NumCPU() / 2
		if count < 1 {
			count = 1
		}
		return count, nil
	default:
		count, err := strconv.Atoi(value)
		if err != nil {
			return 0, err
		}
		if count < 1 {
			count = 1
		}
		return count, nil
	}
}
