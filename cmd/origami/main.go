// origami is a terminal fold puzzle: crease a sheet until the right faces
// show on top.
//
// Usage:
//
//	origami list                  - List bundled or custom puzzles
//	origami play [puzzle]         - Fold in the terminal (picker without an ID)
//	origami fold <puzzle> ...     - Apply folds headless and print the result
//	origami check [puzzle...]     - Validate puzzles and their reference solutions
//	origami records [puzzle]      - Show best solves
//	origami serve                 - Start SSH server for remote play
//	origami config                - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Configuration file (default: search ~/.origami/configs, ./configs)
//	--levels <dir>   - Puzzle directory (default: bundled puzzles)
//	--db <path>      - Records database (default: ~/.origami/origami.db)
//	--fps <rate>     - Tick rate (default: 30)
//	--verbose        - Debug logging
//	--mono           - Colorless theme
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/platform/tui"

	// Import game modes to register them
	_ "github.com/vovakirdan/tui-origami/internal/games/origami"
)

var (
	// Global flags
	flagConfig  string
	flagLevels  string
	flagDBPath  string
	flagFPS     int
	flagVerbose bool
	flagMono    bool

	// Set up by the root command before any subcommand runs
	appConfig config.OrigamiConfig
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "origami",
	Short: "Origami - fold puzzles in your terminal",
	Long: `Origami is a terminal puzzle about folding a paper sheet.

Pick two points to lay a crease through them; everything on the left of
the crease folds over onto the right. A puzzle is solved when the folded
sheet covers the target number of positions and every one of them shows
a face of the target class on top.

Available commands:
  list     - Show all puzzles
  play     - Fold interactively
  fold     - Apply folds headless and print the result
  check    - Validate puzzle files and replay their solutions
  records  - View best solves
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  origami list
  origami play
  origami play p03
  origami fold p01 --crease 1,0,1,1
  origami check --levels ./my-puzzles
  origami serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of puzzle files (default: bundled puzzles)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Use the colorless theme")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and applies the global flags over it.
func setup(cmd *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "origami",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadOrigami(flagConfig)
	if err != nil {
		return err
	}
	if flagLevels != "" {
		cfg.Paths.Levels = flagLevels
	}
	if flagDBPath != "" {
		cfg.Paths.DB = flagDBPath
	}
	appConfig = cfg
	logger.Debug("configuration loaded", "command", cmd.Name(), "levels", cfg.Paths.Levels, "db", cfg.Paths.DB)

	tui.SetMonochrome(flagMono)
	return nil
}
