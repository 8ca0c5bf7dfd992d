package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
	"github.com/vovakirdan/tui-origami/internal/platform/tui"
	"github.com/vovakirdan/tui-origami/internal/registry"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

var flagFree bool

var playCmd = &cobra.Command{
	Use:   "play [puzzle]",
	Short: "Fold puzzles interactively",
	Long: `Start folding. Without a puzzle ID a picker lists every puzzle with
your best solve; Tab in the picker shows the records.

Controls:
  Arrows/hjkl  - Move the cursor between sheet corners
  Space/Enter  - Pick the crease start, then its end to fold
  Tab          - Switch valley/mountain
  Esc          - Drop the picked point
  U            - Undo the last fold
  R            - Unfold the sheet
  N            - Next puzzle (once solved)
  P            - Pause
  B            - Back to the picker
  ?            - All keys
  Q/Ctrl+C     - Quit

With --verbose the game logs to ~/.origami/debug.log.

Examples:
  origami play
  origami play p03
  origami play --free
  origami play --levels ./my-puzzles`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePuzzleIDs(false),
	Run:               runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagFree, "free", false, "Fold the open practice sheet")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := terminalConfig()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	switch {
	case flagFree:
		play(tui.ModeFree, "", store, cfg)
	case len(args) == 1:
		lvl, err := newLoader().LoadByID(args[0])
		if err != nil {
			exitf("%v\nRun 'origami list' to see available puzzles.", err)
		}
		play(tui.ModeCampaign, lvl.ID, store, cfg)
	default:
		runPicker(store, cfg)
	}
}

// runPicker loops picker -> game or records -> picker until the player quits.
func runPicker(store *storage.Store, cfg core.RuntimeConfig) {
	lvls, err := newLoader().LoadAll()
	if err != nil {
		exitf("%v", err)
	}
	if len(lvls) == 0 {
		exitf("no puzzles found in %s", describeLevels())
	}

	for {
		result, err := tui.RunPicker(lvls, store, appConfig.Scoring, cfg)
		if err != nil {
			exitf("%v", err)
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return
		case result.WantsRecords:
			goBack, err := tui.RunRecords(lvls, store, appConfig.Scoring, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				exitf("%v", err)
			}
			if !goBack {
				return
			}
		case result.Selection != nil:
			if !play(result.Selection.Mode, result.Selection.Level, store, cfg) {
				return
			}
			lvls = reload(lvls)
		}
	}
}

// reload re-reads the puzzles so edits made while playing show up.
// On failure the previous list is kept.
func reload(prev []levels.Level) []levels.Level {
	lvls, err := newLoader().LoadAll()
	if err != nil || len(lvls) == 0 {
		return prev
	}
	return lvls
}

func describeLevels() string {
	if appConfig.Paths.Levels == "" {
		return "the bundled puzzles"
	}
	return appConfig.Paths.Levels
}

// play runs one game mode and reports whether the player asked for the
// picker rather than quitting.
func play(mode, level string, store *storage.Store, cfg core.RuntimeConfig) bool {
	opts := gameOptions()
	opts.StartLevel = level

	game, err := registry.Create(mode, opts)
	if err != nil {
		exitf("creating game: %v", err)
	}
	logger.Debug("starting game", "mode", mode, "puzzle", level)

	gameLogger, closeLog := sessionLogger()
	defer closeLog()

	goBack, err := tui.Run(game, store, cfg, gameLogger)
	if err != nil {
		exitf("running game: %v", err)
	}
	return goBack
}

// sessionLogger returns the logger used while the alternate screen is up.
// Stderr would garble the screen, so with --verbose it writes to
// ~/.origami/debug.log and otherwise logs nothing.
func sessionLogger() (*log.Logger, func()) {
	if !flagVerbose {
		return nil, func() {}
	}
	path := config.ExpandHome("~/.origami/debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("could not open debug log", "path", path, "error", err)
		return nil, func() {}
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "origami", Level: log.DebugLevel})
	return l, func() { f.Close() }
}
