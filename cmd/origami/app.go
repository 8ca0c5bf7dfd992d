package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/core"
	origami "github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
	"github.com/vovakirdan/tui-origami/internal/games/origami/puzzles"
	"github.com/vovakirdan/tui-origami/internal/registry"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

// levelsFS returns the configured puzzle directory, or the bundled puzzles.
func levelsFS() fs.FS {
	if dir := appConfig.Paths.Levels; dir != "" {
		return os.DirFS(config.ExpandHome(dir))
	}
	return puzzles.FS()
}

func newLoader() *levels.Loader {
	return levels.NewFSLoader(levelsFS()).WithLogger(logger)
}

// resolveLevel accepts a puzzle ID or the path of a puzzle file.
func resolveLevel(ref string) (levels.Level, error) {
	return newLoader().Resolve(ref)
}

// completePuzzleIDs offers puzzle IDs for shell completion. Unless multiple
// is set only the first argument is completed.
func completePuzzleIDs(multiple bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 && !multiple {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if err := setup(cmd, args); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		ids, err := newLoader().ListIDs()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		// puzzle files are valid arguments too
		return ids, cobra.ShellCompDirectiveDefault
	}
}

// gameOptions maps the configuration onto game options.
func gameOptions() registry.Options {
	return registry.Options{
		Levels:      levelsFS(),
		Epsilon:     appConfig.Engine.Epsilon,
		Precision:   appConfig.Engine.Precision,
		CellW:       appConfig.Display.CellW,
		CellH:       appConfig.Display.CellH,
		ShowCreases: appConfig.Display.ShowCreases,
	}
}

// sessionOptions maps the engine configuration onto headless sessions.
func sessionOptions() []origami.SessionOption {
	return []origami.SessionOption{
		origami.WithEpsilon(appConfig.Engine.Epsilon),
		origami.WithPrecision(appConfig.Engine.Precision),
		origami.WithAffineEpsilon(appConfig.Engine.AffineEpsilon),
	}
}

// openStore opens the records database. Without one the game still works,
// so failures only warn.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Paths.DB)
	if err != nil {
		logger.Warn("could not open records database", "path", appConfig.Paths.DB, "error", err)
		return nil
	}
	return store
}

// terminalConfig sizes the runtime to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// exitf prints an error to stderr and exits 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
