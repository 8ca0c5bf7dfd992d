package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/registry"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all puzzles",
	Long: `Shows every puzzle found in the puzzle directory (or the bundled
puzzles), with its goal and your best solve when the records database
is available.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	lvls, err := newLoader().LoadAll()
	if err != nil {
		exitf("%v", err)
	}

	if len(lvls) == 0 {
		fmt.Println("No puzzles available.")
		return
	}

	var stats map[string]*storage.PuzzleStats
	if store := openStore(); store != nil {
		stats, err = store.Stats()
		store.Close()
		if err != nil {
			logger.Warn("could not read records", "error", err)
		}
	}

	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxNameLen = max(maxNameLen, len([]rune(lvl.Name)))
	}

	fmt.Println("Puzzles:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %5s  %-16s  %3s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Faces", "Goal", "Par", "Best")
	fmt.Printf("  %-*s  %-*s  %5s  %-16s  %3s  %s\n", maxIDLen, "--", maxNameLen, "----", "-----", "----", "---", "----")

	for _, lvl := range lvls {
		goal := fmt.Sprintf("%d x %s", lvl.Target.Positions, lvl.Target.ClassOrDefault())
		par := "-"
		if n := len(lvl.Solution); n > 0 {
			par = fmt.Sprint(n)
		}
		best := "-"
		if st, ok := stats[lvl.ID]; ok {
			stars := appConfig.Scoring.Stars(st.BestFolds, len(lvl.Solution))
			best = fmt.Sprintf("%d %s", st.BestFolds, config.StarString(stars))
		}
		fmt.Printf("  %-*s  %-*s  %5d  %-16s  %3s  %s\n",
			maxIDLen, lvl.ID, maxNameLen, lvl.Name, lvl.FaceCount(), goal, par, best)
	}

	fmt.Println()
	fmt.Println("Modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-8s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'origami play <id>' to fold a puzzle.")
}
