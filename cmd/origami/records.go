package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [puzzle]",
	Short: "Show best solves",
	Long: `Display the best solves for a puzzle: fewest folds first, then
fastest. Without a puzzle ID a summary of every solved puzzle is shown.

Examples:
  origami records
  origami records p03
  origami records p03 --limit 3
  origami records p03 --clear`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePuzzleIDs(false),
	Run:               runRecords,
}

func init() {
	recordsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of solves to show")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the puzzle's solves")
}

func runRecords(_ *cobra.Command, args []string) {
	store, err := storage.Open(appConfig.Paths.DB)
	if err != nil {
		exitf("opening records database: %v", err)
	}
	defer store.Close()

	pars := make(map[string]int)
	names := make(map[string]string)
	if lvls, err := newLoader().LoadAll(); err == nil {
		for _, lvl := range lvls {
			pars[lvl.ID] = len(lvl.Solution)
			names[lvl.ID] = lvl.Name
		}
	}

	if len(args) == 0 {
		printSummary(store, pars, names)
		return
	}

	puzzleID := args[0]
	if flagClear {
		if err := store.ClearSolves(puzzleID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Cleared solves for %s.\n", puzzleID)
		return
	}

	solves, err := store.BestSolves(puzzleID, flagLimit)
	if err != nil {
		exitf("%v", err)
	}

	title := puzzleID
	if name, ok := names[puzzleID]; ok {
		title = fmt.Sprintf("%s (%s)", name, puzzleID)
	}
	fmt.Printf("Best solves - %s\n", title)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'origami play %s' to set the first record!\n", puzzleID)
		return
	}

	par := pars[puzzleID]
	fmt.Printf("  %-4s  %-5s  %-5s  %-8s  %-5s  %s\n", "Rank", "Folds", "Undos", "Time", "Stars", "Date")
	fmt.Printf("  %-4s  %-5s  %-5s  %-8s  %-5s  %s\n", "----", "-----", "-----", "----", "-----", "----")
	for i, s := range solves {
		fmt.Printf("  %-4d  %-5d  %-5d  %-8s  %-5s  %s\n",
			i+1, s.Folds, s.Undos,
			s.Duration.Round(100*time.Millisecond),
			config.StarString(appConfig.Scoring.Stars(s.Folds, par)),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if par > 0 {
		fmt.Println()
		fmt.Printf("Par: %d\n", par)
	}
}

func printSummary(store *storage.Store, pars map[string]int, names map[string]string) {
	stats, err := store.Stats()
	if err != nil {
		exitf("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No solves recorded yet.")
		return
	}

	ids, err := store.SolvedPuzzles()
	if err != nil {
		exitf("%v", err)
	}

	fmt.Println("Solved puzzles")
	fmt.Println()
	fmt.Printf("  %-8s  %-24s  %-6s  %-4s  %-5s  %s\n", "ID", "Name", "Solves", "Best", "Stars", "Last")
	fmt.Printf("  %-8s  %-24s  %-6s  %-4s  %-5s  %s\n", "--", "----", "------", "----", "-----", "----")
	for _, id := range ids {
		st := stats[id]
		name := names[id]
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %-8s  %-24s  %-6d  %-4d  %-5s  %s\n",
			id, name, st.Solves, st.BestFolds,
			config.StarString(appConfig.Scoring.Stars(st.BestFolds, pars[id])),
			st.LastSolved.Format("2006-01-02 15:04"),
		)
	}
}
