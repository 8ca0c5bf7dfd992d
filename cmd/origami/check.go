package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	origami "github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check [puzzle|file...]",
	Short: "Validate puzzles and replay their reference solutions",
	Long: `Load each puzzle, reject malformed definitions, make sure the
unfolded sheet is not already solved and replay the reference solution.
Without arguments every puzzle in the puzzle directory is checked.

Exits with status 1 when any puzzle fails.

Examples:
  origami check
  origami check p03 ./draft.yaml
  origami check --levels ./my-puzzles`,
	ValidArgsFunction: completePuzzleIDs(true),
	Run:               runCheck,
}

// checkResult is the outcome for one puzzle.
type checkResult struct {
	ref    string
	err    error
	note   string
	failed bool
}

func runCheck(_ *cobra.Command, args []string) {
	results, err := collectChecks(args)
	if err != nil {
		exitf("%v", err)
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.failed:
			failed++
			msg := r.note
			if r.err != nil {
				msg = r.err.Error()
			}
			fmt.Printf("FAIL  %-12s %s\n", r.ref, msg)
		default:
			fmt.Printf("ok    %-12s %s\n", r.ref, r.note)
		}
	}

	fmt.Printf("\n%d checked, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// collectChecks checks the named puzzles, or every file in the puzzle
// directory. Files the loader skips count as failures.
func collectChecks(args []string) ([]checkResult, error) {
	var results []checkResult

	if len(args) == 0 {
		lvls, skipped, err := newLoader().LoadAllReport()
		if err != nil {
			return nil, err
		}
		for _, sf := range skipped {
			results = append(results, checkResult{ref: sf.Path, err: sf.Err, failed: true})
		}
		for _, lvl := range lvls {
			results = append(results, checkLevel(lvl.ID, lvl))
		}
		return results, nil
	}

	for _, ref := range args {
		lvl, err := resolveLevel(ref)
		if err != nil {
			results = append(results, checkResult{ref: ref, err: err, failed: true})
			continue
		}
		results = append(results, checkLevel(ref, lvl))
	}
	return results, nil
}

// checkLevel runs the checks that need a loaded puzzle.
func checkLevel(ref string, lvl levels.Level) checkResult {
	res := checkResult{ref: ref}

	session, err := lvl.NewSession(sessionOptions()...)
	if err != nil {
		res.err, res.failed = err, true
		return res
	}
	start, err := session.Validate()
	if err != nil {
		res.err, res.failed = err, true
		return res
	}
	if start.Solved {
		res.note, res.failed = "solved before any fold", true
		return res
	}

	if len(lvl.Solution) == 0 {
		res.note = "no reference solution"
		return res
	}

	_, report, err := origami.Replay(lvl.Puzzle, lvl.Solution, sessionOptions()...)
	switch {
	case err != nil:
		res.err, res.failed = err, true
	case !report.Solved:
		res.note, res.failed = "reference solution does not solve it: "+report.Summary(), true
	default:
		res.note = fmt.Sprintf("solved in %d folds", len(lvl.Solution))
	}
	return res
}
