package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	origami "github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels/formats"
)

var (
	flagCreases  []string
	flagSolution bool
	flagSVG      string
	flagExport   string
)

var foldCmd = &cobra.Command{
	Use:   "fold <puzzle|file>",
	Short: "Apply folds headless and print the result",
	Long: `Apply a sequence of folds to a puzzle without the TUI, then print
every face and the validation report.

Each --crease is "x1,y1,x2,y2" with an optional ":valley" or ":mountain"
suffix. The part of the sheet left of the direction from (x1,y1) to
(x2,y2) folds over.

Examples:
  origami fold p01 --crease 1,0,1,1
  origami fold p04 --crease 1,0,1,1 --crease 2,0,2,1:mountain
  origami fold p03 --solution --svg p03.svg
  origami fold ./draft.yaml --crease 0,0,2,2 --export draft.fold`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePuzzleIDs(false),
	Run:               runFold,
}

func init() {
	foldCmd.Flags().StringArrayVarP(&flagCreases, "crease", "c", nil, "Crease x1,y1,x2,y2[:valley|mountain] (repeatable)")
	foldCmd.Flags().BoolVar(&flagSolution, "solution", false, "Apply the puzzle's reference solution")
	foldCmd.Flags().StringVar(&flagSVG, "svg", "", "Write the folded sheet as SVG to this file (- for stdout)")
	foldCmd.Flags().StringVar(&flagExport, "export", "", "Write the folded state as a FOLD file")
}

func runFold(_ *cobra.Command, args []string) {
	lvl, err := resolveLevel(args[0])
	if err != nil {
		exitf("%v", err)
	}

	steps, err := foldSteps(flagCreases)
	if err != nil {
		exitf("%v", err)
	}
	if flagSolution {
		if len(lvl.Solution) == 0 {
			exitf("puzzle %s has no reference solution", lvl.ID)
		}
		steps = append(append([]origami.FoldStep{}, lvl.Solution...), steps...)
	}

	session, report, err := origami.Replay(lvl.Puzzle, steps, sessionOptions()...)
	if err != nil {
		exitf("%v", err)
	}
	mesh, err := session.Mesh()
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("%s (%s)\n", lvl.Name, lvl.ID)
	fmt.Print(origami.RenderASCII(mesh))
	fmt.Println()
	fmt.Print(origami.RenderReport(report))

	if flagSVG != "" {
		if err := writeSVG(session, flagSVG); err != nil {
			exitf("%v", err)
		}
	}

	if flagExport != "" {
		data, err := formats.EncodeFOLD(lvl.Puzzle, mesh)
		if err != nil {
			exitf("%v", err)
		}
		if err := os.WriteFile(flagExport, data, 0o644); err != nil {
			exitf("writing %s: %v", flagExport, err)
		}
		logger.Info("exported", "file", flagExport)
	}
}

// foldSteps parses the --crease flags in order.
func foldSteps(creases []string) ([]origami.FoldStep, error) {
	steps := make([]origami.FoldStep, 0, len(creases))
	for _, c := range creases {
		line, ft, err := origami.ParseCrease(c)
		if err != nil {
			return nil, err
		}
		steps = append(steps, origami.FoldStep{Line: line, Type: ft})
	}
	return steps, nil
}

func writeSVG(session *origami.Session, path string) error {
	doc, err := foldedSVG(session)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.WriteString(doc)
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote svg", "file", path)
	return nil
}
