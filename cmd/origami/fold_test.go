package main

import (
	"strings"
	"testing"

	origami "github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
	"github.com/vovakirdan/tui-origami/internal/games/origami/puzzles"
)

func TestFoldSteps(t *testing.T) {
	steps, err := foldSteps([]string{"1,0,1,1", "2, 0, 2, 1:mountain"})
	if err != nil {
		t.Fatalf("foldSteps() failed: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Type != origami.FoldValley || steps[1].Type != origami.FoldMountain {
		t.Errorf("unexpected fold types %v, %v", steps[0].Type, steps[1].Type)
	}
	if steps[1].Line != origami.Line(2, 0, 2, 1) {
		t.Errorf("unexpected crease %v", steps[1].Line)
	}

	for _, bad := range []string{"1,0,1", "a,b,c,d", "1,0,1,1:sideways"} {
		if _, err := foldSteps([]string{bad}); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestFoldedSVG(t *testing.T) {
	lvl, err := levels.NewFSLoader(puzzles.FS()).LoadByID("p01")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}

	session, report, err := origami.Replay(lvl.Puzzle, lvl.Solution)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if !report.Solved {
		t.Fatal("the reference solution should solve p01")
	}

	doc, err := foldedSVG(session)
	if err != nil {
		t.Fatalf("foldedSVG() failed: %v", err)
	}

	if !strings.HasPrefix(doc, "<svg ") || !strings.HasSuffix(doc, "</svg>\n") {
		t.Errorf("not an svg document:\n%s", doc)
	}
	if got := strings.Count(doc, "<polygon"); got != 2 {
		t.Errorf("expected 2 faces, got %d", got)
	}

	// the folded face is drawn last, on top, showing its back
	last := strings.LastIndex(doc, "<polygon")
	if !strings.Contains(doc[last:], `id="F00" class="decorative back"`) {
		t.Errorf("expected F00 on top:\n%s", doc)
	}
}
