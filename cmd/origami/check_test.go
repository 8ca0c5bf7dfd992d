package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const stripYAML = `id: ok
grid: {cols: 2, rows: 1}
class_rows: [dp]
target: {positions: 1}
solution: [{p1: [1, 0], p2: [1, 1], type: valley}]
`

// face 0 points at vertex 9 of 3
const brokenYAML = `id: bad
vertices_coords: [[0, 0], [1, 0], [0, 1]]
faces_vertices: [[0, 1, 9]]
faces_classes: [decorative]
target: {positions: 1}
`

func withLevelsDir(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	prev := appConfig.Paths.Levels
	appConfig.Paths.Levels = dir
	t.Cleanup(func() { appConfig.Paths.Levels = prev })
}

func TestCollectChecksReportsSkippedFiles(t *testing.T) {
	withLevelsDir(t, map[string]string{"ok.yaml": stripYAML, "bad.yaml": brokenYAML})

	results, err := collectChecks(nil)
	if err != nil {
		t.Fatalf("collectChecks() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}

	var failed, passed []checkResult
	for _, r := range results {
		if r.failed {
			failed = append(failed, r)
		} else {
			passed = append(passed, r)
		}
	}
	if len(failed) != 1 || !strings.HasSuffix(failed[0].ref, "bad.yaml") || failed[0].err == nil {
		t.Errorf("expected bad.yaml to fail with an error, got %+v", failed)
	}
	if len(passed) != 1 || passed[0].ref != "ok" || passed[0].note != "solved in 1 folds" {
		t.Errorf("expected ok to pass, got %+v", passed)
	}
}

func TestCollectChecksBundled(t *testing.T) {
	prev := appConfig.Paths.Levels
	appConfig.Paths.Levels = ""
	t.Cleanup(func() { appConfig.Paths.Levels = prev })

	results, err := collectChecks(nil)
	if err != nil {
		t.Fatalf("collectChecks() failed: %v", err)
	}
	if len(results) != 6 {
		t.Errorf("expected 6 bundled puzzles, got %d", len(results))
	}
	for _, r := range results {
		if r.failed {
			t.Errorf("%s failed: %v %s", r.ref, r.err, r.note)
		}
	}
}

func TestCollectChecksNamed(t *testing.T) {
	withLevelsDir(t, map[string]string{"ok.yaml": stripYAML})

	results, err := collectChecks([]string{"ok", "missing"})
	if err != nil {
		t.Fatalf("collectChecks() failed: %v", err)
	}
	if len(results) != 2 || results[0].failed || !results[1].failed {
		t.Errorf("expected ok to pass and missing to fail, got %+v", results)
	}
}

func TestCompletePuzzleIDs(t *testing.T) {
	prevConfig, prevLevels := appConfig, flagLevels
	flagLevels = ""
	t.Cleanup(func() { appConfig, flagLevels = prevConfig, prevLevels })

	ids, _ := completePuzzleIDs(false)(playCmd, nil, "")
	if len(ids) != 6 || ids[0] != "p01" || ids[5] != "p06" {
		t.Errorf("expected the bundled IDs in order, got %v", ids)
	}

	if ids, _ := completePuzzleIDs(false)(playCmd, []string{"p01"}, ""); ids != nil {
		t.Errorf("only the first argument is completed, got %v", ids)
	}
	if ids, _ := completePuzzleIDs(true)(checkCmd, []string{"p01"}, ""); len(ids) != 6 {
		t.Errorf("check completes every argument, got %v", ids)
	}
}
