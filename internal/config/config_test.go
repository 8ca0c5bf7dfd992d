package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	got := embeddedDefault()
	want := DefaultOrigamiConfig()
	if got != want {
		t.Errorf("embedded defaults drifted:\n got %+v\nwant %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOrigamiCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "origami.yaml")
	data := []byte("engine:\n  precision: 2\ndisplay:\n  show_creases: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrigami(path)
	if err != nil {
		t.Fatalf("LoadOrigami failed: %v", err)
	}
	if cfg.Engine.Precision != 2 {
		t.Errorf("expected precision 2, got %d", cfg.Engine.Precision)
	}
	if cfg.Display.ShowCreases {
		t.Error("expected show_creases false")
	}
	// untouched keys keep their defaults
	if cfg.Engine.Epsilon != 1e-3 || cfg.Display.CellW != 4 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadOrigamiErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadOrigami(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom file")
	}

	tests := map[string]string{
		"syntax":    "engine: [",
		"epsilon":   "engine:\n  epsilon: 0\n",
		"precision": "engine:\n  precision: 12\n",
		"cells":     "display:\n  cell_w: 0\n",
		"slack":     "scoring:\n  slack: -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadOrigami(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadOrigamiSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	// nothing on disk: embedded default
	cfg, err := LoadOrigami("")
	if err != nil {
		t.Fatalf("LoadOrigami failed: %v", err)
	}
	if cfg.Scoring.Slack != 2 {
		t.Errorf("expected default slack, got %d", cfg.Scoring.Slack)
	}

	// ./configs wins over the embedded default
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "origami.yaml"), []byte("scoring:\n  slack: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, _ = LoadOrigami(""); cfg.Scoring.Slack != 5 {
		t.Errorf("expected local slack 5, got %d", cfg.Scoring.Slack)
	}

	// the user directory wins over ./configs
	userDir := filepath.Join(home, ".origami", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "origami.yaml"), []byte("scoring:\n  slack: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, _ = LoadOrigami(""); cfg.Scoring.Slack != 7 {
		t.Errorf("expected user slack 7, got %d", cfg.Scoring.Slack)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute paths should be untouched, got %q", got)
	}
}

func TestStars(t *testing.T) {
	s := ScoringConfig{Slack: 2}

	tests := []struct {
		folds, par, want int
	}{
		{2, 2, 3},
		{1, 2, 3},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 1},
		{9, 0, 3},
	}
	for _, tt := range tests {
		if got := s.Stars(tt.folds, tt.par); got != tt.want {
			t.Errorf("Stars(%d, %d) = %d, want %d", tt.folds, tt.par, got, tt.want)
		}
	}

	if got := StarString(2); got != "★★☆" {
		t.Errorf("StarString(2) = %q", got)
	}
}
