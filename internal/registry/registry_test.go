package registry

import (
	"testing"

	"github.com/vovakirdan/tui-origami/internal/core"
)

type stubGame struct{ opts Options }

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	Register("zz-stub", "Stub", func(opts Options) Game { return &stubGame{opts: opts} })

	if !Exists("zz-stub") {
		t.Fatal("registered mode should exist")
	}

	g, err := Create("zz-stub", Options{StartLevel: "p02"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.(*stubGame).opts.StartLevel != "p02" {
		t.Error("options should reach the factory")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List should include the registered mode")
	}

	if _, err := Create("missing", Options{}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", "Dup", func(Options) Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz-dup", "Dup", func(Options) Game { return &stubGame{} })
}
