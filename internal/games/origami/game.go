// Package origami provides the fold puzzle game: cursor-driven crease
// selection on top of the fold engine in origami/core.
package origami

import (
	"errors"
	"fmt"
	"math"
	"sort"

	platformcore "github.com/vovakirdan/tui-origami/internal/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
	"github.com/vovakirdan/tui-origami/internal/games/origami/puzzles"
	"github.com/vovakirdan/tui-origami/internal/registry"
)

const (
	defaultCellW = 4
	defaultCellH = 2
	hudHeight    = 3
)

// Game implements the fold puzzle.
type Game struct {
	opts  registry.Options
	title string
	id    string

	allLevels  []levels.Level
	levelIndex int
	loadErr    error

	session  *core.Session
	mesh     *core.Mesh // copy of the live mesh, refreshed after every change
	initial  *core.Mesh
	report   core.Report
	solved   bool
	foldType core.FoldType

	// Crease selection
	snaps   []core.Point // distinct vertex positions, sorted by y then x
	cursor  int
	pending *core.Point

	status    string
	statusErr bool

	screenW  int
	screenH  int
	paused   bool
	gameOver bool
}

func init() {
	registry.Register("origami", "Origami", func(opts registry.Options) registry.Game {
		return New(opts)
	})
	registry.Register("free", "Free Fold", func(opts registry.Options) registry.Game {
		return NewFree(opts)
	})
}

// New creates the puzzle campaign over opts.Levels, or the bundled puzzles.
func New(opts registry.Options) *Game {
	return &Game{opts: withDefaults(opts), id: "origami", title: "Origami"}
}

// NewFree creates a game on a single open sheet with no reference solution.
func NewFree(opts registry.Options) *Game {
	g := &Game{opts: withDefaults(opts), id: "free", title: "Free Fold"}
	g.allLevels = []levels.Level{{Puzzle: FreeSheet()}}
	return g
}

// FreeSheet is a 4x4 checkerboard that is solved once folded down to a
// single cell with a decorative face on top. Its solves are not recorded.
func FreeSheet() *core.Puzzle {
	p := core.GridPuzzle(4, 4, 1, func(col, row int) core.FaceClass {
		if (col+row)%2 == 0 {
			return core.ClassDecorative
		}
		return core.ClassPlain
	})
	p.ID = "free"
	p.Name = "Checkerboard"
	p.Target = core.Target{Positions: 1, Class: core.ClassDecorative}
	return p
}

func withDefaults(opts registry.Options) registry.Options {
	if opts.Epsilon <= 0 {
		opts.Epsilon = core.DefaultEpsilon
	}
	if opts.Precision <= 0 {
		opts.Precision = core.DefaultPrecision
	}
	if opts.CellW <= 0 {
		opts.CellW = defaultCellW
	}
	if opts.CellH <= 0 {
		opts.CellH = defaultCellH
	}
	return opts
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset adapts to the screen and, on first use, loads the puzzles.
// The current puzzle and its folds survive later calls.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	if g.allLevels == nil {
		g.loadLevels()
	}
	if g.session == nil && g.loadErr == nil && !g.gameOver {
		g.loadCurrentLevel()
	}
}

func (g *Game) loadLevels() {
	fsys := g.opts.Levels
	if fsys == nil {
		fsys = puzzles.FS()
	}
	all, err := levels.NewFSLoader(fsys).LoadAll()
	switch {
	case err != nil:
		g.loadErr = err
		return
	case len(all) == 0:
		g.loadErr = errors.New("no puzzles found")
		return
	}
	g.allLevels = all

	g.levelIndex = 0
	for i, lvl := range all {
		if lvl.ID == g.opts.StartLevel {
			g.levelIndex = i
			break
		}
	}
}

// loadCurrentLevel starts a fresh session on the level at levelIndex.
func (g *Game) loadCurrentLevel() {
	if g.levelIndex >= len(g.allLevels) {
		g.gameOver = true
		return
	}

	s, err := g.allLevels[g.levelIndex].NewSession(
		core.WithEpsilon(g.opts.Epsilon),
		core.WithPrecision(g.opts.Precision),
	)
	if err != nil {
		g.loadErr = err
		return
	}
	g.session = s
	g.initial, _ = s.Initial()
	g.foldType = core.FoldValley
	g.pending = nil
	g.cursor = 0
	g.setStatus("", false)
	g.refresh(core.Point{})
}

// Level returns the puzzle being played, or nil.
func (g *Game) Level() *core.Puzzle {
	if g.session == nil {
		return nil
	}
	return g.session.Puzzle()
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	if input.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.session == nil || input.Empty() {
		return platformcore.StepResult{State: g.State()}
	}

	wasSolved := g.solved

	switch {
	case input.Has(platformcore.ActionNext):
		if g.solved {
			g.levelIndex++
			g.loadCurrentLevel()
			return platformcore.StepResult{State: g.State()}
		}
		g.setStatus("solve this puzzle first", true)
	case input.Has(platformcore.ActionUndo):
		g.undo()
	case input.Has(platformcore.ActionRestart):
		g.restart()
	case input.Has(platformcore.ActionToggle):
		g.foldType = g.foldType.Toggle()
		g.setStatus("fold type: "+g.foldType.String(), false)
	case input.Has(platformcore.ActionCancel):
		if g.pending != nil {
			g.pending = nil
			g.setStatus("selection cleared", false)
		}
	case input.Has(platformcore.ActionSelect):
		g.selectPoint()
	default:
		g.moveCursor(input)
	}

	return platformcore.StepResult{
		State:      g.State(),
		JustSolved: g.solved && !wasSolved,
	}
}

func (g *Game) moveCursor(input platformcore.InputFrame) {
	var dir core.Point
	switch {
	case input.Has(platformcore.ActionLeft):
		dir = core.P(-1, 0)
	case input.Has(platformcore.ActionRight):
		dir = core.P(1, 0)
	case input.Has(platformcore.ActionUp):
		dir = core.P(0, 1)
	case input.Has(platformcore.ActionDown):
		dir = core.P(0, -1)
	default:
		return
	}
	g.cursor = nextSnap(g.snaps, g.cursor, dir)
}

// nextSnap returns the index of the closest snap point in direction dir,
// preferring points aligned with the current one. It stays put when
// nothing lies that way.
func nextSnap(snaps []core.Point, cur int, dir core.Point) int {
	if cur < 0 || cur >= len(snaps) {
		return 0
	}
	from := snaps[cur]
	best, bestScore := cur, math.Inf(1)
	for i, p := range snaps {
		d := p.Sub(from)
		along := d.Dot(dir)
		if along <= 1e-9 {
			continue
		}
		across := math.Abs(d.Dot(dir.Perp()))
		if score := along + 2*across; score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (g *Game) selectPoint() {
	if len(g.snaps) == 0 {
		return
	}
	p := g.snaps[g.cursor]
	if g.pending == nil {
		g.pending = &p
		g.setStatus(fmt.Sprintf("crease from %s, pick the second point", p), false)
		return
	}

	p1 := *g.pending
	g.pending = nil
	line := core.CreaseLine{P1: p1, P2: p}
	res, err := g.session.Fold(line, g.foldType)
	if err != nil {
		g.setStatus(foldErrorText(err), true)
		return
	}

	g.refresh(p)
	if g.solved {
		g.setStatus(fmt.Sprintf("solved in %d folds, N for the next puzzle", g.session.Moves()), false)
		return
	}
	g.setStatus(fmt.Sprintf("%s fold moved %d faces", g.foldType, len(res.MovedFaces)), false)
}

func foldErrorText(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidCreaseLine):
		return "pick two different points"
	case errors.Is(err, core.ErrCreaseCrossesFace):
		return "that crease would cut through a face"
	case errors.Is(err, core.ErrEmptyFold):
		return "nothing left of the crease, pick the points the other way round"
	default:
		return err.Error()
	}
}

func (g *Game) undo() {
	at := g.cursorPoint()
	if err := g.session.Undo(); err != nil {
		if errors.Is(err, core.ErrNothingToUndo) {
			g.setStatus("nothing to undo", true)
			return
		}
		g.setStatus(err.Error(), true)
		return
	}
	g.pending = nil
	g.refresh(at)
	g.setStatus("undone", false)
}

func (g *Game) restart() {
	if err := g.session.Reset(); err != nil {
		g.setStatus(err.Error(), true)
		return
	}
	g.pending = nil
	g.refresh(core.Point{})
	g.setStatus("sheet unfolded", false)
}

// refresh re-reads the live mesh, validates it and rebuilds snap points.
// The cursor moves to the snap point closest to near.
func (g *Game) refresh(near core.Point) {
	m, err := g.session.Mesh()
	if err != nil {
		g.loadErr = err
		return
	}
	g.mesh = m
	g.report, _ = g.session.Validate()
	g.solved = g.report.Solved
	g.snaps = snapPoints(m)
	g.cursor = closest(g.snaps, near)
}

func (g *Game) cursorPoint() core.Point {
	if g.cursor < 0 || g.cursor >= len(g.snaps) {
		return core.Point{}
	}
	return g.snaps[g.cursor]
}

// snapPoints returns the distinct vertex positions of m sorted by y then x.
func snapPoints(m *core.Mesh) []core.Point {
	type key struct{ x, y int64 }
	seen := make(map[key]bool)
	var pts []core.Point
	for _, v := range m.Vertices {
		k := key{int64(math.Round(v.X * 1e6)), int64(math.Round(v.Y * 1e6))}
		if seen[k] {
			continue
		}
		seen[k] = true
		pts = append(pts, v)
	}
	sort.Slice(pts, func(i, j int) bool {
		if math.Abs(pts[i].Y-pts[j].Y) > 1e-6 {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

func closest(pts []core.Point, p core.Point) int {
	best, bestD := 0, math.Inf(1)
	for i, q := range pts {
		if d := q.Sub(p).Len(); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func (g *Game) setStatus(msg string, isErr bool) {
	g.status = msg
	g.statusErr = isErr
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Solved:   g.solved,
		GameOver: g.gameOver || g.loadErr != nil,
		Paused:   g.paused,
		Practice: g.id == "free",
	}
	if g.session != nil {
		st.Level = g.session.Puzzle().ID
		st.SessionID = g.session.ID
		st.Moves = g.session.Moves()
		st.Undos = g.session.Undos()
	}
	return st
}
