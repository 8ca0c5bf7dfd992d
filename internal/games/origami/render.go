package origami

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/tui-origami/internal/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
)

const (
	glyphDecorative = '▓'
	glyphPlain      = '░'
	glyphCursor     = '◆'
	glyphPending    = '●'
	glyphPreview    = '∙'
	glyphCrease     = '╳'
)

// view maps sheet coordinates onto screen cells. Sheet y grows upward.
type view struct {
	area           platformcore.Rect // cells the sheet may draw into
	bounds         core.Bounds
	originX        int
	originY        int
	scaleX, scaleY int
}

// newView fits bounds into area, using at most cellW x cellH cells per unit.
func newView(bounds core.Bounds, area platformcore.Rect, cellW, cellH int) (view, bool) {
	w, h := bounds.Width(), bounds.Height()
	if w <= 0 || h <= 0 || area.Empty() {
		return view{}, false
	}

	// one extra column and row so points on the far edge stay visible
	sx := min(cellW, int(float64(area.W-1)/w))
	sy := min(cellH, int(float64(area.H-1)/h))
	if sx < 1 || sy < 1 {
		return view{}, false
	}

	usedW := int(math.Ceil(w * float64(sx)))
	usedH := int(math.Ceil(h * float64(sy)))
	return view{
		area:    area,
		bounds:  bounds,
		originX: area.X + (area.W-usedW)/2,
		originY: area.Y + (area.H-usedH)/2,
		scaleX:  sx,
		scaleY:  sy,
	}, true
}

// size returns the number of columns and rows covered by the sheet.
func (v view) size() (int, int) {
	return int(math.Ceil(v.bounds.Width() * float64(v.scaleX))),
		int(math.Ceil(v.bounds.Height() * float64(v.scaleY)))
}

// sample returns the sheet point at the centre of screen cell (x, y).
func (v view) sample(x, y int) core.Point {
	return core.P(
		v.bounds.Min.X+(float64(x-v.originX)+0.5)/float64(v.scaleX),
		v.bounds.Max.Y-(float64(y-v.originY)+0.5)/float64(v.scaleY),
	)
}

// cell returns the screen cell nearest to sheet point p.
func (v view) cell(p core.Point) (int, int) {
	x := v.originX + int(math.Round((p.X-v.bounds.Min.X)*float64(v.scaleX)))
	y := v.originY + int(math.Round((v.bounds.Max.Y-p.Y)*float64(v.scaleY)))
	return x, y
}

// halfCell is how far a cell centre may sit from a line with normal n and
// still be crossed by it.
func (v view) halfCell(n core.Point) float64 {
	return 0.5 * (math.Abs(n.X)/float64(v.scaleX) + math.Abs(n.Y)/float64(v.scaleY))
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.loadErr != nil:
		g.renderOverlay(dst, "No puzzles", g.loadErr.Error())
		return
	case g.mesh == nil:
		return
	}

	area := platformcore.NewRect(1, hudHeight, dst.Width()-2, dst.Height()-hudHeight)
	bounds := g.mesh.Bounds()
	if g.initial != nil {
		bounds = bounds.Union(g.initial.Bounds())
	}
	v, ok := newView(bounds, area, g.opts.CellW, g.opts.CellH)
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderSheet(dst, v)
	if g.opts.ShowCreases {
		g.renderCreases(dst, v)
	}
	g.renderSelection(dst, v)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "All puzzles folded!", "Q to quit")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the title line, the status line and a separator.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	p := g.Level()
	if p == nil {
		dst.DrawTextWithColor(0, 0, " "+g.title, platformcore.ColorCyan)
		dst.DrawHLine(0, 2, dst.Width(), '─', platformcore.ColorGray)
		return
	}

	hud := fmt.Sprintf(" %s | %s %s | %d/%d | Folds: %d | Type: %s",
		g.title, p.ID, p.Name, g.levelIndex+1, len(g.allLevels), g.session.Moves(), g.foldType)
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	status, color := g.status, platformcore.ColorGray
	switch {
	case g.statusErr:
		color = platformcore.ColorRed
	case status == "":
		status = fmt.Sprintf("goal: %d stacks with a %s face on top (now %d)",
			g.report.Expected, p.Target.ClassOrDefault(), g.report.Positions)
	case g.solved:
		color = platformcore.ColorGreen
	}
	dst.DrawTextWithColor(1, 1, status, color)
	dst.DrawHLine(0, 2, dst.Width(), '─', platformcore.ColorGray)
}

// renderSheet samples every cell of the view and draws the topmost face.
func (g *Game) renderSheet(dst *platformcore.Screen, v view) {
	failing := make(map[int]bool)
	if g.report.Positions == g.report.Expected {
		for _, f := range g.report.Failures {
			if f.Top >= 0 {
				failing[f.Top] = true
			}
		}
	}

	w, h := v.size()
	for y := v.originY; y < v.originY+h; y++ {
		for x := v.originX; x < v.originX+w; x++ {
			face := g.mesh.TopFaceAt(v.sample(x, y))
			if face < 0 {
				continue
			}
			glyph := glyphPlain
			if g.mesh.Classes[face] == core.ClassDecorative {
				glyph = glyphDecorative
			}
			dst.SetWithColor(x, y, glyph, faceColor(g.mesh.Flipped[face], failing[face]))
		}
	}
}

func faceColor(flipped, failing bool) platformcore.Color {
	switch {
	case failing:
		return platformcore.ColorRed
	case flipped:
		return platformcore.ColorOrange
	default:
		return platformcore.ColorCyan
	}
}

// renderCreases tints the cells crossed by valley and mountain edges.
func (g *Game) renderCreases(dst *platformcore.Screen, v view) {
	for _, e := range g.mesh.Edges {
		var color platformcore.Color
		switch e.Assignment {
		case core.AssignValley:
			color = platformcore.ColorBlue
		case core.AssignMountain:
			color = platformcore.ColorMagenta
		default:
			continue
		}
		a, b := g.mesh.Vertices[e.V1], g.mesh.Vertices[e.V2]
		steps := int(math.Ceil(b.Sub(a).Len()*float64(max(v.scaleX, v.scaleY)))) * 2
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(max(steps, 1))
			x, y := v.cell(a.Add(b.Sub(a).Scale(t)))
			if v.area.Contains(x, y) && dst.GetCell(x, y).Rune != ' ' {
				dst.SetWithColor(x, y, glyphCrease, color)
			}
		}
	}
}

// renderSelection draws the crease preview, the pending point and the cursor.
func (g *Game) renderSelection(dst *platformcore.Screen, v view) {
	if len(g.snaps) == 0 {
		return
	}
	cur := g.cursorPoint()

	if g.pending != nil {
		line := core.CreaseLine{P1: *g.pending, P2: cur}
		if !line.IsDegenerate() {
			n, _ := line.Normal()
			tol := v.halfCell(n)
			w, h := v.size()
			for y := v.originY; y <= v.originY+h; y++ {
				for x := v.originX; x <= v.originX+w; x++ {
					if v.area.Contains(x, y) && math.Abs(core.SignedDistance(v.sample(x, y), line)) <= tol {
						dst.SetWithColor(x, y, glyphPreview, platformcore.ColorGreen)
					}
				}
			}
		}
		px, py := v.cell(*g.pending)
		dst.SetWithColor(px, py, glyphPending, platformcore.ColorGreen)
	}

	cx, cy := v.cell(cur)
	dst.SetWithColor(cx, cy, glyphCursor, platformcore.ColorBrightYellow)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 6
	boxH := 5
	cx, cy := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).Center()
	box := platformcore.NewRect(cx-boxW/2, cy-boxH/2, boxW, boxH)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, platformcore.ColorGray)
}
