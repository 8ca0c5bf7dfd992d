package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"gopkg.in/yaml.v3"
)

// YAMLPuzzle represents the YAML structure for a puzzle file.
// A sheet is given either explicitly (vertices_coords, faces_vertices,
// faces_classes) or as a grid with class_rows.
type YAMLPuzzle struct {
	ID              string            `yaml:"id"`
	Name            string            `yaml:"name"`
	VerticesCoords  [][]float64       `yaml:"vertices_coords,omitempty"`
	FacesVertices   [][]int           `yaml:"faces_vertices,omitempty"`
	FacesClasses    []string          `yaml:"faces_classes,omitempty"`
	EdgesVertices   [][]int           `yaml:"edges_vertices,omitempty"`
	EdgesAssignment []string          `yaml:"edges_assignment,omitempty"`
	Grid            *YAMLGrid         `yaml:"grid,omitempty"`
	ClassRows       []string          `yaml:"class_rows,omitempty"`
	Target          target            `yaml:"target"`
	Solution        []step            `yaml:"solution,omitempty"`
	Metadata        map[string]string `yaml:"metadata,omitempty"`
}

// YAMLGrid describes a rectangular sheet of square cells.
type YAMLGrid struct {
	Cols int     `yaml:"cols"`
	Rows int     `yaml:"rows"`
	Cell float64 `yaml:"cell,omitempty"`
}

// ParseYAML parses a YAML puzzle file.
func ParseYAML(data []byte) (*core.Puzzle, error) {
	var yp YAMLPuzzle
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	var p *core.Puzzle
	if yp.Grid != nil {
		gp, err := gridPuzzle(*yp.Grid, yp.ClassRows)
		if err != nil {
			return nil, err
		}
		p = gp
	} else {
		verts, err := toPoints(yp.VerticesCoords)
		if err != nil {
			return nil, err
		}
		edges, err := toEdges(yp.EdgesVertices, yp.EdgesAssignment)
		if err != nil {
			return nil, err
		}
		p = &core.Puzzle{
			Vertices: verts,
			Faces:    yp.FacesVertices,
			Classes:  toClasses(yp.FacesClasses),
			Edges:    edges,
		}
	}

	solution, err := toSolution(yp.Solution)
	if err != nil {
		return nil, err
	}

	p.ID = yp.ID
	p.Name = yp.Name
	p.Target = yp.Target.toCore()
	p.Solution = solution
	p.Metadata = yp.Metadata
	return p, nil
}

// gridPuzzle expands the grid generator. class_rows lists rows from the
// lowest y upward; 'd' marks a decorative cell and 'p' a plain one.
func gridPuzzle(g YAMLGrid, rows []string) (*core.Puzzle, error) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return nil, malformed(core.CodeDegenerateFace, "grid %dx%d has no cells", g.Cols, g.Rows)
	}
	if g.Cell <= 0 {
		g.Cell = 1
	}
	if len(rows) > 0 && len(rows) != g.Rows {
		return nil, malformed(core.CodeLengthMismatch, "grid has %d rows but class_rows has %d", g.Rows, len(rows))
	}

	classes := make([][]core.FaceClass, g.Rows)
	for r := range classes {
		classes[r] = make([]core.FaceClass, g.Cols)
		for c := range classes[r] {
			classes[r][c] = core.ClassPlain
		}
		if len(rows) == 0 {
			continue
		}
		row := []rune(rows[r])
		if len(row) != g.Cols {
			return nil, malformed(core.CodeLengthMismatch, "class_rows[%d] has %d cells, want %d", r, len(row), g.Cols)
		}
		for c, ch := range row {
			switch ch {
			case 'd', 'D':
				classes[r][c] = core.ClassDecorative
			case 'p', 'P':
				classes[r][c] = core.ClassPlain
			default:
				return nil, malformed(core.CodeEmptyClass, "class_rows[%d][%d]: unknown cell %q", r, c, ch)
			}
		}
	}

	return core.GridPuzzle(g.Cols, g.Rows, g.Cell, func(col, row int) core.FaceClass {
		return classes[row][col]
	}), nil
}
