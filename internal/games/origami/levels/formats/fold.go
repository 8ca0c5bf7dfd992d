package formats

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
)

// FOLDFile is the subset of the FOLD interchange format used for puzzles.
// faces_classes, puzzle_id, puzzle_target and puzzle_solution are custom keys.
type FOLDFile struct {
	FileSpec        float64     `json:"file_spec,omitempty"`
	FileCreator     string      `json:"file_creator,omitempty"`
	FrameTitle      string      `json:"frame_title,omitempty"`
	VerticesCoords  [][]float64 `json:"vertices_coords"`
	FacesVertices   [][]int     `json:"faces_vertices"`
	FacesClasses    []string    `json:"faces_classes,omitempty"`
	EdgesVertices   [][]int     `json:"edges_vertices,omitempty"`
	EdgesAssignment []string    `json:"edges_assignment,omitempty"`
	FacesFlipped    []bool      `json:"faces_flipped,omitempty"`
	FacesLayers     []int       `json:"faces_layers,omitempty"`
	PuzzleID        string      `json:"puzzle_id,omitempty"`
	PuzzleTarget    *target     `json:"puzzle_target,omitempty"`
	PuzzleSolution  []step      `json:"puzzle_solution,omitempty"`
}

// ParseFOLD parses a FOLD JSON puzzle file.
// Faces without a class are plain.
func ParseFOLD(data []byte) (*core.Puzzle, error) {
	var f FOLDFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fold unmarshal: %w", err)
	}

	verts, err := toPoints(f.VerticesCoords)
	if err != nil {
		return nil, err
	}
	edges, err := toEdges(f.EdgesVertices, f.EdgesAssignment)
	if err != nil {
		return nil, err
	}
	solution, err := toSolution(f.PuzzleSolution)
	if err != nil {
		return nil, err
	}

	classes := toClasses(f.FacesClasses)
	if len(classes) == 0 {
		classes = make([]core.FaceClass, len(f.FacesVertices))
		for i := range classes {
			classes[i] = core.ClassPlain
		}
	}

	p := &core.Puzzle{
		ID:       f.PuzzleID,
		Name:     f.FrameTitle,
		Vertices: verts,
		Faces:    f.FacesVertices,
		Classes:  classes,
		Edges:    edges,
		Solution: solution,
	}
	if f.PuzzleTarget != nil {
		p.Target = f.PuzzleTarget.toCore()
	}
	if f.FileCreator != "" {
		p.Metadata = map[string]string{"creator": f.FileCreator}
	}
	return p, nil
}

// EncodeFOLD writes a mesh, folded or not, as a FOLD document.
// The puzzle supplies the title, target and reference solution.
func EncodeFOLD(p *core.Puzzle, m *core.Mesh) ([]byte, error) {
	if p == nil || m == nil {
		return nil, core.ErrMissingCollaborator
	}

	f := FOLDFile{
		FileSpec:       1.1,
		FileCreator:    "origami",
		FrameTitle:     p.Name,
		PuzzleID:       p.ID,
		VerticesCoords: make([][]float64, len(m.Vertices)),
		FacesVertices:  m.Faces,
		FacesClasses:   make([]string, len(m.Classes)),
		FacesFlipped:   m.Flipped,
		FacesLayers:    m.Layers,
		PuzzleSolution: fromSolution(p.Solution),
	}
	for i, v := range m.Vertices {
		f.VerticesCoords[i] = []float64{v.X, v.Y}
	}
	for i, c := range m.Classes {
		f.FacesClasses[i] = string(c)
	}
	for _, e := range m.Edges {
		f.EdgesVertices = append(f.EdgesVertices, []int{e.V1, e.V2})
		f.EdgesAssignment = append(f.EdgesAssignment, string(e.Assignment))
	}
	if p.Target.Positions > 0 {
		f.PuzzleTarget = &target{
			Positions: p.Target.Positions,
			Class:     string(p.Target.Class),
			Precision: p.Target.Precision,
		}
	}
	return json.MarshalIndent(f, "", "  ")
}
