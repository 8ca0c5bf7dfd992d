// Package formats provides pluggable puzzle file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
)

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".fold", ".json"}
}

// Parse routes data to the parser for the given extension.
func Parse(data []byte, ext string) (*core.Puzzle, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".fold", ".json":
		return ParseFOLD(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// malformed builds a schema error that unwraps to core.ErrMalformedPuzzle.
func malformed(code, format string, args ...any) error {
	return &core.ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// toPoint converts an [x, y] pair.
func toPoint(xy []float64, what string) (core.Point, error) {
	if len(xy) != 2 {
		return core.Point{}, malformed(core.CodeLengthMismatch, "%s: want [x, y], got %d values", what, len(xy))
	}
	return core.P(xy[0], xy[1]), nil
}

func toPoints(coords [][]float64) ([]core.Point, error) {
	out := make([]core.Point, len(coords))
	for i, xy := range coords {
		p, err := toPoint(xy, fmt.Sprintf("vertex %d", i))
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func toClasses(names []string) []core.FaceClass {
	out := make([]core.FaceClass, len(names))
	for i, n := range names {
		out[i] = core.FaceClass(strings.TrimSpace(n))
	}
	return out
}

// toEdges zips edges_vertices with edges_assignment. Missing assignments are "U".
func toEdges(pairs [][]int, assignments []string) ([]core.Edge, error) {
	if len(assignments) > 0 && len(assignments) != len(pairs) {
		return nil, malformed(core.CodeLengthMismatch, "%d edges but %d assignments", len(pairs), len(assignments))
	}
	edges := make([]core.Edge, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, malformed(core.CodeBadEdge, "edge %d: want 2 vertices, got %d", i, len(pair))
		}
		a := core.AssignUnassigned
		if len(assignments) > 0 {
			a = core.Assignment(strings.ToUpper(strings.TrimSpace(assignments[i])))
		}
		edges[i] = core.Edge{V1: pair[0], V2: pair[1], Assignment: a}
	}
	return edges, nil
}

// step is a reference fold as written in puzzle files.
type step struct {
	P1   []float64 `yaml:"p1" json:"p1"`
	P2   []float64 `yaml:"p2" json:"p2"`
	Type string    `yaml:"type,omitempty" json:"type,omitempty"`
}

func toSolution(steps []step) ([]core.FoldStep, error) {
	out := make([]core.FoldStep, 0, len(steps))
	for i, s := range steps {
		p1, err := toPoint(s.P1, fmt.Sprintf("solution step %d p1", i+1))
		if err != nil {
			return nil, err
		}
		p2, err := toPoint(s.P2, fmt.Sprintf("solution step %d p2", i+1))
		if err != nil {
			return nil, err
		}
		ft, err := core.ParseFoldType(s.Type)
		if err != nil {
			return nil, fmt.Errorf("solution step %d: %w", i+1, err)
		}
		out = append(out, core.FoldStep{Line: core.CreaseLine{P1: p1, P2: p2}, Type: ft})
	}
	return out, nil
}

func fromSolution(steps []core.FoldStep) []step {
	out := make([]step, len(steps))
	for i, s := range steps {
		out[i] = step{
			P1:   []float64{s.Line.P1.X, s.Line.P1.Y},
			P2:   []float64{s.Line.P2.X, s.Line.P2.Y},
			Type: s.Type.String(),
		}
	}
	return out
}

// target is the win condition as written in puzzle files.
type target struct {
	Positions int    `yaml:"positions" json:"positions"`
	Class     string `yaml:"class,omitempty" json:"class,omitempty"`
	Precision int    `yaml:"precision,omitempty" json:"precision,omitempty"`
}

func (t target) toCore() core.Target {
	return core.Target{
		Positions: t.Positions,
		Class:     core.FaceClass(strings.TrimSpace(t.Class)),
		Precision: t.Precision,
	}
}
