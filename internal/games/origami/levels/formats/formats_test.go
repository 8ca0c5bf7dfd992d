package formats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
)

func TestParseYAMLExplicitSheet(t *testing.T) {
	data := []byte(`
id: tri
name: Triangles
vertices_coords: [[0, 0], [2, 0], [2, 2], [0, 2]]
faces_vertices: [[0, 1, 2], [0, 2, 3]]
faces_classes: [plain, decorative]
edges_vertices: [[0, 1], [1, 2], [2, 3], [3, 0], [0, 2]]
edges_assignment: [b, B, B, B, F]
target: {positions: 1}
solution:
  - {p1: [0, 0], p2: [2, 2], type: m}
`)
	p, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if len(p.Vertices) != 4 || len(p.Faces) != 2 {
		t.Fatalf("unexpected sheet: %d vertices, %d faces", len(p.Vertices), len(p.Faces))
	}
	if p.Edges[0].Assignment != core.AssignBoundary || p.Edges[4].Assignment != core.AssignFlat {
		t.Errorf("unexpected assignments: %v", p.Edges)
	}
	if p.Solution[0].Type != core.FoldMountain {
		t.Errorf("expected mountain, got %s", p.Solution[0].Type)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"short vertex", "vertices_coords: [[0]]\n", core.CodeLengthMismatch},
		{"assignment count", "vertices_coords: [[0,0]]\nedges_vertices: [[0,1]]\nedges_assignment: [B, B]\n", core.CodeLengthMismatch},
		{"edge arity", "vertices_coords: [[0,0]]\nedges_vertices: [[0,1,2]]\n", core.CodeBadEdge},
		{"empty grid", "grid: {cols: 0, rows: 1}\n", core.CodeDegenerateFace},
		{"class rows count", "grid: {cols: 1, rows: 2}\nclass_rows: [d]\n", core.CodeLengthMismatch},
		{"unknown cell", "grid: {cols: 2, rows: 1}\nclass_rows: [dx]\n", core.CodeEmptyClass},
		{"short solution point", "grid: {cols: 1, rows: 1}\nsolution: [{p1: [0], p2: [1, 1]}]\n", core.CodeLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, verr.Code)
			}
		})
	}
}

func TestParseYAMLBadFoldType(t *testing.T) {
	_, err := ParseYAML([]byte("grid: {cols: 1, rows: 1}\nsolution: [{p1: [0, 0], p2: [1, 1], type: sideways}]\n"))
	if err == nil {
		t.Fatal("expected error for unknown fold type")
	}
}

func TestParseFOLDDefaultsToPlain(t *testing.T) {
	p, err := ParseFOLD([]byte(`{"vertices_coords": [[0,0],[1,0],[1,1]], "faces_vertices": [[0,1,2]]}`))
	if err != nil {
		t.Fatalf("ParseFOLD failed: %v", err)
	}
	if len(p.Classes) != 1 || p.Classes[0] != core.ClassPlain {
		t.Errorf("expected one plain face, got %v", p.Classes)
	}
	if p.Target.Positions != 0 {
		t.Errorf("expected no target, got %+v", p.Target)
	}
}

func TestEncodeFOLDRoundTrip(t *testing.T) {
	p := core.GridPuzzle(2, 1, 1, func(col, _ int) core.FaceClass {
		if col == 0 {
			return core.ClassDecorative
		}
		return core.ClassPlain
	})
	p.ID = "strip"
	p.Name = "Strip"
	p.Target = core.Target{Positions: 1}
	p.Solution = []core.FoldStep{{Line: core.Line(1, 0, 1, 1), Type: core.FoldMountain}}

	s, err := core.NewSession(p)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if _, err := s.Fold(p.Solution[0].Line, p.Solution[0].Type); err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	m, err := s.Mesh()
	if err != nil {
		t.Fatal(err)
	}

	data, err := EncodeFOLD(p, m)
	if err != nil {
		t.Fatalf("EncodeFOLD failed: %v", err)
	}

	var raw FOLDFile
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !raw.FacesFlipped[0] || raw.FacesLayers[0] != 1 {
		t.Errorf("fold state lost: flipped=%v layers=%v", raw.FacesFlipped, raw.FacesLayers)
	}
	var mountains int
	for _, a := range raw.EdgesAssignment {
		if a == "M" {
			mountains++
		}
	}
	if mountains != 1 {
		t.Errorf("expected one mountain crease, got %d", mountains)
	}

	back, err := ParseFOLD(data)
	if err != nil {
		t.Fatalf("ParseFOLD failed: %v", err)
	}
	if back.ID != "strip" || back.Name != "Strip" || back.Target.Positions != 1 {
		t.Errorf("metadata lost: %+v", back)
	}
	if len(back.Solution) != 1 || back.Solution[0].Type != core.FoldMountain {
		t.Errorf("solution lost: %+v", back.Solution)
	}

	if _, err := EncodeFOLD(nil, m); !errors.Is(err, core.ErrMissingCollaborator) {
		t.Errorf("expected ErrMissingCollaborator, got %v", err)
	}
}
