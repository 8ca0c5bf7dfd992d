package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripPuzzle is a 2x1 sheet: a decorative cell at x in [0,1] and a plain one at [1,2].
func stripPuzzle() *Puzzle {
	p := GridPuzzle(2, 1, 1, func(col, _ int) FaceClass {
		if col == 0 {
			return ClassDecorative
		}
		return ClassPlain
	})
	p.ID = "strip"
	p.Target = Target{Positions: 1}
	return p
}

func TestNewMeshRejectsMalformed(t *testing.T) {
	square := []Point{P(0, 0), P(1, 0), P(1, 1), P(0, 1)}

	tests := []struct {
		name    string
		verts   []Point
		faces   [][]int
		classes []FaceClass
		edges   []Edge
		code    string
	}{
		{
			name:    "class count mismatch",
			verts:   square,
			faces:   [][]int{{0, 1, 2, 3}},
			classes: nil,
			code:    CodeLengthMismatch,
		},
		{
			name:    "index out of range",
			verts:   square,
			faces:   [][]int{{0, 1, 2, 7}},
			classes: []FaceClass{ClassPlain},
			code:    CodeIndexOutOfRange,
		},
		{
			name:    "two vertices",
			verts:   square,
			faces:   [][]int{{0, 1}},
			classes: []FaceClass{ClassPlain},
			code:    CodeDegenerateFace,
		},
		{
			name:    "collinear face",
			verts:   []Point{P(0, 0), P(1, 0), P(2, 0)},
			faces:   [][]int{{0, 1, 2}},
			classes: []FaceClass{ClassPlain},
			code:    CodeDegenerateFace,
		},
		{
			name:    "empty class",
			verts:   square,
			faces:   [][]int{{0, 1, 2, 3}},
			classes: []FaceClass{""},
			code:    CodeEmptyClass,
		},
		{
			name:    "bad edge",
			verts:   square,
			faces:   [][]int{{0, 1, 2, 3}},
			classes: []FaceClass{ClassPlain},
			edges:   []Edge{{V1: 0, V2: 9}},
			code:    CodeBadEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(tt.verts, tt.faces, tt.classes, tt.edges)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedPuzzle))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestMeshCloneIsIndependent(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)

	c := m.Clone()
	require.True(t, c.Equal(m, 0))

	c.Vertices[0] = P(9, 9)
	c.Faces[0][0] = 5
	c.Flipped[1] = true
	c.Layers[0] = 4
	c.Edges[0].Assignment = AssignValley

	assert.Equal(t, P(0, 0), m.Vertices[0])
	assert.Equal(t, 0, m.Faces[0][0])
	assert.False(t, m.Flipped[1])
	assert.Equal(t, 0, m.Layers[0])
	assert.NotEqual(t, AssignValley, m.Edges[0].Assignment)
	assert.False(t, c.Equal(m, 1e-9))
}

func TestDeriveEdges(t *testing.T) {
	p := GridPuzzle(2, 2, 1, nil)
	edges := DeriveEdges(p.Faces)

	// 3x3 vertices: 6 horizontal + 6 vertical edges, 4 of them interior
	require.Len(t, edges, 12)
	flat := 0
	for _, e := range edges {
		assert.Less(t, e.V1, e.V2)
		if e.Assignment == AssignFlat {
			flat++
		}
	}
	assert.Equal(t, 4, flat)
}

func TestMeshGeometryHelpers(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumFaces())
	assert.Equal(t, 6, m.NumVertices())
	assert.Equal(t, P(0.5, 0.5), m.Centroid(0))
	assert.InDelta(t, 1, m.FaceArea(1), 1e-12)

	b := m.Bounds()
	assert.Equal(t, P(0, 0), b.Min)
	assert.Equal(t, P(2, 1), b.Max)

	assert.Equal(t, 0, m.TopFaceAt(P(0.5, 0.5)))
	assert.Equal(t, 1, m.TopFaceAt(P(1.5, 0.5)))
	assert.Equal(t, -1, m.TopFaceAt(P(3, 0.5)))
}

func TestMeshValidateReportsLastFoldLength(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)

	m.LastFold = m.LastFold[:1]
	err = m.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeLengthMismatch, verr.Code)
	assert.Contains(t, verr.Message, "lastfold=1")
	assert.Contains(t, verr.Message, "faces=2")
}
