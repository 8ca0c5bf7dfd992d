package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFoldDegenerateLine(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)
	before := m.Clone()

	_, err = ApplyFold(m, Line(1, 1, 1, 1), FoldValley, DefaultEpsilon)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCreaseLine))
	assert.True(t, m.Equal(before, 0), "mesh must be unchanged")
}

func TestApplyFoldNilMesh(t *testing.T) {
	_, err := ApplyFold(nil, Line(0, 0, 1, 0), FoldValley, DefaultEpsilon)
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestApplyFoldStrip(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)

	res, err := ApplyFold(m, Line(1, 0, 1, 1), FoldMountain, DefaultEpsilon)
	require.NoError(t, err)

	// vertices at x=0 (indices 0 and 3) move to x=2
	assert.Equal(t, []int{0, 3}, res.MovedVertices)
	assert.Equal(t, []int{0}, res.MovedFaces)
	assert.Equal(t, P(2, 0), m.Vertices[0])
	assert.Equal(t, P(2, 1), m.Vertices[3])

	assert.True(t, m.Flipped[0])
	assert.False(t, m.Flipped[1])
	assert.Equal(t, 1, m.Layers[0])
	assert.Equal(t, 0, m.Layers[1])
	assert.Equal(t, 1, m.LastFold[0])
	assert.Equal(t, 1, m.Folds)

	// the shared edge on x=1 becomes a mountain crease
	require.Len(t, res.CreaseEdges, 1)
	e := m.Edges[res.CreaseEdges[0]]
	assert.Equal(t, AssignMountain, e.Assignment)
	assert.Equal(t, 1.0, m.Vertices[e.V1].X)
	assert.Equal(t, 1.0, m.Vertices[e.V2].X)
}

func TestApplyFoldTypeDoesNotChangeGeometry(t *testing.T) {
	valley, err := stripPuzzle().Mesh()
	require.NoError(t, err)
	mountain := valley.Clone()

	_, err = ApplyFold(valley, Line(1, 0, 1, 1), FoldValley, DefaultEpsilon)
	require.NoError(t, err)
	_, err = ApplyFold(mountain, Line(1, 0, 1, 1), FoldMountain, DefaultEpsilon)
	require.NoError(t, err)

	assert.Equal(t, valley.Vertices, mountain.Vertices)
	assert.Equal(t, valley.Flipped, mountain.Flipped)
	assert.Equal(t, valley.Layers, mountain.Layers)
}

func TestApplyFoldRejectsCrossingCrease(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)
	before := m.Clone()

	_, err = ApplyFold(m, Line(0.5, 0, 0.5, 1), FoldValley, DefaultEpsilon)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCreaseCrossesFace)

	var ferr *FoldError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 0, ferr.Face)
	assert.True(t, m.Equal(before, 0))
}

func TestApplyFoldEmptySide(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)

	// everything lies right of x=-1 and the moving side is the left one
	_, err = ApplyFold(m, Line(-1, 0, -1, 1), FoldValley, DefaultEpsilon)
	assert.ErrorIs(t, err, ErrEmptyFold)
	assert.Equal(t, 0, m.Folds)
}

func TestApplyFoldAbsorbsRoundOff(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)
	m.Vertices[1] = P(1+5e-4, 0)

	_, err = ApplyFold(m, Line(1, 0, 1, 1), FoldValley, DefaultEpsilon)
	require.NoError(t, err)
	assert.Equal(t, P(1+5e-4, 0), m.Vertices[1], "vertex within eps must not move")
}

func TestDoubleFoldRestoresFace(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)
	orig := m.Clone()

	_, err = ApplyFold(m, Line(1, 0, 1, 1), FoldValley, DefaultEpsilon)
	require.NoError(t, err)
	require.True(t, m.Flipped[0])

	// reversed crease: the right side, where face 0 now lies, moves back
	_, err = ApplyFold(m, Line(1, 1, 1, 0), FoldValley, DefaultEpsilon)
	require.NoError(t, err)

	assert.False(t, m.Flipped[0], "two reflections restore the flag")
	for _, vi := range m.Faces[0] {
		assert.True(t, m.Vertices[vi].Eq(orig.Vertices[vi], 1e-9))
	}
}

func TestApplyFoldStacksReversed(t *testing.T) {
	m, err := GridPuzzle(4, 1, 1, nil).Mesh()
	require.NoError(t, err)

	// fold x<2 over, then fold x>3 back onto the pile
	_, err = ApplyFold(m, Line(2, 0, 2, 1), FoldValley, DefaultEpsilon)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 0}, m.Layers)

	_, err = ApplyFold(m, Line(3, 1, 3, 0), FoldValley, DefaultEpsilon)
	require.NoError(t, err)

	// faces 0 (layer 1) and 3 (layer 0) sat beyond x=3; the lower one lands on top
	assert.Equal(t, 2, m.Layers[0])
	assert.Equal(t, 3, m.Layers[3])
	assert.Equal(t, 3, m.TopFaceAt(P(2.5, 0.5)))
}
