package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAffineExact(t *testing.T) {
	tests := []struct {
		name     string
		src, dst [3]Point
	}{
		{
			name: "identity",
			src:  [3]Point{P(0, 0), P(1, 0), P(0, 1)},
			dst:  [3]Point{P(0, 0), P(1, 0), P(0, 1)},
		},
		{
			name: "translate",
			src:  [3]Point{P(0, 0), P(1, 0), P(0, 1)},
			dst:  [3]Point{P(3, -2), P(4, -2), P(3, -1)},
		},
		{
			name: "mirror across x=1",
			src:  [3]Point{P(0, 0), P(1, 0), P(1, 1)},
			dst:  [3]Point{P(2, 0), P(1, 0), P(1, 1)},
		},
		{
			name: "general",
			src:  [3]Point{P(0.3, 1.7), P(-2.2, 4.1), P(5.5, -0.4)},
			dst:  [3]Point{P(10, 3), P(-1.25, 7.5), P(0.125, -9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := SolveAffine(tt.src, tt.dst)
			require.NoError(t, err)
			for i := range tt.src {
				got := m.Apply(tt.src[i])
				assert.InDelta(t, tt.dst[i].X, got.X, 1e-9, "x of point %d", i)
				assert.InDelta(t, tt.dst[i].Y, got.Y, 1e-9, "y of point %d", i)
			}
		})
	}
}

func TestSolveAffineDegenerate(t *testing.T) {
	src := [3]Point{P(0, 0), P(1, 1), P(2, 2)}
	dst := [3]Point{P(5, 0), P(1, 7), P(3, 3)}

	m, err := SolveAffine(src, dst)
	assert.ErrorIs(t, err, ErrDegenerateAffineMapping)
	assert.True(t, m.IsIdentity())
}

func TestMatrixSVG(t *testing.T) {
	assert.Equal(t, "matrix(1 0 0 1 0 0)", Identity().SVG())

	m := Matrix{A: -1, B: 0, C: 2, D: 0, E: 1, F: 0}
	assert.Equal(t, "matrix(-1 0 0 1 2 0)", m.SVG())
	assert.Less(t, m.Det(), 0.0)
}

func TestFaceTransformAfterFold(t *testing.T) {
	initial, err := stripPuzzle().Mesh()
	require.NoError(t, err)
	current := initial.Clone()

	_, err = ApplyFold(current, Line(1, 0, 1, 1), FoldValley, DefaultEpsilon)
	require.NoError(t, err)

	moved, err := FaceTransform(initial, current, 0)
	require.NoError(t, err)
	assert.Less(t, moved.Det(), 0.0, "a flipped face maps with a mirror")
	got := moved.Apply(P(0.25, 0.5))
	assert.InDelta(t, 1.75, got.X, 1e-9)
	assert.InDelta(t, 0.5, got.Y, 1e-9)

	still, err := FaceTransform(initial, current, 1)
	require.NoError(t, err)
	assert.True(t, still.IsIdentity())
}

func TestFaceTransformErrors(t *testing.T) {
	m, err := stripPuzzle().Mesh()
	require.NoError(t, err)

	_, err = FaceTransform(nil, m, 0)
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = FaceTransform(m, m, 5)
	assert.ErrorIs(t, err, ErrFaceOutOfRange)
}

func TestSolveAffineWithinThreshold(t *testing.T) {
	// a thin triangle: det = 1e-3
	src := [3]Point{P(0, 0), P(1, 0), P(0, 1e-3)}
	dst := src

	_, err := SolveAffineWithin(src, dst, 1e-6)
	require.NoError(t, err)

	m, err := SolveAffineWithin(src, dst, 1e-2)
	assert.ErrorIs(t, err, ErrDegenerateAffineMapping)
	assert.True(t, m.IsIdentity())
}
