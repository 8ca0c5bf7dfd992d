package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectMirrorsDistance(t *testing.T) {
	lines := []CreaseLine{
		Line(0, 0, 1, 0),
		Line(2, 0, 2, 4),
		Line(0, 0, 4, 4),
		Line(4, 1, -3, 2.5),
		Line(0.3, -7, 0.31, 9),
	}
	points := []Point{P(0, 0), P(1, 2), P(-3, 5), P(3.7, -1.2), P(100, 0.5)}

	for _, l := range lines {
		for _, p := range points {
			r := Reflect(p, l)
			before := SignedDistance(p, l)
			after := SignedDistance(r, l)

			assert.InDelta(t, -before, after, 1e-9, "line %s point %s", l, p)
			mid := p.Add(r).Scale(0.5)
			assert.InDelta(t, 0, SignedDistance(mid, l), 1e-9, "midpoint off line %s", l)
		}
	}
}

func TestReflectIsInvolution(t *testing.T) {
	l := Line(1, 1, 3, 2)
	p := P(-2, 7)
	back := Reflect(Reflect(p, l), l)
	assert.True(t, back.Eq(p, 1e-9), "got %s", back)
}

func TestCreaseNormal(t *testing.T) {
	n, d := Line(2, 0, 2, 4).Normal()
	assert.InDelta(t, -1, n.X, 1e-12)
	assert.InDelta(t, 0, n.Y, 1e-12)
	assert.InDelta(t, -2, d, 1e-12)

	// left of a vertical crease pointing up is the moving side
	assert.Greater(t, SignedDistance(P(1, 1), Line(2, 0, 2, 4)), 0.0)
	assert.Less(t, SignedDistance(P(3, 1), Line(2, 0, 2, 4)), 0.0)
}

func TestParseCrease(t *testing.T) {
	tests := []struct {
		in      string
		line    CreaseLine
		ft      FoldType
		wantErr bool
	}{
		{in: "2,0,2,4", line: Line(2, 0, 2, 4), ft: FoldValley},
		{in: "0, 0, 4, 4:mountain", line: Line(0, 0, 4, 4), ft: FoldMountain},
		{in: "1.5,0,1.5,2:v", line: Line(1.5, 0, 1.5, 2), ft: FoldValley},
		{in: "1,2,3", wantErr: true},
		{in: "a,b,c,d", wantErr: true},
		{in: "0,0,1,1:sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			line, ft, err := ParseCrease(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.ft, ft)
		})
	}
}

func TestFoldTypeToggle(t *testing.T) {
	assert.Equal(t, FoldMountain, FoldValley.Toggle())
	assert.Equal(t, FoldValley, FoldMountain.Toggle())
	assert.Equal(t, AssignValley, FoldValley.Assignment())
	assert.Equal(t, AssignMountain, FoldMountain.Assignment())
	assert.Equal(t, "mountain", FoldMountain.String())
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{P(0, 0), P(2, 0), P(2, 2), P(0, 2)}
	assert.True(t, pointInPolygon(P(1, 1), square))
	assert.False(t, pointInPolygon(P(3, 1), square))
	assert.False(t, pointInPolygon(P(-0.5, 1), square))
	assert.InDelta(t, 4, math.Abs(polygonArea(square)), 1e-12)
}
