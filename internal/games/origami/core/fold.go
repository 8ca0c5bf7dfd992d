package core

import "math"

// DefaultEpsilon absorbs floating round-off accumulated by earlier folds.
const DefaultEpsilon = 1e-3

// FoldResult lists what a fold touched.
type FoldResult struct {
	MovedVertices []int
	MovedFaces    []int
	CreaseEdges   []int
}

// ApplyFold reflects the moving side of the mesh across line, in place.
//
// Vertices with signed distance > eps move. A face moves when all of its
// vertices are either moving or on the crease; its Flipped flag toggles and
// the moving stack is laid, reversed, on top of the sheet. The fold type only
// sets the assignment of edges lying on the crease.
//
// On error the mesh is unchanged.
func ApplyFold(m *Mesh, line CreaseLine, ft FoldType, eps float64) (FoldResult, error) {
	if m == nil {
		return FoldResult{}, ErrMissingCollaborator
	}
	if line.IsDegenerate() {
		return FoldResult{}, &FoldError{Err: ErrInvalidCreaseLine, Line: line, Face: -1}
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	n, d := line.Normal()
	dist := make([]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		dist[i] = v.Dot(n) - d
	}

	var moved []int
	for fi, face := range m.Faces {
		active, behind := 0, 0
		for _, vi := range face {
			switch {
			case dist[vi] > eps:
				active++
			case dist[vi] < -eps:
				behind++
			}
		}
		if active > 0 && behind > 0 {
			return FoldResult{}, &FoldError{Err: ErrCreaseCrossesFace, Line: line, Face: fi}
		}
		if active > 0 {
			moved = append(moved, fi)
		}
	}

	var res FoldResult
	for i := range m.Vertices {
		if dist[i] > eps {
			res.MovedVertices = append(res.MovedVertices, i)
		}
	}
	if len(res.MovedVertices) == 0 {
		return FoldResult{}, &FoldError{Err: ErrEmptyFold, Line: line, Face: -1}
	}

	for _, vi := range res.MovedVertices {
		m.Vertices[vi] = m.Vertices[vi].Sub(n.Scale(2 * dist[vi]))
	}

	top, movedMax := math.MinInt, math.MinInt
	for fi, layer := range m.Layers {
		top = max(top, layer)
		if containsInt(moved, fi) {
			movedMax = max(movedMax, layer)
		}
	}

	serial := m.Folds + 1
	for _, fi := range moved {
		m.Flipped[fi] = !m.Flipped[fi]
		m.Layers[fi] = top + 1 + (movedMax - m.Layers[fi])
		m.LastFold[fi] = serial
	}
	res.MovedFaces = moved

	for ei, e := range m.Edges {
		if math.Abs(dist[e.V1]) <= eps && math.Abs(dist[e.V2]) <= eps {
			m.Edges[ei].Assignment = ft.Assignment()
			res.CreaseEdges = append(res.CreaseEdges, ei)
		}
	}

	m.Folds = serial
	return res, nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
