package core

import (
	"math"
	"sort"
)

// FaceClass is the decoration tag of a face, fixed at puzzle load.
type FaceClass string

const (
	ClassDecorative FaceClass = "decorative"
	ClassPlain      FaceClass = "plain"
)

// Assignment is an edge assignment in FOLD notation.
type Assignment string

const (
	AssignBoundary   Assignment = "B"
	AssignMountain   Assignment = "M"
	AssignValley     Assignment = "V"
	AssignFlat       Assignment = "F"
	AssignUnassigned Assignment = "U"
)

// Edge joins two vertices. Edges only drive crease rendering.
type Edge struct {
	V1, V2     int
	Assignment Assignment
}

// Mesh is the sheet in its current folded state.
//
// Faces reference vertices by index, so moving a vertex moves every face
// that shares it. Classes, Flipped, Layers and LastFold are parallel to Faces.
type Mesh struct {
	Vertices []Point
	Faces    [][]int
	Classes  []FaceClass
	Flipped  []bool
	Layers   []int // stack height, higher is on top
	LastFold []int // serial of the last fold that moved the face, 0 if never
	Edges    []Edge
	Folds    int // number of folds applied
}

// NewMesh builds an unfolded mesh and validates it.
// When edges is empty they are derived from the faces.
func NewMesh(vertices []Point, faces [][]int, classes []FaceClass, edges []Edge) (*Mesh, error) {
	m := &Mesh{
		Vertices: append([]Point(nil), vertices...),
		Faces:    cloneFaces(faces),
		Classes:  append([]FaceClass(nil), classes...),
		Flipped:  make([]bool, len(faces)),
		Layers:   make([]int, len(faces)),
		LastFold: make([]int, len(faces)),
		Edges:    append([]Edge(nil), edges...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(m.Edges) == 0 {
		m.Edges = DeriveEdges(m.Faces)
	}
	return m, nil
}

// Validate checks the structural invariants of the mesh.
func (m *Mesh) Validate() error {
	n := len(m.Faces)
	if len(m.Classes) != n || len(m.Flipped) != n || len(m.Layers) != n || len(m.LastFold) != n {
		return invalid(CodeLengthMismatch,
			"faces=%d classes=%d flipped=%d layers=%d lastfold=%d",
			n, len(m.Classes), len(m.Flipped), len(m.Layers), len(m.LastFold))
	}
	if n == 0 {
		return invalid(CodeLengthMismatch, "mesh has no faces")
	}

	for fi, face := range m.Faces {
		if len(face) < 3 {
			return invalid(CodeDegenerateFace, "face %d has %d vertices", fi, len(face))
		}
		seen := make(map[int]bool, len(face))
		for _, vi := range face {
			if vi < 0 || vi >= len(m.Vertices) {
				return invalid(CodeIndexOutOfRange, "face %d references vertex %d of %d", fi, vi, len(m.Vertices))
			}
			if seen[vi] {
				return invalid(CodeDegenerateFace, "face %d repeats vertex %d", fi, vi)
			}
			seen[vi] = true
		}
		if math.Abs(m.FaceArea(fi)) < 1e-9 {
			return invalid(CodeDegenerateFace, "face %d has zero area", fi)
		}
		if m.Classes[fi] == "" {
			return invalid(CodeEmptyClass, "face %d has no class", fi)
		}
	}

	for ei, e := range m.Edges {
		if e.V1 < 0 || e.V1 >= len(m.Vertices) || e.V2 < 0 || e.V2 >= len(m.Vertices) || e.V1 == e.V2 {
			return invalid(CodeBadEdge, "edge %d (%d,%d) is invalid", ei, e.V1, e.V2)
		}
	}
	return nil
}

// Clone returns a deep copy sharing no storage with m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]Point(nil), m.Vertices...),
		Faces:    cloneFaces(m.Faces),
		Classes:  append([]FaceClass(nil), m.Classes...),
		Flipped:  append([]bool(nil), m.Flipped...),
		Layers:   append([]int(nil), m.Layers...),
		LastFold: append([]int(nil), m.LastFold...),
		Edges:    append([]Edge(nil), m.Edges...),
		Folds:    m.Folds,
	}
}

func cloneFaces(faces [][]int) [][]int {
	out := make([][]int, len(faces))
	for i, f := range faces {
		out[i] = append([]int(nil), f...)
	}
	return out
}

// Equal reports deep equality, comparing coordinates within eps.
func (m *Mesh) Equal(o *Mesh, eps float64) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.Vertices) != len(o.Vertices) || len(m.Faces) != len(o.Faces) ||
		len(m.Edges) != len(o.Edges) || m.Folds != o.Folds {
		return false
	}
	for i := range m.Vertices {
		if !m.Vertices[i].Eq(o.Vertices[i], eps) {
			return false
		}
	}
	for i := range m.Faces {
		if len(m.Faces[i]) != len(o.Faces[i]) {
			return false
		}
		for j := range m.Faces[i] {
			if m.Faces[i][j] != o.Faces[i][j] {
				return false
			}
		}
		if m.Classes[i] != o.Classes[i] || m.Flipped[i] != o.Flipped[i] ||
			m.Layers[i] != o.Layers[i] || m.LastFold[i] != o.LastFold[i] {
			return false
		}
	}
	for i := range m.Edges {
		if m.Edges[i] != o.Edges[i] {
			return false
		}
	}
	return true
}

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int {
	return len(m.Faces)
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

// FacePoints returns the current coordinates of face i in order.
func (m *Mesh) FacePoints(i int) []Point {
	pts := make([]Point, len(m.Faces[i]))
	for j, vi := range m.Faces[i] {
		pts[j] = m.Vertices[vi]
	}
	return pts
}

// Centroid returns the vertex average of face i.
func (m *Mesh) Centroid(i int) Point {
	var c Point
	for _, vi := range m.Faces[i] {
		c = c.Add(m.Vertices[vi])
	}
	return c.Scale(1 / float64(len(m.Faces[i])))
}

// FaceArea returns the signed area of face i.
func (m *Mesh) FaceArea(i int) float64 {
	return polygonArea(m.FacePoints(i))
}

// ContainsPoint reports whether p lies inside face i.
func (m *Mesh) ContainsPoint(i int, p Point) bool {
	return pointInPolygon(p, m.FacePoints(i))
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
	}
	return b
}

// TopFaceAt returns the topmost face containing p, or -1.
func (m *Mesh) TopFaceAt(p Point) int {
	top := -1
	for i := range m.Faces {
		if !m.ContainsPoint(i, p) {
			continue
		}
		if top < 0 || above(m, i, top) {
			top = i
		}
	}
	return top
}

// above reports whether face a is stacked over face b.
// Higher layer wins; ties go to the most recently folded face, then the higher index.
func above(m *Mesh, a, b int) bool {
	if m.Layers[a] != m.Layers[b] {
		return m.Layers[a] > m.Layers[b]
	}
	if m.LastFold[a] != m.LastFold[b] {
		return m.LastFold[a] > m.LastFold[b]
	}
	return a > b
}

// DeriveEdges returns one edge per distinct vertex pair on face boundaries.
// Edges used by a single face are boundary edges, shared ones are flat.
func DeriveEdges(faces [][]int) []Edge {
	type key struct{ a, b int }
	count := make(map[key]int)
	var order []key

	for _, face := range faces {
		for j := range face {
			a, b := face[j], face[(j+1)%len(face)]
			if a > b {
				a, b = b, a
			}
			k := key{a, b}
			if count[k] == 0 {
				order = append(order, k)
			}
			count[k]++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].a != order[j].a {
			return order[i].a < order[j].a
		}
		return order[i].b < order[j].b
	})

	edges := make([]Edge, len(order))
	for i, k := range order {
		assign := AssignFlat
		if count[k] == 1 {
			assign = AssignBoundary
		}
		edges[i] = Edge{V1: k.a, V2: k.b, Assignment: assign}
	}
	return edges
}
