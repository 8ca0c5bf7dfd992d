package core

// FoldStep is one fold of a scripted sequence.
type FoldStep struct {
	Line CreaseLine
	Type FoldType
}

// Puzzle is a validated puzzle definition: the flat sheet plus its goal.
type Puzzle struct {
	ID       string
	Name     string
	Vertices []Point
	Faces    [][]int
	Classes  []FaceClass
	Edges    []Edge
	Target   Target
	Solution []FoldStep // optional reference solution
	Metadata map[string]string
}

// Mesh builds the unfolded mesh for the puzzle.
func (p *Puzzle) Mesh() (*Mesh, error) {
	if p == nil {
		return nil, ErrMissingCollaborator
	}
	return NewMesh(p.Vertices, p.Faces, p.Classes, p.Edges)
}

// Validate checks the definition once, at load time.
func (p *Puzzle) Validate() error {
	m, err := p.Mesh()
	if err != nil {
		return err
	}

	t := p.Target.withDefaults()
	if t.Positions <= 0 || t.Positions > m.NumFaces() {
		return invalid(CodeBadTarget, "target positions %d outside 1..%d", t.Positions, m.NumFaces())
	}
	for _, c := range m.Classes {
		if c == t.Class {
			return nil
		}
	}
	return invalid(CodeBadTarget, "no face has target class %q", t.Class)
}

// FaceCount returns the number of faces in the definition.
func (p *Puzzle) FaceCount() int {
	return len(p.Faces)
}

// GridPuzzle builds a cols x rows sheet of square cells of the given size.
// Vertex (c, r) has index r*(cols+1)+c; face (c, r) has index r*cols+c and
// winds counter-clockwise.
func GridPuzzle(cols, rows int, cell float64, classOf func(col, row int) FaceClass) *Puzzle {
	p := &Puzzle{}
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			p.Vertices = append(p.Vertices, P(float64(c)*cell, float64(r)*cell))
		}
	}

	vid := func(c, r int) int { return r*(cols+1) + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p.Faces = append(p.Faces, []int{vid(c, r), vid(c+1, r), vid(c+1, r+1), vid(c, r+1)})
			class := ClassPlain
			if classOf != nil {
				class = classOf(c, r)
			}
			p.Classes = append(p.Classes, class)
		}
	}
	return p
}
