package core

import (
	"fmt"
	"math"
	"sort"
)

// DefaultPrecision is the number of decimals positions are rounded to.
const DefaultPrecision = 1

// Target is the win condition of a puzzle.
type Target struct {
	Positions int       // distinct occupied cells after folding
	Class     FaceClass // class every topmost face must carry
	Precision int       // decimals used to group faces by position
}

// withDefaults fills unset fields.
func (t Target) withDefaults() Target {
	if t.Class == "" {
		t.Class = ClassDecorative
	}
	if t.Precision <= 0 {
		t.Precision = DefaultPrecision
	}
	return t
}

// ClassOrDefault returns the class the top faces must carry.
func (t Target) ClassOrDefault() FaceClass {
	return t.withDefaults().Class
}

// Stack is the set of faces sharing a position.
type Stack struct {
	Position Point
	Faces    []int // bottom to top
	Top      int
}

// PositionFailure explains why a position does not satisfy the target.
type PositionFailure struct {
	Position Point
	Top      int
	Class    FaceClass
	Reason   string
}

// Report is the outcome of validating a mesh.
type Report struct {
	Solved    bool
	Positions int
	Expected  int
	Stacks    []Stack
	Failures  []PositionFailure
}

// Summary returns a one-line description of the report.
func (r Report) Summary() string {
	if r.Solved {
		return fmt.Sprintf("solved: %d positions", r.Positions)
	}
	return fmt.Sprintf("not solved: %d/%d positions, %d failures", r.Positions, r.Expected, len(r.Failures))
}

type posKey struct{ x, y int64 }

// Validate reports whether the mesh satisfies the target. It never mutates m.
// A nil mesh is reported unsolved with a single "no mesh" failure.
func Validate(m *Mesh, t Target) Report {
	t = t.withDefaults()
	if m == nil {
		return Report{
			Expected: t.Positions,
			Failures: []PositionFailure{{Top: -1, Reason: "no mesh"}},
		}
	}
	scale := math.Pow(10, float64(t.Precision))

	groups := make(map[posKey][]int)
	for fi := range m.Faces {
		c := m.Centroid(fi)
		k := posKey{int64(math.Round(c.X * scale)), int64(math.Round(c.Y * scale))}
		groups[k] = append(groups[k], fi)
	}

	keys := make([]posKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].x < keys[j].x
	})

	report := Report{
		Positions: len(keys),
		Expected:  t.Positions,
		Stacks:    make([]Stack, 0, len(keys)),
	}

	for _, k := range keys {
		faces := groups[k]
		sort.Slice(faces, func(i, j int) bool {
			return above(m, faces[j], faces[i])
		})
		top := faces[len(faces)-1]
		pos := P(float64(k.x)/scale, float64(k.y)/scale)
		report.Stacks = append(report.Stacks, Stack{Position: pos, Faces: faces, Top: top})

		if m.Classes[top] != t.Class {
			report.Failures = append(report.Failures, PositionFailure{
				Position: pos,
				Top:      top,
				Class:    m.Classes[top],
				Reason:   fmt.Sprintf("top face is %s, want %s", m.Classes[top], t.Class),
			})
		}
	}

	if report.Positions != report.Expected {
		report.Failures = append(report.Failures, PositionFailure{
			Top:    -1,
			Reason: "position count",
		})
	}

	report.Solved = len(report.Failures) == 0
	return report
}
