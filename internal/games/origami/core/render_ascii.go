package core

import (
	"fmt"
	"strings"
)

// RenderASCII creates a text dump of a mesh.
// This is used for debugging, testing (golden outputs) and the headless CLI.
//
// Format:
//
//	Folds: N | Faces: F | Vertices: V
//	F<idx> <class> <front|back> layer=<n> at (x, y)
func RenderASCII(m *Mesh) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Folds: %d | Faces: %d | Vertices: %d\n",
		m.Folds, m.NumFaces(), m.NumVertices()))
	sb.WriteString(strings.Repeat("-", 40) + "\n")

	for i := range m.Faces {
		side := "front"
		if m.Flipped[i] {
			side = "back"
		}
		sb.WriteString(fmt.Sprintf("F%02d %-10s %-5s layer=%d at %s\n",
			i, m.Classes[i], side, m.Layers[i], m.Centroid(i)))
	}
	return sb.String()
}

// RenderReport formats a validation report, one stack per line.
func RenderReport(r Report) string {
	var sb strings.Builder
	sb.WriteString(r.Summary() + "\n")
	for _, st := range r.Stacks {
		sb.WriteString(fmt.Sprintf("  %s top=F%02d stack=%v\n", st.Position, st.Top, st.Faces))
	}
	for _, f := range r.Failures {
		if f.Top < 0 {
			sb.WriteString(fmt.Sprintf("  ! %s: have %d, want %d\n", f.Reason, r.Positions, r.Expected))
			continue
		}
		sb.WriteString(fmt.Sprintf("  ! %s: %s\n", f.Position, f.Reason))
	}
	return sb.String()
}
