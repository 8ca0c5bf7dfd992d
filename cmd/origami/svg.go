package main

import (
	"fmt"
	"sort"
	"strings"

	origami "github.com/vovakirdan/tui-origami/internal/games/origami/core"
)

const svgScale = 100 // pixels per sheet unit

// foldedSVG draws every face at its unfolded coordinates, placed by its
// affine transform, bottom layer first. The y axis is flipped so the sheet
// reads the same way as in the terminal.
func foldedSVG(session *origami.Session) (string, error) {
	initial, err := session.Initial()
	if err != nil {
		return "", err
	}
	current, err := session.Mesh()
	if err != nil {
		return "", err
	}
	mats, err := session.FaceTransforms()
	if err != nil {
		return "", err
	}

	b := current.Bounds().Union(initial.Bounds())
	w := b.Width() * svgScale
	h := b.Height() * svgScale

	order := make([]int, current.NumFaces())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return current.Layers[order[i]] < current.Layers[order[j]]
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", w, h, w, h)
	sb.WriteString("  <style>\n")
	sb.WriteString("    .decorative { fill: #e07a5f; }\n")
	sb.WriteString("    .plain { fill: #f4f1de; }\n")
	sb.WriteString("    .back { fill-opacity: 0.75; }\n")
	sb.WriteString("    polygon { stroke: #3d405b; stroke-width: 0.01; }\n")
	sb.WriteString("  </style>\n")
	fmt.Fprintf(&sb, "  <g transform=\"matrix(%d 0 0 %d %g %g)\">\n", svgScale, -svgScale, -b.Min.X*svgScale, b.Max.Y*svgScale)

	for _, f := range order {
		pts := initial.FacePoints(f)
		coords := make([]string, len(pts))
		for i, p := range pts {
			coords[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		side := "front"
		if current.Flipped[f] {
			side = "back"
		}
		fmt.Fprintf(&sb, "    <polygon id=\"F%02d\" class=\"%s %s\" points=\"%s\" transform=\"%s\"/>\n",
			f, current.Classes[f], side, strings.Join(coords, " "), mats[f].SVG())
	}

	sb.WriteString("  </g>\n</svg>\n")
	return sb.String(), nil
}
