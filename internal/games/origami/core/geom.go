// Package core provides the fold engine for the origami puzzle game.
// This package is UI-agnostic and deterministic.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a 2D position in sheet coordinates.
type Point struct {
	X, Y float64
}

// P is shorthand for Point{X: x, Y: y}.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale returns p * k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dot returns the dot product.
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

// Perp returns p rotated by +90 degrees.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Len returns the Euclidean length.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the direction of p.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Eq reports whether p and o are within eps on both axes.
func (p Point) Eq(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

// String returns "(x, y)" with two decimals.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// FoldType is the crease style of a fold.
// It has no effect on geometry; it is kept for crease rendering.
type FoldType uint8

const (
	FoldValley FoldType = iota
	FoldMountain
)

// String returns the string representation of a fold type.
func (f FoldType) String() string {
	switch f {
	case FoldValley:
		return "valley"
	case FoldMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// Assignment returns the edge assignment a crease of this type receives.
func (f FoldType) Assignment() Assignment {
	if f == FoldMountain {
		return AssignMountain
	}
	return AssignValley
}

// Toggle returns the other fold type.
func (f FoldType) Toggle() FoldType {
	if f == FoldMountain {
		return FoldValley
	}
	return FoldMountain
}

// ParseFoldType parses "valley", "v", "mountain" or "m" (case-insensitive).
// An empty string means valley.
func ParseFoldType(s string) (FoldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "valley", "v":
		return FoldValley, nil
	case "mountain", "m":
		return FoldMountain, nil
	default:
		return FoldValley, fmt.Errorf("unknown fold type %q", s)
	}
}

// CreaseLine is the line a fold reflects geometry across.
type CreaseLine struct {
	P1, P2 Point
}

// Line is shorthand for a crease through (x1, y1) and (x2, y2).
func Line(x1, y1, x2, y2 float64) CreaseLine {
	return CreaseLine{P1: P(x1, y1), P2: P(x2, y2)}
}

// IsDegenerate reports whether the line has (numerically) zero length.
func (l CreaseLine) IsDegenerate() bool {
	return l.P2.Sub(l.P1).Len() < 1e-12
}

// Normal returns the unit normal n = normalize(perp(p2 - p1)) and offset d = p1·n.
func (l CreaseLine) Normal() (n Point, d float64) {
	n = l.P2.Sub(l.P1).Perp().Normalize()
	return n, l.P1.Dot(n)
}

// String returns "x1,y1,x2,y2".
func (l CreaseLine) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", l.P1.X, l.P1.Y, l.P2.X, l.P2.Y)
}

// ParseCrease parses "x1,y1,x2,y2" with an optional ":valley" or ":mountain" suffix.
func ParseCrease(s string) (CreaseLine, FoldType, error) {
	coords, typ, _ := strings.Cut(strings.TrimSpace(s), ":")
	ft, err := ParseFoldType(typ)
	if err != nil {
		return CreaseLine{}, ft, err
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 4 {
		return CreaseLine{}, ft, fmt.Errorf("crease %q: want x1,y1,x2,y2", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return CreaseLine{}, ft, fmt.Errorf("crease %q: %w", s, err)
		}
		v[i] = f
	}
	return Line(v[0], v[1], v[2], v[3]), ft, nil
}

// SignedDistance returns v·n − d for the line's unit normal n.
// Positive values are on the side that moves during a fold.
func SignedDistance(p Point, l CreaseLine) float64 {
	n, d := l.Normal()
	return p.Dot(n) - d
}

// Reflect mirrors p across the line.
func Reflect(p Point, l CreaseLine) Point {
	n, d := l.Normal()
	dist := p.Dot(n) - d
	return p.Sub(n.Scale(2 * dist))
}

// Bounds is an axis-aligned bounding box in sheet coordinates.
type Bounds struct {
	Min, Max Point
}

// Width returns the box width.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the box height.
func (b Bounds) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Union returns the smallest box containing both boxes.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: P(math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)),
		Max: P(math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)),
	}
}

// polygonArea returns the signed shoelace area.
func polygonArea(pts []Point) float64 {
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// pointInPolygon tests containment with the even-odd rule.
func pointInPolygon(p Point, pts []Point) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
