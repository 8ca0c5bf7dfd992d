package core

import (
	"fmt"
	"math"
)

// AffineEpsilon is the determinant magnitude below which a source triangle
// is treated as collinear.
const AffineEpsilon = 1e-6

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// Det returns the determinant of the linear part. Negative means mirrored.
func (m Matrix) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// SVG formats the matrix as an SVG transform attribute.
// SVG orders the coefficients column-major: matrix(a d b e c f) in our naming.
func (m Matrix) SVG() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", m.A, m.D, m.B, m.E, m.C, m.F)
}

// SolveAffine returns the affine map taking src[i] to dst[i].
//
// Both rows are solved with Cramer's rule on
//
//	| sx0 sy0 1 |   | a |   | dx0 |
//	| sx1 sy1 1 | * | b | = | dx1 |
//	| sx2 sy2 1 |   | c |   | dx2 |
//
// A collinear source yields Identity() and ErrDegenerateAffineMapping; the
// matrix is still safe to use.
func SolveAffine(src, dst [3]Point) (Matrix, error) {
	return SolveAffineWithin(src, dst, AffineEpsilon)
}

// SolveAffineWithin is SolveAffine with a caller-chosen degeneracy threshold.
func SolveAffineWithin(src, dst [3]Point, tol float64) (Matrix, error) {
	if tol <= 0 {
		tol = AffineEpsilon
	}
	det := det3(src, [3]float64{1, 1, 1})
	if math.Abs(det) < tol {
		return Identity(), ErrDegenerateAffineMapping
	}

	xs := [3]float64{dst[0].X, dst[1].X, dst[2].X}
	ys := [3]float64{dst[0].Y, dst[1].Y, dst[2].Y}

	a, b, c := cramer(src, xs, det)
	d, e, f := cramer(src, ys, det)
	return Matrix{A: a, B: b, C: c, D: d, E: e, F: f}, nil
}

// det3 is the determinant of the matrix whose rows are (x_i, y_i, w_i).
func det3(p [3]Point, w [3]float64) float64 {
	return p[0].X*(p[1].Y*w[2]-p[2].Y*w[1]) -
		p[0].Y*(p[1].X*w[2]-p[2].X*w[1]) +
		w[0]*(p[1].X*p[2].Y-p[2].X*p[1].Y)
}

// cramer solves one row of the map for right-hand side r.
func cramer(src [3]Point, r [3]float64, det float64) (float64, float64, float64) {
	var colX, colY [3]Point
	for i := range src {
		colX[i] = P(r[i], src[i].Y)
		colY[i] = P(src[i].X, r[i])
	}
	u := det3(colX, [3]float64{1, 1, 1}) / det
	v := det3(colY, [3]float64{1, 1, 1}) / det
	w := det3(src, r) / det
	return u, v, w
}

// FaceTransform maps face i from its position in initial to its position in
// current, using the first three vertices of the face.
func FaceTransform(initial, current *Mesh, face int) (Matrix, error) {
	return faceTransform(initial, current, face, AffineEpsilon)
}

func faceTransform(initial, current *Mesh, face int, tol float64) (Matrix, error) {
	if initial == nil || current == nil {
		return Identity(), ErrMissingCollaborator
	}
	if face < 0 || face >= len(initial.Faces) || face >= len(current.Faces) {
		return Identity(), fmt.Errorf("face %d: %w", face, ErrFaceOutOfRange)
	}

	var src, dst [3]Point
	for i := 0; i < 3; i++ {
		src[i] = initial.Vertices[initial.Faces[face][i]]
		dst[i] = current.Vertices[current.Faces[face][i]]
	}
	return SolveAffineWithin(src, dst, tol)
}
