package drawing

import (
	"math"

	"github.com/gogpu/gg"
)

// Matrix indices, row-major:
//
//	| ScaleX SkewX  TransX |
//	| SkewY  ScaleY TransY |
//	| Persp0 Persp1 Persp2 |
const (
	ScaleX = iota
	SkewX
	TransX
	SkewY
	ScaleY
	TransY
	Persp0
	Persp1
	Persp2
	MatrixSize
)

// Matrix is a 3x3 transformation matrix.
// The zero value is not the identity; use IdentityMatrix.
type Matrix [MatrixSize]float32

// IdentityMatrix returns the identity transformation.
func IdentityMatrix() Matrix {
	return Matrix{ScaleX: 1, ScaleY: 1, Persp2: 1}
}

// TranslateMatrix returns a translation by (dx, dy).
func TranslateMatrix(dx, dy float32) Matrix {
	m := IdentityMatrix()
	m[TransX], m[TransY] = dx, dy
	return m
}

// ScaleMatrix returns a scale by (sx, sy) about the origin.
func ScaleMatrix(sx, sy float32) Matrix {
	m := IdentityMatrix()
	m[ScaleX], m[ScaleY] = sx, sy
	return m
}

// RotateMatrix returns a rotation by deg degrees about (px, py).
func RotateMatrix(deg, px, py float32) Matrix {
	rad := float64(deg) * math.Pi / 180
	sin, cos := float32(math.Sin(rad)), float32(math.Cos(rad))
	m := IdentityMatrix()
	m[ScaleX], m[SkewX] = cos, -sin
	m[SkewY], m[ScaleY] = sin, cos
	m[TransX] = sin*py + (1-cos)*px
	m[TransY] = -sin*px + (1-cos)*py
	return m
}

// ShearMatrix returns a skew by (sx, sy).
func ShearMatrix(sx, sy float32) Matrix {
	m := IdentityMatrix()
	m[SkewX], m[SkewY] = sx, sy
	return m
}

// Concat returns m * o: o is applied first, then m.
func (m Matrix) Concat(o Matrix) Matrix {
	var out Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[row*3+k] * o[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool { return m == IdentityMatrix() }

// HasPerspective reports whether the last row is not (0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m[Persp0] != 0 || m[Persp1] != 0 || m[Persp2] != 1
}

// MapPoint transforms p, dividing by w when m has perspective.
func (m Matrix) MapPoint(p Point) Point {
	x := m[ScaleX]*p.X + m[SkewX]*p.Y + m[TransX]
	y := m[SkewY]*p.X + m[ScaleY]*p.Y + m[TransY]
	if m.HasPerspective() {
		w := m[Persp0]*p.X + m[Persp1]*p.Y + m[Persp2]
		if w != 0 {
			x, y = x/w, y/w
		}
	}
	return Point{x, y}
}

// MapRect returns the bounds of r after transformation.
func (m Matrix) MapRect(r Rect) Rect {
	corners := [4]Point{
		m.MapPoint(Point{r.Left, r.Top}),
		m.MapPoint(Point{r.Right, r.Top}),
		m.MapPoint(Point{r.Right, r.Bottom}),
		m.MapPoint(Point{r.Left, r.Bottom}),
	}
	out := Rect{corners[0].X, corners[0].Y, corners[0].X, corners[0].Y}
	for _, c := range corners[1:] {
		out.Left, out.Right = min(out.Left, c.X), max(out.Right, c.X)
		out.Top, out.Bottom = min(out.Top, c.Y), max(out.Bottom, c.Y)
	}
	return out
}

// Invert returns the inverse of the affine part and whether it exists.
// Perspective is dropped.
func (m Matrix) Invert() (Matrix, bool) {
	g := m.GG()
	if math.Abs(g.A*g.E-g.B*g.D) < 1e-12 {
		return IdentityMatrix(), false
	}
	return MatrixFromGG(g.Invert()), true
}

// GG converts the affine part of m to a gg.Matrix.
func (m Matrix) GG() gg.Matrix {
	return gg.Matrix{
		A: float64(m[ScaleX]), B: float64(m[SkewX]), C: float64(m[TransX]),
		D: float64(m[SkewY]), E: float64(m[ScaleY]), F: float64(m[TransY]),
	}
}

// MatrixFromGG converts a gg.Matrix.
func MatrixFromGG(g gg.Matrix) Matrix {
	return Matrix{
		ScaleX: float32(g.A), SkewX: float32(g.B), TransX: float32(g.C),
		SkewY: float32(g.D), ScaleY: float32(g.E), TransY: float32(g.F),
		Persp2: 1,
	}
}
