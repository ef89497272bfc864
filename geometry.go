package drawing

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a 2D point in canvas coordinates.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// GG converts the point to gg's float64 representation.
func (p Point) GG() gg.Point { return gg.Pt(float64(p.X), float64(p.Y)) }

// Offset returns p moved by (dx, dy).
func (p Point) Offset(dx, dy float32) Point { return Point{p.X + dx, p.Y + dy} }

// Point3 is used by shadow parameters.
type Point3 struct {
	X, Y, Z float32
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// MakeRectXYWH builds a rect from origin and size.
func MakeRectXYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// MakeRectWH builds a rect at the origin.
func MakeRectWH(w, h float32) Rect { return Rect{Right: w, Bottom: h} }

func (r Rect) Width() float32  { return r.Right - r.Left }
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// IsValid reports whether the rect has positive area.
func (r Rect) IsValid() bool { return r.Left < r.Right && r.Top < r.Bottom }

// IsEmpty is the negation of IsValid.
func (r Rect) IsEmpty() bool { return !r.IsValid() }

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Contains reports whether p lies inside r, right and bottom edges excluded.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersect returns the overlap of r and o, and whether it is non-empty.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if !out.IsValid() {
		return Rect{}, false
	}
	return out, true
}

// Join returns the smallest rect containing both r and o.
// Invalid rects are ignored.
func (r Rect) Join(o Rect) Rect {
	if !o.IsValid() {
		return r
	}
	if !r.IsValid() {
		return o
	}
	return Rect{min(r.Left, o.Left), min(r.Top, o.Top), max(r.Right, o.Right), max(r.Bottom, o.Bottom)}
}

// RoundOut returns the smallest integer rect containing r.
func (r Rect) RoundOut() RectI {
	return RectI{
		Left:   int32(math.Floor(float64(r.Left))),
		Top:    int32(math.Floor(float64(r.Top))),
		Right:  int32(math.Ceil(float64(r.Right))),
		Bottom: int32(math.Ceil(float64(r.Bottom))),
	}
}

// RectI is an integer rectangle.
type RectI struct {
	Left, Top, Right, Bottom int32
}

// MakeRectIXYWH builds an integer rect from origin and size.
func MakeRectIXYWH(x, y, w, h int32) RectI {
	return RectI{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r RectI) Width() int32  { return r.Right - r.Left }
func (r RectI) Height() int32 { return r.Bottom - r.Top }

// IsValid reports whether the rect has positive area.
func (r RectI) IsValid() bool { return r.Left < r.Right && r.Top < r.Bottom }

// Rect converts to a float rect.
func (r RectI) Rect() Rect {
	return Rect{float32(r.Left), float32(r.Top), float32(r.Right), float32(r.Bottom)}
}

// Intersect returns the overlap of r and o, and whether it is non-empty.
func (r RectI) Intersect(o RectI) (RectI, bool) {
	out := RectI{max(r.Left, o.Left), max(r.Top, o.Top), min(r.Right, o.Right), min(r.Bottom, o.Bottom)}
	if !out.IsValid() {
		return RectI{}, false
	}
	return out, true
}

// Join returns the smallest rect containing both r and o.
func (r RectI) Join(o RectI) RectI {
	if !o.IsValid() {
		return r
	}
	if !r.IsValid() {
		return o
	}
	return RectI{min(r.Left, o.Left), min(r.Top, o.Top), max(r.Right, o.Right), max(r.Bottom, o.Bottom)}
}

// CornerPos indexes the radii of a RoundRect.
type CornerPos int

const (
	TopLeftPos CornerPos = iota
	TopRightPos
	BottomRightPos
	BottomLeftPos
	CornerNumber
)

// RoundRect is a rect with an elliptical radius per corner.
type RoundRect struct {
	Rect  Rect
	Radii [CornerNumber]Point
}

// NewRoundRect returns a round rect with the same radii on every corner.
func NewRoundRect(r Rect, rx, ry float32) RoundRect {
	rr := RoundRect{Rect: r}
	for i := range rr.Radii {
		rr.Radii[i] = Point{rx, ry}
	}
	return rr
}

// CornerRadius returns the radii at pos.
func (rr RoundRect) CornerRadius(pos CornerPos) Point { return rr.Radii[pos] }

// IsSimple reports whether all four corners share the same radii.
func (rr RoundRect) IsSimple() bool {
	for _, r := range rr.Radii[1:] {
		if r != rr.Radii[0] {
			return false
		}
	}
	return true
}

// Offset returns rr moved by (dx, dy).
func (rr RoundRect) Offset(dx, dy float32) RoundRect {
	rr.Rect = rr.Rect.Offset(dx, dy)
	return rr
}
