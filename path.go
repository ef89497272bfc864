package drawing

import (
	"math"

	"github.com/gogpu/gg"
)

// kappa is the cubic control distance for a quarter ellipse.
const kappa = 0.5522847498

// Path is a vector outline built from gg path elements plus a fill rule.
type Path struct {
	p        *gg.Path
	fillType PathFillType
}

// NewPath returns an empty winding path.
func NewPath() *Path {
	return &Path{p: gg.NewPath()}
}

// PathFromGG wraps a copy of p.
func PathFromGG(p *gg.Path) *Path {
	if p == nil {
		return NewPath()
	}
	return &Path{p: p.Clone()}
}

func (p *Path) MoveTo(x, y float32) { p.p.MoveTo(float64(x), float64(y)) }
func (p *Path) LineTo(x, y float32) { p.p.LineTo(float64(x), float64(y)) }

func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.p.QuadraticTo(float64(cx), float64(cy), float64(x), float64(y))
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.p.CubicTo(float64(c1x), float64(c1y), float64(c2x), float64(c2y), float64(x), float64(y))
}

func (p *Path) Close() { p.p.Close() }

// AddRect appends r as a closed clockwise contour.
func (p *Path) AddRect(r Rect) {
	p.p.Rectangle(float64(r.Left), float64(r.Top), float64(r.Width()), float64(r.Height()))
}

// AddOval appends the ellipse inscribed in r.
func (p *Path) AddOval(r Rect) {
	cx, cy := float64(r.Left+r.Right)/2, float64(r.Top+r.Bottom)/2
	p.p.Ellipse(cx, cy, float64(r.Width())/2, float64(r.Height())/2)
}

// AddCircle appends a circle.
func (p *Path) AddCircle(x, y, radius float32) {
	p.p.Circle(float64(x), float64(y), float64(radius))
}

// AddRoundRect appends rr, honouring each corner's radii.
func (p *Path) AddRoundRect(rr RoundRect) {
	r := rr.Rect
	if rr.IsSimple() && rr.Radii[0].X == rr.Radii[0].Y {
		p.p.RoundedRectangle(float64(r.Left), float64(r.Top), float64(r.Width()), float64(r.Height()),
			float64(rr.Radii[0].X))
		return
	}
	tl, tr := rr.Radii[TopLeftPos], rr.Radii[TopRightPos]
	br, bl := rr.Radii[BottomRightPos], rr.Radii[BottomLeftPos]
	k := float32(kappa)

	p.MoveTo(r.Left+tl.X, r.Top)
	p.LineTo(r.Right-tr.X, r.Top)
	p.CubicTo(r.Right-tr.X+tr.X*k, r.Top, r.Right, r.Top+tr.Y-tr.Y*k, r.Right, r.Top+tr.Y)
	p.LineTo(r.Right, r.Bottom-br.Y)
	p.CubicTo(r.Right, r.Bottom-br.Y+br.Y*k, r.Right-br.X+br.X*k, r.Bottom, r.Right-br.X, r.Bottom)
	p.LineTo(r.Left+bl.X, r.Bottom)
	p.CubicTo(r.Left+bl.X-bl.X*k, r.Bottom, r.Left, r.Bottom-bl.Y+bl.Y*k, r.Left, r.Bottom-bl.Y)
	p.LineTo(r.Left, r.Top+tl.Y)
	p.CubicTo(r.Left, r.Top+tl.Y-tl.Y*k, r.Left+tl.X-tl.X*k, r.Top, r.Left+tl.X, r.Top)
	p.Close()
}

// AddArc appends an elliptical arc inscribed in oval. Angles are degrees,
// clockwise from the positive x axis.
func (p *Path) AddArc(oval Rect, startAngle, sweepAngle float32) {
	cx, cy := (oval.Left+oval.Right)/2, (oval.Top+oval.Bottom)/2
	rx, ry := oval.Width()/2, oval.Height()/2
	const steps = 4
	start := float64(startAngle) * math.Pi / 180
	sweep := float64(sweepAngle) * math.Pi / 180
	segs := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if segs < 1 {
		segs = 1
	}
	if segs > steps {
		segs = steps
	}
	at := func(a float64) Point {
		return Point{cx + rx*float32(math.Cos(a)), cy + ry*float32(math.Sin(a))}
	}
	first := at(start)
	if p.p.HasCurrentPoint() {
		p.LineTo(first.X, first.Y)
	} else {
		p.MoveTo(first.X, first.Y)
	}
	step := sweep / float64(segs)
	alpha := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < segs; i++ {
		a0 := start + float64(i)*step
		a1 := a0 + step
		c0 := Point{cx + rx*float32(math.Cos(a0)-alpha*math.Sin(a0)), cy + ry*float32(math.Sin(a0)+alpha*math.Cos(a0))}
		c1 := Point{cx + rx*float32(math.Cos(a1)+alpha*math.Sin(a1)), cy + ry*float32(math.Sin(a1)-alpha*math.Cos(a1))}
		end := at(a1)
		p.CubicTo(c0.X, c0.Y, c1.X, c1.Y, end.X, end.Y)
	}
}

// AddPath appends a copy of every element of src.
func (p *Path) AddPath(src *Path) {
	if src == nil {
		return
	}
	for _, e := range src.Elements() {
		switch e := e.(type) {
		case gg.MoveTo:
			p.p.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			p.p.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			p.p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			p.p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			p.p.Close()
		}
	}
}

func (p *Path) SetFillType(ft PathFillType) { p.fillType = ft }
func (p *Path) FillType() PathFillType      { return p.fillType }

// Elements returns the gg elements of the path.
func (p *Path) Elements() []gg.PathElement { return p.p.Elements() }

// CountVerbs returns the number of elements.
func (p *Path) CountVerbs() int { return len(p.p.Elements()) }

// IsValid reports whether the path has any element.
func (p *Path) IsValid() bool { return p != nil && len(p.p.Elements()) > 0 }

// Bounds returns the control-point bounds, or an empty rect.
func (p *Path) Bounds() Rect {
	if !p.IsValid() {
		return Rect{}
	}
	b := p.p.BoundingBox()
	return Rect{float32(b.Min.X), float32(b.Min.Y), float32(b.Max.X), float32(b.Max.Y)}
}

// Length returns the total contour length.
func (p *Path) Length() float32 {
	if !p.IsValid() {
		return 0
	}
	return float32(p.p.Length(0.1))
}

// Transform returns a transformed copy. Perspective is ignored.
func (p *Path) Transform(m Matrix) *Path {
	return &Path{p: p.p.Transform(m.GG()), fillType: p.fillType}
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	return &Path{p: p.p.Clone(), fillType: p.fillType}
}

// Reset removes every element.
func (p *Path) Reset() {
	p.p.Clear()
	p.fillType = PathFillWinding
}

// GG returns the underlying gg path. Callers must not modify it.
func (p *Path) GG() *gg.Path { return p.p }

// Equal reports whether both paths have the same elements and fill type.
func (p *Path) Equal(o *Path) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.fillType != o.fillType {
		return false
	}
	a, b := p.Elements(), o.Elements()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
