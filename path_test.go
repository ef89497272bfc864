package drawing

import (
	"math"
	"testing"
)

func nearRect(a, b Rect) bool {
	return nearPoint(Pt(a.Left, a.Top), Pt(b.Left, b.Top)) && nearPoint(Pt(a.Right, a.Bottom), Pt(b.Right, b.Bottom))
}

func TestPathBounds(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
		want  Rect
	}{
		{"rect", func(p *Path) { p.AddRect(MakeRectXYWH(1, 2, 3, 4)) }, Rect{1, 2, 4, 6}},
		{"circle", func(p *Path) { p.AddCircle(10, 10, 5) }, Rect{5, 5, 15, 15}},
		{"lines", func(p *Path) {
			p.MoveTo(-2, 0)
			p.LineTo(8, 3)
			p.LineTo(4, -6)
		}, Rect{-2, -6, 8, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			tt.build(p)
			if got := p.Bounds(); !nearRect(got, tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathEmpty(t *testing.T) {
	p := NewPath()
	if p.IsValid() || p.CountVerbs() != 0 {
		t.Errorf("NewPath() valid = %v, verbs = %d", p.IsValid(), p.CountVerbs())
	}
	if got := p.Bounds(); got != (Rect{}) {
		t.Errorf("empty Bounds() = %v, want zero", got)
	}
	if got := p.Length(); got != 0 {
		t.Errorf("empty Length() = %v, want 0", got)
	}
	var nilPath *Path
	if nilPath.IsValid() {
		t.Error("nil path is valid")
	}
}

func TestPathLength(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(3, 4)
	if got := p.Length(); math.Abs(float64(got-5)) > 1e-3 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestPathCloneEqual(t *testing.T) {
	p := NewPath()
	p.AddRoundRect(NewRoundRect(MakeRectXYWH(0, 0, 20, 10), 3, 3))
	p.SetFillType(PathFillEvenOdd)

	c := p.Clone()
	if !p.Equal(c) {
		t.Fatal("Clone() is not Equal")
	}
	c.LineTo(50, 50)
	if p.Equal(c) {
		t.Error("Equal() = true after modifying the clone")
	}
	if p.CountVerbs() == c.CountVerbs() {
		t.Error("modifying the clone changed the original")
	}

	d := p.Clone()
	d.SetFillType(PathFillWinding)
	if p.Equal(d) {
		t.Error("Equal() ignores the fill type")
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.AddRect(MakeRectXYWH(1, 2, 3, 4))
	p.SetFillType(PathFillEvenOdd)

	moved := p.Transform(TranslateMatrix(10, 0))
	if got := moved.Bounds(); got != (Rect{11, 2, 14, 6}) {
		t.Errorf("Transform() bounds = %v, want {11 2 14 6}", got)
	}
	if moved.FillType() != PathFillEvenOdd {
		t.Errorf("Transform() fill type = %v, want %v", moved.FillType(), PathFillEvenOdd)
	}
	if got := p.Bounds(); got != (Rect{1, 2, 4, 6}) {
		t.Errorf("source bounds = %v after Transform, want {1 2 4 6}", got)
	}
}

func TestPathAddPathAndReset(t *testing.T) {
	src := NewPath()
	src.MoveTo(0, 0)
	src.QuadTo(5, 5, 10, 0)
	src.CubicTo(10, 5, 5, 10, 0, 10)
	src.Close()

	p := NewPath()
	p.AddPath(src)
	p.AddPath(nil)
	if p.CountVerbs() != src.CountVerbs() {
		t.Errorf("AddPath() verbs = %d, want %d", p.CountVerbs(), src.CountVerbs())
	}

	p.SetFillType(PathFillInverseWinding)
	p.Reset()
	if p.IsValid() || p.FillType() != PathFillWinding {
		t.Errorf("Reset() valid = %v, fill type = %v", p.IsValid(), p.FillType())
	}
}

func TestPathAddArc(t *testing.T) {
	p := NewPath()
	p.AddArc(MakeRectXYWH(0, 0, 20, 20), 0, 90)
	// One cubic for a quarter turn after the leading move.
	if got := p.CountVerbs(); got != 2 {
		t.Errorf("CountVerbs() = %d, want 2", got)
	}
	b := p.Bounds()
	if b.Left < 9.9 || b.Top < 9.9 || b.Right > 20.1 || b.Bottom > 20.1 {
		t.Errorf("quarter arc bounds = %v, want inside {10 10 20 20}", b)
	}
}
