package drawing

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Rect
		want   Rect
		wantOK bool
	}{
		{"overlap", MakeRectXYWH(0, 0, 10, 10), MakeRectXYWH(5, 5, 10, 10), Rect{5, 5, 10, 10}, true},
		{"contained", MakeRectXYWH(0, 0, 10, 10), MakeRectXYWH(2, 2, 2, 2), Rect{2, 2, 4, 4}, true},
		{"touching", MakeRectXYWH(0, 0, 10, 10), MakeRectXYWH(10, 0, 5, 5), Rect{}, false},
		{"disjoint", MakeRectXYWH(0, 0, 1, 1), MakeRectXYWH(5, 5, 1, 1), Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Intersect() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRectJoin(t *testing.T) {
	a := MakeRectXYWH(0, 0, 10, 10)
	if got := a.Join(MakeRectXYWH(5, -5, 10, 10)); got != (Rect{0, -5, 15, 10}) {
		t.Errorf("Join() = %v, want {0 -5 15 10}", got)
	}
	if got := a.Join(Rect{}); got != a {
		t.Errorf("Join(empty) = %v, want %v", got, a)
	}
	if got := (Rect{}).Join(a); got != a {
		t.Errorf("empty.Join() = %v, want %v", got, a)
	}
}

func TestRectRoundOut(t *testing.T) {
	got := Rect{0.5, 1.2, 3.1, 4}.RoundOut()
	if got != (RectI{0, 1, 4, 4}) {
		t.Errorf("RoundOut() = %v, want {0 1 4 4}", got)
	}
	if got := (Rect{-0.5, -1.5, 0, 0}).RoundOut(); got != (RectI{-1, -2, 0, 0}) {
		t.Errorf("RoundOut() = %v, want {-1 -2 0 0}", got)
	}
}

func TestRectContains(t *testing.T) {
	r := MakeRectXYWH(0, 0, 10, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(9.9, 9.9), true},
		{Pt(10, 5), false},
		{Pt(5, 10), false},
		{Pt(-1, 5), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectI(t *testing.T) {
	a := MakeRectIXYWH(0, 0, 10, 10)
	b := MakeRectIXYWH(5, 5, 10, 10)
	if got, ok := a.Intersect(b); !ok || got != (RectI{5, 5, 10, 10}) {
		t.Errorf("Intersect() = %v, %v, want {5 5 10 10}, true", got, ok)
	}
	if got := a.Join(b); got != (RectI{0, 0, 15, 15}) {
		t.Errorf("Join() = %v, want {0 0 15 15}", got)
	}
	if got := b.Rect(); got != (Rect{5, 5, 15, 15}) {
		t.Errorf("Rect() = %v, want {5 5 15 15}", got)
	}
	if (RectI{3, 3, 3, 8}).IsValid() {
		t.Error("zero-width RectI is valid")
	}
}

func TestRoundRect(t *testing.T) {
	rr := NewRoundRect(MakeRectXYWH(0, 0, 20, 10), 4, 2)
	if !rr.IsSimple() {
		t.Error("NewRoundRect() is not simple")
	}
	if got := rr.CornerRadius(BottomRightPos); got != Pt(4, 2) {
		t.Errorf("CornerRadius() = %v, want {4 2}", got)
	}
	rr.Radii[TopLeftPos] = Pt(0, 0)
	if rr.IsSimple() {
		t.Error("round rect with one square corner is simple")
	}
	moved := rr.Offset(5, 5)
	if moved.Rect != (Rect{5, 5, 25, 15}) {
		t.Errorf("Offset() rect = %v, want {5 5 25 15}", moved.Rect)
	}
}
