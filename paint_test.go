package drawing

import "testing"

func TestPaintStyle(t *testing.T) {
	tests := []struct {
		style      PaintStyle
		fill, line bool
	}{
		{PaintNone, false, false},
		{PaintFill, true, false},
		{PaintStroke, false, true},
		{PaintFillStroke, true, true},
	}
	for _, tt := range tests {
		p := Paint{Style: tt.style}
		if p.HasFill() != tt.fill || p.HasStroke() != tt.line {
			t.Errorf("style %v: HasFill() = %v, HasStroke() = %v, want %v, %v",
				tt.style, p.HasFill(), p.HasStroke(), tt.fill, tt.line)
		}
	}
}

func TestPaintFromBrush(t *testing.T) {
	b := Brush{
		Color:     ColorBlue,
		BlendMode: BlendMultiply,
		AntiAlias: true,
		Filter:    Filter{ColorFilter: &ColorFilter{}},
	}
	p := PaintFromBrush(b)
	if p.Style != PaintFill {
		t.Errorf("Style = %v, want %v", p.Style, PaintFill)
	}
	if got := p.Brush(); got != b {
		t.Errorf("Brush() = %+v, want %+v", got, b)
	}
	if !p.HasFilter() {
		t.Error("HasFilter() = false, want true")
	}
}

func TestPaintFromPen(t *testing.T) {
	pen := NewPen()
	pen.Color = ColorGreen
	pen.Width = 3
	pen.Cap = RoundCap
	pen.Join = BevelJoin
	pen.AntiAlias = true

	p := PaintFromPen(pen)
	if p.Style != PaintStroke {
		t.Errorf("Style = %v, want %v", p.Style, PaintStroke)
	}
	if got := p.Pen(); got != pen {
		t.Errorf("Pen() = %+v, want %+v", got, pen)
	}
	if p.HasFilter() {
		t.Error("HasFilter() = true, want false")
	}
}

func TestPaintDefaults(t *testing.T) {
	p := NewPaint()
	if p.Color != ColorBlack || p.BlendMode != BlendSrcOver || p.MiterLimit != DefaultMiterLimit {
		t.Errorf("NewPaint() = %+v", p)
	}
	if pen := NewPen(); pen.Width != 0 || pen.MiterLimit != DefaultMiterLimit {
		t.Errorf("NewPen() = %+v", pen)
	}
	if b := NewBrush(); b.Color != ColorBlack || b.BlendMode != BlendSrcOver {
		t.Errorf("NewBrush() = %+v", b)
	}
}
