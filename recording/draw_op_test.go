package recording

import (
	"bytes"
	"image/png"
	"slices"
	"testing"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/canvastest"
)

// rectObject is an ImageObject that fills the rect it is played into.
type rectObject struct{}

func (rectObject) Playback(canvas drawing.Canvas, rect drawing.Rect, _ drawing.SamplingOptions) {
	canvas.DrawRect(rect)
}

func testPath() *drawing.Path {
	p := drawing.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(20, 0)
	p.QuadTo(30, 10, 20, 20)
	p.Close()
	return p
}

func encodedPNG(t *testing.T) *drawing.Data {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testNRGBA(4, 4)); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return drawing.NewData(buf.Bytes())
}

// TestOpRoundTrip checks that every op plays back the same calls before
// and after it goes through the arena.
func TestOpRoundTrip(t *testing.T) {
	paint := fillPaint(drawing.ColorGreen)
	stroke := drawing.PaintFromPen(drawing.Pen{Color: drawing.ColorBlue, Width: 3, MiterLimit: 4})
	img := testImage(6, 6)
	rect := drawing.MakeRectXYWH(5, 5, 40, 30)
	rrect := drawing.NewRoundRect(rect, 4, 6)
	brush := drawing.NewBrush()
	bounds := drawing.MakeRectWH(50, 50)
	sampling := drawing.SamplingOptions{Filter: drawing.FilterLinear, Mipmap: drawing.MipmapLinear}
	info := drawing.AdaptiveImageInfo{FitNum: drawing.ImageFitContain, Scale: 1, Width: 6, Height: 6}

	tests := []struct {
		name string
		op   DrawOpItem
		want []string
	}{
		{"Point", NewDrawPointOpItem(drawing.Pt(1, 2), paint), []string{"DrawPoint({1 2})"}},
		{"Points", NewDrawPointsOpItem(drawing.PointModeLines, []drawing.Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, paint), nil},
		{"Line", NewDrawLineOpItem(drawing.Pt(0, 0), drawing.Pt(9, 9), stroke), []string{"DrawLine({0 0}, {9 9})"}},
		{"Rect", NewDrawRectOpItem(rect, paint), []string{"DrawRect({5 5 45 35})"}},
		{"RoundRect", NewDrawRoundRectOpItem(rrect, paint), nil},
		{"NestedRoundRect", NewDrawNestedRoundRectOpItem(rrect, drawing.NewRoundRect(drawing.MakeRectXYWH(9, 9, 32, 22), 2, 2), paint), nil},
		{"Arc", NewDrawArcOpItem(rect, 30, 120, stroke), []string{"DrawArc({5 5 45 35}, 30, 120)"}},
		{"Pie", NewDrawPieOpItem(rect, 0, 90, paint), []string{"DrawPie({5 5 45 35}, 0, 90)"}},
		{"Oval", NewDrawOvalOpItem(rect, paint), []string{"DrawOval({5 5 45 35})"}},
		{"Circle", NewDrawCircleOpItem(drawing.Pt(20, 20), 8, paint), []string{"DrawCircle({20 20}, 8)"}},
		{"Path", NewDrawPathOpItem(testPath(), paint), []string{"DrawPath(4)"}},
		{"Background", NewDrawBackgroundOpItem(drawing.Brush{Color: drawing.ColorRed}), []string{"DrawBackground(0xFFFF0000)"}},
		{"Shadow", NewDrawShadowOpItem(testPath(), drawing.Point3{Z: 4}, drawing.Point3{X: 10, Y: 10, Z: 60}, 8,
			drawing.ColorBlack, drawing.ColorBlack, drawing.ShadowFlagsTransparentOccluder), nil},
		{"Region", NewDrawRegionOpItem(drawing.NewRegionFromRect(drawing.MakeRectIXYWH(1, 1, 10, 10)), paint), nil},
		{"Patch", NewDrawPatchOpItem(&[12]drawing.Point{}, &[4]drawing.Color{1, 2, 3, 4}, nil, drawing.BlendModulate, paint),
			[]string{"DrawPatch(true, true, false, Modulate)"}},
		{"Vertices", NewDrawVerticesOpItem(&drawing.Vertices{
			Positions: []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}},
			Colors:    []drawing.Color{drawing.ColorRed, drawing.ColorGreen, drawing.ColorBlue},
		}, drawing.BlendSrcOver, paint), nil},
		{"Color", NewDrawColorOpItem(drawing.ColorBlue, drawing.BlendSrc), []string{"DrawColor(0xFF0000FF, Src)"}},
		{"ImageNine", NewDrawImageNineOpItem(img, drawing.MakeRectIXYWH(2, 2, 2, 2), bounds, drawing.FilterLinear, &brush), nil},
		{"ImageLattice", NewDrawImageLatticeOpItem(img, drawing.Lattice{XDivs: []int32{2, 4}, YDivs: []int32{3}},
			bounds, drawing.FilterNearest, nil), nil},
		{"Bitmap", NewDrawBitmapOpItem(drawing.BitmapFromImage(testNRGBA(3, 2)), 4, 5, paint), []string{"DrawBitmap(3x2, 4, 5)"}},
		{"Image", NewDrawImageOpItem(img, 7, 8, sampling, paint), nil},
		{"ImageRect", NewDrawImageRectOpItem(img, drawing.MakeRectWH(6, 6), bounds, sampling,
			drawing.FastSrcRectConstraint, paint), nil},
		{"AdaptiveImage", NewDrawAdaptiveImageOpItem(img, info, sampling, paint), nil},
		{"AdaptiveData", NewDrawAdaptiveDataOpItem(encodedPNG(t), info, sampling, paint), nil},
		{"AdaptivePixelMap", NewDrawAdaptivePixelMapOpItem(testPixelMap(6, 6), info, sampling, paint), nil},
		{"ExtendPixelMap", NewDrawExtendPixelMapOpItem(testPixelMap(6, 6), drawing.MakeRectWH(6, 6), bounds, sampling, paint), nil},
		{"ImageWithParm", NewDrawImageWithParmOpItem(rectObject{}, sampling, paint), []string{"DrawRect({0 0 50 50})"}},
		{"TextBlob", NewDrawTextBlobOpItem(testBlob(t, "round"), 3, 18, paint), []string{`DrawTextBlob("round", 3, 18)`}},
		{"ClipRect", NewClipRectOpItem(rect, drawing.ClipDifference, false), []string{"ClipRect({5 5 45 35}, Difference, false)"}},
		{"ClipIRect", NewClipIRectOpItem(drawing.MakeRectIXYWH(1, 2, 3, 4), drawing.ClipIntersect), nil},
		{"ClipRoundRect", NewClipRoundRectOpItem(rrect, drawing.ClipIntersect, true), nil},
		{"ClipPath", NewClipPathOpItem(testPath(), drawing.ClipIntersect, true), []string{"ClipPath(4, Intersect, true)"}},
		{"ClipRegion", NewClipRegionOpItem(drawing.NewRegionFromRect(drawing.MakeRectIXYWH(0, 0, 8, 8)), drawing.ClipIntersect), nil},
		{"ClipAdaptiveRoundRect", NewClipAdaptiveRoundRectOpItem([]drawing.Point{{X: 4, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 4}}), nil},
		{"SetMatrix", NewSetMatrixOpItem(drawing.ScaleMatrix(2, 3)), nil},
		{"ConcatMatrix", NewConcatMatrixOpItem(drawing.TranslateMatrix(4, 5)), nil},
		{"ResetMatrix", NewResetMatrixOpItem(), []string{"ResetMatrix()"}},
		{"Translate", NewTranslateOpItem(4, -2), []string{"Translate(4, -2)"}},
		{"Scale", NewScaleOpItem(2, 0.5), []string{"Scale(2, 0.5)"}},
		{"Rotate", NewRotateOpItem(45, 10, 10), []string{"Rotate(45, 10, 10)"}},
		{"Shear", NewShearOpItem(0.25, 0), []string{"Shear(0.25, 0)"}},
		{"Clear", NewClearOpItem(drawing.ColorWhite), []string{"Clear(0xFFFFFFFF)"}},
		{"SaveLayer", NewSaveLayerOpItem(drawing.SaveLayerOps{Bounds: &bounds, Brush: &brush, Flags: 1}), nil},
		{"Flush", NewFlushOpItem(), []string{"Flush()"}},
		{"Discard", NewDiscardOpItem(), []string{"Discard()"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playRect := &bounds
			before := playCalls(tt.op, playRect)
			if len(before) == 0 {
				t.Fatalf("%v played nothing", tt.op.Type())
			}
			if tt.want != nil && !slices.Equal(before, tt.want) {
				t.Errorf("calls = %q, want %q", before, tt.want)
			}
			after := playCalls(roundTrip(t, tt.op), playRect)
			if !slices.Equal(after, before) {
				t.Errorf("calls after round trip = %q, want %q", after, before)
			}
		})
	}
}

func TestAttachOpsRoundTrip(t *testing.T) {
	pen := drawing.NewPen()
	pen.Color = drawing.ColorRed
	pen.Width = 5
	tests := []struct {
		op   DrawOpItem
		want string
	}{
		{NewAttachPenOpItem(pen), "AttachPen(0xFFFF0000, 5)"},
		{NewAttachBrushOpItem(drawing.Brush{Color: drawing.ColorGreen}), "AttachBrush(0xFF00FF00)"},
		{NewDetachPenOpItem(), "DetachPen()"},
		{NewDetachBrushOpItem(), "DetachBrush()"},
	}
	for _, tt := range tests {
		t.Run(tt.op.Type().String(), func(t *testing.T) {
			c := canvastest.New(10, 10)
			roundTrip(t, tt.op).Playback(c, nil)
			if !slices.Equal(c.Calls, []string{tt.want}) {
				t.Errorf("calls = %q, want [%q]", c.Calls, tt.want)
			}
		})
	}
}

func TestMissingResourceSkipsDraw(t *testing.T) {
	tests := []DrawOpItem{
		NewDrawImageOpItem(nil, 0, 0, drawing.SamplingOptions{}, fillPaint(drawing.ColorBlack)),
		NewDrawPathOpItem(nil, fillPaint(drawing.ColorBlack)),
		NewDrawTextBlobOpItem(nil, 0, 0, fillPaint(drawing.ColorBlack)),
		NewDrawPictureOpItem(nil),
	}
	for _, op := range tests {
		t.Run(op.Type().String(), func(t *testing.T) {
			if calls := playCalls(roundTrip(t, op), nil); len(calls) != 0 {
				t.Errorf("calls = %q, want none", calls)
			}
		})
	}
}
