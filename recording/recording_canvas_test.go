package recording

import (
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/canvastest"
	"github.com/gogpu/drawing/raster"
)

func TestNewRecordingCanvas(t *testing.T) {
	rc := NewRecordingCanvas(800, 600)

	if rc.GetDrawingType() != drawing.DrawingTypeRecording {
		t.Errorf("GetDrawingType() = %v, want Recording", rc.GetDrawingType())
	}
	if rc.GetSaveCount() != 1 {
		t.Errorf("GetSaveCount() = %d, want 1", rc.GetSaveCount())
	}
	if got, want := rc.GetDeviceClipBounds(), drawing.MakeRectIXYWH(0, 0, 800, 600); got != want {
		t.Errorf("GetDeviceClipBounds() = %v, want %v", got, want)
	}
	list := rc.GetDrawCmdList()
	if list.GetWidth() != 800 || list.GetHeight() != 600 {
		t.Errorf("list size = %dx%d, want 800x600", list.GetWidth(), list.GetHeight())
	}
	if list.Mode() != UnmarshalModeDeferred {
		t.Errorf("list mode = %v, want Deferred", list.Mode())
	}
	if !list.IsEmpty() {
		t.Error("new list should be empty")
	}
}

func TestRecordingCanvasBrushAndPen(t *testing.T) {
	rc := NewRecordingCanvas(100, 100)
	rc.AttachBrush(drawing.Brush{Color: drawing.ColorRed, BlendMode: drawing.BlendSrcOver})
	pen := drawing.NewPen()
	pen.Color = drawing.ColorBlue
	pen.Width = 2
	rc.AttachPen(pen)
	rc.DrawRect(drawing.MakeRectWH(10, 10))

	list := rc.GetDrawCmdList()
	if n := list.GetOpItemSize(); n != 2 {
		t.Fatalf("GetOpItemSize() = %d, want 2", n)
	}

	canvas := canvastest.New(100, 100)
	list.Playback(canvas, nil)
	want := []string{
		"AttachPaint(0xFFFF0000, Fill)", "DrawRect({0 0 10 10})",
		"AttachPaint(0xFF0000FF, Stroke)", "DrawRect({0 0 10 10})",
		"DetachPaint()",
	}
	if !slices.Equal(canvas.Calls, want) {
		t.Errorf("calls = %q, want %q", canvas.Calls, want)
	}
}

func TestRecordingCanvasAttachPaint(t *testing.T) {
	tests := []struct {
		style drawing.PaintStyle
		want  int
	}{
		{drawing.PaintNone, 0},
		{drawing.PaintFill, 1},
		{drawing.PaintStroke, 1},
		{drawing.PaintFillStroke, 2},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			rc := NewRecordingCanvas(10, 10)
			p := drawing.NewPaint()
			p.Style = tt.style
			rc.AttachPaint(p)
			rc.DrawCircle(drawing.Pt(5, 5), 2)
			if n := rc.GetDrawCmdList().GetOpItemSize(); n != tt.want {
				t.Errorf("ops = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestRecordingCanvasShapesNeedPaint(t *testing.T) {
	rc := NewRecordingCanvas(100, 100)
	rc.DrawRect(drawing.MakeRectWH(10, 10))
	rc.DrawLine(drawing.Pt(0, 0), drawing.Pt(5, 5))
	rc.DrawOval(drawing.MakeRectWH(4, 4))
	if n := rc.GetDrawCmdList().GetOpItemSize(); n != 0 {
		t.Errorf("ops without paint = %d, want 0", n)
	}

	rc.AttachBrush(drawing.NewBrush())
	rc.DrawRect(drawing.MakeRectWH(10, 10))
	rc.DetachBrush()
	rc.DrawRect(drawing.MakeRectWH(10, 10))
	if n := rc.GetDrawCmdList().GetOpItemSize(); n != 1 {
		t.Errorf("ops = %d, want 1", n)
	}
}

func TestRecordingCanvasImagesUseDefaultPaint(t *testing.T) {
	rc := NewRecordingCanvas(100, 100)
	rc.DrawImage(testImage(4, 4), 1, 2, drawing.SamplingOptions{})
	rc.DrawTextBlob(testBlob(t, "a"), 0, 10)

	list := rc.GetDrawCmdList()
	if n := list.GetOpItemSize(); n != 2 {
		t.Fatalf("GetOpItemSize() = %d, want 2", n)
	}
	for i, op := range list.drawOpItems {
		p, ok := op.(interface{ Paint() drawing.Paint })
		if !ok {
			t.Fatalf("op %d (%v) has no paint", i, op.Type())
		}
		if !p.Paint().AntiAlias || p.Paint().Style != drawing.PaintFill {
			t.Errorf("op %d paint = %+v, want anti-aliased fill", i, p.Paint())
		}
	}
}

func TestRecordingCanvasSaveRestore(t *testing.T) {
	rc := NewRecordingCanvas(100, 100)
	if n := rc.Save(); n != 1 {
		t.Errorf("Save() = %d, want 1", n)
	}
	rc.Translate(10, 20)
	rc.ClipRect(drawing.MakeRectWH(30, 30), drawing.ClipIntersect, false)

	if got, want := rc.GetDeviceClipBounds(), drawing.MakeRectIXYWH(10, 20, 30, 30); got != want {
		t.Errorf("clip = %v, want %v", got, want)
	}
	if got := rc.GetTotalMatrix()[drawing.TransX]; got != 10 {
		t.Errorf("TransX = %g, want 10", got)
	}

	rc.Restore()
	if !rc.GetTotalMatrix().IsIdentity() {
		t.Errorf("matrix after Restore = %v, want identity", rc.GetTotalMatrix())
	}
	if got, want := rc.GetDeviceClipBounds(), drawing.MakeRectIXYWH(0, 0, 100, 100); got != want {
		t.Errorf("clip after Restore = %v, want %v", got, want)
	}

	// An unbalanced Restore is dropped.
	rc.Restore()
	if n := rc.GetDrawCmdList().GetOpItemSize(); n != 4 {
		t.Errorf("ops = %d, want 4", n)
	}
}

func TestRecordingCanvasClipTracking(t *testing.T) {
	rc := NewRecordingCanvas(100, 100)
	rc.Scale(2, 2)
	rc.ClipRect(drawing.MakeRectWH(10, 10), drawing.ClipIntersect, true)
	if got, want := rc.GetDeviceClipBounds(), drawing.MakeRectIXYWH(0, 0, 20, 20); got != want {
		t.Errorf("scaled clip = %v, want %v", got, want)
	}

	rc.ClipRect(drawing.MakeRectXYWH(2, 2, 3, 3), drawing.ClipDifference, true)
	if got, want := rc.GetDeviceClipBounds(), drawing.MakeRectIXYWH(0, 0, 20, 20); got != want {
		t.Errorf("clip after difference = %v, want %v", got, want)
	}

	rc.ClipRect(drawing.MakeRectXYWH(50, 50, 5, 5), drawing.ClipIntersect, true)
	if got := rc.GetDeviceClipBounds(); got.IsValid() {
		t.Errorf("disjoint clip = %v, want empty", got)
	}
}

func TestRecordingCanvasReset(t *testing.T) {
	rc := NewRecordingCanvas(10, 10)
	rc.AttachBrush(drawing.NewBrush())
	rc.Save()
	rc.DrawRect(drawing.MakeRectWH(5, 5))
	old := rc.GetDrawCmdList()

	rc.Reset(20, 30)
	if rc.GetDrawCmdList() == old {
		t.Error("Reset kept the old list")
	}
	if !rc.GetDrawCmdList().IsEmpty() {
		t.Error("list after Reset should be empty")
	}
	if rc.GetSaveCount() != 1 {
		t.Errorf("GetSaveCount() after Reset = %d, want 1", rc.GetSaveCount())
	}
	rc.DrawRect(drawing.MakeRectWH(5, 5))
	if n := rc.GetDrawCmdList().GetOpItemSize(); n != 0 {
		t.Errorf("brush survived Reset: %d ops", n)
	}
}

func TestRecordingCanvasToRaster(t *testing.T) {
	rc := NewRecordingCanvas(64, 64)
	rc.AttachBrush(drawing.Brush{Color: drawing.ColorRed, BlendMode: drawing.BlendSrcOver})
	rc.Translate(16, 16)
	rc.DrawRect(drawing.MakeRectWH(16, 16))
	rc.DetachBrush()
	list := rc.GetDrawCmdList()
	list.MarshallingDrawOps()

	for _, l := range []*DrawCmdList{list, reloaded(t, list)} {
		c := raster.NewCanvas(64, 64)
		l.Playback(c, nil)
		img := c.Image()
		if got := color.NRGBAModel.Convert(img.At(24, 24)).(color.NRGBA); got.R < 200 || got.A < 200 {
			t.Errorf("inside pixel = %v, want red", got)
		}
		if got := color.NRGBAModel.Convert(img.At(4, 4)).(color.NRGBA); got.A != 0 {
			t.Errorf("outside pixel = %v, want transparent", got)
		}
	}
}
