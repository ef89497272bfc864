package recording

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/canvastest"
	"golang.org/x/image/font/gofont/goregular"
)

func testTypeface(t *testing.T) *drawing.Typeface {
	t.Helper()
	tf, err := drawing.NewTypefaceFromData("Go Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("NewTypefaceFromData() error = %v", err)
	}
	return tf
}

func testBlob(t *testing.T, s string) *drawing.TextBlob {
	t.Helper()
	blob := drawing.MakeTextBlobFromString(s, drawing.Font{Typeface: testTypeface(t), Size: 16})
	if blob == nil {
		t.Fatalf("MakeTextBlobFromString(%q) = nil", s)
	}
	return blob
}

func testNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 128, A: 255}) // #nosec G115
		}
	}
	return img
}

func testImage(w, h int) *drawing.Image { return drawing.NewImage(testNRGBA(w, h)) }

func testPixelMap(w, h int) *drawing.PixelMap { return drawing.NewPixelMap(testNRGBA(w, h)) }

func fillPaint(c drawing.Color) drawing.Paint {
	p := drawing.NewPaint()
	p.Color = c
	return p
}

// scenarioOps returns the Save / ClipRect / DrawColor / Restore sequence.
func scenarioOps() []DrawOpItem {
	return []DrawOpItem{
		NewSaveOpItem(),
		NewClipRectOpItem(drawing.Rect{Left: 10, Top: 10, Right: 50, Bottom: 50}, drawing.ClipIntersect, true),
		NewDrawColorOpItem(drawing.ColorRed, drawing.BlendSrcOver),
		NewRestoreOpItem(),
	}
}

var scenarioCalls = []string{
	"Save()",
	"ClipRect({10 10 50 50}, Intersect, true)",
	"DrawColor(0xFFFF0000, SrcOver)",
	"Restore()",
}

// marshalled returns a DEFERRED list holding ops, marshalled to its arena.
func marshalled(t *testing.T, ops ...DrawOpItem) *DrawCmdList {
	t.Helper()
	list := NewDrawCmdList(100, 100, UnmarshalModeDeferred)
	for _, op := range ops {
		if !list.AddDrawOp(op) {
			t.Fatalf("AddDrawOp(%v) = false", op.Type())
		}
	}
	list.MarshallingDrawOps()
	return list
}

// reloaded rebuilds list from its arenas, the way a receiving process does.
func reloaded(t *testing.T, list *DrawCmdList) *DrawCmdList {
	t.Helper()
	out := CreateFromData(slices.Clone(list.GetData()), false)
	if images := list.GetAllImageData(); len(images) > 0 {
		if !out.SetUpImageData(slices.Clone(images)) {
			t.Fatal("SetUpImageData() = false")
		}
	}
	out.SetupPixelMaps(list.GetAllPixelMaps())
	out.SetupImageObjects(list.GetAllImageObjects())
	out.UnmarshallingDrawOps()
	return out
}

// roundTrip marshals op, reads it back and returns the rebuilt op.
func roundTrip(t *testing.T, op DrawOpItem) DrawOpItem {
	t.Helper()
	out := reloaded(t, marshalled(t, op))
	if n := out.GetOpItemSize(); n != 1 {
		t.Fatalf("%v: GetOpItemSize() after round trip = %d, want 1", op.Type(), n)
	}
	got := out.drawOpItems[0]
	if got.Type() != op.Type() {
		t.Fatalf("round trip type = %v, want %v", got.Type(), op.Type())
	}
	return got
}

// playCalls plays op on a fresh mock canvas and returns its draw calls.
func playCalls(op DrawOpItem, rect *drawing.Rect) []string {
	c := canvastest.New(100, 100)
	op.Playback(c, rect)
	return c.DrawCalls()
}
