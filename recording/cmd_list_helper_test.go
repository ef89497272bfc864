package recording

import (
	"reflect"
	"runtime"
	"slices"
	"testing"

	"github.com/gogpu/drawing"
)

func newTestCmdList() *CmdList {
	return &NewDrawCmdList(10, 10, UnmarshalModeImmediate).CmdList
}

func TestVectorRoundTrip(t *testing.T) {
	list := newTestCmdList()

	floats := []float32{1.5, -2, 0, 1e6}
	if got := GetVectorFromCmdList[float32](list, AddVectorToCmdList(list, floats)); !slices.Equal(got, floats) {
		t.Errorf("float32 vector = %v, want %v", got, floats)
	}

	pts := []drawing.Point{{X: 1, Y: 2}, {X: -3, Y: 4.25}}
	if got := GetVectorFromCmdList[drawing.Point](list, AddVectorToCmdList(list, pts)); !slices.Equal(got, pts) {
		t.Errorf("point vector = %v, want %v", got, pts)
	}

	colors := []drawing.Color{drawing.ColorRed, drawing.ColorBlue}
	if got := GetVectorFromCmdList[drawing.Color](list, AddVectorToCmdList(list, colors)); !slices.Equal(got, colors) {
		t.Errorf("color vector = %v, want %v", got, colors)
	}
}

func TestVectorSizeMismatch(t *testing.T) {
	list := newTestCmdList()
	h := AddVectorToCmdList(list, []uint8{1, 2, 3})
	if got := GetVectorFromCmdList[float32](list, h); got != nil {
		t.Errorf("mismatched vector = %v, want nil", got)
	}
}

func TestZeroHandles(t *testing.T) {
	list := newTestCmdList()

	if h := AddVectorToCmdList[float32](list, nil); h.IsValid() {
		t.Errorf("AddVectorToCmdList(nil) = %+v, want zero", h)
	}
	if h := AddImageToCmdList(list, nil); h.IsValid() {
		t.Errorf("AddImageToCmdList(nil) = %+v, want zero", h)
	}
	if h := AddBitmapToCmdList(list, &drawing.Bitmap{}); h.IsValid() {
		t.Errorf("AddBitmapToCmdList(empty) = %+v, want zero", h)
	}
	if h := AddPictureToCmdList(list, nil); h.IsValid() {
		t.Errorf("AddPictureToCmdList(nil) = %+v, want zero", h)
	}
	if h := AddTextBlobToCmdList(list, nil); h.IsValid() {
		t.Errorf("AddTextBlobToCmdList(nil) = %+v, want zero", h)
	}
	if h := AddPathToCmdList(list, nil); h.IsValid() {
		t.Errorf("AddPathToCmdList(nil) = %+v, want zero", h)
	}
	if h := AddShaderEffectToCmdList(list, nil); h.IsValid() {
		t.Errorf("AddShaderEffectToCmdList(nil) = %+v, want zero", h)
	}

	if got := GetImageFromCmdList(list, ImageHandle{}); got != nil {
		t.Errorf("GetImageFromCmdList(zero) = %v, want nil", got)
	}
	if got := GetBitmapFromCmdList(list, ImageHandle{}); got != nil {
		t.Errorf("GetBitmapFromCmdList(zero) = %v, want nil", got)
	}
	if got := GetPictureFromCmdList(list, OpDataHandle{}); got != nil {
		t.Errorf("GetPictureFromCmdList(zero) = %v, want nil", got)
	}
	if got := GetTextBlobFromCmdList(list, OpDataHandle{}); got != nil {
		t.Errorf("GetTextBlobFromCmdList(zero) = %v, want nil", got)
	}
	if got := GetPixelMapFromCmdList(list, OpDataHandle{}); got != nil {
		t.Errorf("GetPixelMapFromCmdList(zero) = %v, want nil", got)
	}
	if got := GetPathFromCmdList(list, CmdListHandle{}); got != nil {
		t.Errorf("GetPathFromCmdList(zero) = %v, want nil", got)
	}
	if got := GetVectorFromCmdList[float32](list, OpDataHandle{}); got != nil {
		t.Errorf("GetVectorFromCmdList(zero) = %v, want nil", got)
	}
}

func TestOutOfRangeHandle(t *testing.T) {
	list := newTestCmdList()
	if got := GetImageFromCmdList(list, ImageHandle{Offset: 1 << 20, Size: 64}); got != nil {
		t.Errorf("out-of-range image = %v, want nil", got)
	}
	if got := GetTextBlobFromCmdList(list, OpDataHandle{Offset: 1 << 20, Size: 64}); got != nil {
		t.Errorf("out-of-range text blob = %v, want nil", got)
	}
}

func TestBitmapRoundTrip(t *testing.T) {
	list := newTestCmdList()
	bmp := drawing.BitmapFromImage(testNRGBA(3, 2))
	h := AddBitmapToCmdList(list, bmp)
	if h.Width != 3 || h.Height != 2 {
		t.Errorf("handle size = %dx%d, want 3x2", h.Width, h.Height)
	}
	got := GetBitmapFromCmdList(list, h)
	if got == nil {
		t.Fatal("GetBitmapFromCmdList() = nil")
	}
	if !slices.Equal(got.Pixels(), bmp.Pixels()) {
		t.Error("bitmap pixels differ after round trip")
	}

	h.Width = 5
	if got := GetBitmapFromCmdList(list, h); got != nil {
		t.Error("bitmap with wrong width decoded, want nil")
	}
}

func TestBitmapHandleRejectsBadDimensions(t *testing.T) {
	list := newTestCmdList()
	valid := AddBitmapToCmdList(list, drawing.BitmapFromImage(testNRGBA(4, 4)))

	tests := []struct {
		name   string
		modify func(h *ImageHandle)
	}{
		{"huge dimensions over a small blob", func(h *ImageHandle) { h.Width, h.Height = 8192, 8192 }},
		{"max int32 dimensions", func(h *ImageHandle) { h.Width, h.Height = 1<<31 - 1, 1<<31 - 1 }},
		{"negative height", func(h *ImageHandle) { h.Height = -4 }},
		{"zero width", func(h *ImageHandle) { h.Width = 0 }},
		{"unknown color type", func(h *ImageHandle) { h.ColorType = drawing.ColorTypeUnknown }},
		{"fewer pixels than the blob", func(h *ImageHandle) { h.Width, h.Height = 2, 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.modify(&h)

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			got := GetBitmapFromCmdList(list, h)
			runtime.ReadMemStats(&after)

			if got != nil {
				t.Errorf("GetBitmapFromCmdList(%dx%d) = %v, want nil", h.Width, h.Height, got)
			}
			if grown := after.TotalAlloc - before.TotalAlloc; grown > 1<<20 {
				t.Errorf("GetBitmapFromCmdList allocated %d bytes, want under 1MiB", grown)
			}
		})
	}
}

func TestImageStoredOnce(t *testing.T) {
	list := newTestCmdList()
	img := testImage(4, 4)
	h1 := AddImageToCmdList(list, img)
	size := len(list.GetAllImageData())
	h2 := AddImageToCmdList(list, img)

	if h1 != h2 {
		t.Errorf("second handle = %+v, want %+v", h2, h1)
	}
	if n := len(list.GetAllImageData()); n != size {
		t.Errorf("image arena grew from %d to %d on repeated add", size, n)
	}

	got := GetImageFromCmdList(list, h1)
	if got == nil || got.Width() != 4 || got.Height() != 4 {
		t.Fatalf("GetImageFromCmdList() = %v, want 4x4 image", got)
	}
	if again := GetImageFromCmdList(list, h1); again != got {
		t.Error("decoded image not reused")
	}
}

func TestTextBlobAndTypefaceRoundTrip(t *testing.T) {
	list := newTestCmdList()
	blob := testBlob(t, "Hello")
	got := GetTextBlobFromCmdList(list, AddTextBlobToCmdList(list, blob))
	if got == nil {
		t.Fatal("GetTextBlobFromCmdList() = nil")
	}
	if got.Text() != "Hello" || got.Font().Size != 16 {
		t.Errorf("blob = %q size %g, want %q size 16", got.Text(), got.Font().Size, "Hello")
	}
	if len(got.Glyphs()) != len(blob.Glyphs()) {
		t.Errorf("glyphs = %d, want %d", len(got.Glyphs()), len(blob.Glyphs()))
	}

	tf := GetTypefaceFromCmdList(list, AddTypefaceToCmdList(list, testTypeface(t)))
	if tf == nil {
		t.Fatal("GetTypefaceFromCmdList() = nil")
	}
}

func TestPixelMapAndDataRoundTrip(t *testing.T) {
	list := newTestCmdList()
	pm := testPixelMap(3, 3)
	got := GetPixelMapFromCmdList(list, AddPixelMapToCmdList(list, pm))
	if got == nil {
		t.Fatal("GetPixelMapFromCmdList() = nil")
	}
	if !slices.Equal(got.NRGBA().Pix, pm.NRGBA().Pix) {
		t.Error("pixel map pixels differ after round trip")
	}

	d := GetDataFromCmdList(list, AddDataToCmdList(list, drawing.NewData([]byte("png"))))
	if d == nil || string(d.Bytes()) != "png" {
		t.Errorf("data = %v, want %q", d, "png")
	}
}

func TestLatticeRoundTrip(t *testing.T) {
	list := newTestCmdList()
	bounds := drawing.MakeRectIXYWH(0, 0, 10, 10)
	lattice := drawing.Lattice{
		XDivs:     []int32{2, 8},
		YDivs:     []int32{3, 7},
		RectTypes: make([]drawing.LatticeRectType, 9),
		Colors:    make([]drawing.Color, 9),
		Bounds:    &bounds,
	}
	lattice.RectTypes[4] = drawing.LatticeFixedColor
	lattice.Colors[4] = drawing.ColorGreen

	got := GetLatticeFromCmdList(list, AddLatticeToCmdList(list, lattice))
	if !reflect.DeepEqual(got, lattice) {
		t.Errorf("lattice = %+v, want %+v", got, lattice)
	}
}

func TestPaintRoundTrip(t *testing.T) {
	stroke := drawing.NewPaint()
	stroke.Style = drawing.PaintStroke
	stroke.Width = 3
	stroke.Cap = drawing.RoundCap
	stroke.Join = drawing.BevelJoin
	stroke.PathEffect = drawing.NewDashPathEffect([]float32{4, 2}, 1)

	shaded := drawing.NewPaint()
	shaded.ShaderEffect = drawing.NewLinearGradient(drawing.Pt(0, 0), drawing.Pt(10, 0),
		[]drawing.Color{drawing.ColorRed, drawing.ColorBlue}, []float32{0, 1}, drawing.TileMirror)
	shaded.ColorSpace = drawing.NewRGBColorSpace(drawing.TransferLinear, drawing.GamutDCIP3)

	filtered := drawing.NewPaint()
	filtered.AntiAlias = true
	filtered.Filter = drawing.Filter{
		ColorFilter: drawing.NewComposeColorFilter(drawing.NewLumaColorFilter(),
			drawing.NewBlendColorFilter(drawing.ColorRed, drawing.BlendMultiply)),
		ImageFilter: drawing.NewBlurImageFilter(2, 3, drawing.TileDecal,
			drawing.NewOffsetImageFilter(1, 1, nil)),
		MaskFilter: drawing.NewBlurMaskFilter(drawing.BlurNormal, 1.5, true),
	}

	tests := []struct {
		name  string
		paint drawing.Paint
	}{
		{"default fill", drawing.NewPaint()},
		{"stroke with dash", stroke},
		{"gradient and color space", shaded},
		{"filters", filtered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := newTestCmdList()
			got := GeneratePaintFromHandle(list, AddPaintToCmdList(list, tt.paint))
			if !reflect.DeepEqual(got, tt.paint) {
				t.Errorf("paint = %+v, want %+v", got, tt.paint)
			}
		})
	}
}

func TestFillPaintDropsStrokeSettings(t *testing.T) {
	p := drawing.NewPaint()
	p.Width = 9
	p.PathEffect = drawing.NewCornerPathEffect(2)

	list := newTestCmdList()
	h := AddPaintToCmdList(list, p)
	if h.Width != 0 || h.PathEffect.IsValid() {
		t.Errorf("fill handle carries stroke settings: %+v", h)
	}
	got := GeneratePaintFromHandle(list, h)
	if got.Width != 0 || got.PathEffect != nil {
		t.Errorf("fill paint width = %g, path effect = %v, want defaults", got.Width, got.PathEffect)
	}
}

func TestBrushAndPenRoundTrip(t *testing.T) {
	list := newTestCmdList()

	brush := drawing.NewBrush()
	brush.Color = drawing.ColorGreen
	brush.ShaderEffect = drawing.NewSweepGradient(drawing.Pt(5, 5),
		[]drawing.Color{drawing.ColorRed, drawing.ColorGreen}, nil, drawing.TileClamp, 0, 270)
	if got := GetBrushFromCmdList(list, AddBrushToCmdList(list, brush)); !reflect.DeepEqual(got, brush) {
		t.Errorf("brush = %+v, want %+v", got, brush)
	}

	pen := drawing.NewPen()
	pen.Width = 2.5
	pen.PathEffect = drawing.NewSumPathEffect(drawing.NewCornerPathEffect(1), drawing.NewDiscretePathEffect(3, 0.5))
	if got := GetPenFromCmdList(list, AddPenToCmdList(list, pen)); !reflect.DeepEqual(got, pen) {
		t.Errorf("pen = %+v, want %+v", got, pen)
	}
}

func TestImageShaderRoundTrip(t *testing.T) {
	list := newTestCmdList()
	m := drawing.ScaleMatrix(2, 2)
	s := drawing.NewImageShader(testImage(2, 2), drawing.TileRepeat, drawing.TileMirror,
		drawing.SamplingOptions{Filter: drawing.FilterLinear}, &m)

	got := GetShaderEffectFromCmdList(list, AddShaderEffectToCmdList(list, s))
	if got == nil || got.Image == nil {
		t.Fatalf("image shader = %+v, want image", got)
	}
	if got.Tile != drawing.TileRepeat || got.TileY != drawing.TileMirror {
		t.Errorf("tiles = %v/%v, want Repeat/Mirror", got.Tile, got.TileY)
	}
	if got.Matrix == nil || *got.Matrix != m {
		t.Errorf("matrix = %v, want %v", got.Matrix, m)
	}
	if got.Image.Width() != 2 {
		t.Errorf("image width = %d, want 2", got.Image.Width())
	}
}

func nestedBlend(depth int) *drawing.ShaderEffect {
	s := drawing.NewColorShader(drawing.ColorRed)
	for range depth {
		s = drawing.NewBlendShader(s, drawing.NewColorShader(drawing.ColorBlue), drawing.BlendMultiply)
	}
	return s
}

func TestShaderNestingDepth(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		wantNil bool
	}{
		{"shallow", 4, false},
		{"at limit", MaxNestingDepth - 1, false},
		{"too deep", MaxNestingDepth + 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := newTestCmdList()
			s := nestedBlend(tt.depth)
			got := GetShaderEffectFromCmdList(list, AddShaderEffectToCmdList(list, s))
			if (got == nil) != tt.wantNil {
				t.Fatalf("nil = %v, want %v", got == nil, tt.wantNil)
			}
			if !tt.wantNil && !reflect.DeepEqual(got, s) {
				t.Error("nested shader differs after round trip")
			}
		})
	}
}

func TestNestedListTypeMismatch(t *testing.T) {
	list := newTestCmdList()
	h := AddShaderEffectToCmdList(list, drawing.NewColorShader(drawing.ColorRed))
	if got := GetColorFilterFromCmdList(list, h); got != nil {
		t.Errorf("shader handle read as color filter = %+v, want nil", got)
	}
}

func TestPathRoundTrip(t *testing.T) {
	p := drawing.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.QuadTo(15, 5, 10, 10)
	p.CubicTo(8, 12, 2, 12, 0, 10)
	p.Close()
	p.SetFillType(drawing.PathFillEvenOdd)

	list := newTestCmdList()
	got := GetPathFromCmdList(list, AddPathToCmdList(list, p))
	if got == nil {
		t.Fatal("GetPathFromCmdList() = nil")
	}
	if !got.Equal(p) {
		t.Errorf("path elements = %v, want %v", got.Elements(), p.Elements())
	}
	if got.FillType() != drawing.PathFillEvenOdd {
		t.Errorf("FillType() = %v, want EvenOdd", got.FillType())
	}
}

func TestRegionRoundTrip(t *testing.T) {
	rg := drawing.NewRegionFromRect(drawing.MakeRectIXYWH(0, 0, 10, 10))
	rg.Op(drawing.NewRegionFromRect(drawing.MakeRectIXYWH(5, 5, 10, 10)), drawing.RegionOpUnion)

	list := newTestCmdList()
	got := GetRegionFromCmdList(list, AddRegionToCmdList(list, rg))
	if got == nil {
		t.Fatal("GetRegionFromCmdList() = nil")
	}
	if !got.Equal(rg) {
		t.Errorf("region rects = %v, want %v", got.Rects(), rg.Rects())
	}
}
