package drawing

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func testNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 200, A: 255}) // #nosec G115
		}
	}
	return img
}

func goRegular(t *testing.T) *Typeface {
	t.Helper()
	tf, err := NewTypefaceFromData("Go Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("NewTypefaceFromData() error = %v", err)
	}
	return tf
}

func TestImageSerialize(t *testing.T) {
	src := NewImage(testNRGBA(6, 4))
	data, err := src.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	got, err := DeserializeImage(data)
	if err != nil {
		t.Fatalf("DeserializeImage() error = %v", err)
	}
	if got.Width() != 6 || got.Height() != 4 {
		t.Errorf("size = %dx%d, want 6x4", got.Width(), got.Height())
	}
	if got.UniqueID() == src.UniqueID() {
		t.Error("decoded image shares the source id")
	}
	for _, p := range []image.Point{{0, 0}, {5, 3}, {2, 1}} {
		want := ColorFromStd(src.Image().At(p.X, p.Y))
		if c := ColorFromStd(got.Image().At(p.X, p.Y)); c != want {
			t.Errorf("pixel %v = %v, want %v", p, c, want)
		}
	}
}

func TestImageErrors(t *testing.T) {
	if NewImage(nil) != nil || NewImage(image.NewNRGBA(image.Rect(0, 0, 0, 5))) != nil {
		t.Error("NewImage() accepted an empty image")
	}
	if _, err := DeserializeImage(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DeserializeImage(nil) error = %v, want %v", err, ErrEmptyData)
	}
	if _, err := DeserializeImage([]byte("not an image")); err == nil {
		t.Error("DeserializeImage(garbage) error = nil")
	}
}

func TestPixelMapSerialize(t *testing.T) {
	// A sub-image has a stride wider than its rows.
	full := testNRGBA(8, 8)
	sub := full.SubImage(image.Rect(2, 2, 5, 6)).(*image.NRGBA)
	pm := NewPixelMap(sub)

	got, err := DeserializePixelMap(pm.Serialize())
	if err != nil {
		t.Fatalf("DeserializePixelMap() error = %v", err)
	}
	if got.Width() != 3 || got.Height() != 4 {
		t.Fatalf("size = %dx%d, want 3x4", got.Width(), got.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if a, b := got.NRGBA().NRGBAAt(x, y), sub.NRGBAAt(x+2, y+2); a != b {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, a, b)
			}
		}
	}

	data := pm.Serialize()
	if _, err := DeserializePixelMap(data[:len(data)-1]); !errors.Is(err, ErrCorruptData) {
		t.Errorf("truncated DeserializePixelMap() error = %v, want %v", err, ErrCorruptData)
	}
}

func TestVerticesSerialize(t *testing.T) {
	src := &Vertices{
		Mode:      VertexModeTriangleFan,
		Positions: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Colors:    []Color{ColorRed, ColorGreen, ColorBlue, ColorWhite},
		Indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
	if got := src.Bounds(); got != (Rect{0, 0, 10, 10}) {
		t.Errorf("Bounds() = %v, want {0 0 10 10}", got)
	}
	got, err := DeserializeVertices(src.Serialize())
	if err != nil {
		t.Fatalf("DeserializeVertices() error = %v", err)
	}
	if got.Mode != src.Mode {
		t.Errorf("Mode = %v, want %v", got.Mode, src.Mode)
	}
	if !slices.Equal(got.Positions, src.Positions) || got.TexCoords != nil {
		t.Errorf("Positions = %v, TexCoords = %v", got.Positions, got.TexCoords)
	}
	if !slices.Equal(got.Colors, src.Colors) || !slices.Equal(got.Indices, src.Indices) {
		t.Errorf("Colors = %v, Indices = %v", got.Colors, got.Indices)
	}
}

func TestVerticesErrors(t *testing.T) {
	mismatched := &Vertices{
		Positions: []Point{{0, 0}, {1, 0}, {0, 1}},
		Colors:    []Color{ColorRed},
	}
	if _, err := DeserializeVertices(mismatched.Serialize()); !errors.Is(err, ErrCorruptData) {
		t.Errorf("mismatched colors error = %v, want %v", err, ErrCorruptData)
	}
	if _, err := DeserializeVertices(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DeserializeVertices(nil) error = %v, want %v", err, ErrEmptyData)
	}
	data := (&Vertices{Positions: []Point{{1, 1}}}).Serialize()
	if _, err := DeserializeVertices(data[:5]); !errors.Is(err, ErrCorruptData) {
		t.Errorf("truncated error = %v, want %v", err, ErrCorruptData)
	}
}

func TestTypefaceSerialize(t *testing.T) {
	tf := goRegular(t)
	got, err := DeserializeTypeface(tf.Serialize())
	if err != nil {
		t.Fatalf("DeserializeTypeface() error = %v", err)
	}
	if got.Name() != tf.Name() || got.UniqueID() != tf.UniqueID() {
		t.Errorf("typeface = %q/%x, want %q/%x", got.Name(), got.UniqueID(), tf.Name(), tf.UniqueID())
	}
	if !bytes.Equal(got.Data(), tf.Data()) {
		t.Error("font bytes differ")
	}
	if got.Face(12) == nil {
		t.Error("Face(12) = nil")
	}
	if _, err := NewTypefaceFromData("empty", nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("NewTypefaceFromData(nil) error = %v, want %v", err, ErrEmptyData)
	}
	if _, err := NewTypefaceFromData("junk", []byte("definitely not a font")); err == nil {
		t.Error("NewTypefaceFromData(junk) error = nil")
	}
}

// fontTable returns the offset and length of tag in the sfnt font.
func fontTable(t *testing.T, font []byte, tag string) (off, length uint32, rec int) {
	t.Helper()
	n := int(binary.BigEndian.Uint16(font[4:]))
	for i := 0; i < n; i++ {
		rec = 12 + 16*i
		if string(font[rec:rec+4]) == tag {
			return binary.BigEndian.Uint32(font[rec+8:]), binary.BigEndian.Uint32(font[rec+12:]), rec
		}
	}
	t.Fatalf("table %q not found", tag)
	return 0, 0, 0
}

func TestTypefaceCorruptTables(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, font []byte)
		wantErr bool
	}{
		{"bad sfnt version", func(_ *testing.T, font []byte) { copy(font, "junk") }, true},
		{"truncated", func(_ *testing.T, font []byte) { clear(font[len(font)/3:]) }, false},
		{"glyf shorter than loca offsets", func(t *testing.T, font []byte) {
			_, length, rec := fontTable(t, font, "glyf")
			binary.BigEndian.PutUint32(font[rec+12:], length/4)
		}, false},
		{"loca past end of glyf", func(t *testing.T, font []byte) {
			off, length, _ := fontTable(t, font, "loca")
			for i := off + length/2; i < off+length; i++ {
				font[i] = 0xff
			}
		}, false},
		{"cmap offsets out of range", func(t *testing.T, font []byte) {
			off, length, _ := fontTable(t, font, "cmap")
			for i := off + 4; i < off+length && i < off+64; i++ {
				font[i] = 0xee
			}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font := slices.Clone(goregular.TTF)
			tt.corrupt(t, font)

			tf, err := NewTypefaceFromData("corrupt", font)
			if tt.wantErr && err == nil {
				t.Fatal("NewTypefaceFromData() error = nil")
			}
			if err != nil {
				if tf != nil {
					t.Errorf("NewTypefaceFromData() = %v with error %v, want nil", tf, err)
				}
				if _, err := DeserializeTypeface((&Typeface{name: "corrupt", data: font}).Serialize()); err == nil {
					t.Error("DeserializeTypeface() error = nil after NewTypefaceFromData failed")
				}
				return
			}
			// A font the parsers accept still has to shape without escaping panics.
			_ = MakeTextBlobFromString("Hello, world", Font{Typeface: tf, Size: 16})
		})
	}
}

func TestTextBlob(t *testing.T) {
	f := Font{Typeface: goRegular(t), Size: 16}
	tests := []struct {
		name   string
		text   string
		glyphs int
	}{
		{"ascii", "Hello", 5},
		{"decomposed accent is composed", "é", 1},
		{"spaces", "a b", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := MakeTextBlobFromString(tt.text, f)
			if blob == nil {
				t.Fatal("MakeTextBlobFromString() = nil")
			}
			if n := len(blob.Glyphs()); n != tt.glyphs {
				t.Errorf("len(Glyphs()) = %d, want %d", n, tt.glyphs)
			}
			b := blob.Bounds()
			if b == nil || b.Width() <= 0 || b.Top >= 0 || b.Bottom <= 0 {
				t.Errorf("Bounds() = %v, want a box around the baseline", b)
			}
		})
	}

	if MakeTextBlobFromString("", f) != nil {
		t.Error("MakeTextBlobFromString(\"\") != nil")
	}
	if MakeTextBlobFromString("x", Font{Size: 12}) != nil {
		t.Error("MakeTextBlobFromString() without typeface != nil")
	}
}

func TestTextBlobSerialize(t *testing.T) {
	src := MakeTextBlobFromString("Round trip", Font{Typeface: goRegular(t), Size: 14})
	got, err := DeserializeTextBlob(src.Serialize())
	if err != nil {
		t.Fatalf("DeserializeTextBlob() error = %v", err)
	}
	if got.Text() != src.Text() || got.Font().Size != 14 {
		t.Errorf("blob = %q at %v, want %q at 14", got.Text(), got.Font().Size, src.Text())
	}
	if !slices.Equal(got.Glyphs(), src.Glyphs()) {
		t.Errorf("Glyphs() = %v, want %v", got.Glyphs(), src.Glyphs())
	}
	if _, err := DeserializeTextBlob(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DeserializeTextBlob(nil) error = %v, want %v", err, ErrEmptyData)
	}
}

func TestBitmap(t *testing.T) {
	var b Bitmap
	if b.Build(0, 4, ColorTypeRGBA8888, AlphaTypeUnpremul) {
		t.Error("Build() with zero width succeeded")
	}
	if !b.Build(3, 2, ColorTypeRGBA8888, AlphaTypeUnpremul) {
		t.Fatal("Build() failed")
	}
	if b.RowBytes() != 12 || b.ComputeByteSize() != 24 {
		t.Errorf("RowBytes() = %d, ComputeByteSize() = %d, want 12, 24", b.RowBytes(), b.ComputeByteSize())
	}
	if b.SetPixels(make([]byte, 23)) {
		t.Error("SetPixels() with short buffer succeeded")
	}

	src := testNRGBA(3, 2)
	from := BitmapFromImage(src)
	if from == nil {
		t.Fatal("BitmapFromImage() = nil")
	}
	if !b.SetPixels(from.Pixels()) {
		t.Fatal("SetPixels() failed")
	}
	img := b.Image()
	if c := ColorFromStd(img.At(2, 1)); c != ColorFromStd(src.At(2, 1)) {
		t.Errorf("pixel (2, 1) = %v, want %v", c, ColorFromStd(src.At(2, 1)))
	}
}

func TestData(t *testing.T) {
	b := []byte{1, 2, 3}
	shared, copied := NewData(b), CopyData(b)
	b[0] = 9
	if shared.Bytes()[0] != 9 || copied.Bytes()[0] != 1 {
		t.Errorf("NewData()[0] = %d, CopyData()[0] = %d, want 9, 1", shared.Bytes()[0], copied.Bytes()[0])
	}
	var nilData *Data
	if nilData.Size() != 0 || nilData.Bytes() != nil {
		t.Error("nil Data is not empty")
	}
}
