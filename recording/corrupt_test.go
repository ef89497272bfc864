package recording

import (
	"bytes"
	"encoding/binary"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/canvastest"
	"golang.org/x/image/font/gofont/goregular"
)

// seedOps returns a list mixing plain records with every kind of arena
// resource a receiver has to decode.
func seedOps(t testing.TB) []DrawOpItem {
	t.Helper()
	tf, err := drawing.NewTypefaceFromData("Go Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("NewTypefaceFromData() error = %v", err)
	}
	blob := drawing.MakeTextBlobFromString("seed", drawing.Font{Typeface: tf, Size: 12})
	if blob == nil {
		t.Fatal("MakeTextBlobFromString() = nil")
	}
	p := drawing.NewPath()
	p.MoveTo(1, 1)
	p.LineTo(40, 10)
	p.LineTo(20, 30)
	p.Close()

	ops := scenarioOps()
	return append(ops,
		NewDrawRectOpItem(drawing.Rect{Left: 5, Top: 5, Right: 25, Bottom: 25}, fillPaint(drawing.ColorBlue)),
		NewDrawPathOpItem(p, fillPaint(drawing.ColorGreen)),
		NewDrawBitmapOpItem(drawing.BitmapFromImage(testNRGBA(4, 4)), 10, 10, drawing.NewPaint()),
		NewDrawImageOpItem(testImage(3, 3), 0, 0, drawing.SamplingOptions{}, drawing.NewPaint()),
		NewDrawTextBlobOpItem(blob, 0, 40, fillPaint(drawing.ColorBlack)),
	)
}

// tableRecord returns the offset of tag's entry in the table directory
// of an sfnt font, or -1.
func tableRecord(font []byte, tag string) int {
	if len(font) < 12 {
		return -1
	}
	n := int(binary.BigEndian.Uint16(font[4:]))
	for i := 0; i < n; i++ {
		rec := 12 + 16*i
		if rec+16 > len(font) {
			return -1
		}
		if string(font[rec:rec+4]) == tag {
			return rec
		}
	}
	return -1
}

// corruptFont damages the copy of goregular found in data, in place.
type corruptFont func(t *testing.T, font []byte)

func badSfntVersion(_ *testing.T, font []byte) { copy(font, "junk") }

func shortGlyfTable(t *testing.T, font []byte) {
	rec := tableRecord(font, "glyf")
	if rec < 0 {
		t.Fatal("glyf table not found")
	}
	length := binary.BigEndian.Uint32(font[rec+12:])
	binary.BigEndian.PutUint32(font[rec+12:], length/4)
}

func hugeLocaTable(t *testing.T, font []byte) {
	rec := tableRecord(font, "loca")
	if rec < 0 {
		t.Fatal("loca table not found")
	}
	off := binary.BigEndian.Uint32(font[rec+8:])
	length := binary.BigEndian.Uint32(font[rec+12:])
	// Every loca entry points far past the end of glyf.
	for i := off + length/2; i < off+length && int(i) < len(font); i++ {
		font[i] = 0xff
	}
}

func flippedBytes(seed uint64) corruptFont {
	return func(_ *testing.T, font []byte) {
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for range 64 {
			font[12+rng.IntN(len(font)-12)] ^= byte(1 + rng.IntN(255))
		}
	}
}

func TestCorruptTypefaceInTextBlobOp(t *testing.T) {
	tests := []struct {
		name    string
		corrupt corruptFont
		wantNil bool
	}{
		{"bad sfnt version", badSfntVersion, true},
		{"glyf shorter than loca offsets", shortGlyfTable, false},
		{"loca past end of glyf", hugeLocaTable, false},
		{"flipped bytes seed 1", flippedBytes(1), false},
		{"flipped bytes seed 2", flippedBytes(2), false},
		{"flipped bytes seed 3", flippedBytes(3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := marshalled(t, NewDrawTextBlobOpItem(testBlob(t, "corrupt"), 0, 20, fillPaint(drawing.ColorBlack)))
			images := slices.Clone(src.GetAllImageData())
			at := bytes.Index(images, goregular.TTF[:64])
			if at < 0 {
				t.Fatal("font bytes not found in the image arena")
			}
			tt.corrupt(t, images[at:at+len(goregular.TTF)])

			list := CreateFromData(slices.Clone(src.GetData()), false)
			if !list.SetUpImageData(images) {
				t.Fatal("SetUpImageData() = false")
			}
			list.UnmarshallingDrawOps()
			if n := list.GetOpItemSize(); n != 1 {
				t.Fatalf("GetOpItemSize() = %d, want 1", n)
			}
			op, ok := list.drawOpItems[0].(*DrawTextBlobOpItem)
			if !ok {
				t.Fatalf("op = %T, want *DrawTextBlobOpItem", list.drawOpItems[0])
			}
			if tt.wantNil && op.TextBlob() != nil {
				t.Error("TextBlob() != nil, want nil for an unparsable font")
			}

			canvas := canvastest.New(100, 100)
			list.Playback(canvas, nil)
			if op.TextBlob() == nil {
				if n := canvas.Count("DrawTextBlob"); n != 0 {
					t.Errorf("DrawTextBlob calls = %d, want 0 without a blob", n)
				}
			}
		})
	}
}

func TestCorruptBitmapHandleInList(t *testing.T) {
	src := marshalled(t, NewDrawBitmapOpItem(drawing.BitmapFromImage(testNRGBA(4, 4)), 0, 0, drawing.NewPaint()))
	data := slices.Clone(src.GetData())

	// The handle stores size, width and height after the blob offset.
	var handle [12]byte
	binary.LittleEndian.PutUint32(handle[:], 4*4*4)
	binary.LittleEndian.PutUint32(handle[4:], 4)
	binary.LittleEndian.PutUint32(handle[8:], 4)
	at := bytes.Index(data[drawCmdListHeaderSize:], handle[:])
	if at < 0 {
		t.Fatal("bitmap handle not found in the op arena")
	}
	at += drawCmdListHeaderSize + 4
	binary.LittleEndian.PutUint32(data[at:], 8192)
	binary.LittleEndian.PutUint32(data[at+4:], 8192)

	list := CreateFromData(data, false)
	list.SetUpImageData(slices.Clone(src.GetAllImageData()))
	list.UnmarshallingDrawOps()
	if n := list.GetOpItemSize(); n != 1 {
		t.Fatalf("GetOpItemSize() = %d, want 1", n)
	}
	op, ok := list.drawOpItems[0].(*DrawBitmapOpItem)
	if !ok {
		t.Fatalf("op = %T, want *DrawBitmapOpItem", list.drawOpItems[0])
	}
	if op.bitmap != nil {
		t.Errorf("bitmap = %dx%d, want nil", op.bitmap.Width(), op.bitmap.Height())
	}
	canvas := canvastest.New(100, 100)
	list.Playback(canvas, nil)
	if n := canvas.Count("DrawBitmap"); n != 0 {
		t.Errorf("DrawBitmap calls = %d, want 0", n)
	}
}

func FuzzUnmarshallingDrawOps(f *testing.F) {
	src := NewDrawCmdList(100, 100, UnmarshalModeDeferred)
	for _, op := range seedOps(f) {
		src.AddDrawOp(op)
	}
	src.MarshallingDrawOps()
	f.Add(slices.Clone(src.GetData()), slices.Clone(src.GetAllImageData()))
	f.Add(slices.Clone(src.GetData()), []byte(nil))
	f.Add([]byte{}, []byte{})

	f.Fuzz(func(t *testing.T, data, images []byte) {
		list := CreateFromData(slices.Clone(data), false)
		if len(images) > 0 {
			list.SetUpImageData(slices.Clone(images))
		}
		list.UnmarshallingDrawOps()
		list.Playback(canvastest.New(100, 100), nil)
		_ = list.Dump()
	})
}
