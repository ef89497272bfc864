package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/canvastest"
	"github.com/gogpu/drawing/recording"
	"golang.org/x/image/font/gofont/goregular"
)

func testList() *recording.DrawCmdList {
	rc := recording.NewRecordingCanvas(120, 80)
	rc.Save()
	rc.ClipRect(drawing.MakeRectXYWH(10, 10, 40, 40), drawing.ClipIntersect, true)
	rc.DrawColor(drawing.ColorRed, drawing.BlendSrcOver)
	rc.Restore()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i) // #nosec G115
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	rc.DrawImage(drawing.NewImage(img), 5, 5, drawing.SamplingOptions{})
	return rc.GetDrawCmdList()
}

func playback(list *recording.DrawCmdList) []string {
	c := canvastest.New(120, 80)
	list.Playback(c, nil)
	return c.DrawCalls()
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"compressed", []Option{WithCompression(5)}},
		{"no checksum", []Option{WithoutChecksum()}},
		{"compressed no checksum", []Option{WithCompression(0), WithoutChecksum()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testList()
			data, err := Encode(src, tt.opts...)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.HasPrefix(data, []byte(Magic)) {
				t.Fatalf("envelope starts with %q, want %q", data[:4], Magic)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.GetWidth() != 120 || got.GetHeight() != 80 {
				t.Errorf("size = %dx%d, want 120x80", got.GetWidth(), got.GetHeight())
			}
			if n := got.GetOpItemSize(); n != 5 {
				t.Errorf("GetOpItemSize() = %d, want 5", n)
			}
			if want, calls := playback(src), playback(got); !slices.Equal(calls, want) {
				t.Errorf("calls = %q, want %q", calls, want)
			}
		})
	}
}

func TestEncodeMarshalsOnce(t *testing.T) {
	list := testList()
	first, err := Encode(list)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := Encode(list)
	if err != nil {
		t.Fatalf("second Encode() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("second Encode() = %d bytes, want the same %d bytes", len(second), len(first))
	}
}

func TestHeaderFields(t *testing.T) {
	list := testList()
	data, err := Encode(list, WithCompression(brotliLevel))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h.Version != Version {
		t.Errorf("Version = %d, want %d", h.Version, Version)
	}
	if !h.Compressed() || !h.HasChecksum() {
		t.Errorf("Flags = %b, want compressed with checksum", h.Flags)
	}
	if int(h.OpLen) != len(list.GetData()) {
		t.Errorf("OpLen = %d, want %d", h.OpLen, len(list.GetData()))
	}
	if int(h.ImageLen) != len(list.GetAllImageData()) {
		t.Errorf("ImageLen = %d, want %d", h.ImageLen, len(list.GetAllImageData()))
	}
	if int64(len(data)) != h.size() {
		t.Errorf("envelope = %d bytes, header says %d", len(data), h.size())
	}
}

const brotliLevel = 9

func TestDecodeErrors(t *testing.T) {
	good, err := Encode(testList())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	badMagic := bytes.Clone(good)
	copy(badMagic, "XCMD")

	badVersion := bytes.Clone(good)
	binary.LittleEndian.PutUint16(badVersion[4:], Version+1)

	flipped := bytes.Clone(good)
	flipped[headerSize+10] ^= 0xFF

	tooLarge := bytes.Clone(good)
	binary.LittleEndian.PutUint32(tooLarge[16:], maxArenaSize)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short header", good[:headerSize-1], ErrTruncated},
		{"short body", good[:len(good)-1], ErrTruncated},
		{"bad magic", badMagic, ErrBadMagic},
		{"bad version", badVersion, ErrUnsupportedVersion},
		{"checksum", flipped, ErrChecksum},
		{"too large", tooLarge, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeCorruptCompressedPayload(t *testing.T) {
	data, err := Encode(testList(), WithCompression(brotliLevel))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	h, _ := ParseHeader(data)
	// Cut the compressed stream short but keep the envelope consistent.
	cut := h.PayloadLen / 2
	binary.LittleEndian.PutUint32(data[24:], cut)
	data = slices.Delete(data, headerSize+int(cut), headerSize+int(h.PayloadLen))

	if _, err := Decode(data); !errors.Is(err, ErrTruncated) {
		t.Errorf("Decode() error = %v, want %v", err, ErrTruncated)
	}
}

func TestWriteToReadFrom(t *testing.T) {
	var buf bytes.Buffer
	src := testList()
	n, err := WriteTo(&buf, src, WithCompression(brotliLevel))
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d", n, buf.Len())
	}
	// A second envelope on the same stream is left for the next read.
	if _, err := WriteTo(&buf, src); err != nil {
		t.Fatalf("second WriteTo() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		got, err := ReadFrom(&buf)
		if err != nil {
			t.Fatalf("ReadFrom() #%d error = %v", i, err)
		}
		if want, calls := playback(src), playback(got); !slices.Equal(calls, want) {
			t.Errorf("ReadFrom() #%d calls = %q, want %q", i, calls, want)
		}
	}
	if _, err := ReadFrom(&buf); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadFrom() on drained stream error = %v, want %v", err, ErrTruncated)
	}
	if _, err := ReadFrom(bytes.NewReader([]byte("nope, not an envelope at all....."))); !errors.Is(err, ErrBadMagic) {
		t.Errorf("ReadFrom() error = %v, want %v", err, ErrBadMagic)
	}
}

func TestCachedListRoundTrip(t *testing.T) {
	font, err := drawing.NewTypefaceFromData("Go Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("NewTypefaceFromData() error = %v", err)
	}
	list := recording.NewDrawCmdList(100, 40, recording.UnmarshalModeDeferred)
	paint := drawing.NewPaint()
	list.AddDrawOp(recording.NewDrawTextBlobOpItem(
		drawing.MakeTextBlobFromString("cached", drawing.Font{Typeface: font, Size: 14}), 2, 20, paint))
	list.GenerateCache(canvastest.New(100, 40), nil)

	data, err := Encode(list)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	h, _ := ParseHeader(data)
	if h.ReplacedCount != 1 {
		t.Fatalf("ReplacedCount = %d, want 1", h.ReplacedCount)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !got.GetIsCache() {
		t.Error("decoded list lost its cache")
	}
	c := canvastest.New(100, 40)
	got.Playback(c, nil)
	if c.Count("DrawImageRect") != 1 || c.Count("DrawTextBlob") != 0 {
		t.Errorf("calls = %q, want one cached image draw", c.DrawCalls())
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want options
	}{
		{"default", nil, options{checksum: true, level: 6}},
		{"compression", []Option{WithCompression(3)}, options{compress: true, level: 3, checksum: true}},
		{"clamped high", []Option{WithCompression(99)}, options{compress: true, level: 11, checksum: true}},
		{"clamped low", []Option{WithCompression(-4)}, options{compress: true, level: 0, checksum: true}},
		{"no checksum", []Option{WithoutChecksum()}, options{level: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			if o != tt.want {
				t.Errorf("options = %+v, want %+v", o, tt.want)
			}
		})
	}
}
