package drawing

import (
	"fmt"
	"image"

	"github.com/gogpu/drawing/internal/binio"
)

// PixelMap is a decoded, unpremultiplied RGBA8888 pixel buffer produced
// outside the drawing thread, e.g. by an image decoder.
type PixelMap struct {
	img *image.NRGBA
}

// NewPixelMap wraps img.
func NewPixelMap(img *image.NRGBA) *PixelMap {
	if img == nil || img.Rect.Empty() {
		return nil
	}
	return &PixelMap{img: img}
}

func (p *PixelMap) Width() int32  { return int32(p.img.Rect.Dx()) } // #nosec G115
func (p *PixelMap) Height() int32 { return int32(p.img.Rect.Dy()) } // #nosec G115

// NRGBA returns the pixels.
func (p *PixelMap) NRGBA() *image.NRGBA { return p.img }

// Image returns a drawable Image over the same pixels.
func (p *PixelMap) Image() *Image { return NewImage(p.img) }

// Serialize encodes the size and tightly packed rows.
func (p *PixelMap) Serialize() []byte {
	w, h := p.img.Rect.Dx(), p.img.Rect.Dy()
	out := binio.NewWriter(8 + w*h*4)
	out.I32(int32(w)) // #nosec G115
	out.I32(int32(h)) // #nosec G115
	for y := 0; y < h; y++ {
		row := p.img.Pix[p.img.PixOffset(p.img.Rect.Min.X, p.img.Rect.Min.Y+y):]
		out.Raw(row[:w*4])
	}
	return out.Bytes()
}

// DeserializePixelMap decodes bytes written by Serialize.
func DeserializePixelMap(data []byte) (*PixelMap, error) {
	r := binio.NewReader(data)
	w, h := r.I32(), r.I32()
	if r.Err() != nil || w <= 0 || h <= 0 || int64(w)*int64(h)*4 != int64(r.Remaining()) {
		return nil, fmt.Errorf("drawing: decode pixel map: %w", ErrCorruptData)
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
	copy(img.Pix, r.Raw(r.Remaining()))
	return NewPixelMap(img), nil
}

// ImageObject is an externally owned image that draws itself, such as an
// animated or lazily decoded image. Command lists keep these in a side
// table and refer to them by index.
type ImageObject interface {
	Playback(canvas Canvas, rect Rect, sampling SamplingOptions)
}
