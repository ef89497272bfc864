package drawing

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync/atomic"

	// Extra decoders accepted by DeserializeImage.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var nextImageID atomic.Uint32

// Image is an immutable raster image with a process-unique id.
type Image struct {
	img image.Image
	id  uint32
}

// NewImage wraps img. It returns nil for a nil or empty image.
func NewImage(img image.Image) *Image {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	return &Image{img: img, id: nextImageID.Add(1)}
}

// Image returns the pixels.
func (i *Image) Image() image.Image { return i.img }

// UniqueID identifies the image within this process.
func (i *Image) UniqueID() uint32 { return i.id }

func (i *Image) Width() int32  { return int32(i.img.Bounds().Dx()) }  // #nosec G115
func (i *Image) Height() int32 { return int32(i.img.Bounds().Dy()) } // #nosec G115

// Bounds returns the image rect at the origin.
func (i *Image) Bounds() Rect {
	return MakeRectWH(float32(i.Width()), float32(i.Height()))
}

// ColorType reports the closest ColorType of the backing store.
func (i *Image) ColorType() ColorType {
	switch i.img.(type) {
	case *image.Alpha:
		return ColorTypeAlpha8
	default:
		return ColorTypeRGBA8888
	}
}

// AlphaType reports the alpha storage of the backing store.
func (i *Image) AlphaType() AlphaType {
	switch i.img.(type) {
	case *image.RGBA, *image.RGBA64:
		return AlphaTypePremul
	case *image.Gray, *image.YCbCr, *image.Gray16:
		return AlphaTypeOpaque
	default:
		return AlphaTypeUnpremul
	}
}

// Serialize encodes the image as PNG.
func (i *Image) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, i.img); err != nil {
		return nil, fmt.Errorf("drawing: encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeImage decodes PNG, JPEG, BMP, TIFF or WebP data.
func DeserializeImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing: decode image: %w", ErrEmptyData)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("drawing: decode image: %w", err)
	}
	out := NewImage(img)
	if out == nil {
		return nil, fmt.Errorf("drawing: decode image: %w", ErrEmptyData)
	}
	return out, nil
}
