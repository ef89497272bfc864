package drawing

import (
	"image"
	"image/color"
)

// Bitmap is a mutable block of pixels in a known ColorType.
type Bitmap struct {
	width, height int32
	colorType     ColorType
	alphaType     AlphaType
	pixels        []byte
}

// Build allocates zeroed pixels. It fails for unknown color types or
// non-positive sizes.
func (b *Bitmap) Build(width, height int32, ct ColorType, at AlphaType) bool {
	bpp := ct.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 {
		return false
	}
	b.width, b.height, b.colorType, b.alphaType = width, height, ct, at
	b.pixels = make([]byte, int(width)*int(height)*bpp)
	return true
}

func (b *Bitmap) Width() int32         { return b.width }
func (b *Bitmap) Height() int32        { return b.height }
func (b *Bitmap) ColorType() ColorType { return b.colorType }
func (b *Bitmap) AlphaType() AlphaType { return b.alphaType }

// RowBytes is the stride of one row.
func (b *Bitmap) RowBytes() int { return int(b.width) * b.colorType.BytesPerPixel() }

// ComputeByteSize is the size of the pixel buffer.
func (b *Bitmap) ComputeByteSize() int { return b.RowBytes() * int(b.height) }

// Pixels returns the pixel buffer. It aliases the bitmap.
func (b *Bitmap) Pixels() []byte { return b.pixels }

// IsValid reports whether the bitmap has pixels.
func (b *Bitmap) IsValid() bool { return b != nil && len(b.pixels) > 0 }

// SetPixels copies p into the bitmap. It fails when the size does not match.
func (b *Bitmap) SetPixels(p []byte) bool {
	if len(p) != b.ComputeByteSize() || len(p) == 0 {
		return false
	}
	copy(b.pixels, p)
	return true
}

// BitmapFromImage copies img into an unpremultiplied RGBA8888 bitmap.
func BitmapFromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	b := &Bitmap{}
	if !b.Build(int32(r.Dx()), int32(r.Dy()), ColorTypeRGBA8888, AlphaTypeUnpremul) { // #nosec G115
		return nil
	}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			b.pixels[i], b.pixels[i+1], b.pixels[i+2], b.pixels[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return b
}

// Image converts the bitmap to a standard library image.
func (b *Bitmap) Image() image.Image {
	if !b.IsValid() {
		return nil
	}
	w, h := int(b.width), int(b.height)
	rect := image.Rect(0, 0, w, h)
	switch b.colorType {
	case ColorTypeAlpha8:
		return &image.Alpha{Pix: append([]byte(nil), b.pixels...), Stride: w, Rect: rect}
	case ColorTypeRGBA8888, ColorTypeN32:
		if b.alphaType == AlphaTypePremul {
			return &image.RGBA{Pix: append([]byte(nil), b.pixels...), Stride: w * 4, Rect: rect}
		}
		return &image.NRGBA{Pix: append([]byte(nil), b.pixels...), Stride: w * 4, Rect: rect}
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, y, b.pixelAt(x, y))
		}
	}
	return out
}

func (b *Bitmap) pixelAt(x, y int) color.NRGBA {
	bpp := b.colorType.BytesPerPixel()
	p := b.pixels[(y*int(b.width)+x)*bpp:]
	switch b.colorType {
	case ColorTypeBGRA8888:
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	case ColorTypeRGB565:
		v := uint16(p[0]) | uint16(p[1])<<8
		r, g, bl := uint8(v>>11&0x1F), uint8(v>>5&0x3F), uint8(v&0x1F)
		return color.NRGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: bl<<3 | bl>>2, A: 0xFF}
	case ColorTypeARGB4444:
		v := uint16(p[0]) | uint16(p[1])<<8
		a, r, g, bl := uint8(v>>12&0xF), uint8(v>>8&0xF), uint8(v>>4&0xF), uint8(v&0xF)
		return color.NRGBA{R: r * 0x11, G: g * 0x11, B: bl * 0x11, A: a * 0x11}
	}
	return color.NRGBA{}
}
