package raster

import (
	"image"
	"io"

	"github.com/gogpu/drawing"
	xdraw "golang.org/x/image/draw"
)

// Surface owns a raster Canvas and exposes snapshots of its pixels.
type Surface struct {
	canvas *Canvas
	opts   []Option
}

var _ drawing.Surface = (*Surface)(nil)

// NewSurface returns a surface of the given size, or nil when either
// dimension is not positive.
func NewSurface(width, height int, opts ...Option) *Surface {
	if width <= 0 || height <= 0 {
		return nil
	}
	s := &Surface{canvas: NewCanvas(width, height, opts...), opts: opts}
	s.canvas.surface = s
	return s
}

// Canvas returns the raster canvas drawing into the surface.
func (s *Surface) Canvas() *Canvas { return s.canvas }

func (s *Surface) GetCanvas() drawing.Canvas { return s.canvas }

func (s *Surface) Width() int  { return s.canvas.width }
func (s *Surface) Height() int { return s.canvas.height }

// GetImageSnapshot copies the current pixels into an image. Later drawing
// does not affect the snapshot.
func (s *Surface) GetImageSnapshot() *drawing.Image {
	src := s.canvas.Image()
	dst := image.NewNRGBA(image.Rect(0, 0, s.canvas.width, s.canvas.height))
	xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
	return drawing.NewImage(dst)
}

// MakeSurface returns an empty surface with the same font fallback.
func (s *Surface) MakeSurface(width, height int) drawing.Surface {
	var opts []Option
	for _, o := range s.opts {
		var peek options
		o(&peek)
		if peek.image == nil {
			opts = append(opts, o)
		}
	}
	ns := NewSurface(width, height, opts...)
	if ns == nil {
		return nil
	}
	return ns
}

// EncodePNG writes the surface pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.canvas.EncodePNG(w) }
