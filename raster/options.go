package raster

import (
	"image"

	"github.com/gogpu/gg/text"
)

// Option configures a Canvas.
type Option func(*options)

type options struct {
	image    image.Image
	fallback *text.FontSource
}

// WithImage draws on a copy of img instead of a transparent canvas. The
// canvas takes the size of img.
func WithImage(img image.Image) Option {
	return func(o *options) {
		o.image = img
	}
}

// WithFontSource sets the font used for text blobs whose typeface cannot
// be parsed.
func WithFontSource(src *text.FontSource) Option {
	return func(o *options) {
		o.fallback = src
	}
}
