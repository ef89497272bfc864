package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// Repeat modes of AdaptiveImageInfo.RepeatNum.
const (
	imageRepeatNone int32 = iota
	imageRepeatX
	imageRepeatY
	imageRepeatXY
)

const adaptiveInfoSize = 56

func writeAdaptiveInfo(w *binio.Writer, info drawing.AdaptiveImageInfo) {
	w.I32(info.FitNum)
	w.I32(info.RepeatNum)
	for _, p := range info.Radius {
		writePoint(w, p)
	}
	w.F32(info.Scale)
	w.U32(info.UniqueID)
	w.I32(info.Width)
	w.I32(info.Height)
}

func readAdaptiveInfo(r *binio.Reader) drawing.AdaptiveImageInfo {
	var info drawing.AdaptiveImageInfo
	info.FitNum = r.I32()
	info.RepeatNum = r.I32()
	for i := range info.Radius {
		info.Radius[i] = readPoint(r)
	}
	info.Scale = r.F32()
	info.UniqueID = r.U32()
	info.Width = r.I32()
	info.Height = r.I32()
	return info
}

// fitRect places a w x h image inside bounds according to fit.
func fitRect(bounds drawing.Rect, w, h float32, fit int32) drawing.Rect {
	bw, bh := bounds.Width(), bounds.Height()
	var dw, dh float32
	switch fit {
	case drawing.ImageFitFill:
		return bounds
	case drawing.ImageFitContain, drawing.ImageFitCover:
		sx, sy := bw/w, bh/h
		s := min(sx, sy)
		if fit == drawing.ImageFitCover {
			s = max(sx, sy)
		}
		dw, dh = w*s, h*s
	default:
		dw, dh = w, h
	}
	return drawing.MakeRectXYWH(bounds.Left+(bw-dw)/2, bounds.Top+(bh-dh)/2, dw, dh)
}

// drawAdaptiveImage draws img into bounds using the fit, repeat and corner
// radii of info. The attached paint stays in effect.
func drawAdaptiveImage(canvas drawing.Canvas, bounds drawing.Rect, img *drawing.Image,
	info drawing.AdaptiveImageInfo, sampling drawing.SamplingOptions) {
	if !bounds.IsValid() {
		return
	}
	w, h := float32(img.Width()), float32(img.Height())
	if info.Scale > 0 && info.FitNum == drawing.ImageFitNone {
		w, h = w*info.Scale, h*info.Scale
	}
	if w <= 0 || h <= 0 {
		return
	}

	canvas.Save()
	defer canvas.Restore()
	canvas.ClipRoundRect(drawing.RoundRect{Rect: bounds, Radii: info.Radius}, drawing.ClipIntersect, true)

	src := img.Bounds()
	dst := fitRect(bounds, w, h, info.FitNum)
	if info.RepeatNum == imageRepeatNone {
		canvas.DrawImageRect(img, src, dst, sampling, drawing.FastSrcRectConstraint)
		return
	}

	x0, x1 := dst.Left, dst.Left
	y0, y1 := dst.Top, dst.Top
	if info.RepeatNum == imageRepeatX || info.RepeatNum == imageRepeatXY {
		x0, x1 = tileStart(dst.Left, bounds.Left, dst.Width()), bounds.Right
	}
	if info.RepeatNum == imageRepeatY || info.RepeatNum == imageRepeatXY {
		y0, y1 = tileStart(dst.Top, bounds.Top, dst.Height()), bounds.Bottom
	}
	for y := y0; y <= y1; y += dst.Height() {
		for x := x0; x <= x1; x += dst.Width() {
			tile := drawing.MakeRectXYWH(x, y, dst.Width(), dst.Height())
			if _, ok := tile.Intersect(bounds); ok {
				canvas.DrawImageRect(img, src, tile, sampling, drawing.FastSrcRectConstraint)
			}
			if x1 == x0 {
				break
			}
		}
		if y1 == y0 {
			break
		}
	}
}

// tileStart returns the first tile origin at or before edge in the grid
// anchored at anchor with the given step.
func tileStart(anchor, edge, step float32) float32 {
	for anchor > edge {
		anchor -= step
	}
	return anchor
}
