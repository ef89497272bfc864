package raster

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/drawing"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
)

// Canvas rasterizes draw calls into pixels using gg.Context.
//
// Fill calls use the attached brush and stroke calls the attached pen; a
// call with both attached fills first, then strokes. Shapes drawn with
// nothing attached are skipped. Images and text fall back to an opaque
// fill when nothing is attached.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	ctx           *gg.Context
	width, height int

	// Current paint state
	brush *drawing.Brush
	pen   *drawing.Pen

	// Current transform and clip, mirrored into ctx
	matrix drawing.Matrix
	clip   drawing.RectI
	stack  []canvasState

	fallback     *text.FontSource
	surface      *Surface
	highContrast bool
	cacheType    drawing.CacheType
}

type canvasState struct {
	matrix drawing.Matrix
	clip   drawing.RectI
	layer  bool
}

var _ drawing.Canvas = (*Canvas)(nil)

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var ctx *gg.Context
	if o.image != nil {
		ctx = gg.NewContextForImage(o.image)
		width, height = ctx.Width(), ctx.Height()
	} else {
		ctx = gg.NewContext(width, height)
	}

	return &Canvas{
		ctx:      ctx,
		width:    width,
		height:   height,
		matrix:   drawing.IdentityMatrix(),
		clip:     drawing.MakeRectIXYWH(0, 0, int32(width), int32(height)), // #nosec G115
		stack:    make([]canvasState, 0, 8),
		fallback: o.fallback,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Image returns the rendered pixels.
func (c *Canvas) Image() image.Image { return c.ctx.Image() }

// EncodePNG writes the rendered pixels as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.ctx.EncodePNG(w) }

// SavePNG writes the rendered pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.ctx.SavePNG(path) }

// SetHighContrast sets what IsHighContrastEnabled reports.
func (c *Canvas) SetHighContrast(enabled bool) { c.highContrast = enabled }

// SetCacheType sets what GetCacheType reports.
func (c *Canvas) SetCacheType(t drawing.CacheType) { c.cacheType = t }

func (c *Canvas) GetDrawingType() drawing.DrawingType { return drawing.DrawingTypeCommon }
func (c *Canvas) IsHighContrastEnabled() bool         { return c.highContrast }
func (c *Canvas) GetCacheType() drawing.CacheType     { return c.cacheType }
func (c *Canvas) GetDeviceClipBounds() drawing.RectI  { return c.clip }
func (c *Canvas) GetTotalMatrix() drawing.Matrix      { return c.matrix }
func (c *Canvas) GetSaveCount() int                   { return len(c.stack) + 1 }

// GetSurface returns the surface owning the canvas, or nil for a
// standalone canvas.
func (c *Canvas) GetSurface() drawing.Surface {
	if c.surface == nil {
		return nil
	}
	return c.surface
}

// setPath replaces the context path with p, mapped by the current matrix.
func (c *Canvas) setPath(p *drawing.Path) {
	c.ctx.ClearPath()
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			c.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			c.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			c.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			c.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			c.ctx.ClosePath()
		}
	}
}

func (c *Canvas) fillPath(p *drawing.Path, col drawing.Color, shader *drawing.ShaderEffect) {
	c.setPath(p)
	c.ctx.SetFillBrush(ggBrush(col, shader))
	c.ctx.SetFillRule(ggFillRule(p.FillType()))
	if err := c.ctx.Fill(); err != nil {
		drawing.Logger().Debug("raster: fill failed", "err", err)
	}
}

func (c *Canvas) strokePath(p *drawing.Path, pen drawing.Pen) {
	c.setPath(p)
	c.ctx.SetStrokeBrush(ggBrush(pen.Color, pen.ShaderEffect))
	c.ctx.SetLineWidth(float64(max(pen.Width, 1)))
	c.ctx.SetLineCap(ggLineCap(pen.Cap))
	c.ctx.SetLineJoin(ggLineJoin(pen.Join))
	c.ctx.SetMiterLimit(float64(pen.MiterLimit))
	if dashes, phase, ok := dashPattern(pen.PathEffect); ok {
		c.ctx.SetDash(dashes...)
		c.ctx.SetDashOffset(phase)
	} else {
		c.ctx.ClearDash()
	}
	if err := c.ctx.Stroke(); err != nil {
		drawing.Logger().Debug("raster: stroke failed", "err", err)
	}
}

// paintPath fills p with the brush and strokes it with the pen.
func (c *Canvas) paintPath(p *drawing.Path) {
	if !p.IsValid() {
		return
	}
	if c.brush != nil {
		c.fillPath(p, c.brush.Color, c.brush.ShaderEffect)
	}
	if c.pen != nil {
		c.strokePath(p, *c.pen)
	}
}

// strokeOnly strokes p with the pen, or a hairline in the brush color.
func (c *Canvas) strokeOnly(p *drawing.Path) {
	switch {
	case c.pen != nil:
		c.strokePath(p, *c.pen)
	case c.brush != nil:
		pen := drawing.NewPen()
		pen.Color, pen.ShaderEffect = c.brush.Color, c.brush.ShaderEffect
		c.strokePath(p, pen)
	}
}

func (c *Canvas) DrawPoint(p drawing.Point) {
	c.DrawPoints(drawing.PointModePoints, []drawing.Point{p})
}

func (c *Canvas) DrawPoints(mode drawing.PointMode, pts []drawing.Point) {
	if len(pts) == 0 {
		return
	}
	switch mode {
	case drawing.PointModeLines:
		path := drawing.NewPath()
		for i := 0; i+1 < len(pts); i += 2 {
			path.MoveTo(pts[i].X, pts[i].Y)
			path.LineTo(pts[i+1].X, pts[i+1].Y)
		}
		c.strokeOnly(path)
	case drawing.PointModePolygon:
		path := drawing.NewPath()
		path.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			path.LineTo(p.X, p.Y)
		}
		c.strokeOnly(path)
	default:
		col, radius, ok := c.pointStyle()
		if !ok {
			return
		}
		path := drawing.NewPath()
		for _, p := range pts {
			path.AddCircle(p.X, p.Y, radius)
		}
		c.fillPath(path, col, nil)
	}
}

// pointStyle returns the color and radius of points.
func (c *Canvas) pointStyle() (drawing.Color, float32, bool) {
	switch {
	case c.pen != nil:
		return c.pen.Color, max(c.pen.Width, 1) / 2, true
	case c.brush != nil:
		return c.brush.Color, 0.5, true
	}
	return 0, 0, false
}

func (c *Canvas) DrawLine(p1, p2 drawing.Point) {
	path := drawing.NewPath()
	path.MoveTo(p1.X, p1.Y)
	path.LineTo(p2.X, p2.Y)
	c.strokeOnly(path)
}

func (c *Canvas) DrawRect(r drawing.Rect) {
	path := drawing.NewPath()
	path.AddRect(r)
	c.paintPath(path)
}

func (c *Canvas) DrawRoundRect(rr drawing.RoundRect) {
	path := drawing.NewPath()
	path.AddRoundRect(rr)
	c.paintPath(path)
}

func (c *Canvas) DrawNestedRoundRect(outer, inner drawing.RoundRect) {
	path := drawing.NewPath()
	path.AddRoundRect(outer)
	path.AddRoundRect(inner)
	path.SetFillType(drawing.PathFillEvenOdd)
	c.paintPath(path)
}

func (c *Canvas) DrawArc(oval drawing.Rect, startAngle, sweepAngle float32) {
	path := drawing.NewPath()
	path.AddArc(oval, startAngle, sweepAngle)
	c.paintPath(path)
}

func (c *Canvas) DrawPie(oval drawing.Rect, startAngle, sweepAngle float32) {
	path := drawing.NewPath()
	path.MoveTo((oval.Left+oval.Right)/2, (oval.Top+oval.Bottom)/2)
	path.AddArc(oval, startAngle, sweepAngle)
	path.Close()
	c.paintPath(path)
}

func (c *Canvas) DrawOval(oval drawing.Rect) {
	path := drawing.NewPath()
	path.AddOval(oval)
	c.paintPath(path)
}

func (c *Canvas) DrawCircle(center drawing.Point, radius float32) {
	path := drawing.NewPath()
	path.AddCircle(center.X, center.Y, radius)
	c.paintPath(path)
}

func (c *Canvas) DrawPath(path *drawing.Path) {
	if path == nil {
		return
	}
	c.paintPath(path)
}

// deviceRect returns the device bounds mapped back to user space.
func (c *Canvas) deviceRect() *drawing.Path {
	path := drawing.NewPath()
	inv, ok := c.matrix.Invert()
	if !ok {
		return path
	}
	w, h := float32(c.width), float32(c.height)
	corners := [4]drawing.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	for i, p := range corners {
		p = inv.MapPoint(p)
		if i == 0 {
			path.MoveTo(p.X, p.Y)
		} else {
			path.LineTo(p.X, p.Y)
		}
	}
	path.Close()
	return path
}

func (c *Canvas) DrawBackground(brush drawing.Brush) {
	c.fillPath(c.deviceRect(), brush.Color, brush.ShaderEffect)
}

// DrawShadow fills the occluder path with the ambient color, then with the
// spot color offset away from the light.
func (c *Canvas) DrawShadow(path *drawing.Path, planeParams, devLightPos drawing.Point3, lightRadius float32,
	ambientColor, spotColor drawing.Color, flag drawing.ShadowFlags) {
	if !path.IsValid() {
		return
	}
	if ambientColor.A() > 0 {
		c.fillPath(path, ambientColor, nil)
	}
	if spotColor.A() == 0 {
		return
	}
	z := planeParams.Z
	if devLightPos.Z <= z {
		c.fillPath(path, spotColor, nil)
		return
	}
	b := path.Bounds()
	scale := z / (devLightPos.Z - z)
	dx := ((b.Left+b.Right)/2 - devLightPos.X) * scale
	dy := ((b.Top+b.Bottom)/2 - devLightPos.Y) * scale
	c.Save()
	c.Translate(dx, dy)
	c.fillPath(path, spotColor, nil)
	c.Restore()
}

func (c *Canvas) DrawRegion(region *drawing.Region) {
	if region == nil || region.IsEmpty() {
		return
	}
	path := drawing.NewPath()
	for _, r := range region.Rects() {
		path.AddRect(r.Rect())
	}
	c.paintPath(path)
}

// DrawPatch fills the outline of a Coons patch with its mean corner color.
func (c *Canvas) DrawPatch(cubics *[12]drawing.Point, colors *[4]drawing.Color, _ *[4]drawing.Point,
	_ drawing.BlendMode) {
	if cubics == nil {
		return
	}
	path := drawing.NewPath()
	path.MoveTo(cubics[0].X, cubics[0].Y)
	for i := 1; i < 12; i += 3 {
		end := cubics[(i+2)%12]
		path.CubicTo(cubics[i].X, cubics[i].Y, cubics[i+1].X, cubics[i+1].Y, end.X, end.Y)
	}
	path.Close()

	if colors != nil {
		c.fillPath(path, meanColor(colors[:]), nil)
		return
	}
	if c.brush != nil {
		c.fillPath(path, c.brush.Color, c.brush.ShaderEffect)
	}
}

// DrawVertices fills each triangle of the mesh with its mean vertex color,
// or the brush when the mesh has no colors.
func (c *Canvas) DrawVertices(v *drawing.Vertices, _ drawing.BlendMode) {
	if v == nil || len(v.Positions) < 3 {
		return
	}
	if len(v.Colors) != len(v.Positions) && c.brush == nil {
		return
	}
	forEachTriangle(v, func(a, b, d int) {
		tri := drawing.NewPath()
		tri.MoveTo(v.Positions[a].X, v.Positions[a].Y)
		tri.LineTo(v.Positions[b].X, v.Positions[b].Y)
		tri.LineTo(v.Positions[d].X, v.Positions[d].Y)
		tri.Close()
		if len(v.Colors) == len(v.Positions) {
			c.fillPath(tri, meanColor([]drawing.Color{v.Colors[a], v.Colors[b], v.Colors[d]}), nil)
		} else {
			c.fillPath(tri, c.brush.Color, c.brush.ShaderEffect)
		}
	})
}

// forEachTriangle assembles the triangles of v by its mode.
func forEachTriangle(v *drawing.Vertices, fn func(a, b, c int)) {
	idx := make([]int, 0, len(v.Positions))
	if len(v.Indices) > 0 {
		for _, i := range v.Indices {
			if int(i) < len(v.Positions) {
				idx = append(idx, int(i))
			}
		}
	} else {
		for i := range v.Positions {
			idx = append(idx, i)
		}
	}

	switch v.Mode {
	case drawing.VertexModeTriangleStrip:
		for i := 2; i < len(idx); i++ {
			fn(idx[i-2], idx[i-1], idx[i])
		}
	case drawing.VertexModeTriangleFan:
		for i := 2; i < len(idx); i++ {
			fn(idx[0], idx[i-1], idx[i])
		}
	default:
		for i := 2; i < len(idx); i += 3 {
			fn(idx[i-2], idx[i-1], idx[i])
		}
	}
}

func meanColor(colors []drawing.Color) drawing.Color {
	var a, r, g, b int
	for _, col := range colors {
		a += int(col.A())
		r += int(col.R())
		g += int(col.G())
		b += int(col.B())
	}
	n := len(colors)
	return drawing.ColorFromARGB(uint8(a/n), uint8(r/n), uint8(g/n), uint8(b/n)) // #nosec G115
}

func (c *Canvas) DrawColor(col drawing.Color, mode drawing.BlendMode) {
	full := c.clip == drawing.MakeRectIXYWH(0, 0, int32(c.width), int32(c.height)) // #nosec G115
	switch {
	case mode == drawing.BlendClear && full:
		c.ctx.Clear()
	case mode == drawing.BlendSrc && full:
		c.ctx.ClearWithColor(col.RGBA())
	default:
		c.fillPath(c.deviceRect(), col, nil)
	}
}

func (c *Canvas) Clear(col drawing.Color) { c.ctx.ClearWithColor(col.RGBA()) }

func (c *Canvas) Flush() {
	if err := c.ctx.FlushGPU(); err != nil {
		drawing.Logger().Debug("raster: flush failed", "err", err)
	}
}

// Discard is a no-op; the canvas has no pending work to drop.
func (c *Canvas) Discard() {}

// imageAlpha returns the opacity images draw with.
func (c *Canvas) imageAlpha() float64 {
	switch {
	case c.brush != nil:
		return float64(c.brush.Color.A()) / 255
	case c.pen != nil:
		return float64(c.pen.Color.A()) / 255
	}
	return 1
}

// drawImage draws the src part of img into dst.
func (c *Canvas) drawImage(img image.Image, src, dst drawing.Rect, sampling drawing.SamplingOptions) {
	if img == nil || !src.IsValid() || !dst.IsValid() {
		return
	}
	srcRect := image.Rect(int(math.Floor(float64(src.Left))), int(math.Floor(float64(src.Top))),
		int(math.Ceil(float64(src.Right))), int(math.Ceil(float64(src.Bottom)))).Intersect(img.Bounds())
	if srcRect.Empty() {
		return
	}

	// Mipmapped downscales are prefiltered instead of bilinear sampled.
	scaleX := float64(dst.Width()) * math.Hypot(float64(c.matrix[drawing.ScaleX]), float64(c.matrix[drawing.SkewY]))
	scaleY := float64(dst.Height()) * math.Hypot(float64(c.matrix[drawing.SkewX]), float64(c.matrix[drawing.ScaleY]))
	if sampling.Mipmap != drawing.MipmapNone && (scaleX < float64(srcRect.Dx()) || scaleY < float64(srcRect.Dy())) {
		w, h := max(int(math.Ceil(scaleX)), 1), max(int(math.Ceil(scaleY)), 1)
		scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, srcRect, xdraw.Src, nil)
		img, srcRect = scaled, scaled.Bounds()
	}

	interp := gg.InterpBilinear
	if sampling.Filter == drawing.FilterNearest && sampling.Mipmap == drawing.MipmapNone {
		interp = gg.InterpNearest
	}
	c.ctx.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             float64(dst.Left),
		Y:             float64(dst.Top),
		DstWidth:      float64(dst.Width()),
		DstHeight:     float64(dst.Height()),
		SrcRect:       &srcRect,
		Interpolation: interp,
		Opacity:       c.imageAlpha(),
		BlendMode:     gg.BlendNormal,
	})
}

func (c *Canvas) DrawImage(img *drawing.Image, px, py float32, sampling drawing.SamplingOptions) {
	if img == nil {
		return
	}
	c.drawImage(img.Image(), img.Bounds(), img.Bounds().Offset(px, py), sampling)
}

func (c *Canvas) DrawImageRect(img *drawing.Image, src, dst drawing.Rect, sampling drawing.SamplingOptions,
	_ drawing.SrcRectConstraint) {
	if img == nil {
		return
	}
	c.drawImage(img.Image(), src, dst, sampling)
}

func (c *Canvas) DrawBitmap(bitmap *drawing.Bitmap, px, py float32) {
	if !bitmap.IsValid() {
		return
	}
	b := drawing.MakeRectWH(float32(bitmap.Width()), float32(bitmap.Height()))
	c.drawImage(bitmap.Image(), b, b.Offset(px, py), drawing.SamplingOptions{})
}

func (c *Canvas) DrawPixelMapRect(pm *drawing.PixelMap, src, dst drawing.Rect, sampling drawing.SamplingOptions) {
	if pm == nil {
		return
	}
	c.drawImage(pm.NRGBA(), src, dst, sampling)
}

func (c *Canvas) DrawImageNine(img *drawing.Image, center drawing.RectI, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) {
	lattice := drawing.Lattice{
		XDivs: []int32{center.Left, center.Right},
		YDivs: []int32{center.Top, center.Bottom},
	}
	c.DrawImageLattice(img, lattice, dst, filter, brush)
}

// DrawImageLattice stretches the odd rows and columns of the lattice and
// keeps the even ones at their natural size.
func (c *Canvas) DrawImageLattice(img *drawing.Image, lattice drawing.Lattice, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) {
	if img == nil || !dst.IsValid() {
		return
	}
	bounds := drawing.MakeRectIXYWH(0, 0, img.Width(), img.Height())
	if lattice.Bounds != nil {
		bounds = *lattice.Bounds
	}
	srcX, dstX := latticeAxis(lattice.XDivs, bounds.Left, bounds.Right, dst.Left, dst.Right)
	srcY, dstY := latticeAxis(lattice.YDivs, bounds.Top, bounds.Bottom, dst.Top, dst.Bottom)

	saved := c.brush
	if brush != nil {
		c.brush = brush
	}
	defer func() { c.brush = saved }()

	sampling := drawing.SamplingOptions{Filter: filter}
	cols := len(srcX) - 1
	for y := 0; y+1 < len(srcY); y++ {
		for x := 0; x < cols; x++ {
			cell := y*cols + x
			d := drawing.Rect{Left: dstX[x], Top: dstY[y], Right: dstX[x+1], Bottom: dstY[y+1]}
			kind := drawing.LatticeDefault
			if cell < len(lattice.RectTypes) {
				kind = lattice.RectTypes[cell]
			}
			switch kind {
			case drawing.LatticeTransparent:
			case drawing.LatticeFixedColor:
				if cell < len(lattice.Colors) {
					path := drawing.NewPath()
					path.AddRect(d)
					c.fillPath(path, lattice.Colors[cell], nil)
				}
			default:
				s := drawing.Rect{Left: srcX[x], Top: srcY[y], Right: srcX[x+1], Bottom: srcY[y+1]}
				c.drawImage(img.Image(), s, d, sampling)
			}
		}
	}
}

// latticeAxis returns matching source and destination cell edges along
// one axis.
func latticeAxis(divs []int32, srcStart, srcEnd int32, dstStart, dstEnd float32) ([]float32, []float32) {
	src := make([]float32, 0, len(divs)+2)
	src = append(src, float32(srcStart))
	for _, d := range divs {
		if d > srcStart && d < srcEnd {
			src = append(src, float32(d))
		}
	}
	src = append(src, float32(srcEnd))

	var fixed, stretch float32
	for i := 0; i+1 < len(src); i++ {
		if i%2 == 0 {
			fixed += src[i+1] - src[i]
		} else {
			stretch += src[i+1] - src[i]
		}
	}
	avail := dstEnd - dstStart
	fixedScale := float32(1)
	if fixed > avail && fixed > 0 {
		fixedScale = avail / fixed
	}
	stretchScale := float32(0)
	if stretch > 0 {
		stretchScale = max(avail-fixed*fixedScale, 0) / stretch
	}

	dst := make([]float32, len(src))
	dst[0] = dstStart
	for i := 0; i+1 < len(src); i++ {
		size := src[i+1] - src[i]
		if i%2 == 0 {
			size *= fixedScale
		} else {
			size *= stretchScale
		}
		dst[i+1] = dst[i] + size
	}
	return src, dst
}

func (c *Canvas) DrawPicture(picture *drawing.Picture) {
	if picture == nil {
		return
	}
	if err := picture.Playback(c); err != nil {
		drawing.Logger().Warn("raster: picture playback failed", "err", err)
	}
}

// DrawTextBlob draws the blob's text with its baseline origin at (x, y).
func (c *Canvas) DrawTextBlob(blob *drawing.TextBlob, x, y float32) {
	if blob == nil {
		return
	}
	font := blob.Font()
	var face text.Face
	if font.Typeface != nil {
		face = font.Typeface.Face(font.Size)
	}
	if face == nil && c.fallback != nil {
		face = c.fallback.Face(float64(font.Size))
	}
	if face == nil {
		drawing.Logger().Debug("raster: text blob has no usable face", "text", blob.Text())
		return
	}

	col := drawing.ColorBlack
	switch {
	case c.brush != nil:
		col = c.brush.Color
	case c.pen != nil:
		col = c.pen.Color
	}
	c.ctx.SetFont(face)
	c.ctx.SetFillBrush(gg.Solid(col.RGBA()))
	tx, ty := c.ctx.TransformPoint(float64(x), float64(y))
	c.ctx.DrawString(blob.Text(), tx, ty)
}

// intersectClip narrows the tracked device clip to the bounds of r.
func (c *Canvas) intersectClip(r drawing.Rect) {
	dev := c.matrix.MapRect(r).RoundOut()
	if clip, ok := c.clip.Intersect(dev); ok {
		c.clip = clip
	} else {
		c.clip = drawing.RectI{}
	}
}

// clipPath intersects the clip with p. Difference clips are not supported
// by gg and leave the clip unchanged.
func (c *Canvas) clipPath(p *drawing.Path, op drawing.ClipOp) {
	if op != drawing.ClipIntersect {
		drawing.Logger().Debug("raster: clip op not supported", "op", op)
		return
	}
	if !p.IsValid() {
		c.clip = drawing.RectI{}
		c.ctx.ClipRect(0, 0, 0, 0)
		return
	}
	c.intersectClip(p.Bounds())
	c.setPath(p)
	c.ctx.Clip()
}

func (c *Canvas) ClipRect(r drawing.Rect, op drawing.ClipOp, _ bool) {
	if op != drawing.ClipIntersect {
		drawing.Logger().Debug("raster: clip op not supported", "op", op)
		return
	}
	c.intersectClip(r)
	c.ctx.ClipRect(float64(r.Left), float64(r.Top), float64(r.Width()), float64(r.Height()))
}

func (c *Canvas) ClipIRect(r drawing.RectI, op drawing.ClipOp) {
	c.ClipRect(r.Rect(), op, false)
}

func (c *Canvas) ClipRoundRect(rr drawing.RoundRect, op drawing.ClipOp, _ bool) {
	path := drawing.NewPath()
	path.AddRoundRect(rr)
	c.clipPath(path, op)
}

func (c *Canvas) ClipPath(path *drawing.Path, op drawing.ClipOp, _ bool) {
	c.clipPath(path, op)
}

func (c *Canvas) ClipRegion(region *drawing.Region, op drawing.ClipOp) {
	if region == nil {
		return
	}
	path := drawing.NewPath()
	for _, r := range region.Rects() {
		path.AddRect(r.Rect())
	}
	c.clipPath(path, op)
}

func (c *Canvas) setMatrix(m drawing.Matrix) {
	c.matrix = m
	c.ctx.SetTransform(m.GG())
}

func (c *Canvas) SetMatrix(m drawing.Matrix)    { c.setMatrix(m) }
func (c *Canvas) ResetMatrix()                  { c.setMatrix(drawing.IdentityMatrix()) }
func (c *Canvas) ConcatMatrix(m drawing.Matrix) { c.setMatrix(c.matrix.Concat(m)) }

func (c *Canvas) Translate(dx, dy float32) {
	c.setMatrix(c.matrix.Concat(drawing.TranslateMatrix(dx, dy)))
}

func (c *Canvas) Scale(sx, sy float32) {
	c.setMatrix(c.matrix.Concat(drawing.ScaleMatrix(sx, sy)))
}

func (c *Canvas) Rotate(deg, sx, sy float32) {
	c.setMatrix(c.matrix.Concat(drawing.RotateMatrix(deg, sx, sy)))
}

func (c *Canvas) Shear(sx, sy float32) {
	c.setMatrix(c.matrix.Concat(drawing.ShearMatrix(sx, sy)))
}

// Save pushes the transform and clip and returns the save count before
// the call.
func (c *Canvas) Save() int {
	n := c.GetSaveCount()
	c.stack = append(c.stack, canvasState{matrix: c.matrix, clip: c.clip})
	c.ctx.Push()
	return n
}

// SaveLayer starts an offscreen layer composited on Restore with the
// brush's alpha and blend mode.
func (c *Canvas) SaveLayer(ops drawing.SaveLayerOps) {
	c.stack = append(c.stack, canvasState{matrix: c.matrix, clip: c.clip, layer: true})
	c.ctx.Push()
	if ops.Bounds != nil {
		c.ClipRect(*ops.Bounds, drawing.ClipIntersect, false)
	}
	mode, opacity := gg.BlendNormal, 1.0
	if ops.Brush != nil {
		mode = ggBlend(ops.Brush.BlendMode)
		opacity = float64(ops.Brush.Color.A()) / 255
	}
	c.ctx.PushLayer(mode, opacity)
}

// Restore pops the most recent Save or SaveLayer. Extra calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if s.layer {
		c.ctx.PopLayer()
	}
	c.ctx.Pop()
	c.clip = s.clip
	c.setMatrix(s.matrix)
}

func (c *Canvas) AttachPen(pen drawing.Pen)       { c.pen = &pen }
func (c *Canvas) AttachBrush(brush drawing.Brush) { c.brush = &brush }

// AttachPaint attaches the halves of paint its style uses.
func (c *Canvas) AttachPaint(paint drawing.Paint) {
	c.brush, c.pen = nil, nil
	if paint.HasFill() {
		b := paint.Brush()
		c.brush = &b
	}
	if paint.HasStroke() {
		p := paint.Pen()
		c.pen = &p
	}
}

func (c *Canvas) DetachPen()   { c.pen = nil }
func (c *Canvas) DetachBrush() { c.brush = nil }
func (c *Canvas) DetachPaint() { c.brush, c.pen = nil, nil }
