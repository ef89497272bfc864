// Package canvastest provides a drawing.Canvas that logs every call.
package canvastest

import (
	"fmt"
	"strings"

	"github.com/gogpu/drawing"
)

// Canvas records each call as a formatted string, for example
// "ClipRect({10 10 50 50}, Intersect, true)".
type Canvas struct {
	Calls []string

	DrawingType  drawing.DrawingType
	HighContrast bool
	CacheType    drawing.CacheType
	ClipBounds   drawing.RectI
	Surface      drawing.Surface

	matrix drawing.Matrix
	stack  []drawing.Matrix
}

var _ drawing.Canvas = (*Canvas)(nil)

// New returns a common canvas with the given device clip size.
func New(width, height int32) *Canvas {
	return &Canvas{
		DrawingType: drawing.DrawingTypeCommon,
		ClipBounds:  drawing.MakeRectIXYWH(0, 0, width, height),
		matrix:      drawing.IdentityMatrix(),
	}
}

func (c *Canvas) log(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

// DrawCalls returns the calls other than paint attach and detach.
func (c *Canvas) DrawCalls() []string {
	var out []string
	for _, call := range c.Calls {
		if strings.HasPrefix(call, "Attach") || strings.HasPrefix(call, "Detach") {
			continue
		}
		out = append(out, call)
	}
	return out
}

// Count returns how many calls start with name followed by "(".
func (c *Canvas) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, name+"(") {
			n++
		}
	}
	return n
}

// Reset forgets the logged calls.
func (c *Canvas) Reset() { c.Calls = c.Calls[:0] }

func (c *Canvas) GetDrawingType() drawing.DrawingType { return c.DrawingType }
func (c *Canvas) IsHighContrastEnabled() bool         { return c.HighContrast }
func (c *Canvas) GetCacheType() drawing.CacheType     { return c.CacheType }
func (c *Canvas) GetSurface() drawing.Surface         { return c.Surface }
func (c *Canvas) GetDeviceClipBounds() drawing.RectI  { return c.ClipBounds }
func (c *Canvas) GetTotalMatrix() drawing.Matrix      { return c.matrix }
func (c *Canvas) GetSaveCount() int                   { return len(c.stack) + 1 }

func (c *Canvas) DrawPoint(p drawing.Point) { c.log("DrawPoint(%v)", p) }
func (c *Canvas) DrawPoints(mode drawing.PointMode, pts []drawing.Point) {
	c.log("DrawPoints(%d, %v)", mode, pts)
}
func (c *Canvas) DrawLine(p1, p2 drawing.Point)       { c.log("DrawLine(%v, %v)", p1, p2) }
func (c *Canvas) DrawRect(r drawing.Rect)             { c.log("DrawRect(%v)", r) }
func (c *Canvas) DrawRoundRect(rr drawing.RoundRect)  { c.log("DrawRoundRect(%v)", rr) }
func (c *Canvas) DrawNestedRoundRect(o, i drawing.RoundRect) {
	c.log("DrawNestedRoundRect(%v, %v)", o, i)
}
func (c *Canvas) DrawArc(oval drawing.Rect, start, sweep float32) {
	c.log("DrawArc(%v, %g, %g)", oval, start, sweep)
}
func (c *Canvas) DrawPie(oval drawing.Rect, start, sweep float32) {
	c.log("DrawPie(%v, %g, %g)", oval, start, sweep)
}
func (c *Canvas) DrawOval(oval drawing.Rect)              { c.log("DrawOval(%v)", oval) }
func (c *Canvas) DrawCircle(p drawing.Point, r float32)   { c.log("DrawCircle(%v, %g)", p, r) }
func (c *Canvas) DrawPath(path *drawing.Path)             { c.log("DrawPath(%d)", verbs(path)) }
func (c *Canvas) DrawBackground(brush drawing.Brush)      { c.log("DrawBackground(%v)", brush.Color) }
func (c *Canvas) DrawColor(col drawing.Color, mode drawing.BlendMode) {
	c.log("DrawColor(%v, %v)", col, mode)
}

func (c *Canvas) DrawShadow(path *drawing.Path, plane, light drawing.Point3, radius float32,
	ambient, spot drawing.Color, flag drawing.ShadowFlags) {
	c.log("DrawShadow(%d, %v, %v, %g, %v, %v, %d)", verbs(path), plane, light, radius, ambient, spot, flag)
}

func (c *Canvas) DrawRegion(region *drawing.Region) {
	var rects []drawing.RectI
	if region != nil {
		rects = region.Rects()
	}
	c.log("DrawRegion(%v)", rects)
}

func (c *Canvas) DrawPatch(cubics *[12]drawing.Point, colors *[4]drawing.Color, tex *[4]drawing.Point,
	mode drawing.BlendMode) {
	c.log("DrawPatch(%t, %t, %t, %v)", cubics != nil, colors != nil, tex != nil, mode)
}

func (c *Canvas) DrawVertices(v *drawing.Vertices, mode drawing.BlendMode) {
	n := 0
	if v != nil {
		n = len(v.Positions)
	}
	c.log("DrawVertices(%d, %v)", n, mode)
}

func (c *Canvas) DrawImageNine(img *drawing.Image, center drawing.RectI, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) {
	c.log("DrawImageNine(%s, %v, %v, %d, %t)", imageSize(img), center, dst, filter, brush != nil)
}

func (c *Canvas) DrawImageLattice(img *drawing.Image, lattice drawing.Lattice, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) {
	c.log("DrawImageLattice(%s, %v, %v, %v, %d, %t)", imageSize(img), lattice.XDivs, lattice.YDivs,
		dst, filter, brush != nil)
}

func (c *Canvas) DrawBitmap(bmp *drawing.Bitmap, px, py float32) {
	w, h := int32(0), int32(0)
	if bmp != nil {
		w, h = bmp.Width(), bmp.Height()
	}
	c.log("DrawBitmap(%dx%d, %g, %g)", w, h, px, py)
}

func (c *Canvas) DrawImage(img *drawing.Image, px, py float32, sampling drawing.SamplingOptions) {
	c.log("DrawImage(%s, %g, %g, %v)", imageSize(img), px, py, sampling)
}

func (c *Canvas) DrawImageRect(img *drawing.Image, src, dst drawing.Rect, sampling drawing.SamplingOptions,
	constraint drawing.SrcRectConstraint) {
	c.log("DrawImageRect(%s, %v, %v, %v, %d)", imageSize(img), src, dst, sampling, constraint)
}

func (c *Canvas) DrawPixelMapRect(pm *drawing.PixelMap, src, dst drawing.Rect, sampling drawing.SamplingOptions) {
	w, h := int32(0), int32(0)
	if pm != nil {
		w, h = pm.Width(), pm.Height()
	}
	c.log("DrawPixelMapRect(%dx%d, %v, %v, %v)", w, h, src, dst, sampling)
}

func (c *Canvas) DrawPicture(p *drawing.Picture) {
	n := 0
	if p != nil {
		n = len(p.Serialize())
	}
	c.log("DrawPicture(%d)", n)
}

func (c *Canvas) DrawTextBlob(blob *drawing.TextBlob, x, y float32) {
	s := ""
	if blob != nil {
		s = blob.Text()
	}
	c.log("DrawTextBlob(%q, %g, %g)", s, x, y)
}

func (c *Canvas) ClipRect(r drawing.Rect, op drawing.ClipOp, aa bool) {
	c.log("ClipRect(%v, %v, %t)", r, op, aa)
}
func (c *Canvas) ClipIRect(r drawing.RectI, op drawing.ClipOp) { c.log("ClipIRect(%v, %v)", r, op) }
func (c *Canvas) ClipRoundRect(rr drawing.RoundRect, op drawing.ClipOp, aa bool) {
	c.log("ClipRoundRect(%v, %v, %t)", rr, op, aa)
}
func (c *Canvas) ClipPath(path *drawing.Path, op drawing.ClipOp, aa bool) {
	c.log("ClipPath(%d, %v, %t)", verbs(path), op, aa)
}
func (c *Canvas) ClipRegion(region *drawing.Region, op drawing.ClipOp) {
	var rects []drawing.RectI
	if region != nil {
		rects = region.Rects()
	}
	c.log("ClipRegion(%v, %v)", rects, op)
}

func (c *Canvas) SetMatrix(m drawing.Matrix) {
	c.matrix = m
	c.log("SetMatrix(%v)", m)
}

func (c *Canvas) ResetMatrix() {
	c.matrix = drawing.IdentityMatrix()
	c.log("ResetMatrix()")
}

func (c *Canvas) ConcatMatrix(m drawing.Matrix) {
	c.matrix = c.matrix.Concat(m)
	c.log("ConcatMatrix(%v)", m)
}

func (c *Canvas) Translate(dx, dy float32) {
	c.matrix = c.matrix.Concat(drawing.TranslateMatrix(dx, dy))
	c.log("Translate(%g, %g)", dx, dy)
}

func (c *Canvas) Scale(sx, sy float32) {
	c.matrix = c.matrix.Concat(drawing.ScaleMatrix(sx, sy))
	c.log("Scale(%g, %g)", sx, sy)
}

func (c *Canvas) Rotate(deg, sx, sy float32) {
	c.matrix = c.matrix.Concat(drawing.RotateMatrix(deg, sx, sy))
	c.log("Rotate(%g, %g, %g)", deg, sx, sy)
}

func (c *Canvas) Shear(sx, sy float32) {
	c.matrix = c.matrix.Concat(drawing.ShearMatrix(sx, sy))
	c.log("Shear(%g, %g)", sx, sy)
}

func (c *Canvas) Flush()                  { c.log("Flush()") }
func (c *Canvas) Clear(col drawing.Color) { c.log("Clear(%v)", col) }
func (c *Canvas) Discard()                { c.log("Discard()") }

func (c *Canvas) Save() int {
	n := c.GetSaveCount()
	c.stack = append(c.stack, c.matrix)
	c.log("Save()")
	return n
}

func (c *Canvas) SaveLayer(ops drawing.SaveLayerOps) {
	c.stack = append(c.stack, c.matrix)
	var bounds any = "nil"
	if ops.Bounds != nil {
		bounds = *ops.Bounds
	}
	c.log("SaveLayer(%v, %t, %d)", bounds, ops.Brush != nil, ops.Flags)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.matrix = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
	c.log("Restore()")
}

func (c *Canvas) AttachPen(pen drawing.Pen)         { c.log("AttachPen(%v, %g)", pen.Color, pen.Width) }
func (c *Canvas) AttachBrush(brush drawing.Brush)   { c.log("AttachBrush(%v)", brush.Color) }
func (c *Canvas) AttachPaint(paint drawing.Paint)   { c.log("AttachPaint(%v, %v)", paint.Color, paint.Style) }
func (c *Canvas) DetachPen()                        { c.log("DetachPen()") }
func (c *Canvas) DetachBrush()                      { c.log("DetachBrush()") }
func (c *Canvas) DetachPaint()                      { c.log("DetachPaint()") }

func verbs(p *drawing.Path) int {
	if p == nil {
		return 0
	}
	return p.CountVerbs()
}

func imageSize(img *drawing.Image) string {
	if img == nil {
		return "nil"
	}
	return fmt.Sprintf("%dx%d", img.Width(), img.Height())
}
