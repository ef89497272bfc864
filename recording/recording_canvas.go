package recording

import "github.com/gogpu/drawing"

// RecordingCanvas captures canvas calls as ops in a DEFERRED DrawCmdList.
// It mirrors the drawing.Canvas API but records instead of rasterizing.
// Use GetDrawCmdList to obtain the list, which can then be played back to
// any canvas or marshalled for transport.
//
// Example:
//
//	rc := recording.NewRecordingCanvas(800, 600)
//	rc.AttachBrush(drawing.Brush{Color: drawing.ColorRed})
//	rc.DrawCircle(drawing.Pt(100, 100), 50)
//	rc.DetachBrush()
//	list := rc.GetDrawCmdList()
//
// A draw call records one op per attached paint: one for the brush and
// one for the pen. Shape calls with nothing attached record nothing.
// Image and text calls fall back to a default fill paint.
//
// The RecordingCanvas is not safe for concurrent use.
type RecordingCanvas struct {
	list          *DrawCmdList
	width, height int32

	// Current paint state
	brush *drawing.Brush
	pen   *drawing.Pen

	// Current transform and clip
	matrix drawing.Matrix
	clip   drawing.RectI

	// State stack
	stateStack []recordingState

	highContrast bool
	cacheType    drawing.CacheType
}

// recordingState stores the state for Save/Restore.
type recordingState struct {
	matrix drawing.Matrix
	clip   drawing.RectI
}

var _ drawing.Canvas = (*RecordingCanvas)(nil)

// NewRecordingCanvas creates a canvas recording into a new list of the
// given size.
func NewRecordingCanvas(width, height int32) *RecordingCanvas {
	return &RecordingCanvas{
		list:       NewDrawCmdList(width, height, UnmarshalModeDeferred),
		width:      width,
		height:     height,
		matrix:     drawing.IdentityMatrix(),
		clip:       drawing.MakeRectIXYWH(0, 0, width, height),
		stateStack: make([]recordingState, 0, 8),
	}
}

// GetDrawCmdList returns the list being recorded into.
func (c *RecordingCanvas) GetDrawCmdList() *DrawCmdList { return c.list }

// Reset drops everything recorded and starts over at the given size.
func (c *RecordingCanvas) Reset(width, height int32) {
	c.list = NewDrawCmdList(width, height, UnmarshalModeDeferred)
	c.width, c.height = width, height
	c.brush, c.pen = nil, nil
	c.matrix = drawing.IdentityMatrix()
	c.clip = drawing.MakeRectIXYWH(0, 0, width, height)
	c.stateStack = c.stateStack[:0]
}

// SetHighContrast sets what IsHighContrastEnabled reports.
func (c *RecordingCanvas) SetHighContrast(enabled bool) { c.highContrast = enabled }

// SetCacheType sets what GetCacheType reports.
func (c *RecordingCanvas) SetCacheType(t drawing.CacheType) { c.cacheType = t }

func (c *RecordingCanvas) GetDrawingType() drawing.DrawingType { return drawing.DrawingTypeRecording }
func (c *RecordingCanvas) IsHighContrastEnabled() bool         { return c.highContrast }
func (c *RecordingCanvas) GetCacheType() drawing.CacheType     { return c.cacheType }
func (c *RecordingCanvas) GetSurface() drawing.Surface         { return nil }
func (c *RecordingCanvas) GetDeviceClipBounds() drawing.RectI  { return c.clip }
func (c *RecordingCanvas) GetTotalMatrix() drawing.Matrix      { return c.matrix }
func (c *RecordingCanvas) GetSaveCount() int                   { return len(c.stateStack) + 1 }

func (c *RecordingCanvas) add(op DrawOpItem) { c.list.AddDrawOp(op) }

// addWithPaint records one op per attached paint.
func (c *RecordingCanvas) addWithPaint(build func(drawing.Paint) DrawOpItem) {
	if c.brush != nil {
		c.add(build(drawing.PaintFromBrush(*c.brush)))
	}
	if c.pen != nil {
		c.add(build(drawing.PaintFromPen(*c.pen)))
	}
}

// addWithPaintOrDefault is addWithPaint with a fill paint when nothing is
// attached.
func (c *RecordingCanvas) addWithPaintOrDefault(build func(drawing.Paint) DrawOpItem) {
	if c.brush == nil && c.pen == nil {
		p := drawing.NewPaint()
		p.AntiAlias = true
		c.add(build(p))
		return
	}
	c.addWithPaint(build)
}

func (c *RecordingCanvas) DrawPoint(p drawing.Point) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawPointOpItem(p, paint) })
}

func (c *RecordingCanvas) DrawPoints(mode drawing.PointMode, pts []drawing.Point) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawPointsOpItem(mode, pts, paint) })
}

func (c *RecordingCanvas) DrawLine(p1, p2 drawing.Point) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawLineOpItem(p1, p2, paint) })
}

func (c *RecordingCanvas) DrawRect(r drawing.Rect) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawRectOpItem(r, paint) })
}

func (c *RecordingCanvas) DrawRoundRect(rr drawing.RoundRect) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawRoundRectOpItem(rr, paint) })
}

func (c *RecordingCanvas) DrawNestedRoundRect(outer, inner drawing.RoundRect) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem {
		return NewDrawNestedRoundRectOpItem(outer, inner, paint)
	})
}

func (c *RecordingCanvas) DrawArc(oval drawing.Rect, startAngle, sweepAngle float32) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem {
		return NewDrawArcOpItem(oval, startAngle, sweepAngle, paint)
	})
}

func (c *RecordingCanvas) DrawPie(oval drawing.Rect, startAngle, sweepAngle float32) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem {
		return NewDrawPieOpItem(oval, startAngle, sweepAngle, paint)
	})
}

func (c *RecordingCanvas) DrawOval(oval drawing.Rect) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawOvalOpItem(oval, paint) })
}

func (c *RecordingCanvas) DrawCircle(center drawing.Point, radius float32) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawCircleOpItem(center, radius, paint) })
}

func (c *RecordingCanvas) DrawPath(path *drawing.Path) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawPathOpItem(path, paint) })
}

func (c *RecordingCanvas) DrawBackground(brush drawing.Brush) {
	c.add(NewDrawBackgroundOpItem(brush))
}

func (c *RecordingCanvas) DrawShadow(path *drawing.Path, planeParams, devLightPos drawing.Point3,
	lightRadius float32, ambientColor, spotColor drawing.Color, flag drawing.ShadowFlags) {
	c.add(NewDrawShadowOpItem(path, planeParams, devLightPos, lightRadius, ambientColor, spotColor, flag))
}

func (c *RecordingCanvas) DrawRegion(region *drawing.Region) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawRegionOpItem(region, paint) })
}

func (c *RecordingCanvas) DrawPatch(cubics *[12]drawing.Point, colors *[4]drawing.Color,
	texCoords *[4]drawing.Point, mode drawing.BlendMode) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem {
		return NewDrawPatchOpItem(cubics, colors, texCoords, mode, paint)
	})
}

func (c *RecordingCanvas) DrawVertices(vertices *drawing.Vertices, mode drawing.BlendMode) {
	c.addWithPaint(func(paint drawing.Paint) DrawOpItem { return NewDrawVerticesOpItem(vertices, mode, paint) })
}

func (c *RecordingCanvas) DrawColor(color drawing.Color, mode drawing.BlendMode) {
	c.add(NewDrawColorOpItem(color, mode))
}

func (c *RecordingCanvas) DrawImageNine(img *drawing.Image, center drawing.RectI, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) {
	c.add(NewDrawImageNineOpItem(img, center, dst, filter, brush))
}

func (c *RecordingCanvas) DrawImageLattice(img *drawing.Image, lattice drawing.Lattice, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) {
	c.add(NewDrawImageLatticeOpItem(img, lattice, dst, filter, brush))
}

func (c *RecordingCanvas) DrawBitmap(bitmap *drawing.Bitmap, px, py float32) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem { return NewDrawBitmapOpItem(bitmap, px, py, paint) })
}

func (c *RecordingCanvas) DrawImage(img *drawing.Image, px, py float32, sampling drawing.SamplingOptions) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem {
		return NewDrawImageOpItem(img, px, py, sampling, paint)
	})
}

func (c *RecordingCanvas) DrawImageRect(img *drawing.Image, src, dst drawing.Rect,
	sampling drawing.SamplingOptions, constraint drawing.SrcRectConstraint) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem {
		return NewDrawImageRectOpItem(img, src, dst, sampling, constraint, paint)
	})
}

func (c *RecordingCanvas) DrawPixelMapRect(pm *drawing.PixelMap, src, dst drawing.Rect,
	sampling drawing.SamplingOptions) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem {
		return NewDrawExtendPixelMapOpItem(pm, src, dst, sampling, paint)
	})
}

func (c *RecordingCanvas) DrawPicture(picture *drawing.Picture) {
	c.add(NewDrawPictureOpItem(picture))
}

func (c *RecordingCanvas) DrawTextBlob(blob *drawing.TextBlob, x, y float32) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem { return NewDrawTextBlobOpItem(blob, x, y, paint) })
}

// DrawAdaptiveImage records an image fitted into the playback rect.
func (c *RecordingCanvas) DrawAdaptiveImage(img *drawing.Image, info drawing.AdaptiveImageInfo,
	sampling drawing.SamplingOptions) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem {
		return NewDrawAdaptiveImageOpItem(img, info, sampling, paint)
	})
}

// DrawAdaptivePixelMap records a pixel map fitted into the playback rect.
func (c *RecordingCanvas) DrawAdaptivePixelMap(pm *drawing.PixelMap, info drawing.AdaptiveImageInfo,
	sampling drawing.SamplingOptions) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem {
		return NewDrawAdaptivePixelMapOpItem(pm, info, sampling, paint)
	})
}

// DrawImageWithParm records an image object drawing itself into the
// playback rect.
func (c *RecordingCanvas) DrawImageWithParm(obj drawing.ImageObject, sampling drawing.SamplingOptions) {
	c.addWithPaintOrDefault(func(paint drawing.Paint) DrawOpItem {
		return NewDrawImageWithParmOpItem(obj, sampling, paint)
	})
}

// ClipAdaptiveRoundRect records a clip to the playback rect with the given
// corner radii.
func (c *RecordingCanvas) ClipAdaptiveRoundRect(radius []drawing.Point) {
	c.add(NewClipAdaptiveRoundRectOpItem(radius))
}

// intersectClip narrows the tracked device clip to the bounds of r.
func (c *RecordingCanvas) intersectClip(r drawing.Rect, op drawing.ClipOp) {
	if op != drawing.ClipIntersect {
		return
	}
	dev := c.matrix.MapRect(r).RoundOut()
	if clip, ok := c.clip.Intersect(dev); ok {
		c.clip = clip
	} else {
		c.clip = drawing.RectI{}
	}
}

func (c *RecordingCanvas) ClipRect(r drawing.Rect, op drawing.ClipOp, antiAlias bool) {
	c.intersectClip(r, op)
	c.add(NewClipRectOpItem(r, op, antiAlias))
}

func (c *RecordingCanvas) ClipIRect(r drawing.RectI, op drawing.ClipOp) {
	c.intersectClip(r.Rect(), op)
	c.add(NewClipIRectOpItem(r, op))
}

func (c *RecordingCanvas) ClipRoundRect(rr drawing.RoundRect, op drawing.ClipOp, antiAlias bool) {
	c.intersectClip(rr.Rect, op)
	c.add(NewClipRoundRectOpItem(rr, op, antiAlias))
}

func (c *RecordingCanvas) ClipPath(path *drawing.Path, op drawing.ClipOp, antiAlias bool) {
	if path != nil {
		c.intersectClip(path.Bounds(), op)
	}
	c.add(NewClipPathOpItem(path, op, antiAlias))
}

func (c *RecordingCanvas) ClipRegion(region *drawing.Region, op drawing.ClipOp) {
	if region != nil {
		c.intersectClip(region.Bounds().Rect(), op)
	}
	c.add(NewClipRegionOpItem(region, op))
}

func (c *RecordingCanvas) SetMatrix(m drawing.Matrix) {
	c.matrix = m
	c.add(NewSetMatrixOpItem(m))
}

func (c *RecordingCanvas) ResetMatrix() {
	c.matrix = drawing.IdentityMatrix()
	c.add(NewResetMatrixOpItem())
}

func (c *RecordingCanvas) ConcatMatrix(m drawing.Matrix) {
	c.matrix = c.matrix.Concat(m)
	c.add(NewConcatMatrixOpItem(m))
}

func (c *RecordingCanvas) Translate(dx, dy float32) {
	c.matrix = c.matrix.Concat(drawing.TranslateMatrix(dx, dy))
	c.add(NewTranslateOpItem(dx, dy))
}

func (c *RecordingCanvas) Scale(sx, sy float32) {
	c.matrix = c.matrix.Concat(drawing.ScaleMatrix(sx, sy))
	c.add(NewScaleOpItem(sx, sy))
}

func (c *RecordingCanvas) Rotate(deg, sx, sy float32) {
	c.matrix = c.matrix.Concat(drawing.RotateMatrix(deg, sx, sy))
	c.add(NewRotateOpItem(deg, sx, sy))
}

func (c *RecordingCanvas) Shear(sx, sy float32) {
	c.matrix = c.matrix.Concat(drawing.ShearMatrix(sx, sy))
	c.add(NewShearOpItem(sx, sy))
}

func (c *RecordingCanvas) Flush() { c.add(NewFlushOpItem()) }

func (c *RecordingCanvas) Clear(color drawing.Color) { c.add(NewClearOpItem(color)) }

// Save pushes the transform and clip and returns the save count before
// the call.
func (c *RecordingCanvas) Save() int {
	n := c.GetSaveCount()
	c.stateStack = append(c.stateStack, recordingState{matrix: c.matrix, clip: c.clip})
	c.add(NewSaveOpItem())
	return n
}

func (c *RecordingCanvas) SaveLayer(ops drawing.SaveLayerOps) {
	c.stateStack = append(c.stateStack, recordingState{matrix: c.matrix, clip: c.clip})
	c.add(NewSaveLayerOpItem(ops))
}

// Restore pops the state pushed by the matching Save or SaveLayer. It
// does nothing when the stack is empty.
func (c *RecordingCanvas) Restore() {
	if len(c.stateStack) == 0 {
		return
	}
	s := c.stateStack[len(c.stateStack)-1]
	c.stateStack = c.stateStack[:len(c.stateStack)-1]
	c.matrix, c.clip = s.matrix, s.clip
	c.add(NewRestoreOpItem())
}

func (c *RecordingCanvas) Discard() { c.add(NewDiscardOpItem()) }

func (c *RecordingCanvas) AttachPen(pen drawing.Pen) { c.pen = &pen }

func (c *RecordingCanvas) AttachBrush(brush drawing.Brush) { c.brush = &brush }

// AttachPaint attaches the brush and pen halves of paint that its style
// uses.
func (c *RecordingCanvas) AttachPaint(paint drawing.Paint) {
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

func (c *RecordingCanvas) DetachPen()   { c.pen = nil }
func (c *RecordingCanvas) DetachBrush() { c.brush = nil }
func (c *RecordingCanvas) DetachPaint() { c.brush, c.pen = nil, nil }
