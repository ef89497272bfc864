package drawing

// Canvas is the sink that recorded operations play back against.
//
// Draw calls use the paint state set by AttachPaint, AttachBrush and
// AttachPen. Implementations decide what to do with a call; a raster
// canvas draws pixels while a recording canvas appends operations.
type Canvas interface {
	// Capabilities consulted during playback.
	GetDrawingType() DrawingType
	IsHighContrastEnabled() bool
	GetCacheType() CacheType
	GetSurface() Surface
	GetDeviceClipBounds() RectI
	GetTotalMatrix() Matrix
	GetSaveCount() int

	// Shapes.
	DrawPoint(p Point)
	DrawPoints(mode PointMode, pts []Point)
	DrawLine(p1, p2 Point)
	DrawRect(r Rect)
	DrawRoundRect(rr RoundRect)
	DrawNestedRoundRect(outer, inner RoundRect)
	DrawArc(oval Rect, startAngle, sweepAngle float32)
	DrawPie(oval Rect, startAngle, sweepAngle float32)
	DrawOval(oval Rect)
	DrawCircle(center Point, radius float32)
	DrawPath(path *Path)
	DrawBackground(brush Brush)
	DrawShadow(path *Path, planeParams, devLightPos Point3, lightRadius float32,
		ambientColor, spotColor Color, flag ShadowFlags)
	DrawRegion(region *Region)
	DrawPatch(cubics *[12]Point, colors *[4]Color, texCoords *[4]Point, mode BlendMode)
	DrawVertices(vertices *Vertices, mode BlendMode)
	DrawColor(c Color, mode BlendMode)

	// Images and text.
	DrawImageNine(img *Image, center RectI, dst Rect, filter FilterMode, brush *Brush)
	DrawImageLattice(img *Image, lattice Lattice, dst Rect, filter FilterMode, brush *Brush)
	DrawBitmap(bitmap *Bitmap, px, py float32)
	DrawImage(img *Image, px, py float32, sampling SamplingOptions)
	DrawImageRect(img *Image, src, dst Rect, sampling SamplingOptions, constraint SrcRectConstraint)
	DrawPixelMapRect(pm *PixelMap, src, dst Rect, sampling SamplingOptions)
	DrawPicture(picture *Picture)
	DrawTextBlob(blob *TextBlob, x, y float32)

	// Clip.
	ClipRect(r Rect, op ClipOp, antiAlias bool)
	ClipIRect(r RectI, op ClipOp)
	ClipRoundRect(rr RoundRect, op ClipOp, antiAlias bool)
	ClipPath(path *Path, op ClipOp, antiAlias bool)
	ClipRegion(region *Region, op ClipOp)

	// Matrix.
	SetMatrix(m Matrix)
	ResetMatrix()
	ConcatMatrix(m Matrix)
	Translate(dx, dy float32)
	Scale(sx, sy float32)
	Rotate(deg, sx, sy float32)
	Shear(sx, sy float32)

	// State.
	Flush()
	Clear(c Color)
	Save() int
	SaveLayer(ops SaveLayerOps)
	Restore()
	Discard()

	// Paint.
	AttachPen(pen Pen)
	AttachBrush(brush Brush)
	AttachPaint(paint Paint)
	DetachPen()
	DetachBrush()
	DetachPaint()
}

// Surface owns pixels and a canvas drawing into them.
type Surface interface {
	GetCanvas() Canvas
	GetImageSnapshot() *Image
	// MakeSurface returns a compatible surface of the given size, or nil.
	MakeSurface(width, height int) Surface
	Width() int
	Height() int
}
