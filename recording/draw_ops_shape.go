package recording

import (
	"strconv"
	"strings"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// DrawPointOpItem draws a single point.
type DrawPointOpItem struct {
	drawWithPaint
	point drawing.Point
}

func NewDrawPointOpItem(point drawing.Point, paint drawing.Paint) *DrawPointOpItem {
	return &DrawPointOpItem{drawWithPaint: newDrawWithPaint(OpPoint, paint), point: point}
}

func (o *DrawPointOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 8)
	writePoint(w, o.point)
	list.addOpItem(o.typ, w)
}

func (o *DrawPointOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawPoint(o.point)
}

// DrawPointsOpItem draws points, segments or a polyline. The points are an
// inline vector.
type DrawPointsOpItem struct {
	drawWithPaint
	mode drawing.PointMode
	pts  []drawing.Point
}

func NewDrawPointsOpItem(mode drawing.PointMode, pts []drawing.Point, paint drawing.Paint) *DrawPointsOpItem {
	return &DrawPointsOpItem{drawWithPaint: newDrawWithPaint(OpPoints, paint), mode: mode, pts: pts}
}

func (o *DrawPointsOpItem) Marshalling(list *DrawCmdList) {
	pts := AddVectorToCmdList(&list.CmdList, o.pts)
	w := o.beginPaint(list, 12)
	w.U32(uint32(o.mode))
	writeOpData(w, pts)
	list.addOpItem(o.typ, w)
}

func (o *DrawPointsOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawPoints(o.mode, o.pts)
}

// DrawLineOpItem draws a segment.
type DrawLineOpItem struct {
	drawWithPaint
	start, end drawing.Point
}

func NewDrawLineOpItem(start, end drawing.Point, paint drawing.Paint) *DrawLineOpItem {
	return &DrawLineOpItem{drawWithPaint: newDrawWithPaint(OpLine, paint), start: start, end: end}
}

func (o *DrawLineOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 16)
	writePoint(w, o.start)
	writePoint(w, o.end)
	list.addOpItem(o.typ, w)
}

func (o *DrawLineOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawLine(o.start, o.end)
}

// DrawRectOpItem draws a rectangle.
type DrawRectOpItem struct {
	drawWithPaint
	rect drawing.Rect
}

func NewDrawRectOpItem(rect drawing.Rect, paint drawing.Paint) *DrawRectOpItem {
	return &DrawRectOpItem{drawWithPaint: newDrawWithPaint(OpRect, paint), rect: rect}
}

func (o *DrawRectOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 16)
	writeRect(w, o.rect)
	list.addOpItem(o.typ, w)
}

func (o *DrawRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawRect(o.rect)
}

// DrawRoundRectOpItem draws a rounded rectangle.
type DrawRoundRectOpItem struct {
	drawWithPaint
	rrect drawing.RoundRect
}

func NewDrawRoundRectOpItem(rrect drawing.RoundRect, paint drawing.Paint) *DrawRoundRectOpItem {
	return &DrawRoundRectOpItem{drawWithPaint: newDrawWithPaint(OpRoundRect, paint), rrect: rrect}
}

func (o *DrawRoundRectOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 48)
	writeRoundRect(w, o.rrect)
	list.addOpItem(o.typ, w)
}

func (o *DrawRoundRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawRoundRect(o.rrect)
}

// DrawNestedRoundRectOpItem draws the ring between two rounded rectangles.
type DrawNestedRoundRectOpItem struct {
	drawWithPaint
	outer, inner drawing.RoundRect
}

func NewDrawNestedRoundRectOpItem(outer, inner drawing.RoundRect, paint drawing.Paint) *DrawNestedRoundRectOpItem {
	return &DrawNestedRoundRectOpItem{
		drawWithPaint: newDrawWithPaint(OpNestedRoundRect, paint),
		outer:         outer,
		inner:         inner,
	}
}

func (o *DrawNestedRoundRectOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 96)
	writeRoundRect(w, o.outer)
	writeRoundRect(w, o.inner)
	list.addOpItem(o.typ, w)
}

func (o *DrawNestedRoundRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawNestedRoundRect(o.outer, o.inner)
}

// DrawArcOpItem draws an arc of an oval. The same record layout serves
// DrawPie, which closes the arc through the center.
type DrawArcOpItem struct {
	drawWithPaint
	oval       drawing.Rect
	startAngle float32
	sweepAngle float32
}

func NewDrawArcOpItem(oval drawing.Rect, startAngle, sweepAngle float32, paint drawing.Paint) *DrawArcOpItem {
	return newArcOp(OpArc, oval, startAngle, sweepAngle, paint)
}

// NewDrawPieOpItem returns a wedge op.
func NewDrawPieOpItem(oval drawing.Rect, startAngle, sweepAngle float32, paint drawing.Paint) *DrawArcOpItem {
	return newArcOp(OpPie, oval, startAngle, sweepAngle, paint)
}

func newArcOp(typ OpType, oval drawing.Rect, startAngle, sweepAngle float32, paint drawing.Paint) *DrawArcOpItem {
	return &DrawArcOpItem{
		drawWithPaint: newDrawWithPaint(typ, paint),
		oval:          oval,
		startAngle:    startAngle,
		sweepAngle:    sweepAngle,
	}
}

func (o *DrawArcOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 24)
	writeRect(w, o.oval)
	w.F32s(o.startAngle, o.sweepAngle)
	list.addOpItem(o.typ, w)
}

func (o *DrawArcOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	if o.typ == OpPie {
		canvas.DrawPie(o.oval, o.startAngle, o.sweepAngle)
		return
	}
	canvas.DrawArc(o.oval, o.startAngle, o.sweepAngle)
}

// DrawOvalOpItem draws an ellipse inscribed in a rect.
type DrawOvalOpItem struct {
	drawWithPaint
	oval drawing.Rect
}

func NewDrawOvalOpItem(oval drawing.Rect, paint drawing.Paint) *DrawOvalOpItem {
	return &DrawOvalOpItem{drawWithPaint: newDrawWithPaint(OpOval, paint), oval: oval}
}

func (o *DrawOvalOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 16)
	writeRect(w, o.oval)
	list.addOpItem(o.typ, w)
}

func (o *DrawOvalOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawOval(o.oval)
}

// DrawCircleOpItem draws a circle.
type DrawCircleOpItem struct {
	drawWithPaint
	center drawing.Point
	radius float32
}

func NewDrawCircleOpItem(center drawing.Point, radius float32, paint drawing.Paint) *DrawCircleOpItem {
	return &DrawCircleOpItem{drawWithPaint: newDrawWithPaint(OpCircle, paint), center: center, radius: radius}
}

func (o *DrawCircleOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 12)
	writePoint(w, o.center)
	w.F32(o.radius)
	list.addOpItem(o.typ, w)
}

func (o *DrawCircleOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawCircle(o.center, o.radius)
}

// DrawPathOpItem draws a path stored as a nested path list.
type DrawPathOpItem struct {
	drawWithPaint
	path *drawing.Path
}

func NewDrawPathOpItem(path *drawing.Path, paint drawing.Paint) *DrawPathOpItem {
	return &DrawPathOpItem{drawWithPaint: newDrawWithPaint(OpPath, paint), path: path}
}

func (o *DrawPathOpItem) Marshalling(list *DrawCmdList) {
	path := AddPathToCmdList(&list.CmdList, o.path)
	w := o.beginPaint(list, cmdListHandleSize)
	writeCmdListHandle(w, path)
	list.addOpItem(o.typ, w)
}

func (o *DrawPathOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.path == nil {
		missing(o.typ, "path")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawPath(o.path)
}

// DrawBackgroundOpItem fills the whole clip with a brush.
type DrawBackgroundOpItem struct {
	opItem
	brush drawing.Brush
}

func NewDrawBackgroundOpItem(brush drawing.Brush) *DrawBackgroundOpItem {
	return &DrawBackgroundOpItem{opItem: opItem{typ: OpBackground}, brush: brush}
}

func (o *DrawBackgroundOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(brushHandleSize)
	writeBrushHandle(w, AddBrushToCmdList(&list.CmdList, o.brush))
	list.addOpItem(o.typ, w)
}

func (o *DrawBackgroundOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.DrawBackground(o.brush)
}

// DrawShadowOpItem draws the shadow a path casts from a point light.
type DrawShadowOpItem struct {
	opItem
	path         *drawing.Path
	planeParams  drawing.Point3
	devLightPos  drawing.Point3
	lightRadius  float32
	ambientColor drawing.Color
	spotColor    drawing.Color
	flag         drawing.ShadowFlags
}

func NewDrawShadowOpItem(path *drawing.Path, planeParams, devLightPos drawing.Point3, lightRadius float32,
	ambientColor, spotColor drawing.Color, flag drawing.ShadowFlags) *DrawShadowOpItem {
	return &DrawShadowOpItem{
		opItem:       opItem{typ: OpShadow},
		path:         path,
		planeParams:  planeParams,
		devLightPos:  devLightPos,
		lightRadius:  lightRadius,
		ambientColor: ambientColor,
		spotColor:    spotColor,
		flag:         flag,
	}
}

func (o *DrawShadowOpItem) Marshalling(list *DrawCmdList) {
	path := AddPathToCmdList(&list.CmdList, o.path)
	w := binio.NewWriter(cmdListHandleSize + 40)
	writeCmdListHandle(w, path)
	writePoint3(w, o.planeParams)
	writePoint3(w, o.devLightPos)
	w.F32(o.lightRadius)
	w.U32(uint32(o.ambientColor))
	w.U32(uint32(o.spotColor))
	w.U32(uint32(o.flag))
	list.addOpItem(o.typ, w)
}

func (o *DrawShadowOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.path == nil {
		missing(o.typ, "path")
		return
	}
	canvas.DrawShadow(o.path, o.planeParams, o.devLightPos, o.lightRadius, o.ambientColor, o.spotColor, o.flag)
}

func (o *DrawShadowOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[plane")
	dumpPoint3(b, o.planeParams)
	b.WriteString(" lightPos")
	dumpPoint3(b, o.devLightPos)
	b.WriteString(" lightRadius:" + fmtScalar(o.lightRadius))
	b.WriteString(" ambientColor")
	dumpColor(b, o.ambientColor)
	b.WriteString(" spotColor")
	dumpColor(b, o.spotColor)
	b.WriteString(" shadowFlags:" + strconv.Itoa(int(o.flag)))
	b.WriteString(" path")
	dumpPath(b, o.path)
	b.WriteString("]")
}

// DrawRegionOpItem fills a region stored as a nested region list.
type DrawRegionOpItem struct {
	drawWithPaint
	region *drawing.Region
}

func NewDrawRegionOpItem(region *drawing.Region, paint drawing.Paint) *DrawRegionOpItem {
	return &DrawRegionOpItem{drawWithPaint: newDrawWithPaint(OpRegion, paint), region: region}
}

func (o *DrawRegionOpItem) Marshalling(list *DrawCmdList) {
	region := AddRegionToCmdList(&list.CmdList, o.region)
	w := o.beginPaint(list, cmdListHandleSize)
	writeCmdListHandle(w, region)
	list.addOpItem(o.typ, w)
}

func (o *DrawRegionOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.region == nil {
		missing(o.typ, "region")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawRegion(o.region)
}

// DrawPatchOpItem draws a Coons patch. Colors and texture coordinates are
// optional.
type DrawPatchOpItem struct {
	drawWithPaint
	cubics    *[12]drawing.Point
	colors    *[4]drawing.Color
	texCoords *[4]drawing.Point
	mode      drawing.BlendMode
}

func NewDrawPatchOpItem(cubics *[12]drawing.Point, colors *[4]drawing.Color, texCoords *[4]drawing.Point,
	mode drawing.BlendMode, paint drawing.Paint) *DrawPatchOpItem {
	return &DrawPatchOpItem{
		drawWithPaint: newDrawWithPaint(OpPatch, paint),
		cubics:        cubics,
		colors:        colors,
		texCoords:     texCoords,
		mode:          mode,
	}
}

func (o *DrawPatchOpItem) Marshalling(list *DrawCmdList) {
	var cubics, colors, texCoords OpDataHandle
	if o.cubics != nil {
		cubics = AddVectorToCmdList(&list.CmdList, o.cubics[:])
	}
	if o.colors != nil {
		colors = AddVectorToCmdList(&list.CmdList, o.colors[:])
	}
	if o.texCoords != nil {
		texCoords = AddVectorToCmdList(&list.CmdList, o.texCoords[:])
	}
	w := o.beginPaint(list, 28)
	writeOpData(w, cubics)
	writeOpData(w, colors)
	writeOpData(w, texCoords)
	w.U32(uint32(o.mode))
	list.addOpItem(o.typ, w)
}

func (o *DrawPatchOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachPaint(o.paint)
	canvas.DrawPatch(o.cubics, o.colors, o.texCoords, o.mode)
}

// DrawVerticesOpItem draws a triangle mesh.
type DrawVerticesOpItem struct {
	drawWithPaint
	vertices *drawing.Vertices
	mode     drawing.BlendMode
}

func NewDrawVerticesOpItem(vertices *drawing.Vertices, mode drawing.BlendMode, paint drawing.Paint) *DrawVerticesOpItem {
	return &DrawVerticesOpItem{drawWithPaint: newDrawWithPaint(OpVertices, paint), vertices: vertices, mode: mode}
}

func (o *DrawVerticesOpItem) Marshalling(list *DrawCmdList) {
	w := o.beginPaint(list, 12)
	writeOpData(w, AddVerticesToCmdList(&list.CmdList, o.vertices))
	w.U32(uint32(o.mode))
	list.addOpItem(o.typ, w)
}

func (o *DrawVerticesOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.vertices == nil {
		missing(o.typ, "vertices")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawVertices(o.vertices, o.mode)
}

// DrawColorOpItem fills the clip with a color.
type DrawColorOpItem struct {
	opItem
	color drawing.Color
	mode  drawing.BlendMode
}

func NewDrawColorOpItem(color drawing.Color, mode drawing.BlendMode) *DrawColorOpItem {
	return &DrawColorOpItem{opItem: opItem{typ: OpColor}, color: color, mode: mode}
}

func (o *DrawColorOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(8)
	w.U32(uint32(o.color))
	w.U32(uint32(o.mode))
	list.addOpItem(o.typ, w)
}

func (o *DrawColorOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.DrawColor(o.color, o.mode)
}

func (o *DrawColorOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[color")
	dumpColor(b, o.color)
	b.WriteString(" blendMode:" + strconv.Itoa(int(o.mode)) + "]")
}

func init() {
	registerOp(OpPoint, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		return NewDrawPointOpItem(readPoint(r), paint)
	})
	registerOp(OpPoints, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		mode := drawing.PointMode(r.U32())
		pts := GetVectorFromCmdList[drawing.Point](&l.CmdList, readOpData(r))
		return NewDrawPointsOpItem(mode, pts, paint)
	})
	registerOp(OpLine, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		start := readPoint(r)
		return NewDrawLineOpItem(start, readPoint(r), paint)
	})
	registerOp(OpRect, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		return NewDrawRectOpItem(readRect(r), paint)
	})
	registerOp(OpRoundRect, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		return NewDrawRoundRectOpItem(readRoundRect(r), paint)
	})
	registerOp(OpNestedRoundRect, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		outer := readRoundRect(r)
		return NewDrawNestedRoundRectOpItem(outer, readRoundRect(r), paint)
	})
	arc := func(typ OpType) unmarshalFunc {
		return func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
			paint := readPaint(l, r)
			oval := readRect(r)
			start, sweep := r.F32(), r.F32()
			return newArcOp(typ, oval, start, sweep, paint)
		}
	}
	registerOp(OpArc, arc(OpArc))
	registerOp(OpPie, arc(OpPie))
	registerOp(OpOval, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		return NewDrawOvalOpItem(readRect(r), paint)
	})
	registerOp(OpCircle, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		center := readPoint(r)
		return NewDrawCircleOpItem(center, r.F32(), paint)
	})
	registerOp(OpPath, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		return NewDrawPathOpItem(GetPathFromCmdList(&l.CmdList, readCmdListHandle(r)), paint)
	})
	registerOp(OpBackground, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		return NewDrawBackgroundOpItem(GetBrushFromCmdList(&l.CmdList, readBrushHandle(r)))
	})
	registerOp(OpShadow, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		path := GetPathFromCmdList(&l.CmdList, readCmdListHandle(r))
		plane := readPoint3(r)
		light := readPoint3(r)
		radius := r.F32()
		ambient, spot := drawing.Color(r.U32()), drawing.Color(r.U32())
		flag := drawing.ShadowFlags(r.U32())
		return NewDrawShadowOpItem(path, plane, light, radius, ambient, spot, flag)
	})
	registerOp(OpRegion, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		return NewDrawRegionOpItem(GetRegionFromCmdList(&l.CmdList, readCmdListHandle(r)), paint)
	})
	registerOp(OpPatch, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		cubicsH, colorsH, texH := readOpData(r), readOpData(r), readOpData(r)
		mode := drawing.BlendMode(r.U32())
		op := NewDrawPatchOpItem(nil, nil, nil, mode, paint)
		if v := GetVectorFromCmdList[drawing.Point](&l.CmdList, cubicsH); len(v) == 12 {
			op.cubics = (*[12]drawing.Point)(v)
		}
		if v := GetVectorFromCmdList[drawing.Color](&l.CmdList, colorsH); len(v) == 4 {
			op.colors = (*[4]drawing.Color)(v)
		}
		if v := GetVectorFromCmdList[drawing.Point](&l.CmdList, texH); len(v) == 4 {
			op.texCoords = (*[4]drawing.Point)(v)
		}
		return op
	})
	registerOp(OpVertices, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		v := GetVerticesFromCmdList(&l.CmdList, readOpData(r))
		return NewDrawVerticesOpItem(v, drawing.BlendMode(r.U32()), paint)
	})
	registerOp(OpColor, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		c := drawing.Color(r.U32())
		return NewDrawColorOpItem(c, drawing.BlendMode(r.U32()))
	})
}
