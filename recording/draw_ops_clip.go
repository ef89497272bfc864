package recording

import (
	"strings"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// ClipRectOpItem intersects or subtracts a rect from the clip.
type ClipRectOpItem struct {
	opItem
	rect      drawing.Rect
	clipOp    drawing.ClipOp
	antiAlias bool
}

func NewClipRectOpItem(rect drawing.Rect, op drawing.ClipOp, antiAlias bool) *ClipRectOpItem {
	return &ClipRectOpItem{opItem: opItem{typ: OpClipRect}, rect: rect, clipOp: op, antiAlias: antiAlias}
}

func (o *ClipRectOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(24)
	writeRect(w, o.rect)
	w.U32(uint32(o.clipOp))
	w.Bool(o.antiAlias)
	list.addOpItem(o.typ, w)
}

func (o *ClipRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.ClipRect(o.rect, o.clipOp, o.antiAlias)
}

func (o *ClipRectOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[rect")
	dumpRect(b, o.rect)
	b.WriteString(" clipOp:" + o.clipOp.String() + " antiAlias:" + fmtBool(o.antiAlias) + "]")
}

// ClipIRectOpItem clips to an integer rect.
type ClipIRectOpItem struct {
	opItem
	rect   drawing.RectI
	clipOp drawing.ClipOp
}

func NewClipIRectOpItem(rect drawing.RectI, op drawing.ClipOp) *ClipIRectOpItem {
	return &ClipIRectOpItem{opItem: opItem{typ: OpClipIRect}, rect: rect, clipOp: op}
}

func (o *ClipIRectOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(20)
	writeRectI(w, o.rect)
	w.U32(uint32(o.clipOp))
	list.addOpItem(o.typ, w)
}

func (o *ClipIRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.ClipIRect(o.rect, o.clipOp)
}

// ClipRoundRectOpItem clips to a rounded rect.
type ClipRoundRectOpItem struct {
	opItem
	rrect     drawing.RoundRect
	clipOp    drawing.ClipOp
	antiAlias bool
}

func NewClipRoundRectOpItem(rrect drawing.RoundRect, op drawing.ClipOp, antiAlias bool) *ClipRoundRectOpItem {
	return &ClipRoundRectOpItem{opItem: opItem{typ: OpClipRoundRect}, rrect: rrect, clipOp: op, antiAlias: antiAlias}
}

func (o *ClipRoundRectOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(56)
	writeRoundRect(w, o.rrect)
	w.U32(uint32(o.clipOp))
	w.Bool(o.antiAlias)
	list.addOpItem(o.typ, w)
}

func (o *ClipRoundRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.ClipRoundRect(o.rrect, o.clipOp, o.antiAlias)
}

func (o *ClipRoundRectOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[rrect")
	dumpRoundRect(b, o.rrect)
	b.WriteString(" clipOp:" + o.clipOp.String() + " antiAlias:" + fmtBool(o.antiAlias) + "]")
}

// ClipPathOpItem clips to a path.
type ClipPathOpItem struct {
	opItem
	path      *drawing.Path
	clipOp    drawing.ClipOp
	antiAlias bool
}

func NewClipPathOpItem(path *drawing.Path, op drawing.ClipOp, antiAlias bool) *ClipPathOpItem {
	return &ClipPathOpItem{opItem: opItem{typ: OpClipPath}, path: path, clipOp: op, antiAlias: antiAlias}
}

func (o *ClipPathOpItem) Marshalling(list *DrawCmdList) {
	path := AddPathToCmdList(&list.CmdList, o.path)
	w := binio.NewWriter(cmdListHandleSize + 8)
	writeCmdListHandle(w, path)
	w.U32(uint32(o.clipOp))
	w.Bool(o.antiAlias)
	list.addOpItem(o.typ, w)
}

func (o *ClipPathOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.path == nil {
		missing(o.typ, "path")
		return
	}
	canvas.ClipPath(o.path, o.clipOp, o.antiAlias)
}

func (o *ClipPathOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[path")
	dumpPath(b, o.path)
	b.WriteString(" clipOp:" + o.clipOp.String() + " antiAlias:" + fmtBool(o.antiAlias) + "]")
}

// ClipRegionOpItem clips to a region.
type ClipRegionOpItem struct {
	opItem
	region *drawing.Region
	clipOp drawing.ClipOp
}

func NewClipRegionOpItem(region *drawing.Region, op drawing.ClipOp) *ClipRegionOpItem {
	return &ClipRegionOpItem{opItem: opItem{typ: OpClipRegion}, region: region, clipOp: op}
}

func (o *ClipRegionOpItem) Marshalling(list *DrawCmdList) {
	region := AddRegionToCmdList(&list.CmdList, o.region)
	w := binio.NewWriter(cmdListHandleSize + 4)
	writeCmdListHandle(w, region)
	w.U32(uint32(o.clipOp))
	list.addOpItem(o.typ, w)
}

func (o *ClipRegionOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.region == nil {
		missing(o.typ, "region")
		return
	}
	canvas.ClipRegion(o.region, o.clipOp)
}

func (o *ClipRegionOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[region")
	dumpRegion(b, o.region)
	b.WriteString(" clipOp:" + o.clipOp.String() + "]")
}

// ClipAdaptiveRoundRectOpItem clips to the playback rect with the given
// corner radii.
type ClipAdaptiveRoundRectOpItem struct {
	opItem
	radius []drawing.Point
}

func NewClipAdaptiveRoundRectOpItem(radius []drawing.Point) *ClipAdaptiveRoundRectOpItem {
	return &ClipAdaptiveRoundRectOpItem{opItem: opItem{typ: OpClipAdaptiveRoundRect}, radius: radius}
}

func (o *ClipAdaptiveRoundRectOpItem) Marshalling(list *DrawCmdList) {
	radius := AddVectorToCmdList(&list.CmdList, o.radius)
	w := binio.NewWriter(8)
	writeOpData(w, radius)
	list.addOpItem(o.typ, w)
}

func (o *ClipAdaptiveRoundRectOpItem) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	if rect == nil {
		missing(o.typ, "rect")
		return
	}
	rr := drawing.RoundRect{Rect: *rect}
	copy(rr.Radii[:], o.radius)
	canvas.ClipRoundRect(rr, drawing.ClipIntersect, true)
}

func (o *ClipAdaptiveRoundRectOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[radius")
	dumpArray(b, o.radius, dumpPoint)
	b.WriteString("]")
}

func init() {
	registerOp(OpClipRect, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		rect := readRect(r)
		op := drawing.ClipOp(r.U32())
		return NewClipRectOpItem(rect, op, r.Bool())
	})
	registerOp(OpClipIRect, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		rect := readRectI(r)
		return NewClipIRectOpItem(rect, drawing.ClipOp(r.U32()))
	})
	registerOp(OpClipRoundRect, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		rrect := readRoundRect(r)
		op := drawing.ClipOp(r.U32())
		return NewClipRoundRectOpItem(rrect, op, r.Bool())
	})
	registerOp(OpClipPath, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		path := GetPathFromCmdList(&l.CmdList, readCmdListHandle(r))
		op := drawing.ClipOp(r.U32())
		return NewClipPathOpItem(path, op, r.Bool())
	})
	registerOp(OpClipRegion, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		region := GetRegionFromCmdList(&l.CmdList, readCmdListHandle(r))
		return NewClipRegionOpItem(region, drawing.ClipOp(r.U32()))
	})
	registerOp(OpClipAdaptiveRoundRect, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		return NewClipAdaptiveRoundRectOpItem(GetVectorFromCmdList[drawing.Point](&l.CmdList, readOpData(r)))
	})
}
