package recording

import (
	"strings"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// DrawOpItem is one recorded operation in its live form.
//
// Marshalling appends the op's record to a list; the registered unmarshal
// function for the op type rebuilds it. Playback issues the op against a
// canvas. An op whose resource failed to decode logs and draws nothing.
type DrawOpItem interface {
	Type() OpType
	// Desc returns the op name, as used by DrawCmdList.GetOpsWithDesc.
	Desc() string
	Marshalling(list *DrawCmdList)
	Playback(canvas drawing.Canvas, rect *drawing.Rect)
	// Dump appends the op name and its fields to b.
	Dump(b *strings.Builder)
	NodeID() uint64
	SetNodeID(id uint64)
}

// opItem carries what every op shares.
type opItem struct {
	typ    OpType
	nodeID uint64
}

func (o *opItem) Type() OpType        { return o.typ }
func (o *opItem) Desc() string        { return o.typ.String() }
func (o *opItem) NodeID() uint64      { return o.nodeID }
func (o *opItem) SetNodeID(id uint64) { o.nodeID = id }

func (o *opItem) Dump(b *strings.Builder) { b.WriteString(o.Desc()) }

// drawWithPaint is the base of ops that attach a paint before drawing.
type drawWithPaint struct {
	opItem
	paint drawing.Paint
}

func newDrawWithPaint(typ OpType, paint drawing.Paint) drawWithPaint {
	return drawWithPaint{opItem: opItem{typ: typ}, paint: paint}
}

// Paint returns the paint the op draws with.
func (o *drawWithPaint) Paint() drawing.Paint { return o.paint }

// beginPaint starts a payload with the flattened paint.
func (o *drawWithPaint) beginPaint(list *DrawCmdList, capacity int) *binio.Writer {
	w := binio.NewWriter(paintHandleSize + capacity)
	writePaintHandle(w, AddPaintToCmdList(&list.CmdList, o.paint))
	return w
}

func readPaint(list *DrawCmdList, r *binio.Reader) drawing.Paint {
	return GeneratePaintFromHandle(&list.CmdList, readPaintHandle(r))
}

// missing logs a resource that did not resolve during playback.
func missing(op OpType, what string) {
	drawing.Logger().Warn("recording: op resource is nil", "op", op, "resource", what)
}
