package recording

import (
	"strconv"
	"strings"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// MatrixOpItem replaces or concatenates the total matrix.
type MatrixOpItem struct {
	opItem
	matrix drawing.Matrix
}

// NewSetMatrixOpItem returns an op that replaces the total matrix.
func NewSetMatrixOpItem(m drawing.Matrix) *MatrixOpItem {
	return &MatrixOpItem{opItem: opItem{typ: OpSetMatrix}, matrix: m}
}

// NewConcatMatrixOpItem returns an op that premultiplies the total matrix.
func NewConcatMatrixOpItem(m drawing.Matrix) *MatrixOpItem {
	return &MatrixOpItem{opItem: opItem{typ: OpConcatMatrix}, matrix: m}
}

func (o *MatrixOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(drawing.MatrixSize * 4)
	writeMatrix(w, o.matrix)
	list.addOpItem(o.typ, w)
}

func (o *MatrixOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.typ == OpSetMatrix {
		canvas.SetMatrix(o.matrix)
		return
	}
	canvas.ConcatMatrix(o.matrix)
}

func (o *MatrixOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc())
	dumpMatrix(b, o.matrix)
}

// TranslateOpItem, ScaleOpItem and ShearOpItem share the two-scalar layout.
type scalarPairOpItem struct {
	opItem
	x, y float32
}

func (o *scalarPairOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(8)
	w.F32s(o.x, o.y)
	list.addOpItem(o.typ, w)
}

func (o *scalarPairOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[x:" + fmtScalar(o.x) + " y:" + fmtScalar(o.y) + "]")
}

type TranslateOpItem struct{ scalarPairOpItem }

func NewTranslateOpItem(dx, dy float32) *TranslateOpItem {
	return &TranslateOpItem{scalarPairOpItem{opItem: opItem{typ: OpTranslate}, x: dx, y: dy}}
}

func (o *TranslateOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) { canvas.Translate(o.x, o.y) }

type ScaleOpItem struct{ scalarPairOpItem }

func NewScaleOpItem(sx, sy float32) *ScaleOpItem {
	return &ScaleOpItem{scalarPairOpItem{opItem: opItem{typ: OpScale}, x: sx, y: sy}}
}

func (o *ScaleOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) { canvas.Scale(o.x, o.y) }

type ShearOpItem struct{ scalarPairOpItem }

func NewShearOpItem(sx, sy float32) *ShearOpItem {
	return &ShearOpItem{scalarPairOpItem{opItem: opItem{typ: OpShear}, x: sx, y: sy}}
}

func (o *ShearOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) { canvas.Shear(o.x, o.y) }

// RotateOpItem rotates by deg degrees about (sx, sy).
type RotateOpItem struct {
	opItem
	deg, sx, sy float32
}

func NewRotateOpItem(deg, sx, sy float32) *RotateOpItem {
	return &RotateOpItem{opItem: opItem{typ: OpRotate}, deg: deg, sx: sx, sy: sy}
}

func (o *RotateOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(12)
	w.F32s(o.deg, o.sx, o.sy)
	list.addOpItem(o.typ, w)
}

func (o *RotateOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.Rotate(o.deg, o.sx, o.sy)
}

func (o *RotateOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[degree:" + fmtScalar(o.deg) + " sx:" + fmtScalar(o.sx) + " sy:" + fmtScalar(o.sy) + "]")
}

// bareOpItem is an op without payload: ResetMatrix, Flush, Save, Restore,
// Discard, DetachPen and DetachBrush.
type bareOpItem struct {
	opItem
}

func newBareOpItem(typ OpType) *bareOpItem { return &bareOpItem{opItem{typ: typ}} }

func NewResetMatrixOpItem() DrawOpItem { return newBareOpItem(OpResetMatrix) }
func NewFlushOpItem() DrawOpItem       { return newBareOpItem(OpFlush) }
func NewSaveOpItem() DrawOpItem        { return newBareOpItem(OpSave) }
func NewRestoreOpItem() DrawOpItem     { return newBareOpItem(OpRestore) }
func NewDiscardOpItem() DrawOpItem     { return newBareOpItem(OpDiscard) }
func NewDetachPenOpItem() DrawOpItem   { return newBareOpItem(OpDetachPen) }
func NewDetachBrushOpItem() DrawOpItem { return newBareOpItem(OpDetachBrush) }

func (o *bareOpItem) Marshalling(list *DrawCmdList) {
	list.AddOp(uint32(o.typ), nil)
}

func (o *bareOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	switch o.typ {
	case OpResetMatrix:
		canvas.ResetMatrix()
	case OpFlush:
		canvas.Flush()
	case OpSave:
		canvas.Save()
	case OpRestore:
		canvas.Restore()
	case OpDiscard:
		canvas.Discard()
	case OpDetachPen:
		canvas.DetachPen()
	case OpDetachBrush:
		canvas.DetachBrush()
	}
}

// ClearOpItem replaces every pixel in the clip with a color.
type ClearOpItem struct {
	opItem
	color drawing.Color
}

func NewClearOpItem(c drawing.Color) *ClearOpItem {
	return &ClearOpItem{opItem: opItem{typ: OpClear}, color: c}
}

func (o *ClearOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(4)
	w.U32(uint32(o.color))
	list.addOpItem(o.typ, w)
}

func (o *ClearOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) { canvas.Clear(o.color) }

func (o *ClearOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc())
	dumpColor(b, o.color)
}

// SaveLayerOpItem saves state and starts an offscreen layer. A zero rect
// means unbounded.
type SaveLayerOpItem struct {
	opItem
	rect  drawing.Rect
	brush *drawing.Brush
	flags uint32
}

func NewSaveLayerOpItem(ops drawing.SaveLayerOps) *SaveLayerOpItem {
	o := &SaveLayerOpItem{opItem: opItem{typ: OpSaveLayer}, brush: ops.Brush, flags: ops.Flags}
	if ops.Bounds != nil {
		o.rect = *ops.Bounds
	}
	return o
}

func (o *SaveLayerOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(24 + brushHandleSize)
	writeRect(w, o.rect)
	writeOptionalBrush(list, w, o.brush)
	w.Pad()
	w.U32(o.flags)
	list.addOpItem(o.typ, w)
}

func (o *SaveLayerOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	ops := drawing.SaveLayerOps{Brush: o.brush, Flags: o.flags}
	if o.rect.IsValid() {
		bounds := o.rect
		ops.Bounds = &bounds
	}
	canvas.SaveLayer(ops)
}

func (o *SaveLayerOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[flags:" + strconv.FormatUint(uint64(o.flags), 10) + " rect")
	dumpRect(b, o.rect)
	if o.brush != nil {
		b.WriteString(" brush")
		dumpBrush(b, *o.brush)
	}
	b.WriteString("]")
}

// AttachPenOpItem sets the stroke paint for following draws.
type AttachPenOpItem struct {
	opItem
	pen drawing.Pen
}

func NewAttachPenOpItem(pen drawing.Pen) *AttachPenOpItem {
	return &AttachPenOpItem{opItem: opItem{typ: OpAttachPen}, pen: pen}
}

func (o *AttachPenOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(penHandleSize)
	writePenHandle(w, AddPenToCmdList(&list.CmdList, o.pen))
	list.addOpItem(o.typ, w)
}

func (o *AttachPenOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) { canvas.AttachPen(o.pen) }

// AttachBrushOpItem sets the fill paint for following draws.
type AttachBrushOpItem struct {
	opItem
	brush drawing.Brush
}

func NewAttachBrushOpItem(brush drawing.Brush) *AttachBrushOpItem {
	return &AttachBrushOpItem{opItem: opItem{typ: OpAttachBrush}, brush: brush}
}

func (o *AttachBrushOpItem) Marshalling(list *DrawCmdList) {
	w := binio.NewWriter(brushHandleSize)
	writeBrushHandle(w, AddBrushToCmdList(&list.CmdList, o.brush))
	list.addOpItem(o.typ, w)
}

func (o *AttachBrushOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	canvas.AttachBrush(o.brush)
}

func (o *AttachBrushOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc())
	dumpBrush(b, o.brush)
}

func init() {
	matrix := func(ctor func(drawing.Matrix) *MatrixOpItem) unmarshalFunc {
		return func(_ *DrawCmdList, r *binio.Reader) DrawOpItem { return ctor(readMatrix(r)) }
	}
	registerOp(OpSetMatrix, matrix(NewSetMatrixOpItem))
	registerOp(OpConcatMatrix, matrix(NewConcatMatrixOpItem))
	registerOp(OpTranslate, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		dx := r.F32()
		return NewTranslateOpItem(dx, r.F32())
	})
	registerOp(OpScale, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		sx := r.F32()
		return NewScaleOpItem(sx, r.F32())
	})
	registerOp(OpShear, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		sx := r.F32()
		return NewShearOpItem(sx, r.F32())
	})
	registerOp(OpRotate, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		deg, sx := r.F32(), r.F32()
		return NewRotateOpItem(deg, sx, r.F32())
	})
	for _, t := range []OpType{OpResetMatrix, OpFlush, OpSave, OpRestore, OpDiscard, OpDetachPen, OpDetachBrush} {
		registerOp(t, func(*DrawCmdList, *binio.Reader) DrawOpItem { return newBareOpItem(t) })
	}
	registerOp(OpClear, func(_ *DrawCmdList, r *binio.Reader) DrawOpItem {
		return NewClearOpItem(drawing.Color(r.U32()))
	})
	registerOp(OpSaveLayer, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		rect := readRect(r)
		brush := readOptionalBrush(l, r)
		r.Align()
		op := NewSaveLayerOpItem(drawing.SaveLayerOps{Brush: brush, Flags: r.U32()})
		op.rect = rect
		return op
	})
	registerOp(OpAttachPen, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		return NewAttachPenOpItem(GetPenFromCmdList(&l.CmdList, readPenHandle(r)))
	})
	registerOp(OpAttachBrush, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		return NewAttachBrushOpItem(GetBrushFromCmdList(&l.CmdList, readBrushHandle(r)))
	})
}
