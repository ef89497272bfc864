package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// Handles are fixed-size values stored inside op payloads. They refer to
// bytes elsewhere in the same command list by offset. A handle with a zero
// Size refers to nothing.

// OpDataHandle refers to a byte range in one of a list's arenas.
type OpDataHandle struct {
	Offset uint32
	Size   uint32
}

// IsValid reports whether h refers to any bytes.
func (h OpDataHandle) IsValid() bool { return h.Size != 0 }

// FlattenableHandle refers to a flattened object (vertices, typeface) in
// the image arena.
type FlattenableHandle = OpDataHandle

// ImageHandle refers to an encoded image in the image arena, together with
// the image's dimensions and pixel format.
type ImageHandle struct {
	Offset    uint32
	Size      uint32
	Width     int32
	Height    int32
	ColorType drawing.ColorType
	AlphaType drawing.AlphaType
}

// IsValid reports whether h refers to any bytes.
func (h ImageHandle) IsValid() bool { return h.Size != 0 }

// CmdListHandle refers to a nested command list: its op bytes in the
// parent's op arena and its image bytes in the parent's image arena.
type CmdListHandle struct {
	Type        CmdListType
	Offset      uint32
	Size        uint32
	ImageOffset uint32
	ImageSize   uint32
}

// IsValid reports whether h refers to any bytes.
func (h CmdListHandle) IsValid() bool { return h.Size != 0 }

// BrushHandle is the flattened form of drawing.Brush.
type BrushHandle struct {
	Color        drawing.Color
	Mode         drawing.BlendMode
	IsAntiAlias  bool
	ColorFilter  CmdListHandle
	ColorSpace   CmdListHandle
	ShaderEffect CmdListHandle
	ImageFilter  CmdListHandle
	MaskFilter   CmdListHandle
}

// PenHandle is the flattened form of drawing.Pen.
type PenHandle struct {
	Color        drawing.Color
	Mode         drawing.BlendMode
	IsAntiAlias  bool
	Width        float32
	MiterLimit   float32
	CapStyle     drawing.CapStyle
	JoinStyle    drawing.JoinStyle
	ColorFilter  CmdListHandle
	ColorSpace   CmdListHandle
	ShaderEffect CmdListHandle
	ImageFilter  CmdListHandle
	MaskFilter   CmdListHandle
	PathEffect   CmdListHandle
}

// PaintHandle is the flattened form of drawing.Paint.
type PaintHandle struct {
	Style        drawing.PaintStyle
	Color        drawing.Color
	Mode         drawing.BlendMode
	IsAntiAlias  bool
	Width        float32
	MiterLimit   float32
	CapStyle     drawing.CapStyle
	JoinStyle    drawing.JoinStyle
	ColorFilter  CmdListHandle
	ColorSpace   CmdListHandle
	ShaderEffect CmdListHandle
	ImageFilter  CmdListHandle
	MaskFilter   CmdListHandle
	PathEffect   CmdListHandle
}

// LatticeHandle is the flattened form of drawing.Lattice. The divisions,
// cell types, bounds and colors are inline vectors in the op arena.
type LatticeHandle struct {
	XDivs     OpDataHandle
	YDivs     OpDataHandle
	RectTypes OpDataHandle
	Bounds    OpDataHandle
	Colors    OpDataHandle
}

// Handle codecs. Every handle has a fixed encoded size so records stay
// position-independent.

const (
	cmdListHandleSize = 20
	brushHandleSize   = 8 + 5*cmdListHandleSize
	penHandleSize     = 16 + 6*cmdListHandleSize
	paintHandleSize   = 20 + 6*cmdListHandleSize
)

func writeOpData(w *binio.Writer, h OpDataHandle) {
	w.U32(h.Offset)
	w.U32(h.Size)
}

func readOpData(r *binio.Reader) OpDataHandle {
	return OpDataHandle{Offset: r.U32(), Size: r.U32()}
}

func writeImageHandle(w *binio.Writer, h ImageHandle) {
	w.U32(h.Offset)
	w.U32(h.Size)
	w.I32(h.Width)
	w.I32(h.Height)
	w.U8(uint8(h.ColorType))
	w.U8(uint8(h.AlphaType))
	w.U16(0)
}

func readImageHandle(r *binio.Reader) ImageHandle {
	h := ImageHandle{Offset: r.U32(), Size: r.U32(), Width: r.I32(), Height: r.I32()}
	h.ColorType = drawing.ColorType(r.U8())
	h.AlphaType = drawing.AlphaType(r.U8())
	r.U16()
	return h
}

func writeCmdListHandle(w *binio.Writer, h CmdListHandle) {
	w.U32(uint32(h.Type))
	w.U32(h.Offset)
	w.U32(h.Size)
	w.U32(h.ImageOffset)
	w.U32(h.ImageSize)
}

func readCmdListHandle(r *binio.Reader) CmdListHandle {
	return CmdListHandle{
		Type:        CmdListType(r.U32()),
		Offset:      r.U32(),
		Size:        r.U32(),
		ImageOffset: r.U32(),
		ImageSize:   r.U32(),
	}
}

func writeBrushHandle(w *binio.Writer, h BrushHandle) {
	w.U32(uint32(h.Color))
	w.U8(uint8(h.Mode))
	w.Bool(h.IsAntiAlias)
	w.U16(0)
	writeCmdListHandle(w, h.ColorFilter)
	writeCmdListHandle(w, h.ColorSpace)
	writeCmdListHandle(w, h.ShaderEffect)
	writeCmdListHandle(w, h.ImageFilter)
	writeCmdListHandle(w, h.MaskFilter)
}

func readBrushHandle(r *binio.Reader) BrushHandle {
	h := BrushHandle{Color: drawing.Color(r.U32())}
	h.Mode = drawing.BlendMode(r.U8())
	h.IsAntiAlias = r.Bool()
	r.U16()
	h.ColorFilter = readCmdListHandle(r)
	h.ColorSpace = readCmdListHandle(r)
	h.ShaderEffect = readCmdListHandle(r)
	h.ImageFilter = readCmdListHandle(r)
	h.MaskFilter = readCmdListHandle(r)
	return h
}

func writePenHandle(w *binio.Writer, h PenHandle) {
	w.U32(uint32(h.Color))
	w.U8(uint8(h.Mode))
	w.Bool(h.IsAntiAlias)
	w.U8(uint8(h.CapStyle))
	w.U8(uint8(h.JoinStyle))
	w.F32(h.Width)
	w.F32(h.MiterLimit)
	writeCmdListHandle(w, h.ColorFilter)
	writeCmdListHandle(w, h.ColorSpace)
	writeCmdListHandle(w, h.ShaderEffect)
	writeCmdListHandle(w, h.ImageFilter)
	writeCmdListHandle(w, h.MaskFilter)
	writeCmdListHandle(w, h.PathEffect)
}

func readPenHandle(r *binio.Reader) PenHandle {
	h := PenHandle{Color: drawing.Color(r.U32())}
	h.Mode = drawing.BlendMode(r.U8())
	h.IsAntiAlias = r.Bool()
	h.CapStyle = drawing.CapStyle(r.U8())
	h.JoinStyle = drawing.JoinStyle(r.U8())
	h.Width = r.F32()
	h.MiterLimit = r.F32()
	h.ColorFilter = readCmdListHandle(r)
	h.ColorSpace = readCmdListHandle(r)
	h.ShaderEffect = readCmdListHandle(r)
	h.ImageFilter = readCmdListHandle(r)
	h.MaskFilter = readCmdListHandle(r)
	h.PathEffect = readCmdListHandle(r)
	return h
}

func writePaintHandle(w *binio.Writer, h PaintHandle) {
	w.U8(uint8(h.Style))
	w.U8(uint8(h.Mode))
	w.Bool(h.IsAntiAlias)
	w.U8(0)
	w.U32(uint32(h.Color))
	w.F32(h.Width)
	w.F32(h.MiterLimit)
	w.U8(uint8(h.CapStyle))
	w.U8(uint8(h.JoinStyle))
	w.U16(0)
	writeCmdListHandle(w, h.ColorFilter)
	writeCmdListHandle(w, h.ColorSpace)
	writeCmdListHandle(w, h.ShaderEffect)
	writeCmdListHandle(w, h.ImageFilter)
	writeCmdListHandle(w, h.MaskFilter)
	writeCmdListHandle(w, h.PathEffect)
}

func readPaintHandle(r *binio.Reader) PaintHandle {
	var h PaintHandle
	h.Style = drawing.PaintStyle(r.U8())
	h.Mode = drawing.BlendMode(r.U8())
	h.IsAntiAlias = r.Bool()
	r.U8()
	h.Color = drawing.Color(r.U32())
	h.Width = r.F32()
	h.MiterLimit = r.F32()
	h.CapStyle = drawing.CapStyle(r.U8())
	h.JoinStyle = drawing.JoinStyle(r.U8())
	r.U16()
	h.ColorFilter = readCmdListHandle(r)
	h.ColorSpace = readCmdListHandle(r)
	h.ShaderEffect = readCmdListHandle(r)
	h.ImageFilter = readCmdListHandle(r)
	h.MaskFilter = readCmdListHandle(r)
	h.PathEffect = readCmdListHandle(r)
	return h
}

func writeLatticeHandle(w *binio.Writer, h LatticeHandle) {
	writeOpData(w, h.XDivs)
	writeOpData(w, h.YDivs)
	writeOpData(w, h.RectTypes)
	writeOpData(w, h.Bounds)
	writeOpData(w, h.Colors)
}

func readLatticeHandle(r *binio.Reader) LatticeHandle {
	return LatticeHandle{
		XDivs:     readOpData(r),
		YDivs:     readOpData(r),
		RectTypes: readOpData(r),
		Bounds:    readOpData(r),
		Colors:    readOpData(r),
	}
}

// Geometry codecs.

func writePoint(w *binio.Writer, p drawing.Point) { w.F32s(p.X, p.Y) }

func readPoint(r *binio.Reader) drawing.Point { return drawing.Point{X: r.F32(), Y: r.F32()} }

func writePoint3(w *binio.Writer, p drawing.Point3) { w.F32s(p.X, p.Y, p.Z) }

func readPoint3(r *binio.Reader) drawing.Point3 {
	return drawing.Point3{X: r.F32(), Y: r.F32(), Z: r.F32()}
}

func writeRect(w *binio.Writer, rc drawing.Rect) { w.F32s(rc.Left, rc.Top, rc.Right, rc.Bottom) }

func readRect(r *binio.Reader) drawing.Rect {
	return drawing.Rect{Left: r.F32(), Top: r.F32(), Right: r.F32(), Bottom: r.F32()}
}

func writeRectI(w *binio.Writer, rc drawing.RectI) {
	w.I32(rc.Left)
	w.I32(rc.Top)
	w.I32(rc.Right)
	w.I32(rc.Bottom)
}

func readRectI(r *binio.Reader) drawing.RectI {
	return drawing.RectI{Left: r.I32(), Top: r.I32(), Right: r.I32(), Bottom: r.I32()}
}

func writeRoundRect(w *binio.Writer, rr drawing.RoundRect) {
	writeRect(w, rr.Rect)
	for _, p := range rr.Radii {
		writePoint(w, p)
	}
}

func readRoundRect(r *binio.Reader) drawing.RoundRect {
	rr := drawing.RoundRect{Rect: readRect(r)}
	for i := range rr.Radii {
		rr.Radii[i] = readPoint(r)
	}
	return rr
}

func writeMatrix(w *binio.Writer, m drawing.Matrix) { w.F32s(m[:]...) }

func readMatrix(r *binio.Reader) drawing.Matrix {
	var m drawing.Matrix
	for i := range m {
		m[i] = r.F32()
	}
	return m
}

func writeSampling(w *binio.Writer, s drawing.SamplingOptions) {
	w.U8(uint8(s.Filter))
	w.U8(uint8(s.Mipmap))
	w.U16(0)
}

func readSampling(r *binio.Reader) drawing.SamplingOptions {
	s := drawing.SamplingOptions{Filter: drawing.FilterMode(r.U8()), Mipmap: drawing.MipmapMode(r.U8())}
	r.U16()
	return s
}
