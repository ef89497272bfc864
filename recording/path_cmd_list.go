package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
	"github.com/gogpu/gg"
)

// Path ops. A path list replays its records onto one accumulating path.
const (
	pathOpMoveTo uint32 = iota + 1
	pathOpLineTo
	pathOpQuadTo
	pathOpCubicTo
	pathOpClose
	pathOpSetFillType
	pathOpAddPath
)

var pathDialect = newDialect(CmdListTypePath, drawing.NewPath)

// AddPathToCmdList records path as a nested list of list.
func AddPathToCmdList(list *CmdList, path *drawing.Path) CmdListHandle {
	if path == nil {
		return CmdListHandle{}
	}
	child := NewCmdList(CmdListTypePath)
	recordPath(child, path)
	return AddChildToCmdList(list, child)
}

// GetPathFromCmdList rebuilds the path h refers to, or nil.
func GetPathFromCmdList(list *CmdList, h CmdListHandle) *drawing.Path {
	if h.Size == 0 {
		return nil
	}
	return getFromCmdList(list, h, pathDialect, 0)
}

func recordPath(list *CmdList, path *drawing.Path) {
	w := binio.NewWriter(32)
	f32 := func(v float64) float32 { return float32(v) }
	if ft := path.FillType(); ft != drawing.PathFillWinding {
		w.U32(uint32(ft))
		list.AddOp(pathOpSetFillType, w.Bytes())
	}
	for _, e := range path.Elements() {
		w.Reset()
		var op uint32
		switch e := e.(type) {
		case gg.MoveTo:
			op = pathOpMoveTo
			w.F32s(f32(e.Point.X), f32(e.Point.Y))
		case gg.LineTo:
			op = pathOpLineTo
			w.F32s(f32(e.Point.X), f32(e.Point.Y))
		case gg.QuadTo:
			op = pathOpQuadTo
			w.F32s(f32(e.Control.X), f32(e.Control.Y), f32(e.Point.X), f32(e.Point.Y))
		case gg.CubicTo:
			op = pathOpCubicTo
			w.F32s(f32(e.Control1.X), f32(e.Control1.Y), f32(e.Control2.X), f32(e.Control2.Y),
				f32(e.Point.X), f32(e.Point.Y))
		case gg.Close:
			op = pathOpClose
		default:
			continue
		}
		list.AddOp(op, w.Bytes())
	}
}

// RecordAddPath appends an AddPath record that splices src into the path
// being built by list.
func RecordAddPath(list *CmdList, src *drawing.Path) {
	w := binio.NewWriter(24)
	writeCmdListHandle(w, AddPathToCmdList(list, src))
	list.AddOp(pathOpAddPath, w.Bytes())
}

func init() {
	d := pathDialect
	d.register(pathOpMoveTo, func(_ *CmdList, r *binio.Reader, p *drawing.Path, _ int) *drawing.Path {
		x, y := r.F32(), r.F32()
		p.MoveTo(x, y)
		return p
	})
	d.register(pathOpLineTo, func(_ *CmdList, r *binio.Reader, p *drawing.Path, _ int) *drawing.Path {
		x, y := r.F32(), r.F32()
		p.LineTo(x, y)
		return p
	})
	d.register(pathOpQuadTo, func(_ *CmdList, r *binio.Reader, p *drawing.Path, _ int) *drawing.Path {
		cx, cy, x, y := r.F32(), r.F32(), r.F32(), r.F32()
		p.QuadTo(cx, cy, x, y)
		return p
	})
	d.register(pathOpCubicTo, func(_ *CmdList, r *binio.Reader, p *drawing.Path, _ int) *drawing.Path {
		c1x, c1y, c2x, c2y, x, y := r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
		p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		return p
	})
	d.register(pathOpClose, func(_ *CmdList, _ *binio.Reader, p *drawing.Path, _ int) *drawing.Path {
		p.Close()
		return p
	})
	d.register(pathOpSetFillType, func(_ *CmdList, r *binio.Reader, p *drawing.Path, _ int) *drawing.Path {
		p.SetFillType(drawing.PathFillType(r.U32()))
		return p
	})
	d.register(pathOpAddPath, func(l *CmdList, r *binio.Reader, p *drawing.Path, depth int) *drawing.Path {
		p.AddPath(getFromCmdList(l, readCmdListHandle(r), pathDialect, depth))
		return p
	})
}
