package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// MaxNestingDepth bounds how deep nested command lists are followed on
// read. Deeper handles are treated as absent.
const MaxNestingDepth = 32

// dialectOp replays one record of a nested list. acc is the value built so
// far; the returned value replaces it.
type dialectOp[T any] func(list *CmdList, r *binio.Reader, acc T, depth int) T

// dialect is the op set of one kind of nested command list.
type dialect[T any] struct {
	typ     CmdListType
	initial func() T
	ops     map[uint32]dialectOp[T]
}

// register adds an op to d. Registering twice is a programming error.
func (d *dialect[T]) register(opType uint32, fn dialectOp[T]) {
	if fn == nil {
		panic("recording: dialect op is nil")
	}
	if _, dup := d.ops[opType]; dup {
		panic("recording: dialect op registered twice for " + d.typ.String())
	}
	d.ops[opType] = fn
}

func newDialect[T any](typ CmdListType, initial func() T) *dialect[T] {
	return &dialect[T]{typ: typ, initial: initial, ops: make(map[uint32]dialectOp[T])}
}

// playback replays every record of list in order and returns the result.
func (d *dialect[T]) playback(list *CmdList, depth int) T {
	acc := d.initial()
	if len(list.GetData()) == 0 {
		return acc
	}
	list.walk(0, func(rec opRecord) bool {
		if rec.typ == uint32(OpItemHead) {
			return true
		}
		fn := d.ops[rec.typ]
		if fn == nil {
			drawing.Logger().Debug("recording: unknown dialect op", "list", d.typ, "type", rec.typ)
			return true
		}
		r := binio.NewReader(rec.payload)
		next := fn(list, r, acc, depth)
		if r.Err() != nil {
			drawing.Logger().Warn("recording: corrupt dialect op", "list", d.typ, "type", rec.typ)
			return true
		}
		acc = next
		return true
	})
	return acc
}

// AddChildToCmdList copies child's arenas into parent and returns a handle
// to them. An empty child yields the zero handle.
func AddChildToCmdList(parent, child *CmdList) CmdListHandle {
	h := CmdListHandle{Type: child.Type()}
	data := child.GetData()
	if len(data) == 0 {
		return h
	}
	h.Offset = parent.AddCmdListData(data)
	if h.Offset == 0 {
		return CmdListHandle{Type: child.Type()}
	}
	h.Size = uint32(len(data)) // #nosec G115 -- bounded by the arena size
	if images := child.GetAllImageData(); len(images) > 0 {
		offset, ok := parent.addImageData(images)
		if ok {
			h.ImageOffset, h.ImageSize = offset, uint32(len(images)) // #nosec G115
		}
	}
	return h
}

// childFromHandle rebuilds a read-only nested list from h. The child
// borrows the parent's bytes.
func childFromHandle(parent *CmdList, h CmdListHandle, want CmdListType, depth int) *CmdList {
	if h.Size == 0 {
		return nil
	}
	if h.Type != want {
		drawing.Logger().Warn("recording: nested list type mismatch", "want", want, "got", h.Type)
		return nil
	}
	if depth >= MaxNestingDepth {
		drawing.Logger().Warn("recording: nested list too deep", "type", want, "depth", depth)
		return nil
	}
	data := parent.GetCmdListData(OpDataHandle{Offset: h.Offset, Size: h.Size})
	if data == nil {
		drawing.Logger().Warn("recording: nested list out of range", "type", want, "offset", h.Offset)
		return nil
	}
	child := NewCmdList(want)
	child.opAllocator.BuildFromData(data)
	if h.ImageSize > 0 {
		if images := parent.GetImageData(h.ImageOffset, h.ImageSize); images != nil {
			child.imageAllocator.BuildFromData(images)
		}
	}
	return child
}

// getFromCmdList materializes the value a nested list handle describes.
func getFromCmdList[T any](parent *CmdList, h CmdListHandle, d *dialect[T], depth int) T {
	child := childFromHandle(parent, h, d.typ, depth)
	if child == nil {
		var zero T
		return zero
	}
	return d.playback(child, depth+1)
}
