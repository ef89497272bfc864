package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// UnmarshallingPlayer rebuilds live ops from the records of a list.
type UnmarshallingPlayer struct {
	list *DrawCmdList
}

// NewUnmarshallingPlayer returns a player reading records of list.
func NewUnmarshallingPlayer(list *DrawCmdList) *UnmarshallingPlayer {
	return &UnmarshallingPlayer{list: list}
}

// Unmarshalling rebuilds the op of type t whose record starts at offset.
// It returns nil for the head record, for types with no registered
// unmarshal function and for records whose payload is short.
func (p *UnmarshallingPlayer) Unmarshalling(t OpType, offset uint32) DrawOpItem {
	if t == OpItemHead {
		return nil
	}
	rec, ok := p.list.readRecord(offset)
	if !ok {
		drawing.Logger().Warn("recording: record out of range", "op", t, "offset", offset)
		return nil
	}
	return p.unmarshalRecord(t, rec.payload)
}

func (p *UnmarshallingPlayer) unmarshalRecord(t OpType, payload []byte) DrawOpItem {
	fn, ok := lookupUnmarshaler(t)
	if !ok {
		drawing.Logger().Debug("recording: unknown op type skipped", "type", uint32(t))
		return nil
	}
	r := binio.NewReader(payload)
	op := fn(p.list, r)
	if r.Err() != nil {
		drawing.Logger().Warn("recording: corrupt op record", "op", t, "err", r.Err())
		return nil
	}
	return op
}

// CanvasPlayer plays records straight from the arena without building the
// op vector.
type CanvasPlayer struct {
	canvas drawing.Canvas
	list   *DrawCmdList
	rect   *drawing.Rect
}

// NewCanvasPlayer returns a player drawing records of list to canvas.
func NewCanvasPlayer(canvas drawing.Canvas, list *DrawCmdList, rect *drawing.Rect) *CanvasPlayer {
	return &CanvasPlayer{canvas: canvas, list: list, rect: rect}
}

// Playback plays the record of type t at offset. It returns false when the
// record could not be turned into an op.
func (p *CanvasPlayer) Playback(t OpType, offset uint32) bool {
	op := NewUnmarshallingPlayer(p.list).Unmarshalling(t, offset)
	if op == nil {
		return false
	}
	op.Playback(p.canvas, p.rect)
	return true
}

// generatedCachedOpItemPlayer appends cached replacements for records that
// support caching. Only text blobs do.
type generatedCachedOpItemPlayer struct {
	list   *DrawCmdList
	canvas drawing.Canvas
}

// generateCachedOpItem appends the replacement for the record at offset
// and returns the replacement's offset.
func (p *generatedCachedOpItemPlayer) generateCachedOpItem(t OpType, offset uint32) (uint32, bool) {
	if t != OpTextBlob {
		return 0, false
	}
	op, ok := NewUnmarshallingPlayer(p.list).Unmarshalling(t, offset).(*DrawTextBlobOpItem)
	if !ok {
		return 0, false
	}
	cached := op.GenerateCachedOpItem(p.canvas)
	if cached == nil {
		return 0, false
	}
	cached.Marshalling(p.list)
	return p.list.lastOp()
}
