package recording

import (
	"encoding/binary"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// UnmarshalMode selects where a DrawCmdList keeps its ops.
type UnmarshalMode uint8

const (
	// UnmarshalModeImmediate keeps ops only as arena records. Live ops are
	// rebuilt on demand whenever the arena has grown.
	UnmarshalModeImmediate UnmarshalMode = iota
	// UnmarshalModeDeferred keeps live ops in a vector. AddDrawOp appends
	// to it and MarshallingDrawOps writes it to the arena.
	UnmarshalModeDeferred
)

func (m UnmarshalMode) String() string {
	if m == UnmarshalModeDeferred {
		return "Deferred"
	}
	return "Immediate"
}

// drawCmdListHeaderSize is the width/height header in front of the first
// record.
const drawCmdListHeaderSize = 8

// ReplacedOpPair maps the arena offset of an op to the offset of the
// cached op that replaces it.
type ReplacedOpPair struct {
	Original    uint32
	Replacement uint32
}

// replacedOp remembers the op a cached op displaced in the op vector.
type replacedOp struct {
	index int
	op    DrawOpItem
}

// recordingCanvas is implemented by canvases that collect ops instead of
// drawing them.
type recordingCanvas interface {
	GetDrawCmdList() *DrawCmdList
}

// DrawCmdList is a replayable list of draw ops.
//
// The op arena starts with the int32 width and height; records follow at
// offset 8. A list plays back against any drawing.Canvas. Playing into a
// recording canvas copies the ops into that canvas's list instead.
//
// DrawCmdList is safe for concurrent use.
type DrawCmdList struct {
	CmdList

	opMu                    sync.Mutex
	width, height           int32
	mode                    UnmarshalMode
	drawOpItems             []DrawOpItem
	lastOpGenSize           uint32
	replacedOpListForVector []replacedOp
	replacedOpListForBuffer []ReplacedOpPair
	isCached                bool
	cachedHighContrast      bool
	cacheMark               *arenaMark
}

// NewDrawCmdList returns an empty list of the given size.
func NewDrawCmdList(width, height int32, mode UnmarshalMode) *DrawCmdList {
	l := &DrawCmdList{width: width, height: height, mode: mode}
	l.typ = CmdListTypeDraw
	l.reset(l.header())
	return l
}

// NewDrawCmdListMode returns an empty zero-sized list.
func NewDrawCmdListMode(mode UnmarshalMode) *DrawCmdList {
	return NewDrawCmdList(0, 0, mode)
}

// CreateFromData returns a DEFERRED list over an op arena produced by
// GetData. With isCopy false the list borrows data. The image arena is
// supplied separately with SetUpImageData; call UnmarshallingDrawOps
// afterwards to build the ops.
func CreateFromData(data []byte, isCopy bool) *DrawCmdList {
	l := &DrawCmdList{mode: UnmarshalModeDeferred}
	l.typ = CmdListTypeDraw
	if len(data) < drawCmdListHeaderSize {
		drawing.Logger().Warn("recording: draw list data too short", "size", len(data))
		l.reset(l.header())
		return l
	}
	l.adopt(data, isCopy, drawCmdListHeaderSize)
	l.width = int32(binary.LittleEndian.Uint32(data))     // #nosec G115
	l.height = int32(binary.LittleEndian.Uint32(data[4:])) // #nosec G115
	return l
}

func (l *DrawCmdList) header() []byte {
	w := binio.NewWriter(drawCmdListHeaderSize)
	w.I32(l.width)
	w.I32(l.height)
	return w.Bytes()
}

func (l *DrawCmdList) writeHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if buf := l.opAllocator.Writable(0, drawCmdListHeaderSize); buf != nil {
		copy(buf, l.header())
	}
}

// addOpItem appends a record built by an op's Marshalling.
func (l *DrawCmdList) addOpItem(t OpType, w *binio.Writer) {
	l.AddOp(uint32(t), w.Bytes())
}

// GetType returns CmdListTypeDraw.
func (l *DrawCmdList) GetType() CmdListType { return CmdListTypeDraw }

// Mode returns the unmarshal mode.
func (l *DrawCmdList) Mode() UnmarshalMode { return l.mode }

func (l *DrawCmdList) GetWidth() int32 {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	return l.width
}

func (l *DrawCmdList) GetHeight() int32 {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	return l.height
}

// SetWidth sets the width and updates the arena header.
func (l *DrawCmdList) SetWidth(width int32) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.width = width
	l.writeHeader()
}

// SetHeight sets the height and updates the arena header.
func (l *DrawCmdList) SetHeight(height int32) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.height = height
	l.writeHeader()
}

// AddDrawOp appends op to the op vector. It fails for IMMEDIATE lists,
// whose ops live only in the arena, and for nil ops.
func (l *DrawCmdList) AddDrawOp(op DrawOpItem) bool {
	if op == nil || isNilOp(op) || l.mode != UnmarshalModeDeferred {
		return false
	}
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.drawOpItems = append(l.drawOpItems, op)
	return true
}

// isNilOp reports whether op is a nil pointer of some op type. Every op
// reaches Type through its embedded opItem, which a nil pointer cannot.
func isNilOp(op DrawOpItem) (isNil bool) {
	defer func() {
		if recover() != nil {
			isNil = true
		}
	}()
	op.Type()
	return false
}

// ClearOp empties the list: both arenas, the op vector, the side tables
// and any cache overlay.
func (l *DrawCmdList) ClearOp() {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.reset(l.header())
	l.clearImageData()
	l.drawOpItems = nil
	l.lastOpGenSize = 0
	l.dropCacheLocked()
	l.clearSideTables()
}

func (l *DrawCmdList) dropCacheLocked() {
	l.replacedOpListForVector = nil
	l.replacedOpListForBuffer = nil
	l.isCached = false
	l.cacheMark = nil
}

// IsEmpty reports whether the list has nothing to play.
func (l *DrawCmdList) IsEmpty() bool {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	if l.mode == UnmarshalModeDeferred {
		return len(l.drawOpItems) == 0
	}
	return l.arenaSize() <= drawCmdListHeaderSize && len(l.drawOpItems) == 0
}

// GetOpItemSize returns the number of ops: the vector length for DEFERRED
// lists and the number of records for IMMEDIATE ones.
func (l *DrawCmdList) GetOpItemSize() int {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	if l.mode == UnmarshalModeDeferred {
		return len(l.drawOpItems)
	}
	return l.GetOpCnt()
}

func (l *DrawCmdList) arenaSize() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opAllocator.Size()
}

// MarshallingDrawOps writes the op vector of a DEFERRED list to its arena.
//
// When a cache overlay is active the displaced ops are written in their
// original positions and the cached ops after them, and the buffer overlay
// is rebuilt to map one to the other. The op vector is left as it is.
func (l *DrawCmdList) MarshallingDrawOps() {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	if l.mode == UnmarshalModeImmediate {
		return
	}
	if len(l.replacedOpListForVector) == 0 {
		for _, op := range l.drawOpItems {
			if op != nil {
				op.Marshalling(l)
			}
		}
		return
	}

	displaced := make(map[int]DrawOpItem, len(l.replacedOpListForVector))
	for _, rep := range l.replacedOpListForVector {
		displaced[rep.index] = rep.op
	}
	originals := make(map[int]uint32, len(displaced))
	for i, op := range l.drawOpItems {
		if orig, ok := displaced[i]; ok {
			op = orig
		}
		if op == nil {
			continue
		}
		op.Marshalling(l)
		if _, ok := displaced[i]; ok {
			originals[i], _ = l.lastOp()
		}
	}
	pairs := make([]ReplacedOpPair, 0, len(l.replacedOpListForVector))
	for _, rep := range l.replacedOpListForVector {
		orig, ok := originals[rep.index]
		cached := l.drawOpItems[rep.index]
		if !ok || cached == nil {
			continue
		}
		cached.Marshalling(l)
		repl, _ := l.lastOp()
		pairs = append(pairs, ReplacedOpPair{Original: orig, Replacement: repl})
	}
	l.replacedOpListForBuffer = pairs
}

// UnmarshallingDrawOps rebuilds the op vector from the arena and then
// releases the image arena, since every image is decoded by now. Records
// with unknown types are skipped. A buffer overlay set by SetReplacedOpList
// or a cache pass is applied.
func (l *DrawCmdList) UnmarshallingDrawOps() {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	if l.unmarshallingLocked() {
		l.clearImageData()
	}
}

// unmarshallingLocked rebuilds the op vector. It reports whether the arena
// held any records.
func (l *DrawCmdList) unmarshallingLocked() bool {
	size := l.arenaSize()
	if size <= drawCmdListHeaderSize {
		return false
	}
	player := NewUnmarshallingPlayer(l)
	replacements := make(map[uint32]uint32, len(l.replacedOpListForBuffer))
	var firstReplacement uint32
	for i, p := range l.replacedOpListForBuffer {
		replacements[p.Original] = p.Replacement
		if i == 0 || p.Replacement < firstReplacement {
			firstReplacement = p.Replacement
		}
	}

	l.drawOpItems = nil
	l.replacedOpListForVector = nil
	l.walk(drawCmdListHeaderSize, func(rec opRecord) bool {
		op := player.unmarshalRecord(OpType(rec.typ), rec.payload)
		if op == nil {
			return true
		}
		if repl, ok := replacements[rec.offset]; ok {
			if rrec, ok := l.readRecord(repl); ok {
				if cached := player.unmarshalRecord(OpType(rrec.typ), rrec.payload); cached != nil {
					l.replacedOpListForVector = append(l.replacedOpListForVector,
						replacedOp{index: len(l.drawOpItems), op: op})
					op = cached
				}
			}
		}
		l.drawOpItems = append(l.drawOpItems, op)
		return len(replacements) == 0 || rec.next < firstReplacement
	})
	l.lastOpGenSize = size
	if len(l.replacedOpListForVector) > 0 {
		l.isCached = true
	}
	return true
}

// Playback plays the list against canvas. rect is the bounds adaptive
// ops draw into; nil means an empty rect.
//
// Playing into a recording canvas copies the ops into its list instead.
// The canvas's cache type and high contrast mode decide whether the cache
// overlay is built or dropped first. The canvas's paint is detached at the
// end.
func (l *DrawCmdList) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	if l.GetWidth() <= 0 || l.GetHeight() <= 0 {
		return
	}
	if canvas.GetDrawingType() == drawing.DrawingTypeRecording {
		if rc, ok := canvas.(recordingCanvas); ok {
			l.PlaybackToDrawCmdList(rc.GetDrawCmdList())
			return
		}
	}

	l.opMu.Lock()
	defer l.opMu.Unlock()
	if l.isCached && canvas.IsHighContrastEnabled() != l.cachedHighContrast {
		l.clearCacheLocked()
	}
	switch canvas.GetCacheType() {
	case drawing.CacheTypeEnabled:
		if !l.isCached {
			l.generateCacheLocked(canvas, rect)
		}
	case drawing.CacheTypeDisabled:
		if l.isCached {
			l.clearCacheLocked()
		}
	}

	var bounds drawing.Rect
	if rect != nil {
		bounds = *rect
	}
	ops := l.opsLocked()
	if len(ops) == 0 {
		return
	}
	for _, op := range ops {
		if op != nil {
			op.Playback(canvas, &bounds)
		}
	}
	canvas.DetachPaint()
}

// opsLocked returns the op vector, rebuilding it for IMMEDIATE lists whose
// arena has changed since the last rebuild.
func (l *DrawCmdList) opsLocked() []DrawOpItem {
	if l.mode == UnmarshalModeImmediate {
		if size := l.arenaSize(); size <= drawCmdListHeaderSize {
			return nil
		} else if size != l.lastOpGenSize {
			l.unmarshallingLocked()
		}
	}
	return l.drawOpItems
}

// PlaybackToDrawCmdList copies the ops into target. A DEFERRED target gets
// the live ops appended; an IMMEDIATE target gets them marshalled into its
// arena with its own offsets.
func (l *DrawCmdList) PlaybackToDrawCmdList(target *DrawCmdList) {
	if target == nil || target == l {
		return
	}
	l.opMu.Lock()
	ops := slices.Clone(l.opsLocked())
	l.opMu.Unlock()

	if target.mode == UnmarshalModeDeferred {
		target.opMu.Lock()
		defer target.opMu.Unlock()
		for _, op := range ops {
			if op != nil {
				target.drawOpItems = append(target.drawOpItems, op)
			}
		}
		return
	}
	for _, op := range ops {
		if op != nil {
			op.Marshalling(target)
		}
	}
}

// GenerateCache replaces text blob ops with cached image ops rendered
// through canvas. It does nothing when a cache is already in place.
func (l *DrawCmdList) GenerateCache(canvas drawing.Canvas, rect *drawing.Rect) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.generateCacheLocked(canvas, rect)
}

func (l *DrawCmdList) generateCacheLocked(canvas drawing.Canvas, _ *drawing.Rect) {
	if l.isCached {
		return
	}
	if l.mode == UnmarshalModeImmediate {
		l.generateCacheByBuffer(canvas)
	} else {
		l.generateCacheByVector(canvas)
	}
	l.isCached = true
	l.cachedHighContrast = canvas != nil && canvas.IsHighContrastEnabled()
	drawing.Logger().Debug("recording: cache generated", "mode", l.mode,
		"replaced", len(l.replacedOpListForVector)+len(l.replacedOpListForBuffer))
}

func (l *DrawCmdList) generateCacheByVector(canvas drawing.Canvas) {
	for i, op := range l.drawOpItems {
		blob, ok := op.(*DrawTextBlobOpItem)
		if !ok {
			continue
		}
		if cached := blob.GenerateCachedOpItem(canvas); cached != nil {
			l.replacedOpListForVector = append(l.replacedOpListForVector, replacedOp{index: i, op: op})
			l.drawOpItems[i] = cached
		}
	}
}

// generateCacheByBuffer appends cached records after the existing chain
// and records the overlay. The arena state before the pass is kept so
// ClearCache can truncate back to it.
func (l *DrawCmdList) generateCacheByBuffer(canvas drawing.Canvas) {
	maxOffset := l.arenaSize()
	if maxOffset <= drawCmdListHeaderSize {
		return
	}
	m := l.mark()
	l.cacheMark = &m
	player := &generatedCachedOpItemPlayer{list: l, canvas: canvas}
	l.walk(drawCmdListHeaderSize, func(rec opRecord) bool {
		if repl, ok := player.generateCachedOpItem(OpType(rec.typ), rec.offset); ok {
			l.replacedOpListForBuffer = append(l.replacedOpListForBuffer,
				ReplacedOpPair{Original: rec.offset, Replacement: repl})
		}
		return rec.next < maxOffset
	})
}

// ClearCache restores the ops the cache pass displaced. In IMMEDIATE mode
// the cached records are truncated away so the arena is as it was.
func (l *DrawCmdList) ClearCache() {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.clearCacheLocked()
}

func (l *DrawCmdList) clearCacheLocked() {
	for _, rep := range l.replacedOpListForVector {
		if rep.index < len(l.drawOpItems) {
			l.drawOpItems[rep.index] = rep.op
		}
	}
	if l.cacheMark != nil {
		before := l.arenaSize()
		l.rollback(*l.cacheMark)
		if l.lastOpGenSize == before {
			l.lastOpGenSize = l.cacheMark.opSize
		}
	}
	l.dropCacheLocked()
}

func (l *DrawCmdList) GetIsCache() bool {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	return l.isCached
}

func (l *DrawCmdList) SetIsCache(isCached bool) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.isCached = isCached
}

func (l *DrawCmdList) GetCachedHighContrast() bool {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	return l.cachedHighContrast
}

func (l *DrawCmdList) SetCachedHighContrast(enabled bool) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.cachedHighContrast = enabled
}

// GetReplacedOpList returns a copy of the buffer overlay.
func (l *DrawCmdList) GetReplacedOpList() []ReplacedOpPair {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	return slices.Clone(l.replacedOpListForBuffer)
}

// SetReplacedOpList installs a buffer overlay received with the arena.
// It takes effect on the next unmarshalling.
func (l *DrawCmdList) SetReplacedOpList(pairs []ReplacedOpPair) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.replacedOpListForBuffer = slices.Clone(pairs)
}

// UpdateNodeIDToPicture stamps id on every op.
func (l *DrawCmdList) UpdateNodeIDToPicture(id uint64) {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	for _, op := range l.drawOpItems {
		if op != nil {
			op.SetNodeID(id)
		}
	}
}

// CountTextBlobNum returns the number of text blob ops.
func (l *DrawCmdList) CountTextBlobNum() int {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	n := 0
	if l.mode == UnmarshalModeDeferred {
		for _, op := range l.drawOpItems {
			if op != nil && op.Type() == OpTextBlob {
				n++
			}
		}
		return n
	}
	maxOffset := l.arenaSize()
	if maxOffset <= drawCmdListHeaderSize {
		return 0
	}
	l.walk(drawCmdListHeaderSize, func(rec opRecord) bool {
		if rec.typ == uint32(OpTextBlob) {
			n++
		}
		return rec.next < maxOffset
	})
	return n
}

// GetOpsWithDesc returns the op names, one per line.
func (l *DrawCmdList) GetOpsWithDesc() string {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	var b strings.Builder
	for _, op := range l.opsLocked() {
		if op == nil {
			continue
		}
		b.WriteString(op.Desc())
		b.WriteByte('\n')
	}
	return b.String()
}

// Dump returns the dumps of all ops separated by spaces.
func (l *DrawCmdList) Dump() string {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	var b strings.Builder
	for _, op := range l.opsLocked() {
		if op == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		op.Dump(&b)
	}
	return b.String()
}
