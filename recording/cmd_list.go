package recording

import (
	"encoding/binary"
	"strconv"
	"sync"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/mem"
	"github.com/gogpu/gg/cache"
)

// CmdListType tags the dialect of a command list. Nested list handles
// carry it so a reader can refuse a handle of the wrong kind.
type CmdListType uint32

const (
	CmdListTypeBase CmdListType = iota
	CmdListTypeColorFilter
	CmdListTypeColorSpace
	CmdListTypeDraw
	CmdListTypeImageFilter
	CmdListTypeMaskFilter
	CmdListTypePath
	CmdListTypePathEffect
	CmdListTypeRegion
	CmdListTypeShaderEffect
)

var cmdListTypeNames = [...]string{
	CmdListTypeBase:         "CmdList",
	CmdListTypeColorFilter:  "ColorFilterCmdList",
	CmdListTypeColorSpace:   "ColorSpaceCmdList",
	CmdListTypeDraw:         "DrawCmdList",
	CmdListTypeImageFilter:  "ImageFilterCmdList",
	CmdListTypeMaskFilter:   "MaskFilterCmdList",
	CmdListTypePath:         "PathCmdList",
	CmdListTypePathEffect:   "PathEffectCmdList",
	CmdListTypeRegion:       "RegionCmdList",
	CmdListTypeShaderEffect: "ShaderEffectCmdList",
}

func (t CmdListType) String() string {
	if int(t) < len(cmdListTypeNames) {
		return cmdListTypeNames[t]
	}
	return "CmdListType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// opHeaderSize is the size of the {type, next} prefix of every record.
const opHeaderSize = 8

// imageCacheShardCapacity bounds decoded images kept per shard.
const imageCacheShardCapacity = 8

// CmdList is a flat, relocatable list of op records plus the image arena
// holding their large resources.
//
// Every record starts with {type uint32, next uint32}. next is the offset
// of the following record, or 0 for the last one. Records and inline data
// are 4-byte aligned. Offsets stay valid when the arena grows, so a whole
// list can be copied or sent to another process as two byte slices.
//
// CmdList is safe for concurrent use. The arenas share one mutex; the
// pixel map and image object side tables each have their own.
type CmdList struct {
	typ CmdListType

	mu               sync.Mutex
	opAllocator      mem.Allocator
	imageAllocator   mem.Allocator
	lastOpItemOffset uint32
	hasLastOp        bool
	opCnt            int

	imageMu    sync.Mutex
	imageIDs   map[uint32]ImageHandle
	imageCache *cache.ShardedCache[uint32, *drawing.Image]

	pixelMapMu sync.Mutex
	pixelMaps  []*drawing.PixelMap

	imageObjectMu sync.Mutex
	imageObjects  []drawing.ImageObject
}

// NewCmdList returns an empty list of the given dialect.
func NewCmdList(typ CmdListType) *CmdList {
	return &CmdList{typ: typ}
}

// Type returns the dialect tag.
func (c *CmdList) Type() CmdListType { return c.typ }

// AddOp appends a record of the given type and links the previous record
// to it. It returns the record offset, or ok == false when the arena is
// full.
func (c *CmdList) AddOp(typ uint32, payload []byte) (offset uint32, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addOpLocked(typ, payload, true)
}

func (c *CmdList) addOpLocked(typ uint32, payload []byte, counted bool) (uint32, bool) {
	offset, buf, ok := c.opAllocator.Allocate(opHeaderSize + len(payload))
	if !ok {
		drawing.Logger().Warn("recording: op arena full", "type", typ)
		return 0, false
	}
	binary.LittleEndian.PutUint32(buf, typ)
	copy(buf[opHeaderSize:], payload)
	if c.hasLastOp {
		if next := c.opAllocator.Writable(c.lastOpItemOffset+4, 4); next != nil {
			binary.LittleEndian.PutUint32(next, offset)
		}
	}
	c.lastOpItemOffset, c.hasLastOp = offset, true
	if counted {
		c.opCnt++
	}
	return offset, true
}

// AddCmdListData appends raw inline data to the op arena and returns its
// offset, or 0 on failure. Before the first record exists a head record is
// written so the data never precedes the chain start.
func (c *CmdList) AddCmdListData(data []byte) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasLastOp {
		if _, ok := c.addOpLocked(uint32(OpItemHead), nil, false); !ok {
			return 0
		}
	}
	offset, ok := c.opAllocator.Add(data)
	if !ok {
		drawing.Logger().Warn("recording: op arena full", "size", len(data))
		return 0
	}
	return offset
}

// AddImageData appends data to the image arena and returns its offset,
// or 0 on failure.
func (c *CmdList) AddImageData(data []byte) uint32 {
	offset, _ := c.addImageData(data)
	return offset
}

func (c *CmdList) addImageData(data []byte) (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	offset, ok := c.imageAllocator.Add(data)
	if !ok {
		drawing.Logger().Warn("recording: image arena full", "size", len(data))
	}
	return offset, ok
}

// GetCmdListData returns the op arena bytes h refers to, or nil.
func (c *CmdList) GetCmdListData(h OpDataHandle) []byte {
	if h.Size == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opAllocator.OffsetToAddr(h.Offset, h.Size)
}

// GetImageData returns size bytes of the image arena at offset, or nil.
func (c *CmdList) GetImageData(offset, size uint32) []byte {
	if size == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imageAllocator.OffsetToAddr(offset, size)
}

// GetData returns the op arena. The slice aliases the list.
func (c *CmdList) GetData() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opAllocator.Data()
}

// GetAllImageData returns the image arena. The slice aliases the list.
func (c *CmdList) GetAllImageData() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imageAllocator.Data()
}

// SetUpImageData adopts data as the image arena without copying.
func (c *CmdList) SetUpImageData(data []byte) bool {
	c.resetImages()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imageAllocator.BuildFromData(data)
}

// GetOpCnt returns the number of records appended with AddOp.
func (c *CmdList) GetOpCnt() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opCnt
}

// ReplaceOpData overwrites the payload of the record at offset in place.
// The new payload must fit the old record.
func (c *CmdList) ReplaceOpData(offset uint32, payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := c.opAllocator.Writable(offset+opHeaderSize, uint32(len(payload))) // #nosec G115
	if buf == nil {
		return false
	}
	copy(buf, payload)
	return true
}

// AddImage stores img in the image arena. Images already stored are found
// by their unique id and not encoded twice.
func (c *CmdList) AddImage(img *drawing.Image) ImageHandle {
	if img == nil {
		return ImageHandle{}
	}
	c.imageMu.Lock()
	defer c.imageMu.Unlock()
	if h, ok := c.imageIDs[img.UniqueID()]; ok {
		return h
	}
	data, err := img.Serialize()
	if err != nil {
		drawing.Logger().Warn("recording: encode image", "err", err)
		return ImageHandle{}
	}
	offset, ok := c.addImageData(data)
	if !ok {
		return ImageHandle{}
	}
	h := ImageHandle{
		Offset:    offset,
		Size:      uint32(len(data)), // #nosec G115
		Width:     img.Width(),
		Height:    img.Height(),
		ColorType: img.ColorType(),
		AlphaType: img.AlphaType(),
	}
	if c.imageIDs == nil {
		c.imageIDs = make(map[uint32]ImageHandle)
	}
	c.imageIDs[img.UniqueID()] = h
	return h
}

// GetImage decodes the image h refers to. Decoded images are cached by
// offset for the life of the image arena.
func (c *CmdList) GetImage(h ImageHandle) *drawing.Image {
	if h.Size == 0 {
		return nil
	}
	c.imageMu.Lock()
	defer c.imageMu.Unlock()
	if c.imageCache != nil {
		if img, ok := c.imageCache.Get(h.Offset); ok {
			return img
		}
	}
	data := c.GetImageData(h.Offset, h.Size)
	if data == nil {
		drawing.Logger().Warn("recording: image handle out of range", "offset", h.Offset, "size", h.Size)
		return nil
	}
	img, err := drawing.DeserializeImage(data)
	if err != nil {
		drawing.Logger().Warn("recording: decode image", "err", err)
		return nil
	}
	if c.imageCache == nil {
		c.imageCache = cache.NewSharded[uint32, *drawing.Image](imageCacheShardCapacity, offsetHasher)
	}
	c.imageCache.Set(h.Offset, img)
	return img
}

func offsetHasher(offset uint32) uint64 { return cache.Uint64Hasher(uint64(offset) >> 2) }

// AddPixelMap stores pm in the side table and returns its index.
func (c *CmdList) AddPixelMap(pm *drawing.PixelMap) uint32 {
	c.pixelMapMu.Lock()
	defer c.pixelMapMu.Unlock()
	c.pixelMaps = append(c.pixelMaps, pm)
	return uint32(len(c.pixelMaps) - 1) // #nosec G115
}

// GetPixelMap returns the side table entry at index, or nil.
func (c *CmdList) GetPixelMap(index uint32) *drawing.PixelMap {
	c.pixelMapMu.Lock()
	defer c.pixelMapMu.Unlock()
	if uint64(index) >= uint64(len(c.pixelMaps)) {
		return nil
	}
	return c.pixelMaps[index]
}

// GetAllPixelMaps returns a copy of the pixel map side table.
func (c *CmdList) GetAllPixelMaps() []*drawing.PixelMap {
	c.pixelMapMu.Lock()
	defer c.pixelMapMu.Unlock()
	return append([]*drawing.PixelMap(nil), c.pixelMaps...)
}

// SetupPixelMaps replaces the pixel map side table.
func (c *CmdList) SetupPixelMaps(pms []*drawing.PixelMap) {
	c.pixelMapMu.Lock()
	defer c.pixelMapMu.Unlock()
	c.pixelMaps = append(c.pixelMaps[:0], pms...)
}

// AddImageObject stores obj in the side table and returns its index.
func (c *CmdList) AddImageObject(obj drawing.ImageObject) uint32 {
	c.imageObjectMu.Lock()
	defer c.imageObjectMu.Unlock()
	c.imageObjects = append(c.imageObjects, obj)
	return uint32(len(c.imageObjects) - 1) // #nosec G115
}

// GetImageObject returns the side table entry at index, or nil.
func (c *CmdList) GetImageObject(index uint32) drawing.ImageObject {
	c.imageObjectMu.Lock()
	defer c.imageObjectMu.Unlock()
	if uint64(index) >= uint64(len(c.imageObjects)) {
		return nil
	}
	return c.imageObjects[index]
}

// GetAllImageObjects returns a copy of the image object side table.
func (c *CmdList) GetAllImageObjects() []drawing.ImageObject {
	c.imageObjectMu.Lock()
	defer c.imageObjectMu.Unlock()
	return append([]drawing.ImageObject(nil), c.imageObjects...)
}

// SetupImageObjects replaces the image object side table.
func (c *CmdList) SetupImageObjects(objs []drawing.ImageObject) {
	c.imageObjectMu.Lock()
	defer c.imageObjectMu.Unlock()
	c.imageObjects = append(c.imageObjects[:0], objs...)
}

// swapSideTables exchanges the side tables of c and o.
func (c *CmdList) swapSideTables(o *CmdList) {
	c.pixelMapMu.Lock()
	o.pixelMapMu.Lock()
	c.pixelMaps, o.pixelMaps = o.pixelMaps, c.pixelMaps
	o.pixelMapMu.Unlock()
	c.pixelMapMu.Unlock()

	c.imageObjectMu.Lock()
	o.imageObjectMu.Lock()
	c.imageObjects, o.imageObjects = o.imageObjects, c.imageObjects
	o.imageObjectMu.Unlock()
	c.imageObjectMu.Unlock()
}

func (c *CmdList) clearSideTables() {
	c.pixelMapMu.Lock()
	c.pixelMaps = nil
	c.pixelMapMu.Unlock()
	c.imageObjectMu.Lock()
	c.imageObjects = nil
	c.imageObjectMu.Unlock()
}

// resetImages forgets deduplication and decoded images. imageMu is taken
// before mu everywhere, so callers must not hold mu.
func (c *CmdList) resetImages() {
	c.imageMu.Lock()
	defer c.imageMu.Unlock()
	c.imageIDs = nil
	if c.imageCache != nil {
		c.imageCache.Clear()
	}
}

// clearImageData releases the image arena. The buffer is dropped rather
// than reused since decoded resources may still alias it.
func (c *CmdList) clearImageData() {
	c.resetImages()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.imageAllocator = mem.Allocator{}
}

// lastOp returns the offset of the last record.
func (c *CmdList) lastOp() (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOpItemOffset, c.hasLastOp
}

// arenaMark captures the arena state for rollback.
type arenaMark struct {
	opSize           uint32
	imageSize        uint32
	lastOpItemOffset uint32
	hasLastOp        bool
	opCnt            int
}

func (c *CmdList) mark() arenaMark {
	c.mu.Lock()
	defer c.mu.Unlock()
	return arenaMark{
		opSize:           c.opAllocator.Size(),
		imageSize:        c.imageAllocator.Size(),
		lastOpItemOffset: c.lastOpItemOffset,
		hasLastOp:        c.hasLastOp,
		opCnt:            c.opCnt,
	}
}

// rollback truncates both arenas to m and unlinks records appended since.
func (c *CmdList) rollback(m arenaMark) {
	c.resetImages()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opAllocator.Truncate(m.opSize)
	c.imageAllocator.Truncate(m.imageSize)
	if m.hasLastOp {
		if next := c.opAllocator.Writable(m.lastOpItemOffset+4, 4); next != nil {
			binary.LittleEndian.PutUint32(next, 0)
		}
	}
	c.lastOpItemOffset, c.hasLastOp, c.opCnt = m.lastOpItemOffset, m.hasLastOp, m.opCnt
}

// reset empties both arenas and writes header in front of the first record.
func (c *CmdList) reset(header []byte) {
	c.resetImages()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opAllocator.ClearData()
	c.imageAllocator.ClearData()
	c.opAllocator.Add(header)
	c.lastOpItemOffset, c.hasLastOp, c.opCnt = 0, false, 0
}

// opRecord is one record as seen by a walk over the op arena.
type opRecord struct {
	offset  uint32
	typ     uint32
	next    uint32
	payload []byte
}

// readRecord returns the record at offset, or ok == false when its header
// is not inside the arena.
func (c *CmdList) readRecord(offset uint32) (opRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tail := c.opAllocator.Tail(offset)
	if len(tail) < opHeaderSize {
		return opRecord{}, false
	}
	return opRecord{
		offset:  offset,
		typ:     binary.LittleEndian.Uint32(tail),
		next:    binary.LittleEndian.Uint32(tail[4:]),
		payload: tail[opHeaderSize:],
	}, true
}

// walk visits records starting at offset and following next links.
// It stops at the last record, at fn returning false, or at a link that
// does not move forward, which would otherwise loop forever.
func (c *CmdList) walk(offset uint32, fn func(rec opRecord) bool) {
	for {
		rec, ok := c.readRecord(offset)
		if !ok {
			drawing.Logger().Warn("recording: record out of range", "offset", offset)
			return
		}
		if !fn(rec) || rec.next == 0 {
			return
		}
		if rec.next <= rec.offset {
			drawing.Logger().Warn("recording: record chain does not advance",
				"offset", rec.offset, "next", rec.next)
			return
		}
		offset = rec.next
	}
}

// adopt replaces the op arena with data and rebuilds the chain state by
// walking the records from start. The head record is not counted.
func (c *CmdList) adopt(data []byte, isCopy bool, start uint32) bool {
	c.resetImages()
	c.mu.Lock()
	var ok bool
	if isCopy {
		ok = c.opAllocator.BuildFromDataWithCopy(data)
	} else {
		ok = c.opAllocator.BuildFromData(data)
	}
	c.lastOpItemOffset, c.hasLastOp, c.opCnt = 0, false, 0
	c.mu.Unlock()
	if !ok || uint32(len(data)) <= start { // #nosec G115
		return ok
	}

	var last uint32
	var seen bool
	count := 0
	c.walk(start, func(rec opRecord) bool {
		last, seen = rec.offset, true
		if rec.typ != uint32(OpItemHead) {
			count++
		}
		return true
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastOpItemOffset, c.hasLastOp, c.opCnt = last, seen, count
	return true
}
