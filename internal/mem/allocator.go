// Package mem provides the append-only arena that backs command lists.
//
// An Allocator hands out uint32 offsets instead of pointers, so the backing
// slice may be reallocated freely and the whole arena can be copied or sent
// across a process boundary as plain bytes.
package mem

import "math"

// Align is the record alignment used by Allocate and Add.
const Align = 4

// MaxSize is the largest arena the 32-bit offset space can address.
const MaxSize = math.MaxUint32

// Align4 rounds n up to the next multiple of Align.
func Align4(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}

// Allocator is a growable byte arena with stable offsets.
//
// Offsets stay valid until ClearData, Truncate, or one of the Build
// functions replaces the contents. Allocator is not safe for concurrent
// use; owners serialize access.
type Allocator struct {
	data     []byte
	borrowed bool
}

// New returns an empty allocator with room for capacity bytes.
func New(capacity int) *Allocator {
	if capacity < 0 {
		capacity = 0
	}
	return &Allocator{data: make([]byte, 0, capacity)}
}

// Allocate reserves n zeroed bytes at an aligned offset and returns the
// offset together with the writable window.
// It returns ok == false if the arena would exceed MaxSize.
func (a *Allocator) Allocate(n int) (offset uint32, buf []byte, ok bool) {
	if n < 0 {
		return 0, nil, false
	}
	start := Align4(len(a.data))
	end := start + n
	if uint64(end) > MaxSize {
		return 0, nil, false
	}
	a.grow(end)
	return uint32(start), a.data[start:end], true // #nosec G115 -- bounded by MaxSize
}

// Add appends a copy of data at an aligned offset and returns that offset.
// Adding an empty slice returns the current (aligned) size without writing.
func (a *Allocator) Add(data []byte) (uint32, bool) {
	offset, buf, ok := a.Allocate(len(data))
	if !ok {
		return 0, false
	}
	copy(buf, data)
	return offset, true
}

// OffsetToAddr returns the size bytes starting at offset, or nil when the
// range is not fully inside the arena.
func (a *Allocator) OffsetToAddr(offset, size uint32) []byte {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(a.data)) {
		return nil
	}
	return a.data[offset:end:end]
}

// Tail returns everything from offset to the end of the arena, or nil when
// offset is past the end.
func (a *Allocator) Tail(offset uint32) []byte {
	if uint64(offset) >= uint64(len(a.data)) {
		return nil
	}
	return a.data[offset:]
}

// Writable returns a mutable window over [offset, offset+size).
// It detaches a borrowed buffer first so callers never write into memory
// handed in through BuildFromData.
func (a *Allocator) Writable(offset, size uint32) []byte {
	if a.OffsetToAddr(offset, size) == nil {
		return nil
	}
	a.own()
	return a.data[offset : offset+size]
}

// BuildFromData makes data the whole arena without copying.
// The allocator treats data as read-only: the first write copies it.
func (a *Allocator) BuildFromData(data []byte) bool {
	if uint64(len(data)) > MaxSize {
		return false
	}
	a.data = data[:len(data):len(data)]
	a.borrowed = true
	return true
}

// BuildFromDataWithCopy replaces the arena with a private copy of data.
func (a *Allocator) BuildFromDataWithCopy(data []byte) bool {
	if uint64(len(data)) > MaxSize {
		return false
	}
	a.data = append(make([]byte, 0, len(data)), data...)
	a.borrowed = false
	return true
}

// Size returns the number of bytes in use.
func (a *Allocator) Size() uint32 {
	return uint32(len(a.data)) // #nosec G115 -- bounded by MaxSize
}

// Data returns the arena contents. The slice aliases the arena.
func (a *Allocator) Data() []byte {
	return a.data
}

// ClearData drops all contents, keeping the capacity when it is owned.
func (a *Allocator) ClearData() {
	if a.borrowed {
		a.data = nil
		a.borrowed = false
		return
	}
	a.data = a.data[:0]
}

// Truncate shrinks the arena to size bytes. Growing is not allowed.
func (a *Allocator) Truncate(size uint32) bool {
	if uint64(size) > uint64(len(a.data)) {
		return false
	}
	a.data = a.data[:size]
	return true
}

func (a *Allocator) own() {
	if !a.borrowed {
		return
	}
	a.data = append(make([]byte, 0, cap(a.data)), a.data...)
	a.borrowed = false
}

func (a *Allocator) grow(end int) {
	a.own()
	if end <= cap(a.data) {
		old := len(a.data)
		a.data = a.data[:end]
		clear(a.data[old:end])
		return
	}
	newCap := 2 * cap(a.data)
	if newCap < end {
		newCap = end
	}
	if newCap < 64 {
		newCap = 64
	}
	buf := make([]byte, end, newCap)
	copy(buf, a.data)
	a.data = buf
}
