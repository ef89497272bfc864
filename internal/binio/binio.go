// Package binio implements the little-endian field codec shared by the
// command-list records and the resource serializers.
//
// Writer appends to a byte slice. Reader consumes one and remembers the
// first short read, so decoders can read a whole record and check Err once.
package binio

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShort is reported by Reader when the input ends before a field.
var ErrShort = errors.New("binio: short buffer")

// Writer appends little-endian fields.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with room for capacity bytes.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded data.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of encoded bytes.
func (w *Writer) Len() int { return len(w.buf) }

// Reset empties the writer, keeping its capacity.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

func (w *Writer) U8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

func (w *Writer) U16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

func (w *Writer) U32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *Writer) I32(v int32) { w.U32(uint32(v)) } // #nosec G115 -- bit reinterpretation

func (w *Writer) U64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// F32s writes each value in order without a length prefix.
func (w *Writer) F32s(vs ...float32) {
	for _, v := range vs {
		w.F32(v)
	}
}

// Raw appends b without a length prefix.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }

// Blob writes a uint32 length followed by b.
func (w *Writer) Blob(b []byte) {
	w.U32(uint32(len(b))) // #nosec G115 -- blobs are bounded by the 32-bit arena
	w.Raw(b)
}

// String writes s as a Blob.
func (w *Writer) String(s string) {
	w.U32(uint32(len(s))) // #nosec G115 -- bounded by the 32-bit arena
	w.buf = append(w.buf, s...)
}

// Pad appends zero bytes until the length is a multiple of 4.
func (w *Writer) Pad() {
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
}

// Reader consumes little-endian fields.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Err returns ErrShort if any read ran past the end.
func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.buf)-r.off {
		r.err = ErrShort
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Bool() bool { return r.U8() != 0 }

func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) I32() int32 { return int32(r.U32()) } // #nosec G115 -- bit reinterpretation

func (r *Reader) U64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *Reader) F32() float32 { return math.Float32frombits(r.U32()) }

// Raw returns the next n bytes. The slice aliases the input.
func (r *Reader) Raw(n int) []byte { return r.take(n) }

// Blob reads a uint32 length followed by that many bytes.
// The slice aliases the input.
func (r *Reader) Blob() []byte {
	n := r.U32()
	if r.err != nil {
		return nil
	}
	if uint64(n) > uint64(r.Remaining()) {
		r.err = ErrShort
		return nil
	}
	return r.take(int(n))
}

// String reads a Blob and copies it into a string.
func (r *Reader) String() string { return string(r.Blob()) }

// Count reads a uint32 element count and rejects counts whose elements
// could not possibly fit in the remaining input.
func (r *Reader) Count(elemSize int) int {
	n := r.U32()
	if r.err != nil {
		return 0
	}
	if elemSize > 0 && uint64(n)*uint64(elemSize) > uint64(r.Remaining()) {
		r.err = ErrShort
		return 0
	}
	return int(n)
}

// Skip advances n bytes.
func (r *Reader) Skip(n int) { r.take(n) }

// Align skips to the next multiple of 4.
func (r *Reader) Align() {
	if pad := (4 - r.off%4) % 4; pad > 0 {
		r.take(pad)
	}
}
