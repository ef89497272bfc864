package binio

import (
	"errors"
	"testing"
)

func TestWriterReaderFields(t *testing.T) {
	w := NewWriter(0)
	w.U8(7)
	w.Bool(true)
	w.U16(0xBEEF)
	w.U32(0xDEADBEEF)
	w.I32(-5)
	w.U64(1 << 40)
	w.F32(1.5)
	w.String("hello")
	w.Blob([]byte{1, 2})

	r := NewReader(w.Bytes())
	if got := r.U8(); got != 7 {
		t.Errorf("U8() = %d, want 7", got)
	}
	if !r.Bool() {
		t.Error("Bool() = false, want true")
	}
	if got := r.U16(); got != 0xBEEF {
		t.Errorf("U16() = %#x, want 0xbeef", got)
	}
	if got := r.U32(); got != 0xDEADBEEF {
		t.Errorf("U32() = %#x, want 0xdeadbeef", got)
	}
	if got := r.I32(); got != -5 {
		t.Errorf("I32() = %d, want -5", got)
	}
	if got := r.U64(); got != 1<<40 {
		t.Errorf("U64() = %d, want %d", got, uint64(1<<40))
	}
	if got := r.F32(); got != 1.5 {
		t.Errorf("F32() = %v, want 1.5", got)
	}
	if got := r.String(); got != "hello" {
		t.Errorf("String() = %q, want hello", got)
	}
	if got := r.Blob(); len(got) != 2 || got[1] != 2 {
		t.Errorf("Blob() = %v, want [1 2]", got)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderShort(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if got := r.U32(); got != 0 {
		t.Errorf("U32() on short input = %d, want 0", got)
	}
	if !errors.Is(r.Err(), ErrShort) {
		t.Errorf("Err() = %v, want ErrShort", r.Err())
	}
	// Errors are sticky.
	if got := r.U8(); got != 0 {
		t.Errorf("U8() after error = %d, want 0", got)
	}
}

func TestReaderBlobLengthBeyondInput(t *testing.T) {
	w := NewWriter(0)
	w.U32(1000)
	w.Raw([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if got := r.Blob(); got != nil {
		t.Errorf("Blob() = %v, want nil", got)
	}
	if r.Err() == nil {
		t.Error("Err() = nil, want ErrShort")
	}
}

func TestReaderCountRejectsOversized(t *testing.T) {
	w := NewWriter(0)
	w.U32(1 << 30)
	r := NewReader(w.Bytes())
	if got := r.Count(8); got != 0 || r.Err() == nil {
		t.Errorf("Count() = %d, err %v; want 0 and an error", got, r.Err())
	}
}

func TestPadAndAlign(t *testing.T) {
	w := NewWriter(0)
	w.U8(1)
	w.Pad()
	w.U32(9)
	if w.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", w.Len())
	}

	r := NewReader(w.Bytes())
	r.U8()
	r.Align()
	if got := r.U32(); got != 9 {
		t.Errorf("U32() after Align = %d, want 9", got)
	}
}
