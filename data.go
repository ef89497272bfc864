package drawing

import "errors"

// ErrEmptyData is returned when deserializing zero bytes.
var ErrEmptyData = errors.New("drawing: empty data")

// ErrCorruptData is returned when serialized bytes do not parse.
var ErrCorruptData = errors.New("drawing: corrupt data")

// Data is an immutable byte blob.
type Data struct {
	b []byte
}

// NewData wraps b without copying. The caller must not modify b afterwards.
func NewData(b []byte) *Data { return &Data{b: b} }

// CopyData returns a Data holding a copy of b.
func CopyData(b []byte) *Data { return &Data{b: append([]byte(nil), b...)} }

// Bytes returns the contents.
func (d *Data) Bytes() []byte {
	if d == nil {
		return nil
	}
	return d.b
}

// Size returns the length in bytes.
func (d *Data) Size() int {
	if d == nil {
		return 0
	}
	return len(d.b)
}
