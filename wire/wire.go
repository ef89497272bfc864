// Package wire frames the arenas of a recording.DrawCmdList for storage or
// transport between processes.
//
// An envelope is a fixed little-endian header followed by the replaced op
// pairs of a cached list, the op and image arenas (optionally brotli
// compressed) and a CRC32 of the uncompressed arenas:
//
//	magic "DCMD" | version u16 | flags u16 | width i32 | height i32
//	opLen u32 | imageLen u32 | payloadLen u32 | replacedCount u32
//	replaced pairs (original u32, replacement u32) ...
//	payload (op arena then image arena)
//	crc32 u32 (when FlagChecksum is set)
//
// The arenas themselves are carried unchanged.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/recording"
)

// Magic starts every envelope.
const Magic = "DCMD"

// Version is the envelope version written by Encode.
const Version uint16 = 1

// Envelope flags.
const (
	FlagCompressed uint16 = 1 << iota
	FlagChecksum
)

const (
	headerSize = 32
	pairSize   = 8
	crcSize    = 4

	// maxArenaSize bounds the arenas a decoder allocates for.
	maxArenaSize = 1 << 30
)

// Errors returned by Decode and ReadFrom.
var (
	ErrBadMagic           = errors.New("wire: bad magic")
	ErrUnsupportedVersion = errors.New("wire: unsupported version")
	ErrChecksum           = errors.New("wire: checksum mismatch")
	ErrTruncated          = errors.New("wire: truncated envelope")
	ErrTooLarge           = errors.New("wire: arena too large")
)

// Header is the fixed part of an envelope.
type Header struct {
	Version       uint16
	Flags         uint16
	Width         int32
	Height        int32
	OpLen         uint32
	ImageLen      uint32
	PayloadLen    uint32
	ReplacedCount uint32
}

// Compressed reports whether the payload is brotli compressed.
func (h Header) Compressed() bool { return h.Flags&FlagCompressed != 0 }

// HasChecksum reports whether a CRC32 trailer follows the payload.
func (h Header) HasChecksum() bool { return h.Flags&FlagChecksum != 0 }

// size returns the length of the whole envelope described by h.
func (h Header) size() int64 {
	n := int64(headerSize) + int64(h.ReplacedCount)*pairSize + int64(h.PayloadLen)
	if h.HasChecksum() {
		n += crcSize
	}
	return n
}

func (h Header) appendTo(b []byte) []byte {
	b = append(b, Magic...)
	b = binary.LittleEndian.AppendUint16(b, h.Version)
	b = binary.LittleEndian.AppendUint16(b, h.Flags)
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Width))  // #nosec G115 -- bit reinterpretation
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Height)) // #nosec G115 -- bit reinterpretation
	b = binary.LittleEndian.AppendUint32(b, h.OpLen)
	b = binary.LittleEndian.AppendUint32(b, h.ImageLen)
	b = binary.LittleEndian.AppendUint32(b, h.PayloadLen)
	b = binary.LittleEndian.AppendUint32(b, h.ReplacedCount)
	return b
}

// ParseHeader decodes and validates the fixed header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) >= len(Magic) && string(data[:len(Magic)]) != Magic {
		return Header{}, ErrBadMagic
	}
	if len(data) < headerSize {
		return Header{}, fmt.Errorf("wire: header: %w", ErrTruncated)
	}
	le := binary.LittleEndian
	h := Header{
		Version:       le.Uint16(data[4:]),
		Flags:         le.Uint16(data[6:]),
		Width:         int32(le.Uint32(data[8:])),  // #nosec G115 -- bit reinterpretation
		Height:        int32(le.Uint32(data[12:])), // #nosec G115 -- bit reinterpretation
		OpLen:         le.Uint32(data[16:]),
		ImageLen:      le.Uint32(data[20:]),
		PayloadLen:    le.Uint32(data[24:]),
		ReplacedCount: le.Uint32(data[28:]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if uint64(h.OpLen)+uint64(h.ImageLen) > maxArenaSize || h.PayloadLen > maxArenaSize ||
		uint64(h.ReplacedCount)*pairSize > maxArenaSize {
		return Header{}, ErrTooLarge
	}
	if !h.Compressed() && h.PayloadLen != h.OpLen+h.ImageLen {
		return Header{}, fmt.Errorf("wire: payload length %d for %d+%d bytes of arena: %w",
			h.PayloadLen, h.OpLen, h.ImageLen, ErrTruncated)
	}
	return h, nil
}

// Encode frames list. A DEFERRED list whose ops have not been written to
// its arena yet is marshalled first.
func Encode(list *recording.DrawCmdList, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if list.Mode() == recording.UnmarshalModeDeferred && list.GetOpCnt() == 0 && list.GetOpItemSize() > 0 {
		list.MarshallingDrawOps()
	}
	ops := list.GetData()
	images := list.GetAllImageData()
	pairs := list.GetReplacedOpList()

	h := Header{
		Version:       Version,
		Width:         list.GetWidth(),
		Height:        list.GetHeight(),
		OpLen:         uint32(len(ops)),    // #nosec G115 -- arenas are 32-bit addressed
		ImageLen:      uint32(len(images)), // #nosec G115 -- arenas are 32-bit addressed
		ReplacedCount: uint32(len(pairs)),  // #nosec G115
	}
	if o.checksum {
		h.Flags |= FlagChecksum
	}

	payload := make([]byte, 0, len(ops)+len(images))
	payload = append(append(payload, ops...), images...)
	crc := crc32.ChecksumIEEE(payload)
	if o.compress {
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, o.level)
		if _, err := w.Write(payload); err != nil {
			return nil, fmt.Errorf("wire: compress: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("wire: compress: %w", err)
		}
		payload = buf.Bytes()
		h.Flags |= FlagCompressed
	}
	h.PayloadLen = uint32(len(payload)) // #nosec G115

	out := make([]byte, 0, h.size())
	out = h.appendTo(out)
	for _, p := range pairs {
		out = binary.LittleEndian.AppendUint32(out, p.Original)
		out = binary.LittleEndian.AppendUint32(out, p.Replacement)
	}
	out = append(out, payload...)
	if o.checksum {
		out = binary.LittleEndian.AppendUint32(out, crc)
	}

	drawing.Logger().Debug("wire: encoded draw list",
		"ops", len(ops), "images", len(images), "payload", len(payload), "compressed", o.compress)
	return out, nil
}

// Decode rebuilds a DEFERRED list from an envelope produced by Encode. The
// returned list owns its arenas and has its ops unmarshalled.
func Decode(data []byte) (*recording.DrawCmdList, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) < h.size() {
		return nil, fmt.Errorf("wire: %d of %d bytes: %w", len(data), h.size(), ErrTruncated)
	}
	return decodeBody(h, data[headerSize:h.size()])
}

func decodeBody(h Header, body []byte) (*recording.DrawCmdList, error) {
	le := binary.LittleEndian
	pairs := make([]recording.ReplacedOpPair, h.ReplacedCount)
	for i := range pairs {
		pairs[i] = recording.ReplacedOpPair{Original: le.Uint32(body), Replacement: le.Uint32(body[4:])}
		body = body[pairSize:]
	}
	payload := body[:h.PayloadLen]

	if h.Compressed() {
		arena := make([]byte, int(h.OpLen)+int(h.ImageLen))
		r := brotli.NewReader(bytes.NewReader(payload))
		if _, err := io.ReadFull(r, arena); err != nil {
			return nil, fmt.Errorf("wire: decompress: %w: %w", ErrTruncated, err)
		}
		payload = arena
	} else {
		payload = bytes.Clone(payload)
	}

	if h.HasChecksum() {
		want := le.Uint32(body[h.PayloadLen:])
		if got := crc32.ChecksumIEEE(payload); got != want {
			return nil, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, got, want)
		}
	}

	ops := payload[:h.OpLen:h.OpLen]
	images := payload[h.OpLen:]
	list := recording.CreateFromData(ops, false)
	if list.GetWidth() != h.Width || list.GetHeight() != h.Height {
		drawing.Logger().Warn("wire: header size differs from arena",
			"header", [2]int32{h.Width, h.Height}, "arena", [2]int32{list.GetWidth(), list.GetHeight()})
	}
	if len(images) > 0 && !list.SetUpImageData(images) {
		return nil, fmt.Errorf("wire: image arena: %w", drawing.ErrCorruptData)
	}
	if len(pairs) > 0 {
		list.SetReplacedOpList(pairs)
	}
	list.UnmarshallingDrawOps()
	return list, nil
}

// WriteTo encodes list and writes the envelope to w.
func WriteTo(w io.Writer, list *recording.DrawCmdList, opts ...Option) (int64, error) {
	data, err := Encode(list, opts...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("wire: write: %w", err)
	}
	return int64(n), nil
}

// ReadFrom reads exactly one envelope from r and decodes it.
func ReadFrom(r io.Reader) (*recording.DrawCmdList, error) {
	head := make([]byte, headerSize)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("wire: read: %w", err)
	}
	h, err := ParseHeader(head[:n])
	if err != nil {
		return nil, err
	}
	body := make([]byte, h.size()-headerSize)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("wire: body: %w", ErrTruncated)
		}
		return nil, fmt.Errorf("wire: read: %w", err)
	}
	return decodeBody(h, body)
}
