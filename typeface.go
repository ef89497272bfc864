package drawing

import (
	"bytes"
	"fmt"
	"hash/fnv"

	"github.com/go-text/typesetting/font"
	"github.com/gogpu/drawing/internal/binio"
	"github.com/gogpu/gg/cache"
	"github.com/gogpu/gg/text"
)

// parsedFont holds the two parsed views of one font file: gg's face source
// for rasterizing and go-text's font for shaping.
type parsedFont struct {
	source *text.FontSource
	font   *font.Font
	err    error
}

// fontCache shares parsed fonts between typefaces built from equal bytes.
var fontCache = cache.NewSharded[uint64, *parsedFont](16, cache.Uint64Hasher)

// Typeface is a font file identified by the hash of its bytes.
type Typeface struct {
	name string
	data []byte
	id   uint64
}

// NewTypefaceFromData parses data as a TrueType/OpenType font.
func NewTypefaceFromData(name string, data []byte) (*Typeface, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing: typeface %q: %w", name, ErrEmptyData)
	}
	h := fnv.New64a()
	_, _ = h.Write(data) // fnv.Write never returns an error
	tf := &Typeface{name: name, data: data, id: h.Sum64()}
	if _, err := tf.parsed(); err != nil {
		return nil, err
	}
	return tf, nil
}

func (t *Typeface) parsed() (*parsedFont, error) {
	pf := fontCache.GetOrCreate(t.id, func() (pf *parsedFont) {
		pf = &parsedFont{}
		// Malformed tables can panic inside the font parsers.
		defer func() {
			if r := recover(); r != nil {
				pf.source, pf.font = nil, nil
				pf.err = fmt.Errorf("parse font: %v", r)
			}
		}()
		pf.source, pf.err = text.NewFontSource(t.data)
		if pf.err != nil {
			return pf
		}
		face, err := font.ParseTTF(bytes.NewReader(t.data))
		if err != nil {
			pf.err = err
			return pf
		}
		pf.font = face.Font
		return pf
	})
	if pf.err != nil {
		return nil, fmt.Errorf("drawing: typeface %q: %w", t.name, pf.err)
	}
	return pf, nil
}

// Name returns the family name given at creation.
func (t *Typeface) Name() string { return t.name }

// UniqueID is the FNV-64a hash of the font bytes.
func (t *Typeface) UniqueID() uint64 { return t.id }

// Data returns the font file bytes.
func (t *Typeface) Data() []byte { return t.data }

// Face returns a gg text face at size, or nil if the font cannot be parsed.
func (t *Typeface) Face(size float32) text.Face {
	pf, err := t.parsed()
	if err != nil {
		Logger().Warn("typeface face unavailable", "name", t.name, "err", err)
		return nil
	}
	return pf.source.Face(float64(size))
}

// Serialize encodes the name and font bytes.
func (t *Typeface) Serialize() []byte {
	w := binio.NewWriter(len(t.data) + len(t.name) + 8)
	w.String(t.name)
	w.Blob(t.data)
	return w.Bytes()
}

// DeserializeTypeface decodes bytes written by Serialize.
func DeserializeTypeface(data []byte) (*Typeface, error) {
	r := binio.NewReader(data)
	name := r.String()
	fontData := r.Blob()
	if r.Err() != nil {
		return nil, fmt.Errorf("drawing: decode typeface: %w", ErrCorruptData)
	}
	return NewTypefaceFromData(name, append([]byte(nil), fontData...))
}

// Font pairs a typeface with a size.
type Font struct {
	Typeface *Typeface
	Size     float32
}
