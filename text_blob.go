package drawing

import (
	"fmt"
	"sync/atomic"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/drawing/internal/binio"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

var nextTextBlobID atomic.Uint32

// Glyph is one positioned glyph of a TextBlob, relative to the blob origin.
type Glyph struct {
	ID   uint32
	X, Y float32
}

// TextBlob is an immutable shaped run of text in one font.
type TextBlob struct {
	text    string
	font    Font
	glyphs  []Glyph
	advance float32
	ascent  float32
	descent float32
	id      uint32
}

// MakeTextBlobFromString shapes s with f. The text is NFC-normalized
// first. It returns nil when s is empty or f has no typeface.
func MakeTextBlobFromString(s string, f Font) *TextBlob {
	if s == "" || f.Typeface == nil || f.Size <= 0 {
		return nil
	}
	s = norm.NFC.String(s)
	blob := &TextBlob{text: s, font: f, id: nextTextBlobID.Add(1)}
	if err := blob.shape(); err != nil {
		Logger().Warn("text blob shaping failed", "err", err)
		return nil
	}
	return blob
}

func (b *TextBlob) shape() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("shape %q: %v", b.text, r)
		}
	}()
	pf, err := b.font.Typeface.parsed()
	if err != nil {
		return err
	}
	runes := []rune(b.text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(pf.font),
		Size:      fixed.Int26_6(b.font.Size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	out := (&shaping.HarfbuzzShaper{}).Shape(input)

	b.glyphs = make([]Glyph, len(out.Glyphs))
	var x float32
	for i, g := range out.Glyphs {
		b.glyphs[i] = Glyph{
			ID: uint32(g.GlyphID),
			X:  x + fixedToFloat(g.XOffset),
			Y:  -fixedToFloat(g.YOffset),
		}
		x += fixedToFloat(g.Advance)
	}
	b.advance = x

	if face := pf.source.Face(float64(b.font.Size)); face != nil {
		m := face.Metrics()
		b.ascent, b.descent = float32(m.Ascent), float32(m.Descent)
	}
	return nil
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }

// Text returns the normalized source text.
func (b *TextBlob) Text() string { return b.text }

// Font returns the font the blob was shaped with.
func (b *TextBlob) Font() Font { return b.font }

// Glyphs returns the shaped glyphs. The slice aliases the blob.
func (b *TextBlob) Glyphs() []Glyph { return b.glyphs }

// UniqueID identifies the blob within this process.
func (b *TextBlob) UniqueID() uint32 { return b.id }

// Bounds returns the blob's bounds relative to its baseline origin, or nil
// when the blob has no extent.
func (b *TextBlob) Bounds() *Rect {
	r := Rect{Left: 0, Top: -b.ascent, Right: b.advance, Bottom: b.descent}
	if !r.IsValid() {
		return nil
	}
	return &r
}

// Serialize encodes the text, size and typeface. Glyph positions are
// rebuilt by shaping on deserialize.
func (b *TextBlob) Serialize() []byte {
	tf := b.font.Typeface.Serialize()
	w := binio.NewWriter(len(b.text) + len(tf) + 16)
	w.String(b.text)
	w.F32(b.font.Size)
	w.Blob(tf)
	return w.Bytes()
}

// DeserializeTextBlob decodes bytes written by Serialize.
func DeserializeTextBlob(data []byte) (*TextBlob, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing: decode text blob: %w", ErrEmptyData)
	}
	r := binio.NewReader(data)
	s := r.String()
	size := r.F32()
	tfData := r.Blob()
	if r.Err() != nil {
		return nil, fmt.Errorf("drawing: decode text blob: %w", ErrCorruptData)
	}
	tf, err := DeserializeTypeface(tfData)
	if err != nil {
		return nil, fmt.Errorf("drawing: decode text blob: %w", err)
	}
	blob := MakeTextBlobFromString(s, Font{Typeface: tf, Size: size})
	if blob == nil {
		return nil, fmt.Errorf("drawing: decode text blob: %w", ErrCorruptData)
	}
	return blob, nil
}
