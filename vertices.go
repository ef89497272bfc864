package drawing

import (
	"fmt"

	"github.com/gogpu/drawing/internal/binio"
)

// Vertices is an indexed triangle mesh with optional texture coordinates
// and per-vertex colors.
type Vertices struct {
	Mode      VertexMode
	Positions []Point
	TexCoords []Point
	Colors    []Color
	Indices   []uint16
}

// Bounds returns the bounds of the positions.
func (v *Vertices) Bounds() Rect {
	if len(v.Positions) == 0 {
		return Rect{}
	}
	p0 := v.Positions[0]
	b := Rect{p0.X, p0.Y, p0.X, p0.Y}
	for _, p := range v.Positions[1:] {
		b.Left, b.Right = min(b.Left, p.X), max(b.Right, p.X)
		b.Top, b.Bottom = min(b.Top, p.Y), max(b.Bottom, p.Y)
	}
	return b
}

// Serialize encodes the mesh.
func (v *Vertices) Serialize() []byte {
	w := binio.NewWriter(16 + len(v.Positions)*20 + len(v.Indices)*2)
	w.U8(uint8(v.Mode))
	writePoints(w, v.Positions)
	writePoints(w, v.TexCoords)
	w.U32(uint32(len(v.Colors))) // #nosec G115
	for _, c := range v.Colors {
		w.U32(uint32(c))
	}
	w.U32(uint32(len(v.Indices))) // #nosec G115
	for _, i := range v.Indices {
		w.U16(i)
	}
	return w.Bytes()
}

// DeserializeVertices decodes bytes written by Serialize.
func DeserializeVertices(data []byte) (*Vertices, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing: decode vertices: %w", ErrEmptyData)
	}
	r := binio.NewReader(data)
	v := &Vertices{Mode: VertexMode(r.U8())}
	v.Positions = readPoints(r)
	v.TexCoords = readPoints(r)
	if n := r.Count(4); n > 0 {
		v.Colors = make([]Color, n)
		for i := range v.Colors {
			v.Colors[i] = Color(r.U32())
		}
	}
	if n := r.Count(2); n > 0 {
		v.Indices = make([]uint16, n)
		for i := range v.Indices {
			v.Indices[i] = r.U16()
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("drawing: decode vertices: %w", ErrCorruptData)
	}
	if len(v.TexCoords) != 0 && len(v.TexCoords) != len(v.Positions) ||
		len(v.Colors) != 0 && len(v.Colors) != len(v.Positions) {
		return nil, fmt.Errorf("drawing: decode vertices: attribute count mismatch: %w", ErrCorruptData)
	}
	return v, nil
}

func writePoints(w *binio.Writer, pts []Point) {
	w.U32(uint32(len(pts))) // #nosec G115
	for _, p := range pts {
		w.F32(p.X)
		w.F32(p.Y)
	}
}

func readPoints(r *binio.Reader) []Point {
	n := r.Count(8)
	if n == 0 {
		return nil
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{r.F32(), r.F32()}
	}
	return pts
}
