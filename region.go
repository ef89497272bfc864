package drawing

// Region is a set of pixels stored as non-overlapping integer rects.
type Region struct {
	rects []RectI
}

// NewRegion returns an empty region.
func NewRegion() *Region { return &Region{} }

// NewRegionFromRect returns a region covering r.
func NewRegionFromRect(r RectI) *Region {
	reg := &Region{}
	reg.SetRect(r)
	return reg
}

// SetRect replaces the region with r. It reports whether the result is non-empty.
func (r *Region) SetRect(rect RectI) bool {
	r.rects = r.rects[:0]
	if rect.IsValid() {
		r.rects = append(r.rects, rect)
	}
	return !r.IsEmpty()
}

// SetRegion replaces r with a copy of other.
func (r *Region) SetRegion(other *Region) {
	r.rects = append(r.rects[:0], other.rects...)
}

// SetEmpty removes every rect.
func (r *Region) SetEmpty() { r.rects = r.rects[:0] }

// IsEmpty reports whether the region covers nothing.
func (r *Region) IsEmpty() bool { return len(r.rects) == 0 }

// IsRect reports whether the region is exactly one rect.
func (r *Region) IsRect() bool { return len(r.rects) == 1 }

// Rects returns the covering rects. The slice aliases the region.
func (r *Region) Rects() []RectI { return r.rects }

// Bounds returns the bounding rect.
func (r *Region) Bounds() RectI {
	var b RectI
	for _, rc := range r.rects {
		b = b.Join(rc)
	}
	return b
}

// Contains reports whether the pixel (x, y) is inside the region.
func (r *Region) Contains(x, y int32) bool {
	for _, rc := range r.rects {
		if x >= rc.Left && x < rc.Right && y >= rc.Top && y < rc.Bottom {
			return true
		}
	}
	return false
}

// Op combines r with other in place. It reports whether the result is non-empty.
func (r *Region) Op(other *Region, op RegionOp) bool {
	var b []RectI
	if other != nil {
		b = other.rects
	}
	a := r.rects
	switch op {
	case RegionOpDifference:
		r.rects = subtractAll(a, b)
	case RegionOpIntersect:
		r.rects = intersectAll(a, b)
	case RegionOpUnion:
		r.rects = append(append([]RectI(nil), a...), subtractAll(b, a)...)
	case RegionOpXor:
		r.rects = append(subtractAll(a, b), subtractAll(b, a)...)
	case RegionOpReverseDifference:
		r.rects = subtractAll(b, a)
	case RegionOpReplace:
		r.rects = append([]RectI(nil), b...)
	}
	return !r.IsEmpty()
}

// BoundaryPath returns a path made of the region's rects.
func (r *Region) BoundaryPath() *Path {
	p := NewPath()
	for _, rc := range r.rects {
		p.AddRect(rc.Rect())
	}
	return p
}

// Equal reports whether both regions cover exactly the same pixels.
func (r *Region) Equal(o *Region) bool {
	if r == nil || o == nil {
		return r == o
	}
	return len(subtractAll(r.rects, o.rects)) == 0 && len(subtractAll(o.rects, r.rects)) == 0
}

func intersectAll(a, b []RectI) []RectI {
	var out []RectI
	for _, ra := range a {
		for _, rb := range b {
			if in, ok := ra.Intersect(rb); ok {
				out = append(out, in)
			}
		}
	}
	return out
}

// subtractAll returns a minus every rect of b.
func subtractAll(a, b []RectI) []RectI {
	out := append([]RectI(nil), a...)
	for _, rb := range b {
		var next []RectI
		for _, ra := range out {
			next = subtractRect(next, ra, rb)
		}
		out = next
	}
	return out
}

// subtractRect appends up to four pieces of a that lie outside b.
func subtractRect(dst []RectI, a, b RectI) []RectI {
	in, ok := a.Intersect(b)
	if !ok {
		return append(dst, a)
	}
	if a.Top < in.Top {
		dst = append(dst, RectI{a.Left, a.Top, a.Right, in.Top})
	}
	if in.Bottom < a.Bottom {
		dst = append(dst, RectI{a.Left, in.Bottom, a.Right, a.Bottom})
	}
	if a.Left < in.Left {
		dst = append(dst, RectI{a.Left, in.Top, in.Left, in.Bottom})
	}
	if in.Right < a.Right {
		dst = append(dst, RectI{in.Right, in.Top, a.Right, in.Bottom})
	}
	return dst
}
