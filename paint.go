package drawing

// Filter groups the filters a Brush, Pen or Paint may carry.
type Filter struct {
	ColorFilter *ColorFilter
	ImageFilter *ImageFilter
	MaskFilter  *MaskFilter
}

// IsEmpty reports whether no filter is set.
func (f Filter) IsEmpty() bool {
	return f.ColorFilter == nil && f.ImageFilter == nil && f.MaskFilter == nil
}

// Brush describes how shapes are filled.
type Brush struct {
	Color        Color
	BlendMode    BlendMode
	AntiAlias    bool
	Filter       Filter
	ShaderEffect *ShaderEffect
	ColorSpace   *ColorSpace
}

// NewBrush returns an opaque black SrcOver brush.
func NewBrush() Brush {
	return Brush{Color: ColorBlack, BlendMode: BlendSrcOver}
}

// Pen describes how shapes are stroked.
type Pen struct {
	Color        Color
	BlendMode    BlendMode
	AntiAlias    bool
	Width        float32
	MiterLimit   float32
	Cap          CapStyle
	Join         JoinStyle
	Filter       Filter
	ShaderEffect *ShaderEffect
	ColorSpace   *ColorSpace
	PathEffect   *PathEffect
}

// DefaultMiterLimit is the miter limit of a new pen.
const DefaultMiterLimit = 4

// NewPen returns an opaque black hairline pen.
func NewPen() Pen {
	return Pen{Color: ColorBlack, BlendMode: BlendSrcOver, MiterLimit: DefaultMiterLimit}
}

// Paint merges Brush and Pen state with a style selector.
type Paint struct {
	Style        PaintStyle
	Color        Color
	BlendMode    BlendMode
	AntiAlias    bool
	Width        float32
	MiterLimit   float32
	Cap          CapStyle
	Join         JoinStyle
	Filter       Filter
	ShaderEffect *ShaderEffect
	ColorSpace   *ColorSpace
	PathEffect   *PathEffect
}

// NewPaint returns a fill paint with default pen settings.
func NewPaint() Paint {
	return Paint{Style: PaintFill, Color: ColorBlack, BlendMode: BlendSrcOver, MiterLimit: DefaultMiterLimit}
}

// PaintFromBrush returns a fill paint with the brush's settings.
func PaintFromBrush(b Brush) Paint {
	p := NewPaint()
	p.Color, p.BlendMode, p.AntiAlias = b.Color, b.BlendMode, b.AntiAlias
	p.Filter, p.ShaderEffect, p.ColorSpace = b.Filter, b.ShaderEffect, b.ColorSpace
	return p
}

// PaintFromPen returns a stroke paint with the pen's settings.
func PaintFromPen(pen Pen) Paint {
	return Paint{
		Style:        PaintStroke,
		Color:        pen.Color,
		BlendMode:    pen.BlendMode,
		AntiAlias:    pen.AntiAlias,
		Width:        pen.Width,
		MiterLimit:   pen.MiterLimit,
		Cap:          pen.Cap,
		Join:         pen.Join,
		Filter:       pen.Filter,
		ShaderEffect: pen.ShaderEffect,
		ColorSpace:   pen.ColorSpace,
		PathEffect:   pen.PathEffect,
	}
}

// HasFilter reports whether any filter is set.
func (p Paint) HasFilter() bool { return !p.Filter.IsEmpty() }

// HasFill reports whether the style fills.
func (p Paint) HasFill() bool { return p.Style == PaintFill || p.Style == PaintFillStroke }

// HasStroke reports whether the style strokes.
func (p Paint) HasStroke() bool { return p.Style == PaintStroke || p.Style == PaintFillStroke }

// Brush projects the fill half of p.
func (p Paint) Brush() Brush {
	return Brush{Color: p.Color, BlendMode: p.BlendMode, AntiAlias: p.AntiAlias,
		Filter: p.Filter, ShaderEffect: p.ShaderEffect, ColorSpace: p.ColorSpace}
}

// Pen projects the stroke half of p.
func (p Paint) Pen() Pen {
	return Pen{Color: p.Color, BlendMode: p.BlendMode, AntiAlias: p.AntiAlias, Width: p.Width,
		MiterLimit: p.MiterLimit, Cap: p.Cap, Join: p.Join, Filter: p.Filter,
		ShaderEffect: p.ShaderEffect, ColorSpace: p.ColorSpace, PathEffect: p.PathEffect}
}

// SaveLayerOps are the arguments of Canvas.SaveLayer.
// Nil Bounds means unbounded; nil Brush means a plain layer.
type SaveLayerOps struct {
	Bounds *Rect
	Brush  *Brush
	Flags  uint32
}

// Lattice splits an image into stretchable cells for DrawImageLattice.
type Lattice struct {
	XDivs     []int32
	YDivs     []int32
	RectTypes []LatticeRectType
	Bounds    *RectI
	Colors    []Color
}

// AdaptiveImageInfo describes how an image fills the playback rect.
type AdaptiveImageInfo struct {
	FitNum    int32
	RepeatNum int32
	Radius    [CornerNumber]Point
	Scale     float32
	UniqueID  uint32
	Width     int32
	Height    int32
}

// Image fit modes used by AdaptiveImageInfo.FitNum.
const (
	ImageFitFill int32 = iota
	ImageFitContain
	ImageFitCover
	ImageFitNone
)
