package drawing

import "strconv"

// BlendMode selects how source pixels combine with the destination.
type BlendMode uint8

const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = [...]string{
	BlendClear:      "Clear",
	BlendSrc:        "Src",
	BlendDst:        "Dst",
	BlendSrcOver:    "SrcOver",
	BlendDstOver:    "DstOver",
	BlendSrcIn:      "SrcIn",
	BlendDstIn:      "DstIn",
	BlendSrcOut:     "SrcOut",
	BlendDstOut:     "DstOut",
	BlendSrcATop:    "SrcATop",
	BlendDstATop:    "DstATop",
	BlendXor:        "Xor",
	BlendPlus:       "Plus",
	BlendModulate:   "Modulate",
	BlendScreen:     "Screen",
	BlendOverlay:    "Overlay",
	BlendDarken:     "Darken",
	BlendLighten:    "Lighten",
	BlendColorDodge: "ColorDodge",
	BlendColorBurn:  "ColorBurn",
	BlendHardLight:  "HardLight",
	BlendSoftLight:  "SoftLight",
	BlendDifference: "Difference",
	BlendExclusion:  "Exclusion",
	BlendMultiply:   "Multiply",
	BlendHue:        "Hue",
	BlendSaturation: "Saturation",
	BlendColor:      "Color",
	BlendLuminosity: "Luminosity",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "BlendMode(" + strconv.Itoa(int(m)) + ")"
}

// ClipOp combines a new clip with the current one.
type ClipOp uint8

const (
	ClipDifference ClipOp = iota
	ClipIntersect
)

func (op ClipOp) String() string {
	switch op {
	case ClipDifference:
		return "Difference"
	case ClipIntersect:
		return "Intersect"
	}
	return "ClipOp(" + strconv.Itoa(int(op)) + ")"
}

// PointMode selects how DrawPoints interprets its points.
type PointMode uint8

const (
	PointModePoints PointMode = iota
	PointModeLines
	PointModePolygon
)

// FilterMode is the texture sampling filter.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// MipmapMode selects mipmap sampling.
type MipmapMode uint8

const (
	MipmapNone MipmapMode = iota
	MipmapNearest
	MipmapLinear
)

// SamplingOptions controls how images are sampled.
type SamplingOptions struct {
	Filter FilterMode
	Mipmap MipmapMode
}

// SrcRectConstraint controls sampling outside the source rect.
type SrcRectConstraint uint8

const (
	StrictSrcRectConstraint SrcRectConstraint = iota
	FastSrcRectConstraint
)

// TileMode controls shader behaviour outside its natural bounds.
type TileMode uint8

const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
	TileDecal
)

// BlurType is the mask filter blur style.
type BlurType uint8

const (
	BlurNormal BlurType = iota
	BlurSolid
	BlurOuter
	BlurInner
)

// PathFillType is the fill rule of a path.
type PathFillType uint8

const (
	PathFillWinding PathFillType = iota
	PathFillEvenOdd
	PathFillInverseWinding
	PathFillInverseEvenOdd
)

// RegionOp combines two regions.
type RegionOp uint8

const (
	RegionOpDifference RegionOp = iota
	RegionOpIntersect
	RegionOpUnion
	RegionOpXor
	RegionOpReverseDifference
	RegionOpReplace
)

// VertexMode is the primitive assembly of Vertices.
type VertexMode uint8

const (
	VertexModeTriangles VertexMode = iota
	VertexModeTriangleStrip
	VertexModeTriangleFan
)

// ShadowFlags tune DrawShadow.
type ShadowFlags uint8

const (
	ShadowFlagsNone ShadowFlags = iota
	ShadowFlagsTransparentOccluder
	ShadowFlagsGeometricOnly
	ShadowFlagsAll
)

// ColorType is the pixel layout of bitmaps and images.
type ColorType uint8

const (
	ColorTypeUnknown ColorType = iota
	ColorTypeAlpha8
	ColorTypeRGB565
	ColorTypeARGB4444
	ColorTypeRGBA8888
	ColorTypeBGRA8888
	ColorTypeN32
)

// BytesPerPixel returns the storage size of one pixel, or 0 when unknown.
func (ct ColorType) BytesPerPixel() int {
	switch ct {
	case ColorTypeAlpha8:
		return 1
	case ColorTypeRGB565, ColorTypeARGB4444:
		return 2
	case ColorTypeRGBA8888, ColorTypeBGRA8888, ColorTypeN32:
		return 4
	}
	return 0
}

// AlphaType describes how alpha is stored.
type AlphaType uint8

const (
	AlphaTypeUnknown AlphaType = iota
	AlphaTypeOpaque
	AlphaTypePremul
	AlphaTypeUnpremul
)

// DrawingType identifies what a canvas does with draw calls.
type DrawingType uint8

const (
	DrawingTypeCommon DrawingType = iota
	DrawingTypeRecording
	DrawingTypeNoDraw
)

// CacheType asks DrawCmdList playback to build or drop its op cache.
type CacheType uint8

const (
	CacheTypeUndefined CacheType = iota
	CacheTypeEnabled
	CacheTypeDisabled
)

// LatticeRectType is the fill of one lattice cell.
type LatticeRectType uint8

const (
	LatticeDefault LatticeRectType = iota
	LatticeTransparent
	LatticeFixedColor
)

// PaintStyle selects fill, stroke or both.
type PaintStyle uint8

const (
	PaintNone PaintStyle = iota
	PaintFill
	PaintStroke
	PaintFillStroke
)

func (s PaintStyle) String() string {
	switch s {
	case PaintNone:
		return "None"
	case PaintFill:
		return "Fill"
	case PaintStroke:
		return "Stroke"
	case PaintFillStroke:
		return "FillStroke"
	}
	return "PaintStyle(" + strconv.Itoa(int(s)) + ")"
}

// CapStyle is the stroke end cap.
type CapStyle uint8

const (
	FlatCap CapStyle = iota
	SquareCap
	RoundCap
)

// JoinStyle is the stroke corner join.
type JoinStyle uint8

const (
	MiterJoin JoinStyle = iota
	RoundJoin
	BevelJoin
)
