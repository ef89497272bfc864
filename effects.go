package drawing

// Effects are immutable descriptions. Each one knows how it was built
// (its Type plus constructor arguments) so a recorder can replay the
// construction on the other side of a command list.

// ShaderEffectType identifies how a ShaderEffect was built.
type ShaderEffectType uint8

const (
	ShaderColor ShaderEffectType = iota + 1
	ShaderLinearGradient
	ShaderRadialGradient
	ShaderTwoPointConical
	ShaderSweepGradient
	ShaderImage
	ShaderBlend
)

// ShaderEffect produces per-pixel source colors.
type ShaderEffect struct {
	Type ShaderEffectType

	Color     Color
	Colors    []Color
	Positions []float32
	Tile      TileMode

	Start, End             Point
	Radius                 float32
	StartRadius, EndRadius float32
	StartAngle, EndAngle   float32

	Image    *Image
	TileY    TileMode
	Sampling SamplingOptions
	Matrix   *Matrix

	Mode     BlendMode
	Dst, Src *ShaderEffect
}

// NewColorShader returns a shader filling with one color.
func NewColorShader(c Color) *ShaderEffect {
	return &ShaderEffect{Type: ShaderColor, Color: c}
}

// NewLinearGradient returns a gradient from start to end.
// A nil positions slice spaces the colors evenly.
func NewLinearGradient(start, end Point, colors []Color, positions []float32, tile TileMode) *ShaderEffect {
	return &ShaderEffect{Type: ShaderLinearGradient, Start: start, End: end,
		Colors: colors, Positions: positions, Tile: tile}
}

// NewRadialGradient returns a gradient around center.
func NewRadialGradient(center Point, radius float32, colors []Color, positions []float32, tile TileMode) *ShaderEffect {
	return &ShaderEffect{Type: ShaderRadialGradient, Start: center, Radius: radius,
		Colors: colors, Positions: positions, Tile: tile}
}

// NewTwoPointConicalGradient returns a gradient between two circles.
func NewTwoPointConicalGradient(start Point, startRadius float32, end Point, endRadius float32,
	colors []Color, positions []float32, tile TileMode) *ShaderEffect {
	return &ShaderEffect{Type: ShaderTwoPointConical, Start: start, StartRadius: startRadius,
		End: end, EndRadius: endRadius, Colors: colors, Positions: positions, Tile: tile}
}

// NewSweepGradient returns an angular gradient around center. Angles are degrees.
func NewSweepGradient(center Point, colors []Color, positions []float32, tile TileMode,
	startAngle, endAngle float32) *ShaderEffect {
	return &ShaderEffect{Type: ShaderSweepGradient, Start: center, Colors: colors,
		Positions: positions, Tile: tile, StartAngle: startAngle, EndAngle: endAngle}
}

// NewImageShader returns a shader sampling img. matrix may be nil.
func NewImageShader(img *Image, tileX, tileY TileMode, sampling SamplingOptions, matrix *Matrix) *ShaderEffect {
	return &ShaderEffect{Type: ShaderImage, Image: img, Tile: tileX, TileY: tileY,
		Sampling: sampling, Matrix: matrix}
}

// NewBlendShader composes two shaders with mode.
func NewBlendShader(dst, src *ShaderEffect, mode BlendMode) *ShaderEffect {
	return &ShaderEffect{Type: ShaderBlend, Dst: dst, Src: src, Mode: mode}
}

// ColorFilterType identifies how a ColorFilter was built.
type ColorFilterType uint8

const (
	ColorFilterBlend ColorFilterType = iota + 1
	ColorFilterMatrix
	ColorFilterCompose
	ColorFilterLinearToSrgbGamma
	ColorFilterSrgbGammaToLinear
	ColorFilterLuma
)

// ColorMatrixSize is the number of entries in a 4x5 color matrix.
const ColorMatrixSize = 20

// ColorFilter transforms colors after shading.
type ColorFilter struct {
	Type   ColorFilterType
	Color  Color
	Mode   BlendMode
	Matrix [ColorMatrixSize]float32

	Outer, Inner *ColorFilter
}

func NewBlendColorFilter(c Color, mode BlendMode) *ColorFilter {
	return &ColorFilter{Type: ColorFilterBlend, Color: c, Mode: mode}
}

func NewMatrixColorFilter(m [ColorMatrixSize]float32) *ColorFilter {
	return &ColorFilter{Type: ColorFilterMatrix, Matrix: m}
}

// NewComposeColorFilter applies inner first, then outer.
func NewComposeColorFilter(outer, inner *ColorFilter) *ColorFilter {
	return &ColorFilter{Type: ColorFilterCompose, Outer: outer, Inner: inner}
}

func NewLinearToSrgbGamma() *ColorFilter { return &ColorFilter{Type: ColorFilterLinearToSrgbGamma} }
func NewSrgbGammaToLinear() *ColorFilter { return &ColorFilter{Type: ColorFilterSrgbGammaToLinear} }
func NewLumaColorFilter() *ColorFilter   { return &ColorFilter{Type: ColorFilterLuma} }

// ImageFilterType identifies how an ImageFilter was built.
type ImageFilterType uint8

const (
	ImageFilterBlur ImageFilterType = iota + 1
	ImageFilterOffset
	ImageFilterColor
	ImageFilterArithmetic
	ImageFilterCompose
)

// ImageFilter post-processes a whole layer.
type ImageFilter struct {
	Type ImageFilterType

	SigmaX, SigmaY float32
	Tile           TileMode
	Dx, Dy         float32
	ColorFilter    *ColorFilter
	Coefficients   [4]float32
	EnforcePMColor bool

	// Input is the single upstream filter; for Arithmetic it is the
	// background and Foreground the second input. For Compose, Outer
	// is applied to the result of Input.
	Input      *ImageFilter
	Foreground *ImageFilter
	Outer      *ImageFilter
}

func NewBlurImageFilter(sigmaX, sigmaY float32, tile TileMode, input *ImageFilter) *ImageFilter {
	return &ImageFilter{Type: ImageFilterBlur, SigmaX: sigmaX, SigmaY: sigmaY, Tile: tile, Input: input}
}

func NewOffsetImageFilter(dx, dy float32, input *ImageFilter) *ImageFilter {
	return &ImageFilter{Type: ImageFilterOffset, Dx: dx, Dy: dy, Input: input}
}

func NewColorFilterImageFilter(cf *ColorFilter, input *ImageFilter) *ImageFilter {
	return &ImageFilter{Type: ImageFilterColor, ColorFilter: cf, Input: input}
}

func NewArithmeticImageFilter(coefficients [4]float32, enforcePMColor bool, background, foreground *ImageFilter) *ImageFilter {
	return &ImageFilter{Type: ImageFilterArithmetic, Coefficients: coefficients,
		EnforcePMColor: enforcePMColor, Input: background, Foreground: foreground}
}

// NewComposeImageFilter applies inner first, then outer.
func NewComposeImageFilter(outer, inner *ImageFilter) *ImageFilter {
	return &ImageFilter{Type: ImageFilterCompose, Outer: outer, Input: inner}
}

// MaskFilter alters the coverage mask before coloring.
type MaskFilter struct {
	Style      BlurType
	Sigma      float32
	RespectCTM bool
}

// NewBlurMaskFilter returns a blur mask filter.
func NewBlurMaskFilter(style BlurType, sigma float32, respectCTM bool) *MaskFilter {
	return &MaskFilter{Style: style, Sigma: sigma, RespectCTM: respectCTM}
}

// PathEffectType identifies how a PathEffect was built.
type PathEffectType uint8

const (
	PathEffectDash PathEffectType = iota + 1
	PathEffectCorner
	PathEffectDiscrete
	PathEffectCompose
	PathEffectSum
)

// PathEffect alters stroke geometry.
type PathEffect struct {
	Type PathEffectType

	Intervals []float32
	Phase     float32
	Radius    float32
	SegLength float32
	Deviation float32

	First, Second *PathEffect
}

func NewDashPathEffect(intervals []float32, phase float32) *PathEffect {
	return &PathEffect{Type: PathEffectDash, Intervals: intervals, Phase: phase}
}

func NewCornerPathEffect(radius float32) *PathEffect {
	return &PathEffect{Type: PathEffectCorner, Radius: radius}
}

func NewDiscretePathEffect(segLength, deviation float32) *PathEffect {
	return &PathEffect{Type: PathEffectDiscrete, SegLength: segLength, Deviation: deviation}
}

// NewComposePathEffect applies inner, then outer.
func NewComposePathEffect(outer, inner *PathEffect) *PathEffect {
	return &PathEffect{Type: PathEffectCompose, First: outer, Second: inner}
}

// NewSumPathEffect strokes with both effects.
func NewSumPathEffect(first, second *PathEffect) *PathEffect {
	return &PathEffect{Type: PathEffectSum, First: first, Second: second}
}

// ColorSpaceType identifies how a ColorSpace was built.
type ColorSpaceType uint8

const (
	ColorSpaceSrgb ColorSpaceType = iota + 1
	ColorSpaceSrgbLinear
	ColorSpaceRefImage
	ColorSpaceRGB
)

// CMSTransferFunc names a transfer function.
type CMSTransferFunc uint8

const (
	TransferSrgb CMSTransferFunc = iota
	TransferDot2
	TransferLinear
	TransferRec2020
)

// CMSGamut names a gamut matrix.
type CMSGamut uint8

const (
	GamutSrgb CMSGamut = iota
	GamutAdobeRGB
	GamutDCIP3
	GamutRec2020
	GamutXYZ
)

// ColorSpace describes how colors are interpreted.
type ColorSpace struct {
	Type     ColorSpaceType
	Image    *Image
	Transfer CMSTransferFunc
	Gamut    CMSGamut
}

func NewSrgbColorSpace() *ColorSpace       { return &ColorSpace{Type: ColorSpaceSrgb} }
func NewSrgbLinearColorSpace() *ColorSpace { return &ColorSpace{Type: ColorSpaceSrgbLinear} }

// NewRefImageColorSpace borrows the color space of img.
func NewRefImageColorSpace(img *Image) *ColorSpace {
	return &ColorSpace{Type: ColorSpaceRefImage, Image: img}
}

func NewRGBColorSpace(transfer CMSTransferFunc, gamut CMSGamut) *ColorSpace {
	return &ColorSpace{Type: ColorSpaceRGB, Transfer: transfer, Gamut: gamut}
}
