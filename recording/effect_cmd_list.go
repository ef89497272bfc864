package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// Effects are recorded as small nested command lists holding one
// constructor record each. Composite effects nest further lists.

// Shader effect ops.
const (
	shaderOpColor uint32 = iota + 1
	shaderOpLinearGradient
	shaderOpRadialGradient
	shaderOpTwoPointConical
	shaderOpSweepGradient
	shaderOpImage
	shaderOpBlend
)

// Color filter ops.
const (
	colorFilterOpBlend uint32 = iota + 1
	colorFilterOpMatrix
	colorFilterOpCompose
	colorFilterOpLinearToSrgbGamma
	colorFilterOpSrgbGammaToLinear
	colorFilterOpLuma
)

// Image filter ops.
const (
	imageFilterOpBlur uint32 = iota + 1
	imageFilterOpOffset
	imageFilterOpColorFilter
	imageFilterOpArithmetic
	imageFilterOpCompose
)

// Mask filter ops.
const (
	maskFilterOpBlur uint32 = iota + 1
)

// Path effect ops.
const (
	pathEffectOpDash uint32 = iota + 1
	pathEffectOpCorner
	pathEffectOpDiscrete
	pathEffectOpCompose
	pathEffectOpSum
)

// Color space ops.
const (
	colorSpaceOpSrgb uint32 = iota + 1
	colorSpaceOpSrgbLinear
	colorSpaceOpRefImage
	colorSpaceOpRGB
)

func nilOf[T any]() func() *T { return func() *T { return nil } }

var (
	shaderDialect      = newDialect(CmdListTypeShaderEffect, nilOf[drawing.ShaderEffect]())
	colorFilterDialect = newDialect(CmdListTypeColorFilter, nilOf[drawing.ColorFilter]())
	imageFilterDialect = newDialect(CmdListTypeImageFilter, nilOf[drawing.ImageFilter]())
	maskFilterDialect  = newDialect(CmdListTypeMaskFilter, nilOf[drawing.MaskFilter]())
	pathEffectDialect  = newDialect(CmdListTypePathEffect, nilOf[drawing.PathEffect]())
	colorSpaceDialect  = newDialect(CmdListTypeColorSpace, nilOf[drawing.ColorSpace]())
)

// recordEffect wraps one constructor record into a fresh nested list.
func recordEffect(typ CmdListType, op uint32, build func(list *CmdList, w *binio.Writer)) *CmdList {
	list := NewCmdList(typ)
	w := binio.NewWriter(64)
	build(list, w)
	list.AddOp(op, w.Bytes())
	return list
}

// ---- shader effects ----

// AddShaderEffectToCmdList records s as a nested list of list.
func AddShaderEffectToCmdList(list *CmdList, s *drawing.ShaderEffect) CmdListHandle {
	return addShaderEffect(list, s, 0)
}

// GetShaderEffectFromCmdList rebuilds the shader h refers to, or nil.
func GetShaderEffectFromCmdList(list *CmdList, h CmdListHandle) *drawing.ShaderEffect {
	return getFromCmdList(list, h, shaderDialect, 0)
}

func addShaderEffect(list *CmdList, s *drawing.ShaderEffect, depth int) CmdListHandle {
	if s == nil || depth >= MaxNestingDepth {
		return CmdListHandle{}
	}
	var op uint32
	var build func(child *CmdList, w *binio.Writer)
	switch s.Type {
	case drawing.ShaderColor:
		op = shaderOpColor
		build = func(_ *CmdList, w *binio.Writer) { w.U32(uint32(s.Color)) }
	case drawing.ShaderLinearGradient:
		op = shaderOpLinearGradient
		build = func(child *CmdList, w *binio.Writer) {
			writePoint(w, s.Start)
			writePoint(w, s.End)
			writeGradientStops(child, w, s)
		}
	case drawing.ShaderRadialGradient:
		op = shaderOpRadialGradient
		build = func(child *CmdList, w *binio.Writer) {
			writePoint(w, s.Start)
			w.F32(s.Radius)
			writeGradientStops(child, w, s)
		}
	case drawing.ShaderTwoPointConical:
		op = shaderOpTwoPointConical
		build = func(child *CmdList, w *binio.Writer) {
			writePoint(w, s.Start)
			w.F32(s.StartRadius)
			writePoint(w, s.End)
			w.F32(s.EndRadius)
			writeGradientStops(child, w, s)
		}
	case drawing.ShaderSweepGradient:
		op = shaderOpSweepGradient
		build = func(child *CmdList, w *binio.Writer) {
			writePoint(w, s.Start)
			w.F32s(s.StartAngle, s.EndAngle)
			writeGradientStops(child, w, s)
		}
	case drawing.ShaderImage:
		op = shaderOpImage
		build = func(child *CmdList, w *binio.Writer) {
			writeImageHandle(w, child.AddImage(s.Image))
			w.U8(uint8(s.Tile))
			w.U8(uint8(s.TileY))
			w.U16(0)
			writeSampling(w, s.Sampling)
			writeOptionalMatrix(w, s.Matrix)
		}
	case drawing.ShaderBlend:
		op = shaderOpBlend
		build = func(child *CmdList, w *binio.Writer) {
			writeCmdListHandle(w, addShaderEffect(child, s.Dst, depth+1))
			writeCmdListHandle(w, addShaderEffect(child, s.Src, depth+1))
			w.U32(uint32(s.Mode))
		}
	default:
		drawing.Logger().Warn("recording: unknown shader effect", "type", s.Type)
		return CmdListHandle{}
	}
	return AddChildToCmdList(list, recordEffect(CmdListTypeShaderEffect, op, build))
}

func writeGradientStops(list *CmdList, w *binio.Writer, s *drawing.ShaderEffect) {
	writeOpData(w, AddVectorToCmdList(list, s.Colors))
	writeOpData(w, AddVectorToCmdList(list, s.Positions))
	w.U32(uint32(s.Tile))
}

func readGradientStops(list *CmdList, r *binio.Reader) ([]drawing.Color, []float32, drawing.TileMode) {
	colors := GetVectorFromCmdList[drawing.Color](list, readOpData(r))
	positions := GetVectorFromCmdList[float32](list, readOpData(r))
	return colors, positions, drawing.TileMode(r.U32())
}

func writeOptionalMatrix(w *binio.Writer, m *drawing.Matrix) {
	w.Bool(m != nil)
	w.U8(0)
	w.U16(0)
	if m != nil {
		writeMatrix(w, *m)
	}
}

func readOptionalMatrix(r *binio.Reader) *drawing.Matrix {
	has := r.Bool()
	r.U8()
	r.U16()
	if !has {
		return nil
	}
	m := readMatrix(r)
	return &m
}

func init() {
	d := shaderDialect
	d.register(shaderOpColor, func(_ *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, _ int) *drawing.ShaderEffect {
		return drawing.NewColorShader(drawing.Color(r.U32()))
	})
	d.register(shaderOpLinearGradient, func(l *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, _ int) *drawing.ShaderEffect {
		start, end := readPoint(r), readPoint(r)
		colors, positions, tile := readGradientStops(l, r)
		return drawing.NewLinearGradient(start, end, colors, positions, tile)
	})
	d.register(shaderOpRadialGradient, func(l *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, _ int) *drawing.ShaderEffect {
		center, radius := readPoint(r), r.F32()
		colors, positions, tile := readGradientStops(l, r)
		return drawing.NewRadialGradient(center, radius, colors, positions, tile)
	})
	d.register(shaderOpTwoPointConical, func(l *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, _ int) *drawing.ShaderEffect {
		start, startRadius := readPoint(r), r.F32()
		end, endRadius := readPoint(r), r.F32()
		colors, positions, tile := readGradientStops(l, r)
		return drawing.NewTwoPointConicalGradient(start, startRadius, end, endRadius, colors, positions, tile)
	})
	d.register(shaderOpSweepGradient, func(l *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, _ int) *drawing.ShaderEffect {
		center := readPoint(r)
		startAngle, endAngle := r.F32(), r.F32()
		colors, positions, tile := readGradientStops(l, r)
		return drawing.NewSweepGradient(center, colors, positions, tile, startAngle, endAngle)
	})
	d.register(shaderOpImage, func(l *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, _ int) *drawing.ShaderEffect {
		h := readImageHandle(r)
		tileX, tileY := drawing.TileMode(r.U8()), drawing.TileMode(r.U8())
		r.U16()
		sampling := readSampling(r)
		m := readOptionalMatrix(r)
		img := l.GetImage(h)
		if img == nil {
			return nil
		}
		return drawing.NewImageShader(img, tileX, tileY, sampling, m)
	})
	d.register(shaderOpBlend, func(l *CmdList, r *binio.Reader, _ *drawing.ShaderEffect, depth int) *drawing.ShaderEffect {
		dstH, srcH := readCmdListHandle(r), readCmdListHandle(r)
		mode := drawing.BlendMode(r.U32())
		dst := getFromCmdList(l, dstH, shaderDialect, depth)
		src := getFromCmdList(l, srcH, shaderDialect, depth)
		if dst == nil || src == nil {
			return nil
		}
		return drawing.NewBlendShader(dst, src, mode)
	})
}

// ---- color filters ----

// AddColorFilterToCmdList records cf as a nested list of list.
func AddColorFilterToCmdList(list *CmdList, cf *drawing.ColorFilter) CmdListHandle {
	return addColorFilter(list, cf, 0)
}

// GetColorFilterFromCmdList rebuilds the color filter h refers to, or nil.
func GetColorFilterFromCmdList(list *CmdList, h CmdListHandle) *drawing.ColorFilter {
	return getFromCmdList(list, h, colorFilterDialect, 0)
}

func addColorFilter(list *CmdList, cf *drawing.ColorFilter, depth int) CmdListHandle {
	if cf == nil || depth >= MaxNestingDepth {
		return CmdListHandle{}
	}
	var op uint32
	build := func(*CmdList, *binio.Writer) {}
	switch cf.Type {
	case drawing.ColorFilterBlend:
		op = colorFilterOpBlend
		build = func(_ *CmdList, w *binio.Writer) {
			w.U32(uint32(cf.Color))
			w.U32(uint32(cf.Mode))
		}
	case drawing.ColorFilterMatrix:
		op = colorFilterOpMatrix
		build = func(_ *CmdList, w *binio.Writer) { w.F32s(cf.Matrix[:]...) }
	case drawing.ColorFilterCompose:
		op = colorFilterOpCompose
		build = func(child *CmdList, w *binio.Writer) {
			writeCmdListHandle(w, addColorFilter(child, cf.Outer, depth+1))
			writeCmdListHandle(w, addColorFilter(child, cf.Inner, depth+1))
		}
	case drawing.ColorFilterLinearToSrgbGamma:
		op = colorFilterOpLinearToSrgbGamma
	case drawing.ColorFilterSrgbGammaToLinear:
		op = colorFilterOpSrgbGammaToLinear
	case drawing.ColorFilterLuma:
		op = colorFilterOpLuma
	default:
		drawing.Logger().Warn("recording: unknown color filter", "type", cf.Type)
		return CmdListHandle{}
	}
	return AddChildToCmdList(list, recordEffect(CmdListTypeColorFilter, op, build))
}

func init() {
	d := colorFilterDialect
	d.register(colorFilterOpBlend, func(_ *CmdList, r *binio.Reader, _ *drawing.ColorFilter, _ int) *drawing.ColorFilter {
		c := drawing.Color(r.U32())
		return drawing.NewBlendColorFilter(c, drawing.BlendMode(r.U32()))
	})
	d.register(colorFilterOpMatrix, func(_ *CmdList, r *binio.Reader, _ *drawing.ColorFilter, _ int) *drawing.ColorFilter {
		var m [drawing.ColorMatrixSize]float32
		for i := range m {
			m[i] = r.F32()
		}
		return drawing.NewMatrixColorFilter(m)
	})
	d.register(colorFilterOpCompose, func(l *CmdList, r *binio.Reader, _ *drawing.ColorFilter, depth int) *drawing.ColorFilter {
		outerH, innerH := readCmdListHandle(r), readCmdListHandle(r)
		outer := getFromCmdList(l, outerH, colorFilterDialect, depth)
		inner := getFromCmdList(l, innerH, colorFilterDialect, depth)
		if outer == nil || inner == nil {
			return nil
		}
		return drawing.NewComposeColorFilter(outer, inner)
	})
	d.register(colorFilterOpLinearToSrgbGamma, func(*CmdList, *binio.Reader, *drawing.ColorFilter, int) *drawing.ColorFilter {
		return drawing.NewLinearToSrgbGamma()
	})
	d.register(colorFilterOpSrgbGammaToLinear, func(*CmdList, *binio.Reader, *drawing.ColorFilter, int) *drawing.ColorFilter {
		return drawing.NewSrgbGammaToLinear()
	})
	d.register(colorFilterOpLuma, func(*CmdList, *binio.Reader, *drawing.ColorFilter, int) *drawing.ColorFilter {
		return drawing.NewLumaColorFilter()
	})
}

// ---- image filters ----

// AddImageFilterToCmdList records f as a nested list of list.
func AddImageFilterToCmdList(list *CmdList, f *drawing.ImageFilter) CmdListHandle {
	return addImageFilter(list, f, 0)
}

// GetImageFilterFromCmdList rebuilds the image filter h refers to, or nil.
func GetImageFilterFromCmdList(list *CmdList, h CmdListHandle) *drawing.ImageFilter {
	return getFromCmdList(list, h, imageFilterDialect, 0)
}

func addImageFilter(list *CmdList, f *drawing.ImageFilter, depth int) CmdListHandle {
	if f == nil || depth >= MaxNestingDepth {
		return CmdListHandle{}
	}
	var op uint32
	var build func(child *CmdList, w *binio.Writer)
	switch f.Type {
	case drawing.ImageFilterBlur:
		op = imageFilterOpBlur
		build = func(child *CmdList, w *binio.Writer) {
			w.F32s(f.SigmaX, f.SigmaY)
			w.U32(uint32(f.Tile))
			writeCmdListHandle(w, addImageFilter(child, f.Input, depth+1))
		}
	case drawing.ImageFilterOffset:
		op = imageFilterOpOffset
		build = func(child *CmdList, w *binio.Writer) {
			w.F32s(f.Dx, f.Dy)
			writeCmdListHandle(w, addImageFilter(child, f.Input, depth+1))
		}
	case drawing.ImageFilterColor:
		op = imageFilterOpColorFilter
		build = func(child *CmdList, w *binio.Writer) {
			writeCmdListHandle(w, addColorFilter(child, f.ColorFilter, depth+1))
			writeCmdListHandle(w, addImageFilter(child, f.Input, depth+1))
		}
	case drawing.ImageFilterArithmetic:
		op = imageFilterOpArithmetic
		build = func(child *CmdList, w *binio.Writer) {
			w.F32s(f.Coefficients[:]...)
			w.U32(boolU32(f.EnforcePMColor))
			writeCmdListHandle(w, addImageFilter(child, f.Input, depth+1))
			writeCmdListHandle(w, addImageFilter(child, f.Foreground, depth+1))
		}
	case drawing.ImageFilterCompose:
		op = imageFilterOpCompose
		build = func(child *CmdList, w *binio.Writer) {
			writeCmdListHandle(w, addImageFilter(child, f.Outer, depth+1))
			writeCmdListHandle(w, addImageFilter(child, f.Input, depth+1))
		}
	default:
		drawing.Logger().Warn("recording: unknown image filter", "type", f.Type)
		return CmdListHandle{}
	}
	return AddChildToCmdList(list, recordEffect(CmdListTypeImageFilter, op, build))
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func init() {
	d := imageFilterDialect
	d.register(imageFilterOpBlur, func(l *CmdList, r *binio.Reader, _ *drawing.ImageFilter, depth int) *drawing.ImageFilter {
		sx, sy := r.F32(), r.F32()
		tile := drawing.TileMode(r.U32())
		input := getFromCmdList(l, readCmdListHandle(r), imageFilterDialect, depth)
		return drawing.NewBlurImageFilter(sx, sy, tile, input)
	})
	d.register(imageFilterOpOffset, func(l *CmdList, r *binio.Reader, _ *drawing.ImageFilter, depth int) *drawing.ImageFilter {
		dx, dy := r.F32(), r.F32()
		input := getFromCmdList(l, readCmdListHandle(r), imageFilterDialect, depth)
		return drawing.NewOffsetImageFilter(dx, dy, input)
	})
	d.register(imageFilterOpColorFilter, func(l *CmdList, r *binio.Reader, _ *drawing.ImageFilter, depth int) *drawing.ImageFilter {
		cfH, inputH := readCmdListHandle(r), readCmdListHandle(r)
		cf := getFromCmdList(l, cfH, colorFilterDialect, depth)
		if cf == nil {
			return nil
		}
		return drawing.NewColorFilterImageFilter(cf, getFromCmdList(l, inputH, imageFilterDialect, depth))
	})
	d.register(imageFilterOpArithmetic, func(l *CmdList, r *binio.Reader, _ *drawing.ImageFilter, depth int) *drawing.ImageFilter {
		var k [4]float32
		for i := range k {
			k[i] = r.F32()
		}
		enforce := r.U32() != 0
		bgH, fgH := readCmdListHandle(r), readCmdListHandle(r)
		bg := getFromCmdList(l, bgH, imageFilterDialect, depth)
		fg := getFromCmdList(l, fgH, imageFilterDialect, depth)
		return drawing.NewArithmeticImageFilter(k, enforce, bg, fg)
	})
	d.register(imageFilterOpCompose, func(l *CmdList, r *binio.Reader, _ *drawing.ImageFilter, depth int) *drawing.ImageFilter {
		outerH, innerH := readCmdListHandle(r), readCmdListHandle(r)
		outer := getFromCmdList(l, outerH, imageFilterDialect, depth)
		inner := getFromCmdList(l, innerH, imageFilterDialect, depth)
		if outer == nil || inner == nil {
			return nil
		}
		return drawing.NewComposeImageFilter(outer, inner)
	})
}

// ---- mask filters ----

// AddMaskFilterToCmdList records mf as a nested list of list.
func AddMaskFilterToCmdList(list *CmdList, mf *drawing.MaskFilter) CmdListHandle {
	if mf == nil {
		return CmdListHandle{}
	}
	return AddChildToCmdList(list, recordEffect(CmdListTypeMaskFilter, maskFilterOpBlur,
		func(_ *CmdList, w *binio.Writer) {
			w.U32(uint32(mf.Style))
			w.F32(mf.Sigma)
			w.U32(boolU32(mf.RespectCTM))
		}))
}

// GetMaskFilterFromCmdList rebuilds the mask filter h refers to, or nil.
func GetMaskFilterFromCmdList(list *CmdList, h CmdListHandle) *drawing.MaskFilter {
	return getFromCmdList(list, h, maskFilterDialect, 0)
}

func init() {
	maskFilterDialect.register(maskFilterOpBlur, func(_ *CmdList, r *binio.Reader, _ *drawing.MaskFilter, _ int) *drawing.MaskFilter {
		style := drawing.BlurType(r.U32())
		sigma := r.F32()
		return drawing.NewBlurMaskFilter(style, sigma, r.U32() != 0)
	})
}

// ---- path effects ----

// AddPathEffectToCmdList records pe as a nested list of list.
func AddPathEffectToCmdList(list *CmdList, pe *drawing.PathEffect) CmdListHandle {
	return addPathEffect(list, pe, 0)
}

// GetPathEffectFromCmdList rebuilds the path effect h refers to, or nil.
func GetPathEffectFromCmdList(list *CmdList, h CmdListHandle) *drawing.PathEffect {
	return getFromCmdList(list, h, pathEffectDialect, 0)
}

func addPathEffect(list *CmdList, pe *drawing.PathEffect, depth int) CmdListHandle {
	if pe == nil || depth >= MaxNestingDepth {
		return CmdListHandle{}
	}
	var op uint32
	var build func(child *CmdList, w *binio.Writer)
	switch pe.Type {
	case drawing.PathEffectDash:
		op = pathEffectOpDash
		build = func(child *CmdList, w *binio.Writer) {
			writeOpData(w, AddVectorToCmdList(child, pe.Intervals))
			w.F32(pe.Phase)
		}
	case drawing.PathEffectCorner:
		op = pathEffectOpCorner
		build = func(_ *CmdList, w *binio.Writer) { w.F32(pe.Radius) }
	case drawing.PathEffectDiscrete:
		op = pathEffectOpDiscrete
		build = func(_ *CmdList, w *binio.Writer) { w.F32s(pe.SegLength, pe.Deviation) }
	case drawing.PathEffectCompose, drawing.PathEffectSum:
		op = pathEffectOpCompose
		if pe.Type == drawing.PathEffectSum {
			op = pathEffectOpSum
		}
		build = func(child *CmdList, w *binio.Writer) {
			writeCmdListHandle(w, addPathEffect(child, pe.First, depth+1))
			writeCmdListHandle(w, addPathEffect(child, pe.Second, depth+1))
		}
	default:
		drawing.Logger().Warn("recording: unknown path effect", "type", pe.Type)
		return CmdListHandle{}
	}
	return AddChildToCmdList(list, recordEffect(CmdListTypePathEffect, op, build))
}

func readPathEffectPair(l *CmdList, r *binio.Reader, depth int) (first, second *drawing.PathEffect) {
	firstH, secondH := readCmdListHandle(r), readCmdListHandle(r)
	return getFromCmdList(l, firstH, pathEffectDialect, depth),
		getFromCmdList(l, secondH, pathEffectDialect, depth)
}

func init() {
	d := pathEffectDialect
	d.register(pathEffectOpDash, func(l *CmdList, r *binio.Reader, _ *drawing.PathEffect, _ int) *drawing.PathEffect {
		intervals := GetVectorFromCmdList[float32](l, readOpData(r))
		return drawing.NewDashPathEffect(intervals, r.F32())
	})
	d.register(pathEffectOpCorner, func(_ *CmdList, r *binio.Reader, _ *drawing.PathEffect, _ int) *drawing.PathEffect {
		return drawing.NewCornerPathEffect(r.F32())
	})
	d.register(pathEffectOpDiscrete, func(_ *CmdList, r *binio.Reader, _ *drawing.PathEffect, _ int) *drawing.PathEffect {
		seg := r.F32()
		return drawing.NewDiscretePathEffect(seg, r.F32())
	})
	d.register(pathEffectOpCompose, func(l *CmdList, r *binio.Reader, _ *drawing.PathEffect, depth int) *drawing.PathEffect {
		outer, inner := readPathEffectPair(l, r, depth)
		if outer == nil || inner == nil {
			return nil
		}
		return drawing.NewComposePathEffect(outer, inner)
	})
	d.register(pathEffectOpSum, func(l *CmdList, r *binio.Reader, _ *drawing.PathEffect, depth int) *drawing.PathEffect {
		first, second := readPathEffectPair(l, r, depth)
		if first == nil || second == nil {
			return nil
		}
		return drawing.NewSumPathEffect(first, second)
	})
}

// ---- color spaces ----

// AddColorSpaceToCmdList records cs as a nested list of list.
func AddColorSpaceToCmdList(list *CmdList, cs *drawing.ColorSpace) CmdListHandle {
	if cs == nil {
		return CmdListHandle{}
	}
	var op uint32
	build := func(*CmdList, *binio.Writer) {}
	switch cs.Type {
	case drawing.ColorSpaceSrgb:
		op = colorSpaceOpSrgb
	case drawing.ColorSpaceSrgbLinear:
		op = colorSpaceOpSrgbLinear
	case drawing.ColorSpaceRefImage:
		op = colorSpaceOpRefImage
		build = func(child *CmdList, w *binio.Writer) { writeImageHandle(w, child.AddImage(cs.Image)) }
	case drawing.ColorSpaceRGB:
		op = colorSpaceOpRGB
		build = func(_ *CmdList, w *binio.Writer) {
			w.U32(uint32(cs.Transfer))
			w.U32(uint32(cs.Gamut))
		}
	default:
		drawing.Logger().Warn("recording: unknown color space", "type", cs.Type)
		return CmdListHandle{}
	}
	return AddChildToCmdList(list, recordEffect(CmdListTypeColorSpace, op, build))
}

// GetColorSpaceFromCmdList rebuilds the color space h refers to, or nil.
func GetColorSpaceFromCmdList(list *CmdList, h CmdListHandle) *drawing.ColorSpace {
	return getFromCmdList(list, h, colorSpaceDialect, 0)
}

func init() {
	d := colorSpaceDialect
	d.register(colorSpaceOpSrgb, func(*CmdList, *binio.Reader, *drawing.ColorSpace, int) *drawing.ColorSpace {
		return drawing.NewSrgbColorSpace()
	})
	d.register(colorSpaceOpSrgbLinear, func(*CmdList, *binio.Reader, *drawing.ColorSpace, int) *drawing.ColorSpace {
		return drawing.NewSrgbLinearColorSpace()
	})
	d.register(colorSpaceOpRefImage, func(l *CmdList, r *binio.Reader, _ *drawing.ColorSpace, _ int) *drawing.ColorSpace {
		img := l.GetImage(readImageHandle(r))
		if img == nil {
			return nil
		}
		return drawing.NewRefImageColorSpace(img)
	})
	d.register(colorSpaceOpRGB, func(_ *CmdList, r *binio.Reader, _ *drawing.ColorSpace, _ int) *drawing.ColorSpace {
		transfer := drawing.CMSTransferFunc(r.U32())
		return drawing.NewRGBColorSpace(transfer, drawing.CMSGamut(r.U32()))
	})
}
