package raster

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/gg"
)

// ggBrush converts a color and optional shader to a gg brush. Shaders gg
// cannot express fall back to the solid color.
func ggBrush(c drawing.Color, shader *drawing.ShaderEffect) gg.Brush {
	if shader == nil {
		return gg.Solid(c.RGBA())
	}

	switch shader.Type {
	case drawing.ShaderColor:
		return gg.Solid(shader.Color.RGBA())

	case drawing.ShaderLinearGradient:
		grad := gg.NewLinearGradientBrush(float64(shader.Start.X), float64(shader.Start.Y),
			float64(shader.End.X), float64(shader.End.Y))
		forEachStop(shader, func(offset float64, c gg.RGBA) { grad.AddColorStop(offset, c) })
		grad.SetExtend(ggExtend(shader.Tile))
		return grad

	case drawing.ShaderRadialGradient:
		grad := gg.NewRadialGradientBrush(float64(shader.Start.X), float64(shader.Start.Y),
			0, float64(shader.Radius))
		forEachStop(shader, func(offset float64, c gg.RGBA) { grad.AddColorStop(offset, c) })
		grad.SetExtend(ggExtend(shader.Tile))
		return grad

	case drawing.ShaderTwoPointConical:
		grad := gg.NewRadialGradientBrush(float64(shader.End.X), float64(shader.End.Y),
			float64(shader.StartRadius), float64(shader.EndRadius))
		grad.SetFocus(float64(shader.Start.X), float64(shader.Start.Y))
		forEachStop(shader, func(offset float64, c gg.RGBA) { grad.AddColorStop(offset, c) })
		grad.SetExtend(ggExtend(shader.Tile))
		return grad

	case drawing.ShaderSweepGradient:
		grad := gg.NewSweepGradientBrush(float64(shader.Start.X), float64(shader.Start.Y),
			degToRad(shader.StartAngle))
		grad.SetEndAngle(degToRad(shader.EndAngle))
		forEachStop(shader, func(offset float64, c gg.RGBA) { grad.AddColorStop(offset, c) })
		grad.SetExtend(ggExtend(shader.Tile))
		return grad

	default:
		return gg.Solid(c.RGBA())
	}
}

// forEachStop yields the gradient stops of shader. Missing positions are
// spread evenly.
func forEachStop(shader *drawing.ShaderEffect, fn func(offset float64, c gg.RGBA)) {
	n := len(shader.Colors)
	for i, c := range shader.Colors {
		var offset float64
		switch {
		case i < len(shader.Positions):
			offset = float64(shader.Positions[i])
		case n > 1:
			offset = float64(i) / float64(n-1)
		}
		fn(offset, c.RGBA())
	}
}

func ggExtend(tile drawing.TileMode) gg.ExtendMode {
	switch tile {
	case drawing.TileRepeat:
		return gg.ExtendRepeat
	case drawing.TileMirror:
		return gg.ExtendReflect
	default:
		return gg.ExtendPad
	}
}

func ggLineCap(c drawing.CapStyle) gg.LineCap {
	switch c {
	case drawing.RoundCap:
		return gg.LineCapRound
	case drawing.SquareCap:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func ggLineJoin(j drawing.JoinStyle) gg.LineJoin {
	switch j {
	case drawing.RoundJoin:
		return gg.LineJoinRound
	case drawing.BevelJoin:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

func ggFillRule(ft drawing.PathFillType) gg.FillRule {
	switch ft {
	case drawing.PathFillEvenOdd, drawing.PathFillInverseEvenOdd:
		return gg.FillRuleEvenOdd
	default:
		return gg.FillRuleNonZero
	}
}

// ggBlend maps the blend modes gg layers support. The rest composite as
// normal.
func ggBlend(m drawing.BlendMode) gg.BlendMode {
	switch m {
	case drawing.BlendMultiply:
		return gg.BlendMultiply
	case drawing.BlendScreen:
		return gg.BlendScreen
	case drawing.BlendOverlay:
		return gg.BlendOverlay
	default:
		return gg.BlendNormal
	}
}

func degToRad(deg float32) float64 { return float64(deg) * 3.141592653589793 / 180 }

// dashPattern returns the dash intervals of a dash path effect.
func dashPattern(pe *drawing.PathEffect) ([]float64, float64, bool) {
	if pe == nil || pe.Type != drawing.PathEffectDash || len(pe.Intervals) == 0 {
		return nil, 0, false
	}
	d := make([]float64, len(pe.Intervals))
	for i, v := range pe.Intervals {
		d[i] = float64(v)
	}
	return d, float64(pe.Phase), true
}
