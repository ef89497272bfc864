package recording

import (
	"strconv"
	"strings"

	"github.com/gogpu/drawing"
)

// Field formatters for DrawOpItem.Dump. Scalars print with six decimals
// and colors as lower-case hex, so dumps stay comparable across tools.

func fmtScalar(v float32) string { return strconv.FormatFloat(float64(v), 'f', 6, 32) }

func fmtBool(v bool) string { return strconv.FormatBool(v) }

func fmtHex(c drawing.Color) string { return "0x" + strconv.FormatUint(uint64(c), 16) }

func dumpRect(b *strings.Builder, r drawing.Rect) {
	b.WriteString("[x:" + fmtScalar(r.Left))
	b.WriteString(" y:" + fmtScalar(r.Top))
	b.WriteString(" width:" + fmtScalar(r.Width()))
	b.WriteString(" height:" + fmtScalar(r.Height()) + "]")
}

func dumpRectI(b *strings.Builder, r drawing.RectI) {
	b.WriteString("[x:" + strconv.Itoa(int(r.Left)))
	b.WriteString(" y:" + strconv.Itoa(int(r.Top)))
	b.WriteString(" width:" + strconv.Itoa(int(r.Width())))
	b.WriteString(" height:" + strconv.Itoa(int(r.Height())) + "]")
}

func dumpPoint(b *strings.Builder, p drawing.Point) {
	b.WriteString("[" + fmtScalar(p.X) + " " + fmtScalar(p.Y) + "]")
}

func dumpPoint3(b *strings.Builder, p drawing.Point3) {
	b.WriteString("[" + fmtScalar(p.X) + " " + fmtScalar(p.Y) + " " + fmtScalar(p.Z) + "]")
}

func dumpColor(b *strings.Builder, c drawing.Color) {
	b.WriteString("[RGBA-" + fmtHex(c) + "]")
}

func dumpBrush(b *strings.Builder, br drawing.Brush) {
	b.WriteString("[alpha:" + strconv.Itoa(int(br.Color.A())))
	b.WriteString(" color")
	dumpColor(b, br.Color)
	b.WriteString(" blendMode:" + strconv.Itoa(int(br.BlendMode)))
	b.WriteString(" antiAlias:" + fmtBool(br.AntiAlias) + "]")
}

func dumpPath(b *strings.Builder, p *drawing.Path) {
	if p == nil {
		b.WriteString("[null]")
		return
	}
	b.WriteString("[length:" + fmtScalar(p.Length()) + " bounds")
	dumpRect(b, p.Bounds())
	b.WriteString(" valid:" + fmtBool(p.IsValid()) + "]")
}

func dumpImage(b *strings.Builder, img *drawing.Image) {
	if img == nil {
		b.WriteString("[null]")
		return
	}
	b.WriteString("[width:" + strconv.Itoa(int(img.Width())))
	b.WriteString(" height:" + strconv.Itoa(int(img.Height())) + "]")
}

func dumpRoundRect(b *strings.Builder, rr drawing.RoundRect) {
	b.WriteString("[simple:" + fmtBool(rr.IsSimple()) + " rect")
	dumpRect(b, rr.Rect)
	b.WriteString(" radius")
	dumpArray(b, rr.Radii[:], dumpPoint)
	b.WriteString("]")
}

func dumpRegion(b *strings.Builder, rg *drawing.Region) {
	if rg == nil {
		b.WriteString("[null]")
		return
	}
	b.WriteString("[empty:" + fmtBool(rg.IsEmpty()))
	b.WriteString(" isRect:" + fmtBool(rg.IsRect()) + " boundaryPath")
	dumpPath(b, rg.BoundaryPath())
	b.WriteString("]")
}

// dumpArray writes the elements space separated inside brackets.
func dumpArray[T any](b *strings.Builder, items []T, field func(*strings.Builder, T)) {
	b.WriteString("[")
	for i, item := range items {
		if i > 0 {
			b.WriteString(" ")
		}
		field(b, item)
	}
	b.WriteString("]")
}

func dumpMatrix(b *strings.Builder, m drawing.Matrix) {
	b.WriteString("[matrix")
	dumpArray(b, m[:], func(b *strings.Builder, v float32) { b.WriteString(fmtScalar(v)) })
	b.WriteString("]")
}
