package recording

import (
	"math"
	"strings"
	"sync"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
	"github.com/gogpu/drawing/raster"
)

// highContrastChannelSum splits text colors into light and dark for the
// high contrast outline.
const highContrastChannelSum = 594

// highContrastOutlineWidth is the stroke width of the high contrast outline.
const highContrastOutlineWidth = 1.04

// DrawTextBlobOpItem draws shaped text at a baseline origin.
//
// When the device clip is one pixel wide the text is first rasterized into
// an offscreen image and the image is drawn instead, since glyphs would
// otherwise escape the clip. The rasterized form is kept for later
// playbacks. An op may be played by several goroutines at once.
type DrawTextBlobOpItem struct {
	drawWithPaint
	blob *drawing.TextBlob
	x, y float32

	cacheMu    sync.Mutex
	cacheImage *DrawImageRectOpItem
}

func NewDrawTextBlobOpItem(blob *drawing.TextBlob, x, y float32, paint drawing.Paint) *DrawTextBlobOpItem {
	return &DrawTextBlobOpItem{drawWithPaint: newDrawWithPaint(OpTextBlob, paint), blob: blob, x: x, y: y}
}

// TextBlob returns the drawn text.
func (o *DrawTextBlobOpItem) TextBlob() *drawing.TextBlob { return o.blob }

func (o *DrawTextBlobOpItem) Marshalling(list *DrawCmdList) {
	blob := AddTextBlobToCmdList(&list.CmdList, o.blob)
	w := o.beginPaint(list, 16)
	writeOpData(w, blob)
	w.F32s(o.x, o.y)
	list.addOpItem(o.typ, w)
}

func (o *DrawTextBlobOpItem) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	if o.blob == nil {
		missing(o.typ, "text blob")
		return
	}
	if canvas.GetDeviceClipBounds().Width() == 1 {
		if img := o.cachedImage(canvas); img != nil {
			img.Playback(canvas, rect)
		}
		return
	}
	o.drawText(canvas)
}

// cachedImage returns the rasterized text, generating it on first use.
func (o *DrawTextBlobOpItem) cachedImage(canvas drawing.Canvas) *DrawImageRectOpItem {
	o.cacheMu.Lock()
	defer o.cacheMu.Unlock()
	if o.cacheImage == nil {
		o.cacheImage = o.GenerateCachedOpItem(canvas)
	}
	return o.cacheImage
}

func (o *DrawTextBlobOpItem) drawText(canvas drawing.Canvas) {
	if !canvas.IsHighContrastEnabled() || o.paint.Color.A() == 0 || o.paint.HasFilter() {
		canvas.AttachPaint(o.paint)
		canvas.DrawTextBlob(o.blob, o.x, o.y)
		return
	}
	o.drawHighContrast(canvas)
}

// drawHighContrast draws the text twice: a contrasting outline, then a
// plain fill on top.
func (o *DrawTextBlobOpItem) drawHighContrast(canvas drawing.Canvas) {
	c := o.paint.Color
	dark := uint32(c.R())+uint32(c.G())+uint32(c.B()) < highContrastChannelSum

	outline, inner := drawing.ColorBlack, drawing.ColorWhite
	if dark {
		outline, inner = drawing.ColorWhite, drawing.ColorBlack
	}

	p := simplifyPaint(o.paint, outline)
	p.Style = drawing.PaintFillStroke
	canvas.AttachPaint(p)
	canvas.DrawTextBlob(o.blob, o.x, o.y)

	p = simplifyPaint(o.paint, inner)
	p.Style = drawing.PaintFill
	canvas.AttachPaint(p)
	canvas.DrawTextBlob(o.blob, o.x, o.y)
}

// simplifyPaint strips shading from p and sets a solid color.
func simplifyPaint(p drawing.Paint, c drawing.Color) drawing.Paint {
	p.Color = c
	p.ShaderEffect = nil
	p.Filter.ColorFilter = nil
	p.Width = highContrastOutlineWidth
	p.Join = drawing.RoundJoin
	return p
}

// GenerateCachedOpItem rasterizes the text into an image sized to its
// bounds and returns an op drawing that image in place of the text. It
// returns nil when the text has no extent or no surface could be made.
//
// The offscreen surface comes from the canvas when it has one, so GPU
// canvases stay on the GPU; otherwise a raster surface is used.
func (o *DrawTextBlobOpItem) GenerateCachedOpItem(canvas drawing.Canvas) *DrawImageRectOpItem {
	if o.blob == nil {
		return nil
	}
	b := o.blob.Bounds()
	if b == nil || !b.IsValid() {
		return nil
	}
	bounds := b.Offset(o.x, o.y)
	w, h := int(math.Ceil(float64(bounds.Width()))), int(math.Ceil(float64(bounds.Height())))

	surface := offscreenSurface(canvas, w, h)
	if surface == nil {
		return nil
	}
	off := surface.GetCanvas()
	if bounds.Left != 0 || bounds.Top != 0 {
		off.Translate(-bounds.Left, -bounds.Top)
	}

	o.drawText(off)

	img := surface.GetImageSnapshot()
	if img == nil {
		return nil
	}
	src := drawing.MakeRectWH(float32(img.Width()), float32(img.Height()))
	paint := drawing.NewPaint()
	paint.AntiAlias = true
	return NewDrawImageRectOpItem(img, src, bounds, drawing.SamplingOptions{},
		drawing.FastSrcRectConstraint, paint)
}

func offscreenSurface(canvas drawing.Canvas, w, h int) drawing.Surface {
	if canvas != nil {
		if s := canvas.GetSurface(); s != nil {
			return s.MakeSurface(w, h)
		}
	}
	if s := raster.NewSurface(w, h); s != nil {
		return s
	}
	return nil
}

func (o *DrawTextBlobOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[x:" + fmtScalar(o.x) + " y:" + fmtScalar(o.y))
	if o.blob != nil {
		b.WriteString(" text:" + o.blob.Text())
	}
	b.WriteString("]")
}

func unmarshalTextBlob(l *DrawCmdList, r *binio.Reader) DrawOpItem {
	paint := readPaint(l, r)
	blob := GetTextBlobFromCmdList(&l.CmdList, readOpData(r))
	x, y := r.F32(), r.F32()
	return NewDrawTextBlobOpItem(blob, x, y, paint)
}

func init() {
	registerOp(OpTextBlob, unmarshalTextBlob)
}
