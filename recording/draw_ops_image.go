package recording

import (
	"strconv"
	"strings"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// optionalBrush writes a brush handle followed by a presence flag.
func writeOptionalBrush(list *DrawCmdList, w *binio.Writer, brush *drawing.Brush) {
	var h BrushHandle
	if brush != nil {
		h = AddBrushToCmdList(&list.CmdList, *brush)
	}
	writeBrushHandle(w, h)
	w.Bool(brush != nil)
}

func readOptionalBrush(list *DrawCmdList, r *binio.Reader) *drawing.Brush {
	h := readBrushHandle(r)
	if !r.Bool() {
		return nil
	}
	brush := GetBrushFromCmdList(&list.CmdList, h)
	return &brush
}

// DrawImageNineOpItem draws an image stretched around a fixed center.
type DrawImageNineOpItem struct {
	opItem
	image  *drawing.Image
	center drawing.RectI
	dst    drawing.Rect
	filter drawing.FilterMode
	brush  *drawing.Brush
}

func NewDrawImageNineOpItem(image *drawing.Image, center drawing.RectI, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) *DrawImageNineOpItem {
	return &DrawImageNineOpItem{
		opItem: opItem{typ: OpImageNine},
		image:  image,
		center: center,
		dst:    dst,
		filter: filter,
		brush:  brush,
	}
}

func (o *DrawImageNineOpItem) Marshalling(list *DrawCmdList) {
	img := AddImageToCmdList(&list.CmdList, o.image)
	w := binio.NewWriter(64 + brushHandleSize)
	writeImageHandle(w, img)
	writeRectI(w, o.center)
	writeRect(w, o.dst)
	w.U32(uint32(o.filter))
	writeOptionalBrush(list, w, o.brush)
	list.addOpItem(o.typ, w)
}

func (o *DrawImageNineOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.image == nil {
		missing(o.typ, "image")
		return
	}
	canvas.DrawImageNine(o.image, o.center, o.dst, o.filter, o.brush)
}

func (o *DrawImageNineOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[image")
	dumpImage(b, o.image)
	b.WriteString(" center")
	dumpRectI(b, o.center)
	b.WriteString(" dst")
	dumpRect(b, o.dst)
	b.WriteString(" filter:" + strconv.Itoa(int(o.filter)))
	if o.brush != nil {
		b.WriteString(" brush")
		dumpBrush(b, *o.brush)
	}
	b.WriteString("]")
}

// DrawImageLatticeOpItem draws an image split by a lattice.
type DrawImageLatticeOpItem struct {
	opItem
	image   *drawing.Image
	lattice drawing.Lattice
	dst     drawing.Rect
	filter  drawing.FilterMode
	brush   *drawing.Brush
}

func NewDrawImageLatticeOpItem(image *drawing.Image, lattice drawing.Lattice, dst drawing.Rect,
	filter drawing.FilterMode, brush *drawing.Brush) *DrawImageLatticeOpItem {
	return &DrawImageLatticeOpItem{
		opItem:  opItem{typ: OpImageLattice},
		image:   image,
		lattice: lattice,
		dst:     dst,
		filter:  filter,
		brush:   brush,
	}
}

func (o *DrawImageLatticeOpItem) Marshalling(list *DrawCmdList) {
	img := AddImageToCmdList(&list.CmdList, o.image)
	lattice := AddLatticeToCmdList(&list.CmdList, o.lattice)
	w := binio.NewWriter(96 + brushHandleSize)
	writeImageHandle(w, img)
	writeLatticeHandle(w, lattice)
	writeRect(w, o.dst)
	w.U32(uint32(o.filter))
	writeOptionalBrush(list, w, o.brush)
	list.addOpItem(o.typ, w)
}

func (o *DrawImageLatticeOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.image == nil {
		missing(o.typ, "image")
		return
	}
	canvas.DrawImageLattice(o.image, o.lattice, o.dst, o.filter, o.brush)
}

// DrawBitmapOpItem draws raw pixels at a point.
type DrawBitmapOpItem struct {
	drawWithPaint
	bitmap *drawing.Bitmap
	px, py float32
}

func NewDrawBitmapOpItem(bitmap *drawing.Bitmap, px, py float32, paint drawing.Paint) *DrawBitmapOpItem {
	return &DrawBitmapOpItem{drawWithPaint: newDrawWithPaint(OpBitmap, paint), bitmap: bitmap, px: px, py: py}
}

func (o *DrawBitmapOpItem) Marshalling(list *DrawCmdList) {
	bmp := AddBitmapToCmdList(&list.CmdList, o.bitmap)
	w := o.beginPaint(list, 32)
	writeImageHandle(w, bmp)
	w.F32s(o.px, o.py)
	list.addOpItem(o.typ, w)
}

func (o *DrawBitmapOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.bitmap == nil {
		missing(o.typ, "bitmap")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawBitmap(o.bitmap, o.px, o.py)
}

// DrawImageOpItem draws an image at a point.
type DrawImageOpItem struct {
	drawWithPaint
	image    *drawing.Image
	px, py   float32
	sampling drawing.SamplingOptions
}

func NewDrawImageOpItem(image *drawing.Image, px, py float32, sampling drawing.SamplingOptions,
	paint drawing.Paint) *DrawImageOpItem {
	return &DrawImageOpItem{
		drawWithPaint: newDrawWithPaint(OpImage, paint),
		image:         image,
		px:            px,
		py:            py,
		sampling:      sampling,
	}
}

func (o *DrawImageOpItem) Marshalling(list *DrawCmdList) {
	img := AddImageToCmdList(&list.CmdList, o.image)
	w := o.beginPaint(list, 36)
	writeImageHandle(w, img)
	w.F32s(o.px, o.py)
	writeSampling(w, o.sampling)
	list.addOpItem(o.typ, w)
}

func (o *DrawImageOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.image == nil {
		missing(o.typ, "image")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawImage(o.image, o.px, o.py, o.sampling)
}

func (o *DrawImageOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[image")
	dumpImage(b, o.image)
	b.WriteString(" px:" + fmtScalar(o.px) + " py:" + fmtScalar(o.py) + "]")
}

// DrawImageRectOpItem draws the src part of an image into dst.
type DrawImageRectOpItem struct {
	drawWithPaint
	image      *drawing.Image
	src, dst   drawing.Rect
	sampling   drawing.SamplingOptions
	constraint drawing.SrcRectConstraint
}

func NewDrawImageRectOpItem(image *drawing.Image, src, dst drawing.Rect, sampling drawing.SamplingOptions,
	constraint drawing.SrcRectConstraint, paint drawing.Paint) *DrawImageRectOpItem {
	return &DrawImageRectOpItem{
		drawWithPaint: newDrawWithPaint(OpImageRect, paint),
		image:         image,
		src:           src,
		dst:           dst,
		sampling:      sampling,
		constraint:    constraint,
	}
}

// Image returns the drawn image.
func (o *DrawImageRectOpItem) Image() *drawing.Image { return o.image }

func (o *DrawImageRectOpItem) Marshalling(list *DrawCmdList) {
	img := AddImageToCmdList(&list.CmdList, o.image)
	w := o.beginPaint(list, 64)
	writeImageHandle(w, img)
	writeRect(w, o.src)
	writeRect(w, o.dst)
	writeSampling(w, o.sampling)
	w.U32(uint32(o.constraint))
	list.addOpItem(o.typ, w)
}

func (o *DrawImageRectOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.image == nil {
		missing(o.typ, "image")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawImageRect(o.image, o.src, o.dst, o.sampling, o.constraint)
}

func (o *DrawImageRectOpItem) Dump(b *strings.Builder) {
	b.WriteString(o.Desc() + "[image")
	dumpImage(b, o.image)
	b.WriteString(" src")
	dumpRect(b, o.src)
	b.WriteString(" dst")
	dumpRect(b, o.dst)
	b.WriteString(" constraint:" + strconv.Itoa(int(o.constraint)) + "]")
}

// DrawPictureOpItem plays a serialized picture.
type DrawPictureOpItem struct {
	opItem
	picture *drawing.Picture
}

func NewDrawPictureOpItem(picture *drawing.Picture) *DrawPictureOpItem {
	return &DrawPictureOpItem{opItem: opItem{typ: OpPicture}, picture: picture}
}

func (o *DrawPictureOpItem) Marshalling(list *DrawCmdList) {
	pic := AddPictureToCmdList(&list.CmdList, o.picture)
	w := binio.NewWriter(8)
	writeOpData(w, pic)
	list.addOpItem(o.typ, w)
}

func (o *DrawPictureOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.picture == nil {
		missing(o.typ, "picture")
		return
	}
	canvas.DrawPicture(o.picture)
}

// DrawAdaptiveImageOpItem fits an image into the playback rect. The image
// is kept either decoded or as still-compressed data.
type DrawAdaptiveImageOpItem struct {
	drawWithPaint
	image    *drawing.Image
	data     *drawing.Data
	info     drawing.AdaptiveImageInfo
	sampling drawing.SamplingOptions
}

func NewDrawAdaptiveImageOpItem(image *drawing.Image, info drawing.AdaptiveImageInfo,
	sampling drawing.SamplingOptions, paint drawing.Paint) *DrawAdaptiveImageOpItem {
	return &DrawAdaptiveImageOpItem{
		drawWithPaint: newDrawWithPaint(OpAdaptiveImage, paint),
		image:         image,
		info:          info,
		sampling:      sampling,
	}
}

// NewDrawAdaptiveDataOpItem is NewDrawAdaptiveImageOpItem for encoded
// image data that is decoded on playback.
func NewDrawAdaptiveDataOpItem(data *drawing.Data, info drawing.AdaptiveImageInfo,
	sampling drawing.SamplingOptions, paint drawing.Paint) *DrawAdaptiveImageOpItem {
	return &DrawAdaptiveImageOpItem{
		drawWithPaint: newDrawWithPaint(OpAdaptiveImage, paint),
		data:          data,
		info:          info,
		sampling:      sampling,
	}
}

func (o *DrawAdaptiveImageOpItem) isImage() bool { return o.data == nil }

func (o *DrawAdaptiveImageOpItem) Marshalling(list *DrawCmdList) {
	var img ImageHandle
	if o.isImage() {
		img = AddImageToCmdList(&list.CmdList, o.image)
	} else {
		d := AddDataToCmdList(&list.CmdList, o.data)
		img = ImageHandle{Offset: d.Offset, Size: d.Size}
	}
	w := o.beginPaint(list, 28+adaptiveInfoSize+8)
	writeImageHandle(w, img)
	writeAdaptiveInfo(w, o.info)
	writeSampling(w, o.sampling)
	w.Bool(o.isImage())
	list.addOpItem(o.typ, w)
}

func (o *DrawAdaptiveImageOpItem) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	img := o.image
	if !o.isImage() {
		decoded, err := drawing.DeserializeImage(o.data.Bytes())
		if err != nil {
			drawing.Logger().Warn("recording: decode adaptive image", "err", err)
			return
		}
		img = decoded
	}
	if img == nil {
		missing(o.typ, "image")
		return
	}
	if rect == nil {
		missing(o.typ, "rect")
		return
	}
	canvas.AttachPaint(o.paint)
	drawAdaptiveImage(canvas, *rect, img, o.info, o.sampling)
}

// DrawAdaptivePixelMapOpItem fits a pixel map into the playback rect.
type DrawAdaptivePixelMapOpItem struct {
	drawWithPaint
	pixelMap *drawing.PixelMap
	info     drawing.AdaptiveImageInfo
	sampling drawing.SamplingOptions
}

func NewDrawAdaptivePixelMapOpItem(pm *drawing.PixelMap, info drawing.AdaptiveImageInfo,
	sampling drawing.SamplingOptions, paint drawing.Paint) *DrawAdaptivePixelMapOpItem {
	return &DrawAdaptivePixelMapOpItem{
		drawWithPaint: newDrawWithPaint(OpAdaptivePixelMap, paint),
		pixelMap:      pm,
		info:          info,
		sampling:      sampling,
	}
}

func (o *DrawAdaptivePixelMapOpItem) Marshalling(list *DrawCmdList) {
	pm := AddPixelMapToCmdList(&list.CmdList, o.pixelMap)
	w := o.beginPaint(list, 8+adaptiveInfoSize+4)
	writeOpData(w, pm)
	writeAdaptiveInfo(w, o.info)
	writeSampling(w, o.sampling)
	list.addOpItem(o.typ, w)
}

func (o *DrawAdaptivePixelMapOpItem) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	if o.pixelMap == nil {
		missing(o.typ, "pixel map")
		return
	}
	if rect == nil {
		missing(o.typ, "rect")
		return
	}
	canvas.AttachPaint(o.paint)
	drawAdaptiveImage(canvas, *rect, o.pixelMap.Image(), o.info, o.sampling)
}

// DrawExtendPixelMapOpItem draws a pixel map that stays in the list's side
// table instead of being serialized.
type DrawExtendPixelMapOpItem struct {
	drawWithPaint
	pixelMap *drawing.PixelMap
	src, dst drawing.Rect
	sampling drawing.SamplingOptions
}

func NewDrawExtendPixelMapOpItem(pm *drawing.PixelMap, src, dst drawing.Rect,
	sampling drawing.SamplingOptions, paint drawing.Paint) *DrawExtendPixelMapOpItem {
	return &DrawExtendPixelMapOpItem{
		drawWithPaint: newDrawWithPaint(OpExtendPixelMap, paint),
		pixelMap:      pm,
		src:           src,
		dst:           dst,
		sampling:      sampling,
	}
}

func (o *DrawExtendPixelMapOpItem) Marshalling(list *DrawCmdList) {
	index := list.AddPixelMap(o.pixelMap)
	w := o.beginPaint(list, 40)
	w.U32(index)
	writeRect(w, o.src)
	writeRect(w, o.dst)
	writeSampling(w, o.sampling)
	list.addOpItem(o.typ, w)
}

func (o *DrawExtendPixelMapOpItem) Playback(canvas drawing.Canvas, _ *drawing.Rect) {
	if o.pixelMap == nil {
		missing(o.typ, "pixel map")
		return
	}
	canvas.AttachPaint(o.paint)
	canvas.DrawPixelMapRect(o.pixelMap, o.src, o.dst, o.sampling)
}

// DrawImageWithParmOpItem lets an external image object draw itself into
// the playback rect.
type DrawImageWithParmOpItem struct {
	drawWithPaint
	object   drawing.ImageObject
	sampling drawing.SamplingOptions
}

func NewDrawImageWithParmOpItem(obj drawing.ImageObject, sampling drawing.SamplingOptions,
	paint drawing.Paint) *DrawImageWithParmOpItem {
	return &DrawImageWithParmOpItem{
		drawWithPaint: newDrawWithPaint(OpImageWithParm, paint),
		object:        obj,
		sampling:      sampling,
	}
}

func (o *DrawImageWithParmOpItem) Marshalling(list *DrawCmdList) {
	index := list.AddImageObject(o.object)
	w := o.beginPaint(list, 8)
	w.U32(index)
	writeSampling(w, o.sampling)
	list.addOpItem(o.typ, w)
}

func (o *DrawImageWithParmOpItem) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	if o.object == nil {
		missing(o.typ, "image object")
		return
	}
	if rect == nil {
		missing(o.typ, "rect")
		return
	}
	canvas.AttachPaint(o.paint)
	o.object.Playback(canvas, *rect, o.sampling)
}

func init() {
	registerOp(OpImageNine, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		img := GetImageFromCmdList(&l.CmdList, readImageHandle(r))
		center := readRectI(r)
		dst := readRect(r)
		filter := drawing.FilterMode(r.U32())
		return NewDrawImageNineOpItem(img, center, dst, filter, readOptionalBrush(l, r))
	})
	registerOp(OpImageLattice, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		img := GetImageFromCmdList(&l.CmdList, readImageHandle(r))
		lattice := GetLatticeFromCmdList(&l.CmdList, readLatticeHandle(r))
		dst := readRect(r)
		filter := drawing.FilterMode(r.U32())
		return NewDrawImageLatticeOpItem(img, lattice, dst, filter, readOptionalBrush(l, r))
	})
	registerOp(OpBitmap, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		bmp := GetBitmapFromCmdList(&l.CmdList, readImageHandle(r))
		px, py := r.F32(), r.F32()
		return NewDrawBitmapOpItem(bmp, px, py, paint)
	})
	registerOp(OpImage, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		img := GetImageFromCmdList(&l.CmdList, readImageHandle(r))
		px, py := r.F32(), r.F32()
		return NewDrawImageOpItem(img, px, py, readSampling(r), paint)
	})
	registerOp(OpImageRect, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		img := GetImageFromCmdList(&l.CmdList, readImageHandle(r))
		src := readRect(r)
		dst := readRect(r)
		sampling := readSampling(r)
		return NewDrawImageRectOpItem(img, src, dst, sampling, drawing.SrcRectConstraint(r.U32()), paint)
	})
	registerOp(OpPicture, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		return NewDrawPictureOpItem(GetPictureFromCmdList(&l.CmdList, readOpData(r)))
	})
	registerOp(OpAdaptiveImage, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		h := readImageHandle(r)
		info := readAdaptiveInfo(r)
		sampling := readSampling(r)
		if r.Bool() {
			return NewDrawAdaptiveImageOpItem(GetImageFromCmdList(&l.CmdList, h), info, sampling, paint)
		}
		data := GetDataFromCmdList(&l.CmdList, OpDataHandle{Offset: h.Offset, Size: h.Size})
		if data == nil {
			// Keeps the op in data mode so playback reports the missing image.
			data = drawing.NewData(nil)
		}
		return NewDrawAdaptiveDataOpItem(data, info, sampling, paint)
	})
	registerOp(OpAdaptivePixelMap, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		pm := GetPixelMapFromCmdList(&l.CmdList, readOpData(r))
		info := readAdaptiveInfo(r)
		return NewDrawAdaptivePixelMapOpItem(pm, info, readSampling(r), paint)
	})
	registerOp(OpExtendPixelMap, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		pm := l.GetPixelMap(r.U32())
		src := readRect(r)
		dst := readRect(r)
		return NewDrawExtendPixelMapOpItem(pm, src, dst, readSampling(r), paint)
	})
	registerOp(OpImageWithParm, func(l *DrawCmdList, r *binio.Reader) DrawOpItem {
		paint := readPaint(l, r)
		obj := l.GetImageObject(r.U32())
		return NewDrawImageWithParmOpItem(obj, readSampling(r), paint)
	})
}
