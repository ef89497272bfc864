package recording

import (
	"encoding/binary"

	"github.com/gogpu/drawing"
)

// The helpers below move resources in and out of a command list. Add*
// returns the zero handle when there is nothing to store; Get* returns nil
// for a zero handle or bytes that do not decode.

// AddVectorToCmdList stores v inline in the op arena. T must be a
// fixed-size type such as float32, int32, drawing.Color or drawing.Point.
func AddVectorToCmdList[T any](list *CmdList, v []T) OpDataHandle {
	if len(v) == 0 {
		return OpDataHandle{}
	}
	data, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		drawing.Logger().Warn("recording: encode vector", "err", err)
		return OpDataHandle{}
	}
	offset := list.AddCmdListData(data)
	if offset == 0 {
		return OpDataHandle{}
	}
	return OpDataHandle{Offset: offset, Size: uint32(len(data))} // #nosec G115
}

// GetVectorFromCmdList decodes a vector stored by AddVectorToCmdList.
func GetVectorFromCmdList[T any](list *CmdList, h OpDataHandle) []T {
	data := list.GetCmdListData(h)
	if data == nil {
		return nil
	}
	var zero T
	elem := binary.Size(zero)
	if elem <= 0 || len(data)%elem != 0 {
		drawing.Logger().Warn("recording: vector size mismatch", "size", len(data), "elem", elem)
		return nil
	}
	out := make([]T, len(data)/elem)
	if _, err := binary.Decode(data, binary.LittleEndian, out); err != nil {
		drawing.Logger().Warn("recording: decode vector", "err", err)
		return nil
	}
	return out
}

// addBlob stores data in the image arena.
func addBlob(list *CmdList, data []byte) OpDataHandle {
	if len(data) == 0 {
		return OpDataHandle{}
	}
	offset, ok := list.addImageData(data)
	if !ok {
		return OpDataHandle{}
	}
	return OpDataHandle{Offset: offset, Size: uint32(len(data))} // #nosec G115
}

func getBlob(list *CmdList, h OpDataHandle, what string) []byte {
	if h.Size == 0 {
		return nil
	}
	data := list.GetImageData(h.Offset, h.Size)
	if data == nil {
		drawing.Logger().Warn("recording: handle out of range", "kind", what, "offset", h.Offset, "size", h.Size)
	}
	return data
}

// AddImageToCmdList stores img, reusing an earlier copy of the same image.
func AddImageToCmdList(list *CmdList, img *drawing.Image) ImageHandle {
	return list.AddImage(img)
}

// GetImageFromCmdList decodes the image h refers to.
func GetImageFromCmdList(list *CmdList, h ImageHandle) *drawing.Image {
	return list.GetImage(h)
}

// AddBitmapToCmdList stores the raw pixels of bmp.
func AddBitmapToCmdList(list *CmdList, bmp *drawing.Bitmap) ImageHandle {
	if !bmp.IsValid() {
		return ImageHandle{}
	}
	h := addBlob(list, bmp.Pixels())
	if h.Size == 0 {
		return ImageHandle{}
	}
	return ImageHandle{
		Offset:    h.Offset,
		Size:      h.Size,
		Width:     bmp.Width(),
		Height:    bmp.Height(),
		ColorType: bmp.ColorType(),
		AlphaType: bmp.AlphaType(),
	}
}

// GetBitmapFromCmdList rebuilds the bitmap h refers to.
func GetBitmapFromCmdList(list *CmdList, h ImageHandle) *drawing.Bitmap {
	pixels := getBlob(list, OpDataHandle{Offset: h.Offset, Size: h.Size}, "bitmap")
	if pixels == nil {
		return nil
	}
	bpp := h.ColorType.BytesPerPixel()
	if h.Width <= 0 || h.Height <= 0 || bpp == 0 ||
		uint64(h.Width)*uint64(h.Height)*uint64(bpp) != uint64(len(pixels)) {
		drawing.Logger().Warn("recording: bitmap handle does not match its pixels",
			"width", h.Width, "height", h.Height, "size", h.Size)
		return nil
	}
	bmp := &drawing.Bitmap{}
	if !bmp.Build(h.Width, h.Height, h.ColorType, h.AlphaType) || !bmp.SetPixels(pixels) {
		drawing.Logger().Warn("recording: bitmap handle does not match its pixels",
			"width", h.Width, "height", h.Height, "size", h.Size)
		return nil
	}
	return bmp
}

// AddPictureToCmdList stores the serialized picture.
func AddPictureToCmdList(list *CmdList, pic *drawing.Picture) OpDataHandle {
	if pic == nil {
		return OpDataHandle{}
	}
	return addBlob(list, pic.Serialize())
}

// GetPictureFromCmdList rebuilds the picture h refers to.
func GetPictureFromCmdList(list *CmdList, h OpDataHandle) *drawing.Picture {
	data := getBlob(list, h, "picture")
	if data == nil {
		return nil
	}
	pic, err := drawing.DeserializePicture(data)
	if err != nil {
		drawing.Logger().Warn("recording: decode picture", "err", err)
		return nil
	}
	return pic
}

// AddVerticesToCmdList stores the flattened mesh.
func AddVerticesToCmdList(list *CmdList, v *drawing.Vertices) FlattenableHandle {
	if v == nil {
		return FlattenableHandle{}
	}
	return addBlob(list, v.Serialize())
}

// GetVerticesFromCmdList rebuilds the mesh h refers to.
func GetVerticesFromCmdList(list *CmdList, h FlattenableHandle) *drawing.Vertices {
	data := getBlob(list, h, "vertices")
	if data == nil {
		return nil
	}
	v, err := drawing.DeserializeVertices(data)
	if err != nil {
		drawing.Logger().Warn("recording: decode vertices", "err", err)
		return nil
	}
	return v
}

// AddTextBlobToCmdList stores the serialized text blob.
func AddTextBlobToCmdList(list *CmdList, blob *drawing.TextBlob) OpDataHandle {
	if blob == nil {
		return OpDataHandle{}
	}
	return addBlob(list, blob.Serialize())
}

// GetTextBlobFromCmdList rebuilds the text blob h refers to.
func GetTextBlobFromCmdList(list *CmdList, h OpDataHandle) *drawing.TextBlob {
	data := getBlob(list, h, "text blob")
	if data == nil {
		return nil
	}
	blob, err := drawing.DeserializeTextBlob(data)
	if err != nil {
		drawing.Logger().Warn("recording: decode text blob", "err", err)
		return nil
	}
	return blob
}

// AddTypefaceToCmdList stores the serialized typeface.
func AddTypefaceToCmdList(list *CmdList, tf *drawing.Typeface) FlattenableHandle {
	if tf == nil {
		return FlattenableHandle{}
	}
	return addBlob(list, tf.Serialize())
}

// GetTypefaceFromCmdList rebuilds the typeface h refers to.
func GetTypefaceFromCmdList(list *CmdList, h FlattenableHandle) *drawing.Typeface {
	data := getBlob(list, h, "typeface")
	if data == nil {
		return nil
	}
	tf, err := drawing.DeserializeTypeface(data)
	if err != nil {
		drawing.Logger().Warn("recording: decode typeface", "err", err)
		return nil
	}
	return tf
}

// AddDataToCmdList stores a copy of d.
func AddDataToCmdList(list *CmdList, d *drawing.Data) OpDataHandle {
	return addBlob(list, d.Bytes())
}

// GetDataFromCmdList returns a copy of the stored bytes.
func GetDataFromCmdList(list *CmdList, h OpDataHandle) *drawing.Data {
	data := getBlob(list, h, "data")
	if data == nil {
		return nil
	}
	return drawing.CopyData(data)
}

// AddPixelMapToCmdList stores the serialized pixel map.
func AddPixelMapToCmdList(list *CmdList, pm *drawing.PixelMap) OpDataHandle {
	if pm == nil {
		return OpDataHandle{}
	}
	return addBlob(list, pm.Serialize())
}

// GetPixelMapFromCmdList rebuilds the pixel map h refers to.
func GetPixelMapFromCmdList(list *CmdList, h OpDataHandle) *drawing.PixelMap {
	data := getBlob(list, h, "pixel map")
	if data == nil {
		return nil
	}
	pm, err := drawing.DeserializePixelMap(data)
	if err != nil {
		drawing.Logger().Warn("recording: decode pixel map", "err", err)
		return nil
	}
	return pm
}

// AddLatticeToCmdList stores the lattice vectors inline.
func AddLatticeToCmdList(list *CmdList, lattice drawing.Lattice) LatticeHandle {
	h := LatticeHandle{
		XDivs:     AddVectorToCmdList(list, lattice.XDivs),
		YDivs:     AddVectorToCmdList(list, lattice.YDivs),
		RectTypes: AddVectorToCmdList(list, lattice.RectTypes),
		Colors:    AddVectorToCmdList(list, lattice.Colors),
	}
	if lattice.Bounds != nil {
		h.Bounds = AddVectorToCmdList(list, []drawing.RectI{*lattice.Bounds})
	}
	return h
}

// GetLatticeFromCmdList rebuilds the lattice h refers to.
func GetLatticeFromCmdList(list *CmdList, h LatticeHandle) drawing.Lattice {
	lattice := drawing.Lattice{
		XDivs:     GetVectorFromCmdList[int32](list, h.XDivs),
		YDivs:     GetVectorFromCmdList[int32](list, h.YDivs),
		RectTypes: GetVectorFromCmdList[drawing.LatticeRectType](list, h.RectTypes),
		Colors:    GetVectorFromCmdList[drawing.Color](list, h.Colors),
	}
	if bounds := GetVectorFromCmdList[drawing.RectI](list, h.Bounds); len(bounds) == 1 {
		lattice.Bounds = &bounds[0]
	}
	return lattice
}

// AddBrushToCmdList flattens brush, recording its effects as nested lists.
func AddBrushToCmdList(list *CmdList, brush drawing.Brush) BrushHandle {
	return BrushHandle{
		Color:        brush.Color,
		Mode:         brush.BlendMode,
		IsAntiAlias:  brush.AntiAlias,
		ColorFilter:  AddColorFilterToCmdList(list, brush.Filter.ColorFilter),
		ColorSpace:   AddColorSpaceToCmdList(list, brush.ColorSpace),
		ShaderEffect: AddShaderEffectToCmdList(list, brush.ShaderEffect),
		ImageFilter:  AddImageFilterToCmdList(list, brush.Filter.ImageFilter),
		MaskFilter:   AddMaskFilterToCmdList(list, brush.Filter.MaskFilter),
	}
}

// GetBrushFromCmdList rebuilds the brush h describes.
func GetBrushFromCmdList(list *CmdList, h BrushHandle) drawing.Brush {
	return drawing.Brush{
		Color:     h.Color,
		BlendMode: h.Mode,
		AntiAlias: h.IsAntiAlias,
		Filter: drawing.Filter{
			ColorFilter: GetColorFilterFromCmdList(list, h.ColorFilter),
			ImageFilter: GetImageFilterFromCmdList(list, h.ImageFilter),
			MaskFilter:  GetMaskFilterFromCmdList(list, h.MaskFilter),
		},
		ShaderEffect: GetShaderEffectFromCmdList(list, h.ShaderEffect),
		ColorSpace:   GetColorSpaceFromCmdList(list, h.ColorSpace),
	}
}

// AddPenToCmdList flattens pen, recording its effects as nested lists.
func AddPenToCmdList(list *CmdList, pen drawing.Pen) PenHandle {
	return PenHandle{
		Color:        pen.Color,
		Mode:         pen.BlendMode,
		IsAntiAlias:  pen.AntiAlias,
		Width:        pen.Width,
		MiterLimit:   pen.MiterLimit,
		CapStyle:     pen.Cap,
		JoinStyle:    pen.Join,
		ColorFilter:  AddColorFilterToCmdList(list, pen.Filter.ColorFilter),
		ColorSpace:   AddColorSpaceToCmdList(list, pen.ColorSpace),
		ShaderEffect: AddShaderEffectToCmdList(list, pen.ShaderEffect),
		ImageFilter:  AddImageFilterToCmdList(list, pen.Filter.ImageFilter),
		MaskFilter:   AddMaskFilterToCmdList(list, pen.Filter.MaskFilter),
		PathEffect:   AddPathEffectToCmdList(list, pen.PathEffect),
	}
}

// GetPenFromCmdList rebuilds the pen h describes.
func GetPenFromCmdList(list *CmdList, h PenHandle) drawing.Pen {
	return drawing.Pen{
		Color:      h.Color,
		BlendMode:  h.Mode,
		AntiAlias:  h.IsAntiAlias,
		Width:      h.Width,
		MiterLimit: h.MiterLimit,
		Cap:        h.CapStyle,
		Join:       h.JoinStyle,
		Filter: drawing.Filter{
			ColorFilter: GetColorFilterFromCmdList(list, h.ColorFilter),
			ImageFilter: GetImageFilterFromCmdList(list, h.ImageFilter),
			MaskFilter:  GetMaskFilterFromCmdList(list, h.MaskFilter),
		},
		ShaderEffect: GetShaderEffectFromCmdList(list, h.ShaderEffect),
		ColorSpace:   GetColorSpaceFromCmdList(list, h.ColorSpace),
		PathEffect:   GetPathEffectFromCmdList(list, h.PathEffect),
	}
}

// AddPaintToCmdList flattens paint, recording its effects as nested lists.
// Stroke settings are stored only when the style strokes.
func AddPaintToCmdList(list *CmdList, paint drawing.Paint) PaintHandle {
	h := PaintHandle{
		Style:        paint.Style,
		Color:        paint.Color,
		Mode:         paint.BlendMode,
		IsAntiAlias:  paint.AntiAlias,
		ColorFilter:  AddColorFilterToCmdList(list, paint.Filter.ColorFilter),
		ColorSpace:   AddColorSpaceToCmdList(list, paint.ColorSpace),
		ShaderEffect: AddShaderEffectToCmdList(list, paint.ShaderEffect),
		ImageFilter:  AddImageFilterToCmdList(list, paint.Filter.ImageFilter),
		MaskFilter:   AddMaskFilterToCmdList(list, paint.Filter.MaskFilter),
	}
	if paint.HasStroke() {
		h.Width = paint.Width
		h.MiterLimit = paint.MiterLimit
		h.CapStyle = paint.Cap
		h.JoinStyle = paint.Join
		h.PathEffect = AddPathEffectToCmdList(list, paint.PathEffect)
	}
	return h
}

// GeneratePaintFromHandle rebuilds the paint h describes. A fill-only
// handle leaves the stroke settings at their defaults.
func GeneratePaintFromHandle(list *CmdList, h PaintHandle) drawing.Paint {
	p := drawing.NewPaint()
	p.Style = h.Style
	p.Color = h.Color
	p.BlendMode = h.Mode
	p.AntiAlias = h.IsAntiAlias
	p.Filter = drawing.Filter{
		ColorFilter: GetColorFilterFromCmdList(list, h.ColorFilter),
		ImageFilter: GetImageFilterFromCmdList(list, h.ImageFilter),
		MaskFilter:  GetMaskFilterFromCmdList(list, h.MaskFilter),
	}
	p.ShaderEffect = GetShaderEffectFromCmdList(list, h.ShaderEffect)
	p.ColorSpace = GetColorSpaceFromCmdList(list, h.ColorSpace)
	if p.HasStroke() {
		p.Width = h.Width
		p.MiterLimit = h.MiterLimit
		p.Cap = h.CapStyle
		p.Join = h.JoinStyle
		p.PathEffect = GetPathEffectFromCmdList(list, h.PathEffect)
	}
	return p
}
