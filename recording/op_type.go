package recording

import "strconv"

// OpType identifies the kind of a recorded draw op. The values are part of
// the arena format and must not be reordered.
type OpType uint32

const (
	OpItemHead OpType = iota // chain head, carries no payload

	// Shapes
	OpPoint
	OpPoints
	OpLine
	OpRect
	OpRoundRect
	OpNestedRoundRect
	OpArc
	OpPie
	OpOval
	OpCircle
	OpColor
	OpImageNine
	OpImageAnnotation
	OpImageLattice
	OpPath
	OpBackground
	OpShadow

	// Images and text
	OpBitmap
	OpImage
	OpImageRect
	OpPicture
	OpTextBlob

	// Clip
	OpClipRect
	OpClipIRect
	OpClipRoundRect
	OpClipPath
	OpClipRegion

	// Matrix
	OpSetMatrix
	OpResetMatrix
	OpConcatMatrix
	OpTranslate
	OpScale
	OpRotate
	OpShear

	// State
	OpFlush
	OpClear
	OpSave
	OpSaveLayer
	OpRestore
	OpDiscard
	OpAttachPen
	OpAttachBrush
	OpDetachPen
	OpDetachBrush

	// Extended
	OpClipAdaptiveRoundRect
	OpAdaptiveImage
	OpAdaptivePixelMap
	OpExtendPixelMap
	OpImageWithParm
	OpRegion
	OpPatch
	OpEdgeAAQuad
	OpVertices
)

var opTypeNames = [...]string{
	OpItemHead:              "OPITEM_HEAD",
	OpPoint:                 "POINT_OPITEM",
	OpPoints:                "POINTS_OPITEM",
	OpLine:                  "LINE_OPITEM",
	OpRect:                  "RECT_OPITEM",
	OpRoundRect:             "ROUND_RECT_OPITEM",
	OpNestedRoundRect:       "NESTED_ROUND_RECT_OPITEM",
	OpArc:                   "ARC_OPITEM",
	OpPie:                   "PIE_OPITEM",
	OpOval:                  "OVAL_OPITEM",
	OpCircle:                "CIRCLE_OPITEM",
	OpColor:                 "COLOR_OPITEM",
	OpImageNine:             "IMAGE_NINE_OPITEM",
	OpImageAnnotation:       "IMAGE_ANNOTATION_OPITEM",
	OpImageLattice:          "IMAGE_LATTICE_OPITEM",
	OpPath:                  "PATH_OPITEM",
	OpBackground:            "BACKGROUND_OPITEM",
	OpShadow:                "SHADOW_OPITEM",
	OpBitmap:                "BITMAP_OPITEM",
	OpImage:                 "IMAGE_OPITEM",
	OpImageRect:             "IMAGE_RECT_OPITEM",
	OpPicture:               "PICTURE_OPITEM",
	OpTextBlob:              "TEXT_BLOB_OPITEM",
	OpClipRect:              "CLIP_RECT_OPITEM",
	OpClipIRect:             "CLIP_IRECT_OPITEM",
	OpClipRoundRect:         "CLIP_ROUND_RECT_OPITEM",
	OpClipPath:              "CLIP_PATH_OPITEM",
	OpClipRegion:            "CLIP_REGION_OPITEM",
	OpSetMatrix:             "SET_MATRIX_OPITEM",
	OpResetMatrix:           "RESET_MATRIX_OPITEM",
	OpConcatMatrix:          "CONCAT_MATRIX_OPITEM",
	OpTranslate:             "TRANSLATE_OPITEM",
	OpScale:                 "SCALE_OPITEM",
	OpRotate:                "ROTATE_OPITEM",
	OpShear:                 "SHEAR_OPITEM",
	OpFlush:                 "FLUSH_OPITEM",
	OpClear:                 "CLEAR_OPITEM",
	OpSave:                  "SAVE_OPITEM",
	OpSaveLayer:             "SAVE_LAYER_OPITEM",
	OpRestore:               "RESTORE_OPITEM",
	OpDiscard:               "DISCARD_OPITEM",
	OpAttachPen:             "ATTACH_PEN_OPITEM",
	OpAttachBrush:           "ATTACH_BRUSH_OPITEM",
	OpDetachPen:             "DETACH_PEN_OPITEM",
	OpDetachBrush:           "DETACH_BRUSH_OPITEM",
	OpClipAdaptiveRoundRect: "CLIP_ADAPTIVE_ROUND_RECT_OPITEM",
	OpAdaptiveImage:         "ADAPTIVE_IMAGE_OPITEM",
	OpAdaptivePixelMap:      "ADAPTIVE_PIXELMAP_OPITEM",
	OpExtendPixelMap:        "EXTEND_PIXELMAP_OPITEM",
	OpImageWithParm:         "IMAGE_WITH_PARM_OPITEM",
	OpRegion:                "REGION_OPITEM",
	OpPatch:                 "PATCH_OPITEM",
	OpEdgeAAQuad:            "EDGEAAQUAD_OPITEM",
	OpVertices:              "VERTICES_OPITEM",
}

// String returns the op name used in descriptions and dumps.
func (t OpType) String() string {
	if int(t) < len(opTypeNames) && opTypeNames[t] != "" {
		return opTypeNames[t]
	}
	return "OpType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// IsDrawOp reports whether ops of this type produce pixels.
func (t OpType) IsDrawOp() bool {
	return t >= OpPoint && t <= OpTextBlob ||
		t >= OpAdaptiveImage && t <= OpImageWithParm ||
		t >= OpRegion && t <= OpVertices
}

// IsClipOp reports whether ops of this type change the clip.
func (t OpType) IsClipOp() bool {
	return t >= OpClipRect && t <= OpClipRegion || t == OpClipAdaptiveRoundRect
}
