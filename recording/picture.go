package recording

import (
	"fmt"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// MakePicture snapshots the arenas of list into a Picture. A DEFERRED list
// must have been marshalled first.
func MakePicture(list *DrawCmdList) *drawing.Picture {
	ops := list.GetData()
	images := list.GetAllImageData()
	w := binio.NewWriter(len(ops) + len(images) + 8)
	w.Blob(ops)
	w.Blob(images)
	return drawing.NewPicture(w.Bytes())
}

// picturePlayer streams the records of a decoded picture to a canvas.
type picturePlayer struct {
	list *DrawCmdList
}

func decodePicture(data []byte) (drawing.PicturePlayer, error) {
	r := binio.NewReader(data)
	ops := r.Blob()
	images := r.Blob()
	if r.Err() != nil {
		return nil, fmt.Errorf("recording: decode picture: %w", drawing.ErrCorruptData)
	}
	if len(ops) < drawCmdListHeaderSize {
		return nil, fmt.Errorf("recording: decode picture: %w", drawing.ErrEmptyData)
	}
	list := CreateFromData(ops, true)
	if len(images) > 0 && !list.SetUpImageData(append([]byte(nil), images...)) {
		return nil, fmt.Errorf("recording: decode picture images: %w", drawing.ErrCorruptData)
	}
	return &picturePlayer{list: list}, nil
}

func (p *picturePlayer) Playback(canvas drawing.Canvas, rect *drawing.Rect) {
	if p.list.arenaSize() <= drawCmdListHeaderSize {
		return
	}
	player := NewCanvasPlayer(canvas, p.list, rect)
	p.list.walk(drawCmdListHeaderSize, func(rec opRecord) bool {
		player.Playback(OpType(rec.typ), rec.offset)
		return true
	})
	canvas.DetachPaint()
}

func init() {
	drawing.RegisterPictureDecoder(decodePicture)
}
